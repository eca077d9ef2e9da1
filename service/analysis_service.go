package service

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/store"
	"github.com/Aashish23092/soil-health-scanner/utils/nutrient"
)

// AnalysisService grades verified readings, prices a fertilizer plan and
// keeps the user's history.
type AnalysisService struct {
	store        store.Store
	historyLimit int
}

func NewAnalysisService(st store.Store, historyLimit int) *AnalysisService {
	if historyLimit <= 0 {
		historyLimit = store.DefaultListLimit
	}
	return &AnalysisService{store: st, historyLimit: historyLimit}
}

// Verify analyses the farmer-confirmed values and saves the scan.
func (s *AnalysisService) Verify(ctx context.Context, userID string, req *dto.VerifyRequest) (*dto.SoilScan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	crop, err := nutrient.ParseCrop(string(req.Crop))
	if err != nil {
		return nil, err
	}
	req.Crop = crop

	defs, recs, err := nutrient.Plan(req.SoilValues, req.Crop, req.FarmSize)
	if err != nil {
		return nil, err
	}

	scan := &dto.SoilScan{
		UserID:          userID,
		Crop:            req.Crop,
		FarmSize:        req.FarmSize,
		SoilValues:      req.SoilValues,
		AllParameters:   nutrient.BuildParameterRows(nutrient.MergeSoilValues(req.Parameters, req.SoilValues)),
		Deficiencies:    defs,
		Recommendations: recs,
		TotalCost:       nutrient.TotalCost(recs),
	}
	if err := s.store.CreateScan(ctx, scan); err != nil {
		return nil, eris.Wrap(err, "analysis: save scan")
	}

	zap.L().Info("analysis: scan saved",
		zap.String("scan_id", scan.ID),
		zap.String("crop", string(scan.Crop)),
		zap.Int("recommendations", len(recs)),
		zap.Float64("total_cost", scan.TotalCost),
	)
	return scan, nil
}

// History returns the user's most recent scans, newest first.
func (s *AnalysisService) History(ctx context.Context, userID string) ([]dto.SoilScan, error) {
	scans, err := s.store.ListScans(ctx, userID, s.historyLimit)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: list scans")
	}
	return scans, nil
}

// Get returns one of the user's scans, or store.ErrNotFound.
func (s *AnalysisService) Get(ctx context.Context, userID, id string) (*dto.SoilScan, error) {
	return s.store.GetScan(ctx, userID, id)
}

// ExportHistory renders the user's history as an XLSX workbook.
func (s *AnalysisService) ExportHistory(ctx context.Context, userID string) ([]byte, error) {
	scans, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ScansXLSX(scans)
}
