package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/service"
	"github.com/Aashish23092/soil-health-scanner/store"
	"github.com/Aashish23092/soil-health-scanner/utils/nutrient"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalysisHandler serves crop standards, verification and scan history.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// ListCrops handles GET /api/v1/crops
func (h *AnalysisHandler) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CropListResponse{Crops: nutrient.Crops()})
}

// Verify handles POST /api/v1/scan/verify
func (h *AnalysisHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	scan, err := h.analysisService.Verify(c.Request.Context(), currentUser(c), &req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, scan)
	case eris.Is(err, nutrient.ErrInvalidCrop),
		eris.Is(err, dto.ErrFarmSizeTooSmall),
		eris.Is(err, dto.ErrNegativeSoilValue):
		h.sendError(c, http.StatusBadRequest, "Invalid soil scan", err)
	default:
		h.sendError(c, http.StatusInternalServerError, "Failed to save soil scan", err)
	}
}

// ListScans handles GET /api/v1/scans
func (h *AnalysisHandler) ListScans(c *gin.Context) {
	scans, err := h.analysisService.History(c.Request.Context(), currentUser(c))
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load scan history", err)
		return
	}
	c.JSON(http.StatusOK, dto.ScanListResponse{Count: len(scans), Data: scans})
}

// GetScan handles GET /api/v1/scans/:id
func (h *AnalysisHandler) GetScan(c *gin.Context) {
	scan, err := h.analysisService.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if eris.Is(err, store.ErrNotFound) {
		h.sendError(c, http.StatusNotFound, "Scan not found", nil)
		return
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load scan", err)
		return
	}
	c.JSON(http.StatusOK, scan)
}

// ExportScans handles GET /api/v1/scans/export
func (h *AnalysisHandler) ExportScans(c *gin.Context) {
	data, err := h.analysisService.ExportHistory(c.Request.Context(), currentUser(c))
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to export scan history", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="soil-scans.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *AnalysisHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	sendError(c, "ANALYSIS_FAILED", statusCode, message, err)
}
