package service

import (
	"context"
	"image"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/soil-health-scanner/client"
	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/utils/soilcard"
)

var (
	ErrUnreadableImage = eris.New("image could not be decoded")
	ErrUnreadablePDF   = eris.New("pdf could not be read")
)

// TextRecognizer is the OCR engine.
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, float64, error)
}

// CardReader is the vision model.
type CardReader interface {
	ReadCard(ctx context.Context, image []byte, mediaType string) (string, error)
}

type ScanOptions struct {
	// PDF text layers shorter than this are treated as scans.
	MinTextLength   int
	PageConcurrency int
}

// ScanService turns an uploaded card into an ExtractionResult.
type ScanService struct {
	ocr       TextRecognizer
	vision    CardReader
	pdf       PDFProcessor
	extractor *soilcard.Extractor
	opts      ScanOptions
}

// NewScanService wires the extraction paths. vision may be nil, in which
// case vision requests are served by OCR.
func NewScanService(ocr TextRecognizer, vision CardReader, pdf PDFProcessor, extractor *soilcard.Extractor, opts ScanOptions) *ScanService {
	if extractor == nil {
		extractor = soilcard.NewExtractor()
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = 20
	}
	if opts.PageConcurrency <= 0 {
		opts.PageConcurrency = 1
	}
	return &ScanService{ocr: ocr, vision: vision, pdf: pdf, extractor: extractor, opts: opts}
}

// ExtractText runs the pipeline over text the caller already has.
func (s *ScanService) ExtractText(text string) *dto.ExtractionResult {
	return s.extractor.Extract(text)
}

// ExtractFromFile reads a card photo or PDF through OCR.
func (s *ScanService) ExtractFromFile(ctx context.Context, data []byte, mimeType, password string) (*dto.ExtractionResult, error) {
	if isPDF(mimeType) {
		return s.extractFromPDF(ctx, data, password)
	}

	img, err := client.DecodeImage(data)
	if err != nil {
		return nil, eris.Wrap(ErrUnreadableImage, err.Error())
	}
	text := s.recognizePages(ctx, []image.Image{img})
	result := s.extractor.Extract(text)
	result.Method = dto.MethodOCR
	result.CardReference = s.cardReference(img)
	s.logResult(result)
	return result, nil
}

func (s *ScanService) extractFromPDF(ctx context.Context, data []byte, password string) (*dto.ExtractionResult, error) {
	text, err := s.pdf.ExtractText(data, password)
	if err != nil {
		zap.L().Warn("scan: pdf text layer unavailable", zap.Error(err))
	}
	if len(strings.TrimSpace(text)) >= s.opts.MinTextLength {
		result := s.extractor.Extract(text)
		result.Method = dto.MethodPDF
		s.logResult(result)
		return result, nil
	}

	images, err := s.pdf.ExtractImages(data, password)
	if err != nil {
		return nil, eris.Wrap(ErrUnreadablePDF, err.Error())
	}
	zap.L().Info("scan: pdf has no text layer, running OCR", zap.Int("images", len(images)))

	result := s.extractor.Extract(s.recognizePages(ctx, images))
	result.Method = dto.MethodOCR
	for _, img := range images {
		if ref := s.cardReference(img); ref != "" {
			result.CardReference = ref
			break
		}
	}
	s.logResult(result)
	return result, nil
}

// recognizePages OCRs pages concurrently and joins their text in page
// order. A page that fails contributes nothing.
func (s *ScanService) recognizePages(ctx context.Context, pages []image.Image) string {
	texts := make([]string, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.PageConcurrency)

	for i, page := range pages {
		g.Go(func() error {
			text, conf, err := s.ocr.Recognize(gctx, page)
			if err != nil {
				zap.L().Warn("scan: page OCR failed", zap.Int("page", i+1), zap.Error(err))
				return nil
			}
			zap.L().Debug("scan: page OCR",
				zap.Int("page", i+1),
				zap.Int("chars", len(text)),
				zap.Float64("confidence", conf),
			)
			texts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	var sb strings.Builder
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t)
	}
	return sb.String()
}

// ExtractWithVision asks the vision model first and falls back to OCR when
// it is unavailable, fails, or answers with something unusable.
func (s *ScanService) ExtractWithVision(ctx context.Context, data []byte, mimeType, password string) (*dto.ExtractionResult, error) {
	if s.vision == nil || isPDF(mimeType) {
		return s.ExtractFromFile(ctx, data, mimeType, password)
	}

	img, err := client.DecodeImage(data)
	if err != nil {
		return nil, eris.Wrap(ErrUnreadableImage, err.Error())
	}

	reply, err := s.vision.ReadCard(ctx, data, mimeType)
	if err != nil {
		zap.L().Warn("scan: vision failed, falling back to OCR", zap.Error(err))
		return s.ExtractFromFile(ctx, data, mimeType, password)
	}
	result, err := s.extractor.ParseVision(reply)
	if err != nil {
		zap.L().Warn("scan: vision reply unusable, falling back to OCR", zap.Error(err))
		return s.ExtractFromFile(ctx, data, mimeType, password)
	}

	result.CardReference = s.cardReference(img)
	s.logResult(result)
	return result, nil
}

func (s *ScanService) cardReference(img image.Image) string {
	ref, err := decodeCardQR(img)
	if err != nil {
		zap.L().Debug("scan: no card QR code", zap.Error(err))
		return ""
	}
	return ref
}

func (s *ScanService) logResult(r *dto.ExtractionResult) {
	zap.L().Info("scan: extracted",
		zap.String("method", string(r.Method)),
		zap.String("confidence", string(r.Confidence)),
		zap.Int("parameters", len(r.SoilParameters)),
		zap.Int("unresolved", len(r.Unresolved)),
		zap.Bool("looks_invalid", r.Assessment.LooksInvalid),
	)
}

func isPDF(mimeType string) bool {
	return strings.Contains(mimeType, "pdf")
}
