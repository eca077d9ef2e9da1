package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/service"
	"github.com/Aashish23092/soil-health-scanner/utils/soilcard"
)

// ScanHandler handles card extraction requests
type ScanHandler struct {
	scanService    *service.ScanService
	maxUploadBytes int64
}

func NewScanHandler(scanService *service.ScanService, maxUploadBytes int64) *ScanHandler {
	return &ScanHandler{
		scanService:    scanService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ScanOCR handles POST /api/v1/scan/ocr
func (h *ScanHandler) ScanOCR(c *gin.Context) {
	data, mimeType, password, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.scanService.ExtractFromFile(c.Request.Context(), data, mimeType, password)
	if err != nil {
		h.sendExtractError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExtractResponse(result))
}

// ScanVision handles POST /api/v1/scan/vision
func (h *ScanHandler) ScanVision(c *gin.Context) {
	data, mimeType, password, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.scanService.ExtractWithVision(c.Request.Context(), data, mimeType, password)
	if err != nil {
		h.sendExtractError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExtractResponse(result))
}

// ScanText handles POST /api/v1/scan/text
func (h *ScanHandler) ScanText(c *gin.Context) {
	var req dto.TextScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "Text is required", err)
		return
	}
	c.JSON(http.StatusOK, newExtractResponse(h.scanService.ExtractText(req.Text)))
}

func (h *ScanHandler) readUpload(c *gin.Context) ([]byte, string, string, bool) {
	var req dto.ScanUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "An image file is required", err)
		return nil, "", "", false
	}
	file := req.Image

	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		h.sendError(c, http.StatusRequestEntityTooLarge, "File is too large", nil)
		return nil, "", "", false
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = inferMimeType(file.Filename)
	}
	if !isValidMimeType(mimeType) {
		h.sendError(c, http.StatusBadRequest, "Invalid file type. Supported: PDF, PNG, JPEG, WEBP", nil)
		return nil, "", "", false
	}

	reader, err := file.Open()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to open uploaded file", err)
		return nil, "", "", false
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to read file data", err)
		return nil, "", "", false
	}

	zap.L().Info("scan: upload received",
		zap.String("filename", file.Filename),
		zap.String("mime_type", mimeType),
		zap.Int("bytes", len(data)),
		zap.String("user_id", currentUser(c)),
	)
	return data, normalizeMimeType(mimeType), req.Password, true
}

func newExtractResponse(r *dto.ExtractionResult) dto.ScanExtractResponse {
	values, missing := soilcard.SoilValuesFrom(r.SoilParameters)
	if missing == nil {
		missing = []string{}
	}
	return dto.ScanExtractResponse{
		Result:        r,
		SoilValues:    values,
		MissingValues: missing,
		ProcessedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *ScanHandler) sendExtractError(c *gin.Context, err error) {
	switch {
	case eris.Is(err, service.ErrUnreadableImage):
		h.sendError(c, http.StatusBadRequest, "Image could not be decoded", err)
	case eris.Is(err, service.ErrUnreadablePDF):
		h.sendError(c, http.StatusBadRequest, "PDF could not be read. Check the password.", err)
	default:
		h.sendError(c, http.StatusInternalServerError, "Failed to extract soil card", err)
	}
}

// sendError sends a structured error response
func (h *ScanHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	sendError(c, "SCAN_FAILED", statusCode, message, err)
}

func sendError(c *gin.Context, code string, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = message + ": " + err.Error()
		zap.L().Warn(message, zap.Int("status", statusCode), zap.Error(err))
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
