package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ScanExtractResponse wraps an extraction with the verification form prefill.
type ScanExtractResponse struct {
	Result        *ExtractionResult `json:"result"`
	SoilValues    SoilValues        `json:"soil_values"`
	MissingValues []string          `json:"missing_values"`
	ProcessedAt   string            `json:"processed_at"`
}

// ScanListResponse is the history listing.
type ScanListResponse struct {
	Count int        `json:"count"`
	Data  []SoilScan `json:"data"`
}

type CropListResponse struct {
	Crops []CropStandard `json:"crops"`
}
