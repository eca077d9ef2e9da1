package dto

import "time"

type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// ExtractionSource records which extraction pass produced a parameter value.
type ExtractionSource string

const (
	SourceRow      ExtractionSource = "row"
	SourceFallback ExtractionSource = "fallback"
	SourceVision   ExtractionSource = "vision"
)

type ExtractionMethod string

const (
	MethodOCR    ExtractionMethod = "ocr"
	MethodPDF    ExtractionMethod = "pdf-text"
	MethodVision ExtractionMethod = "vision-ai"
	MethodText   ExtractionMethod = "text"
)

type Crop string

const (
	CropWheat  Crop = "Wheat"
	CropRice   Crop = "Rice"
	CropCotton Crop = "Cotton"
	CropMaize  Crop = "Maize"
)

type Severity string

const (
	SeverityOptimal  Severity = "Optimal"
	SeverityLow      Severity = "Low"
	SeverityCritical Severity = "Critical"
)

// ExtractedParameter is one nutrient reading recovered from a card.
type ExtractedParameter struct {
	Name   string           `json:"name"`
	Value  float64          `json:"value"`
	Unit   string           `json:"unit"`
	Rating string           `json:"rating,omitempty"`
	Source ExtractionSource `json:"source"`
}

// Assessment carries the non-error signals a caller uses to decide whether
// to ask the farmer for a better photo.
type Assessment struct {
	EssentialFound int  `json:"essential_found"`
	LooksInvalid   bool `json:"looks_invalid"`
	SuggestRetry   bool `json:"suggest_retry"`
}

// ExtractionResult is the outcome of a single card extraction. It is shown to
// the farmer for verification and never persisted as-is.
type ExtractionResult struct {
	Confidence      Confidence                    `json:"confidence"`
	Summary         string                        `json:"summary"`
	FarmerDetails   map[string]string             `json:"farmer_details"`
	Location        map[string]string             `json:"location"`
	SoilParameters  map[string]ExtractedParameter `json:"soil_parameters"`
	Recommendations []string                      `json:"recommendations"`
	Unresolved      []string                      `json:"unresolved"`
	Assessment      Assessment                    `json:"assessment"`
	Method          ExtractionMethod              `json:"method"`
	CardReference   string                        `json:"card_reference,omitempty"`
	RawText         string                        `json:"raw_text"`
}

// SoilValues are the five readings the deficiency engine works on.
type SoilValues struct {
	N  float64 `json:"n"`
	P  float64 `json:"p"`
	K  float64 `json:"k"`
	OC float64 `json:"oc"`
	PH float64 `json:"ph"`
}

// SoilParameterRow is one row of the twelve-row card table. TestValue is nil
// when the reading could not be recovered.
type SoilParameterRow struct {
	SrNo        int      `json:"sr_no"`
	Parameter   string   `json:"parameter"`
	TestValue   *float64 `json:"test_value"`
	Unit        string   `json:"unit"`
	Rating      string   `json:"rating"`
	NormalLevel string   `json:"normal_level"`
}

type Deficiency struct {
	Nutrient   string   `json:"nutrient"`
	Status     Severity `json:"status"`
	Deficiency int      `json:"deficiency"`
	Shortfall  float64  `json:"shortfall"`
	Actual     float64  `json:"actual"`
	Ideal      float64  `json:"ideal"`
}

type Recommendation struct {
	Fertilizer string  `json:"fertilizer"`
	Nutrient   string  `json:"nutrient"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	Cost       float64 `json:"cost"`
	Priority   int     `json:"priority"`
}

// SoilScan is the persisted, append-only record of a verified submission.
type SoilScan struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Crop            Crop               `json:"crop"`
	FarmSize        float64            `json:"farm_size"`
	SoilValues      SoilValues         `json:"soil_values"`
	AllParameters   []SoilParameterRow `json:"all_parameters"`
	Deficiencies    []Deficiency       `json:"deficiencies"`
	Recommendations []Recommendation   `json:"recommendations"`
	TotalCost       float64            `json:"total_cost"`
	CreatedAt       time.Time          `json:"created_at"`
}

// CropStandard holds the ideal readings for one crop.
type CropStandard struct {
	Crop Crop    `json:"crop"`
	N    float64 `json:"n"`
	P    float64 `json:"p"`
	K    float64 `json:"k"`
	OC   float64 `json:"oc"`
	PH   float64 `json:"ph"`
}
