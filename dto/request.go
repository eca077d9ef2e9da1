package dto

import (
	"mime/multipart"

	"github.com/rotisserie/eris"
)

var (
	ErrFarmSizeTooSmall  = eris.New("farm size must be at least 0.1 acres")
	ErrNegativeSoilValue = eris.New("soil values must not be negative")
	ErrEmptyText         = eris.New("text is required")
)

// MinFarmSize is the smallest farm, in acres, a scan can be submitted for.
const MinFarmSize = 0.1

// ScanUploadRequest is the multipart body of the image scan endpoints.
type ScanUploadRequest struct {
	Image    *multipart.FileHeader `form:"image" binding:"required"`
	Password string                `form:"password"`
}

// TextScanRequest runs the extraction pipeline over text the caller already has.
type TextScanRequest struct {
	Text string `json:"text"`
}

func (r *TextScanRequest) Validate() error {
	if r.Text == "" {
		return ErrEmptyText
	}
	return nil
}

// VerifyRequest is the farmer-confirmed set of readings.
type VerifyRequest struct {
	Crop       Crop                          `json:"crop" binding:"required"`
	FarmSize   float64                       `json:"farm_size" binding:"required"`
	SoilValues SoilValues                    `json:"soil_values"`
	Parameters map[string]ExtractedParameter `json:"parameters,omitempty"`
}

// Validate checks the shape of the request. Crop membership is checked by the
// nutrient engine.
func (r *VerifyRequest) Validate() error {
	if r.FarmSize < MinFarmSize {
		return ErrFarmSizeTooSmall
	}
	v := r.SoilValues
	if v.N < 0 || v.P < 0 || v.K < 0 || v.OC < 0 || v.PH < 0 {
		return ErrNegativeSoilValue
	}
	return nil
}
