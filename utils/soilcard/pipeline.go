// Package soilcard turns the text of a scanned Soil Health Card into typed
// nutrient readings.
//
// Extraction runs in two passes over normalized text. The row pass reads each
// parameter from the table row that names it, scoring every number near the
// name with a fixed set of rules. The fallback pass then searches the whole
// text for the few essential parameters the row pass missed. Vision-model
// output skips both passes and is mapped onto the same result type by
// ParseVisionResponse.
package soilcard

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// Extractor runs the card extraction pipeline. It holds no per-call state and
// is safe for concurrent use.
type Extractor struct {
	catalog  []ParameterSpec
	observer Observer
}

type Option func(*Extractor)

// WithObserver attaches a diagnostics hook.
func WithObserver(o Observer) Option {
	return func(e *Extractor) { e.observer = observerOrNop(o) }
}

// WithCatalog replaces the parameter catalog, mostly for tests.
func WithCatalog(c []ParameterSpec) Option {
	return func(e *Extractor) { e.catalog = c }
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{catalog: Catalog(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the default pipeline over raw OCR text.
func Extract(raw string) *dto.ExtractionResult {
	return NewExtractor().Extract(raw)
}

// Extract never fails: text with nothing recognisable yields a Low
// confidence result whose assessment marks the card as invalid.
func (e *Extractor) Extract(raw string) *dto.ExtractionResult {
	if strings.TrimSpace(raw) == "" {
		return e.finish(&dto.ExtractionResult{
			SoilParameters: map[string]dto.ExtractedParameter{},
			FarmerDetails:  map[string]string{},
			Location:       map[string]string{},
			Method:         dto.MethodText,
			RawText:        raw,
		}, "")
	}

	text := Normalize(raw)
	params := ExtractByRow(text, e.catalog, e.observer)
	for name, p := range ExtractFallback(text, e.catalog, params, e.observer) {
		if _, ok := params[name]; !ok {
			params[name] = p
		}
	}
	farmer, location := ExtractDetails(text)

	return e.finish(&dto.ExtractionResult{
		SoilParameters:  params,
		FarmerDetails:   farmer,
		Location:        location,
		Recommendations: ExtractRecommendations(text),
		Method:          dto.MethodText,
		RawText:         raw,
	}, "")
}

// finish fills the derived fields: unresolved names, confidence, assessment
// and summary. An empty confidence or summary is computed.
func (e *Extractor) finish(r *dto.ExtractionResult, confidence dto.Confidence) *dto.ExtractionResult {
	r.Unresolved = unresolved(e.catalog, r.SoilParameters)
	if confidence == "" {
		confidence = OverallConfidence(len(r.SoilParameters), len(r.FarmerDetails)+len(r.Location))
	}
	r.Confidence = confidence
	r.Assessment = Assess(r.SoilParameters, r.Confidence)
	if r.Summary == "" {
		r.Summary = summarize(r, len(e.catalog))
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	return r
}

func unresolved(catalog []ParameterSpec, params map[string]dto.ExtractedParameter) []string {
	out := []string{}
	for _, spec := range catalog {
		if _, ok := params[spec.Name]; !ok {
			out = append(out, spec.Name)
		}
	}
	return out
}

func summarize(r *dto.ExtractionResult, total int) string {
	if len(r.SoilParameters) == 0 {
		return "No soil parameters could be read from the card. Please retake the photo or enter the values manually."
	}
	s := fmt.Sprintf("Read %d of %d soil parameters with %s confidence.", len(r.SoilParameters), total, r.Confidence)
	if r.Assessment.LooksInvalid {
		s += " Fewer than two essential readings were found, please verify the card."
	}
	return s
}
