package soilcard

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// ErrNoVisionJSON is returned when a vision reply carries no JSON object.
var ErrNoVisionJSON = eris.New("soilcard: no json object in vision response")

//go:embed vision_schema.json
var visionSchemaJSON string

var visionSchema = mustCompileSchema("vision_schema.json", visionSchemaJSON)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("soilcard: add schema: %v", err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("soilcard: compile schema: %v", err))
	}
	return schema
}

// visionReading is one parameter as the vision model reports it. The value
// may arrive as a number or as a string such as "6.39" or "305.00 kg/ha".
type visionReading struct {
	Value  visionNumber `json:"value"`
	Unit   *string      `json:"unit"`
	Rating *string      `json:"rating"`
}

type visionPayload struct {
	Confidence      string                   `json:"confidence"`
	Summary         string                   `json:"summary"`
	FarmerDetails   map[string]any           `json:"farmerDetails"`
	Location        map[string]any           `json:"location"`
	SoilParameters  map[string]visionReading `json:"soilParameters"`
	Recommendations []string                 `json:"recommendations"`
}

var (
	// A sign is kept so negative readings fail the range check.
	visionNumberRe    = regexp.MustCompile(`-?(?:\d+(?:,\d{3})+(?:\.\d+)?|\d+(?:[.,]\d+)?|[.,]\d+)`)
	visionThousandsRe = regexp.MustCompile(`^-?[1-9]\d{0,2}(?:,\d{3})+(?:\.\d+)?$`)
)

type visionNumber struct {
	value float64
	ok    bool
}

func (n *visionNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	m := visionNumberRe.FindString(s)
	if m == "" {
		return nil
	}
	if visionThousandsRe.MatchString(m) {
		m = strings.ReplaceAll(m, ",", "")
	} else {
		m = strings.Replace(m, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	n.value, n.ok = v, true
	return nil
}

var (
	fenceRe         = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// visionJSON pulls the JSON object out of a model reply that may wrap it in
// a markdown fence or surround it with prose.
func visionJSON(content string) (string, bool) {
	if m := fenceRe.FindStringSubmatch(content); m != nil {
		content = m[1]
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return trailingCommaRe.ReplaceAllString(content[start:end+1], "$1"), true
}

// ParseVisionResponse maps a vision-model reply onto an ExtractionResult
// using the default catalog.
func ParseVisionResponse(content string) (*dto.ExtractionResult, error) {
	return NewExtractor().ParseVision(content)
}

// ParseVision validates a vision-model reply and maps its parameter keys onto
// canonical catalog names. Unknown parameters and out-of-range values are
// dropped and reported to the observer.
func (e *Extractor) ParseVision(content string) (*dto.ExtractionResult, error) {
	body, ok := visionJSON(content)
	if !ok {
		return nil, ErrNoVisionJSON
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, eris.Wrap(err, "soilcard: decode vision json")
	}
	if err := visionSchema.Validate(doc); err != nil {
		return nil, eris.Wrap(err, "soilcard: vision json does not match schema")
	}

	var payload visionPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, eris.Wrap(err, "soilcard: decode vision payload")
	}

	keys := make([]string, 0, len(payload.SoilParameters))
	for k := range payload.SoilParameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(map[string]dto.ExtractedParameter)
	for _, key := range keys {
		reading := payload.SoilParameters[key]
		spec, ok := e.lookup(key)
		switch {
		case !ok:
			e.observer.Observe(Event{Stage: StageVision, Parameter: key, Reason: "unknown parameter"})
			continue
		case !reading.Value.ok:
			e.observer.Observe(Event{Stage: StageVision, Parameter: spec.Name, Reason: "no value"})
			continue
		case !spec.InRange(reading.Value.value):
			e.observer.Observe(Event{Stage: StageVision, Parameter: spec.Name, Token: fmt.Sprint(reading.Value.value), Reason: "range"})
			continue
		}
		if _, dup := params[spec.Name]; dup {
			continue
		}
		p := dto.ExtractedParameter{
			Name:   spec.Name,
			Value:  reading.Value.value,
			Unit:   spec.Unit,
			Source: dto.SourceVision,
		}
		if reading.Rating != nil {
			p.Rating = canonicalRating(*reading.Rating)
		}
		params[spec.Name] = p
	}

	return e.finish(&dto.ExtractionResult{
		Summary:         strings.TrimSpace(payload.Summary),
		FarmerDetails:   stringFields(payload.FarmerDetails),
		Location:        stringFields(payload.Location),
		SoilParameters:  params,
		Recommendations: payload.Recommendations,
		Method:          dto.MethodVision,
		RawText:         content,
	}, parseConfidence(payload.Confidence)), nil
}

// lookup resolves a vision key against the extractor's catalog.
func (e *Extractor) lookup(key string) (ParameterSpec, bool) {
	spec, ok := Lookup(key)
	if !ok {
		return ParameterSpec{}, false
	}
	for _, p := range e.catalog {
		if p.Name == spec.Name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

func stringFields(in map[string]any) map[string]string {
	out := make(map[string]string)
	for k, v := range in {
		var s string
		switch t := v.(type) {
		case nil:
			continue
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			s = strings.TrimSpace(fmt.Sprint(t))
		}
		if s == "" {
			continue
		}
		out[strings.TrimSpace(k)] = s
	}
	return out
}

func parseConfidence(s string) dto.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return dto.ConfidenceHigh
	case "medium":
		return dto.ConfidenceMedium
	case "low":
		return dto.ConfidenceLow
	}
	return ""
}
