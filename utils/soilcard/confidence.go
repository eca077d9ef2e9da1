package soilcard

import "github.com/Aashish23092/soil-health-scanner/dto"

const (
	highConfidenceParams   = 5
	mediumConfidenceParams = 3
	// Below this many plausible essential readings a card looks empty.
	minEssentialFound = 2
)

// OverallConfidence grades an extraction by coverage. The thresholds are
// relied on by the verification UI and must not drift.
func OverallConfidence(paramCount, farmerFieldCount int) dto.Confidence {
	switch {
	case paramCount >= highConfidenceParams && farmerFieldCount >= 1:
		return dto.ConfidenceHigh
	case paramCount >= mediumConfidenceParams:
		return dto.ConfidenceMedium
	default:
		return dto.ConfidenceLow
	}
}

// Assess counts the essential parameters carrying plausible values and
// derives the invalid-card and retry signals.
func Assess(params map[string]dto.ExtractedParameter, confidence dto.Confidence) dto.Assessment {
	found := 0
	for _, spec := range catalog {
		if !spec.Essential {
			continue
		}
		if p, ok := params[spec.Name]; ok && spec.InRange(p.Value) {
			found++
		}
	}
	invalid := found < minEssentialFound
	return dto.Assessment{
		EssentialFound: found,
		LooksInvalid:   invalid,
		SuggestRetry:   invalid && confidence == dto.ConfidenceLow,
	}
}

// SoilValuesFrom projects extracted parameters onto the five values the
// deficiency engine needs, listing the ones that are missing.
func SoilValuesFrom(params map[string]dto.ExtractedParameter) (dto.SoilValues, []string) {
	var (
		v       dto.SoilValues
		missing []string
	)
	fields := []struct {
		name string
		dst  *float64
	}{
		{ParamNitrogen, &v.N},
		{ParamPhosphorus, &v.P},
		{ParamPotassium, &v.K},
		{ParamOC, &v.OC},
		{ParamPH, &v.PH},
	}
	for _, f := range fields {
		p, ok := params[f.name]
		if !ok {
			missing = append(missing, f.name)
			continue
		}
		*f.dst = p.Value
	}
	return v, missing
}
