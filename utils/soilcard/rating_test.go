package soilcard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

func TestClassifyRating(t *testing.T) {
	tests := []struct {
		zone string
		want string
		ok   bool
	}{
		{" 6.39 Acidic 7, Neutral", "Acidic", true},
		{"0.37 dS/m Normal", "Normal", true},
		{"MODERATE", "Medium", true},
		{"deficiency noted", "Deficient", true},
		{"Sufficient", "Sufficient", true},
		{"lower than usual", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			got, ok := ClassifyRating(tt.zone)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalRating(t *testing.T) {
	assert.Equal(t, "High", canonicalRating("  very HIGH "))
	assert.Equal(t, "Good", canonicalRating("Good"))
}

func TestOverallConfidence(t *testing.T) {
	assert.Equal(t, dto.ConfidenceHigh, OverallConfidence(5, 1))
	assert.Equal(t, dto.ConfidenceMedium, OverallConfidence(4, 1))
	assert.Equal(t, dto.ConfidenceMedium, OverallConfidence(5, 0))
	assert.Equal(t, dto.ConfidenceMedium, OverallConfidence(3, 0))
	assert.Equal(t, dto.ConfidenceLow, OverallConfidence(2, 5))
	assert.Equal(t, dto.ConfidenceLow, OverallConfidence(0, 0))
}

func TestAssess(t *testing.T) {
	params := map[string]dto.ExtractedParameter{
		ParamPH:       {Name: ParamPH, Value: 6.5},
		ParamNitrogen: {Name: ParamNitrogen, Value: 99999},
		ParamZinc:     {Name: ParamZinc, Value: 0.8},
	}

	low := Assess(params, dto.ConfidenceLow)
	assert.Equal(t, 1, low.EssentialFound)
	assert.True(t, low.LooksInvalid)
	assert.True(t, low.SuggestRetry)

	medium := Assess(params, dto.ConfidenceMedium)
	assert.True(t, medium.LooksInvalid)
	assert.False(t, medium.SuggestRetry)

	params[ParamOC] = dto.ExtractedParameter{Name: ParamOC, Value: 0.4}
	ok := Assess(params, dto.ConfidenceLow)
	assert.Equal(t, 2, ok.EssentialFound)
	assert.False(t, ok.LooksInvalid)
	assert.False(t, ok.SuggestRetry)
}

func TestSoilValuesFrom(t *testing.T) {
	values, missing := SoilValuesFrom(map[string]dto.ExtractedParameter{
		ParamNitrogen:  {Value: 305},
		ParamPotassium: {Value: 69},
		ParamPH:        {Value: 6.39},
	})

	assert.Equal(t, dto.SoilValues{N: 305, K: 69, PH: 6.39}, values)
	assert.Equal(t, []string{ParamPhosphorus, ParamOC}, missing)
}
