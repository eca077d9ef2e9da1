package soilcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

func TestExtractFallback_SpacedKeywords(t *testing.T) {
	text := Normalize("soil reading p H : 6.8 slightly alkaline\nE C was 0.45 dS/m")

	rows := ExtractByRow(text, Catalog(), nil)
	require.NotContains(t, rows, ParamPH)
	require.NotContains(t, rows, ParamEC)

	got := ExtractFallback(text, Catalog(), rows, nil)
	require.Contains(t, got, ParamPH)
	assert.InDelta(t, 6.8, got[ParamPH].Value, 1e-9)
	assert.Equal(t, "Alkaline", got[ParamPH].Rating)
	assert.Equal(t, dto.SourceFallback, got[ParamPH].Source)

	require.Contains(t, got, ParamEC)
	assert.InDelta(t, 0.45, got[ParamEC].Value, 1e-9)
}

func TestExtractFallback_NeverOverwrites(t *testing.T) {
	text := Normalize("p H 7.80")
	resolved := map[string]dto.ExtractedParameter{
		ParamPH: {Name: ParamPH, Value: 6.39, Source: dto.SourceRow},
	}

	got := ExtractFallback(text, Catalog(), resolved, nil)
	assert.NotContains(t, got, ParamPH)
}

func TestExtractFallback_OnlyEssentialSubset(t *testing.T) {
	text := Normalize("Nitrogen was measured 305.00")
	got := ExtractFallback(text, Catalog(), map[string]dto.ExtractedParameter{}, nil)
	assert.NotContains(t, got, ParamNitrogen)
}

func TestExtractFallback_PrefersDecimalInRange(t *testing.T) {
	text := Normalize("organic carbon 12 or 0.52 measured")
	got := ExtractFallback(text, Catalog(), map[string]dto.ExtractedParameter{}, nil)

	require.Contains(t, got, ParamOC)
	assert.InDelta(t, 0.52, got[ParamOC].Value, 1e-9)
}

func TestExtractFallback_SkipsRangeExpressions(t *testing.T) {
	text := Normalize("phosphorus normal 10 - 25 found 41.5")
	got := ExtractFallback(text, Catalog(), map[string]dto.ExtractedParameter{}, nil)

	require.Contains(t, got, ParamPhosphorus)
	assert.InDelta(t, 41.5, got[ParamPhosphorus].Value, 1e-9)
}
