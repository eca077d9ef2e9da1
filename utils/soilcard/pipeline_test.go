package soilcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

const sampleCard = `GOVERNMENT OF MAHARASHTRA
SOIL HEALTH CARD
Farmer Name: Ramesh Kumar
Father Name: Suresh Kumar
Mobile No: 9876543210
Sample No: SHC/2023/0457
Survey No: 112/3
Village: Rampur District: Nashik
Taluk/Tehsil: Niphad
State: Maharashtra Pincode: 422001
Sr. No. | Parameter | Test Value | Unit | Rating | Normal Level
1 | pH | 6.39 | | Acidic | 7, Neutral
2 | EC | 0.37 | dS/m | Normal | < 1.0
3 | Organic Carbon (OC) | 0.40 | % | Low | 0.50 - 0.75
4 | Available Nitrogen (N) | 305.00 | kg/ha | Medium | 280 - 560
5 | Available Phosphorus (P) | 36.00 | kg/ha | High | 10 - 25
6 | Available Potassium (K) | 69.00 | kg/ha | Low | 110 - 280
7 | Available Sulphur (S) | 36.00 | ppm | Sufficient | > 10
8 | Available Zinc (Zn) | 0.56 | ppm | Deficient | > 0.6
9 | Available Boron (B) | 0.42 | ppm | Deficient | > 0.5
10 | Available Iron (Fe) | 5.20 | ppm | Sufficient | > 4.5
11 | Available Manganese (Mn) | 3.10 | ppm | Sufficient | > 2.0
12 | Available Copper (Cu) | 0.45 | ppm | Sufficient | > 0.2

Recommendations:
Apply 2 bags of Neem Coated Urea per acre
Add vermicompost to improve organic carbon
`

func TestExtract_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n\t "} {
		got := Extract(in)

		assert.Equal(t, dto.ConfidenceLow, got.Confidence)
		assert.Empty(t, got.SoilParameters)
		assert.Len(t, got.Unresolved, 12)
		assert.True(t, got.Assessment.LooksInvalid)
		assert.True(t, got.Assessment.SuggestRetry)
		assert.Contains(t, got.Summary, "No soil parameters")
		assert.NotNil(t, got.Recommendations)
	}
}

func TestExtract_SampleCard(t *testing.T) {
	got := Extract(sampleCard)

	assert.Equal(t, dto.ConfidenceHigh, got.Confidence)
	assert.Len(t, got.SoilParameters, 12)
	assert.Empty(t, got.Unresolved)
	assert.Equal(t, 5, got.Assessment.EssentialFound)
	assert.False(t, got.Assessment.LooksInvalid)
	assert.Equal(t, dto.MethodText, got.Method)
	assert.Equal(t, sampleCard, got.RawText)

	assert.Equal(t, "Ramesh Kumar", got.FarmerDetails["Farmer Name"])
	assert.Equal(t, "Rampur", got.Location["Village"])
	assert.Equal(t, "Nashik", got.Location["District"])
	assert.Equal(t, "422001", got.Location["Pincode"])
	assert.Equal(t, []string{
		"Apply 2 bags of Neem Coated Urea per acre",
		"Add vermicompost to improve organic carbon",
	}, got.Recommendations)
	assert.Equal(t, "Read 12 of 12 soil parameters with High confidence.", got.Summary)

	for name, p := range got.SoilParameters {
		assert.Equal(t, dto.SourceRow, p.Source, name)
	}
}

func TestExtract_FallbackFillsGaps(t *testing.T) {
	got := Extract("reading p H : 6.8\nE C 0.45")

	require.Contains(t, got.SoilParameters, ParamPH)
	assert.InDelta(t, 6.8, got.SoilParameters[ParamPH].Value, 1e-9)
	assert.Equal(t, dto.SourceFallback, got.SoilParameters[ParamPH].Source)
	require.Contains(t, got.SoilParameters, ParamEC)
	assert.Equal(t, dto.SourceFallback, got.SoilParameters[ParamEC].Source)

	assert.Equal(t, dto.ConfidenceLow, got.Confidence)
	assert.True(t, got.Assessment.LooksInvalid)
	assert.True(t, got.Assessment.SuggestRetry)
	assert.Contains(t, got.Summary, "please verify the card")
}

func TestExtract_RowWinsOverFallback(t *testing.T) {
	got := Extract("pH 6.39 Acidic\nnotes: p H 7.9")

	require.Contains(t, got.SoilParameters, ParamPH)
	assert.InDelta(t, 6.39, got.SoilParameters[ParamPH].Value, 1e-9)
	assert.Equal(t, dto.SourceRow, got.SoilParameters[ParamPH].Source)
}

func TestExtract_MediumConfidence(t *testing.T) {
	got := Extract("pH 6.5\nOrganic Carbon 0.6\nNitrogen 300")

	assert.Equal(t, dto.ConfidenceMedium, got.Confidence)
	assert.Len(t, got.SoilParameters, 3)
	assert.Equal(t, 3, got.Assessment.EssentialFound)
	assert.False(t, got.Assessment.LooksInvalid)
	assert.False(t, got.Assessment.SuggestRetry)
}

func TestExtract_Deterministic(t *testing.T) {
	first := Extract(sampleCard)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(sampleCard))
	}
}

func TestExtractor_Observer(t *testing.T) {
	var stages []string
	e := NewExtractor(WithObserver(ObserverFunc(func(ev Event) {
		if ev.Parameter == ParamPH {
			stages = append(stages, ev.Stage)
		}
	})))

	e.Extract("1 pH 6.39 Acidic")
	assert.Contains(t, stages, StageAccept)
	assert.Contains(t, stages, StageReject)
}

func TestExtractor_WithCatalog(t *testing.T) {
	var only []ParameterSpec
	for _, p := range Catalog() {
		if p.Name == ParamNitrogen || p.Name == ParamPhosphorus {
			only = append(only, p)
		}
	}
	e := NewExtractor(WithCatalog(only))

	got := e.Extract(sampleCard)
	assert.Len(t, got.SoilParameters, 2)
	assert.Empty(t, got.Unresolved)
	assert.True(t, strings.HasPrefix(got.Summary, "Read 2 of 2"))
}

func TestExtract_DefaultExtractor(t *testing.T) {
	assert.Equal(t, NewExtractor().Extract(sampleCard), Extract(sampleCard))
}

func TestExtract_HeaderSymbolDoesNotOverrideRow(t *testing.T) {
	got := Extract("Khasra No: N/A 45\n" + sampleCard)

	require.Contains(t, got.SoilParameters, ParamNitrogen)
	assert.InDelta(t, 305.0, got.SoilParameters[ParamNitrogen].Value, 1e-9)
	assert.Equal(t, dto.SourceRow, got.SoilParameters[ParamNitrogen].Source)
}
