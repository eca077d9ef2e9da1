package nutrient

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

var wheatSample = dto.SoilValues{N: 200, P: 40, K: 100, OC: 0.5, PH: 6.0}

func TestAnalyze_Wheat(t *testing.T) {
	got, err := Analyze(wheatSample, dto.CropWheat)
	require.NoError(t, err)

	var order []string
	for _, d := range got {
		order = append(order, d.Nutrient)
	}
	assert.Equal(t, []string{Phosphorus, OrganicCarbon, Nitrogen, Potassium, PH}, order)

	assert.Equal(t, dto.Deficiency{
		Nutrient: Phosphorus, Status: dto.SeverityLow, Deficiency: 33, Shortfall: 33.33, Actual: 40, Ideal: 60,
	}, got[0])
	assert.Equal(t, 33.33, got[1].Shortfall)
	assert.Equal(t, 28.57, got[2].Shortfall)
	assert.Equal(t, 29, got[3].Deficiency)
	assert.Equal(t, dto.SeverityOptimal, got[4].Status)
	assert.Zero(t, got[4].Deficiency)
}

func TestAnalyze_Severity(t *testing.T) {
	tests := []struct {
		name   string
		values dto.SoilValues
		pick   string
		want   dto.Severity
	}{
		{"surplus is optimal", dto.SoilValues{N: 300, P: 60, K: 140, OC: 0.75, PH: 6.5}, Nitrogen, dto.SeverityOptimal},
		{"exactly ideal", dto.SoilValues{N: 280, P: 60, K: 140, OC: 0.75, PH: 6.5}, Potassium, dto.SeverityOptimal},
		{"forty percent is low", dto.SoilValues{N: 168, P: 60, K: 140, OC: 0.75, PH: 6.5}, Nitrogen, dto.SeverityLow},
		{"over forty percent is critical", dto.SoilValues{N: 100, P: 60, K: 140, OC: 0.75, PH: 6.5}, Nitrogen, dto.SeverityCritical},
		{"pH half a point off is optimal", dto.SoilValues{N: 280, P: 60, K: 140, OC: 0.75, PH: 7.0}, PH, dto.SeverityOptimal},
		{"pH one point off is low", dto.SoilValues{N: 280, P: 60, K: 140, OC: 0.75, PH: 5.5}, PH, dto.SeverityLow},
		{"pH two points off is critical", dto.SoilValues{N: 280, P: 60, K: 140, OC: 0.75, PH: 8.5}, PH, dto.SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Analyze(tt.values, dto.CropWheat)
			require.NoError(t, err)
			for _, d := range got {
				if d.Nutrient == tt.pick {
					assert.Equal(t, tt.want, d.Status)
					return
				}
			}
			t.Fatalf("nutrient %s missing", tt.pick)
		})
	}
}

func TestAnalyze_PHScore(t *testing.T) {
	got, err := Analyze(dto.SoilValues{N: 280, P: 60, K: 140, OC: 0.75, PH: 8.5}, dto.CropWheat)
	require.NoError(t, err)

	assert.Equal(t, PH, got[0].Nutrient)
	assert.Equal(t, 20, got[0].Deficiency)
}

func TestAnalyze_InvalidCrop(t *testing.T) {
	_, err := Analyze(wheatSample, dto.Crop("Barley"))
	assert.True(t, eris.Is(err, ErrInvalidCrop))
}

func TestParseCrop(t *testing.T) {
	c, err := ParseCrop(" rice ")
	require.NoError(t, err)
	assert.Equal(t, dto.CropRice, c)

	_, err = ParseCrop("barley")
	assert.True(t, eris.Is(err, ErrInvalidCrop))
}

func TestCrops(t *testing.T) {
	got := Crops()
	require.Len(t, got, 4)
	assert.Equal(t, dto.CropWheat, got[0].Crop)
	assert.Equal(t, dto.CropStandard{Crop: dto.CropMaize, N: 150, P: 75, K: 75, OC: 0.75, PH: 6.0}, got[3])
}
