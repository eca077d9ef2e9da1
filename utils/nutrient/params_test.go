package nutrient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/utils/soilcard"
)

func TestBuildParameterRows(t *testing.T) {
	rows := BuildParameterRows(map[string]dto.ExtractedParameter{
		soilcard.ParamPH:   {Name: soilcard.ParamPH, Value: 6.39, Rating: "Acidic"},
		soilcard.ParamZinc: {Name: soilcard.ParamZinc, Value: 0.56, Unit: "mg/kg", Rating: "Deficient"},
	})

	require.Len(t, rows, 12)
	for i, r := range rows {
		assert.Equal(t, i+1, r.SrNo)
	}

	ph := rows[0]
	assert.Equal(t, soilcard.ParamPH, ph.Parameter)
	require.NotNil(t, ph.TestValue)
	assert.Equal(t, 6.39, *ph.TestValue)
	assert.Equal(t, "Acidic", ph.Rating)
	assert.Equal(t, "6.5 - 7.5", ph.NormalLevel)

	n := rows[3]
	assert.Equal(t, soilcard.ParamNitrogen, n.Parameter)
	assert.Nil(t, n.TestValue)
	assert.Equal(t, "kg/ha", n.Unit)
	assert.Equal(t, "280 - 560", n.NormalLevel)

	zn := rows[7]
	assert.Equal(t, "mg/kg", zn.Unit)
}

func TestMergeSoilValues(t *testing.T) {
	params := map[string]dto.ExtractedParameter{
		soilcard.ParamPH:       {Name: soilcard.ParamPH, Value: 6.39, Rating: "Acidic", Source: dto.SourceRow},
		soilcard.ParamNitrogen: {Name: soilcard.ParamNitrogen, Value: 30.5, Rating: "Low", Source: dto.SourceRow},
		soilcard.ParamZinc:     {Name: soilcard.ParamZinc, Value: 0.56},
	}
	got := MergeSoilValues(params, dto.SoilValues{N: 305, P: 36, K: 69, OC: 0.4, PH: 6.39})

	assert.Len(t, got, 6)
	assert.Equal(t, "Acidic", got[soilcard.ParamPH].Rating, "unchanged value keeps its rating")
	assert.Equal(t, 305.0, got[soilcard.ParamNitrogen].Value)
	assert.Empty(t, got[soilcard.ParamNitrogen].Rating, "corrected value drops the card rating")
	assert.Equal(t, 36.0, got[soilcard.ParamPhosphorus].Value)
	assert.Equal(t, 0.56, got[soilcard.ParamZinc].Value)

	assert.Equal(t, 30.5, params[soilcard.ParamNitrogen].Value, "input is not modified")
}
