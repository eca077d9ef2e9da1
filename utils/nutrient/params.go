package nutrient

import (
	"github.com/Aashish23092/soil-health-scanner/dto"
	"github.com/Aashish23092/soil-health-scanner/utils/soilcard"
)

// BuildParameterRows lays params out as the twelve rows of the printed card
// table. Rows without a reading carry a nil TestValue.
func BuildParameterRows(params map[string]dto.ExtractedParameter) []dto.SoilParameterRow {
	catalog := soilcard.Catalog()
	rows := make([]dto.SoilParameterRow, 0, len(catalog))
	for i, spec := range catalog {
		row := dto.SoilParameterRow{
			SrNo:        i + 1,
			Parameter:   spec.Name,
			Unit:        spec.Unit,
			NormalLevel: spec.NormalLevel,
		}
		if p, ok := params[spec.Name]; ok {
			v := p.Value
			row.TestValue = &v
			row.Rating = p.Rating
			if p.Unit != "" {
				row.Unit = p.Unit
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// MergeSoilValues overlays the farmer-verified values on the extracted
// parameters. An extracted rating is kept only when the verified value did
// not change.
func MergeSoilValues(params map[string]dto.ExtractedParameter, values dto.SoilValues) map[string]dto.ExtractedParameter {
	out := make(map[string]dto.ExtractedParameter, len(params)+5)
	for k, v := range params {
		out[k] = v
	}
	verified := map[string]float64{
		soilcard.ParamNitrogen:   values.N,
		soilcard.ParamPhosphorus: values.P,
		soilcard.ParamPotassium:  values.K,
		soilcard.ParamOC:         values.OC,
		soilcard.ParamPH:         values.PH,
	}
	for name, v := range verified {
		p, ok := out[name]
		if !ok || p.Value != v {
			p = dto.ExtractedParameter{Name: name, Value: v, Source: p.Source}
		}
		out[name] = p
	}
	return out
}
