// Package nutrient compares verified soil readings with crop ideals and turns
// the shortfalls into a fertilizer purchase plan.
package nutrient

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// ErrInvalidCrop is returned for a crop outside the supported set.
var ErrInvalidCrop = eris.New("unsupported crop")

var cropOrder = []dto.Crop{dto.CropWheat, dto.CropRice, dto.CropCotton, dto.CropMaize}

var standards = map[dto.Crop]dto.CropStandard{
	dto.CropWheat:  {Crop: dto.CropWheat, N: 280, P: 60, K: 140, OC: 0.75, PH: 6.5},
	dto.CropRice:   {Crop: dto.CropRice, N: 120, P: 60, K: 60, OC: 0.8, PH: 6.0},
	dto.CropCotton: {Crop: dto.CropCotton, N: 120, P: 60, K: 60, OC: 0.75, PH: 6.5},
	dto.CropMaize:  {Crop: dto.CropMaize, N: 150, P: 75, K: 75, OC: 0.75, PH: 6.0},
}

// Standard returns the ideal readings for crop.
func Standard(crop dto.Crop) (dto.CropStandard, error) {
	s, ok := standards[crop]
	if !ok {
		return dto.CropStandard{}, eris.Wrapf(ErrInvalidCrop, "crop %q", crop)
	}
	return s, nil
}

// Crops lists every supported crop standard in a fixed order.
func Crops() []dto.CropStandard {
	out := make([]dto.CropStandard, 0, len(cropOrder))
	for _, c := range cropOrder {
		out = append(out, standards[c])
	}
	return out
}

// ParseCrop accepts a crop name in any letter case.
func ParseCrop(s string) (dto.Crop, error) {
	s = strings.TrimSpace(s)
	for _, c := range cropOrder {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", eris.Wrapf(ErrInvalidCrop, "crop %q", s)
}
