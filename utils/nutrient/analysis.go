package nutrient

import (
	"math"
	"sort"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// Nutrient names as they appear in deficiencies and recommendations.
const (
	Nitrogen      = "Nitrogen"
	Phosphorus    = "Phosphorus"
	Potassium     = "Potassium"
	OrganicCarbon = "Organic Carbon"
	PH            = "pH"
)

const (
	criticalShortfall = 40.0
	phTolerance       = 0.5
	phCritical        = 1.5
	// A pH point off the ideal scores like a 10% shortfall.
	phScale = 10.0
)

// Analyze grades each of the five readings against the crop ideal and
// returns them sorted from most to least deficient. Readings with equal
// scores keep the order N, P, K, OC, pH.
func Analyze(values dto.SoilValues, crop dto.Crop) ([]dto.Deficiency, error) {
	std, err := Standard(crop)
	if err != nil {
		return nil, err
	}

	out := []dto.Deficiency{
		shortfall(Nitrogen, values.N, std.N),
		shortfall(Phosphorus, values.P, std.P),
		shortfall(Potassium, values.K, std.K),
		shortfall(OrganicCarbon, values.OC, std.OC),
		phDeviation(values.PH, std.PH),
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Shortfall > out[j].Shortfall
	})
	return out, nil
}

func shortfall(name string, actual, ideal float64) dto.Deficiency {
	d := dto.Deficiency{Nutrient: name, Status: dto.SeverityOptimal, Actual: actual, Ideal: ideal}
	pct := (ideal - actual) / ideal * 100
	if pct <= 0 {
		return d
	}
	d.Status = dto.SeverityLow
	if pct > criticalShortfall {
		d.Status = dto.SeverityCritical
	}
	d.Shortfall = round2(pct)
	d.Deficiency = int(math.Round(pct))
	return d
}

func phDeviation(actual, ideal float64) dto.Deficiency {
	d := dto.Deficiency{Nutrient: PH, Status: dto.SeverityOptimal, Actual: actual, Ideal: ideal}
	diff := math.Abs(ideal - actual)
	if diff <= phTolerance {
		return d
	}
	d.Status = dto.SeverityLow
	if diff > phCritical {
		d.Status = dto.SeverityCritical
	}
	d.Shortfall = round2(diff * phScale)
	d.Deficiency = int(math.Round(diff * phScale))
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
