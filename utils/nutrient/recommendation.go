package nutrient

import (
	"math"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

const (
	hectaresPerAcre = 0.405
	// Vermicompost dose in kg per hectare.
	vermicompostPerHa = 3000.0
	// Agricultural lime in kg per hectare per pH unit off the ideal.
	limePerHaPerPH = 500.0
)

// Product is a fertilizer sold in whole bags.
type Product struct {
	Name     string
	Nutrient string
	// Concentration is the nutrient content in percent; zero for soil
	// amendments dosed by area.
	Concentration float64
	Price         float64
	BagKg         float64
	Unit          string
}

var products = map[string]Product{
	Nitrogen:      {Name: "Neem Coated Urea", Nutrient: Nitrogen, Concentration: 46, Price: 300, BagKg: 50, Unit: "bags"},
	Phosphorus:    {Name: "Single Super Phosphate (SSP)", Nutrient: Phosphorus, Concentration: 16, Price: 400, BagKg: 50, Unit: "bags"},
	Potassium:     {Name: "Muriate of Potash (MOP)", Nutrient: Potassium, Concentration: 60, Price: 1200, BagKg: 50, Unit: "bags"},
	OrganicCarbon: {Name: "Vermicompost", Nutrient: OrganicCarbon, Price: 250, BagKg: 40, Unit: "bags"},
	PH:            {Name: "Agricultural Lime", Nutrient: PH, Price: 200, BagKg: 50, Unit: "bags"},
}

// ProductFor returns the product that corrects nutrient.
func ProductFor(nutrient string) (Product, bool) {
	p, ok := products[nutrient]
	return p, ok
}

// Recommend prices one product per deficient nutrient for a farm of
// farmSizeAcres. Priority follows the position of the nutrient in
// deficiencies, which Analyze returns most severe first.
func Recommend(values dto.SoilValues, crop dto.Crop, farmSizeAcres float64, deficiencies []dto.Deficiency) ([]dto.Recommendation, error) {
	std, err := Standard(crop)
	if err != nil {
		return nil, err
	}
	if farmSizeAcres < dto.MinFarmSize {
		return nil, dto.ErrFarmSizeTooSmall
	}
	ha := farmSizeAcres * hectaresPerAcre

	out := []dto.Recommendation{}
	for i, d := range deficiencies {
		if d.Status == dto.SeverityOptimal {
			continue
		}
		p, ok := products[d.Nutrient]
		if !ok {
			continue
		}

		var bags float64
		switch d.Nutrient {
		case Nitrogen:
			bags = (std.N - values.N) * ha / p.Concentration / p.BagKg
		case Phosphorus:
			bags = (std.P - values.P) * ha / p.Concentration / p.BagKg
		case Potassium:
			bags = (std.K - values.K) * ha / p.Concentration / p.BagKg
		case OrganicCarbon:
			bags = vermicompostPerHa / p.BagKg * ha
		case PH:
			bags = math.Abs(std.PH-values.PH) * limePerHaPerPH / p.BagKg * ha
		}

		qty := int(math.Ceil(math.Max(1, bags)))
		out = append(out, dto.Recommendation{
			Fertilizer: p.Name,
			Nutrient:   d.Nutrient,
			Quantity:   qty,
			Unit:       p.Unit,
			Cost:       float64(qty) * p.Price,
			Priority:   i + 1,
		})
	}
	return out, nil
}

// TotalCost sums the cost of every recommendation.
func TotalCost(recs []dto.Recommendation) float64 {
	var total float64
	for _, r := range recs {
		total += r.Cost
	}
	return total
}

// Plan analyses values and prices the resulting recommendations.
func Plan(values dto.SoilValues, crop dto.Crop, farmSizeAcres float64) ([]dto.Deficiency, []dto.Recommendation, error) {
	defs, err := Analyze(values, crop)
	if err != nil {
		return nil, nil, err
	}
	recs, err := Recommend(values, crop, farmSizeAcres, defs)
	if err != nil {
		return nil, nil, err
	}
	return defs, recs, nil
}
