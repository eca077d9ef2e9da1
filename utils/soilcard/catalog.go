package soilcard

import (
	"regexp"
	"strings"
)

// Canonical parameter names, in the order they are printed on the card.
const (
	ParamPH         = "pH"
	ParamEC         = "Electrical Conductivity"
	ParamOC         = "Organic Carbon"
	ParamNitrogen   = "Nitrogen"
	ParamPhosphorus = "Phosphorus"
	ParamPotassium  = "Potassium"
	ParamSulphur    = "Sulphur"
	ParamZinc       = "Zinc"
	ParamBoron      = "Boron"
	ParamIron       = "Iron"
	ParamManganese  = "Manganese"
	ParamCopper     = "Copper"
)

// ParameterSpec describes one row of a Soil Health Card.
type ParameterSpec struct {
	Name    string
	Key     string
	Aliases []string
	Unit    string
	Min     float64
	Max     float64
	// Fractional parameters are always reported with a decimal point.
	Fractional bool
	// Essential parameters drive deficiency analysis.
	Essential   bool
	NormalLevel string
}

// InRange reports whether v is a plausible reading for the parameter.
func (p ParameterSpec) InRange(v float64) bool {
	return v >= p.Min && v <= p.Max
}

var catalog = []ParameterSpec{
	{
		Name:        ParamPH,
		Key:         "pH",
		Aliases:     []string{"Soil pH", "pH", "PH", "Ph", "p.H", "P.H", "Soil Reaction"},
		Unit:        "",
		Min:         3,
		Max:         14,
		Fractional:  true,
		Essential:   true,
		NormalLevel: "6.5 - 7.5",
	},
	{
		Name:        ParamEC,
		Key:         "EC",
		Aliases:     []string{"Electrical Conductivity", "Elec. Conductivity", "Conductivity", "EC", "E.C"},
		Unit:        "dS/m",
		Min:         0,
		Max:         10,
		Fractional:  true,
		NormalLevel: "< 1.0",
	},
	{
		Name:        ParamOC,
		Key:         "OC",
		Aliases:     []string{"Organic Carbon", "Org. Carbon", "Organic C", "OC", "O.C"},
		Unit:        "%",
		Min:         0.01,
		Max:         5,
		Fractional:  true,
		Essential:   true,
		NormalLevel: "0.50 - 0.75",
	},
	{
		Name:        ParamNitrogen,
		Key:         "N",
		Aliases:     []string{"Available Nitrogen", "Nitrogen", "N"},
		Unit:        "kg/ha",
		Min:         5,
		Max:         1500,
		Essential:   true,
		NormalLevel: "280 - 560",
	},
	{
		Name:        ParamPhosphorus,
		Key:         "P",
		Aliases:     []string{"Available Phosphorus", "Available Phosphorous", "Phosphorus", "Phosphorous", "P"},
		Unit:        "kg/ha",
		Min:         1,
		Max:         500,
		Essential:   true,
		NormalLevel: "10 - 25",
	},
	{
		Name:        ParamPotassium,
		Key:         "K",
		Aliases:     []string{"Available Potassium", "Potassium", "K"},
		Unit:        "kg/ha",
		Min:         10,
		Max:         2000,
		Essential:   true,
		NormalLevel: "110 - 280",
	},
	{
		Name:        ParamSulphur,
		Key:         "S",
		Aliases:     []string{"Available Sulphur", "Available Sulfur", "Sulphur", "Sulfur"},
		Unit:        "ppm",
		Min:         0.5,
		Max:         200,
		NormalLevel: "> 10",
	},
	{
		Name:        ParamZinc,
		Key:         "Zn",
		Aliases:     []string{"Available Zinc", "Zinc", "Zn"},
		Unit:        "ppm",
		Min:         0.5,
		Max:         50,
		NormalLevel: "> 0.6",
	},
	{
		Name:        ParamBoron,
		Key:         "B",
		Aliases:     []string{"Available Boron", "Boron"},
		Unit:        "ppm",
		Min:         0.05,
		Max:         10,
		NormalLevel: "> 0.5",
	},
	{
		Name:        ParamIron,
		Key:         "Fe",
		Aliases:     []string{"Available Iron", "Iron", "Fe"},
		Unit:        "ppm",
		Min:         0.5,
		Max:         300,
		NormalLevel: "> 4.5",
	},
	{
		Name:        ParamManganese,
		Key:         "Mn",
		Aliases:     []string{"Available Manganese", "Manganese", "Mn"},
		Unit:        "ppm",
		Min:         0.5,
		Max:         200,
		NormalLevel: "> 2.0",
	},
	{
		Name:        ParamCopper,
		Key:         "Cu",
		Aliases:     []string{"Available Copper", "Copper", "Cu"},
		Unit:        "ppm",
		Min:         0.05,
		Max:         50,
		NormalLevel: "> 0.2",
	},
}

// Names of the parameters the full-text fallback is allowed to fill.
var fallbackParameters = []string{ParamPH, ParamEC, ParamOC, ParamPhosphorus}

// Catalog returns a copy of the twelve card parameters in card order.
func Catalog() []ParameterSpec {
	out := make([]ParameterSpec, len(catalog))
	for i, p := range catalog {
		p.Aliases = append([]string(nil), p.Aliases...)
		out[i] = p
	}
	return out
}

// EssentialNames lists the parameters used for deficiency analysis.
func EssentialNames() []string {
	var names []string
	for _, p := range catalog {
		if p.Essential {
			names = append(names, p.Name)
		}
	}
	return names
}

var (
	lookupIndex       = buildLookupIndex()
	lookupParenRe     = regexp.MustCompile(`\(([^)]*)\)`)
	lookupSpaceRe     = regexp.MustCompile(`[\s_]+`)
	lookupAvailableRe = regexp.MustCompile(`^available\s+`)
)

func buildLookupIndex() map[string]int {
	idx := make(map[string]int)
	for i, p := range catalog {
		for _, k := range append([]string{p.Name, p.Key}, p.Aliases...) {
			idx[lookupKey(k)] = i
		}
	}
	return idx
}

func lookupKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = lookupSpaceRe.ReplaceAllString(s, " ")
	return lookupAvailableRe.ReplaceAllString(s, "")
}

// Lookup resolves a free-form parameter label such as "Nitrogen (N)",
// "available potassium" or "EC" to its catalog entry.
func Lookup(label string) (ParameterSpec, bool) {
	base := strings.TrimSpace(lookupParenRe.ReplaceAllString(label, " "))
	if i, ok := lookupIndex[lookupKey(base)]; ok {
		return Catalog()[i], true
	}
	if m := lookupParenRe.FindStringSubmatch(label); m != nil {
		if i, ok := lookupIndex[lookupKey(m[1])]; ok {
			return Catalog()[i], true
		}
	}
	return ParameterSpec{}, false
}
