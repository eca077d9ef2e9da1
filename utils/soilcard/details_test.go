package soilcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDetails_SampleCard(t *testing.T) {
	farmer, location := ExtractDetails(Normalize(sampleCard))

	assert.Equal(t, map[string]string{
		"Farmer Name":   "Ramesh Kumar",
		"Father Name":   "Suresh Kumar",
		"Mobile Number": "9876543210",
		"Sample Number": "SHC/2023/0457",
		"Survey Number": "112/3",
	}, farmer)
	assert.Equal(t, map[string]string{
		"Village":      "Rampur",
		"Taluk/Tehsil": "Niphad",
		"District":     "Nashik",
		"State":        "Maharashtra",
		"Pincode":      "422001",
	}, location)
}

func TestExtractDetails_ValueOnNextLine(t *testing.T) {
	farmer, _ := ExtractDetails("Farmer Name\nRamesh Kumar\nMobile: 98765 43210")

	assert.Equal(t, "Ramesh Kumar", farmer["Farmer Name"])
	assert.Equal(t, "9876543210", farmer["Mobile Number"])
}

func TestExtractDetails_Missing(t *testing.T) {
	farmer, location := ExtractDetails("pH 6.39\nEC 0.37")
	assert.Empty(t, farmer)
	assert.Empty(t, location)
}

func TestExtractRecommendations(t *testing.T) {
	text := "Fertilizer Recommendations:\n1. Apply urea in two splits\n- Add FYM 5 t/ha\n\nSignature"
	assert.Equal(t, []string{"Apply urea in two splits", "Add FYM 5 t/ha"}, ExtractRecommendations(text))

	assert.Nil(t, ExtractRecommendations("pH 6.39"))
}
