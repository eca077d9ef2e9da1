package soilcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specNamed(t *testing.T, name string) ParameterSpec {
	t.Helper()
	for _, p := range Catalog() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no catalog entry %q", name)
	return ParameterSpec{}
}

// rowContext builds a score context for a window where alias is the first
// occurrence of the parameter name.
func rowContext(t *testing.T, name, window, alias string) (*scoreContext, []numericToken) {
	t.Helper()
	start := strings.Index(window, alias)
	require.GreaterOrEqual(t, start, 0)
	tokens := numericTokens(window)
	return newScoreContext(specNamed(t, name), window, start, start+len(alias), tokens), tokens
}

func tokenText(t *testing.T, tokens []numericToken, text string) numericToken {
	t.Helper()
	for _, tok := range tokens {
		if tok.text == text {
			return tok
		}
	}
	t.Fatalf("no token %q", text)
	return numericToken{}
}

func TestNumericTokens(t *testing.T) {
	tokens := numericTokens("4 Nitrogen 305.00 as P2O5 or K20, .5 and 7")
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.text)
	}
	assert.Equal(t, []string{"4", "305.00", ".5", "7"}, texts)
	assert.True(t, tokens[0].integer)
	assert.False(t, tokens[1].integer)
	assert.InDelta(t, 0.5, tokens[2].value, 1e-9)
}

func TestProximityRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamNitrogen, "4 Nitrogen 305.00 kg/ha 280", "Nitrogen")

	near := proximityRule.apply(sc, tokenText(t, tokens, "305.00"))
	far := proximityRule.apply(sc, tokenText(t, tokens, "280"))
	before := proximityRule.apply(sc, tokenText(t, tokens, "4"))

	assert.Greater(t, near.delta, far.delta)
	assert.Greater(t, far.delta, 0.0)
	assert.Equal(t, precedingPenalty, before.delta)
}

func TestSerialNumberRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamPH, "1 pH 6.39 Acidic 7, Neutral", "pH")

	assert.True(t, serialNumberRule.apply(sc, tokenText(t, tokens, "1")).reject)
	assert.False(t, serialNumberRule.apply(sc, tokenText(t, tokens, "6.39")).reject)
	assert.False(t, serialNumberRule.apply(sc, tokenText(t, tokens, "7")).reject, "only the first small integer is the serial")
}

func TestSerialNumberRule_OnlyInMatchedRow(t *testing.T) {
	sc, tokens := rowContext(t, ParamPhosphorus, "Available Phosphorus 36.00\n5 kg/ha", "Available Phosphorus")
	assert.Equal(t, -1, sc.serialStart)
	assert.False(t, serialNumberRule.apply(sc, tokenText(t, tokens, "5")).reject)
}

func TestSerialNumberRule_NotAfterName(t *testing.T) {
	sc, tokens := rowContext(t, ParamSulphur, "Sulphur 8 ppm Sufficient > 10", "Sulphur")
	assert.Equal(t, -1, sc.serialStart)
	assert.False(t, serialNumberRule.apply(sc, tokenText(t, tokens, "8")).reject)

	sc, tokens = rowContext(t, ParamManganese, "11 Manganese 7 ppm", "Manganese")
	assert.True(t, serialNumberRule.apply(sc, tokenText(t, tokens, "11")).reject)
	assert.False(t, serialNumberRule.apply(sc, tokenText(t, tokens, "7")).reject)
}

func TestRangeRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamPH, "pH 639 6.39", "pH")
	assert.True(t, rangeRule.apply(sc, tokenText(t, tokens, "639")).reject)
	assert.False(t, rangeRule.apply(sc, tokenText(t, tokens, "6.39")).reject)
}

func TestDecimalPreferenceRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamPH, "pH 7 6.39", "pH")
	assert.Equal(t, decimalPenalty, decimalPreferenceRule.apply(sc, tokenText(t, tokens, "7")).delta)
	assert.Zero(t, decimalPreferenceRule.apply(sc, tokenText(t, tokens, "6.39")).delta)

	sc, tokens = rowContext(t, ParamNitrogen, "Nitrogen 305", "Nitrogen")
	assert.Zero(t, decimalPreferenceRule.apply(sc, tokenText(t, tokens, "305")).delta)
}

func TestNormalLevelRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamNitrogen, "Nitrogen 305.00 Normal Level 280", "Nitrogen")
	assert.Zero(t, normalLevelRule.apply(sc, tokenText(t, tokens, "305.00")).delta)
	assert.Equal(t, normalLevelPenalty, normalLevelRule.apply(sc, tokenText(t, tokens, "280")).delta)

	sc, tokens = rowContext(t, ParamNitrogen, "Nitrogen 305.00 normal 280", "Nitrogen")
	assert.Equal(t, -1, sc.normalLevel, "a bare rating word is not a Normal Level heading")
	assert.Zero(t, normalLevelRule.apply(sc, tokenText(t, tokens, "280")).delta)
}

func TestRatingBoundaryRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamPH, "1 pH 6.39 Acidic 7, Neutral", "pH")
	assert.Zero(t, ratingBoundaryRule.apply(sc, tokenText(t, tokens, "6.39")).delta)
	assert.Equal(t, ratingBoundaryPenalty, ratingBoundaryRule.apply(sc, tokenText(t, tokens, "7")).delta)
}

func TestRangePatternRule(t *testing.T) {
	sc, tokens := rowContext(t, ParamNitrogen, "Nitrogen 305.00 Medium 280 - 560", "Nitrogen")
	assert.Zero(t, rangePatternRule.apply(sc, tokenText(t, tokens, "305.00")).delta)
	assert.Equal(t, rangePatternPenalty, rangePatternRule.apply(sc, tokenText(t, tokens, "280")).delta)
	assert.Equal(t, rangePatternPenalty, rangePatternRule.apply(sc, tokenText(t, tokens, "560")).delta)

	sc, tokens = rowContext(t, ParamEC, "EC 0.37 dS/m < 1.0", "EC")
	assert.Equal(t, rangePatternPenalty, rangePatternRule.apply(sc, tokenText(t, tokens, "1.0")).delta)

	sc, tokens = rowContext(t, ParamPotassium, "Potassium 69.00 110 to 280", "Potassium")
	assert.Equal(t, rangePatternPenalty, rangePatternRule.apply(sc, tokenText(t, tokens, "110")).delta)
}

func TestSelectCandidate_TieGoesToEarlierToken(t *testing.T) {
	spec := specNamed(t, ParamNitrogen)
	sc := &scoreContext{spec: spec, serialStart: -1, normalLevel: -1, ratingBound: -1}
	tokens := []numericToken{
		{text: "300", value: 300, start: 5, end: 8, integer: true},
		{text: "400", value: 400, start: 10, end: 13, integer: true},
	}
	flat := scoringRule{"flat", func(*scoreContext, numericToken) verdict { return verdict{delta: 1} }}

	tok, s, ok := selectCandidate(sc, tokens, []scoringRule{flat}, nopObserver{})
	require.True(t, ok)
	assert.Equal(t, "300", tok.text)
	assert.Equal(t, 1.0, s)
}

func TestSelectCandidate_RequiresPositiveScore(t *testing.T) {
	sc, tokens := rowContext(t, ParamPH, "7 pH", "pH")
	_, _, ok := selectCandidate(sc, tokens, rowRules, nopObserver{})
	assert.False(t, ok)
}
