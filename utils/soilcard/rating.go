package soilcard

import (
	"regexp"
	"strings"
)

type ratingTerm struct {
	label string
	re    *regexp.Regexp
}

// ratingTerms are checked in priority order; pH-style terms come first.
var ratingTerms = []ratingTerm{
	{"Acidic", regexp.MustCompile(`(?i)\bacidic\b`)},
	{"Alkaline", regexp.MustCompile(`(?i)\balkaline\b`)},
	{"Neutral", regexp.MustCompile(`(?i)\bneutral\b`)},
	{"Normal", regexp.MustCompile(`(?i)\bnormal\b`)},
	{"Sufficient", regexp.MustCompile(`(?i)\bsufficient\b`)},
	{"High", regexp.MustCompile(`(?i)\bhigh\b`)},
	{"Medium", regexp.MustCompile(`(?i)\b(?:medium|moderate)\b`)},
	{"Low", regexp.MustCompile(`(?i)\blow\b`)},
	{"Critical", regexp.MustCompile(`(?i)\bcritical\b`)},
	{"Deficient", regexp.MustCompile(`(?i)\bdeficien(?:t|cy)\b`)},
}

var ratingWordRe = regexp.MustCompile(`(?i)\b(?:acidic|alkaline|neutral|normal|sufficient|high|medium|moderate|low|critical|deficient|deficiency)\b`)

// ClassifyRating returns the highest-priority rating word found in zone.
func ClassifyRating(zone string) (string, bool) {
	for _, t := range ratingTerms {
		if t.re.MatchString(zone) {
			return t.label, true
		}
	}
	return "", false
}

// canonicalRating maps free-form rating text onto the card vocabulary,
// keeping unknown wording as-is.
func canonicalRating(s string) string {
	s = strings.TrimSpace(s)
	if label, ok := ClassifyRating(s); ok {
		return label
	}
	return s
}
