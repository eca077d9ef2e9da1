package soilcard

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxNormalizePasses bounds the fixed-point loop in Normalize.
const maxNormalizePasses = 6

type rewriteRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

func rule(name, pattern, repl string) rewriteRule {
	return rewriteRule{name: name, re: regexp.MustCompile(pattern), repl: repl}
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

var whitespaceRules = []rewriteRule{
	rule("collapse-spaces", `[^\S\n]+`, " "),
	rule("trim-lines", `(?m)^ +| +$`, ""),
}

// normalizeRules run in order on every pass.
var normalizeRules = []rewriteRule{
	rule("separators", `[|¦‖\x{2500}-\x{257F}]`, " "),
	whitespaceRules[0],
	whitespaceRules[1],

	rule("unit-dsm-inverse", `(?i)\bd\s*[s5]\s*m\s*[-−]\s*1\b`, "dS/m"),
	rule("unit-dsm", `(?i)\bd\s*[s5]\s*/\s*m\b`, "dS/m"),
	rule("unit-kgha", `(?i)\bk\s*[gq9]\s*/\s*h[ao@]{1,3}`, "kg/ha"),
	rule("unit-ppm", `(?i)\bp\s?p\s?(?:m|rn|n)\b`, "ppm"),
	rule("unit-percent", `(?i)\b(?:o/o|per\s?cent)\b`, "%"),

	rule("leading-o", `(?m)(^|[\s:=])[Oo]([.,]?\d)`, "${1}0${2}"),
	rule("leading-l", `(?m)(^|[\s:=])[lI]([.,]?\d)`, "${1}1${2}"),
	rule("trailing-o", `(\d)[Oo]\b`, "${1}0"),

	rule("thousands", `(\d),(\d{3})\b`, "${1}${2}"),
	rule("decimal-comma", `(\d),(\d{1,2})\b`, "${1}.${2}"),
	rule("ph-split", `(?i)(\bp\.?h\b[^\d\n]{0,12}?)([3-9]) (\d{2})\b`, "${1}${2}.${3}"),
	rule("ph-glued", `(?i)(\bp\.?h\b[^\d\n]{0,12}?)([3-9])(\d{2})\b`, "${1}${2}.${3}"),
	rule("lone-zero", `(?m)(^|\s)0 (\d{2})\b`, "${1}0.${2}"),
	rule("stray-zeros", `\b(\d{2,3}) 00\b`, "${1}.00"),

	rule("chemical-symbol", `([A-Za-z])\s*\((?:[A-Z][a-z]?\d*){1,3}\)`, "${1} "),

	whitespaceRules[0],
	whitespaceRules[1],
}

// Normalize repairs the OCR damage typically seen on Soil Health Card scans.
// Line breaks are preserved. The result is a fixed point of the rule set, so
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	text := lineBreaks.Replace(norm.NFKC.String(raw))
	for i := 0; i < maxNormalizePasses; i++ {
		next := applyRules(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func applyRules(text string) string {
	for _, r := range normalizeRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}
