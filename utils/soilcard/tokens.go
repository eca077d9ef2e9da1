package soilcard

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// numericToken is a number found in a context window, with byte offsets into
// that window.
type numericToken struct {
	text    string
	value   float64
	start   int
	end     int
	integer bool
}

var numberRe = regexp.MustCompile(`\d+\.\d+|\d+|\.\d+`)

// numericTokens lists the numbers in s. Digits glued to a preceding letter
// belong to a symbol like P2O5 or K2O and are skipped.
func numericTokens(s string) []numericToken {
	var out []numericToken
	for _, loc := range numberRe.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		if start > 0 {
			if r, _ := utf8.DecodeLastRuneInString(s[:start]); unicode.IsLetter(r) {
				continue
			}
		}
		text := s[start:end]
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		out = append(out, numericToken{
			text:    text,
			value:   v,
			start:   start,
			end:     end,
			integer: !strings.Contains(text, "."),
		})
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wholeWord reports whether s[start:end] is not glued to a letter or digit on
// either side.
func wholeWord(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}
