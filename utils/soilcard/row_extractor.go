package soilcard

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

const (
	// Lines shorter than this are OCR speckle.
	minLineLength = 2
	// A table row can be split by OCR over the matched line and the next two.
	windowLines = 3
)

type aliasPattern struct {
	re *regexp.Regexp
	// Single-letter symbols (N, P, K) also turn up in text like "N/A".
	weak bool
}

type aliasMatcher struct {
	patterns []aliasPattern
}

// newAliasMatcher compiles the aliases of p. Aliases of one or two letters
// (N, P, K, pH, EC, Zn...) are matched case-sensitively.
func newAliasMatcher(p ParameterSpec) aliasMatcher {
	m := aliasMatcher{}
	for _, a := range p.Aliases {
		expr := strings.ReplaceAll(regexp.QuoteMeta(a), " ", `\s+`)
		n := utf8.RuneCountInString(a)
		if n > 2 {
			expr = "(?i)" + expr
		}
		m.patterns = append(m.patterns, aliasPattern{re: regexp.MustCompile(expr), weak: n == 1})
	}
	return m
}

type aliasHit struct {
	param int
	start int
	end   int
	weak  bool
}

// find returns the earliest whole-word alias occurrence in line, preferring
// the longest alias at the same offset. A weak alias is only reported when
// no other alias of the parameter occurs on the line.
func (m aliasMatcher) find(line string, param int) (aliasHit, bool) {
	var (
		best  aliasHit
		found bool
	)
	for _, p := range m.patterns {
		for _, loc := range p.re.FindAllStringIndex(line, -1) {
			if !wholeWord(line, loc[0], loc[1]) {
				continue
			}
			hit := aliasHit{param: param, start: loc[0], end: loc[1], weak: p.weak}
			if !found || betterHit(hit, best) {
				best, found = hit, true
			}
			break
		}
	}
	return best, found
}

func betterHit(h, best aliasHit) bool {
	if h.weak != best.weak {
		return !h.weak
	}
	return h.start < best.start || (h.start == best.start && h.end > best.end)
}

// lineHits finds every parameter named on line. A hit that lies inside a
// longer hit for a different parameter is dropped, so the "P" in "P.H" does
// not count as Phosphorus.
func lineHits(line string, matchers []aliasMatcher) []aliasHit {
	var hits []aliasHit
	for i, m := range matchers {
		if h, ok := m.find(line, i); ok {
			hits = append(hits, h)
		}
	}
	var out []aliasHit
	for _, h := range hits {
		dominated := false
		for _, o := range hits {
			if o.param != h.param && o.start <= h.start && o.end >= h.end && o.end-o.start > h.end-h.start {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, h)
		}
	}
	return out
}

func contentLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if len(l) < minLineLength {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// ExtractByRow reads the Test Value of each catalog parameter from the table
// row that names it. Rows naming the parameter by a full alias are tried
// before rows that only carry its one-letter symbol. Parameters without an
// acceptable candidate are left out of the result.
func ExtractByRow(text string, catalog []ParameterSpec, obs Observer) map[string]dto.ExtractedParameter {
	obs = observerOrNop(obs)
	out := make(map[string]dto.ExtractedParameter)

	lines := contentLines(text)
	matchers := make([]aliasMatcher, len(catalog))
	for i, p := range catalog {
		matchers[i] = newAliasMatcher(p)
	}
	hits := make([][]aliasHit, len(lines))
	for i, l := range lines {
		hits[i] = lineHits(l, matchers)
	}

	for pi, spec := range catalog {
		if _, done := out[spec.Name]; done {
			continue
		}
		resolved := false
		for _, li := range rowOrder(hits, pi) {
			hit, _ := hitFor(hits[li], pi)
			obs.Observe(Event{Stage: StageMatch, Parameter: spec.Name, Token: lines[li][hit.start:hit.end]})

			window := buildWindow(lines, hits, li, pi)
			tokens := numericTokens(window)
			sc := newScoreContext(spec, window, hit.start, hit.end, tokens)
			tok, s, found := selectCandidate(sc, tokens, rowRules, obs)
			if !found {
				continue
			}

			p := dto.ExtractedParameter{
				Name:   spec.Name,
				Value:  tok.value,
				Unit:   spec.Unit,
				Source: dto.SourceRow,
			}
			if rating, ok := ClassifyRating(ratingZone(sc, tok, tokens)); ok {
				p.Rating = rating
			}
			out[spec.Name] = p
			obs.Observe(Event{Stage: StageAccept, Parameter: spec.Name, Token: tok.text, Score: s})
			resolved = true
			break
		}
		if !resolved {
			obs.Observe(Event{Stage: StageUnresolved, Parameter: spec.Name, Reason: "row"})
		}
	}
	return out
}

// rowOrder lists the lines naming param, strong hits first, each group in
// reading order.
func rowOrder(hits [][]aliasHit, param int) []int {
	var strong, weak []int
	for li := range hits {
		h, ok := hitFor(hits[li], param)
		switch {
		case !ok:
		case h.weak:
			weak = append(weak, li)
		default:
			strong = append(strong, li)
		}
	}
	return append(strong, weak...)
}

func hitFor(hits []aliasHit, param int) (aliasHit, bool) {
	for _, h := range hits {
		if h.param == param {
			return h, true
		}
	}
	return aliasHit{}, false
}

// buildWindow joins the matched line with up to two following lines, stopping
// early at a line that starts another parameter's row.
func buildWindow(lines []string, hits [][]aliasHit, li, param int) string {
	parts := []string{lines[li]}
	for j := li + 1; j < len(lines) && j < li+windowLines; j++ {
		if namesOtherParameter(hits[j], param) {
			break
		}
		parts = append(parts, lines[j])
	}
	return strings.Join(parts, "\n")
}

func namesOtherParameter(hits []aliasHit, param int) bool {
	for _, h := range hits {
		if h.param != param {
			return true
		}
	}
	return false
}
