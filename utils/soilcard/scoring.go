package soilcard

import (
	"regexp"
	"strings"
)

const (
	proximityWeight       = 10.0
	precedingPenalty      = -3.0
	decimalPenalty        = -8.0
	normalLevelPenalty    = -15.0
	ratingBoundaryPenalty = -12.0
	rangePatternPenalty   = -12.0
)

var (
	normalLevelRe = regexp.MustCompile(`(?i)\b(?:normal|ideal|optimum|reference|sufficiency)\s+(?:level|range|value)s?\b|\bcritical\s+limits?\b`)

	rangePatternRe = regexp.MustCompile(`\d*\.?\d+\s*(?:[-–—]|\bto\b)\s*\d*\.?\d+|(?:<=|>=|[<>≤≥])\s*\d*\.?\d+`)
)

// scoreContext is everything the scoring rules know about one alias match
// and the text around it. Offsets are bytes into window; -1 means absent.
type scoreContext struct {
	spec        ParameterSpec
	window      string
	aliasStart  int
	aliasEnd    int
	serialStart int
	normalLevel int
	ratingBound int
	ranges      [][]int
}

// newScoreContext analyses window once so every rule works from the same
// offsets. The Sr. No. column precedes the parameter name, so only tokens
// before aliasStart can be the serial number.
func newScoreContext(spec ParameterSpec, window string, aliasStart, aliasEnd int, tokens []numericToken) *scoreContext {
	sc := &scoreContext{
		spec:        spec,
		window:      window,
		aliasStart:  aliasStart,
		aliasEnd:    aliasEnd,
		serialStart: -1,
		normalLevel: -1,
		ratingBound: -1,
		ranges:      rangePatternRe.FindAllStringIndex(window, -1),
	}
	for _, tok := range tokens {
		if tok.end > aliasStart {
			break
		}
		if tok.integer && tok.value >= 1 && tok.value <= 12 {
			sc.serialStart = tok.start
			break
		}
	}
	tail := window[aliasEnd:]
	if loc := normalLevelRe.FindStringIndex(tail); loc != nil {
		sc.normalLevel = aliasEnd + loc[0]
	}
	if loc := ratingWordRe.FindStringIndex(tail); loc != nil {
		sc.ratingBound = aliasEnd + loc[1]
	}
	return sc
}

func (sc *scoreContext) inRangeExpression(tok numericToken) bool {
	for _, span := range sc.ranges {
		if tok.start >= span[0] && tok.end <= span[1] {
			return true
		}
	}
	return false
}

type verdict struct {
	delta  float64
	reject bool
}

// scoringRule is one named contribution to a candidate's score.
type scoringRule struct {
	name  string
	apply func(sc *scoreContext, tok numericToken) verdict
}

var (
	proximityRule = scoringRule{"proximity", func(sc *scoreContext, tok numericToken) verdict {
		if tok.end <= sc.aliasStart {
			return verdict{delta: precedingPenalty}
		}
		d := float64(tok.start - sc.aliasEnd)
		if d < 0 {
			d = 0
		}
		return verdict{delta: proximityWeight / (1 + d/10)}
	}}

	// The first small integer of a table row is its Sr. No. column.
	serialNumberRule = scoringRule{"serial-number", func(sc *scoreContext, tok numericToken) verdict {
		return verdict{reject: sc.serialStart >= 0 && tok.start == sc.serialStart}
	}}

	rangeRule = scoringRule{"range", func(sc *scoreContext, tok numericToken) verdict {
		return verdict{reject: !sc.spec.InRange(tok.value)}
	}}

	decimalPreferenceRule = scoringRule{"decimal-preference", func(sc *scoreContext, tok numericToken) verdict {
		if sc.spec.Fractional && tok.integer {
			return verdict{delta: decimalPenalty}
		}
		return verdict{}
	}}

	normalLevelRule = scoringRule{"normal-level", func(sc *scoreContext, tok numericToken) verdict {
		if sc.normalLevel >= 0 && tok.start >= sc.normalLevel {
			return verdict{delta: normalLevelPenalty}
		}
		return verdict{}
	}}

	// Numbers after a rating word describe the Normal Level column, as in
	// "6.39 Acidic 7, Neutral".
	ratingBoundaryRule = scoringRule{"rating-boundary", func(sc *scoreContext, tok numericToken) verdict {
		if sc.ratingBound >= 0 && tok.start >= sc.ratingBound {
			return verdict{delta: ratingBoundaryPenalty}
		}
		return verdict{}
	}}

	rangePatternRule = scoringRule{"range-pattern", func(sc *scoreContext, tok numericToken) verdict {
		if sc.inRangeExpression(tok) {
			return verdict{delta: rangePatternPenalty}
		}
		return verdict{}
	}}
)

var rowRules = []scoringRule{
	proximityRule,
	serialNumberRule,
	rangeRule,
	decimalPreferenceRule,
	normalLevelRule,
	ratingBoundaryRule,
	rangePatternRule,
}

var fallbackRules = []scoringRule{
	proximityRule,
	rangeRule,
	decimalPreferenceRule,
	rangePatternRule,
}

// score runs rules over tok. A rejected token reports the rule that
// rejected it.
func score(sc *scoreContext, tok numericToken, rules []scoringRule) (float64, string, bool) {
	var total float64
	for _, r := range rules {
		v := r.apply(sc, tok)
		if v.reject {
			return 0, r.name, false
		}
		total += v.delta
	}
	return total, "", true
}

// selectCandidate returns the best-scoring token. Only positive scores are
// accepted and ties go to the earlier token.
func selectCandidate(sc *scoreContext, tokens []numericToken, rules []scoringRule, obs Observer) (numericToken, float64, bool) {
	var (
		best      numericToken
		bestScore float64
		found     bool
	)
	for _, tok := range tokens {
		s, rejectedBy, ok := score(sc, tok, rules)
		if !ok {
			obs.Observe(Event{Stage: StageReject, Parameter: sc.spec.Name, Token: tok.text, Reason: rejectedBy})
			continue
		}
		obs.Observe(Event{Stage: StageCandidate, Parameter: sc.spec.Name, Token: tok.text, Score: s})
		if s <= 0 {
			continue
		}
		if !found || s > bestScore {
			best, bestScore, found = tok, s, true
		}
	}
	return best, bestScore, found
}

// ratingZone is the text between the parameter name and the Normal Level
// column for the chosen token: it ends at the end of the token's line, at a
// Normal Level phrase, at a range expression or at the next number, whichever
// comes first.
func ratingZone(sc *scoreContext, tok numericToken, tokens []numericToken) string {
	end := len(sc.window)
	if nl := strings.IndexByte(sc.window[tok.end:], '\n'); nl >= 0 {
		end = tok.end + nl
	}
	if sc.normalLevel >= tok.end && sc.normalLevel < end {
		end = sc.normalLevel
	}
	for _, span := range sc.ranges {
		if span[0] >= tok.end && span[0] < end {
			end = span[0]
			break
		}
	}
	for _, t := range tokens {
		if t.start >= tok.end {
			if t.start < end {
				end = t.start
			}
			break
		}
	}
	start := sc.aliasEnd
	if start > end {
		return ""
	}
	return sc.window[start:end]
}
