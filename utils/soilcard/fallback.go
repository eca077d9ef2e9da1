package soilcard

import (
	"regexp"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

// fallbackSpan is how far past a keyword the fallback looks for a value.
const fallbackSpan = 60

// looseKeywords tolerate the spacing and punctuation damage that defeats
// whole-word alias matching.
var looseKeywords = map[string]*regexp.Regexp{
	ParamPH:         regexp.MustCompile(`(?i)\bp\s*\.?\s*h\b|\bsoil\s+reaction\b`),
	ParamEC:         regexp.MustCompile(`(?i)\be\s*\.?\s*c\b|conductivity`),
	ParamOC:         regexp.MustCompile(`(?i)\bo\s*\.?\s*c\b|organic\s*carbon|\bcarbon\b`),
	ParamPhosphorus: regexp.MustCompile(`(?i:phospho?r\w*)|\bP[\s:=-]`),
}

// ExtractFallback scans the whole text for the essential parameters the row
// pass missed. It only returns parameters absent from resolved.
func ExtractFallback(text string, catalog []ParameterSpec, resolved map[string]dto.ExtractedParameter, obs Observer) map[string]dto.ExtractedParameter {
	obs = observerOrNop(obs)
	out := make(map[string]dto.ExtractedParameter)

	var tokens []numericToken
	var ranges [][]int
	tokenized := false

	for _, spec := range catalog {
		if _, ok := resolved[spec.Name]; ok {
			continue
		}
		keyword, ok := looseKeywords[spec.Name]
		if !ok || !isFallbackParameter(spec.Name) {
			continue
		}
		if !tokenized {
			tokens = numericTokens(text)
			ranges = rangePatternRe.FindAllStringIndex(text, -1)
			tokenized = true
		}

		var (
			best      numericToken
			bestSC    *scoreContext
			bestScore float64
			found     bool
		)
		for _, hit := range keyword.FindAllStringIndex(text, -1) {
			sc := &scoreContext{
				spec:        spec,
				window:      text,
				aliasStart:  hit[0],
				aliasEnd:    hit[1],
				serialStart: -1,
				normalLevel: -1,
				ratingBound: -1,
				ranges:      ranges,
			}
			span := nearby(tokens, hit[1], hit[1]+fallbackSpan)
			tok, s, ok := selectCandidate(sc, span, fallbackRules, obs)
			if ok && (!found || s > bestScore) {
				best, bestSC, bestScore, found = tok, sc, s, true
			}
		}
		if !found {
			obs.Observe(Event{Stage: StageUnresolved, Parameter: spec.Name, Reason: "fallback"})
			continue
		}

		p := dto.ExtractedParameter{
			Name:   spec.Name,
			Value:  best.value,
			Unit:   spec.Unit,
			Source: dto.SourceFallback,
		}
		if rating, ok := ClassifyRating(ratingZone(bestSC, best, tokens)); ok {
			p.Rating = rating
		}
		out[spec.Name] = p
		obs.Observe(Event{Stage: StageFallback, Parameter: spec.Name, Token: best.text, Score: bestScore})
	}
	return out
}

func isFallbackParameter(name string) bool {
	for _, n := range fallbackParameters {
		if n == name {
			return true
		}
	}
	return false
}

// nearby returns the tokens starting in [from, to).
func nearby(tokens []numericToken, from, to int) []numericToken {
	var out []numericToken
	for _, t := range tokens {
		if t.start >= to {
			break
		}
		if t.start >= from {
			out = append(out, t)
		}
	}
	return out
}
