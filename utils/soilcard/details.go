package soilcard

import (
	"regexp"
	"strings"
)

type detailField struct {
	name  string
	label *regexp.Regexp
	value *regexp.Regexp
}

var (
	nameValueRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z .'\-]*`)
	idValueRe      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/\-]*`)
	mobileValueRe  = regexp.MustCompile(`[6-9]\d{9}`)
	pincodeValueRe = regexp.MustCompile(`\b\d{6}\b`)
	digitGapRe     = regexp.MustCompile(`(\d)[\s\-](\d)`)
	labelLeadRe    = regexp.MustCompile(`^[\s:.\-=]+`)
)

var farmerFields = []detailField{
	{"Farmer Name", regexp.MustCompile(`(?i)\b(?:farmer'?s?\s*name|name\s+of\s+(?:the\s+)?farmer)\b`), nameValueRe},
	{"Father Name", regexp.MustCompile(`(?i)\b(?:father|husband)'?s?(?:\s*/\s*husband'?s?)?\s*name\b`), nameValueRe},
	{"Sample Number", regexp.MustCompile(`(?i)\bsample\s*(?:no\b\.?|number\b|id\b)`), idValueRe},
	{"Mobile Number", regexp.MustCompile(`(?i)\b(?:mobile|phone|contact)\s*(?:no\b\.?|number\b)?`), mobileValueRe},
	{"Survey Number", regexp.MustCompile(`(?i)\b(?:survey|khasra|plot)\s*(?:no\b\.?|number\b)`), idValueRe},
}

var locationFields = []detailField{
	{"Village", regexp.MustCompile(`(?i)\bvillage\b`), nameValueRe},
	{"Taluk/Tehsil", regexp.MustCompile(`(?i)\b(?:taluka?|tehsil|mandal|block)(?:\s*/\s*(?:taluka?|tehsil|mandal|block))?\b`), nameValueRe},
	{"District", regexp.MustCompile(`(?i)\bdistrict\b`), nameValueRe},
	{"State", regexp.MustCompile(`(?i)\bstate\b`), nameValueRe},
	{"Pincode", regexp.MustCompile(`(?i)\bpin\s*(?:code)?\b`), pincodeValueRe},
}

// ExtractDetails reads the farmer and location blocks printed above the
// results table. Values are taken from after their label, up to the next
// label on the same line.
func ExtractDetails(text string) (farmer, location map[string]string) {
	all := append(append([]detailField(nil), farmerFields...), locationFields...)
	lines := contentLines(text)
	return readFields(lines, farmerFields, all), readFields(lines, locationFields, all)
}

func readFields(lines []string, fields, all []detailField) map[string]string {
	out := make(map[string]string)
	for _, f := range fields {
		for i, line := range lines {
			loc := f.label.FindStringIndex(line)
			if loc == nil {
				continue
			}
			rest := cutAtLabel(line[loc[1]:], f, all)
			if rest == "" && i+1 < len(lines) && !hasLabel(lines[i+1], all) {
				rest = lines[i+1]
			}
			if v := fieldValue(f, rest); v != "" {
				out[f.name] = v
				break
			}
		}
	}
	return out
}

func cutAtLabel(rest string, self detailField, all []detailField) string {
	end := len(rest)
	for _, o := range all {
		if o.name == self.name {
			continue
		}
		if loc := o.label.FindStringIndex(rest); loc != nil && loc[0] < end {
			end = loc[0]
		}
	}
	return labelLeadRe.ReplaceAllString(strings.TrimSpace(rest[:end]), "")
}

func hasLabel(line string, all []detailField) bool {
	for _, f := range all {
		if f.label.MatchString(line) {
			return true
		}
	}
	return false
}

func fieldValue(f detailField, rest string) string {
	switch f.value {
	case mobileValueRe:
		rest = digitGapRe.ReplaceAllString(rest, "$1$2")
		rest = digitGapRe.ReplaceAllString(rest, "$1$2")
		return mobileValueRe.FindString(rest)
	case pincodeValueRe:
		return pincodeValueRe.FindString(rest)
	}
	v := strings.Trim(f.value.FindString(rest), " .-'")
	if len(v) < 2 || len(v) > 60 {
		return ""
	}
	return v
}

var (
	recommendationHeadingRe = regexp.MustCompile(`(?i)^(?:fertili[sz]er\s+)?recommendations?\b[\s:.\-]*(.*)$`)
	bulletRe                = regexp.MustCompile(`^(?:[-•*]|\d{1,2}[.)])\s*`)
	letterRe                = regexp.MustCompile(`[A-Za-z]`)
)

const maxCardRecommendations = 8

// ExtractRecommendations returns the advice lines printed under the card's
// Recommendation heading, up to the first blank line.
func ExtractRecommendations(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		m := recommendationHeadingRe.FindStringSubmatch(strings.TrimSpace(l))
		if m == nil {
			continue
		}
		var out []string
		add := func(s string) {
			s = strings.TrimSpace(bulletRe.ReplaceAllString(strings.TrimSpace(s), ""))
			if len(letterRe.FindAllString(s, 3)) == 3 {
				out = append(out, s)
			}
		}
		add(m[1])
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" || len(out) >= maxCardRecommendations {
				break
			}
			add(next)
		}
		return out
	}
	return nil
}
