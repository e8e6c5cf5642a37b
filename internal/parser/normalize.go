package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// numberWords covers the counts people type out in words. Anything larger
// arrives as digits.
var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"dozen": 12,
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	switch token {
	case "all", "everything":
		return &Quantity{Raw: token, N: -1, Unit: "all"}
	case "some":
		return &Quantity{Raw: token, N: 0, Unit: "some"}
	}
	if n, ok := numberWords[token]; ok {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	for _, suffix := range []string{"turns", "turn", "t"} {
		if rest, ok := strings.CutSuffix(token, suffix); ok && rest != "" {
			if v, err := strconv.Atoi(rest); err == nil && v >= 0 {
				return &Quantity{Raw: token, N: v, Unit: "turns"}
			}
		}
	}
	return nil
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "this", "those", "another":
		return true
	default:
		return false
	}
}

// fillerWords are tokens entity resolution skips over, so "throw two twigs
// onto the fire" leaves just "twigs" to resolve.
var fillerWords = map[string]bool{
	"the": true, "my": true, "of": true, "on": true, "onto": true,
	"in": true, "into": true, "to": true, "at": true, "up": true,
	"fire": true, "flames": true, "please": true,
}

func isFiller(token string) bool {
	return fillerWords[strings.ToLower(strings.TrimSpace(token))]
}

// singularise strips a plural s so "twigs" resolves against "twig". Item
// names in the asset tables are singular.
func singularise(token string) string {
	if len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") {
		return strings.TrimSuffix(token, "s")
	}
	return token
}
