package majors

import (
	"regexp"
	"strings"
)

// Recommendation is one ranked major from the model's answer.
type Recommendation struct {
	Major       string `json:"major"`
	Explanation string `json:"explanation"`
}

var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ParseRecommendations extracts "N. major: explanation" lines from text in
// order. Lines without an ordinal prefix are skipped.
func ParseRecommendations(text string) []Recommendation {
	out := make([]Recommendation, 0, 3)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		loc := ordinalPrefix.FindStringIndex(line)
		if loc == nil {
			continue
		}
		var rec Recommendation
		if major, explanation, ok := strings.Cut(line[loc[1]:], ":"); ok {
			rec.Major = strings.TrimSpace(major)
			rec.Explanation = strings.TrimSpace(explanation)
		}
		out = append(out, rec)
	}
	return out
}
