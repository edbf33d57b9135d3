package majors

import (
	"strings"

	"unirise-backend/internal/catalog"
)

// Validate checks that every catalog category is present in answers and has
// at least one selection. Keys are reported in questionnaire order.
func Validate(cat *catalog.Catalog, answers AnswerSet) error {
	var missing, empty []string
	for _, key := range cat.AnswerKeys() {
		sel, ok := answers[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if len(sel.Labels()) == 0 {
			empty = append(empty, key)
		}
	}
	if len(missing) > 0 || len(empty) > 0 {
		return &ValidationError{Missing: missing, Empty: empty}
	}
	return nil
}

// Normalize translates each selected label to English, keeping labels the
// catalog does not know exactly as submitted, and joins them with ", ". Keys outside the catalog
// are dropped.
func Normalize(cat *catalog.Catalog, answers AnswerSet) map[string]string {
	out := make(map[string]string, len(answers))
	for _, key := range cat.AnswerKeys() {
		sel, ok := answers[key]
		if !ok {
			continue
		}
		labels := sel.Labels()
		for i, label := range labels {
			labels[i] = cat.TranslateOrKeep(label)
		}
		out[key] = strings.Join(labels, ", ")
	}
	return out
}
