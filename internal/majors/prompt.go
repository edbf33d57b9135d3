package majors

import (
	_ "embed"
	"strings"
	"text/template"

	"unirise-backend/internal/catalog"
)

//go:embed prompt.tmpl
var promptText string

var promptTemplate = template.Must(template.New("prompt").Option("missingkey=error").Parse(promptText))

// BuildPrompt validates answers and renders the counsellor prompt from
// their normalized values.
func BuildPrompt(cat *catalog.Catalog, answers AnswerSet) (string, error) {
	if err := Validate(cat, answers); err != nil {
		return "", err
	}
	var b strings.Builder
	if err := promptTemplate.Execute(&b, Normalize(cat, answers)); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
