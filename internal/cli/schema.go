package cli

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed answers.schema.json
var answersSchemaDocument []byte

var (
	answersSchemaOnce sync.Once
	answersSchema     *gojsonschema.Schema
	answersSchemaErr  error
)

// SchemaError lists the places where an answers file breaks the schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "answers file is invalid:\n  " + strings.Join(e.Problems, "\n  ")
}

func loadAnswersSchema() (*gojsonschema.Schema, error) {
	answersSchemaOnce.Do(func() {
		answersSchema, answersSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(answersSchemaDocument))
	})
	return answersSchema, answersSchemaErr
}

func validateAnswersDocument(data []byte) error {
	schema, err := loadAnswersSchema()
	if err != nil {
		return fmt.Errorf("load answers schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("answers file is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}
	return &SchemaError{Problems: problems}
}
