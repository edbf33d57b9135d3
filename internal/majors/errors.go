package majors

import (
	"errors"
	"strings"
)

// ErrInvalidAnswers reports a request whose answers member is absent or not
// an object.
var ErrInvalidAnswers = errors.New("answers must be a JSON object")

// ValidationError lists the answer keys that are absent or have no selection.
type ValidationError struct {
	Missing []string
	Empty   []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing keys: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Empty) > 0 {
		parts = append(parts, "Empty selections: "+strings.Join(e.Empty, ", "))
	}
	return strings.Join(parts, "; ")
}
