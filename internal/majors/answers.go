package majors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Selection holds the labels chosen for one category, in selection order.
// It decodes from a JSON array or from a single scalar value.
type Selection []string

func (s *Selection) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*s = nil
	case []any:
		out := make(Selection, 0, len(v))
		for _, item := range v {
			label, err := scalarString(item)
			if err != nil {
				return err
			}
			out = append(out, label)
		}
		*s = out
	default:
		label, err := scalarString(v)
		if err != nil {
			return err
		}
		*s = Selection{label}
	}
	return nil
}

// Labels returns the non-blank labels as submitted. Surrounding whitespace is
// kept so unknown labels pass through verbatim.
func (s Selection) Labels() []string {
	out := make([]string, 0, len(s))
	for _, label := range s {
		if strings.TrimSpace(label) != "" {
			out = append(out, label)
		}
	}
	return out
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported selection value of type %T", v)
	}
}

// AnswerSet maps answer keys ("interest", "strength", ...) to selections.
type AnswerSet map[string]Selection

// DecodeAnswers decodes the "answers" member of a prediction request. It
// fails with ErrInvalidAnswers unless raw is a JSON object.
func DecodeAnswers(raw json.RawMessage) (AnswerSet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidAnswers
	}
	var answers AnswerSet
	if err := json.Unmarshal(trimmed, &answers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	return answers, nil
}
