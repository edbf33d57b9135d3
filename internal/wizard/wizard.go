// Package wizard drives the four-step questionnaire. Each step owns two
// categories; a step can only be left forward once both have a selection.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"unirise-backend/internal/catalog"
	"unirise-backend/internal/majors"
)

// Step is a questionnaire page.
type Step int

const (
	StepInterests Step = iota
	StepLearning
	StepCareer
	StepValues
)

var steps = []struct {
	title string
	keys  [2]string
}{
	StepInterests: {title: "اهتماماتك وقدراتك", keys: [2]string{"interest", "strength"}},
	StepLearning:  {title: "طريقة التعلم والتحفيز", keys: [2]string{"study", "motivation"}},
	StepCareer:    {title: "المستقبل المهني", keys: [2]string{"vision", "skills"}},
	StepValues:    {title: "القيم والتحديات", keys: [2]string{"values", "challenges"}},
}

// StepCount is the number of questionnaire pages.
const StepCount = 4

// Title returns the page heading.
func (s Step) Title() string {
	if !s.valid() {
		return ""
	}
	return steps[s].title
}

// Keys returns the answer keys collected on the page.
func (s Step) Keys() []string {
	if !s.valid() {
		return nil
	}
	k := steps[s].keys
	return []string{k[0], k[1]}
}

func (s Step) String() string {
	return fmt.Sprintf("step %d/%d", int(s)+1, StepCount)
}

func (s Step) valid() bool {
	return s >= StepInterests && s <= StepValues
}

var (
	ErrFirstStep  = errors.New("already on the first step")
	ErrLastStep   = errors.New("already on the last step")
	ErrNotLast    = errors.New("submit is only allowed on the last step")
	ErrUnknownKey = errors.New("unknown answer key")
)

// IncompleteError names the empty categories that block a transition.
type IncompleteError struct {
	Keys []string
}

func (e *IncompleteError) Error() string {
	return "missing selections: " + strings.Join(e.Keys, ", ")
}

// ErrStepIncomplete matches any *IncompleteError via errors.Is.
var ErrStepIncomplete = errors.New("step incomplete")

func (e *IncompleteError) Is(target error) bool {
	return target == ErrStepIncomplete
}

// Wizard holds the current page and the selections made so far.
type Wizard struct {
	catalog *catalog.Catalog
	step    Step
	answers majors.AnswerSet
}

// New starts a wizard on the first page.
func New(cat *catalog.Catalog) *Wizard {
	return &Wizard{catalog: cat, step: StepInterests, answers: majors.AnswerSet{}}
}

// Step returns the current page.
func (w *Wizard) Step() Step {
	return w.step
}

// Category returns the catalog entry for an answer key on any page.
func (w *Wizard) Category(key string) (catalog.Category, bool) {
	return w.catalog.Category(key)
}

// Select replaces the selection for key. Keys outside the catalog are
// rejected; labels are kept as given.
func (w *Wizard) Select(key string, labels []string) error {
	if _, ok := w.catalog.Category(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	w.answers[key] = append(majors.Selection(nil), labels...)
	return nil
}

// Selected returns the current selection for key.
func (w *Wizard) Selected(key string) []string {
	return append([]string(nil), w.answers[key]...)
}

// Next advances when every category on the current page has a selection.
func (w *Wizard) Next() error {
	if w.step == StepValues {
		return ErrLastStep
	}
	if err := w.checkKeys(w.step.Keys()); err != nil {
		return err
	}
	w.step++
	return nil
}

// Prev goes back one page. Selections are kept.
func (w *Wizard) Prev() error {
	if w.step == StepInterests {
		return ErrFirstStep
	}
	w.step--
	return nil
}

// Submit returns the answer set once the last page is reached and every
// category has a selection.
func (w *Wizard) Submit() (majors.AnswerSet, error) {
	if w.step != StepValues {
		return nil, ErrNotLast
	}
	if err := w.checkKeys(w.catalog.AnswerKeys()); err != nil {
		return nil, err
	}
	out := make(majors.AnswerSet, len(w.answers))
	for k, v := range w.answers {
		out[k] = append(majors.Selection(nil), v...)
	}
	return out, nil
}

func (w *Wizard) checkKeys(keys []string) error {
	var empty []string
	for _, key := range keys {
		if len(w.answers[key].Labels()) == 0 {
			empty = append(empty, key)
		}
	}
	if len(empty) > 0 {
		return &IncompleteError{Keys: empty}
	}
	return nil
}
