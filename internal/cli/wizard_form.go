package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"unirise-backend/internal/catalog"
	"unirise-backend/internal/majors"
	"unirise-backend/internal/wizard"
)

const (
	navNext = "next"
	navBack = "back"
)

// runWizard walks the questionnaire one huh form per step.
func runWizard(ctx context.Context, cat *catalog.Catalog) (majors.AnswerSet, error) {
	w := wizard.New(cat)
	for {
		values := map[string]*[]string{}
		nav := navNext
		form := stepForm(w, values, &nav)
		if err := form.RunWithContext(ctx); err != nil {
			return nil, err
		}
		for key, v := range values {
			if err := w.Select(key, *v); err != nil {
				return nil, err
			}
		}

		if nav == navBack {
			if err := w.Prev(); err != nil && !errors.Is(err, wizard.ErrFirstStep) {
				return nil, err
			}
			continue
		}
		if w.Step() == wizard.StepValues {
			return w.Submit()
		}
		if err := w.Next(); err != nil {
			fmt.Println(warn(err.Error()))
		}
	}
}

// stepForm builds the form for the wizard's current step. values receives
// one selection slice per answer key, pre-filled from earlier visits.
func stepForm(w *wizard.Wizard, values map[string]*[]string, nav *string) *huh.Form {
	step := w.Step()
	fields := make([]huh.Field, 0, len(step.Keys())+1)
	for _, key := range step.Keys() {
		cat, ok := w.Category(key)
		if !ok {
			continue
		}
		selected := append([]string(nil), w.Selected(key)...)
		values[key] = &selected
		fields = append(fields, huh.NewMultiSelect[string]().
			Title(cat.Question).
			Description(cat.Label).
			Options(selectOptions(cat, selected)...).
			Value(values[key]).
			Validate(requireSelection))
	}
	if step > wizard.StepInterests {
		fields = append(fields, huh.NewSelect[string]().
			Options(
				huh.NewOption("التالي", navNext),
				huh.NewOption("السابق", navBack),
			).
			Value(nav))
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(progressHeader(step)),
	).WithTheme(formTheme()).WithShowHelp(true)
}

func selectOptions(cat catalog.Category, selected []string) []huh.Option[string] {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	opts := make([]huh.Option[string], 0, len(cat.Options))
	for _, o := range cat.Options {
		opts = append(opts, huh.NewOption(o.Arabic, o.Arabic).Selected(chosen[o.Arabic]))
	}
	return opts
}

func requireSelection(v []string) error {
	if len(v) == 0 {
		return errors.New("اختر خيارًا واحدًا على الأقل")
	}
	return nil
}

func progressHeader(step wizard.Step) string {
	return styleStep.Render(fmt.Sprintf("%d/%d", int(step)+1, wizard.StepCount)) + " " + styleHeader.Render(step.Title())
}
