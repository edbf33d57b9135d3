// Package cli is the terminal front end: it lists the catalog, collects
// answers from a file or an interactive wizard and prints recommendations.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"unirise-backend/internal/catalog"
	"unirise-backend/internal/export"
	"unirise-backend/internal/majors"
)

// Predictor turns a complete answer set into recommendations.
type Predictor interface {
	Predict(ctx context.Context, answers majors.AnswerSet) (majors.Prediction, error)
}

// App holds what the commands need. Connect is called only by commands that
// talk to the completion provider, so listing options needs no credentials.
type App struct {
	Catalog  *catalog.Catalog
	Renderer *export.Renderer

	Connect func(ctx context.Context) (Predictor, func(context.Context) error, error)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// AskAnswers collects answers interactively. Defaults to the huh wizard.
	AskAnswers func(ctx context.Context, cat *catalog.Catalog) (majors.AnswerSet, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) askAnswers(ctx context.Context) (majors.AnswerSet, error) {
	if a.AskAnswers != nil {
		return a.AskAnswers(ctx, a.Catalog)
	}
	return runWizard(ctx, a.Catalog)
}

// NewRootCmd creates the top-level "unirise" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "unirise",
		Short:         "University major recommendations from a short questionnaire",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newOptionsCmd(app),
		newPredictCmd(app),
	)
	return root
}
