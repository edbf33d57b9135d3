package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unirise-backend/internal/majors"
)

// ErrNoAnswers is returned when no answers file is given and stdin is not a
// terminal the wizard could run on.
var ErrNoAnswers = errors.New("--answers is required when stdin is not a terminal")

type answersDocument struct {
	Answers json.RawMessage `json:"answers"`
}

func newPredictCmd(app *App) *cobra.Command {
	var (
		answersPath string
		pdfPath     string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Recommend majors for an answer set",
		Long: "Reads {\"answers\": {...}} from --answers (\"-\" for stdin) or, on a terminal,\n" +
			"walks through the questionnaire, then asks the model for recommendations.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			answers, err := app.loadAnswers(ctx, answersPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if app.Connect == nil {
				return errors.New("no completion provider configured")
			}
			predictor, closeFn, err := app.Connect(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn(context.WithoutCancel(ctx)) }()

			predict := func(ctx context.Context) (majors.Prediction, error) {
				return predictor.Predict(ctx, answers)
			}
			var pred majors.Prediction
			if app.interactive() {
				pred, err = withSpinner(ctx, cmd.ErrOrStderr(), "Asking the model…", predict)
			} else {
				pred, err = predict(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(pred); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, renderPrediction(pred))
			}

			if pdfPath != "" {
				if err := app.writePDF(pdfPath, pred.Result); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), dim("wrote "+pdfPath))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "", "answers file, or - for stdin")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "also write the recommendations as a PDF")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the response as JSON")
	return cmd
}

func (a *App) loadAnswers(ctx context.Context, path string, stdin io.Reader) (majors.AnswerSet, error) {
	if path == "" {
		if !a.interactive() {
			return nil, ErrNoAnswers
		}
		return a.askAnswers(ctx)
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	if err := validateAnswersDocument(data); err != nil {
		return nil, err
	}
	var doc answersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return majors.DecodeAnswers(doc.Answers)
}

func (a *App) writePDF(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := a.Renderer.PDF(f, text); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
