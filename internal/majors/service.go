package majors

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"unirise-backend/internal/catalog"
	"unirise-backend/internal/llm"
	"unirise-backend/internal/shared/metrics"
	"unirise-backend/internal/shared/telemetry"
	"unirise-backend/internal/shared/util"
	"unirise-backend/internal/usage"
)

// Recorder stores one ledger row per completion call.
type Recorder interface {
	Record(ctx context.Context, r usage.Record) error
}

// Service turns an answer set into ranked major recommendations.
type Service struct {
	Catalog  *catalog.Catalog
	LLM      llm.Client
	Usage    Recorder
	Provider string
	Model    string
}

// Prediction is the response to one submission. ProcessingTime is derived
// from the token count and is an estimate, not measured latency.
type Prediction struct {
	Result          string           `json:"result"`
	Model           string           `json:"model"`
	ProcessingTime  string           `json:"processingTime"`
	Recommendations []Recommendation `json:"recommendations"`
	Cached          bool             `json:"-"`
}

// Predict validates answers, prompts the model once and parses its answer.
func (s *Service) Predict(ctx context.Context, answers AnswerSet) (Prediction, error) {
	prompt, err := BuildPrompt(s.Catalog, answers)
	if err != nil {
		return Prediction{}, err
	}

	ctx, span := otel.Tracer("unirise/majors").Start(ctx, "majors.predict")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", s.Provider),
		attribute.String("llm.model", s.Model),
	)

	done := metrics.TrackPrediction()
	start := time.Now()
	completion, err := s.LLM.Complete(ctx, prompt)
	status := callStatus(completion, err)
	done(status)
	s.record(ctx, prompt, completion, status, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		telemetry.Error("prediction.failed", map[string]any{
			"request_id": telemetry.RequestID(ctx),
			"provider":   s.Provider,
			"model":      s.Model,
			"error":      err,
		})
		return Prediction{}, err
	}

	model := completion.Model
	if model == "" {
		model = s.Model
	}
	recs := ParseRecommendations(completion.Text)
	span.SetAttributes(
		attribute.Int("majors.recommendations", len(recs)),
		attribute.Bool("llm.cached", completion.Cached),
	)
	telemetry.Info("prediction.completed", map[string]any{
		"request_id":      telemetry.RequestID(ctx),
		"model":           model,
		"cached":          completion.Cached,
		"recommendations": len(recs),
	})
	return Prediction{
		Result:          completion.Text,
		Model:           model,
		ProcessingTime:  llm.ProcessingTime(completion.Usage),
		Recommendations: recs,
		Cached:          completion.Cached,
	}, nil
}

// callStatus classifies a provider call the same way for metrics and the
// usage ledger.
func callStatus(completion llm.Completion, err error) string {
	switch {
	case err != nil:
		return usage.StatusError
	case completion.Cached:
		return usage.StatusCached
	default:
		return usage.StatusOK
	}
}

func (s *Service) record(ctx context.Context, prompt string, completion llm.Completion, status string, elapsed time.Duration) {
	if s.Usage == nil {
		return
	}
	rec := usage.Record{
		Provider:   s.Provider,
		Model:      s.Model,
		PromptHash: util.HashPrompt(s.Model, prompt),
		Status:     status,
		DurationMs: elapsed.Milliseconds(),
	}
	if completion.Model != "" {
		rec.Model = completion.Model
	}
	if u := completion.Usage; u != nil {
		rec.PromptTokens = u.PromptTokens
		rec.CompletionTokens = u.CompletionTokens
		rec.TotalTokens = u.TotalTokens
	}
	// The ledger row is written even when the caller has gone away.
	if err := s.Usage.Record(context.WithoutCancel(ctx), rec); err != nil {
		telemetry.Warn("usage.record_failed", map[string]any{
			"request_id": telemetry.RequestID(ctx),
			"error":      err,
		})
	}
}
