package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestTrackPredictionCountsByStatus(t *testing.T) {
	okBefore := predictions.get("ok")
	cachedBefore := predictions.get("cached")

	done := TrackPrediction()
	if got := inFlight.Load(); got < 1 {
		t.Fatalf("expected a call in flight, got %d", got)
	}
	done("ok")
	done("ok")
	TrackPrediction()("cached")

	if got := predictions.get("ok") - okBefore; got != 1 {
		t.Fatalf("expected one ok call, got %d", got)
	}
	if got := predictions.get("cached") - cachedBefore; got != 1 {
		t.Fatalf("expected one cached call, got %d", got)
	}

	out := Render()
	for _, want := range []string{
		"# TYPE prediction_total counter",
		`prediction_total{status="ok"}`,
		`prediction_total{status="cached"}`,
		"# TYPE prediction_in_flight gauge",
		"# TYPE prediction_duration_ms histogram",
		`prediction_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHistogramWritesCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.observe(5)
	h.observe(10)
	h.observe(50)
	h.observe(500)
	h.observe(-1)

	var b strings.Builder
	h.write(&b, "x", "help")
	for _, want := range []string{
		`x_bucket{le="10"} 3`,
		`x_bucket{le="100"} 4`,
		`x_bucket{le="+Inf"} 5`,
		"x_sum 565",
		"x_count 5",
	} {
		if !strings.Contains(b.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, b.String())
		}
	}
}

func TestCounterVecUnknownStatus(t *testing.T) {
	v := &counterVec{label: "status", values: map[string]uint64{}}
	v.inc("")
	if v.get("unknown") != 1 {
		t.Fatalf("expected empty status to count as unknown")
	}
}

func TestSinceMillis(t *testing.T) {
	if got := SinceMillis(time.Now().Add(-50 * time.Millisecond)); got < 50 {
		t.Fatalf("expected at least 50ms, got %v", got)
	}
}
