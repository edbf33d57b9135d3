// Package metrics keeps in-process prediction metrics and serves them in the
// Prometheus text exposition format.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Duration bucket bounds in milliseconds. Provider calls range from cached
// hits to the 60s timeout.
var durationBounds = []float64{5, 50, 250, 1000, 2500, 5000, 10000, 30000, 60000}

var (
	inFlight    atomic.Int64
	predictions = &counterVec{label: "status", values: map[string]uint64{}}
	durations   = newHistogram(durationBounds)
)

// TrackPrediction marks a provider call as in flight. The returned func ends
// it, counting the call under status ("ok", "error", "cached") and recording
// its duration.
func TrackPrediction() func(status string) {
	start := time.Now()
	inFlight.Add(1)
	var once sync.Once
	return func(status string) {
		once.Do(func() {
			inFlight.Add(-1)
			predictions.inc(status)
			durations.observe(SinceMillis(start))
		})
	}
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders every series.
func Render() string {
	var b strings.Builder
	predictions.write(&b, "prediction_total", "Provider calls by outcome")
	writeGauge(&b, "prediction_in_flight", "Provider calls currently running", inFlight.Load())
	durations.write(&b, "prediction_duration_ms", "Provider call duration in milliseconds")
	return b.String()
}

type counterVec struct {
	mu     sync.Mutex
	label  string
	values map[string]uint64
}

func (v *counterVec) inc(value string) {
	if value == "" {
		value = "unknown"
	}
	v.mu.Lock()
	v.values[value]++
	v.mu.Unlock()
}

func (v *counterVec) get(value string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[value]
}

func (v *counterVec) write(w io.Writer, name, help string) {
	v.mu.Lock()
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	counts := make([]uint64, len(keys))
	for i, k := range keys {
		counts[i] = v.values[k]
	}
	v.mu.Unlock()

	writeHeader(w, name, help, "counter")
	for i, k := range keys {
		fmt.Fprintf(w, "%s{%s=%q} %d\n", name, v.label, k, counts[i])
	}
}

// histogram stores per-bucket counts; write accumulates them.
type histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64 // len(bounds)+1, last is the overflow bucket
	sum    float64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{bounds: bounds, counts: make([]uint64, len(bounds)+1)}
}

func (h *histogram) observe(v float64) {
	if v < 0 {
		v = 0
	}
	i := sort.SearchFloat64s(h.bounds, v)
	h.mu.Lock()
	h.counts[i]++
	h.sum += v
	h.mu.Unlock()
}

func (h *histogram) write(w io.Writer, name, help string) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum := h.sum
	h.mu.Unlock()

	writeHeader(w, name, help, "histogram")
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", name, formatFloat(bound), cumulative)
	}
	cumulative += counts[len(h.bounds)]
	fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", name, cumulative)
	fmt.Fprintf(w, "%s_sum %s\n", name, formatFloat(sum))
	fmt.Fprintf(w, "%s_count %d\n", name, cumulative)
}

func writeGauge(w io.Writer, name, help string, v int64) {
	writeHeader(w, name, help, "gauge")
	fmt.Fprintf(w, "%s %d\n", name, v)
}

func writeHeader(w io.Writer, name, help, kind string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
