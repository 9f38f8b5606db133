package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Outcomes recorded for model-backed operations.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeBusy    = "busy"
	OutcomeInvalid = "invalid"
)

var (
	defaultRegistry = NewRegistry()

	llmRequests = defaultRegistry.CounterVec("resume_llm_requests_total",
		"Model-backed resume operations by outcome", "op", "outcome")
	llmInflight = defaultRegistry.GaugeVec("resume_llm_inflight",
		"Model-backed operations currently running", "op")
	llmDuration = defaultRegistry.Histogram("resume_llm_duration_ms",
		"Model round-trip duration in milliseconds",
		[]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
	promptTokens = defaultRegistry.CounterVec("resume_llm_prompt_tokens_total",
		"Estimated prompt tokens sent to the model", "op")
	exportsTotal = defaultRegistry.CounterVec("resume_exports_total",
		"Plain-text exports stored", "source")
)

// IncLLMRequest counts one finished operation (generate, optimize, tailor, review).
func IncLLMRequest(op, outcome string) {
	llmRequests.With(op, outcome).Add(1)
}

// TrackInflight marks op as running until the returned func is called.
func TrackInflight(op string) func() {
	g := llmInflight.With(op)
	g.Add(1)
	return func() { g.Add(-1) }
}

// ObserveLLMDurationMs records a model round-trip in milliseconds.
func ObserveLLMDurationMs(value float64) {
	llmDuration.Observe(max(value, 0))
}

// AddPromptTokens counts the estimated prompt size of one model call.
func AddPromptTokens(op string, tokens int) {
	if tokens > 0 {
		promptTokens.With(op).Add(float64(tokens))
	}
}

// IncExportCreated counts a stored .txt export by its source action.
func IncExportCreated(source string) {
	exportsTotal.With(source).Add(1)
}

// Handler serves the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(Render()))
	}
}

// Render renders the default registry.
func Render() string {
	return defaultRegistry.Render()
}

// SinceMs returns the elapsed milliseconds since start.
func SinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
