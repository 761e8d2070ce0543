package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generations
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jark_generations_total",
			Help: "Number of generation requests by engine and result",
		},
		[]string{"engine", "result"}, // result: success|failure
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jark_generation_duration_seconds",
			Help:    "Duration of generation requests including the upstream call",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 0.25s..64s
		},
		[]string{"engine"},
	)

	// Upstream
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jark_upstream_requests_total",
			Help: "Number of upstream requests by operation and model",
		},
		[]string{"op", "model"}, // op: chat|image
	)

	// Journal
	JournalWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jark_journal_writes_total",
			Help: "Generation journal writes by result",
		},
		[]string{"result"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jark_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		Generations,
		GenerationDurationSeconds,
		UpstreamRequests,
		JournalWrites,
		Errors,
	)
}

// StartMetricsServer blocks serving /metrics on addr.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}

// Generations
func IncGeneration(engine, result string) {
	Generations.WithLabelValues(engine, result).Inc()
}

func ObserveGenerationDuration(engine string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(engine).Observe(d.Seconds())
}

// Upstream
func IncUpstreamRequest(op, model string) {
	UpstreamRequests.WithLabelValues(op, model).Inc()
}

// Journal
func IncJournalWrite(result string) {
	JournalWrites.WithLabelValues(result).Inc()
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
