package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"jark/app/usecase"
	"jark/internal/domain/entity"
)

const (
	HealthMessage   = "JARK AI Platform is running ✅"
	NotFoundMessage = "Not found"

	BrandFailure   = "Branding generation failed"
	ContentFailure = "Content generation failed"
	LogoFailure    = "Logo generation failed"

	unmatchedPath = "unmatched"
)

type GenerationHandler struct {
	generation usecase.GenerationUsecase
	logger     *slog.Logger

	reqDuration *prometheus.HistogramVec
	reqCount    *prometheus.CounterVec
	errCount    *prometheus.CounterVec
}

func NewGenerationHandler(
	generation usecase.GenerationUsecase,
	logger *slog.Logger,
	reg prometheus.Registerer,
) *GenerationHandler {

	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)

	errCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	reg.MustRegister(reqDuration, reqCount, errCount)

	return &GenerationHandler{
		generation:  generation,
		logger:      logger,
		reqDuration: reqDuration,
		reqCount:    reqCount,
		errCount:    errCount,
	}
}

func (h *GenerationHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := routePath(r)
		method := r.Method

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		duration := time.Since(start).Seconds()
		statusStr := strconv.Itoa(rw.status)

		h.reqCount.WithLabelValues(method, path).Inc()
		h.reqDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		if rw.status >= 400 {
			h.errCount.WithLabelValues(method, path, statusStr).Inc()
		}
	}
}

// routePath labels by route template so unmatched paths cannot blow up
// label cardinality.
func routePath(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedPath
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedPath
	}
	return tpl
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *GenerationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	r.HandleFunc("/api/brand", h.withMetrics(serveEngine(h, engineRoute[entity.BrandRequest]{
		engine:  entity.EngineBrand,
		failure: BrandFailure,
		key:     "data",
		run:     h.generation.Brand,
		value:   textValue,
	}))).Methods(http.MethodPost)

	r.HandleFunc("/api/content", h.withMetrics(serveEngine(h, engineRoute[entity.ContentRequest]{
		engine:  entity.EngineContent,
		failure: ContentFailure,
		key:     "data",
		run:     h.generation.Content,
		value:   textValue,
	}))).Methods(http.MethodPost)

	r.HandleFunc("/api/logo", h.withMetrics(serveEngine(h, engineRoute[entity.LogoRequest]{
		engine:  entity.EngineLogo,
		failure: LogoFailure,
		key:     "image",
		run:     h.generation.Logo,
		value:   imageValue,
	}))).Methods(http.MethodPost)

	// A known path with the wrong method is just another unknown route.
	notFound := h.withMetrics(h.handleNotFound)
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound
}

func textValue(res entity.GenerationResult) string  { return res.Text }
func imageValue(res entity.GenerationResult) string { return res.ImageURL }

// GET /health
func (h *GenerationHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, HealthMessage)
}

func (h *GenerationHandler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, NotFoundMessage)
}
