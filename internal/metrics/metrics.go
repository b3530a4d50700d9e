// Package metrics exposes Prometheus collectors for quiz activity and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// Metrics records quiz lifecycle events and HTTP requests.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted  *prometheus.CounterVec
	sessionsEmpty    *prometheus.CounterVec
	sessionsFinished *prometheus.CounterVec
	answers          *prometheus.CounterVec
	scorePercent     *prometheus.HistogramVec

	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ service.QuizMetrics = (*Metrics)(nil)

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_sessions_started_total",
				Help: "Total number of quiz sessions started with at least one question",
			},
			[]string{"category", "difficulty"},
		),
		sessionsEmpty: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_sessions_empty_total",
				Help: "Total number of quiz starts where no question matched the filters",
			},
			[]string{"category"},
		),
		sessionsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_sessions_finished_total",
				Help: "Total number of quiz sessions finished",
			},
			[]string{"category"},
		),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_answers_total",
				Help: "Total number of recorded answers",
			},
			[]string{"kind", "correct"},
		),
		scorePercent: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quiz_score_percent",
				Help:    "Final score of finished sessions in percent",
				Buckets: []float64{20, 40, 60, 80, 100},
			},
			[]string{"category"},
		),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "endpoint"},
		),
	}

	m.registry.MustRegister(
		m.sessionsStarted,
		m.sessionsEmpty,
		m.sessionsFinished,
		m.answers,
		m.scorePercent,
		m.requestCounter,
		m.requestDuration,
	)

	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SessionStarted(category entities.Category, difficulty entities.DifficultyFilter) {
	m.sessionsStarted.WithLabelValues(string(category), string(difficulty)).Inc()
}

func (m *Metrics) SessionEmpty(category entities.Category) {
	m.sessionsEmpty.WithLabelValues(string(category)).Inc()
}

func (m *Metrics) AnswerRecorded(kind entities.QuestionKind, correct bool) {
	m.answers.WithLabelValues(string(kind), strconv.FormatBool(correct)).Inc()
}

func (m *Metrics) SessionFinished(category entities.Category, summary service.Summary) {
	m.sessionsFinished.WithLabelValues(string(category)).Inc()
	m.scorePercent.WithLabelValues(string(category)).Observe(float64(summary.Percent()))
}

// Middleware counts requests and their durations per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
