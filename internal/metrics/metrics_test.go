package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/metrics"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

func TestQuizMetrics(t *testing.T) {
	m := metrics.New()

	m.SessionStarted(entities.CategoryZero, entities.FilterAll)
	m.SessionEmpty(entities.CategoryMixed1)
	m.AnswerRecorded(entities.KindFillBlank, true)
	m.AnswerRecorded(entities.KindFillBlank, false)
	m.AnswerRecorded(entities.KindBoolean, true)
	m.SessionFinished(entities.CategoryZero, service.Summary{Score: 3, Total: 4})

	expected := `
# HELP quiz_answers_total Total number of recorded answers
# TYPE quiz_answers_total counter
quiz_answers_total{correct="false",kind="fill-blank"} 1
quiz_answers_total{correct="true",kind="boolean"} 1
quiz_answers_total{correct="true",kind="fill-blank"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "quiz_answers_total"); err != nil {
		t.Error(err)
	}

	if n := testutil.CollectAndCount(m.Registry(), "quiz_sessions_started_total", "quiz_sessions_empty_total", "quiz_sessions_finished_total"); n != 3 {
		t.Errorf("session series = %d, want 3", n)
	}
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	}

	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{endpoint="/sessions/{id}",method="GET",status="404"} 2
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "http_requests_total"); err != nil {
		t.Error(err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_request_duration_seconds") {
		t.Errorf("metrics endpoint: %d %s", rec.Code, rec.Body.String())
	}
}
