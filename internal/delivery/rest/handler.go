// Package rest exposes lessons and quiz sessions as a JSON API.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/repository"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

type LessonService interface {
	GetAll() []entities.Lesson
	GetByCategory(category entities.Category) (entities.Lesson, error)
	Next(category entities.Category) (entities.Lesson, bool)
}

// QuizService runs sessions keyed by generated session ids.
type QuizService interface {
	Start(id string, cfg entities.SessionConfig) (service.View, error)
	View(id string) (service.View, error)
	Answer(id string, a entities.Answer) (service.View, error)
	Next(id string) (service.View, error)
	Previous(id string) (service.View, error)
	Finish(id string) (service.Summary, error)
	Summary(id string) (service.Summary, error)
	Review(id string) ([]service.ReviewItem, error)
	CloseReview(id string) (service.Summary, error)
	Reset(id string) error
	Exit(id string)
}

type NearMissDetector interface {
	IsNearMiss(q entities.Question, a entities.Answer) bool
}

var _ QuizService = (*service.QuizService[string])(nil)

type Handler struct {
	lessons  LessonService
	quiz     QuizService
	nearMiss NearMissDetector
	logger   *zap.Logger
	defaults entities.SessionConfig
	newID    func() string
}

func NewHandler(
	lessons LessonService,
	quiz QuizService,
	nearMiss NearMissDetector,
	logger *zap.Logger,
	defaults entities.SessionConfig,
) *Handler {
	if !defaults.Difficulty.IsValid() {
		defaults.Difficulty = entities.DefaultFilter
	}
	if defaults.Count <= 0 {
		defaults.Count = entities.DefaultQuestionCount
	}

	return &Handler{
		lessons:  lessons,
		quiz:     quiz,
		nearMiss: nearMiss,
		logger:   logger,
		defaults: defaults,
		newID:    uuid.NewString,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.lessons.GetAll())
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	raw, err := url.PathUnescape(chi.URLParam(r, "category"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid category")
		return
	}

	category, ok := entities.ParseCategory(raw)
	if !ok {
		writeErr(w, http.StatusNotFound, "lesson not found")
		return
	}

	lesson, err := h.lessons.GetByCategory(category)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := lessonResponse{Lesson: lesson}
	if next, ok := h.lessons.Next(category); ok {
		resp.Next = next.Category
	}
	writeJSON(w, http.StatusOK, resp)
}

// StartSession creates a session. An empty selection is not an error: the session
// exists in the empty phase and can be reset or deleted.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cfg, err := h.sessionConfig(req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	id := h.newID()
	view, err := h.quiz.Start(id, cfg)
	switch {
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		writeJSON(w, http.StatusOK, h.toViewResponse(id, view))
		return
	case err != nil:
		h.writeError(w, err)
		return
	}

	h.logger.Info("session started",
		zap.String("session_id", id),
		zap.String("category", string(cfg.Category)),
		zap.Int("total", view.Total),
	)
	writeJSON(w, http.StatusCreated, h.toViewResponse(id, view))
}

func (h *Handler) sessionConfig(req startRequest) (entities.SessionConfig, error) {
	category, ok := entities.ParseCategory(req.Category)
	if !ok {
		return entities.SessionConfig{}, entities.ErrInvalidConfig
	}

	cfg := h.defaults
	cfg.Category = category

	if req.Difficulty != "" {
		filter, err := entities.ParseDifficultyFilter(req.Difficulty)
		if err != nil {
			return entities.SessionConfig{}, err
		}
		cfg.Difficulty = filter
	}
	if req.Count != 0 {
		cfg.Count = req.Count
	}

	return cfg, cfg.Validate()
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.quiz.View(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeView(w, id, view)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var answer entities.Answer
	switch {
	case req.Index != nil && req.Text != nil:
		writeErr(w, http.StatusBadRequest, "send either index or text, not both")
		return
	case req.Index != nil:
		answer = entities.ChoiceAnswer(*req.Index)
	case req.Text != nil:
		answer = entities.TextAnswer(*req.Text)
	}

	view, err := h.quiz.Answer(id, answer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeView(w, id, view)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.quiz.Next(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeView(w, id, view)
}

func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.quiz.Previous(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeView(w, id, view)
}

func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	summary, err := h.quiz.Finish(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	items, err := h.quiz.Review(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewResponse(id, items))
}

func (h *Handler) CloseReview(w http.ResponseWriter, r *http.Request) {
	summary, err := h.quiz.CloseReview(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.quiz.Reset(id); err != nil {
		h.writeError(w, err)
		return
	}

	view, err := h.quiz.View(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeView(w, id, view)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.quiz.View(id); err != nil {
		h.writeError(w, err)
		return
	}
	h.quiz.Exit(id)
	w.WriteHeader(http.StatusNoContent)
}

// writeView attaches the summary once the session is over.
func (h *Handler) writeView(w http.ResponseWriter, id string, view service.View) {
	resp := h.toViewResponse(id, view)
	if view.Phase == service.PhaseFinished || view.Phase == service.PhaseReviewing {
		summary := toSummaryResponse(service.Summary{Score: view.Score, Total: view.Total})
		resp.Summary = &summary
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) toViewResponse(id string, v service.View) viewResponse {
	resp := viewResponse{
		SessionID: id,
		Phase:     v.Phase.String(),
		Empty:     v.Phase == service.PhaseEmpty,
		Position:  v.Position,
		Total:     v.Total,
		Score:     v.Score,
	}

	if v.Phase != service.PhaseActive {
		return resp
	}

	resp.IsLast = v.IsLast
	resp.Question = toQuestionResponse(v.Question)
	if v.Answered {
		resp.Feedback = &feedbackResponse{
			YourAnswer:    v.Question.AnswerText(v.Answer),
			CorrectAnswer: v.Question.CorrectAnswerText(),
			IsCorrect:     v.IsCorrect,
			NearMiss:      h.nearMiss != nil && h.nearMiss.IsNearMiss(v.Question, v.Answer),
			Explanation:   v.Question.Explanation,
		}
	}
	return resp
}

// writeError maps domain errors to HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrLessonNotFound):
		writeErr(w, http.StatusNotFound, err.Error())

	case errors.Is(err, entities.ErrInvalidConfig),
		errors.Is(err, service.ErrEmptyAnswer),
		errors.Is(err, service.ErrInvalidAnswer),
		errors.Is(err, service.ErrAnswerKind):
		writeErr(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrNotActive),
		errors.Is(err, service.ErrAlreadyAnswered),
		errors.Is(err, service.ErrNoPrevious),
		errors.Is(err, service.ErrNotFinished),
		errors.Is(err, service.ErrNotReviewing):
		writeErr(w, http.StatusConflict, err.Error())

	default:
		h.logger.Error("request failed", zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
