package service

import (
	"errors"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrSessionNotFound      = errors.New("quiz session not found")
)

// QuizMetrics receives quiz lifecycle events.
type QuizMetrics interface {
	SessionStarted(category entities.Category, difficulty entities.DifficultyFilter)
	SessionEmpty(category entities.Category)
	AnswerRecorded(kind entities.QuestionKind, correct bool)
	SessionFinished(category entities.Category, summary Summary)
}

type nopMetrics struct{}

func (nopMetrics) SessionStarted(entities.Category, entities.DifficultyFilter) {}

func (nopMetrics) SessionEmpty(entities.Category) {}

func (nopMetrics) AnswerRecorded(entities.QuestionKind, bool) {}

func (nopMetrics) SessionFinished(entities.Category, Summary) {}

// QuizService runs quiz sessions for a host, keyed by a host-specific id
// (a Telegram chat id or an HTTP session id).
type QuizService[K comparable] struct {
	selector *QuestionSelector
	storage  SessionStorage[K]
	metrics  QuizMetrics
}

// NewQuizService creates a QuizService. A nil metrics recorder disables metrics.
func NewQuizService[K comparable](
	selector *QuestionSelector,
	storage SessionStorage[K],
	metrics QuizMetrics,
) *QuizService[K] {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &QuizService[K]{
		selector: selector,
		storage:  storage,
		metrics:  metrics,
	}
}

// Start replaces any session stored under key with a new one built from cfg.
// When nothing matches the filters the empty session is kept (so it can be reset)
// and ErrNoQuestionsAvailable is returned along with its view.
func (s *QuizService[K]) Start(key K, cfg entities.SessionConfig) (View, error) {
	session := NewSession(s.selector)
	if err := session.Start(cfg); err != nil {
		return View{}, err
	}

	s.storage.Store(key, session)

	if session.IsEmpty() {
		s.metrics.SessionEmpty(cfg.Category)
		return CurrentView(session), ErrNoQuestionsAvailable
	}

	s.metrics.SessionStarted(cfg.Category, cfg.Difficulty)
	return CurrentView(session), nil
}

// Get returns the session stored under key. Callers outside this service must not
// mutate it concurrently with service calls.
func (s *QuizService[K]) Get(key K) (*Session, error) {
	session, ok := s.storage.Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// withSession runs fn on the session stored under key while holding its lock.
func (s *QuizService[K]) withSession(key K, fn func(session *Session) error) error {
	session, err := s.Get(key)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return fn(session)
}

// View returns the display state of the session stored under key.
func (s *QuizService[K]) View(key K) (View, error) {
	var view View
	err := s.withSession(key, func(session *Session) error {
		view = CurrentView(session)
		return nil
	})
	return view, err
}

// Answer records an answer for the current question.
func (s *QuizService[K]) Answer(key K, a entities.Answer) (View, error) {
	var view View
	err := s.withSession(key, func(session *Session) error {
		q, _, _ := session.Current()
		correct, err := session.SubmitAnswer(a)
		view = CurrentView(session)
		if err != nil {
			return err
		}

		s.metrics.AnswerRecorded(q.Kind, correct)
		return nil
	})
	return view, err
}

// Next advances to the next question or finishes the session from the last one.
func (s *QuizService[K]) Next(key K) (View, error) {
	var view View
	err := s.withSession(key, func(session *Session) error {
		err := session.Advance()
		view = CurrentView(session)
		if err != nil {
			return err
		}

		if session.Phase() == PhaseFinished {
			s.metrics.SessionFinished(session.Config().Category, Summarize(session))
		}
		return nil
	})
	return view, err
}

// Previous goes back one question.
func (s *QuizService[K]) Previous(key K) (View, error) {
	var view View
	err := s.withSession(key, func(session *Session) error {
		err := session.Retreat()
		view = CurrentView(session)
		return err
	})
	return view, err
}

// Finish ends the session and returns its summary.
func (s *QuizService[K]) Finish(key K) (Summary, error) {
	var summary Summary
	err := s.withSession(key, func(session *Session) error {
		wasActive := session.Phase() == PhaseActive
		if err := session.Finish(); err != nil {
			return err
		}

		summary = Summarize(session)
		if wasActive {
			s.metrics.SessionFinished(session.Config().Category, summary)
		}
		return nil
	})
	return summary, err
}

// Summary returns the current score and total without changing the phase.
func (s *QuizService[K]) Summary(key K) (Summary, error) {
	var summary Summary
	err := s.withSession(key, func(session *Session) error {
		summary = Summarize(session)
		return nil
	})
	return summary, err
}

// Review enters review mode and returns the per-question review.
func (s *QuizService[K]) Review(key K) ([]ReviewItem, error) {
	var items []ReviewItem
	err := s.withSession(key, func(session *Session) error {
		var err error
		items, err = session.ReviewAll()
		return err
	})
	return items, err
}

// CloseReview returns from review to the result screen.
func (s *QuizService[K]) CloseReview(key K) (Summary, error) {
	var summary Summary
	err := s.withSession(key, func(session *Session) error {
		if err := session.CloseReview(); err != nil {
			return err
		}
		summary = Summarize(session)
		return nil
	})
	return summary, err
}

// Reset returns a finished, reviewed or empty session to Setup.
func (s *QuizService[K]) Reset(key K) error {
	return s.withSession(key, func(session *Session) error {
		return session.Reset()
	})
}

// Exit discards the session stored under key in any phase.
func (s *QuizService[K]) Exit(key K) {
	s.storage.Delete(key)
}
