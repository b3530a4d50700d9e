package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

var (
	ErrNotActive       = errors.New("quiz session is not active")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNoPrevious      = errors.New("already at the first question")
	ErrNotFinished     = errors.New("quiz session is not finished")
	ErrNotReviewing    = errors.New("quiz session is not in review")
	ErrAnswerKind      = errors.New("answer does not match question kind")
	ErrInvalidAnswer   = errors.New("answer option out of range")
	ErrEmptyAnswer     = errors.New("empty answer")
)

// Phase is the lifecycle phase of a quiz session.
type Phase int

const (
	PhaseSetup     Phase = iota // waiting for a config
	PhaseEmpty                  // started, but nothing matched the filters
	PhaseActive                 // answering questions
	PhaseFinished               // score available
	PhaseReviewing              // per-question review shown
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseEmpty:
		return "empty"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	case PhaseReviewing:
		return "reviewing"
	default:
		return "unknown"
	}
}

// Session drives one quiz run: Setup -> Active -> Finished -> (Reviewing | Setup).
// Its methods are not safe for concurrent use; QuizService serializes them with mu.
type Session struct {
	mu       sync.Mutex
	selector *QuestionSelector

	phase     Phase
	config    entities.SessionConfig
	questions []entities.Question
	answers   []entities.Answer // write-once per position
	position  int
	score     int
}

// NewSession creates a session in the Setup phase.
func NewSession(selector *QuestionSelector) *Session {
	return &Session{
		selector: selector,
		phase:    PhaseSetup,
	}
}

// Start selects questions for cfg and enters Active at the first question.
// Any previous state is discarded. When nothing matches, the session enters PhaseEmpty
// and Start still returns nil; only an invalid config is an error.
func (s *Session) Start(cfg entities.SessionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	questions := s.selector.SelectQuestions(cfg)

	s.config = cfg
	s.questions = questions
	s.answers = make([]entities.Answer, len(questions))
	s.position = 0
	s.score = 0

	if len(questions) == 0 {
		s.phase = PhaseEmpty
		return nil
	}

	s.phase = PhaseActive
	return nil
}

// SubmitAnswer records an answer for the current question and reports whether it is correct.
// A position can be answered only once; later calls return ErrAlreadyAnswered and change nothing.
func (s *Session) SubmitAnswer(a entities.Answer) (bool, error) {
	if s.phase != PhaseActive {
		return false, ErrNotActive
	}
	if s.HasAnsweredCurrent() {
		return false, ErrAlreadyAnswered
	}

	q := s.questions[s.position]
	switch {
	case !a.Recorded:
		return false, ErrEmptyAnswer
	case q.Kind == entities.KindFillBlank && !a.IsText():
		return false, ErrAnswerKind
	case q.Kind.IsChoice() && a.IsText():
		return false, ErrAnswerKind
	case a.IsText() && strings.TrimSpace(a.Text) == "":
		return false, ErrEmptyAnswer
	case !a.IsText() && (a.Index < 0 || a.Index >= len(q.Options)):
		return false, ErrInvalidAnswer
	}

	correct := q.IsCorrect(a)
	s.answers[s.position] = a
	if correct {
		s.score++
	}

	return correct, nil
}

// Advance moves to the next question, or finishes the session from the last one.
// Recorded answers are restored when revisiting a position.
func (s *Session) Advance() error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}

	if s.position == len(s.questions)-1 {
		s.phase = PhaseFinished
		return nil
	}

	s.position++
	return nil
}

// Retreat moves back one question without erasing any answer.
func (s *Session) Retreat() error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if s.position == 0 {
		return ErrNoPrevious
	}

	s.position--
	return nil
}

// Finish ends the session. Calling it on a finished or reviewing session is a no-op.
func (s *Session) Finish() error {
	switch s.phase {
	case PhaseActive:
		s.phase = PhaseFinished
		return nil
	case PhaseFinished, PhaseReviewing:
		return nil
	default:
		return ErrNotActive
	}
}

// ReviewAll enters the review phase and returns the per-question review.
func (s *Session) ReviewAll() ([]ReviewItem, error) {
	if s.phase != PhaseFinished && s.phase != PhaseReviewing {
		return nil, ErrNotFinished
	}

	s.phase = PhaseReviewing
	return Review(s), nil
}

// CloseReview leaves the review and goes back to the result screen.
func (s *Session) CloseReview() error {
	if s.phase != PhaseReviewing {
		return ErrNotReviewing
	}

	s.phase = PhaseFinished
	return nil
}

// Reset discards the questions and answers and returns to Setup.
// It is valid once the session has finished, is in review, or found no questions.
func (s *Session) Reset() error {
	switch s.phase {
	case PhaseFinished, PhaseReviewing, PhaseEmpty:
	default:
		return ErrNotFinished
	}

	s.phase = PhaseSetup
	s.config = entities.SessionConfig{}
	s.questions = nil
	s.answers = nil
	s.position = 0
	s.score = 0
	return nil
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Config returns the config the session was started with.
func (s *Session) Config() entities.SessionConfig { return s.config }

// Position returns the 0-based index of the current question.
func (s *Session) Position() int { return s.position }

// Total returns the number of selected questions.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the number of correctly answered positions.
func (s *Session) Score() int { return s.score }

// IsEmpty reports whether the last Start selected no questions.
func (s *Session) IsEmpty() bool { return s.phase == PhaseEmpty }

// HasAnsweredCurrent reports whether the current position has a recorded answer.
func (s *Session) HasAnsweredCurrent() bool {
	if s.position < 0 || s.position >= len(s.answers) {
		return false
	}
	return s.answers[s.position].Recorded
}

// Current returns the current question and its recorded answer.
func (s *Session) Current() (entities.Question, entities.Answer, bool) {
	if s.phase != PhaseActive || s.position >= len(s.questions) {
		return entities.Question{}, entities.Answer{}, false
	}
	return s.questions[s.position], s.answers[s.position], true
}
