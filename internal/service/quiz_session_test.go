package service_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

func startSession(t *testing.T, count int, specs ...questionSpec) *service.Session {
	t.Helper()

	session := service.NewSession(newSelector(newBank(t, specs...)))
	err := session.Start(entities.SessionConfig{
		Category:   entities.CategoryZero,
		Difficulty: entities.FilterAll,
		Count:      count,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return session
}

func currentQuestion(t *testing.T, s *service.Session) entities.Question {
	t.Helper()

	q, _, ok := s.Current()
	if !ok {
		t.Fatalf("no current question in phase %s", s.Phase())
	}
	return q
}

func wrongIndex(q entities.Question) int {
	return (q.CorrectIndex + 1) % len(q.Options)
}

func TestSession_Start(t *testing.T) {
	s := startSession(t, 3, repeat(5, zeroEasy(entities.KindMultipleChoice))...)

	if s.Phase() != service.PhaseActive {
		t.Fatalf("phase = %s, want active", s.Phase())
	}
	if s.Total() != 3 || s.Position() != 0 || s.Score() != 0 {
		t.Errorf("got total=%d position=%d score=%d", s.Total(), s.Position(), s.Score())
	}
	if s.HasAnsweredCurrent() {
		t.Error("fresh session reports an answer")
	}
}

func TestSession_StartInvalidConfig(t *testing.T) {
	s := service.NewSession(newSelector(newBank(t, zeroEasy(entities.KindBoolean))))

	err := s.Start(entities.SessionConfig{Category: "Fourth", Difficulty: entities.FilterAll, Count: 5})
	if !errors.Is(err, entities.ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
	if s.Phase() != service.PhaseSetup {
		t.Errorf("phase = %s, want setup", s.Phase())
	}
}

func TestSession_StartEmpty(t *testing.T) {
	s := service.NewSession(newSelector(newBank(t, zeroEasy(entities.KindBoolean))))

	err := s.Start(entities.SessionConfig{
		Category:   entities.CategoryZero,
		Difficulty: entities.DifficultyFilter(entities.DifficultyHard),
		Count:      5,
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.IsEmpty() || s.Total() != 0 {
		t.Fatalf("phase = %s total = %d, want empty", s.Phase(), s.Total())
	}
	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(0)); !errors.Is(err, service.ErrNotActive) {
		t.Errorf("answer on empty session: got %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Errorf("Reset on empty session: %v", err)
	}
}

func TestSession_AnswerOnce(t *testing.T) {
	s := startSession(t, 1, zeroEasy(entities.KindMultipleChoice))
	q := currentQuestion(t, s)

	correct, err := s.SubmitAnswer(entities.ChoiceAnswer(q.CorrectIndex))
	if err != nil || !correct {
		t.Fatalf("first answer: correct=%v err=%v", correct, err)
	}

	_, err = s.SubmitAnswer(entities.ChoiceAnswer(wrongIndex(q)))
	if !errors.Is(err, service.ErrAlreadyAnswered) {
		t.Fatalf("second answer: got %v, want ErrAlreadyAnswered", err)
	}

	_, a, _ := s.Current()
	if a.Index != q.CorrectIndex {
		t.Errorf("recorded answer changed to %d", a.Index)
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
}

func TestSession_AnswerValidation(t *testing.T) {
	s := startSession(t, 1, zeroEasy(entities.KindMultipleChoice))

	tests := []struct {
		name   string
		answer entities.Answer
		want   error
	}{
		{"unanswered", entities.Answer{}, service.ErrEmptyAnswer},
		{"text for choice", entities.TextAnswer("right"), service.ErrAnswerKind},
		{"negative index", entities.ChoiceAnswer(-1), service.ErrInvalidAnswer},
		{"index past options", entities.ChoiceAnswer(4), service.ErrInvalidAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.SubmitAnswer(tt.answer); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if s.HasAnsweredCurrent() {
		t.Error("rejected answers were recorded")
	}
}

func TestSession_FillBlank(t *testing.T) {
	tests := []struct {
		input   string
		correct bool
	}{
		{" Paris  ", true},
		{"paris", true},
		{"PARIS", true},
		{"Pariss", false},
	}
	for _, tt := range tests {
		s := startSession(t, 1, zeroEasy(entities.KindFillBlank))

		got, err := s.SubmitAnswer(entities.TextAnswer(tt.input))
		if err != nil {
			t.Fatalf("%q: %v", tt.input, err)
		}
		if got != tt.correct {
			t.Errorf("%q: correct = %v, want %v", tt.input, got, tt.correct)
		}
	}

	s := startSession(t, 1, zeroEasy(entities.KindFillBlank))
	if _, err := s.SubmitAnswer(entities.TextAnswer("   ")); !errors.Is(err, service.ErrEmptyAnswer) {
		t.Errorf("blank text: got %v", err)
	}
	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(0)); !errors.Is(err, service.ErrAnswerKind) {
		t.Errorf("index for fill-blank: got %v", err)
	}
}

func TestSession_NavigationKeepsAnswers(t *testing.T) {
	s := startSession(t, 3, repeat(3, zeroEasy(entities.KindMultipleChoice))...)

	first := currentQuestion(t, s)
	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(wrongIndex(first))); err != nil {
		t.Fatal(err)
	}

	if err := s.Retreat(); !errors.Is(err, service.ErrNoPrevious) {
		t.Fatalf("retreat at first question: got %v", err)
	}

	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	if s.Position() != 1 || s.HasAnsweredCurrent() {
		t.Fatalf("position=%d answered=%v after advance", s.Position(), s.HasAnsweredCurrent())
	}

	if err := s.Retreat(); err != nil {
		t.Fatal(err)
	}
	_, a, _ := s.Current()
	if !a.Recorded || a.Index != wrongIndex(first) {
		t.Errorf("answer not restored: %+v", a)
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
}

func TestSession_AdvanceFromLastFinishes(t *testing.T) {
	s := startSession(t, 2, repeat(2, zeroEasy(entities.KindBoolean))...)

	for i := 0; i < 2; i++ {
		q := currentQuestion(t, s)
		if _, err := s.SubmitAnswer(entities.ChoiceAnswer(q.CorrectIndex)); err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}

	if s.Phase() != service.PhaseFinished {
		t.Fatalf("phase = %s, want finished", s.Phase())
	}
	if got := service.Summarize(s); got.Score != 2 || got.Total != 2 || got.Percent() != 100 {
		t.Errorf("summary = %+v", got)
	}
	if err := s.Advance(); !errors.Is(err, service.ErrNotActive) {
		t.Errorf("advance after finish: got %v", err)
	}
	if err := s.Retreat(); !errors.Is(err, service.ErrNotActive) {
		t.Errorf("retreat after finish: got %v", err)
	}
}

func TestSession_AdvanceWithoutAnswer(t *testing.T) {
	s := startSession(t, 2, repeat(2, zeroEasy(entities.KindMultipleChoice))...)

	if err := s.Advance(); err != nil {
		t.Fatalf("advance past an unanswered question: %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}

	items, err := s.ReviewAll()
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range items {
		if item.Answer.Recorded || item.IsCorrect || item.AnswerText() != "" {
			t.Errorf("skipped question %d has review %+v", item.Position, item)
		}
	}
}

func TestSession_FinishEarly(t *testing.T) {
	s := startSession(t, 3, repeat(3, zeroEasy(entities.KindMultipleChoice))...)

	q := currentQuestion(t, s)
	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(q.CorrectIndex)); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Errorf("second Finish: %v", err)
	}

	if got := service.Summarize(s); got.Score != 1 || got.Total != 3 || got.Percent() != 33 {
		t.Errorf("summary = %+v", got)
	}
}

func TestSession_ReviewAndReset(t *testing.T) {
	s := startSession(t, 2, repeat(2, zeroEasy(entities.KindMultipleChoice))...)

	if _, err := s.ReviewAll(); !errors.Is(err, service.ErrNotFinished) {
		t.Fatalf("review while active: got %v", err)
	}
	if err := s.Reset(); !errors.Is(err, service.ErrNotFinished) {
		t.Fatalf("reset while active: got %v", err)
	}

	first := currentQuestion(t, s)
	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(first.CorrectIndex)); err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	second := currentQuestion(t, s)
	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(wrongIndex(second))); err != nil {
		t.Fatal(err)
	}
	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}

	items, err := s.ReviewAll()
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase() != service.PhaseReviewing {
		t.Fatalf("phase = %s, want reviewing", s.Phase())
	}
	if len(items) != 2 || !items[0].IsCorrect || items[1].IsCorrect {
		t.Fatalf("review = %+v", items)
	}
	if items[0].AnswerText() != "right" {
		t.Errorf("answer text = %q, want %q", items[0].AnswerText(), "right")
	}

	if err := s.CloseReview(); err != nil {
		t.Fatal(err)
	}
	if err := s.CloseReview(); !errors.Is(err, service.ErrNotReviewing) {
		t.Errorf("second CloseReview: got %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != service.PhaseSetup || s.Total() != 0 || s.Score() != 0 {
		t.Errorf("after reset: phase=%s total=%d score=%d", s.Phase(), s.Total(), s.Score())
	}
}

func TestCurrentView(t *testing.T) {
	s := startSession(t, 2, repeat(2, zeroEasy(entities.KindBoolean))...)

	v := service.CurrentView(s)
	if v.Phase != service.PhaseActive || v.Total != 2 || v.Answered || v.IsLast {
		t.Errorf("first view = %+v", v)
	}

	if err := s.Advance(); err != nil {
		t.Fatal(err)
	}
	v = service.CurrentView(s)
	if !v.IsLast || v.Position != 1 {
		t.Errorf("last view = %+v", v)
	}

	if _, err := s.SubmitAnswer(entities.ChoiceAnswer(v.Question.CorrectIndex)); err != nil {
		t.Fatal(err)
	}
	v = service.CurrentView(s)
	if !v.Answered || !v.IsCorrect || v.Score != 1 {
		t.Errorf("answered view = %+v", v)
	}
}

func TestSession_RandomWalkScoreMatchesReview(t *testing.T) {
	specs := repeat(3, zeroEasy(entities.KindMultipleChoice))
	specs = append(specs, repeat(3, zeroEasy(entities.KindBoolean))...)
	specs = append(specs, repeat(3, zeroEasy(entities.KindFillBlank))...)
	bank := newBank(t, specs...)

	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := service.NewSession(service.NewQuestionSelector(bank, service.NewShufflerWithSource(rng)))
		if err := s.Start(entities.SessionConfig{
			Category:   entities.CategoryZero,
			Difficulty: entities.FilterAll,
			Count:      6,
		}); err != nil {
			t.Fatalf("seed %d: Start: %v", seed, err)
		}

		for step := 0; step < 40 && s.Phase() == service.PhaseActive; step++ {
			switch rng.Intn(3) {
			case 0:
				q := currentQuestion(t, s)
				right := rng.Intn(2) == 0
				var answer entities.Answer
				switch {
				case q.Kind == entities.KindFillBlank && right:
					answer = entities.TextAnswer("Paris")
				case q.Kind == entities.KindFillBlank:
					answer = entities.TextAnswer("Lyon")
				case right:
					answer = entities.ChoiceAnswer(q.CorrectIndex)
				default:
					answer = entities.ChoiceAnswer(wrongIndex(q))
				}
				if _, err := s.SubmitAnswer(answer); err != nil && !errors.Is(err, service.ErrAlreadyAnswered) {
					t.Fatalf("seed %d: SubmitAnswer: %v", seed, err)
				}
			case 1:
				if err := s.Advance(); err != nil {
					t.Fatalf("seed %d: Advance: %v", seed, err)
				}
			default:
				if err := s.Retreat(); err != nil && !errors.Is(err, service.ErrNoPrevious) {
					t.Fatalf("seed %d: Retreat: %v", seed, err)
				}
			}
		}

		if err := s.Finish(); err != nil {
			t.Fatalf("seed %d: Finish: %v", seed, err)
		}
		items, err := s.ReviewAll()
		if err != nil {
			t.Fatalf("seed %d: ReviewAll: %v", seed, err)
		}

		correct := 0
		for _, item := range items {
			if item.IsCorrect {
				correct++
			}
		}
		if s.Score() != correct {
			t.Errorf("seed %d: score %d, review counts %d correct", seed, s.Score(), correct)
		}
	}
}
