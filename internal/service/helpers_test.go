package service_test

import (
	"fmt"
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/repository"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// fixedSource replays vals, clamped to the requested range.
type fixedSource struct {
	vals []int
	i    int
}

func (s *fixedSource) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type questionSpec struct {
	category   entities.Category
	difficulty entities.Difficulty
	kind       entities.QuestionKind
}

// newBank builds a bank with one question per spec; ids start at 1.
func newBank(t *testing.T, specs ...questionSpec) *repository.QuestionBank {
	t.Helper()

	questions := make([]entities.Question, 0, len(specs))
	for i, spec := range specs {
		id := i + 1
		prompt := fmt.Sprintf("question %d", id)

		var (
			q   entities.Question
			err error
		)
		switch spec.kind {
		case entities.KindFillBlank:
			q, err = entities.NewFillBlankQuestion(id, spec.category, spec.difficulty, prompt, "Paris", nil)
		case entities.KindBoolean:
			q, err = entities.NewBooleanQuestion(id, spec.category, spec.difficulty, prompt,
				[2]string{"True", "False"}, 0, nil)
		default:
			q, err = entities.NewChoiceQuestion(id, spec.category, spec.difficulty, prompt,
				[]string{"right", "wrong a", "wrong b", "wrong c"}, 0, nil)
		}
		if err != nil {
			t.Fatal(err)
		}
		questions = append(questions, q)
	}

	bank, err := repository.NewQuestionBank(questions)
	if err != nil {
		t.Fatal(err)
	}
	return bank
}

func repeat(n int, spec questionSpec) []questionSpec {
	out := make([]questionSpec, n)
	for i := range out {
		out[i] = spec
	}
	return out
}

func zeroEasy(kind entities.QuestionKind) questionSpec {
	return questionSpec{entities.CategoryZero, entities.DifficultyEasy, kind}
}

func newSelector(bank service.QuestionBank) *service.QuestionSelector {
	return service.NewQuestionSelector(bank, service.NewShuffler())
}
