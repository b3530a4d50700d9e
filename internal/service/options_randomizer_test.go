package service_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

func TestRandomize_KeepsCorrectAnswerText(t *testing.T) {
	q, err := entities.NewChoiceQuestion(1, entities.CategoryFirst, entities.DifficultyMedium,
		"If it rains, I ___ home.", []string{"stay", "will stay", "would stay", "stayed"}, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := service.NewOptionRandomizer(service.NewShufflerWithSource(rand.New(rand.NewSource(7))))
	for range 100 {
		out := r.Randomize(q)

		if got := out.Options[out.CorrectIndex]; got != "will stay" {
			t.Fatalf("correct option moved to %q at index %d", got, out.CorrectIndex)
		}

		sorted := slices.Clone(out.Options)
		slices.Sort(sorted)
		want := slices.Clone(q.Options)
		slices.Sort(want)
		if !slices.Equal(sorted, want) {
			t.Fatalf("options changed: %v", out.Options)
		}
	}

	if q.CorrectIndex != 1 || q.Options[1] != "will stay" {
		t.Errorf("original question was modified: %+v", q)
	}
}

func TestRandomize_BooleanSwap(t *testing.T) {
	q, err := entities.NewBooleanQuestion(1, entities.CategoryZero, entities.DifficultyEasy,
		"Water boils at 100 degrees.", [2]string{"True", "False"}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	r := service.NewOptionRandomizer(service.NewShufflerWithSource(&fixedSource{vals: []int{0}}))
	out := r.Randomize(q)

	if !slices.Equal(out.Options, []string{"False", "True"}) {
		t.Fatalf("options = %v, want [False True]", out.Options)
	}
	if out.CorrectIndex != 1 {
		t.Errorf("CorrectIndex = %d, want 1", out.CorrectIndex)
	}
	if !out.IsCorrect(entities.ChoiceAnswer(1)) || out.IsCorrect(entities.ChoiceAnswer(0)) {
		t.Errorf("verdicts do not follow the new index")
	}
}

func TestRandomize_FillBlankUnchanged(t *testing.T) {
	q, err := entities.NewFillBlankQuestion(1, entities.CategoryThird, entities.DifficultyHard,
		"If I had known, I ___ (come).", "would have come", nil)
	if err != nil {
		t.Fatal(err)
	}

	r := service.NewOptionRandomizer(service.NewShuffler())
	out := r.Randomize(q)

	if out.CorrectText != q.CorrectText || len(out.Options) != 0 || out.CorrectIndex != q.CorrectIndex {
		t.Errorf("fill-blank question changed: %+v", out)
	}
}
