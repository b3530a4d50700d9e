package service_test

import (
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

func TestNearMissDetector(t *testing.T) {
	fill, err := entities.NewFillBlankQuestion(1, entities.CategoryThird, entities.DifficultyMedium,
		"If I ___ known, I would have helped.", "had", nil)
	if err != nil {
		t.Fatal(err)
	}
	longFill, err := entities.NewFillBlankQuestion(2, entities.CategoryThird, entities.DifficultyMedium,
		"If she ___ harder, she would have passed.", "had studied", nil)
	if err != nil {
		t.Fatal(err)
	}
	choice, err := entities.NewChoiceQuestion(3, entities.CategoryZero, entities.DifficultyEasy,
		"prompt", []string{"boils", "boil"}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	d := service.NewNearMissDetector()

	tests := []struct {
		name     string
		question entities.Question
		answer   entities.Answer
		want     bool
	}{
		{"one typo in a long answer", longFill, entities.TextAnswer("had studed"), true},
		{"case and spaces are not a miss", longFill, entities.TextAnswer("  HAD STUDIED "), false},
		{"unrelated answer", longFill, entities.TextAnswer("would study"), false},
		{"short answer typo below threshold", fill, entities.TextAnswer("has"), false},
		{"blank answer", fill, entities.TextAnswer(" "), false},
		{"choice question", choice, entities.ChoiceAnswer(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsNearMiss(tt.question, tt.answer); got != tt.want {
				t.Errorf("IsNearMiss = %v, want %v", got, tt.want)
			}
		})
	}
}
