package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/infra/sqlite"
)

func TestStore_SeedAndLoad(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	expl := entities.Explanation{
		{Label: "Rationale", Body: "A law of nature uses the present simple."},
		{Label: "Formula", Body: "If + Present Simple, Present Simple"},
	}
	choice, err := entities.NewChoiceQuestion(1, entities.CategoryZero, entities.DifficultyEasy,
		"If you heat ice, it ___.", []string{"melts", "will melt"}, 0, expl)
	if err != nil {
		t.Fatal(err)
	}
	fill, err := entities.NewFillBlankQuestion(2, entities.CategoryFirst, entities.DifficultyMedium,
		"If it rains, I ___ (stay) home.", "will stay", expl)
	if err != nil {
		t.Fatal(err)
	}
	lessons := []entities.Lesson{
		{Category: entities.CategoryFirst, Order: 2, Meaning: "Real future possibilities."},
		{Category: entities.CategoryZero, Order: 1, Meaning: "Universal truths."},
	}

	if err := store.Seed(ctx, lessons, []entities.Question{choice, fill}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Seeding twice must upsert rather than fail.
	if err := store.Seed(ctx, lessons, []entities.Question{choice, fill}); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	questions, err := store.Questions(ctx)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}

	gotChoice := questions[0]
	if gotChoice.Kind != entities.KindMultipleChoice || gotChoice.CorrectIndex != 0 || len(gotChoice.Options) != 2 {
		t.Errorf("choice question round-trip mismatch: %+v", gotChoice)
	}
	if len(gotChoice.Explanation) != 2 || gotChoice.Explanation[1].Label != "Formula" {
		t.Errorf("explanation round-trip mismatch: %+v", gotChoice.Explanation)
	}

	gotFill := questions[1]
	if gotFill.Kind != entities.KindFillBlank || gotFill.CorrectText != "will stay" {
		t.Errorf("fill-blank question round-trip mismatch: %+v", gotFill)
	}

	gotLessons, err := store.Lessons(ctx)
	if err != nil {
		t.Fatalf("Lessons: %v", err)
	}
	if len(gotLessons) != 2 || gotLessons[0].Category != entities.CategoryZero {
		t.Errorf("lessons not returned in display order: %+v", gotLessons)
	}
}
