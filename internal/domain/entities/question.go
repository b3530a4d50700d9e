// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuestion is returned when a question does not satisfy the shape required by its kind.
var ErrInvalidQuestion = errors.New("invalid question")

// Category is the lesson grouping a question belongs to.
type Category string

const (
	CategoryZero   Category = "Zero"
	CategoryFirst  Category = "First"
	CategorySecond Category = "Second"
	CategoryThird  Category = "Third"
	CategoryMixed1 Category = "Mixed Conditional 1"
	CategoryMixed2 Category = "Mixed Conditional 2"

	// CategoryOverall is the catch-all comprehensive category.
	CategoryOverall Category = "Overall"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryZero,
	CategoryFirst,
	CategorySecond,
	CategoryThird,
	CategoryMixed1,
	CategoryMixed2,
	CategoryOverall,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// IsComprehensive reports whether c is the catch-all category that blends all others.
func (c Category) IsComprehensive() bool {
	return c == CategoryOverall
}

// QuestionKind is the answer shape of a question.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple-choice"
	KindBoolean        QuestionKind = "boolean"
	KindFillBlank      QuestionKind = "fill-blank"
)

// IsChoice reports whether questions of this kind are answered by picking an option.
func (k QuestionKind) IsChoice() bool {
	return k == KindMultipleChoice || k == KindBoolean
}

// IsValid reports whether k is a known question kind.
func (k QuestionKind) IsValid() bool {
	return k.IsChoice() || k == KindFillBlank
}

// Difficulty is the difficulty tag of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Question is an immutable question from the bank.
// Choice kinds use Options and CorrectIndex; fill-blank uses CorrectText.
type Question struct {
	ID           int
	Category     Category
	Kind         QuestionKind
	Difficulty   Difficulty
	Prompt       string
	Options      []string // multiple choice and boolean only
	CorrectIndex int      // index into Options for choice kinds
	CorrectText  string   // canonical answer for fill-blank
	Explanation  Explanation
}

// NewChoiceQuestion creates a multiple-choice question.
func NewChoiceQuestion(
	id int, category Category, difficulty Difficulty,
	prompt string, options []string, correctIndex int, explanation Explanation,
) (Question, error) {
	q := Question{
		ID:           id,
		Category:     category,
		Kind:         KindMultipleChoice,
		Difficulty:   difficulty,
		Prompt:       prompt,
		Options:      append([]string(nil), options...),
		CorrectIndex: correctIndex,
		Explanation:  explanation,
	}
	return q, q.Validate()
}

// NewBooleanQuestion creates a two-option question such as True/False.
func NewBooleanQuestion(
	id int, category Category, difficulty Difficulty,
	prompt string, options [2]string, correctIndex int, explanation Explanation,
) (Question, error) {
	q := Question{
		ID:           id,
		Category:     category,
		Kind:         KindBoolean,
		Difficulty:   difficulty,
		Prompt:       prompt,
		Options:      []string{options[0], options[1]},
		CorrectIndex: correctIndex,
		Explanation:  explanation,
	}
	return q, q.Validate()
}

// NewFillBlankQuestion creates a free-text question answered by a canonical string.
func NewFillBlankQuestion(
	id int, category Category, difficulty Difficulty,
	prompt, correctText string, explanation Explanation,
) (Question, error) {
	q := Question{
		ID:          id,
		Category:    category,
		Kind:        KindFillBlank,
		Difficulty:  difficulty,
		Prompt:      prompt,
		CorrectText: correctText,
		Explanation: explanation,
	}
	return q, q.Validate()
}

// Validate checks that the question has every field its kind requires.
func (q Question) Validate() error {
	if !q.Category.IsValid() {
		return fmt.Errorf("%w: question %d: unknown category %q", ErrInvalidQuestion, q.ID, q.Category)
	}
	if !q.Kind.IsValid() {
		return fmt.Errorf("%w: question %d: unknown kind %q", ErrInvalidQuestion, q.ID, q.Kind)
	}
	if !q.Difficulty.IsValid() {
		return fmt.Errorf("%w: question %d: unknown difficulty %q", ErrInvalidQuestion, q.ID, q.Difficulty)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: question %d: empty prompt", ErrInvalidQuestion, q.ID)
	}

	switch q.Kind {
	case KindMultipleChoice, KindBoolean:
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d: choice question without options", ErrInvalidQuestion, q.ID)
		}
		if q.Kind == KindBoolean && len(q.Options) != 2 {
			return fmt.Errorf("%w: question %d: boolean question needs 2 options, got %d",
				ErrInvalidQuestion, q.ID, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d: correct index %d out of range",
				ErrInvalidQuestion, q.ID, q.CorrectIndex)
		}
	case KindFillBlank:
		if strings.TrimSpace(q.CorrectText) == "" {
			return fmt.Errorf("%w: question %d: empty canonical answer", ErrInvalidQuestion, q.ID)
		}
	}

	return nil
}

// CorrectAnswerText returns the correct answer as display text for any kind.
func (q Question) CorrectAnswerText() string {
	if q.Kind.IsChoice() {
		if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			return q.Options[q.CorrectIndex]
		}
		return ""
	}
	return q.CorrectText
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	if q.Explanation != nil {
		out.Explanation = append(Explanation(nil), q.Explanation...)
	}
	return out
}
