package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a session configuration cannot be used to start a quiz.
var ErrInvalidConfig = errors.New("invalid session config")

// DifficultyFilter restricts eligible questions before selection.
type DifficultyFilter string

// FilterAll disables difficulty filtering.
const FilterAll DifficultyFilter = "All"

// DifficultyFilters lists the filters offered on the setup screen.
var DifficultyFilters = []DifficultyFilter{
	FilterAll,
	DifficultyFilter(DifficultyEasy),
	DifficultyFilter(DifficultyMedium),
	DifficultyFilter(DifficultyHard),
}

// AllowedCounts lists the question counts offered on the setup screen.
var AllowedCounts = []int{5, 10, 20, 30, 40, 50}

const (
	DefaultQuestionCount = 10
	DefaultFilter        = FilterAll
)

// IsValid reports whether f is All or a known difficulty.
func (f DifficultyFilter) IsValid() bool {
	return f == FilterAll || Difficulty(f).IsValid()
}

// Matches reports whether a question of difficulty d passes the filter.
func (f DifficultyFilter) Matches(d Difficulty) bool {
	return f == FilterAll || Difficulty(f) == d
}

// ParseDifficultyFilter parses a filter case-insensitively. An empty string means All.
func ParseDifficultyFilter(s string) (DifficultyFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range DifficultyFilters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty filter %q", ErrInvalidConfig, s)
}

// SessionConfig is supplied once when a quiz starts and never changes afterwards.
type SessionConfig struct {
	Category   Category
	Difficulty DifficultyFilter
	Count      int // desired number of questions, positive
}

// DefaultSessionConfig returns the setup screen defaults for a category.
func DefaultSessionConfig(category Category) SessionConfig {
	return SessionConfig{
		Category:   category,
		Difficulty: DefaultFilter,
		Count:      DefaultQuestionCount,
	}
}

// Validate checks the config fields.
func (c SessionConfig) Validate() error {
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidConfig, c.Category)
	}
	if !c.Difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty filter %q", ErrInvalidConfig, c.Difficulty)
	}
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	}
	return nil
}

// Answer is a recorded response: an option index for choice kinds or free text for fill-blank.
// The zero value means "unanswered".
type Answer struct {
	Recorded bool
	FreeText bool
	Index    int
	Text     string
}

// ChoiceAnswer builds an answer that selects option i.
func ChoiceAnswer(i int) Answer {
	return Answer{Recorded: true, Index: i}
}

// TextAnswer builds a free-text answer.
func TextAnswer(s string) Answer {
	return Answer{Recorded: true, FreeText: true, Index: -1, Text: s}
}

// IsText reports whether the answer carries free text rather than an option index.
func (a Answer) IsText() bool {
	return a.Recorded && a.FreeText
}

// NormalizeText folds case and trims surrounding whitespace for fill-blank comparison.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorrect judges an answer against a question:
// fill-blank compares normalized text, choice kinds compare the option index.
// An unanswered value is never correct.
func (q Question) IsCorrect(a Answer) bool {
	if !a.Recorded {
		return false
	}
	if q.Kind == KindFillBlank {
		return a.IsText() && NormalizeText(a.Text) == NormalizeText(q.CorrectText)
	}
	return !a.IsText() && a.Index == q.CorrectIndex
}

// AnswerText returns the answer as display text, resolving option indexes against q.
func (q Question) AnswerText(a Answer) string {
	switch {
	case !a.Recorded:
		return ""
	case a.IsText():
		return a.Text
	case a.Index >= 0 && a.Index < len(q.Options):
		return q.Options[a.Index]
	default:
		return ""
	}
}
