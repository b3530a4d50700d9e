package service

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// OptionRandomizer shuffles the options of choice questions for one session.
type OptionRandomizer struct {
	shuffler *Shuffler
}

// NewOptionRandomizer creates a new option randomizer.
func NewOptionRandomizer(shuffler *Shuffler) *OptionRandomizer {
	return &OptionRandomizer{
		shuffler: shuffler,
	}
}

// Randomize returns a session copy of q with shuffled options and a re-indexed correct answer.
// Fill-blank questions and choice questions without options are returned as an unmodified copy.
// Option texts are expected to be unique; with duplicates the first matching text wins.
func (r *OptionRandomizer) Randomize(q entities.Question) entities.Question {
	out := q.Clone()
	if !q.Kind.IsChoice() || len(q.Options) == 0 {
		return out
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		// Rejected by corpus validation; never reached for a loaded bank.
		return out
	}

	correctText := q.Options[q.CorrectIndex]
	out.Options = Shuffled(r.shuffler, q.Options)

	// Find the new position of the correct answer.
	for i, opt := range out.Options {
		if opt == correctText {
			out.CorrectIndex = i
			break
		}
	}

	return out
}

// RandomizeAll applies Randomize to every question, preserving order.
func (r *OptionRandomizer) RandomizeAll(questions []entities.Question) []entities.Question {
	out := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, r.Randomize(q))
	}
	return out
}
