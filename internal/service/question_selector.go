package service

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// QuestionSelector builds the randomized question list for a session.
type QuestionSelector struct {
	bank     QuestionBank
	shuffler *Shuffler
	options  *OptionRandomizer
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector(bank QuestionBank, shuffler *Shuffler) *QuestionSelector {
	return &QuestionSelector{
		bank:     bank,
		shuffler: shuffler,
		options:  NewOptionRandomizer(shuffler),
	}
}

// SelectQuestions selects at most cfg.Count questions for a session.
// The comprehensive category blends its own questions with questions from every other category;
// any other category draws only from its own pool. Every returned question has its options shuffled.
// An empty result is valid and means nothing matched the filters.
func (s *QuestionSelector) SelectQuestions(cfg entities.SessionConfig) []entities.Question {
	if cfg.Count <= 0 {
		return nil
	}

	var out []entities.Question
	if cfg.Category.IsComprehensive() {
		out = s.selectBlended(cfg)
	} else {
		out = s.selectSingle(cfg)
	}

	return s.options.RandomizeAll(out)
}

// selectSingle shuffles the matching pool and takes the first cfg.Count questions.
func (s *QuestionSelector) selectSingle(cfg entities.SessionConfig) []entities.Question {
	pool := filterQuestions(s.bank.Questions(), func(q entities.Question) bool {
		return q.Category == cfg.Category && cfg.Difficulty.Matches(q.Difficulty)
	})

	return takeFirst(Shuffled(s.shuffler, pool), cfg.Count)
}

// selectBlended takes a quota of comprehensive questions, fills the rest from other categories,
// and shuffles the result so the blend is not positionally predictable.
func (s *QuestionSelector) selectBlended(cfg entities.SessionConfig) []entities.Question {
	all := s.bank.Questions()

	special := filterQuestions(all, func(q entities.Question) bool {
		return q.Category.IsComprehensive() && cfg.Difficulty.Matches(q.Difficulty)
	})
	others := filterQuestions(all, func(q entities.Question) bool {
		return !q.Category.IsComprehensive() && cfg.Difficulty.Matches(q.Difficulty)
	})

	special = Shuffled(s.shuffler, special)
	others = Shuffled(s.shuffler, others)

	special = takeFirst(special, calcSpecialQuota(cfg.Count))
	others = takeFirst(others, cfg.Count-len(special))

	out := make([]entities.Question, 0, len(special)+len(others))
	out = append(out, special...)
	out = append(out, others...)

	return Shuffled(s.shuffler, out)
}

// filterQuestions returns the questions that satisfy keep, preserving order.
func filterQuestions(questions []entities.Question, keep func(entities.Question) bool) []entities.Question {
	out := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// takeFirst returns the first n elements of qs, or the whole slice if it is shorter.
func takeFirst(qs []entities.Question, n int) []entities.Question {
	if n <= 0 {
		return nil
	}
	if len(qs) <= n {
		return qs
	}
	return qs[:n]
}

// calcSpecialQuota returns how many comprehensive questions a blended session aims for:
// 30% of the total, at least 2, never more than the total.
func calcSpecialQuota(total int) int {
	limit := total * 30 / 100
	if limit < 2 {
		limit = 2
	}
	if limit > total {
		limit = total
	}
	return limit
}
