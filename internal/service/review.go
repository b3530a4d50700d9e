package service

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// Summary is the completion summary of a session.
type Summary struct {
	Score int
	Total int
}

// Percent returns the score as a whole percentage of the total.
func (s Summary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Score * 100 / s.Total
}

// ReviewItem is one question of the post-session review.
type ReviewItem struct {
	Position  int
	Question  entities.Question // options in session order
	Answer    entities.Answer   // zero value when the question was skipped
	IsCorrect bool
}

// AnswerText returns the recorded answer as display text, or "" when unanswered.
func (r ReviewItem) AnswerText() string {
	return r.Question.AnswerText(r.Answer)
}

// View is what a host renders for the current state of a session.
type View struct {
	Phase     Phase
	Position  int // 0-based
	Total     int
	Score     int
	Question  entities.Question
	Answer    entities.Answer
	Answered  bool
	IsCorrect bool
	IsLast    bool
}

// Summarize returns the score and total of a session.
func Summarize(s *Session) Summary {
	return Summary{
		Score: s.score,
		Total: len(s.questions),
	}
}

// Review builds the per-question verdicts from the answers recorded at call time.
func Review(s *Session) []ReviewItem {
	items := make([]ReviewItem, 0, len(s.questions))
	for i, q := range s.questions {
		a := s.answers[i]
		items = append(items, ReviewItem{
			Position:  i,
			Question:  q.Clone(),
			Answer:    a,
			IsCorrect: q.IsCorrect(a),
		})
	}
	return items
}

// CurrentView derives the display state of a session.
func CurrentView(s *Session) View {
	v := View{
		Phase:    s.phase,
		Position: s.position,
		Total:    len(s.questions),
		Score:    s.score,
	}

	q, a, ok := s.Current()
	if !ok {
		return v
	}

	v.Question = q.Clone()
	v.Answer = a
	v.Answered = a.Recorded
	v.IsCorrect = q.IsCorrect(a)
	v.IsLast = s.position == len(s.questions)-1
	return v
}
