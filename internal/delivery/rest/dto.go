package rest

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

type startRequest struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// answerRequest carries either an option index or free text.
type answerRequest struct {
	Index *int    `json:"index,omitempty"`
	Text  *string `json:"text,omitempty"`
}

type questionResponse struct {
	ID         int                   `json:"id"`
	Category   entities.Category     `json:"category"`
	Kind       entities.QuestionKind `json:"kind"`
	Difficulty entities.Difficulty   `json:"difficulty"`
	Prompt     string                `json:"prompt"`
	Options    []string              `json:"options,omitempty"`
}

// feedbackResponse is only present once the current question has been answered.
type feedbackResponse struct {
	YourAnswer    string               `json:"your_answer"`
	CorrectAnswer string               `json:"correct_answer"`
	IsCorrect     bool                 `json:"is_correct"`
	NearMiss      bool                 `json:"near_miss,omitempty"`
	Explanation   entities.Explanation `json:"explanation,omitempty"`
}

type viewResponse struct {
	SessionID string            `json:"session_id"`
	Phase     string            `json:"phase"`
	Empty     bool              `json:"empty,omitempty"`
	Position  int               `json:"position"`
	Total     int               `json:"total"`
	Score     int               `json:"score"`
	IsLast    bool              `json:"is_last,omitempty"`
	Question  *questionResponse `json:"question,omitempty"`
	Feedback  *feedbackResponse `json:"feedback,omitempty"`
	Summary   *summaryResponse  `json:"summary,omitempty"`
}

type summaryResponse struct {
	Score   int `json:"score"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type reviewItemResponse struct {
	Position      int                   `json:"position"`
	Category      entities.Category     `json:"category"`
	Kind          entities.QuestionKind `json:"kind"`
	Difficulty    entities.Difficulty   `json:"difficulty"`
	Prompt        string                `json:"prompt"`
	Options       []string              `json:"options,omitempty"`
	YourAnswer    string                `json:"your_answer"`
	CorrectAnswer string                `json:"correct_answer"`
	IsCorrect     bool                  `json:"is_correct"`
	Explanation   entities.Explanation  `json:"explanation,omitempty"`
}

type reviewResponse struct {
	SessionID string               `json:"session_id"`
	Summary   summaryResponse      `json:"summary"`
	Items     []reviewItemResponse `json:"items"`
}

type lessonResponse struct {
	entities.Lesson
	Next entities.Category `json:"next,omitempty"`
}

func toSummaryResponse(s service.Summary) summaryResponse {
	return summaryResponse{Score: s.Score, Total: s.Total, Percent: s.Percent()}
}

func toQuestionResponse(q entities.Question) *questionResponse {
	return &questionResponse{
		ID:         q.ID,
		Category:   q.Category,
		Kind:       q.Kind,
		Difficulty: q.Difficulty,
		Prompt:     q.Prompt,
		Options:    q.Options,
	}
}

func toReviewResponse(id string, items []service.ReviewItem) reviewResponse {
	resp := reviewResponse{
		SessionID: id,
		Items:     make([]reviewItemResponse, 0, len(items)),
	}

	var summary service.Summary
	for _, item := range items {
		q := item.Question
		summary.Total++
		if item.IsCorrect {
			summary.Score++
		}
		resp.Items = append(resp.Items, reviewItemResponse{
			Position:      item.Position,
			Category:      q.Category,
			Kind:          q.Kind,
			Difficulty:    q.Difficulty,
			Prompt:        q.Prompt,
			Options:       q.Options,
			YourAnswer:    item.AnswerText(),
			CorrectAnswer: q.CorrectAnswerText(),
			IsCorrect:     item.IsCorrect,
			Explanation:   q.Explanation,
		})
	}
	resp.Summary = toSummaryResponse(summary)

	return resp
}
