package repository_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/repository"
)

const questionsDoc = `{
  "questions": [
    {
      "id": 1,
      "category": "Zero",
      "kind": "multiple-choice",
      "difficulty": "Easy",
      "prompt": "If you heat ice, it ___.",
      "options": ["melts", "melted", "would melt"],
      "correct_answer": 0,
      "explanation": [{"label": "Rule", "body": "present + present"}]
    },
    {
      "id": 2,
      "category": "Second",
      "kind": "boolean",
      "difficulty": "Medium",
      "prompt": "\"If I was you\" is formal English.",
      "options": ["True", "False"],
      "correct_answer": 1
    },
    {
      "id": 3,
      "category": "Third",
      "kind": "fill-blank",
      "difficulty": "Hard",
      "prompt": "If they ___ (leave) earlier, they would have caught the train.",
      "correct_answer": "had left"
    }
  ]
}`

func TestDecodeQuestions(t *testing.T) {
	questions, err := repository.DecodeQuestions(strings.NewReader(questionsDoc))
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}

	if q := questions[0]; q.CorrectIndex != 0 || q.Explanation[0].Label != "Rule" {
		t.Errorf("choice question = %+v", q)
	}
	if q := questions[1]; q.Kind != entities.KindBoolean || q.CorrectAnswerText() != "False" {
		t.Errorf("boolean question = %+v", q)
	}
	if q := questions[2]; q.CorrectText != "had left" || q.Options != nil {
		t.Errorf("fill-blank question = %+v", q)
	}
}

func TestDecodeQuestions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string answer for choice", `{"questions":[{"id":1,"category":"Zero","kind":"multiple-choice","difficulty":"Easy","prompt":"p","options":["a"],"correct_answer":"a"}]}`},
		{"index answer for fill-blank", `{"questions":[{"id":1,"category":"Zero","kind":"fill-blank","difficulty":"Easy","prompt":"p","correct_answer":0}]}`},
		{"boolean with one option", `{"questions":[{"id":1,"category":"Zero","kind":"boolean","difficulty":"Easy","prompt":"p","options":["True"],"correct_answer":0}]}`},
		{"unknown kind", `{"questions":[{"id":1,"category":"Zero","kind":"essay","difficulty":"Easy","prompt":"p","correct_answer":0}]}`},
		{"index out of range", `{"questions":[{"id":1,"category":"Zero","kind":"multiple-choice","difficulty":"Easy","prompt":"p","options":["a","b"],"correct_answer":2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repository.DecodeQuestions(strings.NewReader(tt.doc)); !errors.Is(err, entities.ErrInvalidQuestion) {
				t.Errorf("got %v, want ErrInvalidQuestion", err)
			}
		})
	}

	if _, err := repository.DecodeQuestions(strings.NewReader("{")); err == nil {
		t.Error("malformed JSON accepted")
	}
}

func TestNewQuestionBank(t *testing.T) {
	questions, err := repository.DecodeQuestions(strings.NewReader(questionsDoc))
	if err != nil {
		t.Fatal(err)
	}

	bank, err := repository.NewQuestionBank(questions)
	if err != nil {
		t.Fatal(err)
	}
	if bank.Len() != 3 {
		t.Errorf("Len = %d", bank.Len())
	}
	if counts := bank.CountByCategory(); counts[entities.CategoryZero] != 1 || counts[entities.CategoryFirst] != 0 {
		t.Errorf("CountByCategory = %v", counts)
	}

	all := bank.Questions()
	for i, q := range all {
		if q.ID != i+1 {
			t.Errorf("Questions()[%d].ID = %d, want corpus order", i, q.ID)
		}
	}
	if all[2].Kind != entities.KindFillBlank {
		t.Errorf("question 3 kind = %s", all[2].Kind)
	}

	all[0].Options[0] = "changed"
	if again := bank.Questions(); again[0].Options[0] != "melts" {
		t.Error("bank exposed its internal options")
	}

	if _, err := repository.NewQuestionBank(append(questions, questions[0])); !errors.Is(err, repository.ErrDuplicateID) {
		t.Errorf("duplicate id: got %v", err)
	}
	if _, err := repository.NewQuestionBank(nil); !errors.Is(err, repository.ErrEmptyBank) {
		t.Errorf("empty bank: got %v", err)
	}
}

func TestQuestionRow(t *testing.T) {
	questions, err := repository.DecodeQuestions(strings.NewReader(questionsDoc))
	if err != nil {
		t.Fatal(err)
	}

	for _, q := range questions {
		row := repository.NewQuestionRow(q)
		if q.Kind == entities.KindFillBlank && (row.CorrectText == nil || row.CorrectIndex != nil) {
			t.Errorf("question %d: fill-blank row = %+v", q.ID, row)
		}
		if q.Kind.IsChoice() && (row.CorrectIndex == nil || row.CorrectText != nil) {
			t.Errorf("question %d: choice row = %+v", q.ID, row)
		}

		got, err := row.ToEntity()
		if err != nil {
			t.Fatalf("question %d: %v", q.ID, err)
		}
		if got.CorrectAnswerText() != q.CorrectAnswerText() || got.Prompt != q.Prompt || len(got.Explanation) != len(q.Explanation) {
			t.Errorf("question %d: row gave %+v, want %+v", q.ID, got, q)
		}
	}

	if _, err := (repository.QuestionRow{ID: 7, Category: "Zero", Kind: "boolean", Difficulty: "Easy", Prompt: "p"}).ToEntity(); !errors.Is(err, entities.ErrInvalidQuestion) {
		t.Errorf("row without correct index: got %v", err)
	}
}
