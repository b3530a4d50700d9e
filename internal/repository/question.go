package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

var (
	ErrDuplicateID = errors.New("duplicate question id")
	ErrEmptyBank   = errors.New("question bank is empty")
)

// QuestionBank provides read-only access to the validated question corpus.
// It is safe for concurrent use because it is never modified after construction.
type QuestionBank struct {
	questions []entities.Question
}

// NewQuestionBank validates questions and builds a bank that keeps their order.
func NewQuestionBank(questions []entities.Question) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}

	seen := make(map[int]struct{}, len(questions))
	stored := make([]entities.Question, 0, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[q.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, q.ID)
		}
		seen[q.ID] = struct{}{}
		stored = append(stored, q.Clone())
	}

	return &QuestionBank{questions: stored}, nil
}

// Questions returns the whole corpus in its original order.
func (b *QuestionBank) Questions() []entities.Question {
	out := make([]entities.Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Clone()
	}
	return out
}

// Len returns the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// CountByCategory returns how many questions each category holds.
func (b *QuestionBank) CountByCategory() map[entities.Category]int {
	out := make(map[entities.Category]int, len(entities.Categories))
	for _, q := range b.questions {
		out[q.Category]++
	}
	return out
}

// questionRecord is the JSON shape of a question. CorrectAnswer holds an option index
// for choice kinds and the canonical string for fill-blank.
type questionRecord struct {
	ID            int                   `json:"id"`
	Category      entities.Category     `json:"category"`
	Kind          entities.QuestionKind `json:"kind"`
	Difficulty    entities.Difficulty   `json:"difficulty"`
	Prompt        string                `json:"prompt"`
	Options       []string              `json:"options,omitempty"`
	CorrectAnswer json.RawMessage       `json:"correct_answer"`
	Explanation   entities.Explanation  `json:"explanation"`
}

func (r questionRecord) toEntity() (entities.Question, error) {
	switch r.Kind {
	case entities.KindMultipleChoice:
		idx, err := decodeIndex(r.ID, r.CorrectAnswer)
		if err != nil {
			return entities.Question{}, err
		}
		return entities.NewChoiceQuestion(r.ID, r.Category, r.Difficulty, r.Prompt, r.Options, idx, r.Explanation)

	case entities.KindBoolean:
		idx, err := decodeIndex(r.ID, r.CorrectAnswer)
		if err != nil {
			return entities.Question{}, err
		}
		if len(r.Options) != 2 {
			return entities.Question{}, fmt.Errorf("%w: question %d: boolean question needs 2 options, got %d",
				entities.ErrInvalidQuestion, r.ID, len(r.Options))
		}
		return entities.NewBooleanQuestion(r.ID, r.Category, r.Difficulty, r.Prompt,
			[2]string{r.Options[0], r.Options[1]}, idx, r.Explanation)

	case entities.KindFillBlank:
		var text string
		if err := json.Unmarshal(r.CorrectAnswer, &text); err != nil {
			return entities.Question{}, fmt.Errorf("%w: question %d: correct_answer must be a string",
				entities.ErrInvalidQuestion, r.ID)
		}
		return entities.NewFillBlankQuestion(r.ID, r.Category, r.Difficulty, r.Prompt, text, r.Explanation)

	default:
		return entities.Question{}, fmt.Errorf("%w: question %d: unknown kind %q",
			entities.ErrInvalidQuestion, r.ID, r.Kind)
	}
}

func decodeIndex(id int, raw json.RawMessage) (int, error) {
	var idx int
	if err := json.Unmarshal(raw, &idx); err != nil {
		return 0, fmt.Errorf("%w: question %d: correct_answer must be an option index",
			entities.ErrInvalidQuestion, id)
	}
	return idx, nil
}

// DecodeQuestions reads a {"questions": [...]} document.
func DecodeQuestions(r io.Reader) ([]entities.Question, error) {
	var wrapper struct {
		Questions []questionRecord `json:"questions"`
	}
	if err := json.NewDecoder(r).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	questions := make([]entities.Question, 0, len(wrapper.Questions))
	for _, rec := range wrapper.Questions {
		q, err := rec.toEntity()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// LoadQuestionBank reads and validates a questions JSON file.
func LoadQuestionBank(path string) (*QuestionBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	questions, err := DecodeQuestions(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return NewQuestionBank(questions)
}

// QuestionRow is the flat, column-per-field form of a question used by the SQL stores.
// CorrectIndex is set for choice kinds and CorrectText for fill-blank.
type QuestionRow struct {
	ID           int
	Category     string
	Kind         string
	Difficulty   string
	Prompt       string
	Options      []string
	CorrectIndex *int
	CorrectText  *string
	Explanation  string
}

// NewQuestionRow flattens q for storage.
func NewQuestionRow(q entities.Question) QuestionRow {
	row := QuestionRow{
		ID:          q.ID,
		Category:    string(q.Category),
		Kind:        string(q.Kind),
		Difficulty:  string(q.Difficulty),
		Prompt:      q.Prompt,
		Options:     append([]string{}, q.Options...),
		Explanation: q.Explanation.String(),
	}

	if q.Kind == entities.KindFillBlank {
		text := q.CorrectText
		row.CorrectText = &text
	} else {
		idx := q.CorrectIndex
		row.CorrectIndex = &idx
	}

	return row
}

// ToEntity builds and validates the question stored in the row.
func (r QuestionRow) ToEntity() (entities.Question, error) {
	kind := entities.QuestionKind(r.Kind)
	category := entities.Category(r.Category)
	difficulty := entities.Difficulty(r.Difficulty)
	explanation := entities.ParseExplanation(r.Explanation)

	switch kind {
	case entities.KindMultipleChoice, entities.KindBoolean:
		if r.CorrectIndex == nil {
			return entities.Question{}, fmt.Errorf("%w: question %d: missing correct index",
				entities.ErrInvalidQuestion, r.ID)
		}
		if kind == entities.KindBoolean {
			if len(r.Options) != 2 {
				return entities.Question{}, fmt.Errorf("%w: question %d: boolean question needs 2 options, got %d",
					entities.ErrInvalidQuestion, r.ID, len(r.Options))
			}
			return entities.NewBooleanQuestion(r.ID, category, difficulty, r.Prompt,
				[2]string{r.Options[0], r.Options[1]}, *r.CorrectIndex, explanation)
		}
		return entities.NewChoiceQuestion(r.ID, category, difficulty, r.Prompt, r.Options, *r.CorrectIndex, explanation)

	case entities.KindFillBlank:
		if r.CorrectText == nil {
			return entities.Question{}, fmt.Errorf("%w: question %d: missing correct text",
				entities.ErrInvalidQuestion, r.ID)
		}
		return entities.NewFillBlankQuestion(r.ID, category, difficulty, r.Prompt, *r.CorrectText, explanation)

	default:
		return entities.Question{}, fmt.Errorf("%w: question %d: unknown kind %q",
			entities.ErrInvalidQuestion, r.ID, r.Kind)
	}
}
