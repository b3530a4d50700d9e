package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/infra/postgres"
	corpus "github.com/aliskhannn/conditionals-bot/internal/repository"
)

// QuestionRepository provides access to the question corpus in the database.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// List returns every stored question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]entities.Question, error) {
	query := `
		SELECT id, category, kind, difficulty, prompt, options,
		       correct_index, correct_text, explanation
		FROM questions
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var row corpus.QuestionRow
		if err := rows.Scan(
			&row.ID,
			&row.Category,
			&row.Kind,
			&row.Difficulty,
			&row.Prompt,
			&row.Options,
			&row.CorrectIndex,
			&row.CorrectText,
			&row.Explanation,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		q, err := row.ToEntity()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// Upsert creates or replaces a question by id.
func (r *QuestionRepository) Upsert(ctx context.Context, q entities.Question) error {
	query := `
		INSERT INTO questions (
			id, category, kind, difficulty, prompt, options,
			correct_index, correct_text, explanation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			kind = EXCLUDED.kind,
			difficulty = EXCLUDED.difficulty,
			prompt = EXCLUDED.prompt,
			options = EXCLUDED.options,
			correct_index = EXCLUDED.correct_index,
			correct_text = EXCLUDED.correct_text,
			explanation = EXCLUDED.explanation
	`

	row := corpus.NewQuestionRow(q)
	_, err := r.db.Exec(
		ctx,
		query,
		row.ID,
		row.Category,
		row.Kind,
		row.Difficulty,
		row.Prompt,
		row.Options,
		row.CorrectIndex,
		row.CorrectText,
		row.Explanation,
	)
	if err != nil {
		return fmt.Errorf("upsert question %d: %w", q.ID, err)
	}

	return nil
}
