// Package sqlite keeps the lesson and question corpus in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS lessons (
    category TEXT PRIMARY KEY,
    sort_order INTEGER NOT NULL,
    content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY,
    category TEXT NOT NULL,
    kind TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    prompt TEXT NOT NULL,
    options TEXT NOT NULL DEFAULT '[]',
    correct_index INTEGER,
    correct_text TEXT,
    explanation TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_questions_category ON questions (category);
`

// Store reads and writes the corpus tables.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Questions returns every stored question ordered by id.
func (s *Store) Questions(ctx context.Context) ([]entities.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, kind, difficulty, prompt, options,
		       correct_index, correct_text, explanation
		FROM questions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []entities.Question
	for rows.Next() {
		var (
			row          repository.QuestionRow
			optionsJSON  string
			correctIndex sql.NullInt64
			correctText  sql.NullString
		)
		if err := rows.Scan(
			&row.ID,
			&row.Category,
			&row.Kind,
			&row.Difficulty,
			&row.Prompt,
			&optionsJSON,
			&correctIndex,
			&correctText,
			&row.Explanation,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		if err := json.Unmarshal([]byte(optionsJSON), &row.Options); err != nil {
			return nil, fmt.Errorf("decode options of question %d: %w", row.ID, err)
		}
		if correctIndex.Valid {
			idx := int(correctIndex.Int64)
			row.CorrectIndex = &idx
		}
		if correctText.Valid {
			row.CorrectText = &correctText.String
		}

		q, err := row.ToEntity()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// Lessons returns every stored lesson in display order.
func (s *Store) Lessons(ctx context.Context) ([]entities.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT content FROM lessons ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []entities.Lesson
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}

		var lesson entities.Lesson
		if err := json.Unmarshal([]byte(content), &lesson); err != nil {
			return nil, fmt.Errorf("decode lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

// Seed upserts lessons and questions in one transaction.
func (s *Store) Seed(ctx context.Context, lessons []entities.Lesson, questions []entities.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, lesson := range lessons {
		content, err := json.Marshal(lesson)
		if err != nil {
			return fmt.Errorf("encode lesson %q: %w", lesson.Category, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO lessons (category, sort_order, content) VALUES (?, ?, ?)
			ON CONFLICT (category) DO UPDATE SET
				sort_order = excluded.sort_order,
				content = excluded.content`,
			string(lesson.Category), lesson.Order, string(content),
		); err != nil {
			return fmt.Errorf("upsert lesson %q: %w", lesson.Category, err)
		}
	}

	for _, q := range questions {
		row := repository.NewQuestionRow(q)
		options, err := json.Marshal(row.Options)
		if err != nil {
			return fmt.Errorf("encode options of question %d: %w", q.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO questions (
				id, category, kind, difficulty, prompt, options,
				correct_index, correct_text, explanation
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				category = excluded.category,
				kind = excluded.kind,
				difficulty = excluded.difficulty,
				prompt = excluded.prompt,
				options = excluded.options,
				correct_index = excluded.correct_index,
				correct_text = excluded.correct_text,
				explanation = excluded.explanation`,
			row.ID, row.Category, row.Kind, row.Difficulty, row.Prompt, string(options),
			nullInt(row.CorrectIndex), nullString(row.CorrectText), row.Explanation,
		); err != nil {
			return fmt.Errorf("upsert question %d: %w", q.ID, err)
		}
	}

	return tx.Commit()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
