package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/infra/postgres"
)

// LessonRepository stores lessons as JSONB documents keyed by category.
type LessonRepository struct {
	db postgres.DBTX
}

// NewLessonRepository creates a new LessonRepository.
func NewLessonRepository(db postgres.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

// List returns every stored lesson in display order.
func (r *LessonRepository) List(ctx context.Context) ([]entities.Lesson, error) {
	query := `
		SELECT content
		FROM lessons
		ORDER BY sort_order
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []entities.Lesson
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}

		var lesson entities.Lesson
		if err := json.Unmarshal(content, &lesson); err != nil {
			return nil, fmt.Errorf("decode lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

// Upsert creates or replaces the lesson of a category.
func (r *LessonRepository) Upsert(ctx context.Context, lesson entities.Lesson) error {
	content, err := json.Marshal(lesson)
	if err != nil {
		return fmt.Errorf("encode lesson %q: %w", lesson.Category, err)
	}

	query := `
		INSERT INTO lessons (category, sort_order, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (category) DO UPDATE SET
			sort_order = EXCLUDED.sort_order,
			content = EXCLUDED.content
	`

	if _, err := r.db.Exec(ctx, query, string(lesson.Category), lesson.Order, content); err != nil {
		return fmt.Errorf("upsert lesson %q: %w", lesson.Category, err)
	}

	return nil
}
