package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonRepository provides read-only access to lesson content ordered for display.
type LessonRepository struct {
	lessons    []entities.Lesson
	byCategory map[entities.Category]int
}

// NewLessonRepository sorts lessons by order and indexes them by category.
func NewLessonRepository(lessons []entities.Lesson) (*LessonRepository, error) {
	sorted := make([]entities.Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	byCategory := make(map[entities.Category]int, len(sorted))
	for i, l := range sorted {
		if !l.Category.IsValid() {
			return nil, fmt.Errorf("lesson %d: unknown category %q", l.Order, l.Category)
		}
		if _, ok := byCategory[l.Category]; ok {
			return nil, fmt.Errorf("duplicate lesson for category %q", l.Category)
		}
		byCategory[l.Category] = i
	}

	return &LessonRepository{
		lessons:    sorted,
		byCategory: byCategory,
	}, nil
}

// GetAll returns every lesson in display order.
func (r *LessonRepository) GetAll() []entities.Lesson {
	out := make([]entities.Lesson, len(r.lessons))
	copy(out, r.lessons)
	return out
}

// GetByCategory returns the lesson for a category.
func (r *LessonRepository) GetByCategory(category entities.Category) (entities.Lesson, error) {
	i, ok := r.byCategory[category]
	if !ok {
		return entities.Lesson{}, ErrLessonNotFound
	}
	return r.lessons[i], nil
}

// DecodeLessons reads a {"lessons": [...]} document.
func DecodeLessons(r io.Reader) ([]entities.Lesson, error) {
	var wrapper struct {
		Lessons []entities.Lesson `json:"lessons"`
	}
	if err := json.NewDecoder(r).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons JSON: %w", err)
	}
	return wrapper.Lessons, nil
}

// LoadLessonRepository reads a lessons JSON file.
func LoadLessonRepository(path string) (*LessonRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lessons, err := DecodeLessons(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return NewLessonRepository(lessons)
}
