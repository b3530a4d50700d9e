package service

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// QuestionBank gives read-only access to the validated question corpus.
type QuestionBank interface {
	Questions() []entities.Question
}

// LessonRepository gives read-only access to lesson content.
type LessonRepository interface {
	GetAll() []entities.Lesson
	GetByCategory(category entities.Category) (entities.Lesson, error)
}

// SessionStorage keeps live sessions in memory, keyed by host-specific ids.
type SessionStorage[K comparable] interface {
	Store(key K, s *Session)
	Get(key K) (*Session, bool)
	Delete(key K)
}
