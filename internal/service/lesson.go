package service

import (
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

type LessonService struct {
	repository LessonRepository
}

func NewLessonService(repository LessonRepository) *LessonService {
	return &LessonService{repository: repository}
}

func (s *LessonService) GetAll() []entities.Lesson {
	return s.repository.GetAll()
}

func (s *LessonService) GetByCategory(category entities.Category) (entities.Lesson, error) {
	return s.repository.GetByCategory(category)
}

// Next returns the lesson after category in display order, or false on the last lesson.
func (s *LessonService) Next(category entities.Category) (entities.Lesson, bool) {
	lessons := s.repository.GetAll()
	for i, l := range lessons {
		if l.Category == category && i < len(lessons)-1 {
			return lessons[i+1], true
		}
	}
	return entities.Lesson{}, false
}
