package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// BotAPI is the subset of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type LessonService interface {
	GetAll() []entities.Lesson
	GetByCategory(category entities.Category) (entities.Lesson, error)
	Next(category entities.Category) (entities.Lesson, bool)
}

// QuizService runs one session per chat.
type QuizService interface {
	Start(chatID int64, cfg entities.SessionConfig) (service.View, error)
	View(chatID int64) (service.View, error)
	Answer(chatID int64, a entities.Answer) (service.View, error)
	Next(chatID int64) (service.View, error)
	Previous(chatID int64) (service.View, error)
	Finish(chatID int64) (service.Summary, error)
	Summary(chatID int64) (service.Summary, error)
	Review(chatID int64) ([]service.ReviewItem, error)
	CloseReview(chatID int64) (service.Summary, error)
	Reset(chatID int64) error
	Exit(chatID int64)
}

type NearMissDetector interface {
	IsNearMiss(q entities.Question, a entities.Answer) bool
}

var (
	_ BotAPI      = (*tgbotapi.BotAPI)(nil)
	_ QuizService = (*service.QuizService[int64])(nil)
)
