package telegram

import (
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// screen is a rendered message body with its keyboard.
type screen struct {
	text string
	kb   *tgbotapi.InlineKeyboardMarkup
}

func newScreen(text string, kb tgbotapi.InlineKeyboardMarkup) screen {
	return screen{text: text, kb: &kb}
}

func (s screen) message(chatID int64) tgbotapi.MessageConfig {
	msg := newMessage(chatID, s.text)
	if s.kb != nil {
		msg.ReplyMarkup = *s.kb
	}
	return msg
}

// quizNotice turns expected session errors into a short callback notice.
// Unexpected errors are returned unchanged.
func quizNotice(err error) (string, error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNotActive),
		errors.Is(err, service.ErrNotFinished),
		errors.Is(err, service.ErrNotReviewing):
		return msgQuizGone, nil
	case errors.Is(err, service.ErrAlreadyAnswered):
		return msgAlreadyAnswered, nil
	case errors.Is(err, service.ErrInvalidAnswer):
		return msgStaleButton, nil
	case errors.Is(err, service.ErrEmptyAnswer):
		return msgEmptyAnswer, nil
	case errors.Is(err, service.ErrAnswerKind):
		return msgChooseOption, nil
	case errors.Is(err, service.ErrNoPrevious):
		return "", nil
	default:
		return "", err
	}
}

var categoryAliases = map[string]entities.Category{
	"0":       entities.CategoryZero,
	"zero":    entities.CategoryZero,
	"1":       entities.CategoryFirst,
	"first":   entities.CategoryFirst,
	"2":       entities.CategorySecond,
	"second":  entities.CategorySecond,
	"3":       entities.CategoryThird,
	"third":   entities.CategoryThird,
	"mixed1":  entities.CategoryMixed1,
	"mixed 1": entities.CategoryMixed1,
	"mixed2":  entities.CategoryMixed2,
	"mixed 2": entities.CategoryMixed2,
	"overall": entities.CategoryOverall,
	"all":     entities.CategoryOverall,
}

// parseCategoryArg resolves a command argument such as "second" or "mixed 1".
func parseCategoryArg(arg string) (entities.Category, bool) {
	arg = strings.ToLower(strings.Join(strings.Fields(arg), " "))
	arg = strings.TrimSuffix(arg, " conditional")

	if c, ok := categoryAliases[arg]; ok {
		return c, true
	}
	return entities.ParseCategory(arg)
}
