package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

type Handler struct {
	bot           BotAPI
	logger        *zap.Logger
	lessonService LessonService
	quizService   QuizService
	nearMiss      NearMissDetector
	defaults      entities.SessionConfig // difficulty and count used by "Quick start"
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	lessonService LessonService,
	quizService QuizService,
	nearMiss NearMissDetector,
	defaults entities.SessionConfig,
) *Handler {
	if !defaults.Difficulty.IsValid() {
		defaults.Difficulty = entities.DefaultFilter
	}
	if defaults.Count <= 0 {
		defaults.Count = entities.DefaultQuestionCount
	}

	return &Handler{
		bot:           bot,
		logger:        logger,
		lessonService: lessonService,
		quizService:   quizService,
		nearMiss:      nearMiss,
		defaults:      defaults,
	}
}

// Commands returns the command menu registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "learn", Description: "Study the conditionals"},
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "exit", Description: "Leave the current quiz"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.run(ctx, "start", chatID, h.handleStart())

		case "learn":
			h.run(ctx, "learn", chatID, h.handleLearn(update.Message.CommandArguments()))

		case "quiz":
			h.run(ctx, "quiz", chatID, h.handleQuiz(update.Message.CommandArguments()))

		case "exit":
			h.run(ctx, "exit", chatID, h.handleExit())

		case "help":
			h.run(ctx, "help", chatID, h.handleHelp())

		default:
			_ = h.send(newMessage(chatID, msgUnknownCommand()))
		}

		return
	}

	text := strings.TrimSpace(update.Message.Text)
	h.run(ctx, "text", chatID, h.handleText(text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newMessage(chatID, md(text)))
}
