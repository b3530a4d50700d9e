package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// handleStart greets the user and shows the lesson menu.
func (h *Handler) handleStart() commandFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, msgWelcome())
		msg.ReplyMarkup = buildLessonListKeyboard(h.lessonService.GetAll())
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() commandFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, msgHelp()))
	}
}

// handleLearn shows the lesson menu, or a single lesson when a category is given.
func (h *Handler) handleLearn(args string) commandFunc {
	return func(ctx context.Context, chatID int64) error {
		if args == "" {
			return h.send(h.lessonsScreen().message(chatID))
		}

		category, ok := parseCategoryArg(args)
		if !ok {
			return h.send(h.lessonsScreen().message(chatID))
		}

		scr, notice := h.lessonScreen(category)
		if notice != "" {
			return h.send(newMessage(chatID, md(notice)))
		}
		return h.send(scr.message(chatID))
	}
}

// handleQuiz opens the setup flow, skipping the category step when one is given.
func (h *Handler) handleQuiz(args string) commandFunc {
	return func(ctx context.Context, chatID int64) error {
		if view, err := h.quizService.View(chatID); err == nil && view.Phase == service.PhaseActive {
			return h.send(newScreen(formatResumePrompt(view), buildResumeKeyboard()).message(chatID))
		}

		if args == "" {
			return h.send(newScreen(formatSetupCategory(), buildCategoryKeyboard()).message(chatID))
		}

		category, ok := parseCategoryArg(args)
		if !ok {
			return h.send(newMessage(chatID, md(msgInvalidQuizArgs)))
		}

		scr := newScreen(formatSetupDifficulty(category), buildDifficultyKeyboard(category, h.defaults))
		return h.send(scr.message(chatID))
	}
}

func (h *Handler) handleExit() commandFunc {
	return func(ctx context.Context, chatID int64) error {
		h.quizService.Exit(chatID)
		h.logger.Info("quiz exited", zap.Int64("chat_id", chatID))
		return h.send(newMessage(chatID, md(msgExited)))
	}
}

// handleText treats free text as the answer to a pending fill-blank question.
func (h *Handler) handleText(text string) commandFunc {
	return func(ctx context.Context, chatID int64) error {
		view, err := h.quizService.View(chatID)
		if errors.Is(err, service.ErrSessionNotFound) || (err == nil && view.Phase != service.PhaseActive) {
			return h.send(newMessage(chatID, md(msgNoActiveQuiz)))
		}
		if err != nil {
			return err
		}

		if view.Question.Kind != entities.KindFillBlank {
			return h.send(newMessage(chatID, md(msgChooseOption)))
		}

		view, err = h.quizService.Answer(chatID, entities.TextAnswer(text))
		if err != nil {
			return err
		}

		return h.send(h.questionScreen(view).message(chatID))
	}
}

func (h *Handler) lessonsScreen() screen {
	lessons := h.lessonService.GetAll()
	return newScreen(formatLessonList(lessons), buildLessonListKeyboard(lessons))
}

// lessonScreen renders a lesson, or returns a notice when it does not exist.
func (h *Handler) lessonScreen(category entities.Category) (screen, string) {
	lesson, err := h.lessonService.GetByCategory(category)
	if err != nil {
		return screen{}, msgLessonUnavailable
	}

	var next *entities.Lesson
	if l, ok := h.lessonService.Next(category); ok {
		next = &l
	}

	return newScreen(formatLesson(lesson), buildLessonKeyboard(lesson, next)), ""
}

func (h *Handler) questionScreen(view service.View) screen {
	nearMiss := h.nearMiss != nil && view.Answered && h.nearMiss.IsNearMiss(view.Question, view.Answer)
	return newScreen(formatQuestion(view, nearMiss), buildQuestionKeyboard(view))
}

func resultScreen(summary service.Summary) screen {
	return newScreen(formatResult(summary), buildResultKeyboard())
}
