package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	cd := decodeCallback(cb.Data)

	var (
		scr    screen
		notice string
		err    error
	)

	switch cd.Action {
	case actionLessons:
		scr = h.lessonsScreen()
	case actionLesson:
		scr, notice = h.handleLessonCallback(cd)
	case actionSetup:
		scr, notice = h.handleSetupCallback(cd)
	case actionQuiz:
		scr, notice, err = h.handleQuizCallback(chatID, cd)
	case actionNoop:
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		notice = msgInternalError
	}

	if scr.text != "" {
		edit := newEdit(chatID, cb.Message.MessageID, scr.text)
		edit.ReplyMarkup = scr.kb
		_ = h.send(edit)
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, notice)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleLessonCallback(cd callbackData) (screen, string) {
	idx, ok := cd.intParam(0)
	if !ok {
		return screen{}, msgLessonUnavailable
	}
	category, ok := categoryAt(idx)
	if !ok {
		return screen{}, msgLessonUnavailable
	}
	return h.lessonScreen(category)
}

func (h *Handler) handleSetupCallback(cd callbackData) (screen, string) {
	switch cd.param(0) {
	case setupCategory:
		return newScreen(formatSetupCategory(), buildCategoryKeyboard()), ""

	case setupDifficulty:
		idx, _ := cd.intParam(1)
		category, ok := categoryAt(idx)
		if !ok {
			return screen{}, msgInternalError
		}
		return newScreen(formatSetupDifficulty(category), buildDifficultyKeyboard(category, h.defaults)), ""

	case setupCount:
		idx, _ := cd.intParam(1)
		category, ok := categoryAt(idx)
		if !ok {
			return screen{}, msgInternalError
		}
		filter, err := entities.ParseDifficultyFilter(cd.param(2))
		if err != nil {
			return screen{}, msgInternalError
		}
		return newScreen(formatSetupCount(category, filter), buildCountKeyboard(category, filter)), ""

	default:
		h.logger.Warn("unknown setup callback", zap.String("data", cd.Raw))
		return screen{}, ""
	}
}

func (h *Handler) handleQuizCallback(chatID int64, cd callbackData) (screen, string, error) {
	switch cd.param(0) {
	case quizStart:
		return h.startQuiz(chatID, cd)
	case quizAnswer:
		return h.answerQuiz(chatID, cd)
	case quizNext:
		view, err := h.quizService.Next(chatID)
		if err != nil {
			return noticeOnly(err)
		}
		if view.Phase == service.PhaseFinished {
			summary, err := h.quizService.Summary(chatID)
			if err != nil {
				return noticeOnly(err)
			}
			h.logFinished(chatID, summary)
			return resultScreen(summary), "", nil
		}
		return h.questionScreen(view), "", nil

	case quizPrev:
		view, err := h.quizService.Previous(chatID)
		if err != nil {
			return noticeOnly(err)
		}
		return h.questionScreen(view), "", nil

	case quizCurrent:
		view, err := h.quizService.View(chatID)
		if err != nil {
			return noticeOnly(err)
		}
		if view.Phase != service.PhaseActive {
			return screen{}, msgQuizGone, nil
		}
		return h.questionScreen(view), "", nil

	case quizFinish:
		summary, err := h.quizService.Finish(chatID)
		if err != nil {
			return noticeOnly(err)
		}
		h.logFinished(chatID, summary)
		return resultScreen(summary), "", nil

	case quizReview:
		return h.reviewQuiz(chatID, cd)

	case quizResult:
		summary, err := h.quizService.CloseReview(chatID)
		if errors.Is(err, service.ErrNotReviewing) {
			view, verr := h.quizService.View(chatID)
			if verr != nil {
				return noticeOnly(verr)
			}
			if view.Phase != service.PhaseFinished {
				return screen{}, msgQuizGone, nil
			}
			summary, err = h.quizService.Summary(chatID)
		}
		if err != nil {
			return noticeOnly(err)
		}
		return resultScreen(summary), "", nil

	case quizNew:
		if err := h.quizService.Reset(chatID); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			if _, err := quizNotice(err); err != nil {
				return screen{}, "", err
			}
		}
		return newScreen(formatSetupCategory(), buildCategoryKeyboard()), "", nil

	case quizExit:
		h.quizService.Exit(chatID)
		return screen{text: md(msgExited)}, "", nil

	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", cd.Raw))
		return screen{}, "", nil
	}
}

func (h *Handler) startQuiz(chatID int64, cd callbackData) (screen, string, error) {
	cfg, ok := parseSessionConfig(cd, 1)
	if !ok {
		h.logger.Warn("invalid quiz start callback", zap.String("data", cd.Raw))
		return screen{}, msgInternalError, nil
	}

	view, err := h.quizService.Start(chatID, cfg)
	if errors.Is(err, service.ErrNoQuestionsAvailable) {
		return newScreen(formatEmpty(cfg), buildEmptyKeyboard(cfg.Category)), "", nil
	}
	if err != nil {
		return screen{}, "", err
	}

	h.logger.Info("quiz started",
		zap.Int64("chat_id", chatID),
		zap.String("category", string(cfg.Category)),
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int("requested", cfg.Count),
		zap.Int("selected", view.Total),
	)

	return h.questionScreen(view), "", nil
}

func (h *Handler) answerQuiz(chatID int64, cd callbackData) (screen, string, error) {
	position, ok1 := cd.intParam(1)
	option, ok2 := cd.intParam(2)
	if !ok1 || !ok2 {
		return screen{}, msgStaleButton, nil
	}

	current, err := h.quizService.View(chatID)
	if err != nil {
		return noticeOnly(err)
	}
	if current.Phase != service.PhaseActive || current.Position != position {
		return screen{}, msgStaleButton, nil
	}

	view, err := h.quizService.Answer(chatID, entities.ChoiceAnswer(option))
	if err != nil {
		return noticeOnly(err)
	}

	notice := "❌ Not quite"
	if view.IsCorrect {
		notice = "✅ Correct!"
	}
	return h.questionScreen(view), notice, nil
}

func (h *Handler) reviewQuiz(chatID int64, cd callbackData) (screen, string, error) {
	page, _ := cd.intParam(1)

	items, err := h.quizService.Review(chatID)
	if err != nil {
		return noticeOnly(err)
	}

	totalPages := reviewPageCount(len(items))
	if totalPages == 0 {
		return screen{}, msgQuizGone, nil
	}
	page = max(0, min(page, totalPages-1))

	return newScreen(formatReviewPage(items, page), buildReviewKeyboard(page, totalPages)), "", nil
}

func (h *Handler) logFinished(chatID int64, summary service.Summary) {
	h.logger.Info("quiz finished",
		zap.Int64("chat_id", chatID),
		zap.Int("score", summary.Score),
		zap.Int("total", summary.Total),
	)
}

// noticeOnly maps an expected session error to a notice without changing the message.
func noticeOnly(err error) (screen, string, error) {
	notice, err := quizNotice(err)
	return screen{}, notice, err
}
