package telegram

import (
	"context"

	"go.uber.org/zap"
)

// commandFunc handles one message-driven action for a chat.
type commandFunc func(ctx context.Context, chatID int64) error

// run executes fn for the named command. Quiz state errors become a short notice;
// anything else, a panic included, is logged and answered with a generic error.
func (h *Handler) run(ctx context.Context, command string, chatID int64, fn commandFunc) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("command panicked",
				zap.String("command", command),
				zap.Int64("chat_id", chatID),
				zap.Any("panic", r),
			)
			h.sendError(chatID, msgInternalError)
		}
	}()

	err := fn(ctx, chatID)
	if err == nil {
		return
	}

	notice, err := quizNotice(err)
	if err != nil {
		h.logger.Error("command failed",
			zap.String("command", command),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	if notice != "" {
		h.sendError(chatID, notice)
	}
}
