package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/app"
	"github.com/aliskhannn/conditionals-bot/internal/config"
	"github.com/aliskhannn/conditionals-bot/internal/delivery/telegram"
	"github.com/aliskhannn/conditionals-bot/internal/logger"
	"github.com/aliskhannn/conditionals-bot/internal/metrics"
	"github.com/aliskhannn/conditionals-bot/internal/service"
	"github.com/aliskhannn/conditionals-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.TelegramAPIToken == "" {
		lg.Fatal("TELEGRAM_API_TOKEN is not set", zap.Error(config.ErrMissingEnvironmentVariables))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	corpus, err := app.LoadCorpus(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to load corpus", zap.Error(err))
	}
	lg.Info("corpus loaded",
		zap.String("source", cfg.Bank.Source),
		zap.Int("questions", corpus.Questions.Len()),
		zap.Any("by_category", corpus.Questions.CountByCategory()),
		zap.Int("lessons", len(corpus.Lessons.GetAll())),
	)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = !cfg.IsProduction()
	lg.Info("authorized", zap.String("username", bot.Self.UserName))

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	sessions := storage.NewQuizStorage[int64]()
	go func() {
		err := sessions.RunJanitor(ctx, cfg.Quiz.SweepSchedule, cfg.Quiz.SessionTTL, func(removed int) {
			lg.Info("idle sessions removed", zap.Int("count", removed))
		})
		if err != nil {
			lg.Error("session janitor stopped", zap.Error(err))
		}
	}()

	selector := service.NewQuestionSelector(corpus.Questions, service.NewShuffler())
	quizService := service.NewQuizService[int64](selector, sessions, metrics.New())
	lessonService := service.NewLessonService(corpus.Lessons)

	handler := telegram.NewHandler(
		bot,
		lg,
		lessonService,
		quizService,
		service.NewNearMissDetector(),
		app.QuizDefaults(cfg),
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
