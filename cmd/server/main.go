package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/app"
	"github.com/aliskhannn/conditionals-bot/internal/config"
	"github.com/aliskhannn/conditionals-bot/internal/delivery/rest"
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
	)

	sessions := storage.NewQuizStorage[string]()
	go func() {
		err := sessions.RunJanitor(ctx, cfg.Quiz.SweepSchedule, cfg.Quiz.SessionTTL, func(removed int) {
			lg.Info("idle sessions removed", zap.Int("count", removed))
		})
		if err != nil {
			lg.Error("session janitor stopped", zap.Error(err))
		}
	}()

	m := metrics.New()
	selector := service.NewQuestionSelector(corpus.Questions, service.NewShuffler())
	quizService := service.NewQuizService[string](selector, sessions, m)

	handler := rest.NewHandler(
		service.NewLessonService(corpus.Lessons),
		quizService,
		service.NewNearMissDetector(),
		lg,
		app.QuizDefaults(cfg),
	)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           rest.NewRouter(handler, m, lg, cfg.HTTP.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}
