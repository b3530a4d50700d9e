package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/conditionals-bot/internal/app"
	"github.com/aliskhannn/conditionals-bot/internal/config"
	"github.com/aliskhannn/conditionals-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/conditionals-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/conditionals-bot/internal/infra/sqlite"
	"github.com/aliskhannn/conditionals-bot/internal/logger"
)

func main() {
	target := flag.String("target", "", "database to seed: postgres or sqlite (defaults to bank.source)")
	migration := flag.String("migration", "migrations/001_init.sql", "schema applied before seeding postgres")
	flag.Parse()

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

	lessons, questions, err := app.LoadEmbedded()
	if err != nil {
		lg.Fatal("failed to decode embedded corpus", zap.Error(err))
	}
	// Validate before touching the database.
	if _, err := app.NewCorpus(lessons, questions); err != nil {
		lg.Fatal("embedded corpus is invalid", zap.Error(err))
	}

	dest := *target
	if dest == "" {
		dest = cfg.Bank.Source
	}

	switch dest {
	case config.SourcePostgres:
		err = seedPostgres(ctx, cfg, *migration, func(ctx context.Context, db postgres.DBTX) error {
			lessonRepo := pgrepo.NewLessonRepository(db)
			for _, l := range lessons {
				if err := lessonRepo.Upsert(ctx, l); err != nil {
					return err
				}
			}

			questionRepo := pgrepo.NewQuestionRepository(db)
			for _, q := range questions {
				if err := questionRepo.Upsert(ctx, q); err != nil {
					return err
				}
			}
			return nil
		})

	case config.SourceSQLite:
		var store *sqlite.Store
		store, err = sqlite.Open(cfg.SQLite.Path)
		if err == nil {
			err = store.Seed(ctx, lessons, questions)
			_ = store.Close()
		}

	default:
		lg.Fatal("nothing to seed", zap.String("target", dest))
	}
	if err != nil {
		lg.Fatal("seed failed", zap.String("target", dest), zap.Error(err))
	}

	lg.Info("corpus seeded",
		zap.String("target", dest),
		zap.Int("lessons", len(lessons)),
		zap.Int("questions", len(questions)),
	)
}

func seedPostgres(ctx context.Context, cfg *config.Config, migration string, fn func(ctx context.Context, db postgres.DBTX) error) error {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	schema, err := os.ReadFile(migration)
	if err != nil {
		return err
	}
	tr := postgres.NewTransactor(pool)
	if err := tr.Migrate(ctx, string(schema)); err != nil {
		return err
	}

	return tr.WithinTx(ctx, fn)
}
