// Package app wires the corpus sources selected by configuration.
package app

import (
	"context"
	"fmt"

	"github.com/aliskhannn/conditionals-bot/assets"
	"github.com/aliskhannn/conditionals-bot/internal/config"
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/conditionals-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/conditionals-bot/internal/infra/sqlite"
	"github.com/aliskhannn/conditionals-bot/internal/repository"
)

// Corpus is the validated, read-only content the quiz engine runs on.
type Corpus struct {
	Questions *repository.QuestionBank
	Lessons   *repository.LessonRepository
}

// LoadCorpus reads lessons and questions from the source named in cfg.Bank.Source.
// Database sources are read once; the engine never touches the database afterwards.
func LoadCorpus(ctx context.Context, cfg *config.Config) (*Corpus, error) {
	var (
		questions []entities.Question
		lessons   []entities.Lesson
		err       error
	)

	switch cfg.Bank.Source {
	case config.SourceEmbedded:
		lessons, questions, err = LoadEmbedded()
	case config.SourceFile:
		lessons, questions, err = loadFiles(cfg.Bank.LessonsPath, cfg.Bank.QuestionsPath)
	case config.SourcePostgres:
		lessons, questions, err = loadPostgres(ctx, cfg)
	case config.SourceSQLite:
		lessons, questions, err = loadSQLite(ctx, cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBankSource, cfg.Bank.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s corpus: %w", cfg.Bank.Source, err)
	}

	return NewCorpus(lessons, questions)
}

// NewCorpus validates and indexes lessons and questions.
func NewCorpus(lessons []entities.Lesson, questions []entities.Question) (*Corpus, error) {
	bank, err := repository.NewQuestionBank(questions)
	if err != nil {
		return nil, err
	}

	lessonRepo, err := repository.NewLessonRepository(lessons)
	if err != nil {
		return nil, err
	}

	return &Corpus{Questions: bank, Lessons: lessonRepo}, nil
}

// LoadEmbedded decodes the corpus compiled into the binary.
func LoadEmbedded() ([]entities.Lesson, []entities.Question, error) {
	lf, err := assets.FS.Open(assets.LessonsPath)
	if err != nil {
		return nil, nil, err
	}
	defer lf.Close()

	lessons, err := repository.DecodeLessons(lf)
	if err != nil {
		return nil, nil, err
	}

	qf, err := assets.FS.Open(assets.QuestionsPath)
	if err != nil {
		return nil, nil, err
	}
	defer qf.Close()

	questions, err := repository.DecodeQuestions(qf)
	if err != nil {
		return nil, nil, err
	}

	return lessons, questions, nil
}

func loadFiles(lessonsPath, questionsPath string) ([]entities.Lesson, []entities.Question, error) {
	lessonRepo, err := repository.LoadLessonRepository(lessonsPath)
	if err != nil {
		return nil, nil, err
	}

	bank, err := repository.LoadQuestionBank(questionsPath)
	if err != nil {
		return nil, nil, err
	}

	return lessonRepo.GetAll(), bank.Questions(), nil
}

func loadPostgres(ctx context.Context, cfg *config.Config) ([]entities.Lesson, []entities.Question, error) {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, err
	}
	defer pool.Close()

	lessons, err := pgrepo.NewLessonRepository(pool).List(ctx)
	if err != nil {
		return nil, nil, err
	}

	questions, err := pgrepo.NewQuestionRepository(pool).List(ctx)
	if err != nil {
		return nil, nil, err
	}

	return lessons, questions, nil
}

func loadSQLite(ctx context.Context, path string) ([]entities.Lesson, []entities.Question, error) {
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	lessons, err := store.Lessons(ctx)
	if err != nil {
		return nil, nil, err
	}

	questions, err := store.Questions(ctx)
	if err != nil {
		return nil, nil, err
	}

	return lessons, questions, nil
}
