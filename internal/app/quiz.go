package app

import (
	"github.com/aliskhannn/conditionals-bot/internal/config"
	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// QuizDefaults turns the quiz section of the config into setup defaults.
// An unparsable difficulty falls back to All.
func QuizDefaults(cfg *config.Config) entities.SessionConfig {
	defaults := entities.SessionConfig{
		Difficulty: entities.DefaultFilter,
		Count:      entities.DefaultQuestionCount,
	}

	if f, err := entities.ParseDifficultyFilter(cfg.Quiz.DefaultDifficulty); err == nil {
		defaults.Difficulty = f
	}
	if cfg.Quiz.DefaultCount > 0 {
		defaults.Count = cfg.Quiz.DefaultCount
	}

	return defaults
}
