package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionLesson  = "lesson"
	actionLessons = "lessons"
	actionSetup   = "setup"
	actionQuiz    = "quiz"
	actionNoop    = "noop"
)

// Setup sub-actions.
const (
	setupCategory   = "cat"
	setupDifficulty = "diff"
	setupCount      = "count"
)

// Quiz sub-actions.
const (
	quizStart   = "start"
	quizAnswer  = "ans"
	quizNext    = "next"
	quizPrev    = "prev"
	quizFinish  = "finish"
	quizReview  = "review"
	quizResult  = "result"
	quizNew     = "new"
	quizExit    = "exit"
	quizCurrent = "current"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "" when it is missing.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Categories travel as their index in entities.Categories so callbacks stay under 64 bytes.
func categoryIndex(c entities.Category) int {
	for i, known := range entities.Categories {
		if known == c {
			return i
		}
	}
	return -1
}

func categoryAt(i int) (entities.Category, bool) {
	if i < 0 || i >= len(entities.Categories) {
		return "", false
	}
	return entities.Categories[i], true
}

func buildLessonCallback(c entities.Category) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{strconv.Itoa(categoryIndex(c))},
	}.encode()
}

func buildLessonsCallback() string {
	return actionLessons
}

func buildSetupCategoriesCallback() string {
	return callbackData{Action: actionSetup, Params: []string{setupCategory}}.encode()
}

func buildSetupDifficultyCallback(c entities.Category) string {
	return callbackData{
		Action: actionSetup,
		Params: []string{setupDifficulty, strconv.Itoa(categoryIndex(c))},
	}.encode()
}

func buildSetupCountCallback(c entities.Category, f entities.DifficultyFilter) string {
	return callbackData{
		Action: actionSetup,
		Params: []string{setupCount, strconv.Itoa(categoryIndex(c)), string(f)},
	}.encode()
}

func buildQuizStartCallback(cfg entities.SessionConfig) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			quizStart,
			strconv.Itoa(categoryIndex(cfg.Category)),
			string(cfg.Difficulty),
			strconv.Itoa(cfg.Count),
		},
	}.encode()
}

// buildQuizAnswerCallback carries the position so taps on a stale keyboard can be ignored.
func buildQuizAnswerCallback(position, optionIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(position), strconv.Itoa(optionIndex)},
	}.encode()
}

func buildQuizCallback(subAction string) string {
	return callbackData{Action: actionQuiz, Params: []string{subAction}}.encode()
}

func buildQuizReviewCallback(page int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizReview, strconv.Itoa(page)},
	}.encode()
}

// parseSessionConfig decodes the category, filter and count params starting at offset.
func parseSessionConfig(cd callbackData, offset int) (entities.SessionConfig, bool) {
	idx, ok := cd.intParam(offset)
	if !ok {
		return entities.SessionConfig{}, false
	}
	category, ok := categoryAt(idx)
	if !ok {
		return entities.SessionConfig{}, false
	}

	filter, err := entities.ParseDifficultyFilter(cd.param(offset + 1))
	if err != nil {
		return entities.SessionConfig{}, false
	}

	count, ok := cd.intParam(offset + 2)
	if !ok || count <= 0 {
		return entities.SessionConfig{}, false
	}

	return entities.SessionConfig{Category: category, Difficulty: filter, Count: count}, true
}
