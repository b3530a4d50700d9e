package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// buildLessonListKeyboard builds one button per lesson plus a quiz entry.
func buildLessonListKeyboard(lessons []entities.Lesson) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(lessons)+1)
	for _, l := range lessons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(categoryTitle(l.Category), buildLessonCallback(l.Category)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎯 Start a quiz", buildSetupCategoriesCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLessonKeyboard builds keyboard for a lesson page.
func buildLessonKeyboard(l entities.Lesson, next *entities.Lesson) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Practice "+categoryTitle(l.Category), buildSetupDifficultyCallback(l.Category)),
		),
	}
	if next != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next: "+categoryTitle(next.Category)+" ▶️", buildLessonCallback(next.Category)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« All lessons", buildLessonsCallback()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCategoryKeyboard builds the first setup step.
func buildCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(entities.Categories); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(string(entities.Categories[i]), buildSetupDifficultyCallback(entities.Categories[i])),
		}
		if i+1 < len(entities.Categories) {
			c := entities.Categories[i+1]
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(string(c), buildSetupDifficultyCallback(c)))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildDifficultyKeyboard builds the second setup step with a quick start on the defaults.
func buildDifficultyKeyboard(c entities.Category, defaults entities.SessionConfig) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, f := range entities.DifficultyFilters {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(string(f), buildSetupCountCallback(c, f)))
	}

	quick := defaults
	quick.Category = c

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("⚡ Quick start (%s, %d)", quick.Difficulty, quick.Count),
				buildQuizStartCallback(quick),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", buildSetupCategoriesCallback()),
		),
	)
}

// buildCountKeyboard builds the last setup step.
func buildCountKeyboard(c entities.Category, f entities.DifficultyFilter) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, n := range entities.AllowedCounts {
		cfg := entities.SessionConfig{Category: c, Difficulty: f, Count: n}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(n), buildQuizStartCallback(cfg)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back", buildSetupDifficultyCallback(c)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResumeKeyboard offers to continue the running quiz or set up a new one.
func buildResumeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Continue", buildQuizCallback(quizCurrent)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", buildSetupCategoriesCallback()),
		),
	)
}

// buildEmptyKeyboard offers a way out of an empty selection.
func buildEmptyKeyboard(c entities.Category) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Change settings", buildSetupDifficultyCallback(c)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Lessons", buildLessonsCallback()),
		),
	)
}

// buildQuestionKeyboard builds keyboard for the current question.
// Unanswered choice questions show their options; answered ones show navigation.
func buildQuestionKeyboard(v service.View) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if !v.Answered && v.Question.Kind.IsChoice() {
		for i, option := range v.Question.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(option, buildQuizAnswerCallback(v.Position, i)),
			))
		}
	}

	var nav []tgbotapi.InlineKeyboardButton
	if v.Position > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildQuizCallback(quizPrev)))
	}
	if v.Answered {
		if v.IsLast {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("🏁 Finish", buildQuizCallback(quizFinish)))
		} else {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildQuizCallback(quizNext)))
		}
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Exit", buildQuizCallback(quizExit)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard builds keyboard for quiz results screen.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Review answers", buildQuizReviewCallback(0)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizCallback(quizNew)),
			tgbotapi.NewInlineKeyboardButtonData("📚 Lessons", buildLessonsCallback()),
		),
	)
}

// buildReviewKeyboard builds pagination keyboard for the review.
func buildReviewKeyboard(page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", buildQuizReviewCallback(page-1)))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", buildQuizReviewCallback(page+1)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back to results", buildQuizCallback(quizResult)),
		tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizCallback(quizNew)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
