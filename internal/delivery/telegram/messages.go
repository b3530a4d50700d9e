// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/conditionals-bot/internal/domain/entities"
	"github.com/aliskhannn/conditionals-bot/internal/service"
)

// Plain-text messages, escaped on send.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgNoActiveQuiz      = "You have no quiz in progress. Use /quiz to start one."
	msgQuizGone          = "This quiz has ended. Use /quiz to start a new one."
	msgStaleButton       = "That question is no longer on screen."
	msgAlreadyAnswered   = "You have already answered this question."
	msgEmptyAnswer       = "Please type an answer."
	msgChooseOption      = "Please pick one of the options above."
	msgLessonUnavailable = "This lesson is not available."
	msgExited            = "Quiz closed. Use /quiz whenever you want to try again."
	msgInvalidQuizArgs   = "Usage: /quiz [category]. Example: /quiz first"
)

const reviewItemsPerPage = 5

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func msgWelcome() string {
	var sb strings.Builder
	sb.WriteString(bold("Conditionals Bot"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Learn the English conditionals step by step: zero, first, second, third and the two mixed forms."))
	sb.WriteString("\n\n")
	sb.WriteString(md("📖 /learn — study a conditional\n🎯 /quiz — test yourself\n❓ /help — how it works"))
	return sb.String()
}

func msgHelp() string {
	var sb strings.Builder
	sb.WriteString(bold("How it works"))
	sb.WriteString("\n\n")
	sb.WriteString(md("/learn shows the lessons. /learn second opens one directly."))
	sb.WriteString("\n")
	sb.WriteString(md("/quiz lets you pick a category, a difficulty and the number of questions."))
	sb.WriteString("\n")
	sb.WriteString(md("Choice questions are answered with the buttons. For fill-in-the-blank questions just send your answer as a message."))
	sb.WriteString("\n")
	sb.WriteString(md("You can go back to earlier questions, but each answer is final."))
	sb.WriteString("\n")
	sb.WriteString(md("/exit leaves the current quiz."))
	return sb.String()
}

func msgUnknownCommand() string {
	return md("Unknown command. Available commands:\n\n/learn — study a conditional\n/quiz — start a quiz\n/exit — leave the quiz\n/help — help")
}

// formatLessonList renders the lesson menu.
func formatLessonList(lessons []entities.Lesson) string {
	var sb strings.Builder
	sb.WriteString(bold("📖 Lessons"))
	sb.WriteString("\n\n")
	for _, l := range lessons {
		sb.WriteString(md(fmt.Sprintf("%d. %s — %s", l.Order, categoryTitle(l.Category), l.Vibe)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatLesson renders one lesson in full.
func formatLesson(l entities.Lesson) string {
	var sb strings.Builder

	sb.WriteString(bold(categoryTitle(l.Category)))
	sb.WriteString("\n")
	sb.WriteString(italic(l.Vibe))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Reality: "))
	sb.WriteString(md(l.RealityLevel))
	sb.WriteString("\n")
	sb.WriteString(bold("Time: "))
	sb.WriteString(md(l.Timeline))
	sb.WriteString("\n\n")
	sb.WriteString(md(l.Meaning))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Formula"))
	sb.WriteString("\n")
	sb.WriteString(md(l.Formula.IfPart + " → " + l.Formula.ResultPart))
	sb.WriteString("\n")

	if len(l.Examples) > 0 {
		sb.WriteString("\n")
		sb.WriteString(bold("Examples"))
		sb.WriteString("\n")
		for _, ex := range l.Examples {
			sb.WriteString(md("• "))
			sb.WriteString(italic(ex.Label))
			sb.WriteString(md(": " + ex.Text))
			sb.WriteString("\n")
		}
	}

	writeList(&sb, "💡 Pro tips", l.ProTips)
	writeList(&sb, "⚠️ Common mistakes", l.CommonMistakes)

	if len(l.Nuances) > 0 {
		sb.WriteString("\n")
		sb.WriteString(bold("🔍 Nuances"))
		sb.WriteString("\n")
		for _, n := range l.Nuances {
			sb.WriteString(md("• "))
			sb.WriteString(bold(n.Title))
			sb.WriteString(md(": " + n.Text))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(bold(title))
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString(md("• " + item))
		sb.WriteString("\n")
	}
}

func formatSetupCategory() string {
	return bold("🎯 New quiz") + "\n\n" + md("Choose a category:")
}

func formatSetupDifficulty(c entities.Category) string {
	return bold("🎯 "+categoryTitle(c)) + "\n\n" + md("Choose a difficulty:")
}

func formatSetupCount(c entities.Category, f entities.DifficultyFilter) string {
	return bold("🎯 "+categoryTitle(c)+" · "+string(f)) + "\n\n" + md("How many questions?")
}

func formatResumePrompt(v service.View) string {
	return md(fmt.Sprintf("You have a quiz in progress: question %d of %d, score %d.", v.Position+1, v.Total, v.Score))
}

func formatEmpty(cfg entities.SessionConfig) string {
	return md(fmt.Sprintf("No %s questions match the %s filter yet. Try another difficulty or category.",
		categoryTitle(cfg.Category), cfg.Difficulty))
}

// formatQuestion renders the current question and, once answered, the feedback.
func formatQuestion(v service.View, nearMiss bool) string {
	q := v.Question
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question %d/%d", v.Position+1, v.Total)))
	sb.WriteString(md(fmt.Sprintf(" · %s · %s", categoryTitle(q.Category), q.Difficulty)))
	sb.WriteString("\n\n")
	sb.WriteString(md(q.Prompt))
	sb.WriteString("\n")

	if !v.Answered {
		sb.WriteString("\n")
		if q.Kind == entities.KindFillBlank {
			sb.WriteString(italic("Type your answer and send it as a message."))
		} else {
			sb.WriteString(italic("Choose an answer:"))
		}
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(md("Your answer: " + q.AnswerText(v.Answer)))
	sb.WriteString("\n")
	if v.IsCorrect {
		sb.WriteString(bold("✅ Correct!"))
	} else {
		sb.WriteString(bold("❌ Not quite."))
		sb.WriteString(md(" Correct answer: " + q.CorrectAnswerText()))
		if nearMiss {
			sb.WriteString("\n")
			sb.WriteString(italic("So close! Check the spelling."))
		}
	}
	sb.WriteString("\n")

	writeExplanation(&sb, q.Explanation)
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Score: %d/%d", v.Score, v.Total)))

	return sb.String()
}

func writeExplanation(sb *strings.Builder, e entities.Explanation) {
	for _, part := range e {
		sb.WriteString("\n")
		if part.Label != "" {
			sb.WriteString(bold(part.Label + ": "))
		}
		sb.WriteString(md(part.Body))
	}
	if len(e) > 0 {
		sb.WriteString("\n")
	}
}

// formatResult renders the result screen.
func formatResult(s service.Summary) string {
	var sb strings.Builder
	sb.WriteString(bold("🏁 Quiz complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Score: %d / %d (%d%%)", s.Score, s.Total, s.Percent())))
	sb.WriteString("\n\n")
	sb.WriteString(md(resultComment(s.Percent())))
	return sb.String()
}

func resultComment(percent int) string {
	switch {
	case percent == 100:
		return "Perfect ✨ Every answer was right."
	case percent >= 80:
		return "Great work! Just a few slips."
	case percent >= 50:
		return "Good effort. The review will show what to revisit."
	default:
		return "Keep practicing. Go through the review and the lesson, then try again."
	}
}

// reviewPageCount returns the number of review pages for n items.
func reviewPageCount(n int) int {
	return (n + reviewItemsPerPage - 1) / reviewItemsPerPage
}

// formatReviewPage renders one page of the post-quiz review. page must be in range.
func formatReviewPage(items []service.ReviewItem, page int) string {
	from := page * reviewItemsPerPage
	to := min(from+reviewItemsPerPage, len(items))

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("📖 Review %d/%d", page+1, reviewPageCount(len(items)))))
	sb.WriteString("\n")

	for _, item := range items[from:to] {
		q := item.Question
		sb.WriteString("\n")

		mark := "❌"
		if item.IsCorrect {
			mark = "✅"
		}
		sb.WriteString(bold(fmt.Sprintf("%s %d. ", mark, item.Position+1)))
		sb.WriteString(md(q.Prompt))
		sb.WriteString("\n")

		answer := item.AnswerText()
		if answer == "" {
			answer = "(skipped)"
		}
		sb.WriteString(md("Your answer: " + answer))
		sb.WriteString("\n")
		if !item.IsCorrect {
			sb.WriteString(md("Correct answer: " + q.CorrectAnswerText()))
			sb.WriteString("\n")
		}
		writeExplanation(&sb, q.Explanation)
	}

	return sb.String()
}

// categoryTitle returns the display name of a category.
func categoryTitle(c entities.Category) string {
	switch c {
	case entities.CategoryMixed1, entities.CategoryMixed2, entities.CategoryOverall:
		return string(c)
	default:
		return string(c) + " Conditional"
	}
}
