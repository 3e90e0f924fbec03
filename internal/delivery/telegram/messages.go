// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
)

const (
	msgWelcome = "<b>Willkommen!</b> This bot drills German vocabulary, articles and grammar.\n\n" +
		"/quiz — multiple choice vocabulary\n" +
		"/cards — flashcards\n" +
		"/translate — type the German word\n" +
		"/articles — der, die or das\n" +
		"/grammar — grammar lessons\n" +
		"/history — your recent results\n\n" +
		"Add a category to narrow a drill, e.g. <code>/quiz food</code>."

	msgHelp = "Commands:\n\n" +
		"/quiz [category] — multiple choice vocabulary quiz\n" +
		"/cards [category] — flashcard recall\n" +
		"/translate [category] — free-text translation into German\n" +
		"/articles — pick the right article for a noun\n" +
		"/grammar — read grammar lessons\n" +
		"/history — recent session results"

	msgUnknownCommand   = "Unknown command. Try /help."
	msgNoQuestions      = "No questions available for that selection. Try another category or /help."
	msgNoActiveSession  = "No active drill. Start one with /quiz, /cards, /translate or /articles."
	msgAlreadyAnswered  = "Already answered"
	msgQuestionExpired  = "That question has passed"
	msgSessionDone      = "Session closed. Start a new one whenever you like."
	msgNoGrammarLessons = "No grammar lessons are loaded."
	msgHistoryEmpty     = "No completed sessions yet. Finish a drill first!"
	msgHistoryError     = "Could not load your history. Try again later."
	msgInternalError    = "Something went wrong. Try again later."
)

// formatQuestion renders the prompt of the current question with its
// position in the batch.
func formatQuestion(q entities.Question, num, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Question %d/%d</b>\n\n%s", num, total, escape(q.Prompt))

	switch q.Mode {
	case entities.ModeFreeText:
		b.WriteString("\n\n<i>Type your answer.</i>")
	case entities.ModeFlashcard:
		b.WriteString("\n\n<i>Think of the answer, then reveal it.</i>")
	}

	return b.String()
}

// formatReveal renders a flashcard with its answer shown.
func formatReveal(q entities.Question, num, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Question %d/%d</b>\n\n%s\n\n<b>%s</b>",
		num, total, escape(q.Prompt), escape(q.Answer))
	if q.HelperText != "" {
		fmt.Fprintf(&b, "\n<i>%s</i>", escape(q.HelperText))
	}
	b.WriteString("\n\nDid you know it?")
	return b.String()
}

// formatFeedback renders the post-answer feedback line.
func formatFeedback(q entities.Question, correct bool) string {
	var b strings.Builder
	if correct {
		b.WriteString("✅ <b>Correct!</b>")
	} else {
		fmt.Fprintf(&b, "❌ <b>Wrong.</b> The answer is <b>%s</b>.", escape(q.Answer))
	}
	if q.HelperText != "" {
		fmt.Fprintf(&b, "\n<i>%s</i>", escape(q.HelperText))
	}
	return b.String()
}

// formatResults renders the completed-session summary.
func formatResults(res entities.Results) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Session complete!</b>\n\n")
	fmt.Fprintf(&b, "Correct: <b>%d/%d</b>\n", res.CorrectAnswers, res.TotalQuestions)
	fmt.Fprintf(&b, "Time: %s\n", formatDuration(res.TimeSpent))

	if len(res.Mistakes) > 0 {
		b.WriteString("\n<b>Mistakes:</b>\n")
		for _, m := range res.Mistakes {
			fmt.Fprintf(&b, "• %s — <b>%s</b>\n", escape(m.Prompt), escape(m.CorrectAnswer))
		}
	}

	return b.String()
}

// formatHistory renders the recent results list.
func formatHistory(results []*entities.SessionResult) string {
	var b strings.Builder
	b.WriteString("<b>Recent sessions:</b>\n\n")
	for _, res := range results {
		fmt.Fprintf(&b, "%s — %s: <b>%d/%d</b> in %s\n",
			res.FinishedAt.Format("02 Jan 15:04"),
			escape(res.Mode),
			res.CorrectAnswers,
			res.TotalQuestions,
			formatDuration(res.TimeSpent),
		)
	}
	return b.String()
}

// formatLesson renders one grammar lesson page.
func formatLesson(lesson *entities.Record, page, total int) string {
	return fmt.Sprintf("<b>%s</b>  <i>(%d/%d)</i>\n\n%s",
		escape(lesson.German), page+1, total, escape(lesson.English))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}

// escape escapes plain text for HTML parse mode.
func escape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}
