package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
)

// buildOptionsKeyboard builds the answer keyboard for a multiple choice
// question, one option per row.
func buildOptionsKeyboard(q entities.Question, questionNum int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		callback := buildQuizAnswerCallback(questionNum, i)
		button := tgbotapi.NewInlineKeyboardButtonData(option, callback)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildRevealKeyboard builds the keyboard shown on the front of a flashcard.
func buildRevealKeyboard(questionNum int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👀 Show answer", buildCardCallback(cardReveal, questionNum)),
		),
	)
}

// buildSelfAssessKeyboard builds the keyboard shown on the back of a flashcard.
func buildSelfAssessKeyboard(questionNum int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ I knew it", buildCardCallback(cardKnow, questionNum)),
			tgbotapi.NewInlineKeyboardButtonData("❌ I didn't", buildCardCallback(cardMiss, questionNum)),
		),
	)
}

// buildResultsKeyboard builds the keyboard for the results screen. The
// review button is only offered when the run produced mistakes.
func buildResultsKeyboard(hasMistakes bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New round", buildResultCallback(resultRestart)),
		),
	}
	if hasMistakes {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🩹 Review mistakes", buildResultCallback(resultReview)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏁 Done", buildResultCallback(resultExit)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildGrammarKeyboard builds pagination keyboard for grammar lessons.
func buildGrammarKeyboard(page, totalPages int) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildGrammarPageCallback(page-1)))
	}
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildGrammarPageCallback(page+1)))
	}

	kb := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
	}

	return &kb
}
