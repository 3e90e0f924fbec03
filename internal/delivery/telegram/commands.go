package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleGrammarCommand opens the first grammar lesson page.
func (h *Handler) handleGrammarCommand(chatID int64) {
	lessons := h.grammar.Lessons()
	if len(lessons) == 0 {
		h.send(newHTMLMessage(chatID, msgNoGrammarLessons))
		return
	}

	msg := newHTMLMessage(chatID, formatLesson(lessons[0], 0, len(lessons)))
	if kb := buildGrammarKeyboard(0, len(lessons)); kb != nil {
		msg.ReplyMarkup = kb
	}
	h.send(msg)
}

// handleGrammarCallback pages through grammar lessons in place.
func (h *Handler) handleGrammarCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	if len(cd.Params) != 1 {
		h.answerCallback(cb.ID, "")
		return
	}

	page, err := strconv.Atoi(cd.Params[0])
	if err != nil || page < 0 {
		h.logger.Debug("invalid grammar page in callback", zap.String("data", cd.Raw))
		h.answerCallback(cb.ID, "")
		return
	}

	lessons := h.grammar.Lessons()
	if page >= len(lessons) {
		h.answerCallback(cb.ID, "")
		return
	}

	edit := newHTMLEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatLesson(lessons[page], page, len(lessons)))
	if kb := buildGrammarKeyboard(page, len(lessons)); kb != nil {
		edit.ReplyMarkup = kb
	}
	h.send(edit)
	h.answerCallback(cb.ID, "")
}

// handleHistoryCommand shows the chat's most recent completed sessions.
func (h *Handler) handleHistoryCommand(ctx context.Context, chatID int64) {
	results, err := h.results.ListRecent(ctx, chatID, h.opts.HistoryLimit)
	if err != nil {
		h.logger.Error("failed to load history",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.send(newHTMLMessage(chatID, msgHistoryError))
		return
	}

	if len(results) == 0 {
		h.send(newHTMLMessage(chatID, msgHistoryEmpty))
		return
	}

	h.send(newHTMLMessage(chatID, formatHistory(results)))
}
