package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
	"github.com/mkleist/wortschatz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	cd := decodeCallback(cb.Data)

	switch cd.Action {
	case actionQuiz:
		h.handleQuizCallback(cb, cd)
	case actionCard:
		h.handleCardCallback(cb, cd)
	case actionResult:
		h.handleResultCallback(cb, cd)
	case actionGrammar:
		h.handleGrammarCallback(cb, cd)
	default:
		h.answerCallback(cb.ID, "")
	}
}

// handleQuizCallback processes a multiple choice answer button.
func (h *Handler) handleQuizCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	if len(cd.Params) != 3 || cd.Params[0] != quizAnswer {
		h.logger.Debug("invalid quiz callback", zap.String("data", cd.Raw))
		h.answerCallback(cb.ID, "")
		return
	}

	questionNum, err1 := strconv.Atoi(cd.Params[1])
	optionIndex, err2 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	sess, q, ok := h.currentQuestion(chatID, questionNum)
	if !ok {
		h.answerCallback(cb.ID, msgQuestionExpired)
		return
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		h.answerCallback(cb.ID, "")
		return
	}

	correct, accepted := sess.Answer(q.Options[optionIndex])
	if !accepted {
		h.answerCallback(cb.ID, msgAlreadyAnswered)
		return
	}

	num, total := sess.Progress()
	text := formatQuestion(q, num, total) + "\n\n" + formatFeedback(q, correct)
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, text))
	h.answerCallback(cb.ID, "")
}

// handleCardCallback processes flashcard reveal and self-assessment buttons.
func (h *Handler) handleCardCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	if len(cd.Params) != 2 {
		h.answerCallback(cb.ID, "")
		return
	}

	questionNum, err := strconv.Atoi(cd.Params[1])
	if err != nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	sess, q, ok := h.currentQuestion(chatID, questionNum)
	if !ok {
		h.answerCallback(cb.ID, msgQuestionExpired)
		return
	}

	switch cd.Params[0] {
	case cardReveal:
		num, total := sess.Progress()
		edit := newHTMLEdit(chatID, cb.Message.MessageID, formatReveal(q, num, total))
		kb := buildSelfAssessKeyboard(num)
		edit.ReplyMarkup = &kb
		h.send(edit)

	case cardKnow, cardMiss:
		submitted := ""
		if cd.Params[0] == cardKnow {
			submitted = q.CanonicalAnswer()
		}

		correct, accepted := sess.Answer(submitted)
		if !accepted {
			h.answerCallback(cb.ID, msgAlreadyAnswered)
			return
		}

		num, total := sess.Progress()
		text := formatQuestion(q, num, total) + "\n\n" + formatFeedback(q, correct)
		h.send(newHTMLEdit(chatID, cb.Message.MessageID, text))
	}

	h.answerCallback(cb.ID, "")
}

// handleResultCallback processes the results screen buttons.
func (h *Handler) handleResultCallback(cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID

	sess, ok := h.sessions.Get(chatID)
	if !ok {
		h.answerCallback(cb.ID, msgQuestionExpired)
		return
	}

	if len(cd.Params) != 1 {
		h.answerCallback(cb.ID, "")
		return
	}

	switch cd.Params[0] {
	case resultRestart:
		if sess.Restart() {
			h.sendCurrentQuestion(chatID, sess)
		} else {
			h.send(newHTMLMessage(chatID, msgNoQuestions))
		}

	case resultReview:
		if sess.ReviewMistakes() {
			h.sendCurrentQuestion(chatID, sess)
		}

	case resultExit:
		h.sessions.Delete(chatID)
		h.send(newHTMLMessage(chatID, msgSessionDone))
	}

	h.answerCallback(cb.ID, "")
}

// currentQuestion fetches the chat's session and its pending question,
// dropping stale button presses from earlier questions.
func (h *Handler) currentQuestion(chatID int64, questionNum int) (*service.Session, entities.Question, bool) {
	sess, ok := h.sessions.Get(chatID)
	if !ok {
		return nil, entities.Question{}, false
	}

	q, ok := sess.Current()
	if !ok {
		return nil, entities.Question{}, false
	}

	num, _ := sess.Progress()
	if num != questionNum {
		return nil, entities.Question{}, false
	}

	return sess, q, true
}
