package telegram

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
	"github.com/mkleist/wortschatz-bot/internal/service"
)

// startDrill builds a fresh batch for the requested mode and starts a new
// session for the chat, superseding any previous one.
func (h *Handler) startDrill(chatID int64, mode entities.Mode, kind entities.Kind, category string) {
	category = strings.TrimSpace(category)

	direction := service.GermanToEnglish
	if mode == entities.ModeFreeText {
		// Translation drills ask for the German word.
		direction = service.EnglishToGerman
	}

	params := service.BuildParams{
		Mode:      mode,
		Count:     h.opts.DefaultCount,
		Category:  category,
		Direction: direction,
	}
	records := h.words.GetByKind(kind)

	build := func() []entities.Question {
		return h.builder.Build(records, params)
	}

	sess := service.NewSession(build,
		service.WithAutoAdvance(h.opts.AdvanceDelay),
		service.WithAdvanceHook(func() { h.onAdvance(chatID) }),
	)

	if !sess.Start(build()) {
		text := msgNoQuestions
		if cats := h.words.Categories(); len(cats) > 0 {
			text += "\n\nCategories: " + escape(strings.Join(cats, ", "))
		}
		h.send(newHTMLMessage(chatID, text))
		return
	}

	h.sessions.Store(chatID, sess)
	h.sendCurrentQuestion(chatID, sess)
}

// sendCurrentQuestion renders the question the session is waiting on.
func (h *Handler) sendCurrentQuestion(chatID int64, sess *service.Session) {
	q, ok := sess.Current()
	if !ok {
		return
	}
	num, total := sess.Progress()

	msg := newHTMLMessage(chatID, formatQuestion(q, num, total))

	switch {
	case len(q.Options) > 0:
		msg.ReplyMarkup = buildOptionsKeyboard(q, num)
	case q.Mode == entities.ModeFlashcard:
		msg.ReplyMarkup = buildRevealKeyboard(num)
	}

	h.send(msg)
}

// onAdvance fires after the session advanced, either manually or through
// the auto-advance timer: send the next question, or the results screen
// once the run is completed.
func (h *Handler) onAdvance(chatID int64) {
	sess, ok := h.sessions.Get(chatID)
	if !ok {
		return
	}

	switch sess.Phase() {
	case service.PhaseActive:
		h.sendCurrentQuestion(chatID, sess)
	case service.PhaseCompleted:
		h.sendResults(chatID, sess)
	}
}

// sendResults renders the completed-session summary and persists it to the
// result log.
func (h *Handler) sendResults(chatID int64, sess *service.Session) {
	res, ok := sess.Results()
	if !ok {
		return
	}

	h.saveResult(chatID, sess, res)

	msg := newHTMLMessage(chatID, formatResults(res))
	msg.ReplyMarkup = buildResultsKeyboard(len(res.Mistakes) > 0)
	h.send(msg)
}

func (h *Handler) saveResult(chatID int64, sess *service.Session, res entities.Results) {
	mode := ""
	if qs := sess.Questions(); len(qs) > 0 {
		mode = string(qs[0].Mode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := h.results.Save(ctx, &entities.SessionResult{
		ChatID:         chatID,
		Mode:           mode,
		TotalQuestions: res.TotalQuestions,
		CorrectAnswers: res.CorrectAnswers,
		WrongAnswers:   res.WrongAnswers,
		TimeSpent:      res.TimeSpent,
		FinishedAt:     time.Now(),
	})
	if err != nil {
		h.logger.Error("failed to save session result",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// handleFreeTextAnswer routes a plain text message into the active
// free-text session for the chat.
func (h *Handler) handleFreeTextAnswer(chatID int64, text string) {
	sess, ok := h.sessions.Get(chatID)
	if !ok || sess.Phase() != service.PhaseActive {
		h.send(newHTMLMessage(chatID, msgNoActiveSession))
		return
	}

	q, ok := sess.Current()
	if !ok || q.Mode != entities.ModeFreeText {
		return
	}

	correct, accepted := sess.Answer(text)
	if !accepted {
		return
	}

	h.send(newHTMLMessage(chatID, formatFeedback(q, correct)))
}
