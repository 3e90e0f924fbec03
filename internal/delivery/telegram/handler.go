package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
	"github.com/mkleist/wortschatz-bot/internal/service"
	"github.com/mkleist/wortschatz-bot/internal/storage"
)

// WordSource supplies the immutable word set.
type WordSource interface {
	GetByKind(kind entities.Kind) []*entities.Record
	Categories() []string
}

// GrammarSource supplies grammar lessons for reading.
type GrammarSource interface {
	Lessons() []*entities.Record
}

// ResultLog persists completed session summaries.
type ResultLog interface {
	Save(ctx context.Context, res *entities.SessionResult) error
	ListRecent(ctx context.Context, chatID int64, limit int) ([]*entities.SessionResult, error)
}

// Options carries drill tunables from the configuration.
type Options struct {
	DefaultCount int
	AdvanceDelay time.Duration
	HistoryLimit int
}

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	words    WordSource
	grammar  GrammarSource
	results  ResultLog
	builder  *service.Builder
	sessions *storage.SessionStore
	opts     Options
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	words WordSource,
	grammar GrammarSource,
	results ResultLog,
	builder *service.Builder,
	sessions *storage.SessionStore,
	opts Options,
) *Handler {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = 10
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}

	return &Handler{
		bot:      bot,
		logger:   logger,
		words:    words,
		grammar:  grammar,
		results:  results,
		builder:  builder,
		sessions: sessions,
		opts:     opts,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start":
			h.send(newHTMLMessage(chatID, msgWelcome))

		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))

		case "quiz":
			h.startDrill(chatID, entities.ModeMultipleChoice, entities.KindVocabulary, args)

		case "cards":
			h.startDrill(chatID, entities.ModeFlashcard, entities.KindVocabulary, args)

		case "translate":
			h.startDrill(chatID, entities.ModeFreeText, entities.KindVocabulary, args)

		case "articles":
			h.startDrill(chatID, entities.ModeMultipleChoice, entities.KindArticle, args)

		case "grammar":
			h.handleGrammarCommand(chatID)

		case "history":
			h.handleHistoryCommand(ctx, chatID)

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	// Plain text goes to the active free-text session, if any.
	if update.Message.Text != "" {
		h.handleFreeTextAnswer(chatID, update.Message.Text)
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the user's "clock" on a pressed button, optionally
// with a short toast text.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}
