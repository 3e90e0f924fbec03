package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mkleist/wortschatz-bot/internal/config"
	"github.com/mkleist/wortschatz-bot/internal/delivery/telegram"
	"github.com/mkleist/wortschatz-bot/internal/infra/postgres"
	"github.com/mkleist/wortschatz-bot/internal/logger"
	"github.com/mkleist/wortschatz-bot/internal/repository"
	"github.com/mkleist/wortschatz-bot/internal/service"
	"github.com/mkleist/wortschatz-bot/internal/storage"
)

func main() {
	// Local development keeps secrets in a .env file; missing is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}

	commands := []tgbotapi.BotCommand{
		{Command: "quiz", Description: "Multiple choice vocabulary quiz"},
		{Command: "cards", Description: "Flashcard recall"},
		{Command: "translate", Description: "Type the German word"},
		{Command: "articles", Description: "Der, die or das"},
		{Command: "grammar", Description: "Grammar lessons"},
		{Command: "history", Description: "Recent session results"},
		{Command: "help", Description: "Help"},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	zl.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wordRepo, err := repository.NewWordRepository(cfg.WordsJSONPath)
	if err != nil {
		zl.Fatal("failed to load word set", zap.Error(err))
	}

	grammarRepo, err := repository.NewGrammarRepository(cfg.GrammarDir)
	if err != nil {
		zl.Fatal("failed to load grammar lessons", zap.Error(err))
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zl.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	resultRepo := repository.NewResultRepository(pool)

	handler := telegram.NewHandler(
		bot,
		zl,
		wordRepo,
		grammarRepo,
		resultRepo,
		service.NewBuilder(),
		storage.NewSessionStore(),
		telegram.Options{
			DefaultCount: cfg.Quiz.DefaultCount,
			AdvanceDelay: cfg.Quiz.AdvanceDelay,
			HistoryLimit: cfg.Quiz.HistoryLimit,
		},
	)

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
