package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chat-relay/config"
	"chat-relay/config/postgre"
	"chat-relay/config/sqlite"
	tgChannel "chat-relay/internal/channel/telegram"
	"chat-relay/internal/conversation"
	convUsecase "chat-relay/internal/conversation/usecase"
	"chat-relay/internal/relay"
	relayUsecase "chat-relay/internal/relay/usecase"
	"chat-relay/internal/router"
	"chat-relay/internal/session"
	"chat-relay/internal/visitor/repository"
	"chat-relay/internal/visitor/repository/memory"
	visitorPostgre "chat-relay/internal/visitor/repository/postgre"
	visitorSQLite "chat-relay/internal/visitor/repository/sqlite"
	visitorUsecase "chat-relay/internal/visitor/usecase"
	"chat-relay/pkg/llmprovider"
	"chat-relay/pkg/log"
	"chat-relay/pkg/telegram"
)

// app is the wired process: config, logger, Bot API client and the relay.
type app struct {
	cfg    *config.Config
	logger log.Logger
	bot    *telegram.Bot
	relay  relay.UseCase
	db     *sql.DB
}

func loadConfig(path string) (*config.Config, log.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	return cfg, logger, nil
}

func newBot(cfg *config.Config) *telegram.Bot {
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	if cfg.Telegram.APIURL != "" {
		bot.SetAPIBase(cfg.Telegram.APIURL)
	}
	return bot
}

func bootstrap(ctx context.Context, path string) (*app, error) {
	cfg, logger, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Starting chat relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 1. Completion providers
	providers, warnings, err := llmprovider.InitializeProviders(&cfg.LLM)
	for _, w := range warnings {
		logger.Warnf(ctx, "LLM: %s", w)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM providers: %w", err)
	}
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}

	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	maxTotal, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled:   cfg.LLM.FallbackEnabled,
		RetryAttempts:     cfg.LLM.RetryAttempts,
		RetryDelay:        retryDelay,
		MaxTotalTimeout:   maxTotal,
		SystemInstruction: cfg.LLM.SystemInstruction,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
	}, logger)

	// 2. Telegram
	bot := newBot(cfg)
	ch := tgChannel.New(bot)

	// 3. Visitor log
	db, repo, err := openVisitorRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	visitors := visitorUsecase.New(repo, logger)

	// 4. Conversation engine and relay
	store := session.New(cfg.Conversation.MaxHistorySize)
	engine := convUsecase.New(logger, store, ch, manager, conversation.Config{
		PlaceholderText:   cfg.Conversation.PlaceholderText,
		FallbackText:      cfg.Conversation.FallbackText,
		CompletionTimeout: cfg.Conversation.CompletionTimeout,
		ReplyParseMode:    cfg.Telegram.ParseMode,
	})
	r := router.New(router.Config{
		StartImageURL: cfg.Commands.StartImageURL,
		StartCaption:  cfg.Commands.StartCaption,
		Greeting:      cfg.Commands.Greeting,
		DonateText:    cfg.Commands.DonateText,
		HelpText:      cfg.Commands.HelpText,
	})
	relayUC := relayUsecase.New(logger, r, engine, visitors, ch, relay.Config{})

	return &app{
		cfg:    cfg,
		logger: logger,
		bot:    bot,
		relay:  relayUC,
		db:     db,
	}, nil
}

// openVisitorRepository returns the configured store; db is nil for the
// in-memory driver.
func openVisitorRepository(ctx context.Context, cfg *config.Config, l log.Logger) (*sql.DB, repository.Repository, error) {
	var (
		db   *sql.DB
		repo repository.Repository
		err  error
	)

	switch cfg.Visitor.Driver {
	case config.VisitorDriverPostgres:
		if db, err = postgre.Connect(ctx, cfg.Visitor.DSN); err != nil {
			return nil, nil, err
		}
		repo, err = visitorPostgre.New(db, l, cfg.Visitor.Table)
	case config.VisitorDriverSQLite:
		if db, err = sqlite.Connect(ctx, cfg.Visitor.DSN); err != nil {
			return nil, nil, err
		}
		repo, err = visitorSQLite.New(db, l, cfg.Visitor.Table)
	default:
		l.Info(ctx, "Visitor log kept in memory (visitor.driver=none)")
		return nil, memory.New(), nil
	}
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	l.Infof(ctx, "Visitor log: %s table %s", cfg.Visitor.Driver, cfg.Visitor.Table)
	return db, repo, nil
}

func (a *app) readyCheck(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.PingContext(ctx)
}

// shutdown drains scheduled relay work, then releases the database.
func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout+a.cfg.Conversation.CompletionTimeout)
	defer cancel()

	if err := a.relay.Close(ctx); err != nil {
		a.logger.Warnf(ctx, "Relay did not drain: %v", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warnf(ctx, "Failed to close visitor database: %v", err)
		}
	}
}
