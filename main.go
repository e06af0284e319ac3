package main

import (
	"context"

	"github.com/feedbackform/feedback-backend/config"
	"github.com/feedbackform/feedback-backend/db"
	"github.com/feedbackform/feedback-backend/handlers"
	"github.com/feedbackform/feedback-backend/internal/store"
	badgerstore "github.com/feedbackform/feedback-backend/internal/store/badger"
	filestore "github.com/feedbackform/feedback-backend/internal/store/file"
	"github.com/feedbackform/feedback-backend/internal/store/postgres"
	"github.com/feedbackform/feedback-backend/logger"
	"github.com/feedbackform/feedback-backend/pkg/llm"
	"github.com/feedbackform/feedback-backend/router"
	"github.com/feedbackform/feedback-backend/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var (
		feedbackStore store.FeedbackStore
		chatLogStore  store.ChatLogStore
		storagePinger services.Pinger
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		if err := db.RunMigrations(cfg.Database.URL()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		feedbackStore = postgres.NewFeedbackStore(pool)
		chatLogStore = postgres.NewChatLogStore(pool)
		storagePinger = pool

	case config.BackendBadger:
		badgerDB, err := badgerstore.Open(cfg.Store.BadgerDir)
		if err != nil {
			log.Fatalf("Failed to open badger store: %v", err)
		}
		defer badgerDB.Close()
		bs := badgerstore.NewFeedbackStore(badgerDB)
		feedbackStore = bs
		storagePinger = bs

	case config.BackendFile:
		fs, err := filestore.NewFeedbackStore(cfg.Store.FilePath)
		if err != nil {
			log.Fatalf("Failed to open feedback file store: %v", err)
		}
		feedbackStore = fs
		storagePinger = fs
	}

	feedbackService := services.NewFeedbackService(feedbackStore)
	healthService := services.NewHealthService(storagePinger, cfg.Server.Version)

	deps := router.Dependencies{
		Config:          cfg,
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		Logger:          log,
	}

	// The chat add-on needs both a completion provider and a chat log; it
	// stays disabled otherwise.
	switch {
	case cfg.OpenAI.APIKey == "":
		log.Warn("Chat endpoints disabled: no OpenAI API key configured")
	case chatLogStore == nil:
		log.Warnw("Chat endpoints disabled: chat logging requires the postgres backend",
			"store_backend", cfg.Store.Backend)
	default:
		completer := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
		chatService := services.NewChatService(completer, chatLogStore, cfg.OpenAI.SystemPrompt)
		deps.ChatHandler = handlers.NewChatHandler(chatService)
	}

	r := router.SetupRouter(deps)

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
