package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"lender/bot"
	"lender/config"
	"lender/database"
	"lender/events"
	"lender/repository"
	"lender/service"
	"lender/store"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting lender bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize the document store
	log.Printf("Initializing %s store backend...", cfg.StoreBackend)
	documentStore, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer cleanup()
	log.Println("Store initialized successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	log.Println("Event bus initialized successfully")

	// Initialize repositories
	creditRepo := repository.NewCreditRepository(documentStore)
	loanRepo := repository.NewLoanRepository(documentStore)
	configRepo := repository.NewGuildConfigRepository(documentStore)
	pendingRepo := repository.NewPendingLoanRepository(documentStore)

	// Initialize services
	log.Println("Initializing services...")
	locks := store.NewKeyLocks()
	creditService := service.NewCreditService(creditRepo, locks, eventBus)
	guildConfigService := service.NewGuildConfigService(configRepo, locks, eventBus)
	loanService := service.NewLoanService(loanRepo, creditRepo, configRepo, pendingRepo, locks, eventBus)
	log.Println("Services initialized successfully")

	// Replay loan intents interrupted by a previous crash
	if err := loanService.RecoverPending(ctx); err != nil {
		return fmt.Errorf("failed to recover pending loans: %w", err)
	}

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:        cfg.DiscordToken,
		ProfileBotID: cfg.ProfileBotID,
		SetupTimeout: time.Duration(cfg.SetupTimeoutSeconds) * time.Second,
	}
	discordBot, err := bot.New(botConfig, creditService, loanService, guildConfigService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

// newStore builds the configured store backend and returns a cleanup
// function that releases its resources.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		s, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case config.StoreBackendRedis:
		s, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Printf("Error closing redis store: %v", err)
			}
		}, nil

	case config.StoreBackendPostgres:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}
