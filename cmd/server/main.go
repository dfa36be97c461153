package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vuxmai/salary-in-discord/internal/config"
	"github.com/vuxmai/salary-in-discord/internal/discord"
	"github.com/vuxmai/salary-in-discord/internal/discord/handlers"
	"github.com/vuxmai/salary-in-discord/internal/ledger"
	"github.com/vuxmai/salary-in-discord/internal/messages"
	"github.com/vuxmai/salary-in-discord/internal/policy"
	"github.com/vuxmai/salary-in-discord/internal/store"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Initialize configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Using config file: %s", *configFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the ledger store
	var ledgerStore ledger.Store
	switch cfg.Storage.Driver {
	case "memory":
		log.Println("Using in-memory ledger store (state is not durable)")
		ledgerStore = store.NewMemory()
	default:
		pg, err := store.NewPostgres(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		ledgerStore = pg
	}

	// Wire the balance service, access policy and message formatter
	svc := ledger.NewService(ledgerStore)
	pol := policy.New(cfg.AllowedRoles(), policy.RateLimitConfig{
		Enabled: cfg.RateLimit.Enabled,
		RPS:     cfg.RateLimit.RPS,
		Burst:   cfg.RateLimit.Burst,
	})
	msg := messages.New(cfg.DiscordBot.Locale)

	// Initialize Discord bot
	bot, err := discord.New(cfg.DiscordBot.Token, cfg.DiscordBot.Prefix, handlers.New(svc, pol, msg))
	if err != nil {
		log.Fatalf("Failed to initialize Discord bot: %v", err)
	}
	if err := bot.Open(); err != nil {
		log.Fatalf("Failed to connect to Discord: %v", err)
	}
	defer bot.Close()

	// Handle termination signals
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalChan
		log.Println("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	log.Println("Salary in Discord bot is now running. Press CTRL+C to exit.")
	// Keep the application running until context is cancelled
	<-ctx.Done()
	log.Println("Salary in Discord bot shutting down...")
}
