package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark-assistant-go/internal/config"
	"github.com/mark-assistant-go/internal/handlers"
	"github.com/mark-assistant-go/internal/i18n"
	"github.com/mark-assistant-go/internal/middleware"
	"github.com/mark-assistant-go/internal/orchestrator"
	"github.com/mark-assistant-go/internal/services/ai"
	"github.com/mark-assistant-go/internal/services/cache"
	"github.com/mark-assistant-go/internal/services/currency"
	"github.com/mark-assistant-go/internal/services/search"
	"github.com/mark-assistant-go/internal/services/wiki"
	"github.com/mark-assistant-go/internal/session"
	"github.com/mark-assistant-go/internal/telegram"
	"github.com/mark-assistant-go/pkg/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	envFile := flag.String("env", ".env", "Path to .env file")
	flag.Parse()

	// Load .env file if exists
	if err := godotenv.Load(*envFile); err != nil {
		// It's okay if .env doesn't exist
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("Starting Mark assistant backend...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize i18n
	localizer, err := i18n.NewLocalizer(&cfg.I18n)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Initialize cache
	cacheService, err := cache.NewService(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize cache")
	}

	// Initialize services
	store := session.NewStore()
	aiService := ai.NewGroqAI(&cfg.AI, log)
	currencyClient := currency.NewClient(&cfg.Providers.Currency, log)
	searchClient := search.NewClient(&cfg.Providers.Search, log)
	wikiClient := wiki.NewClient(&cfg.Providers.Wiki, log)
	metrics := middleware.NewMetrics()

	orch, err := orchestrator.New(
		cfg,
		store,
		aiService,
		currencyClient,
		searchClient,
		wikiClient,
		cacheService,
		localizer,
		metrics,
		log,
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize orchestrator")
	}

	// Start metrics server if enabled
	if cfg.Monitoring.Metrics.Enabled {
		go func() {
			log.WithFields(logrus.Fields{
				"port": cfg.Monitoring.Metrics.Port,
				"path": cfg.Monitoring.Metrics.Path,
			}).Info("Starting metrics server")

			if err := middleware.StartMetricsServer(cfg.Monitoring.Metrics.Port, cfg.Monitoring.Metrics.Path); err != nil {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	// Start Telegram bridge if a token is configured
	if cfg.Telegram.Token != "" {
		bridge, err := telegram.NewBridge(&cfg.Telegram, orch, metrics, log)
		if err != nil {
			log.WithError(err).Error("Failed to start telegram bridge")
		} else {
			go bridge.Run(ctx)
		}
	}

	chatHandler := handlers.NewChatHandler(cfg, orch, metrics, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chatHandler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info("Shutdown signal received")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	log.Info("Server stopped")
}
