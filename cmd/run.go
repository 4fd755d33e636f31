package cmd

import (
	"context"
	"fmt"
	"time"

	"quizcoin/api"
	"quizcoin/application"
	"quizcoin/config"
	"quizcoin/database"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"
	"quizcoin/infrastructure"
	"quizcoin/jobs"
	"quizcoin/repository"

	log "github.com/sirupsen/logrus"
)

// defaultJackpotPools are created at startup when their tier is missing.
func defaultJackpotPools() []*entities.JackpotPool {
	return []*entities.JackpotPool{
		{Tier: entities.JackpotTierBronze, Name: "Bronze Jackpot", CurrentAmount: 100, MinimumAmount: 100, IncrementPerCorrect: 1, WinProbability: 0.01},
		{Tier: entities.JackpotTierSilver, Name: "Silver Jackpot", CurrentAmount: 500, MinimumAmount: 500, IncrementPerCorrect: 2, WinProbability: 0.002},
		{Tier: entities.JackpotTierGold, Name: "Gold Jackpot", CurrentAmount: 2500, MinimumAmount: 2500, IncrementPerCorrect: 5, WinProbability: 0.0004},
		{Tier: entities.JackpotTierDiamond, Name: "Diamond Jackpot", CurrentAmount: 10000, MinimumAmount: 10000, IncrementPerCorrect: 10, WinProbability: 0.0001},
	}
}

// Run initializes and starts the service.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetLevel(log.DebugLevel)
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), cfg.DatabaseMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var publisher interfaces.EventPublisher
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		log.Info("Connecting to NATS...")
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()

		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureDomainEventStream(); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		publisher = natsPublisher
	} else {
		log.Warn("NATS_SERVERS not set, events will not be published")
		publisher = infrastructure.NewNoopEventPublisher()
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, publisher)

	ledgerHandler := application.NewLedgerHandler(uowFactory, cfg.StartingBalance, cfg.ReferralBonus)
	quizHandler := application.NewQuizHandler(uowFactory, cfg.StartingBalance)
	shopHandler, err := application.NewShopHandler(uowFactory, cfg.StartingBalance, cfg.ShopCacheSize)
	if err != nil {
		return fmt.Errorf("failed to initialize shop handler: %w", err)
	}

	log.Info("Ensuring default jackpot pools...")
	if err := quizHandler.EnsureDefaultPools(ctx, defaultJackpotPools()); err != nil {
		return fmt.Errorf("failed to ensure default jackpot pools: %w", err)
	}

	digestWorker := application.NewDailyDigestWorker(uowFactory, cfg.DigestLimit)
	scheduler := jobs.NewScheduler(digestWorker)
	if err := scheduler.Start(ctx, cfg.DigestCronSpec); err != nil {
		return err
	}
	defer scheduler.Stop()

	server := api.NewServer(cfg.ListenAddr, api.NewRouter(ledgerHandler, quizHandler, shopHandler))
	serverErr := server.Start()

	log.WithField("environment", cfg.Environment).Info("Service is running")

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	return nil
}
