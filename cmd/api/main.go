package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookalink/internal/auth"
	"bookalink/internal/client"
	"bookalink/internal/config"
	"bookalink/internal/logging"
	"bookalink/internal/repository"
	"bookalink/internal/server"
	"bookalink/internal/service"
	"bookalink/internal/theme"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log)
	log.WithField("environment", cfg.Environment.Name).Info("starting bookalink")

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}

	storage, err := client.NewObjectStorage(&cfg.Cloudinary)
	if err != nil {
		log.WithError(err).Fatal("object storage init failed")
	}
	if cfg.Cloudinary.URL == "" {
		log.Warn("CLOUDINARY_URL not set, image uploads are disabled")
	}

	accountRepo := repository.NewAccountRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	itemRepo := repository.NewItemRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	identity := auth.NewProvider(accountRepo, &cfg.Auth)
	themes := theme.Default()

	sellerService := service.NewSellerService(sellerRepo, identity, themes, cfg.BaseURL, log)
	profileService := service.NewProfileService(
		sellerRepo, serviceRepo, itemRepo, linkRepo, reviewRepo, analyticsRepo,
		sellerService, themes, log,
	)
	statsService := service.NewStatsService(orderRepo, analyticsRepo, &cfg.Stats, time.Now, log)

	refresher, err := service.NewStatsRefresher(statsService, cfg.Stats.Interval, log)
	if err != nil {
		log.WithError(err).Fatal("stats refresher init failed")
	}
	refresher.Start()

	srv := server.NewServer(cfg, server.Services{
		Identity:    identity,
		Themes:      themes,
		Seller:      sellerService,
		Catalog:     service.NewCatalogService(sellerRepo, serviceRepo, itemRepo, linkRepo, log),
		Profile:     profileService,
		Marketplace: service.NewMarketplaceService(sellerRepo, serviceRepo, itemRepo, log),
		Booking:     service.NewBookingService(profileService, sellerRepo, serviceRepo, itemRepo, orderRepo, log),
		Upload:      service.NewUploadService(storage, log),
		Order:       service.NewOrderService(orderRepo),
		Stats:       statsService,
	}, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	select {
	case <-refresher.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("stats refresh still running at shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
