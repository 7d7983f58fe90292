package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/flexliving/reviews-api/internal/business/listings"
	"github.com/flexliving/reviews-api/internal/business/reviews"
	syncsvc "github.com/flexliving/reviews-api/internal/business/sync"
	"github.com/flexliving/reviews-api/internal/platform/config"
	"github.com/flexliving/reviews-api/internal/platform/hostaway"
	apirouter "github.com/flexliving/reviews-api/internal/platform/http"
	"github.com/flexliving/reviews-api/internal/platform/store"
	"github.com/flexliving/reviews-api/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	recordStore := store.New(cfg.DataDir)
	if err := recordStore.EnsureDir(); err != nil {
		logger.Fatal("data dir init failed", zap.Error(err))
	}

	listingRepo := repository.NewListingRepository(recordStore)
	reviewRepo := repository.NewReviewRepository(recordStore)
	approvalRepo := repository.NewApprovalRepository(recordStore)
	runRepo := repository.NewSyncRunRepository(recordStore)

	client := hostaway.New(nil, hostaway.Config{
		ClientID:     cfg.HostawayClientID,
		ClientSecret: cfg.HostawayClientSecret,
		Scope:        cfg.HostawayScope,
		BaseURL:      cfg.HostawayBaseURL,
		Mock:         cfg.HostawayMock,
	})

	upstream := cfg.HostawayConfigured()
	if upstream {
		logger.Info("hostaway aggregator enabled", zap.Bool("mock", cfg.HostawayMock))
	} else {
		logger.Info("no hostaway credentials, serving from local record store only")
	}

	reviewSvc := reviews.NewService(client, upstream, reviewRepo, approvalRepo, logger)
	listingSvc := listings.NewService(client, upstream, listingRepo, logger)
	syncSvc := syncsvc.NewService(client, upstream, listingRepo, reviewRepo, runRepo, logger)

	router := apirouter.NewRouter(reviewSvc, listingSvc, syncSvc, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("port", cfg.Port))

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server exited")
}
