package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"negociolisto-core/config"
	"negociolisto-core/internal/producer"
	"negociolisto-core/internal/repository"
	"negociolisto-core/internal/service"
	"negociolisto-core/internal/stream"
	transport "negociolisto-core/internal/transport/http"
	"negociolisto-core/pkg/database"
	"negociolisto-core/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	hub := stream.NewHub()
	repos := repository.New(db, hub)

	var analytics service.AnalyticsSink
	if len(cfg.KafkaBrokers) > 0 {
		p := producer.NewAnalyticsProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		analytics = p
		log.Info("analytics producer enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	} else {
		log.Info("analytics producer disabled")
	}

	saleSvc := service.NewSaleService(repos.Sales, repos.Products, analytics, log)
	orderSvc := service.NewOrderService(repos.Orders, repos.Products, saleSvc, log)

	counts := service.NewResponseCountCache(repository.NewOrderStreams(repos.Orders, hub), log)
	defer counts.Close()

	collectionSvc := service.NewCollectionService(repos.Collections, counts, log)

	router := transport.NewRouter(
		transport.NewOrderHandler(orderSvc, saleSvc),
		transport.NewCollectionHandler(collectionSvc),
		transport.NewSaleHandler(saleSvc),
		transport.NewCountHandler(counts),
	)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped gracefully")
}
