package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelier/internal/app/drafts"
	availabilityapp "hotelier/internal/app/handlers/availability"
	quotesapp "hotelier/internal/app/handlers/quotes"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/inventory"
	"hotelier/internal/domain/reservation"
	kafkabroker "hotelier/internal/infra/broker/kafka"
	"hotelier/internal/infra/config"
	mongodb "hotelier/internal/infra/db/mongo"
	ginserver "hotelier/internal/infra/http/gin"
	"hotelier/internal/infra/obs"
	"hotelier/internal/infra/outbox"
	"hotelier/internal/infra/storage/memory"
	"hotelier/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Config{Env: "dev", HTTPAddr: ":8080"}
	}
	logger := obs.NewLogger(cfg.Env)
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
	}

	app, ready, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *outbox.Worker
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, func() error, error) {
	var (
		properties   catalog.Repository
		reservations reservation.Repository
		stock        inventory.StockProvider
		draftRepo    drafts.Repository
		ready        = func() error { return nil }
	)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, nil, err
		}
		properties = mongodb.NewPropertyRepository(client.DB)
		reservations = mongodb.NewReservationRepository(client.DB)
		stock = mongodb.NewInventoryRepository(client.DB)
		draftRepo = mongodb.NewDraftRepository(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		logger.Info("mongo storage configured", "db", cfg.MongoDB)
	} else {
		properties = memory.NewPropertyRepository()
		reservations = memory.NewReservationRepository()
		stock = memory.NewStockStore()
		draftRepo = memory.NewDraftRepository()
		logger.Warn("MONGO_URI not set, using in-memory storage")
	}

	outboxStore := memory.NewOutboxStore()
	var worker *outbox.Worker
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafkabroker.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, nil, err
		}
		worker = &outbox.Worker{
			Store:       outboxStore,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		logger.Info("kafka producer configured", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Warn("KAFKA_BROKERS not set, draft events stay in the outbox")
	}

	var archiver availabilityapp.Archiver
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			logger.Warn("report archiver unavailable", "error", err)
		} else {
			archiver = client
		}
	}

	reconciler := &inventory.Reconciler{Stock: stock, Reservations: reservations}
	draftService := &drafts.Service{
		Properties: properties,
		Drafts:     draftRepo,
		Events:     outbox.Recorder{Store: outboxStore},
	}

	handlers := ginserver.Handlers{
		Quote: ginserver.QuoteHandler{
			Quotes: &quotesapp.Handler{Properties: properties},
		},
		Availability: ginserver.AvailabilityHandler{
			Availability: &availabilityapp.Handler{Reconciler: reconciler, Archiver: archiver},
			Logger:       logger,
			DefaultDays:  cfg.RollingWindowDays,
		},
		Draft: ginserver.DraftHandler{Drafts: draftService, Logger: logger},
	}

	return application{handlers: handlers, worker: worker}, ready, nil
}
