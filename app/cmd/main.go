package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jark/app/config"
	"jark/app/usecase"
	"jark/internal/domain/repository"
	"jark/internal/infrastructure/llm"
	"jark/internal/infrastructure/metrics"
	mongorepo "jark/internal/infrastructure/store/mongodb"
	"jark/internal/infrastructure/transport"
)

func main() {
	// load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))

	if cfg.LLM.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; generation requests will fail upstream")
	}

	// Generation journal (optional)
	var journal repository.GenerationRepository
	var mongoClient *mongo.Client
	if cfg.Mongo.Enabled() {
		mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 30*time.Second)
		mongoClient, err = mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err == nil {
			err = mongoClient.Ping(mongoCtx, nil)
		}
		mongoCancel()
		if err != nil {
			logger.Error("mongo unavailable, generation journal disabled", "err", err)
			if mongoClient != nil {
				_ = mongoClient.Disconnect(context.Background())
				mongoClient = nil
			}
		} else {
			logger.Info("connected to mongo", "database", cfg.Mongo.Database)
			journal = mongorepo.NewMongoGenerationRepo(mongoClient.Database(cfg.Mongo.Database))
		}
	}

	// LLM client
	llmClient := llm.NewOpenAIGenerator(
		cfg.LLM.APIKey,
		cfg.LLM.BaseURL,
		cfg.LLM.ChatModel,
		cfg.LLM.ImageModel,
		cfg.LLM.Timeout,
	)

	generationSvc := usecase.NewGenerationService(llmClient, journal, logger)

	// Transport (HTTP handlers)
	handler := transport.NewGenerationHandler(
		generationSvc,
		logger,
		prometheus.DefaultRegisterer,
	)

	// Router and server
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.Addr != "" {
		go func() {
			logger.Info("starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metrics.StartMetricsServer(cfg.Metrics.Addr); err != nil {
				logger.Error("metrics server failed", "err", err)
			}
		}()
	}

	// Start HTTP server
	go func() {
		logger.Info("JARK AI Platform running", "port", cfg.Server.Port, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			cancel()
		}
	}()

	// OS signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	// Shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}

	if mongoClient != nil {
		logger.Info("disconnecting mongo")
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Error("mongo disconnect error", "err", err)
		}
	}

	logger.Info("service stopped")
}
