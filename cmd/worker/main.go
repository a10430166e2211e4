// Package main implements the label recognition worker: it drains the job
// queue through the detection model and writes results back to the
// document store, starting and stopping the model around the run.
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

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/assetflow/labelworker/internal/config"
	"github.com/assetflow/labelworker/internal/platform/logger"
	"github.com/assetflow/labelworker/internal/platform/metrics"
	"github.com/assetflow/labelworker/internal/platform/nuxeo"
	"github.com/assetflow/labelworker/internal/platform/rekognition"
	"github.com/assetflow/labelworker/internal/platform/sqsqueue"
	"github.com/assetflow/labelworker/internal/service"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// Configuration errors are fatal before any work starts.
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	orchestrator, err := buildOrchestrator(ctx, appLogger, cfg)
	if err != nil {
		log.Fatalf("failed to initialize worker: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("http server failed", "error", err)
		}
	}()

	report, runErr := orchestrator.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http server shutdown failed", "error", err)
	}

	if runErr != nil {
		appLogger.Error("run finished with error",
			"processed", report.Processed,
			"failed", report.Failed,
			"error", runErr)
		os.Exit(1)
	}

	appLogger.Info("run complete",
		"processed", report.Processed,
		"failed", report.Failed)
}

// buildOrchestrator wires the full pipeline from configuration: AWS and
// document store clients, the processing chain, and the surrounding
// lifecycle steps.
func buildOrchestrator(
	ctx context.Context,
	appLogger *slog.Logger,
	cfg *config.Config,
) (*service.Orchestrator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	rekClient := awsrekognition.NewFromConfig(awsCfg)
	detector, err := rekognition.NewDetector(appLogger, rekClient, cfg.Rekognition)
	if err != nil {
		return nil, err
	}
	lifecycle, err := rekognition.NewLifecycleController(appLogger, rekClient, cfg.Rekognition)
	if err != nil {
		return nil, err
	}

	sqsClient := awssqs.NewFromConfig(awsCfg)
	primaryQueue, err := sqsqueue.NewQueue(appLogger, sqsClient, cfg.Queue.PrimaryURL)
	if err != nil {
		return nil, err
	}
	deadLetterQueue, err := sqsqueue.NewQueue(appLogger, sqsClient, cfg.Queue.DeadLetterURL)
	if err != nil {
		return nil, err
	}

	nuxeoClient, err := nuxeo.NewClient(appLogger, cfg.Nuxeo)
	if err != nil {
		return nil, err
	}
	publisher, err := nuxeo.NewPublisher(appLogger, nuxeoClient)
	if err != nil {
		return nil, err
	}
	notifier, err := nuxeo.NewNotifier(appLogger, nuxeoClient)
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics()
	if err := m.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}

	processor, err := service.NewProcessor(appLogger, detector, publisher)
	if err != nil {
		return nil, err
	}
	router, err := service.NewDeadLetterRouter(appLogger, deadLetterQueue, m)
	if err != nil {
		return nil, err
	}
	consumer, err := service.NewConsumer(appLogger, processor, router, m)
	if err != nil {
		return nil, err
	}
	gate, err := service.NewGate(appLogger, primaryQueue)
	if err != nil {
		return nil, err
	}

	return service.NewOrchestrator(service.OrchestratorParams{
		Logger:    appLogger,
		Lifecycle: lifecycle,
		Gate:      gate,
		Queue:     primaryQueue,
		Consumer:  consumer,
		Notifier:  notifier,
		Recipient: cfg.Notify.Recipient,
		Metrics:   m,
	})
}

// newRouter exposes the worker's operational surface: liveness and metrics.
func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
