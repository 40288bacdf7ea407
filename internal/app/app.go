package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/config"
	"github.com/simcheck/detection-service/internal/delivery/httpd"
	"github.com/simcheck/detection-service/internal/repository"
	"github.com/simcheck/detection-service/internal/service"
	"github.com/simcheck/detection-service/internal/service/analyzer"
	"github.com/simcheck/detection-service/internal/worker"
	"github.com/simcheck/detection-service/internal/worker/queue"
)

type App struct {
	server         *http.Server
	logger         zerolog.Logger
	config         *config.Config
	db             *sql.DB
	analysisWorker worker.AnalysisWorker
	rabbitMQRepo   repository.RabbitMQRepository
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	rabbitMQRepo, err := repository.NewRabbitMQRepository(cfg.RabbitMQ.URL, log)
	if err != nil {
		return nil, err
	}

	if err := rabbitMQRepo.SetupQueue(
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.RoutingKey,
	); err != nil {
		return nil, err
	}

	rabbitMQPublisher := queue.NewRabbitMQPublisher(rabbitMQRepo.Channel(), log)
	rabbitMQConsumer := queue.NewRabbitMQConsumer(
		rabbitMQRepo.Channel(),
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.ConsumerTag,
		log,
	)

	documentRepo := repository.NewDocumentRepository(db, log)

	fingerprinter, err := analyzer.NewFingerprinter(analyzer.Config{
		ShingleSize:     cfg.Detection.ShingleSize,
		ShingleMode:     cfg.Detection.ShingleMode,
		WordNGramSize:   cfg.Detection.WordNGramSize,
		Winnowing:       cfg.Detection.Winnowing,
		WinnowingWindow: cfg.Detection.WinnowingWindow,
		StopWords:       cfg.Detection.StopWords,
		Threshold:       cfg.Detection.Threshold,
		HashAlgorithm:   cfg.Detection.HashAlgorithm,
	}, log)
	if err != nil {
		return nil, err
	}

	comparator := analyzer.NewComparator(log)

	detectionService := service.NewDetectionService(
		documentRepo,
		fingerprinter,
		comparator,
		rabbitMQPublisher,
		log,
		service.DetectionConfig{
			Analyzer:         fingerprinter.Config(),
			MaxDocuments:     cfg.Detection.MaxDocuments,
			MaxContentLength: cfg.Detection.MaxContentLength,
			Exchange:         cfg.RabbitMQ.Exchange,
		},
	)

	workerPool := worker.NewWorkerPool(cfg.Detection.MaxWorkers, log)

	analysisWorker := worker.NewAnalysisWorker(
		workerPool,
		rabbitMQConsumer,
		detectionService,
		log,
	)

	handler := httpd.NewHandler(
		detectionService,
		analysisWorker,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:         server,
		logger:         log,
		config:         cfg,
		db:             db,
		analysisWorker: analysisWorker,
		rabbitMQRepo:   rabbitMQRepo,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()
	if err := a.analysisWorker.Start(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to start analysis worker")
		return err
	}

	a.logger.Info().Msgf("Starting detection service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down detection service...")

	if err := a.analysisWorker.Stop(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to stop analysis worker")
	}

	if a.rabbitMQRepo != nil {
		if err := a.rabbitMQRepo.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return err
	}

	a.logger.Info().Msg("Detection service stopped")
	return nil
}
