package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumePress/internal/config"
	"resumePress/internal/database"
	"resumePress/internal/estimate"
	"resumePress/internal/export"
	"resumePress/internal/metrics"
	"resumePress/internal/pdf"
	"resumePress/internal/storage"
	"resumePress/internal/tasks"
	"resumePress/internal/typeset"
	"resumePress/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready for worker")

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	var measurer estimate.Measurer
	if cfg.Export.Measurer == "canvas" {
		measurer = typeset.NewMeasurer()
	}
	backend, err := export.ParseBackend(cfg.Export.Backend, export.BackendBrowser)
	if err != nil {
		log.Fatalf("export backend: %v", err)
	}
	exporter := export.NewService(
		estimate.New(measurer, logger),
		pdf.NewBrowserRenderer(pdf.Options{
			Bin:     cfg.Export.ChromeBin,
			Timeout: cfg.Export.Timeout,
			Logger:  logger,
		}),
		typeset.NewWriter(),
		backend,
		logger,
	)

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()}, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
	})

	exportHandler := worker.NewExportTaskHandler(db, storageClient, redisClient, exporter, logger)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePDFExport, exportHandler)

	logger.Info("worker service started",
		slog.String("redis_addr", cfg.Redis.Addr()),
		slog.Int("concurrency", cfg.Worker.Concurrency),
		slog.String("backend", string(backend)),
	)
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
