package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumePress/internal/api"
	"resumePress/internal/config"
	"resumePress/internal/database"
	"resumePress/internal/estimate"
	"resumePress/internal/export"
	"resumePress/internal/pdf"
	"resumePress/internal/storage"
	"resumePress/internal/typeset"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready",
		slog.String("host", cfg.Database.Host),
		slog.Int("port", cfg.Database.Port),
		slog.String("db", cfg.Database.Name),
	)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer queue.Close()

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	estimators := map[string]*estimate.Estimator{
		"heuristic": estimate.New(nil, logger),
		"canvas":    estimate.New(typeset.NewMeasurer(), logger),
	}
	backend, err := export.ParseBackend(cfg.Export.Backend, export.BackendBrowser)
	if err != nil {
		log.Fatalf("export backend: %v", err)
	}
	browser := pdf.NewBrowserRenderer(pdf.Options{
		Bin:     cfg.Export.ChromeBin,
		Timeout: cfg.Export.Timeout,
		Logger:  logger,
	})
	exporter := export.NewService(estimators[cfg.Export.Measurer], browser, typeset.NewWriter(), backend, logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Deps{
		DB:              db,
		Redis:           redisClient,
		Queue:           queue,
		Storage:         storageClient,
		Exporter:        exporter,
		Estimators:      estimators,
		DefaultMeasurer: cfg.Export.Measurer,
		RateLimit:       cfg.Export.RateLimit,
		RateWindow:      cfg.Export.RateWindow,
		Logger:          logger,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("addr", address), slog.String("backend", string(backend)))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
