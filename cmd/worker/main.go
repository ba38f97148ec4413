package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipshift/shorts-ms-go/internal/cache"
	"github.com/clipshift/shorts-ms-go/internal/config"
	"github.com/clipshift/shorts-ms-go/internal/db"
	workerHandler "github.com/clipshift/shorts-ms-go/internal/handler/worker"
	"github.com/clipshift/shorts-ms-go/internal/media"
	"github.com/clipshift/shorts-ms-go/internal/port"
	"github.com/clipshift/shorts-ms-go/internal/repository/mariadb"
	"github.com/clipshift/shorts-ms-go/internal/storage"
	"github.com/clipshift/shorts-ms-go/internal/task"
	videoSvc "github.com/clipshift/shorts-ms-go/internal/usecase/video"
	"github.com/hibiken/asynq"

	"github.com/clipshift/shorts-ms-go/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	videoRepo := mariadb.NewVideoRepository(database.DB)
	shortRepo := mariadb.NewShortRepository(database.DB)
	settingsRepo := mariadb.NewSettingsRepository(database.DB)
	captionRepo := mariadb.NewCaptionRepository(database.DB)
	failureRepo := mariadb.NewSegmentFailureRepository(database.DB)

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)

	prober := media.NewProber(cfg.FFmpegTimeout)
	detector := media.NewSceneDetector(cfg.FFmpegTimeout)
	transcoder := media.NewTranscoder(cfg.FFmpegTimeout)
	thumbnailer := media.NewThumbnailer(cfg.FFmpegTimeout)
	audio := media.NewAudioExtractor(cfg.FFmpegTimeout)
	transcriber := media.NewPlaceholderTranscriber()

	processSvc := videoSvc.NewVideoProcessor(
		videoRepo, shortRepo, settingsRepo, failureRepo,
		strg, ca,
		prober, detector, transcoder, thumbnailer,
		db.NewUUID, cfg.Bucket, cfg.ThumbnailCount,
	)
	captionsSvc := videoSvc.NewCaptionGenerator(
		videoRepo, shortRepo, captionRepo,
		strg, audio, transcriber,
		db.NewUUID, cfg.Bucket,
	)
	requeueSvc := videoSvc.NewStuckRequeuer(videoRepo, dispatcher)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessVideo, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessVideoPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessVideoHandler(ctx, p, processSvc)
	})
	mux.HandleFunc(task.TypeGenerateCaptions, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseGenerateCaptionsPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.GenerateCaptionsHandler(ctx, p, captionsSvc)
	})

	go requeueLoop(ctx, requeueSvc)

	runWorker(ctx, mux, cfg, database)
}

// requeueLoop periodically rescues videos stranded in PROCESSING by a worker
// that died mid-run.
func requeueLoop(ctx context.Context, svc port.StuckRequeuer) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if err := svc.RequeueStuck(ctx); err != nil {
			logger.Warnf(ctx, "requeue pass failed: %v", err)
		}
	}
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
