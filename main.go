package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"atelier/config"
	_ "atelier/docs"
	"atelier/internal/cache"
	"atelier/internal/calendar"
	"atelier/internal/repository"
	"atelier/internal/service"
	"atelier/internal/storage"
	"atelier/internal/transport/rest"
	"atelier/internal/worker"
	"atelier/pkg/database"
	"atelier/pkg/logger"
)

// @title Atelier API
// @version 1.0
// @description Appointment and client management API for salons and studios

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("loading configuration failed", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("connecting to Postgres failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("running migrations failed", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("initializing S3 storage failed", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 storage initialized", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 storage is not configured, photo uploads are disabled")
	}

	repos := repository.NewRepositories(db)

	calendars := calendar.NewRegistry()
	if cfg.Calendar.GoogleCredentialsFile != "" {
		google, err := calendar.NewGoogleProvider(context.Background(), cfg.Calendar.GoogleCredentialsFile)
		if err != nil {
			log.Fatal("initializing Google calendar provider failed", zap.Error(err))
		}
		calendars.Register(google)
		log.Info("Google calendar provider registered")
	}

	var availCache *cache.AvailabilityCache
	var enqueuer *worker.Enqueuer
	var w *worker.Worker
	var scheduler *worker.Scheduler

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.CacheDB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("connecting to Redis failed", zap.Error(err))
		}
		availCache = cache.NewAvailabilityCache(redisClient, cfg.Redis.AvailabilityTTL, log)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.QueueDB,
		})
		defer asynqClient.Close()
		enqueuer = worker.NewEnqueuer(asynqClient)

		w = worker.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.QueueDB, cfg.Automation.Concurrency,
			repos, worker.NewLogNotifier(log), log)
		if err := w.Start(); err != nil {
			log.Fatal("starting automation worker failed", zap.Error(err))
		}

		scheduler = worker.NewScheduler(cfg.Automation.BirthdaySpec, repos.Client, enqueuer, log)
		if err := scheduler.Start(); err != nil {
			log.Fatal("starting birthday scheduler failed", zap.Error(err))
		}

		log.Info("automation enabled", zap.String("redis", cfg.Redis.Addr))
	} else {
		log.Warn("Redis is not configured, caching and automation are disabled")
	}

	deps := service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Cache:       availCache,
		Calendars:   calendars,
	}
	if enqueuer != nil {
		deps.Enqueuer = enqueuer
	}
	services := service.NewServices(deps)

	handler := rest.NewHandler(services, log, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("starting server failed", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}
	if w != nil {
		w.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("stopping server failed", zap.Error(err))
	}

	log.Info("server stopped")
}
