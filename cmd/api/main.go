package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/parancompany/navycamp-api/api/swagger"
	"github.com/parancompany/navycamp-api/internal/handler"
	"github.com/parancompany/navycamp-api/internal/middleware"
	"github.com/parancompany/navycamp-api/internal/repository"
	"github.com/parancompany/navycamp-api/internal/service"
	"github.com/parancompany/navycamp-api/pkg/cache"
	"github.com/parancompany/navycamp-api/pkg/config"
	"github.com/parancompany/navycamp-api/pkg/database"
	"github.com/parancompany/navycamp-api/pkg/logger"
	"github.com/parancompany/navycamp-api/pkg/mail"
	corsmiddleware "github.com/parancompany/navycamp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/parancompany/navycamp-api/pkg/middleware/requestid"
	"github.com/parancompany/navycamp-api/pkg/storage"
)

// @title 필승해군캠프 API
// @version 1.0.0
// @description Scheduling backend for the Pilseung Navy Camp training program
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New()

	requestRepo := repository.NewRequestRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	userRepo := repository.NewUserRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, redisClient != nil)

	var sender mail.Sender
	if cfg.Notifications.Enabled {
		sender, err = mail.NewSMTPSender(cfg.SMTP)
		if err != nil {
			logr.Sugar().Warnw("smtp misconfigured, notifications disabled", "error", err)
		}
	}
	notificationSvc := service.NewNotificationService(sender, metricsSvc, cfg.Notifications, logr)
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	requestSvc := service.NewRequestService(requestRepo, instructorRepo, notificationSvc, cacheSvc, metricsSvc, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, cfg.JWT)
	venueSvc := service.NewVenueService(venueRepo, validate, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, validate, logr)
	noticeSvc := service.NewNoticeService(noticeRepo, validate, logr)

	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, notificationSvc),
		Requests:    handler.NewRequestHandler(requestSvc),
		Venues:      handler.NewVenueHandler(venueSvc),
		Instructors: handler.NewInstructorHandler(instructorSvc),
		Notices:     handler.NewNoticeHandler(noticeSvc),
	}

	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc := service.NewExportService(requestRepo, store, signer, logr)
		handlers.Exports = handler.NewExportHandler(exportSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
