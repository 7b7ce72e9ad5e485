package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/msa-adp-api/api/swagger"
	"github.com/noah-isme/msa-adp-api/internal/handler"
	"github.com/noah-isme/msa-adp-api/internal/middleware"
	"github.com/noah-isme/msa-adp-api/internal/repository"
	"github.com/noah-isme/msa-adp-api/internal/service"
	"github.com/noah-isme/msa-adp-api/pkg/cache"
	"github.com/noah-isme/msa-adp-api/pkg/config"
	"github.com/noah-isme/msa-adp-api/pkg/database"
	"github.com/noah-isme/msa-adp-api/pkg/jobs"
	"github.com/noah-isme/msa-adp-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/msa-adp-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/msa-adp-api/pkg/middleware/requestid"
	"github.com/noah-isme/msa-adp-api/pkg/storage"
)

// @title MSA ADP API
// @version 0.1.0
// @description Timetable reconciliation service for the music school admin console
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	courseTypes := repository.NewCourseTypeRepository(db)
	courseCodes := repository.NewCourseCodeRepository(db)
	slots := repository.NewScheduleSlotRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	holidays := repository.NewHolidayRepository(db)
	teachers := repository.NewTeacherRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	catalogSvc := service.NewCatalogService(courseTypes, courseCodes, slots, teachers, cacheRepo, validate, logr, cfg.Catalog.OptionCacheTTL)
	balanceSvc := service.NewBalanceService(enrollments, holidays, logr)
	timetableSvc := service.NewTimetableService(slots, courseCodes, enrollments, holidays, teachers, cacheRepo, metricsSvc, logr, cfg.Timetable.ViewCacheTTL)
	orchestrator := service.NewOrchestrator(timetableSvc, metricsSvc, logr)
	teacherSvc := service.NewTeacherService(teachers, logr)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var exportSvc *service.ExportService
	var exportQueue *jobs.Queue
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportQueue = jobs.NewQueue("exports", jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		exportSvc = service.NewExportService(timetableSvc, exportQueue, files, signer, validate, logr, cfg.APIPrefix, cfg.Exports.ResultTTL, cfg.Exports.CleanupInterval)
		exportQueue.Start(rootCtx)
		exportSvc.StartCleanup(rootCtx)
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

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	courseTypeHandler := handler.NewCourseTypeHandler(catalogSvc)
	courseCodeHandler := handler.NewCourseCodeHandler(catalogSvc)
	slotHandler := handler.NewScheduleSlotHandler(catalogSvc)
	timetableHandler := handler.NewTimetableHandler(orchestrator, balanceSvc, timetableSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.OrgScope())
	{
		catalog := api.Group("/catalog")
		{
			catalog.GET("/options", slotHandler.Options)

			catalog.GET("/course-types", courseTypeHandler.List)
			catalog.POST("/course-types", courseTypeHandler.Create)
			catalog.GET("/course-types/:id", courseTypeHandler.Get)
			catalog.PUT("/course-types/:id", courseTypeHandler.Update)
			catalog.PATCH("/course-types/:id/active", courseTypeHandler.Toggle)

			catalog.GET("/course-codes", courseCodeHandler.List)
			catalog.POST("/course-codes", courseCodeHandler.Create)
			catalog.GET("/course-codes/:id", courseCodeHandler.Get)
			catalog.PUT("/course-codes/:id", courseCodeHandler.Update)
			catalog.PATCH("/course-codes/:id/active", courseCodeHandler.Toggle)

			catalog.GET("/slots", slotHandler.List)
			catalog.POST("/slots", slotHandler.Create)
			catalog.GET("/slots/:id", slotHandler.Get)
			catalog.PUT("/slots/:id", slotHandler.Update)
			catalog.PATCH("/slots/:id/active", slotHandler.Toggle)
			catalog.DELETE("/slots/:id", slotHandler.Delete)
		}

		api.GET("/timetable", timetableHandler.View)
		api.POST("/timetable/refresh", timetableHandler.Refresh)
		api.GET("/students/balances", timetableHandler.Balances)
		api.GET("/holidays", timetableHandler.Holidays)
		api.GET("/teachers", teacherHandler.List)

		if exportSvc != nil {
			exportHandler := handler.NewExportHandler(exportSvc)
			api.POST("/exports", exportHandler.Submit)
			api.GET("/exports/:id", exportHandler.Status)
		}
	}

	// Download links are signed, so they bypass the org-scope middleware.
	if exportSvc != nil {
		exportHandler := handler.NewExportHandler(exportSvc)
		r.GET(cfg.APIPrefix+"/exports/download/:token", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown", "error", err)
	}
	if exportQueue != nil {
		exportQueue.Stop()
	}
	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("redis close", "error", err)
	}
}
