package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-results-api/api/swagger"
	"github.com/noah-isme/sma-results-api/internal/handler"
	"github.com/noah-isme/sma-results-api/internal/middleware"
	"github.com/noah-isme/sma-results-api/internal/models"
	"github.com/noah-isme/sma-results-api/internal/repository"
	"github.com/noah-isme/sma-results-api/internal/service"
	"github.com/noah-isme/sma-results-api/pkg/cache"
	"github.com/noah-isme/sma-results-api/pkg/config"
	"github.com/noah-isme/sma-results-api/pkg/database"
	"github.com/noah-isme/sma-results-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-results-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-results-api/pkg/middleware/requestid"
)

// @title SMA Results API
// @version 1.0.0
// @description Academic result calculation, report cards and class result sheets
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var cacheRepo service.CacheRepository
	if cfg.Results.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, results cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, "results:")
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Results.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()
	studentRepo := repository.NewStudentRepository(db)
	markRepo := repository.NewMarkRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	authSvc := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
	})
	resultSvc := service.NewResultService(service.ResultServiceParams{
		Students:  studentRepo,
		Marks:     markRepo,
		Settings:  settingsRepo,
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		Config: service.ResultServiceConfig{
			PassPercentage:  cfg.Results.PassPercentage,
			MaxFailSubjects: cfg.Results.MaxFailSubjects,
			CacheTTL:        cfg.Results.CacheTTL,
		},
	})
	if _, err := resultSvc.Calculator(ctx); err != nil {
		logr.Fatal("grading rules rejected", zap.Error(err))
	}
	markSvc := service.NewMarkService(markRepo, cacheSvc, metrics, validate, logr)
	exportSvc := service.NewExportService(resultSvc, logr, nil, nil)

	resultHandler := handler.NewResultHandler(resultSvc, exportSvc)
	markHandler := handler.NewMarkHandler(markSvc)
	metricsHandler := handler.NewMetricsHandler(metrics, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher, models.RoleManager)

	api := r.Group(apiPrefix(cfg.APIPrefix))
	api.Use(middleware.JWT(authSvc))

	results := api.Group("/results")
	results.POST("/subject", resultHandler.SubjectResult)
	results.POST("/term", resultHandler.TermResult)
	results.POST("/final", resultHandler.FinalResult)
	results.POST("/report-card", resultHandler.ReportCard)

	students := api.Group("/students/:id")
	students.Use(middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), string(models.RoleManager), middleware.RoleSelf))
	students.GET("/report-card", resultHandler.StudentReportCard)
	students.GET("/report-card/export", resultHandler.ExportStudentReportCard)

	classes := api.Group("/classes/:id", staff)
	classes.GET("/results", resultHandler.ClassResults)
	classes.GET("/results/export", resultHandler.ExportClassResults)

	marks := api.Group("/marks")
	marks.GET("", staff, markHandler.List)
	marks.POST("/bulk", middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher), markHandler.BulkUpsert)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func apiPrefix(prefix string) string {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return "/api/v1"
	}
	return prefix
}
