package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuskeep/outpass-api/api/swagger"
	"github.com/campuskeep/outpass-api/internal/handler"
	"github.com/campuskeep/outpass-api/internal/middleware"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/repository"
	"github.com/campuskeep/outpass-api/internal/service"
	"github.com/campuskeep/outpass-api/pkg/cache"
	"github.com/campuskeep/outpass-api/pkg/config"
	"github.com/campuskeep/outpass-api/pkg/database"
	"github.com/campuskeep/outpass-api/pkg/logger"
	corsmiddleware "github.com/campuskeep/outpass-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuskeep/outpass-api/pkg/middleware/requestid"
	"github.com/campuskeep/outpass-api/pkg/storage"
)

// @title Campus Outpass API
// @version 1.0.0
// @description Outpass lifecycle and role-scoped campus access management
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var cacheClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		cacheClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
			cacheClient = nil
		} else {
			defer cacheClient.Close()
		}
	}

	archive, err := storage.NewArchive(cfg.Export.Dir)
	if err != nil {
		logr.Sugar().Warnw("report archive unavailable", "error", err)
		archive = nil
	} else if removed, err := archive.Prune(cfg.Export.Retention); err != nil {
		logr.Sugar().Warnw("report archive prune failed", "error", err)
	} else if len(removed) > 0 {
		logr.Sugar().Infow("stale reports pruned", "count", len(removed))
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	outpassRepo := repository.NewOutpassRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	outpassSvc := service.NewOutpassService(outpassRepo, accountRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(outpassRepo, userRepo, accountRepo, cacheClient, cfg.Dashboard.CacheTTL, metricsSvc, logr)
	accountSvc := service.NewAccountService(userRepo, accountRepo, validate, logr)
	reportSvc := service.NewReportService(outpassRepo, archive, logr)

	authHandler := handler.NewAuthHandler(authSvc, accountSvc)
	profileHandler := handler.NewProfileHandler(accountSvc)
	residentHandler := handler.NewResidentHandler(outpassSvc, dashboardSvc, metricsSvc)
	supervisorHandler := handler.NewSupervisorHandler(outpassSvc, dashboardSvc, metricsSvc)
	officerHandler := handler.NewOfficerHandler(outpassSvc, dashboardSvc, metricsSvc)
	adminHandler := handler.NewAdminHandler(accountSvc, dashboardSvc, reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, cacheClient)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/password-reset", authHandler.ResetPassword)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.GET("/me", profileHandler.Me)
	authed.PUT("/me", profileHandler.UpdateMe)

	resident := authed.Group("/resident")
	resident.Use(middleware.RequireRoles(models.RoleResident))
	resident.POST("/outpasses", residentHandler.Create)
	resident.GET("/outpasses", residentHandler.List)
	resident.GET("/outpasses/:id", residentHandler.Get)
	resident.PUT("/outpasses/:id", residentHandler.Update)
	resident.POST("/outpasses/:id/cancel", residentHandler.Cancel)
	resident.GET("/dashboard", residentHandler.Dashboard)

	supervisor := authed.Group("/supervisor")
	supervisor.Use(middleware.RequireRoles(models.RoleSupervisor))
	supervisor.GET("/outpasses", supervisorHandler.List)
	supervisor.GET("/outpasses/:id", supervisorHandler.Get)
	supervisor.POST("/outpasses/:id/review", supervisorHandler.Review)
	supervisor.GET("/dashboard", supervisorHandler.Dashboard)
	supervisor.GET("/statistics", supervisorHandler.Statistics)

	officer := authed.Group("/officer")
	officer.Use(middleware.RequireRoles(models.RoleOfficer))
	officer.GET("/outpasses/approved", officerHandler.Approved)
	officer.GET("/outpasses/active", officerHandler.Active)
	officer.GET("/outpasses/:id", officerHandler.Get)
	officer.POST("/outpasses/:id/departure", officerHandler.Departure)
	officer.POST("/outpasses/:id/return", officerHandler.Return)
	officer.GET("/dashboard", officerHandler.Dashboard)
	officer.GET("/today", officerHandler.Today)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/accounts", adminHandler.ListAccounts)
	admin.POST("/accounts", adminHandler.CreateAccount)
	admin.GET("/accounts/:id", adminHandler.GetAccount)
	admin.PUT("/accounts/:id", adminHandler.UpdateAccount)
	admin.DELETE("/accounts/:id", adminHandler.DeleteAccount)
	admin.POST("/accounts/:id/status", adminHandler.SetAccountStatus)
	admin.PUT("/accounts/:id/tier", adminHandler.SetTier)
	admin.POST("/password-reset", adminHandler.ResetPassword)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/me", adminHandler.Me)
	admin.GET("/reports/outpasses", adminHandler.ExportReport)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"cache", cacheClient != nil,
		"cache_ttl", cfg.Dashboard.CacheTTL.String())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
