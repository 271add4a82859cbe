package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/helpdeskops/perf-api/api/swagger"
	"github.com/helpdeskops/perf-api/internal/handler"
	"github.com/helpdeskops/perf-api/internal/middleware"
	"github.com/helpdeskops/perf-api/internal/repository"
	"github.com/helpdeskops/perf-api/internal/service"
	"github.com/helpdeskops/perf-api/pkg/cache"
	"github.com/helpdeskops/perf-api/pkg/config"
	"github.com/helpdeskops/perf-api/pkg/database"
	"github.com/helpdeskops/perf-api/pkg/logger"
	corsmiddleware "github.com/helpdeskops/perf-api/pkg/middleware/cors"
	reqidmiddleware "github.com/helpdeskops/perf-api/pkg/middleware/requestid"
)

// @title Helpdesk Performance API
// @version 1.0.0
// @description Monthly agent performance reporting over the legacy helpdesk database
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Performance.Timezone)
	if err != nil {
		logr.Sugar().Fatalw("invalid timezone", "timezone", cfg.Performance.Timezone, "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsService := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Performance.PointTableCacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, point table cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Performance.PointTableCacheTTL, logr, cacheRepo != nil)

	agentRepo := repository.NewAgentRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	subcatRepo := repository.NewSubCategoryRepository(db)

	validate := validator.New()
	policy := service.PolicyFromConfig(cfg.Performance)

	authService := service.NewAuthService(agentRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	performanceService := service.NewPerformanceService(service.PerformanceServiceParams{
		Agents:        agentRepo,
		Tickets:       ticketRepo,
		SubCategories: subcatRepo,
		Cache:         cacheService,
		Metrics:       metricsService,
		Logger:        logr,
		Policy:        policy,
		Location:      loc,
	})
	rankingService := service.NewRankingService(service.RankingServiceParams{
		Tickets:       ticketRepo,
		SubCategories: subcatRepo,
		Cache:         cacheService,
		Metrics:       metricsService,
		Logger:        logr,
		Policy:        policy,
		Location:      loc,
	})

	authHandler := handler.NewAuthHandler(authService)
	performanceHandler := handler.NewPerformanceHandler(performanceService, rankingService, validate)
	agentHandler := handler.NewAgentHandler(performanceService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.JWT(authService), middleware.ReportAccess())
	performance := protected.Group("/performance")
	performance.GET("/scores-agents", performanceHandler.ScoresAgents)
	performance.GET("/tickets-repartis-par-agent", performanceHandler.Distribution)
	performance.GET("/tickets-realises-par-mois", performanceHandler.Monthly)
	performance.GET("/classement", performanceHandler.Classement)
	performance.GET("/chercher", performanceHandler.Chercher)
	performance.GET("/export", performanceHandler.Export)
	protected.GET("/agents/stats", agentHandler.Stats)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
