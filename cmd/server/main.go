package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	"taployalty/internal/config"
	"taployalty/internal/handlers"
	"taployalty/internal/middleware"
	"taployalty/internal/repositories/mongodb"
	"taployalty/internal/services"
	"taployalty/pkg/cache"
	"taployalty/pkg/database"
	"taployalty/pkg/logger"
	"taployalty/pkg/storage"
	"taployalty/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	timezone, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		appLogger.WithError(err).Warnf("unknown timezone %q, falling back to UTC", cfg.App.Timezone)
		timezone = time.UTC
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis: optional, repositories fall back to uncached reads
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	authClient, err := newFirebaseAuth(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to initialize Firebase auth: %v", err)
	}

	storageProvider, err := newStorageProvider(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Repositories
	var repoCache mongodb.CacheService
	if redisCache != nil {
		repoCache = redisCache
	}
	rewardRepo := mongodb.NewRewardRepository(db.Database, repoCache, appLogger)
	programRepo := mongodb.NewProgramRepository(db.Database, repoCache)
	customerRepo := mongodb.NewCustomerRepository(db.Database, repoCache)
	transactionRepo := mongodb.NewTransactionRepository(db.Database)
	redemptionRepo := mongodb.NewRedemptionRepository(db.Database)
	noteRepo := mongodb.NewNoteRepository(db.Database)

	// Services
	rewardService := services.NewRewardService(rewardRepo, timezone, appLogger)
	programService := services.NewProgramService(programRepo, appLogger)
	activityService := services.NewActivityService(transactionRepo, redemptionRepo, customerRepo, timezone, appLogger)
	customerService := services.NewCustomerService(customerRepo)
	noteService := services.NewNoteService(noteRepo, storageProvider, appLogger)
	assistantService := services.NewAssistantService(cfg.Assistant.KnowledgeBaseURL, cfg.Assistant.Timeout, appLogger)

	// Handlers
	rewardHandler := handlers.NewRewardHandler(rewardService)
	programHandler := handlers.NewProgramHandler(programService)
	activityHandler := handlers.NewActivityHandler(activityService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	noteHandler := handlers.NewNoteHandler(noteService)
	assistantHandler := handlers.NewAssistantHandler(assistantService, cfg.Assistant.ProxyTargetURL, cfg.Assistant.Timeout, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	if redisCache != nil {
		router.Use(middleware.RateLimitMiddleware(redisCache, cfg.Security.RateLimitPerMinute, appLogger))
	}

	open := router.Group("/api/v1")
	authed := router.Group("/api/v1")
	authed.Use(middleware.AuthRequired(authClient))
	{
		routes.SetupRewardRoutes(authed, rewardHandler)
		routes.SetupProgramRoutes(authed, programHandler)
		routes.SetupActivityRoutes(authed, activityHandler, customerHandler)
		routes.SetupNoteRoutes(authed, noteHandler)
		routes.SetupAssistantRoutes(authed, open, assistantHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := db.Ping(); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func newFirebaseAuth(cfg *config.Config) (*auth.Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, err
	}

	return app.Auth(ctx)
}

func newStorageProvider(cfg *config.Config) (storage.StorageProvider, error) {
	ctx := context.Background()

	switch cfg.Storage.Provider {
	case "gcs", "gcp":
		return storage.NewGCPStorage(
			ctx,
			cfg.Storage.GCP.Bucket,
			cfg.Storage.GCP.CredentialsFile,
			cfg.Storage.GCP.CDNDomain,
		)
	case "s3", "aws":
		return storage.NewAWSS3Storage(
			ctx,
			cfg.Storage.AWS.Region,
			cfg.Storage.AWS.Bucket,
			cfg.Storage.AWS.CDNDomain,
		)
	default:
		return storage.NewLocalStorage(
			cfg.Storage.Local.BasePath,
			cfg.Storage.Local.BaseURL,
		)
	}
}
