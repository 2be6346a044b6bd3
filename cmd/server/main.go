package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/handlers"
	"github.com/workbench-ml/inference-bridge/internal/adapters/primary/http/middleware"
	"github.com/workbench-ml/inference-bridge/internal/adapters/secondary/glue"
	"github.com/workbench-ml/inference-bridge/internal/adapters/secondary/postgres"
	"github.com/workbench-ml/inference-bridge/internal/adapters/secondary/s3store"
	"github.com/workbench-ml/inference-bridge/internal/adapters/secondary/sagemaker"
	"github.com/workbench-ml/inference-bridge/internal/config"
	"github.com/workbench-ml/inference-bridge/internal/core/ports/output"
	"github.com/workbench-ml/inference-bridge/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx := context.Background()

	// AWS config (credentials from the SDK default chain)
	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.AWS.Region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.AWS.Region))
	}
	if cfg.AWS.Profile != "" {
		awsOpts = append(awsOpts, awsconfig.WithSharedConfigProfile(cfg.AWS.Profile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	// Run History Repository (Optional - based on config)
	var runRepo ports.InferenceRunRepository
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Fatalf("parse db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping db: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("ensure db schema: %v", err)
		}
		runRepo = postgres.NewInferenceRunRepository(pool)
		log.Info("run history enabled")
	} else {
		log.Info("run history disabled")
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	invoker := sagemaker.NewInvoker(awsCfg, &cfg.Invoke)
	catalogClient := glue.NewCatalogClient(awsCfg)

	tableStore, err := s3store.NewTableStore(ctx, awsCfg, &cfg.Store)
	if err != nil {
		log.Fatalf("init table store: %v", err)
	}

	// Core Services (Application Layer)
	inferenceSvc := services.NewInferenceService(invoker, runRepo)
	storeSvc := services.NewStoreService(tableStore)
	catalogSvc := services.NewCatalogService(catalogClient)

	// Make sure the default catalog database exists; registration targets
	// it unless the caller names another one.
	if cfg.Catalog.Database != "" {
		if err := catalogSvc.EnsureDatabase(ctx, cfg.Catalog.Database); err != nil {
			log.WithError(err).WithField("database", cfg.Catalog.Database).
				Warn("ensure default catalog database failed")
		}
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(inferenceSvc, storeSvc, catalogSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/inference-bridge")
	h.RegisterRoutes(api)

	// Health check with optional DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
