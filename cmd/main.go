package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/todolist-auth/config"
	"github.com/oksasatya/todolist-auth/internal/container"
	pginfra "github.com/oksasatya/todolist-auth/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/todolist-auth/internal/interface/http"
	"github.com/oksasatya/todolist-auth/internal/interface/middleware"
	"github.com/oksasatya/todolist-auth/internal/router"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	// RabbitMQ email queue; registration still works without it, mails are just not sent
	if cfg.MailSendEnabled {
		queue, err := helpers.NewRabbitQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; activation emails disabled", err, nil)
		} else {
			defer queue.Close()
			container.SetEmailQueue(queue)
		}
	}

	// Elasticsearch for the admin account search
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			helpers.LogError(logger, "elasticsearch client init failed; account search disabled", err, nil)
		} else {
			container.SetES(es)
		}
	}

	validation.Init()

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSessionSecret, cfg.SessionTTL))
	container.SetFlash(helpers.NewFlashSigner(cfg.FlashSecret))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) > 0 {
		r.Use(cors.New(corsCfg))
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	handlers.LoadViews(r)

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
