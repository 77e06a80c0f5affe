package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/SheetGrader/src/config"
	"www.github.com/Wanderer0074348/SheetGrader/src/evaluator"
	"www.github.com/Wanderer0074348/SheetGrader/src/handlers"
	"www.github.com/Wanderer0074348/SheetGrader/src/logging"
	"www.github.com/Wanderer0074348/SheetGrader/src/middleware"
	"www.github.com/Wanderer0074348/SheetGrader/src/session"
)

func init() {
	logging.Init()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using system environment variables")
	} else {
		log.Info("loaded .env file")
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	log.Info("config loaded")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	cancelPing()
	log.Info("redis connected")

	engine, err := evaluator.New(&cfg.Evaluator)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize evaluator")
	}
	log.WithFields(log.Fields{
		"provider": engine.Name(),
		"model":    engine.Model(),
	}).Info("evaluator ready")

	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)
	cacheManager := session.NewManager()

	sessionMiddleware := middleware.NewSessionMiddleware(
		sessionStore,
		cacheManager,
		int(cfg.Session.TTL.Seconds()),
		os.Getenv("COOKIE_SECURE") == "true",
	)

	evaluationHandler := handlers.NewEvaluationHandler(
		engine,
		cacheManager,
		sessionStore,
		cfg.Upload.MaxSizeBytes,
		cfg.Evaluator.Timeout,
	)
	sessionHandler := handlers.NewSessionHandler(sessionStore, cacheManager)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", evaluationHandler.HealthCheck)

		authed := v1.Group("")
		authed.Use(sessionMiddleware.EnsureSession())
		{
			authed.POST("/evaluate", evaluationHandler.HandleEvaluate)
			authed.GET("/evaluations", evaluationHandler.HandleListEvaluations)
			authed.GET("/evaluations/:key/report", evaluationHandler.HandleGetReport)
			authed.POST("/cache/clear", evaluationHandler.HandleClearCache)
			authed.GET("/session", sessionHandler.HandleGetSession)
			authed.DELETE("/session", sessionHandler.HandleEndSession)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	log.WithField("port", cfg.Server.Port).Info("SheetGrader running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

func corsMiddleware() gin.HandlerFunc {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	var allowedOrigins []string

	if allowedOriginsEnv != "" {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
		for i := range allowedOrigins {
			allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
		}
	} else {
		// Default for local development
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Requests without an Origin header (curl, health checks) pass through.
		if origin == "" {
			c.Next()
			return
		}

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		if !allowed {
			c.AbortWithStatus(403)
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
