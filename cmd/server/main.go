package main

import (
	"context" // context package is needed for Redis operations

	"travel_api/internal/config" // Custom package for configuration
	"travel_api/internal/db"     // Custom package for the database connection
	"travel_api/internal/events" // Custom package for domain events
	"travel_api/internal/router" // Custom package for routes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Connect(cfg.DSN(), !cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Redis is optional, listings are served uncached without it
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	publisher := events.NewAMQP(cfg.RabbitMQURL)
	if p, ok := publisher.(*events.AMQP); ok {
		defer p.Close()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.New(router.Deps{
		DB:             gdb,
		Redis:          redisClient,
		Publisher:      publisher,
		JWTSecret:      cfg.JWTSecret,
		ToursPerPage:   cfg.ToursPerPage,
		TravelsPerPage: cfg.TravelsPerPage,
		CacheTTL:       cfg.CacheTTL,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
