package main

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"velora.id/homeserve/internal/bootstrap"
	"velora.id/homeserve/internal/config"
	"velora.id/homeserve/internal/logger"
	"velora.id/homeserve/internal/server"
	"velora.id/homeserve/pkg/database"
	"velora.id/homeserve/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger.Setup(cfg.AppEnv)

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		logrus.Fatalf("failed to seed roles: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			logrus.Fatalf("failed to seed admin user: %v", err)
		}
	}

	// Redis is optional; without it reads skip the cache.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		logrus.Warn("REDIS_URL not set, read caching disabled")
	}

	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPass)

	srv := server.NewServer(cfg, db, redisClient, mail)
	if err := srv.Run(); err != nil {
		logrus.Fatalf("server exited with error: %v", err)
	}
}
