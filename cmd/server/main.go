package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/studycollab/collab-back/internal/api"
	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/config"
	"github.com/studycollab/collab-back/internal/cron"
	"github.com/studycollab/collab-back/internal/db"
	"github.com/studycollab/collab-back/internal/logger"
	"github.com/studycollab/collab-back/internal/payment"
)

func main() {
	envLoaded := godotenv.Load() == nil

	cfg := config.Load()

	log := logger.Init(cfg.Environment)
	defer log.Sync()

	if !envLoaded {
		zap.S().Info("no .env file found, using system env")
	}
	if cfg.JWTSecret == "" {
		zap.S().Fatal("JWT_SECRET is required")
	}

	db.InitDB(cfg.DBUrl)

	rc, err := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		zap.S().Fatalw("redis connection failed", "error", err)
	}
	defer rc.Close()

	intents := payment.NewStripeClient(cfg.StripeSecretKey)

	r := api.SetupRouter(cfg, intents, rc)

	jobs := cron.StartJobs(rc)
	defer jobs.Stop()

	zap.S().Infow("server running", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.S().Fatalw("server stopped", "error", err)
	}
}
