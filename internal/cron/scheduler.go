package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/studycollab/collab-back/internal/cache"
	"github.com/studycollab/collab-back/internal/db"
)

// StartJobs schedules the background jobs and returns the running cron
// so the caller can stop it on shutdown.
func StartJobs(rc *cache.Cache) *cron.Cron {
	c := cron.New()

	c.AddFunc("@daily", func() {
		zap.S().Info("running stats snapshot job")

		stats, err := db.GetUserStats(context.Background())
		if err != nil {
			zap.S().Errorw("stats snapshot failed", "error", err)
			return
		}
		if err := rc.SetStats(context.Background(), stats); err != nil {
			zap.S().Errorw("stats cache warm failed", "error", err)
			return
		}

		zap.S().Infow("stats snapshot saved",
			"users", stats.TotalUsers,
			"sessions", stats.TotalSessions,
			"bookings", stats.TotalBookings)
	})

	c.Start()
	return c
}
