package jobs

import (
	"log/slog"
	"time"

	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const logRetentionDays = 30

// StartCleanup schedules the nightly purge of expired refresh tokens, stale
// login tickets and old system logs. Returns the scheduler so main can stop
// it on shutdown.
func StartCleanup(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		purgeRefreshTokens(db)
		purgeLoginTickets(db)
		purgeSystemLogs(db)
	})
	if err != nil {
		slog.Error("failed to schedule cleanup job", "error", err)
		return c
	}

	c.Start()
	slog.Info("cleanup jobs scheduled", "schedule", "@daily")
	return c
}

func purgeRefreshTokens(db *gorm.DB) {
	result := db.Where("expires_at < ? OR revoked = true", time.Now()).
		Delete(&models.RefreshToken{})
	report("refresh tokens", result)
}

func purgeLoginTickets(db *gorm.DB) {
	result := db.Where("expires_at < ? OR consumed = true", time.Now()).
		Delete(&models.LoginTicket{})
	report("login tickets", result)
}

func purgeSystemLogs(db *gorm.DB) {
	cutoff := time.Now().AddDate(0, 0, -logRetentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	report("system logs", result)
}

func report(what string, result *gorm.DB) {
	if result.Error != nil {
		slog.Error("cleanup failed", "target", what, "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("cleanup completed", "target", what, "deleted", result.RowsAffected)
	}
}
