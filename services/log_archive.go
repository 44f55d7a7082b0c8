package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"markbook_go/config"
	"markbook_go/database"
	"markbook_go/models"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LogArchiveService moves cached activity logs from Redis into the database
// and prunes rows past the retention window.
type LogArchiveService struct {
	redisClient *redis.Client
}

// NewLogArchiveService creates a new service instance
func NewLogArchiveService() *LogArchiveService {
	return &LogArchiveService{
		redisClient: database.GetRedisClient(),
	}
}

// FlushCachedLogsToDatabase moves logs from the Redis cache to the database
func (las *LogArchiveService) FlushCachedLogsToDatabase() error {
	if las.redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	ctx := context.Background()
	cutoffTime := time.Now().Add(-1 * time.Hour)

	// Entries older than the cutoff are due for persistence
	dueLogs, err := las.redisClient.ZRangeByScore(ctx, "logs:queue", &redis.ZRangeBy{
		Min: "0",
		Max: fmt.Sprintf("%d", cutoffTime.Unix()),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to get queued logs: %v", err)
	}

	logrus.Infof("Processing %d cached activity logs", len(dueLogs))

	var processedCount int
	var errorCount int

	for _, logKey := range dueLogs {
		logData, err := las.redisClient.Get(ctx, logKey).Result()
		if err != nil {
			if err != redis.Nil {
				logrus.WithError(err).Errorf("Failed to get log data for key: %s", logKey)
				errorCount++
			}
			continue
		}

		var activityLog models.ActivityLog
		if err := json.Unmarshal([]byte(logData), &activityLog); err != nil {
			logrus.WithError(err).Errorf("Failed to unmarshal log data for key: %s", logKey)
			errorCount++
			continue
		}

		if err := database.DB.Create(&activityLog).Error; err != nil {
			logrus.WithError(err).Error("Failed to save activity log to database")
			errorCount++
			continue
		}

		pipeline := las.redisClient.Pipeline()
		pipeline.Del(ctx, logKey)
		pipeline.ZRem(ctx, "logs:queue", logKey)
		if _, err := pipeline.Exec(ctx); err != nil {
			logrus.WithError(err).Errorf("Failed to remove log from cache: %s", logKey)
		}

		processedCount++
	}

	logrus.Infof("Flushed %d logs to database, %d errors", processedCount, errorCount)
	return nil
}

// PruneOldLogs deletes activity logs older than the retention window
func (las *LogArchiveService) PruneOldLogs(daysOld int) error {
	if daysOld < 7 {
		return fmt.Errorf("minimum retention is 7 days for safety")
	}

	cutoffDate := time.Now().AddDate(0, 0, -daysOld)

	res := database.DB.Where("created_at < ?", cutoffDate).Delete(&models.ActivityLog{})
	if res.Error != nil {
		return fmt.Errorf("failed to prune activity logs: %v", res.Error)
	}

	logrus.Infof("Pruned %d activity logs older than %d days", res.RowsAffected, daysOld)
	return nil
}

// StartLogMaintenanceScheduler runs flush and prune on a fixed schedule:
// a flush every hour, a prune pass nightly.
func (las *LogArchiveService) StartLogMaintenanceScheduler() *cron.Cron {
	retention := config.AppConfig.LogRetentionDays

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := las.FlushCachedLogsToDatabase(); err != nil {
			logrus.WithError(err).Warn("periodic FlushCachedLogsToDatabase failed")
		}
	})
	c.AddFunc("@midnight", func() {
		if err := las.PruneOldLogs(retention); err != nil {
			logrus.WithError(err).Warn("periodic PruneOldLogs failed")
		}
	})
	c.Start()

	// Run an initial flush so a restart doesn't strand cached entries
	go func() {
		if err := las.FlushCachedLogsToDatabase(); err != nil {
			logrus.WithError(err).Warn("initial FlushCachedLogsToDatabase failed")
		}
	}()

	return c
}
