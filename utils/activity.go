package utils

import (
	"github.com/trovi/trovi-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ActivityLogger appends audit records for mutations on tracked entities.
// Logging is best-effort: failures are written to the diagnostic log and
// never surfaced to the request that triggered them.
type ActivityLogger struct {
	DB *gorm.DB
}

func (l *ActivityLogger) Log(userID uint, activityType string, itemID uint, itemType string) {
	activity := models.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		ItemID:       itemID,
		ItemType:     itemType,
	}

	if err := l.DB.Create(&activity).Error; err != nil {
		zap.L().Error("Failed to log user activity",
			zap.Error(err),
			zap.Uint("userId", userID),
			zap.String("activityType", activityType),
			zap.String("itemType", itemType),
		)
	}
}
