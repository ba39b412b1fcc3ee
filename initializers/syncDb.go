package initializers

import (
	"github.com/trovi/trovi-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.NewsLetter{},
		&models.UserActivity{},
	)
	if err != nil {
		return err
	}
	zap.L().Info("Database synced successfully.")
	return nil
}
