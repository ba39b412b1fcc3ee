package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trovi/trovi-api/config"
	"github.com/trovi/trovi-api/controllers"
	"github.com/trovi/trovi-api/initializers"
	"github.com/trovi/trovi-api/routes"
	"github.com/trovi/trovi-api/storage"
	"github.com/trovi/trovi-api/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := initializers.ConnectToDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := initializers.SyncDatabase(db); err != nil {
		logger.Fatal("Failed to sync database", zap.Error(err))
	}

	store, err := storage.NewS3(cfg)
	if err != nil {
		logger.Fatal("Failed to configure object storage", zap.Error(err))
	}

	mailer := utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail)
	activity := &utils.ActivityLogger{DB: db}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := controllers.NewAuthController(db, mailer, cfg)
	admin := controllers.NewAdminController(db, store, activity)
	customer := controllers.NewCustomerController(db, activity)
	shared := controllers.NewSharedController(db, store, activity)
	newsLetter := controllers.NewNewsLetterController(db)

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, auth)
	routes.AdminRoutes(server, admin, cfg.JWTSecret)
	routes.OrderRoutes(server, customer, cfg.JWTSecret)
	routes.SharedRoutes(server, shared, cfg.JWTSecret)
	routes.NewsLetterRoutes(server, newsLetter)

	if err := server.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
