// Package config reads environment configuration for the API. A .env file is
// loaded when present, then viper binds the individual variables and applies
// defaults so the struct handed to the rest of the app is fully populated.
package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	v "github.com/spf13/viper"
)

type Config struct {
	Port           string
	DatabaseDSN    string
	JWTSecret      string
	AppBaseURL     string
	AllowedOrigins []string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string

	AWSRegion          string
	AWSBucket          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

func Load() (*Config, error) {
	// Missing .env is fine, variables may come from the real environment.
	_ = godotenv.Load()

	v.AutomaticEnv()

	v.BindEnv("port", "PORT")
	v.BindEnv("database_dsn", "DATABASE_DSN")
	v.BindEnv("jwt_secret", "SECRET")
	v.BindEnv("app_base_url", "APP_BASE_URL")
	v.BindEnv("allowed_origins", "ALLOWED_ACCESS")

	v.BindEnv("smtp_host", "SMTP_HOST")
	v.BindEnv("smtp_port", "SMTP_PORT")
	v.BindEnv("smtp_username", "EMAIL_USERNAME")
	v.BindEnv("smtp_password", "EMAIL_PASSWORD")
	v.BindEnv("from_email", "FROM_EMAIL")

	v.BindEnv("aws_region", "AWS_REGION")
	v.BindEnv("aws_bucket", "AWS_BUCKET")
	v.BindEnv("aws_access_key_id", "AWS_ACCESS_KEY_ID")
	v.BindEnv("aws_secret_access_key", "AWS_SECRET_ACCESS_KEY")

	v.SetDefault("port", "4000")
	v.SetDefault("app_base_url", "http://localhost:4000")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "465")
	v.SetDefault("allowed_origins", "http://localhost:4200")

	cfg := &Config{
		Port:           v.GetString("port"),
		DatabaseDSN:    v.GetString("database_dsn"),
		JWTSecret:      v.GetString("jwt_secret"),
		AppBaseURL:     v.GetString("app_base_url"),
		AllowedOrigins: strings.Split(v.GetString("allowed_origins"), ","),

		SMTPHost:     v.GetString("smtp_host"),
		SMTPPort:     v.GetString("smtp_port"),
		SMTPUsername: v.GetString("smtp_username"),
		SMTPPassword: v.GetString("smtp_password"),
		FromEmail:    v.GetString("from_email"),

		AWSRegion:          v.GetString("aws_region"),
		AWSBucket:          v.GetString("aws_bucket"),
		AWSAccessKeyID:     v.GetString("aws_access_key_id"),
		AWSSecretAccessKey: v.GetString("aws_secret_access_key"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("SECRET is not set")
	}

	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DATABASE_DSN is not set")
	}

	return cfg, nil
}
