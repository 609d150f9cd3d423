package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env  string
		Port string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		Secret            string
		TokenExpiryHours  int
		MaxFailedAttempts int
	}
}

// LoadConfig reads configuration from the environment, falling back to an
// optional .env file during development.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on system environment variables")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "arena_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "supersecret")

	var err error
	cfg.JWT.TokenExpiryHours, err = getEnvAsInt("JWT_TOKEN_EXPIRY_HOURS", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_EXPIRY_HOURS: %w", err)
	}
	cfg.JWT.MaxFailedAttempts, err = getEnvAsInt("AUTH_MAX_FAILED_ATTEMPTS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_MAX_FAILED_ATTEMPTS: %w", err)
	}

	if cfg.JWT.Secret == "supersecret" && cfg.App.Env == "production" {
		logrus.Warn("using default JWT secret in production, set JWT_SECRET")
	}

	return cfg, nil
}

// ConnectDB opens the Postgres connection described by cfg.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host": cfg.DB.Host,
		"name": cfg.DB.Name,
	}).Info("connected to database")
	return db, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
