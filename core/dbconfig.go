package core

import (
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type DatabaseConfig struct {
	DSN         string
	Environment string
}

var DB *gorm.DB

// GetDatabaseConfig returns database configuration based on environment.
func GetDatabaseConfig() DatabaseConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	var dsn string
	switch env {
	case "test":
		dsn = os.Getenv("TEST_DB_URL")
		if dsn == "" {
			dsn = ":memory:"
		}
	default:
		dsn = os.Getenv("DB_URL")
		if dsn == "" {
			slog.Error("DB_URL environment variable not set")
		}
	}

	return DatabaseConfig{
		DSN:         dsn,
		Environment: env,
	}
}

// ConnectDB connects to the database using the appropriate configuration.
// Test environments get sqlite (TEST_DB_URL, or in-memory when that is
// unset); everything else talks to Postgres.
func ConnectDB() {
	config := GetDatabaseConfig()

	var err error
	if config.Environment == "test" {
		DB, err = gorm.Open(sqlite.Open(config.DSN), &gorm.Config{})
	} else {
		DB, err = gorm.Open(postgres.Open(config.DSN), &gorm.Config{})
	}

	if err != nil {
		slog.Error("Failed to connect to DB: " + err.Error())
		return
	}

	if config.Environment != "test" {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		log := zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(colorable.NewColorableStdout()),
			zapcore.DebugLevel,
		))

		log.Info("Connected to database ...", zap.String("environment", config.Environment))
	}
}

// ConnectTestDB connects to the test database specifically.
func ConnectTestDB() {
	originalEnv := os.Getenv("APP_ENV")
	os.Setenv("APP_ENV", "test")

	ConnectDB()

	if originalEnv == "" {
		os.Unsetenv("APP_ENV")
	} else {
		os.Setenv("APP_ENV", originalEnv)
	}
}

// GetDB returns the current database instance.
func GetDB() *gorm.DB {
	return DB
}
