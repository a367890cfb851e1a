package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/uma-arai/sbcntr-reserva/internal/common/database"
	"github.com/uma-arai/sbcntr-reserva/internal/model"
)

type Config struct {
	DB  database.Config
	SFN struct {
		TaskToken string
	}
	Booking       BookingConfig
	QueryTimeout  time.Duration
	AutoMigrate   bool
	EnableTracing bool
}

// BookingConfig は予約を受け付ける営業時間の設定です
type BookingConfig struct {
	OpenTime  model.TimeOfDay
	CloseTime model.TimeOfDay
	Location  *time.Location
}

// LoadConfig は設定を読み込みます
// カレントディレクトリに .env があれば先に環境変数へ展開します
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	driver := strings.ToLower(getEnvOrDefault("DB_DRIVER", database.DriverPostgres))
	if driver != database.DriverPostgres && driver != database.DriverMySQL {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	defaultPort := 5432
	if driver == database.DriverMySQL {
		defaultPort = 3306
	}

	cfg := &Config{
		DB: database.Config{
			Driver:   driver,
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvAsIntOrDefault("DB_PORT", defaultPort),
			UserName: getEnvOrDefault("DB_USERNAME", "reservas"),
			Password: getEnvOrDefault("DB_PASSWORD", "reservas"),
			DBName:   getEnvOrDefault("DB_NAME", "reservas_db"),
			SSLMode:  os.Getenv("DB_SSL_MODE"),
		},
		QueryTimeout:  getEnvAsDurationOrDefault("DB_QUERY_TIMEOUT", 5*time.Second),
		AutoMigrate:   getEnvAsBoolOrDefault("DB_AUTO_MIGRATE", false),
		EnableTracing: false,
	}

	booking, err := loadBookingConfig()
	if err != nil {
		return nil, err
	}
	cfg.Booking = booking

	// 環境変数[SBCNTR_ENABLE_TRACING]を見てトレースを有効にする。対応しているTracingはAWS_XRAYのみ。
	// 環境変数[AWS_XRAY_SDK_DISABLED]がtrueの場合は必ずトレースを無効にする。
	enableKey := os.Getenv("SBCNTR_ENABLE_TRACING")
	if !sdkDisabled() && (strings.ToLower(enableKey) == "true" || enableKey == "1") {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
		cfg.EnableTracing = true
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
		cfg.EnableTracing = false
	}

	return cfg, nil
}

func loadBookingConfig() (BookingConfig, error) {
	open, err := model.ParseTimeOfDay(getEnvOrDefault("RESERVA_OPEN_TIME", "09:00"))
	if err != nil {
		return BookingConfig{}, fmt.Errorf("invalid RESERVA_OPEN_TIME: %w", err)
	}
	closing, err := model.ParseTimeOfDay(getEnvOrDefault("RESERVA_CLOSE_TIME", "21:00"))
	if err != nil {
		return BookingConfig{}, fmt.Errorf("invalid RESERVA_CLOSE_TIME: %w", err)
	}
	if closing.Before(open) {
		return BookingConfig{}, fmt.Errorf("RESERVA_CLOSE_TIME %s is before RESERVA_OPEN_TIME %s", closing, open)
	}

	loc := time.Local
	if name := os.Getenv("RESERVA_TIMEZONE"); name != "" {
		loc, err = time.LoadLocation(name)
		if err != nil {
			return BookingConfig{}, fmt.Errorf("invalid RESERVA_TIMEZONE: %w", err)
		}
	}

	return BookingConfig{OpenTime: open, CloseTime: closing, Location: loc}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Printf("Environment variable %s is not set, using default value", key)
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Environment variable %s has an invalid duration %q, using default value", key, value)
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Check if SDK is disabled
func sdkDisabled() bool {
	disableKey := os.Getenv("AWS_XRAY_SDK_DISABLED")
	return strings.ToLower(disableKey) == "true"
}
