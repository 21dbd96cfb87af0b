package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/TenJit/emotion-detection-api/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds everything the service needs from the environment.
type Config struct {
	Port      string
	AWSRegion string

	// Location fixes the meaning of "today" and "now" for the whole
	// service. TIMEZONE is required; there is no system-local fallback.
	Location *time.Location

	ClassifierTimeout time.Duration

	dsn string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		return nil, errors.New("TIMEZONE must be set (e.g. Asia/Bangkok)")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	timeout := 15 * time.Second
	if v := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid CLASSIFIER_TIMEOUT_SECONDS %q", v)
		}
		timeout = time.Duration(secs) * time.Second
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	return &Config{
		Port:              port,
		AWSRegion:         os.Getenv("AWS_REGION"),
		Location:          loc,
		ClassifierTimeout: timeout,
		dsn:               dsn,
	}, nil
}

// ConnectDB opens the postgres connection and migrates the schema.
// A failure here is returned to the caller; the process must not serve
// traffic with a broken store connection.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	// TranslateError gives typed gorm.ErrDuplicatedKey results, which
	// the conditional-create retries rely on.
	db, err := gorm.Open(postgres.Open(cfg.dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate is split out so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.EmotionRecord{},
		&models.DailyWaterRecord{},
		&models.DeviceStatus{},
		&models.SensorAverage{},
		&models.ScrapeCounter{},
		&models.QueuedError{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}
