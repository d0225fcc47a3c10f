package db

import (
	"fmt"
	"time"

	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver named by the configuration.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DB.Path), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
}

// ConnectWithRetry opens the database and pings it, retrying up to
// cfg.DB.MaxAttempts times with cfg.DB.RetryDelay between attempts.
func ConnectWithRetry(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if !cfg.IsRelease() {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	var db *gorm.DB
	for attempt := 1; attempt <= cfg.DB.MaxAttempts; attempt++ {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Info("db connected",
						zap.String("driver", cfg.DB.Driver),
						zap.Int("attempt", attempt),
					)
					return db, nil
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn("db not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.DB.MaxAttempts),
			zap.Error(err),
		)
		if attempt < cfg.DB.MaxAttempts {
			time.Sleep(cfg.DB.RetryDelay)
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DB.MaxAttempts, err)
}

// Migrate creates or updates the books table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Book{})
}
