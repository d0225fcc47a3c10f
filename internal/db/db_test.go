package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.Path = filepath.Join(t.TempDir(), "books.db")
	cfg.DB.MaxAttempts = 2
	cfg.DB.RetryDelay = time.Millisecond
	return cfg
}

func TestConnectWithRetry_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := ConnectWithRetry(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&model.Book{Title: "Dune", Author: "Frank Herbert", Rating: 4.3}).Error)

	var count int64
	require.NoError(t, db.Model(&model.Book{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConnectWithRetry_GivesUp(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DB.Path = filepath.Join(t.TempDir(), "missing-dir", "books.db")

	_, err := ConnectWithRetry(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "after 2 attempts")
}

func TestDialector_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Driver = "mysql"

	_, err := Dialector(cfg)
	assert.Error(t, err)
}
