package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/db"
	"github.com/snnyvrz/book-catalog/internal/logging"
	"github.com/snnyvrz/book-catalog/internal/model"
	"github.com/snnyvrz/book-catalog/internal/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const batchSize = 500

// BookRecord is one entry of a seed file. JSON files parse too since JSON is
// valid YAML.
type BookRecord struct {
	Title  string  `yaml:"title" binding:"required"`
	Author string  `yaml:"author" binding:"required"`
	Rating float64 `yaml:"rating" binding:"gte=0"`
}

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML configuration file")
	file := flag.String("file", "testdata/books.yaml", "seed file with a list of books")
	truncate := flag.Bool("truncate", false, "delete existing books before inserting")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg, "seed")
	defer func() {
		_ = logger.Sync()
	}()

	records, err := readRecords(*file)
	if err != nil {
		logger.Fatal("failed to read seed file", zap.String("file", *file), zap.Error(err))
	}

	database, err := db.ConnectWithRetry(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}

	n, err := seed(database, records, *truncate)
	if err != nil {
		logger.Fatal("failed to seed books", zap.Error(err))
	}

	logger.Info("seeded books", zap.Int("inserted", n), zap.String("file", *file))
}

func readRecords(path string) ([]BookRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []BookRecord
	if err := yaml.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	for i, r := range records {
		if err := validation.Struct(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return records, nil
}

// seed migrates the schema and inserts records in one transaction.
func seed(database *gorm.DB, records []BookRecord, truncate bool) (int, error) {
	if err := db.Migrate(database); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	books := make([]model.Book, 0, len(records))
	for _, r := range records {
		books = append(books, model.Book{
			Title:  r.Title,
			Author: r.Author,
			Rating: r.Rating,
		})
	}

	err := database.Transaction(func(tx *gorm.DB) error {
		if truncate {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Book{}).Error; err != nil {
				return fmt.Errorf("truncate: %w", err)
			}
		}

		if len(books) == 0 {
			return nil
		}

		return tx.CreateInBatches(&books, batchSize).Error
	})
	if err != nil {
		return 0, err
	}

	return len(books), nil
}
