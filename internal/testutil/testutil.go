package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/book-catalog/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the books table
// migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := open(t, "testdb_")

	if err := db.AutoMigrate(&model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// NewErrorDB opens a database without any tables so every query fails.
func NewErrorDB(t *testing.T) *gorm.DB {
	t.Helper()

	return open(t, "errdb_")
}

func open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := "file:" + prefix + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// SeedBooks inserts the given books in order and returns them with their
// storage-assigned ids.
func SeedBooks(t *testing.T, db *gorm.DB, books ...model.Book) []model.Book {
	t.Helper()

	for i := range books {
		if err := db.Create(&books[i]).Error; err != nil {
			t.Fatalf("failed to seed book %q: %v", books[i].Title, err)
		}
	}

	return books
}

// Classics is a small fixture shared by repository and handler tests.
func Classics() []model.Book {
	return []model.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Rating: 4.5},
		{Title: "Nineteen Eighty-Four", Author: "George Orwell", Rating: 4.0},
		{Title: "Animal Farm", Author: "George Orwell", Rating: 3.9},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Rating: 4.8},
		{Title: "100% Pure_Fiction", Author: "A. Nonymous", Rating: 2.1},
	}
}
