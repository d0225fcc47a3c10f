package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/snnyvrz/book-catalog/internal/model"
	"gorm.io/gorm"
)

type BookRepository interface {
	FindAll(ctx context.Context, pageable model.Pageable) (model.Page[model.Book], error)
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByTitleContains(ctx context.Context, title string, pageable model.Pageable) (model.Page[model.Book], error)
	FindByAuthorContains(ctx context.Context, author string, pageable model.Pageable) (model.Page[model.Book], error)
	FindByRatingAbove(ctx context.Context, rating float64, pageable model.Pageable) (model.Page[model.Book], error)
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// FindByID returns (nil, nil) when no book has the given id.
func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		First(&book, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindAll(ctx context.Context, pageable model.Pageable) (model.Page[model.Book], error) {
	return r.page(r.db.WithContext(ctx).Model(&model.Book{}), pageable)
}

func (r *GormBookRepository) FindByTitleContains(ctx context.Context, title string, pageable model.Pageable) (model.Page[model.Book], error) {
	q := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, containsPattern(title))

	return r.page(q, pageable)
}

func (r *GormBookRepository) FindByAuthorContains(ctx context.Context, author string, pageable model.Pageable) (model.Page[model.Book], error) {
	q := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where(`LOWER(author) LIKE LOWER(?) ESCAPE '\'`, containsPattern(author))

	return r.page(q, pageable)
}

func (r *GormBookRepository) FindByRatingAbove(ctx context.Context, rating float64, pageable model.Pageable) (model.Page[model.Book], error) {
	q := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("rating > ?", rating)

	return r.page(q, pageable)
}

// page counts the rows matched by q and loads the requested slice of them.
// Rows are ordered by id so that repeated reads return the same pages. A
// page whose offset does not fit in an int is empty.
func (r *GormBookRepository) page(q *gorm.DB, pageable model.Pageable) (model.Page[model.Book], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return model.Page[model.Book]{}, err
	}

	books := make([]model.Book, 0, min(pageable.Size, int(total)))
	if pageable.InRange() && total > int64(pageable.Offset()) {
		if err := q.Session(&gorm.Session{}).
			Order("id ASC").
			Limit(pageable.Size).
			Offset(pageable.Offset()).
			Find(&books).Error; err != nil {

			return model.Page[model.Book]{}, err
		}
	}

	return model.NewPage(books, pageable, total), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user input into a LIKE pattern that matches it as a
// literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
