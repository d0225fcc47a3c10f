package service

import (
	"context"
	"fmt"

	"github.com/snnyvrz/book-catalog/internal/model"
	"github.com/snnyvrz/book-catalog/internal/repository"
)

// BookService turns raw page/size pairs into a model.Pageable and hands the
// query to the repository.
type BookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) *BookService {
	return &BookService{repo: repo}
}

func (s *BookService) GetAllBooks(ctx context.Context, page, size int) (model.Page[model.Book], error) {
	books, err := s.repo.FindAll(ctx, pageable(page, size))
	if err != nil {
		return model.Page[model.Book]{}, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBookByID returns nil without an error when the book does not exist.
func (s *BookService) GetBookByID(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return book, nil
}

func (s *BookService) GetBooksByTitle(ctx context.Context, title string, page, size int) (model.Page[model.Book], error) {
	books, err := s.repo.FindByTitleContains(ctx, title, pageable(page, size))
	if err != nil {
		return model.Page[model.Book]{}, fmt.Errorf("search books by title %q: %w", title, err)
	}
	return books, nil
}

func (s *BookService) GetBooksByAuthor(ctx context.Context, author string, page, size int) (model.Page[model.Book], error) {
	books, err := s.repo.FindByAuthorContains(ctx, author, pageable(page, size))
	if err != nil {
		return model.Page[model.Book]{}, fmt.Errorf("search books by author %q: %w", author, err)
	}
	return books, nil
}

func (s *BookService) GetBooksByRatingAbove(ctx context.Context, rating float64, page, size int) (model.Page[model.Book], error) {
	books, err := s.repo.FindByRatingAbove(ctx, rating, pageable(page, size))
	if err != nil {
		return model.Page[model.Book]{}, fmt.Errorf("search books rated above %v: %w", rating, err)
	}
	return books, nil
}

func pageable(page, size int) model.Pageable {
	return model.Pageable{Page: page, Size: size}
}
