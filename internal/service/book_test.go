package service

import (
	"context"
	"errors"
	"testing"

	"github.com/snnyvrz/book-catalog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookRepo struct {
	FindAllFn              func(ctx context.Context, p model.Pageable) (model.Page[model.Book], error)
	FindByIDFn             func(ctx context.Context, id uint) (*model.Book, error)
	FindByTitleContainsFn  func(ctx context.Context, title string, p model.Pageable) (model.Page[model.Book], error)
	FindByAuthorContainsFn func(ctx context.Context, author string, p model.Pageable) (model.Page[model.Book], error)
	FindByRatingAboveFn    func(ctx context.Context, rating float64, p model.Pageable) (model.Page[model.Book], error)
}

func (f *fakeBookRepo) FindAll(ctx context.Context, p model.Pageable) (model.Page[model.Book], error) {
	return f.FindAllFn(ctx, p)
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeBookRepo) FindByTitleContains(ctx context.Context, title string, p model.Pageable) (model.Page[model.Book], error) {
	return f.FindByTitleContainsFn(ctx, title, p)
}

func (f *fakeBookRepo) FindByAuthorContains(ctx context.Context, author string, p model.Pageable) (model.Page[model.Book], error) {
	return f.FindByAuthorContainsFn(ctx, author, p)
}

func (f *fakeBookRepo) FindByRatingAbove(ctx context.Context, rating float64, p model.Pageable) (model.Page[model.Book], error) {
	return f.FindByRatingAboveFn(ctx, rating, p)
}

var gatsby = model.Book{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Rating: 4.5}

func TestBookService_BuildsPageable(t *testing.T) {
	var got []model.Pageable
	record := func(p model.Pageable) model.Page[model.Book] {
		got = append(got, p)
		return model.NewPage([]model.Book{gatsby}, p, 1)
	}

	repo := &fakeBookRepo{
		FindAllFn: func(_ context.Context, p model.Pageable) (model.Page[model.Book], error) {
			return record(p), nil
		},
		FindByTitleContainsFn: func(_ context.Context, title string, p model.Pageable) (model.Page[model.Book], error) {
			assert.Equal(t, "Gatsby", title)
			return record(p), nil
		},
		FindByAuthorContainsFn: func(_ context.Context, author string, p model.Pageable) (model.Page[model.Book], error) {
			assert.Equal(t, "fitz", author)
			return record(p), nil
		},
		FindByRatingAboveFn: func(_ context.Context, rating float64, p model.Pageable) (model.Page[model.Book], error) {
			assert.Equal(t, 4.25, rating)
			return record(p), nil
		},
	}
	svc := NewBookService(repo)
	ctx := context.Background()

	_, err := svc.GetAllBooks(ctx, 0, 10)
	require.NoError(t, err)
	_, err = svc.GetBooksByTitle(ctx, "Gatsby", 1, 5)
	require.NoError(t, err)
	_, err = svc.GetBooksByAuthor(ctx, "fitz", 2, 3)
	require.NoError(t, err)
	page, err := svc.GetBooksByRatingAbove(ctx, 4.25, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, []model.Pageable{
		{Page: 0, Size: 10},
		{Page: 1, Size: 5},
		{Page: 2, Size: 3},
		{Page: 3, Size: 1},
	}, got)
	assert.Equal(t, []model.Book{gatsby}, page.Content)
}

func TestBookService_GetBookByID(t *testing.T) {
	repo := &fakeBookRepo{
		FindByIDFn: func(_ context.Context, id uint) (*model.Book, error) {
			if id == gatsby.ID {
				b := gatsby
				return &b, nil
			}
			return nil, nil
		},
	}
	svc := NewBookService(repo)

	book, err := svc.GetBookByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, uint(1), book.ID)

	missing, err := svc.GetBookByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBookService_WrapsStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	failPage := func() (model.Page[model.Book], error) { return model.Page[model.Book]{}, storeErr }

	repo := &fakeBookRepo{
		FindAllFn: func(context.Context, model.Pageable) (model.Page[model.Book], error) { return failPage() },
		FindByIDFn: func(context.Context, uint) (*model.Book, error) {
			return nil, storeErr
		},
		FindByTitleContainsFn: func(context.Context, string, model.Pageable) (model.Page[model.Book], error) {
			return failPage()
		},
		FindByAuthorContainsFn: func(context.Context, string, model.Pageable) (model.Page[model.Book], error) {
			return failPage()
		},
		FindByRatingAboveFn: func(context.Context, float64, model.Pageable) (model.Page[model.Book], error) {
			return failPage()
		},
	}
	svc := NewBookService(repo)
	ctx := context.Background()

	_, err := svc.GetAllBooks(ctx, 0, 10)
	assert.ErrorIs(t, err, storeErr)
	_, err = svc.GetBookByID(ctx, 7)
	assert.ErrorIs(t, err, storeErr)
	_, err = svc.GetBooksByTitle(ctx, "x", 0, 10)
	assert.ErrorIs(t, err, storeErr)
	_, err = svc.GetBooksByAuthor(ctx, "x", 0, 10)
	assert.ErrorIs(t, err, storeErr)
	_, err = svc.GetBooksByRatingAbove(ctx, 1, 0, 10)
	assert.ErrorIs(t, err, storeErr)
}
