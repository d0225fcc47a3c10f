package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/model"
	"github.com/snnyvrz/book-catalog/internal/repository"
	"github.com/snnyvrz/book-catalog/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

type fakeBookService struct {
	GetAllBooksFn           func(ctx context.Context, page, size int) (model.Page[model.Book], error)
	GetBookByIDFn           func(ctx context.Context, id uint) (*model.Book, error)
	GetBooksByTitleFn       func(ctx context.Context, title string, page, size int) (model.Page[model.Book], error)
	GetBooksByAuthorFn      func(ctx context.Context, author string, page, size int) (model.Page[model.Book], error)
	GetBooksByRatingAboveFn func(ctx context.Context, rating float64, page, size int) (model.Page[model.Book], error)
}

func (f *fakeBookService) GetAllBooks(ctx context.Context, page, size int) (model.Page[model.Book], error) {
	if f.GetAllBooksFn != nil {
		return f.GetAllBooksFn(ctx, page, size)
	}
	return model.NewPage[model.Book](nil, model.Pageable{Page: page, Size: size}, 0), nil
}

func (f *fakeBookService) GetBookByID(ctx context.Context, id uint) (*model.Book, error) {
	if f.GetBookByIDFn != nil {
		return f.GetBookByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeBookService) GetBooksByTitle(ctx context.Context, title string, page, size int) (model.Page[model.Book], error) {
	if f.GetBooksByTitleFn != nil {
		return f.GetBooksByTitleFn(ctx, title, page, size)
	}
	return model.NewPage[model.Book](nil, model.Pageable{Page: page, Size: size}, 0), nil
}

func (f *fakeBookService) GetBooksByAuthor(ctx context.Context, author string, page, size int) (model.Page[model.Book], error) {
	if f.GetBooksByAuthorFn != nil {
		return f.GetBooksByAuthorFn(ctx, author, page, size)
	}
	return model.NewPage[model.Book](nil, model.Pageable{Page: page, Size: size}, 0), nil
}

func (f *fakeBookService) GetBooksByRatingAbove(ctx context.Context, rating float64, page, size int) (model.Page[model.Book], error) {
	if f.GetBooksByRatingAboveFn != nil {
		return f.GetBooksByRatingAboveFn(ctx, rating, page, size)
	}
	return model.NewPage[model.Book](nil, model.Pageable{Page: page, Size: size}, 0), nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.GinMode = gin.TestMode
	cfg.Pagination.MaxSize = 100
	return cfg
}

func setupRouterWithService(svc BookService, pinger Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	return NewRouter(RouterDeps{
		Config:    testConfig(),
		Logger:    zap.NewNop(),
		Books:     svc,
		DB:        pinger,
		StartTime: time.Now(),
		Version:   "test",
	})
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	svc := service.NewBookService(repository.NewGormBookRepository(db))
	return setupRouterWithService(svc, sqlDB)
}

func doGet(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) BookPage {
	t.Helper()

	var page BookPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to unmarshal page: %v, body=%s", err, w.Body.String())
	}
	return page
}
