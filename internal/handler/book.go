package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/model"
	"github.com/snnyvrz/book-catalog/internal/validation"
	"go.uber.org/zap"
)

type BookService interface {
	GetAllBooks(ctx context.Context, page, size int) (model.Page[model.Book], error)
	GetBookByID(ctx context.Context, id uint) (*model.Book, error)
	GetBooksByTitle(ctx context.Context, title string, page, size int) (model.Page[model.Book], error)
	GetBooksByAuthor(ctx context.Context, author string, page, size int) (model.Page[model.Book], error)
	GetBooksByRatingAbove(ctx context.Context, rating float64, page, size int) (model.Page[model.Book], error)
}

type BookHandler struct {
	svc        BookService
	log        *zap.Logger
	pagination config.PaginationConfig
}

func NewBookHandler(svc BookService, log *zap.Logger, pagination config.PaginationConfig) *BookHandler {
	return &BookHandler{
		svc:        svc,
		log:        log,
		pagination: pagination,
	}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBookByID)
		books.GET("/search/title/:title", h.SearchByTitle)
		books.GET("/search/rating/:rating", h.SearchByRating)
		books.GET("/search/author/:author", h.SearchByAuthor)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  Get one page of all books. An empty page is still a 200.
// @Tags         books
// @Produce      json
// @Param        page  query     int  false  "Zero-based page number"  default(0) minimum(0)
// @Param        size  query     int  false  "Items per page"          default(10) minimum(1)
// @Success      200   {object}  BookPage
// @Failure      400   {object}  validation.ErrorResponse  "Invalid query parameters"
// @Failure      500   {object}  validation.ErrorResponse  "Internal server error"
// @Failure      503   {object}  validation.ErrorResponse  "Store timed out"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	q, ok := h.bindPage(c)
	if !ok {
		return
	}

	books, err := h.svc.GetAllBooks(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		writeStoreError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get a single book by its numeric id. A missing book is a 404 with an empty body.
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  model.Book
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Failure      503  {object}  validation.ErrorResponse  "Store timed out"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"book id must be a non-negative integer",
		)
		return
	}

	book, err := h.svc.GetBookByID(c.Request.Context(), uint(id))
	if err != nil {
		writeStoreError(c, h.log, err)
		return
	}

	if book == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, book)
}

// SearchByTitle godoc
// @Summary      Search books by title
// @Description  Case-insensitive substring match on the title. No match is a 204 with no body.
// @Tags         books
// @Produce      json
// @Param        title  path      string  true   "Title substring"
// @Param        page   query     int     false  "Zero-based page number"  default(0) minimum(0)
// @Param        size   query     int     false  "Items per page"          default(10) minimum(1)
// @Success      200    {object}  BookPage
// @Success      204    "No matching books"
// @Failure      400    {object}  validation.ErrorResponse  "Invalid query parameters"
// @Failure      500    {object}  validation.ErrorResponse  "Internal server error"
// @Failure      503    {object}  validation.ErrorResponse  "Store timed out"
// @Router       /books/search/title/{title} [get]
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	q, ok := h.bindPage(c)
	if !ok {
		return
	}

	books, err := h.svc.GetBooksByTitle(c.Request.Context(), c.Param("title"), q.Page, q.Size)
	h.writeSearchResult(c, books, err)
}

// SearchByRating godoc
// @Summary      Search books by minimum rating
// @Description  Books rated strictly above the given value. No match is a 204 with no body.
// @Tags         books
// @Produce      json
// @Param        rating  path      number  true   "Exclusive lower bound"
// @Param        page    query     int     false  "Zero-based page number"  default(0) minimum(0)
// @Param        size    query     int     false  "Items per page"          default(10) minimum(1)
// @Success      200     {object}  BookPage
// @Success      204     "No matching books"
// @Failure      400     {object}  validation.ErrorResponse  "Invalid rating or query parameters"
// @Failure      500     {object}  validation.ErrorResponse  "Internal server error"
// @Failure      503     {object}  validation.ErrorResponse  "Store timed out"
// @Router       /books/search/rating/{rating} [get]
func (h *BookHandler) SearchByRating(c *gin.Context) {
	rating, err := strconv.ParseFloat(c.Param("rating"), 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		writeError(c, http.StatusBadRequest,
			"INVALID_RATING",
			"rating must be a decimal number",
		)
		return
	}

	q, ok := h.bindPage(c)
	if !ok {
		return
	}

	books, err := h.svc.GetBooksByRatingAbove(c.Request.Context(), rating, q.Page, q.Size)
	h.writeSearchResult(c, books, err)
}

// SearchByAuthor godoc
// @Summary      Search books by author
// @Description  Case-insensitive substring match on the author. No match is a 204 with no body.
// @Tags         books
// @Produce      json
// @Param        author  path      string  true   "Author substring"
// @Param        page    query     int     false  "Zero-based page number"  default(0) minimum(0)
// @Param        size    query     int     false  "Items per page"          default(10) minimum(1)
// @Success      200     {object}  BookPage
// @Success      204     "No matching books"
// @Failure      400     {object}  validation.ErrorResponse  "Invalid query parameters"
// @Failure      500     {object}  validation.ErrorResponse  "Internal server error"
// @Failure      503     {object}  validation.ErrorResponse  "Store timed out"
// @Router       /books/search/author/{author} [get]
func (h *BookHandler) SearchByAuthor(c *gin.Context) {
	q, ok := h.bindPage(c)
	if !ok {
		return
	}

	books, err := h.svc.GetBooksByAuthor(c.Request.Context(), c.Param("author"), q.Page, q.Size)
	h.writeSearchResult(c, books, err)
}

// writeSearchResult answers search endpoints, which unlike ListBooks report
// an empty page as 204.
func (h *BookHandler) writeSearchResult(c *gin.Context, books model.Page[model.Book], err error) {
	if err != nil {
		writeStoreError(c, h.log, err)
		return
	}

	if books.IsEmpty() {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) bindPage(c *gin.Context) (PageQuery, bool) {
	q := PageQuery{
		Page: 0,
		Size: h.pagination.DefaultSize,
	}

	if !validation.BindAndValidateQuery(c, &q) {
		return q, false
	}

	if q.Size > h.pagination.MaxSize {
		writeError(c, http.StatusBadRequest,
			"PAGE_SIZE_TOO_LARGE",
			"size must be at most "+strconv.Itoa(h.pagination.MaxSize),
		)
		return q, false
	}

	return q, true
}
