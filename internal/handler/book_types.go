package handler

import "github.com/snnyvrz/book-catalog/internal/model"

// PageQuery carries the page and size query parameters of list endpoints.
type PageQuery struct {
	Page int `form:"page" binding:"min=0"`
	Size int `form:"size" binding:"min=1"`
}

// BookPage is the response body of every list endpoint.
type BookPage = model.Page[model.Book]
