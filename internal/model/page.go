package model

import "math"

// Pageable is a zero-based page number and a page size.
type Pageable struct {
	Page int
	Size int
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// InRange reports whether Offset fits in an int. Pages beyond that lie past
// the end of any result set.
func (p Pageable) InRange() bool {
	if p.Page < 0 || p.Size <= 0 {
		return false
	}
	return p.Page <= math.MaxInt/p.Size
}

// Page is one slice of a larger result set together with the metadata a
// client needs to iterate over the rest of it.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// NewPage fills in the derived fields. A nil content slice is replaced by an
// empty one so the page always serializes "content" as an array.
func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if pageable.Size > 0 {
		totalPages = int((total + int64(pageable.Size) - 1) / int64(pageable.Size))
	}

	return Page[T]{
		Content:          content,
		Number:           pageable.Page,
		Size:             pageable.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            pageable.Page == 0,
		Last:             pageable.Page >= totalPages-1,
		Empty:            len(content) == 0,
	}
}

func (p Page[T]) IsEmpty() bool {
	return len(p.Content) == 0
}
