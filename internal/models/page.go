package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a zero-based page number and a page size
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a listing together with the total count of items
type Page[T any] struct {
	Items []T
	Total int64
	PageRequest
}

// TotalPages returns the number of pages needed to list all items
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
