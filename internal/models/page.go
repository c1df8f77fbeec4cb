package models

// Page is one fetched page of a collection. Pages are replaced wholesale.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}

// NewPage builds a page and clamps the counters to their valid ranges.
func NewPage[T any](items []T, page, totalPages, totalCount int) Page[T] {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if totalCount < 0 {
		totalCount = 0
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: page, TotalPages: totalPages, TotalCount: totalCount}
}

// EmptyPage is the state before the first successful fetch.
func EmptyPage[T any]() Page[T] {
	return NewPage[T](nil, 1, 1, 0)
}
