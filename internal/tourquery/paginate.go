package tourquery

import (
	"fmt" // Error wrapping

	"gorm.io/gorm" // GORM ORM library
)

// Meta describes one page of a listing
type Meta struct {
	CurrentPage int   `json:"current_page"`
	From        *int  `json:"from"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	To          *int  `json:"to"`
	Total       int64 `json:"total"`
}

// Page is a slice of records plus its metadata
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// LastPage is ceil(total/perPage), never below 1
func LastPage(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// NewMeta builds the metadata of page given the number of records it holds
func NewMeta(page, perPage int, total int64, count int) Meta {
	m := Meta{
		CurrentPage: page,
		LastPage:    LastPage(total, perPage),
		PerPage:     perPage,
		Total:       total,
	}
	// count > 0 implies page <= LastPage, so the offset fits
	if count > 0 {
		from := offset(page, perPage) + 1
		to := from + count - 1
		m.From, m.To = &from, &to
	}
	return m
}

func offset(page, perPage int) int {
	return (page - 1) * perPage
}

// Paginate limits a query to one page. page must not exceed the last page
func Paginate(page, perPage int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset(page, perPage)).Limit(perPage)
	}
}

// Fetch counts the rows matched by query, then loads the requested page
// with order applied. query must be a fresh session so both statements
// start from the same conditions
func Fetch[T any](query *gorm.DB, page, perPage int, order Scope) (Page[T], error) {
	if page < 1 {
		page = 1 // Parse already rejects this, callers may not
	}
	var total int64 // Rows matched before pagination
	if err := query.Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("count: %w", err)
	}
	items := make([]T, 0, perPage) // Never nil, an empty page encodes as []
	// Compare pages, not offsets, so a huge page number cannot overflow
	if total > 0 && page <= LastPage(total, perPage) {
		if err := query.Scopes(order, Paginate(page, perPage)).Find(&items).Error; err != nil {
			return Page[T]{}, fmt.Errorf("find: %w", err)
		}
	}
	return Page[T]{Items: items, Meta: NewMeta(page, perPage, total, len(items))}, nil
}
