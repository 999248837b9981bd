package pagination

import (
	"errors"
)

// Page-based validation limits.
const (
	DefaultPageSize = 50
	MinPageSize     = 1
	MaxPageSize     = 1000
	MinPage         = 1
)

// Validation errors.
var (
	ErrInvalidPage         = errors.New("page must be >= 1")
	ErrInvalidPageSize     = errors.New("page-size must be between 1 and 1000")
	ErrPageSizeWithoutPage = errors.New("--page-size requires --page to be set")
)

// Params holds the --page and --page-size flags. A zero Page disables pagination.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of results per page. Zero with a Page set means
	// DefaultPageSize.
	PageSize int
}

// Validate checks the flag combination.
func (p Params) Validate() error {
	if p.Page < 0 {
		return ErrInvalidPage
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	if p.Page == 0 && p.PageSize > 0 {
		return ErrPageSizeWithoutPage
	}
	return nil
}

// Enabled reports whether page-based pagination is active.
func (p Params) Enabled() bool {
	return p.Page >= MinPage
}

// EffectivePageSize returns PageSize, or DefaultPageSize when unset.
func (p Params) EffectivePageSize() int {
	if p.PageSize < MinPageSize {
		return DefaultPageSize
	}
	return p.PageSize
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	if !p.Enabled() {
		return 0
	}
	return (p.Page - 1) * p.EffectivePageSize()
}

// TotalPages returns the number of pages needed for total items.
func (p Params) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	if !p.Enabled() {
		return 1
	}
	size := p.EffectivePageSize()
	return (total + size - 1) / size
}

// Apply returns the items on the requested page, preserving order. Without
// pagination the full slice is returned. A page past the end yields an empty slice.
func Apply[T any](items []T, p Params) []T {
	if !p.Enabled() {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.EffectivePageSize(), len(items))
	return items[start:end]
}
