package dto

import (
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/ledger"
)

// Page is the pagination request shared by every listing.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page to the listing defaults.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 || p.Size > 100 {
		p.Size = 20
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// AccountFilter is the query specification for the admin account listing.
// Zero values mean "no constraint". Search matches email, phone and member
// ID substrings case-insensitively.
type AccountFilter struct {
	Status account.Status
	Role   account.Role
	Search string
}

// LedgerFilter is the query specification for ledger listings. A month
// range constrains entries to one whole calendar month.
type LedgerFilter struct {
	Type  ledger.EntryType
	Year  int
	Month int
}

// Paginated wraps a page of results with the listing totals the front end
// renders.
type Paginated[T any] struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
	Data  []T   `json:"data"`
}

// NewPaginated assembles the envelope, deriving the page count from the
// total and page size.
func NewPaginated[T any](data []T, total int64, page Page) Paginated[T] {
	pages := total / int64(page.Size)
	if total%int64(page.Size) != 0 {
		pages++
	}
	return Paginated[T]{
		Count: len(data),
		Total: total,
		Page:  page.Number,
		Pages: pages,
		Data:  data,
	}
}
