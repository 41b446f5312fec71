// Package pagination normalizes page requests and derives paging metadata.
package pagination

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 10

// Request is a normalized page window. Offset is the number of rows that
// precede the window, so the window covers rows (Offset, Offset+Limit].
type Request struct {
	Page   int
	Limit  int
	Offset int
}

// Plan normalizes raw page and limit inputs. Non-positive values fall back
// to page 1 and DefaultLimit; Plan never fails.
func Plan(rawPage, rawLimit int) Request {
	return PlanWithDefault(rawPage, rawLimit, DefaultLimit)
}

// PlanWithDefault is Plan with a configurable fallback page size. A
// non-positive defaultLimit falls back to DefaultLimit itself.
func PlanWithDefault(rawPage, rawLimit, defaultLimit int) Request {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	page := rawPage
	if page <= 0 {
		page = 1
	}
	limit := rawLimit
	if limit <= 0 {
		limit = defaultLimit
	}
	return Request{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta describes one page of a larger result set. It is derived per request
// and never persisted.
type Meta struct {
	TotalItems   int `json:"totalItems"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
}

// NewMeta computes paging metadata for a total item count and a normalized
// request. TotalPages is zero exactly when TotalItems is zero.
func NewMeta(totalItems int, req Request) Meta {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + req.Limit - 1) / req.Limit
	}
	return Meta{
		TotalItems:   totalItems,
		CurrentPage:  req.Page,
		ItemsPerPage: req.Limit,
		TotalPages:   totalPages,
	}
}
