package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Paginate returns the page of items selected by p. A zero PageSize returns all items
// and a page past the end returns an empty slice.
func Paginate[T any](items []T, p PaginationParams) []T {
	if p.PageSize <= 0 {
		return items
	}
	skipped := max(p.Page-1, 0)
	if skipped > len(items)/p.PageSize {
		return items[len(items):]
	}
	start := min(skipped*p.PageSize, len(items))
	end := start + min(p.PageSize, len(items)-start)
	return items[start:end]
}
