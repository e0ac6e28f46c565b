package cmdutil

// Page is the outcome of Paginate.
type Page struct {
	Total     int
	Truncated bool
}

// Paginate returns items[offset:offset+limit] clamped to bounds. A limit of
// zero or less means no limit.
func Paginate[T any](items []T, offset, limit int) ([]T, Page) {
	total := len(items)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return items[start:end], Page{Total: total, Truncated: end < total}
}
