package domain

// Pagination describes one page of an in-memory sliced result.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// Paginate slices items into the 1-based page of size limit. Pages past the
// end are empty; page and limit below 1 are treated as 1.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	total := len(items)
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	p := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
	}

	// Bounded by page <= pages, so the offset cannot overflow.
	if page > pages {
		return []T{}, p
	}
	start := (page - 1) * limit
	end := start + min(limit, total-start)
	return items[start:end], p
}
