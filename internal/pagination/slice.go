package pagination

// Slice returns the items on the given 1-based page, clipped to the
// bounds of items. Pages outside the available range yield an empty slice.
func Slice[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return []T{}
	}

	// Compare page counts before multiplying so huge pages cannot overflow
	pages := len(items) / pageSize
	if len(items)%pageSize != 0 {
		pages++
	}
	if page > pages {
		return []T{}
	}

	start := pageSize * (page - 1)
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	// Full slice expression so appends by the caller never write into items
	return items[start:end:end]
}
