package domain

// Paginate returns the 1-indexed page window over records.
//
// An out-of-range request (page ≤ 0 or beyond the last page) returns an
// empty slice rather than clamping: UI controls are responsible for keeping
// the page number in range, this stays a pure slice operation.
func Paginate(records []*Record, page, pageSize int) []*Record {
	if page <= 0 || pageSize <= 0 {
		return []*Record{}
	}

	start := (page - 1) * pageSize
	if start >= len(records) {
		return []*Record{}
	}

	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	out := make([]*Record, end-start)
	copy(out, records[start:end])
	return out
}

// TotalPages returns the page count for a record total, 0 for an empty set.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
