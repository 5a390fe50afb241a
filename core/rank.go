package core

// limitResults returns the first limit items. A limit of zero or one that
// exceeds the number of items returns everything.
func limitResults[T any](items []T, limit int) []T {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	return items[:limit]
}
