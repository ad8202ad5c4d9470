package discovery

import (
	"sort"

	"github.com/anonto42/nano-midea/discovery/internal/models"
)

// sortByRecency orders content newest first, ties by ID ascending
func sortByRecency(items []models.Content) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})
}

// paginate returns items[offset:offset+limit] clamped to the slice; past the
// end it returns an empty, non-nil slice.
func paginate[T any](items []T, limit, offset uint32) []T {
	n := uint64(len(items))
	start := uint64(offset)
	if start >= n {
		return []T{}
	}
	end := start + uint64(limit)
	if end > n {
		end = n
	}
	return items[start:end]
}

// truncate keeps at most limit items
func truncate[T any](items []T, limit uint32) []T {
	return paginate(items, limit, 0)
}
