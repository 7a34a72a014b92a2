package services

import (
	"fmt"

	"taskhub/internal/repository"
)

// Per-entity sort allow-lists, mapping API-level field names to database
// columns. Anything outside these maps is rejected before a query runs.
var (
	userSortFields = map[string]string{
		"id":        "id",
		"username":  "username",
		"email":     "email",
		"full_name": "full_name",
	}

	roleSortFields = map[string]string{
		"id":   "id",
		"name": "name",
	}

	taskSortFields = map[string]string{
		"id":       "id",
		"title":    "title",
		"status":   "status",
		"due_date": "due_date",
	}
)

// resolveSort validates sortBy against the entity's allow-list and builds
// the repository ordering. Empty sortBy means no ordering; order defaults to
// ascending.
func resolveSort(fields map[string]string, sortBy, order string) (repository.ListOptions, error) {
	switch order {
	case "", "asc", "desc":
	default:
		return repository.ListOptions{}, fmt.Errorf("%w: %q", ErrInvalidOrder, order)
	}

	if sortBy == "" {
		return repository.ListOptions{}, nil
	}

	column, ok := fields[sortBy]
	if !ok {
		return repository.ListOptions{}, fmt.Errorf("%w: %s", ErrInvalidSortField, sortBy)
	}

	return repository.ListOptions{
		SortColumn: column,
		Desc:       order == "desc",
	}, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64, preserving
// first-occurrence order.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
