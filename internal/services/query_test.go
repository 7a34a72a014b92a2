package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/repository"
)

func TestResolveSort_ValidField(t *testing.T) {
	opts, err := resolveSort(userSortFields, "username", "desc")
	require.NoError(t, err)
	assert.Equal(t, repository.ListOptions{SortColumn: "username", Desc: true}, opts)
}

func TestResolveSort_DefaultsToAscending(t *testing.T) {
	opts, err := resolveSort(taskSortFields, "due_date", "")
	require.NoError(t, err)
	assert.Equal(t, repository.ListOptions{SortColumn: "due_date", Desc: false}, opts)
}

func TestResolveSort_EmptySortByMeansNoOrdering(t *testing.T) {
	opts, err := resolveSort(userSortFields, "", "desc")
	require.NoError(t, err)
	assert.Equal(t, repository.ListOptions{}, opts)
}

func TestResolveSort_RejectsUnknownField(t *testing.T) {
	_, err := resolveSort(userSortFields, "password", "asc")
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Contains(t, err.Error(), "password")
}

func TestResolveSort_RejectsFieldFromOtherEntity(t *testing.T) {
	_, err := resolveSort(roleSortFields, "username", "asc")
	require.ErrorIs(t, err, ErrInvalidSortField)
}

func TestResolveSort_RejectsUnknownOrder(t *testing.T) {
	_, err := resolveSort(userSortFields, "username", "descending")
	require.ErrorIs(t, err, ErrInvalidOrder)
}

func TestUniqueUint64(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, uniqueUint64([]uint64{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueUint64(nil))
}
