package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSetPreservesInsertionOrder(t *testing.T) {
	fs := NewFilterSet()
	fs.Set(FilterRecordDate, "2025-06-14")
	fs.Set(FilterLocationCode, "KALWA")

	assert.Equal(t, []string{FilterRecordDate, FilterLocationCode}, fs.Keys())
	assert.Equal(t, 2, fs.Len())
	assert.False(t, fs.Empty())
}

func TestFilterSetFirstValueWins(t *testing.T) {
	fs := NewFilterSet()
	fs.Set(FilterDayOfWeek, "Monday")
	fs.Set(FilterDayOfWeek, "Tuesday")

	v, ok := fs.Get(FilterDayOfWeek)
	assert.True(t, ok)
	assert.Equal(t, "Monday", v)
	assert.Equal(t, 1, fs.Len())
}

func TestFilterSetEmpty(t *testing.T) {
	fs := NewFilterSet()
	assert.True(t, fs.Empty())

	_, ok := fs.Get(FilterFloor)
	assert.False(t, ok)
}
