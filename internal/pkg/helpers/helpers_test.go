package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back to first", 0, 10, 0, 10},
		{"negative page falls back to first", -2, 10, 0, 10},
		{"zero size falls back to default", 2, 0, 10, DefaultPageSize},
		{"oversized page size is capped", 1, 500, 0, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		info := NewPaginationInfo(25, 1, 10)
		assert.Equal(t, 3, info.TotalPages)
		assert.Equal(t, int64(25), info.TotalItems)
	})

	t.Run("empty result still reports one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("page past the end clamps to the last page", func(t *testing.T) {
		info := NewPaginationInfo(25, 9, 10)
		assert.Equal(t, 3, info.CurrentPage)
	})
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("garbage", time.Minute))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, DaysUntil(now, now.AddDate(0, 0, 30)))
	assert.Equal(t, 0, DaysUntil(now, now.Add(6*time.Hour)))
	// Partial days round toward zero
	assert.Equal(t, 29, DaysUntil(now, now.AddDate(0, 0, 30).Add(-time.Hour)))
}
