package dateutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-01-10", 3)
	assert.NoError(t, err)
	assert.Equal(t, "2026-01-13", got)

	// переход через месяц
	got, err = AddDays("2026-01-30", 3)
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-02", got)

	got, err = AddDays("2026-03-01", -1)
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-28", got)

	_, err = AddDays("10.01.2026", 1)
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	d, err := DaysBetween("2026-01-14", "2026-01-15")
	assert.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = DaysBetween("2026-01-15", "2026-01-10")
	assert.NoError(t, err)
	assert.Equal(t, -5, d)

	d, err = DaysBetween("2025-12-31", "2026-01-01")
	assert.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestMax(t *testing.T) {
	assert.Equal(t, "2026-01-15", Max("2026-01-10", "2026-01-15"))
	assert.Equal(t, "2026-01-15", Max("2026-01-15", "2026-01-10"))
	assert.Equal(t, "2026-01-10", Max("2026-01-10", "2026-01-10"))
}

func TestInRange(t *testing.T) {
	// [start, end): старт включается, конец нет
	assert.True(t, InRange("2026-01-10", "2026-01-10", "2026-01-12"))
	assert.True(t, InRange("2026-01-11", "2026-01-10", "2026-01-12"))
	assert.False(t, InRange("2026-01-12", "2026-01-10", "2026-01-12"))
	assert.False(t, InRange("2026-01-09", "2026-01-10", "2026-01-12"))
}

func TestOverlap(t *testing.T) {
	assert.True(t, Overlap("2026-01-10", "2026-01-12", "2026-01-11", "2026-01-13"))
	// стык интервалов не пересечение
	assert.False(t, Overlap("2026-01-10", "2026-01-12", "2026-01-12", "2026-01-14"))
	assert.False(t, Overlap("2026-01-12", "2026-01-14", "2026-01-10", "2026-01-12"))
	assert.True(t, Overlap("2026-01-10", "2026-01-20", "2026-01-12", "2026-01-13"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("2026-01-10"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("2026-13-01"))
	assert.False(t, IsValid("2026-1-1"))
}
