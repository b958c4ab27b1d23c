package goldprice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchWindowsContains(t *testing.T) {
	windows := NewFetchWindows([]int{8, 12, 16}, 30*time.Minute)

	day := func(hour, minute int) time.Time {
		return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
	}

	assert.True(t, windows.Contains(day(8, 0)), "slot start is inclusive")
	assert.True(t, windows.Contains(day(8, 29)))
	assert.False(t, windows.Contains(day(8, 30)), "slot end is exclusive")
	assert.True(t, windows.Contains(day(12, 15)))
	assert.True(t, windows.Contains(day(16, 0)))
	assert.False(t, windows.Contains(day(7, 59)))
	assert.False(t, windows.Contains(day(10, 0)))
	assert.False(t, windows.Contains(day(23, 59)))
}

func TestNewFetchWindowsDropsInvalidHours(t *testing.T) {
	windows := NewFetchWindows([]int{16, -1, 8, 24, 12}, 30*time.Minute)
	assert.Equal(t, []int{8, 12, 16}, windows.Hours)
}

func TestFetchWindowsEmpty(t *testing.T) {
	windows := NewFetchWindows(nil, 30*time.Minute)
	assert.False(t, windows.Contains(time.Now()))
}
