package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignEmptyRoster(t *testing.T) {
	_, err := Assign(nil, time.Now(), nil)
	require.ErrorIs(t, err, ErrEmptyRoster)
}

func TestAssignMonthsStartAtCurrent(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	seed := int64(42)

	slots, err := Assign([]string{"a", "b", "c", "d", "e"}, now, &seed)
	require.NoError(t, err)
	require.Len(t, slots, 5)

	for i, slot := range slots {
		assert.Equal(t, 3+i, slot.Month)
		assert.Equal(t, 2025, slot.Year)
	}
}

func TestAssignDecemberRollsIntoNextYear(t *testing.T) {
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	seed := int64(7)

	slots, err := Assign([]string{"a", "b", "c", "d"}, now, &seed)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, Slot{Month: 11, Year: 2025, HostMemberID: slots[0].HostMemberID}, slots[0])
	assert.Equal(t, 12, slots[1].Month)
	assert.Equal(t, 2025, slots[1].Year)
	assert.Equal(t, 1, slots[2].Month)
	assert.Equal(t, 2026, slots[2].Year)
	assert.Equal(t, 2, slots[3].Month)
	assert.Equal(t, 2026, slots[3].Year)
}

func TestAssignEveryMemberHostsOnce(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	members := []string{"a", "b", "c", "d", "e", "f", "g"}

	slots, err := Assign(members, now, nil)
	require.NoError(t, err)
	require.Len(t, slots, len(members))

	seen := make(map[string]int, len(members))
	for _, slot := range slots {
		seen[slot.HostMemberID]++
	}
	for _, id := range members {
		assert.Equal(t, 1, seen[id], "member %s", id)
	}
}

func TestAssignSeededIsReproducible(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	members := []string{"a", "b", "c", "d", "e", "f"}
	seed := int64(12345)

	first, err := Assign(members, now, &seed)
	require.NoError(t, err)
	second, err := Assign(members, now, &seed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssignDoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	members := []string{"a", "b", "c", "d"}
	seed := int64(99)

	_, err := Assign(members, now, &seed)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, members)
}

func TestSeededRandStream(t *testing.T) {
	first := NewSeeded(42)
	second := NewSeeded(42)

	for i := 0; i < 10; i++ {
		a := first()
		b := second()
		assert.Equal(t, a, b, "draw %d", i)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.Less(t, a, 1.0)
	}
}

func TestAssignNegativeSeed(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	members := []string{"a", "b", "c"}

	for _, seed := range []int64{-1, -6, -100, -99999} {
		seed := seed
		slots, err := Assign(members, now, &seed)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, slots, len(members), "seed %d", seed)

		seen := make(map[string]int, len(members))
		for _, slot := range slots {
			seen[slot.HostMemberID]++
		}
		for _, id := range members {
			assert.Equal(t, 1, seen[id], "seed %d member %s", seed, id)
		}
	}
}

func TestSeededRandNegativeSeedStaysInRange(t *testing.T) {
	random := NewSeeded(-6)
	for i := 0; i < 100; i++ {
		value := random()
		assert.GreaterOrEqual(t, value, 0.0, "draw %d", i)
		assert.Less(t, value, 1.0, "draw %d", i)
	}
}

func TestSeededRandDiffersBySeed(t *testing.T) {
	a := NewSeeded(1)()
	b := NewSeeded(2)()
	assert.NotEqual(t, a, b)
}
