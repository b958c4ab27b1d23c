package goldprice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshotDerivesCoinSizes(t *testing.T) {
	asOf := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

	snapshot := NewSnapshot(2570, 0, 0, 0, asOf)
	assert.Equal(t, 2570, snapshot.Gram)
	assert.Equal(t, 4498, snapshot.Quarter)
	assert.Equal(t, 8995, snapshot.Half)
	assert.Equal(t, 17990, snapshot.Full)
	assert.Equal(t, asOf, snapshot.AsOf)
}

func TestNewSnapshotDerivesGramFromQuarter(t *testing.T) {
	snapshot := NewSnapshot(0, 4498, 0, 0, time.Now())
	assert.Equal(t, 2570, snapshot.Gram)
	assert.Equal(t, 4498, snapshot.Quarter)
	assert.NotZero(t, snapshot.Half)
	assert.NotZero(t, snapshot.Full)
}

func TestNewSnapshotKeepsProviderValues(t *testing.T) {
	snapshot := NewSnapshot(2570, 4600, 9100, 18100, time.Now())
	assert.Equal(t, 4600, snapshot.Quarter)
	assert.Equal(t, 9100, snapshot.Half)
	assert.Equal(t, 18100, snapshot.Full)
}
