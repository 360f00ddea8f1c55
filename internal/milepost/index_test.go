package milepost

import (
	"testing"

	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/pkg/geo"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridRecords() []domain.RawCrossingRecord {
	var records []domain.RawCrossingRecord
	mp := 0.0
	// a 40x40 grid of 0.01 degree cells around Chicago
	for i := -20; i < 20; i++ {
		for j := -20; j < 20; j++ {
			records = append(records, record("BNSF", chicago.Lat()+float64(i)*0.01, chicago.Lon()+float64(j)*0.01, mp))
			mp++
		}
	}
	return records
}

func TestCrossingIndex_NearMatchesFullScan(t *testing.T) {
	records := gridRecords()
	idx := NewCrossingIndex(records)
	assert.Equal(t, len(records), idx.Len())

	radius := 5 * geo.MetersPerMile
	candidates := idx.Near(chicago, radius)
	assert.Less(t, len(candidates), len(records))

	withIndex := FilterNearby(candidates, chicago, 5, 10000)
	fullScan := FilterNearby(records, chicago, 5, 10000)
	require.NotEmpty(t, fullScan)
	require.Len(t, withIndex, len(fullScan))
	for i := range fullScan {
		assert.Equal(t, fullScan[i].Milepost, withIndex[i].Milepost)
	}
}

func TestCrossingIndex_KeepsUnreadableRecords(t *testing.T) {
	bad := record("UP", 0, 0, 1)
	bad.Lat = "?"
	far := record("UP", 10, 10, 2)
	near := record("UP", chicago.Lat(), chicago.Lon(), 3)

	idx := NewCrossingIndex([]domain.RawCrossingRecord{bad, far, near})
	got := idx.Near(chicago, 1000)

	require.Len(t, got, 2)
	assert.Equal(t, bad, got[0], "dataset order is kept")
	assert.Equal(t, near, got[1])
}

func TestCrossingIndex_WrapsToFullScan(t *testing.T) {
	records := []domain.RawCrossingRecord{record("ARR", 64.8, 179.99, 1), record("ARR", 64.8, -179.99, 2)}
	idx := NewCrossingIndex(records)
	got := idx.Near(orb.Point{179.999, 64.8}, 5000)
	assert.Len(t, got, 2)
}

func TestCrossingIndex_Empty(t *testing.T) {
	idx := NewCrossingIndex(nil)
	assert.Empty(t, idx.Near(chicago, 1000))
	assert.Equal(t, 0, idx.Len())
}
