package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestSession_CommitDiscardsStaleResponses(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession(uuid.New(), now)

	first := s.BeginRequest()
	second := s.BeginRequest()
	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)

	// the second request resolves first
	assert.True(t, s.Commit(AnchorState{RequestID: second, Anchor: orb.Point{2, 2}, Fetched: true}, now.Add(time.Second)))
	// the slower first request must not overwrite it
	assert.False(t, s.Commit(AnchorState{RequestID: first, Anchor: orb.Point{1, 1}, Fetched: true}, now.Add(2*time.Second)))

	state := s.State()
	assert.Equal(t, orb.Point{2, 2}, state.Anchor)
	assert.Equal(t, now.Add(time.Second), s.UpdatedAt())
}

func TestSession_ConcurrentRequestIDsAreUnique(t *testing.T) {
	s := NewSession(uuid.New(), time.Now())

	var wg sync.WaitGroup
	ids := make(chan uint64, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.BeginRequest()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}

func TestAnchorState_IsEmpty(t *testing.T) {
	assert.True(t, AnchorState{}.IsEmpty())
	assert.False(t, AnchorState{Fetched: true}.IsEmpty())
}

func TestRailLine_CloneIsIndependent(t *testing.T) {
	line := RailLine{Railroad: "BNSF", Points: []*Point{{Milepost: 1}, {Milepost: 2}}}
	cp := line.Clone()
	cp.Points[0].DistanceToAnchor = 99
	cp.Points[0], cp.Points[1] = cp.Points[1], cp.Points[0]

	assert.Equal(t, 0.0, line.Points[0].DistanceToAnchor)
	assert.Equal(t, 1.0, line.Points[0].Milepost)
	assert.True(t, line.Drawable())
	assert.Equal(t, orb.LineString{{0, 0}, {0, 0}}, line.Path())
}
