package milepost

import (
	"testing"

	"github.com/milepost-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderAnchor = orb.Point{-87.0004, 41.001}

func renderFixture() []domain.RailLine {
	lines := []domain.RailLine{
		// anchor sits over the stretch between mileposts 2 and 3
		{Railroad: "UP", Points: []*domain.Point{
			point("UP", 41, -87.002, 1),
			point("UP", 41, -87.001, 2),
			point("UP", 41, -87.000, 3),
		}},
		// entirely east of the anchor: nearest approach is its west end
		{Railroad: "CN", Points: []*domain.Point{
			point("CN", 41, -86.990, 20),
			point("CN", 41, -86.989, 21),
		}},
		{Railroad: "BNSF", Points: []*domain.Point{point("BNSF", 41, -87, 5)}},
	}
	return Recompute(domain.AnchorState{Lines: lines}, renderAnchor, 1).Lines
}

func TestPlanRender_TwoPointLines(t *testing.T) {
	lines := renderFixture()

	plan := PlanRender(lines, renderAnchor, 2, false)

	require.Len(t, plan.Markers, 1)
	assert.Equal(t, "UP", plan.Markers[0].Railroad)
	assert.Equal(t, 2.6, plan.Markers[0].Milepost)

	// CN had no interior nearest point and is dropped; BNSF is a single point
	require.Len(t, plan.Polylines, 1)
	assert.Equal(t, "UP", plan.Polylines[0].Railroad)
	assert.Equal(t, []float64{2, 3}, mileposts(plan.Polylines[0]))
}

func TestPlanRender_KeepUnprojected(t *testing.T) {
	plan := PlanRender(renderFixture(), renderAnchor, 2, true)

	assert.Len(t, plan.Markers, 1)
	require.Len(t, plan.Polylines, 2)
	assert.Equal(t, "CN", plan.Polylines[1].Railroad)
	assert.Equal(t, []float64{20, 21}, mileposts(plan.Polylines[1]))
}

func TestPlanRender_LongLinesHaveNoMarker(t *testing.T) {
	plan := PlanRender(renderFixture(), renderAnchor, 3, false)

	// only CN (two points, endpoint projection) could have had a marker
	assert.Empty(t, plan.Markers)
	require.Len(t, plan.Polylines, 1)
	assert.Equal(t, []float64{1, 2, 3}, mileposts(plan.Polylines[0]))
}

func TestPlanRender_DoesNotMutateLines(t *testing.T) {
	lines := renderFixture()
	before := mileposts(lines[0])
	first := lines[0].Points[0]

	PlanRender(lines, renderAnchor, 2, false)

	assert.Equal(t, before, mileposts(lines[0]))
	assert.Same(t, first, lines[0].Points[0])
	assert.Len(t, lines[0].Points, 3)
}

func TestPlanRender_Empty(t *testing.T) {
	plan := PlanRender(nil, renderAnchor, 2, false)
	assert.Empty(t, plan.Markers)
	assert.Empty(t, plan.Polylines)
}
