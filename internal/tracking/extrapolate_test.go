package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBoxInDelta(t *testing.T, want, got Rectangle) {
	t.Helper()
	assert.InDelta(t, want.Min.X, got.Min.X, 1e-9, "min x")
	assert.InDelta(t, want.Min.Y, got.Min.Y, 1e-9, "min y")
	assert.InDelta(t, want.Max.X, got.Max.X, 1e-9, "max x")
	assert.InDelta(t, want.Max.Y, got.Max.Y, 1e-9, "max y")
}

func TestSkipOneDetection_SingleEntryKeepsBox(t *testing.T) {
	t.Parallel()

	founding := pedestrian(box(50, 100, 33, 100), 0.6)
	track := NewTrack(1, founding, 10, Params{})
	track.SkipOneDetection()

	require.Equal(t, 2, track.Length())
	assert.Equal(t, founding.BoundingBox, track.CurrentBoundingBox())
	assert.Equal(t, 0.6, track.CurrentDetection().Score)
	assert.Equal(t, ClassPedestrian, track.CurrentDetection().ObjectClass)
	assert.True(t, track.CurrentDetection().Extrapolated)
	assert.Equal(t, 1, track.ExtrapolationLength())
}

func TestSkipOneDetection_SingleDelta(t *testing.T) {
	t.Parallel()

	track := NewTrack(1, pedestrian(box(50, 100, 40, 100), 0.6), 10, Params{})
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(60, 100, 40, 100), 0.6)))

	track.SkipOneDetection()

	// One delta of +10 in x weighted 1/(1*2/0.5) = 0.25.
	assertBoxInDelta(t, box(62.5, 100, 40, 100), track.CurrentBoundingBox())
}

func TestSkipOneDetection_TriangularWeights(t *testing.T) {
	t.Parallel()

	track := NewTrack(1, pedestrian(box(0, 0, 40, 100), 0.6), 10, Params{})
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(10, -5, 40, 100), 0.6)))
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(30, -5, 40, 110), 0.6)))

	track.SkipOneDetection()

	// Deltas x=(10,20) y=(-5,0) h=(0,10); weights (1/12, 2/12).
	wantHeight := 110 + 20.0/12
	want := box(30+50.0/12, -5-5.0/12, wantHeight*0.4, wantHeight)
	assertBoxInDelta(t, want, track.CurrentBoundingBox())
}

func TestSkipOneDetection_WindowCappedAtMaxDeltas(t *testing.T) {
	t.Parallel()

	track := NewTrack(1, pedestrian(box(0, 200, 40, 100), 0.6), 10, Params{})
	for i := 1; i < 15; i++ {
		require.NoError(t, track.AddMatchedDetection(pedestrian(box(float64(12*i), 200, 40, 100), 0.6)))
	}
	require.Equal(t, 15, track.Length())

	track.SkipOneDetection()

	// Ten deltas of 12 with weights summing to 55/220.
	assertBoxInDelta(t, box(168+3, 200, 40, 100), track.CurrentBoundingBox())
}

func TestSkipOneDetection_IgnoresDeltasOutsideWindow(t *testing.T) {
	t.Parallel()

	params := Params{MaxMotionDeltas: 1}
	track := NewTrack(1, pedestrian(box(-500, 0, 40, 100), 0.6), 10, params)
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(0, 0, 40, 100), 0.6)))
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(4, 0, 40, 100), 0.6)))

	track.SkipOneDetection()

	assertBoxInDelta(t, box(5, 0, 40, 100), track.CurrentBoundingBox())
}

func TestSkipOneDetection_HeightFloor(t *testing.T) {
	t.Parallel()

	track := NewTrack(1, pedestrian(box(0, 0, 40, 4100), 0.6), 10, Params{})
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(0, 0, 40, 100), 0.6)))

	track.SkipOneDetection()

	got := track.CurrentBoundingBox()
	// Height motion is -4000 * 0.25 = -1000.
	assert.Equal(t, 5.0, got.Height())
	assert.Equal(t, 2.0, got.Width())
	assert.Equal(t, Point{X: 0, Y: 0}, got.Center())
}

func TestSkipOneDetection_ConsecutiveExtrapolationsKeepMoving(t *testing.T) {
	t.Parallel()

	track := NewTrack(1, pedestrian(box(0, 0, 40, 100), 0.6), 10, Params{})
	for i := 1; i <= 4; i++ {
		require.NoError(t, track.AddMatchedDetection(pedestrian(box(float64(8*i), 0, 40, 100), 0.6)))
	}

	prevX := track.CurrentBoundingBox().Center().X
	for i := 0; i < 5; i++ {
		track.SkipOneDetection()
		x := track.CurrentBoundingBox().Center().X
		assert.Greater(t, x, prevX, "extrapolation %d should keep moving right", i)
		prevX = x
	}
	assert.Equal(t, 5, track.ExtrapolationLength())
	assert.Equal(t, 0, track.ConsecutiveDetections())
	assert.Equal(t, 10, track.Length())
}

func TestSkipOneDetection_AspectRatioParam(t *testing.T) {
	t.Parallel()

	track := NewTrack(1, pedestrian(box(0, 0, 40, 100), 0.6), 10, Params{AspectRatio: 0.5})
	require.NoError(t, track.AddMatchedDetection(pedestrian(box(0, 0, 40, 100), 0.6)))

	track.SkipOneDetection()
	assert.InDelta(t, 50.0, track.CurrentBoundingBox().Width(), 1e-9)
}
