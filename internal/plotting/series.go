// Package plotting renders one track's history as charts: an HTML page
// via go-echarts and a PNG via gonum/plot.
package plotting

import "github.com/banshee-data/coasttrack/internal/tracking"

// sample is one history entry reduced to the values that get charted.
type sample struct {
	Index        int
	CenterX      float64
	CenterY      float64
	Height       float64
	Extrapolated bool
}

func samples(snap tracking.TrackSnapshot) []sample {
	out := make([]sample, len(snap.Detections))
	for i, d := range snap.Detections {
		c := d.BoundingBox.Center()
		out[i] = sample{
			Index:        i,
			CenterX:      c.X,
			CenterY:      c.Y,
			Height:       d.BoundingBox.Height(),
			Extrapolated: d.Extrapolated,
		}
	}
	return out
}

// split partitions samples into observed and extrapolated entries.
func split(ss []sample) (observed, extrapolated []sample) {
	for _, s := range ss {
		if s.Extrapolated {
			extrapolated = append(extrapolated, s)
		} else {
			observed = append(observed, s)
		}
	}
	return observed, extrapolated
}
