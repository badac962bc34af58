package plotting

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/coasttrack/internal/tracking"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	observedColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	extrapolatedColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// SavePNG writes the track's box height per history index to path. The
// observed entries are drawn as a line and extrapolated entries as points.
func SavePNG(path string, snap tracking.TrackSnapshot) error {
	observed, extrapolated := split(samples(snap))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Track %d (%s) - box height", snap.ID, snap.ObjectClass)
	p.X.Label.Text = "History index"
	p.Y.Label.Text = "Height (px)"

	if len(observed) > 0 {
		line, err := plotter.NewLine(heightXYs(observed))
		if err != nil {
			return err
		}
		line.Color = observedColor
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add("observed", line)
	}

	if len(extrapolated) > 0 {
		points, err := plotter.NewScatter(heightXYs(extrapolated))
		if err != nil {
			return err
		}
		points.GlyphStyle.Color = extrapolatedColor
		points.GlyphStyle.Radius = vg.Points(2)
		p.Add(points)
		p.Legend.Add("extrapolated", points)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save track %d plot: %w", snap.ID, err)
	}
	return nil
}

func heightXYs(ss []sample) plotter.XYs {
	pts := make(plotter.XYs, 0, len(ss))
	for _, s := range ss {
		pts = append(pts, plotter.XY{X: float64(s.Index), Y: s.Height})
	}
	return pts
}
