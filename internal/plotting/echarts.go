package plotting

import (
	"fmt"
	"io"

	"github.com/banshee-data/coasttrack/internal/tracking"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an HTML page with the track's image-plane trajectory
// and its box height per history index, observed and extrapolated
// entries in separate series.
func RenderHTML(w io.Writer, snap tracking.TrackSnapshot) error {
	observed, extrapolated := split(samples(snap))
	subtitle := fmt.Sprintf("class=%s len=%d true=%d budget=%d",
		snap.ObjectClass, len(snap.Detections), snap.NumTrueDetections, snap.ExtrapolationBudget)

	trajectory := charts.NewScatter()
	trajectory.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: fmt.Sprintf("Track %d", snap.ID), Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Track %d trajectory", snap.ID), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "center x (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "center y (px)", NameLocation: "middle", NameGap: 40}),
	)
	trajectory.AddSeries("observed", scatterData(observed, func(s sample) (float64, float64) { return s.CenterX, s.CenterY }),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	trajectory.AddSeries("extrapolated", scatterData(extrapolated, func(s sample) (float64, float64) { return s.CenterX, s.CenterY }),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	height := charts.NewScatter()
	height.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Track %d box height", snap.ID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "history index", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "height (px)", NameLocation: "middle", NameGap: 40}),
	)
	height.AddSeries("observed", scatterData(observed, func(s sample) (float64, float64) { return float64(s.Index), s.Height }),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	height.AddSeries("extrapolated", scatterData(extrapolated, func(s sample) (float64, float64) { return float64(s.Index), s.Height }),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	page := components.NewPage()
	page.AddCharts(trajectory, height)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render track %d chart: %w", snap.ID, err)
	}
	return nil
}

func scatterData(ss []sample, xy func(sample) (float64, float64)) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(ss))
	for _, s := range ss {
		x, y := xy(s)
		data = append(data, opts.ScatterData{Value: []interface{}{x, y}})
	}
	return data
}
