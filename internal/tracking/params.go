package tracking

import "github.com/banshee-data/coasttrack/internal/config"

// Params holds the tuning constants of the per-track policy.
// A zero field means "use the default".
type Params struct {
	ReliableTrackDetections int     // True detections a track must exceed to earn coasting budget
	MinReliableHeight       float64 // Box height (px) a track must exceed to earn coasting budget
	MaxMotionDeltas         int     // Maximum finite differences in the extrapolation window
	AspectRatio             float64 // Width/height of extrapolated boxes
	ScoreGain               float64 // Constant gain applied when reweighting matched scores
	MinExtrapolatedHeight   float64 // Floor on extrapolated box height (px)
}

// DefaultParams returns the production-default policy constants.
func DefaultParams() Params {
	return Params{
		ReliableTrackDetections: 30,
		MinReliableHeight:       128,
		MaxMotionDeltas:         10,
		AspectRatio:             0.4,
		ScoreGain:               2,
		MinExtrapolatedHeight:   5.0,
	}
}

// ParamsFromTuning builds Params from a loaded TuningConfig.
func ParamsFromTuning(cfg *config.TuningConfig) Params {
	return Params{
		ReliableTrackDetections: cfg.GetReliableTrackDetections(),
		MinReliableHeight:       cfg.GetMinReliableHeight(),
		MaxMotionDeltas:         cfg.GetMaxMotionDeltas(),
		AspectRatio:             cfg.GetAspectRatio(),
		ScoreGain:               cfg.GetScoreGain(),
		MinExtrapolatedHeight:   cfg.GetMinExtrapolatedHeight(),
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.ReliableTrackDetections <= 0 {
		p.ReliableTrackDetections = d.ReliableTrackDetections
	}
	if p.MinReliableHeight <= 0 {
		p.MinReliableHeight = d.MinReliableHeight
	}
	if p.MaxMotionDeltas <= 0 {
		p.MaxMotionDeltas = d.MaxMotionDeltas
	}
	if p.AspectRatio <= 0 {
		p.AspectRatio = d.AspectRatio
	}
	if p.ScoreGain <= 0 {
		p.ScoreGain = d.ScoreGain
	}
	if p.MinExtrapolatedHeight <= 0 {
		p.MinExtrapolatedHeight = d.MinExtrapolatedHeight
	}
	return p
}
