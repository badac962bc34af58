package tracking

import (
	"testing"

	"github.com/banshee-data/coasttrack/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestParamsFromTuning(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultParams(), ParamsFromTuning(config.EmptyTuningConfig()))

	gain := 3.0
	deltas := 4
	cfg := &config.TuningConfig{ScoreGain: &gain, MaxMotionDeltas: &deltas}
	p := ParamsFromTuning(cfg)
	assert.Equal(t, 3.0, p.ScoreGain)
	assert.Equal(t, 4, p.MaxMotionDeltas)
	assert.Equal(t, 30, p.ReliableTrackDetections)
}

func TestParamsFromDefaultsFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultParams(), ParamsFromTuning(config.MustLoadDefaultConfig()))
}
