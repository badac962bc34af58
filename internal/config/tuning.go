package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the track tuning parameters. Every field is optional;
// the Get* methods supply the default for any field left unset.
type TuningConfig struct {
	// Reliability gate
	MaxExtrapolationLength  *int     `json:"max_extrapolation_length,omitempty"`
	ReliableTrackDetections *int     `json:"reliable_track_detections,omitempty"`
	MinReliableHeight       *float64 `json:"min_reliable_height,omitempty"`

	// Motion extrapolation
	MaxMotionDeltas       *int     `json:"max_motion_deltas,omitempty"`
	AspectRatio           *float64 `json:"aspect_ratio,omitempty"`
	MinExtrapolatedHeight *float64 `json:"min_extrapolated_height,omitempty"`

	// Score reweighting
	ScoreGain *float64 `json:"score_gain,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	empty := EmptyTuningConfig()
	return &TuningConfig{
		MaxExtrapolationLength:  ptrInt(empty.GetMaxExtrapolationLength()),
		ReliableTrackDetections: ptrInt(empty.GetReliableTrackDetections()),
		MinReliableHeight:       ptrFloat64(empty.GetMinReliableHeight()),
		MaxMotionDeltas:         ptrInt(empty.GetMaxMotionDeltas()),
		AspectRatio:             ptrFloat64(empty.GetAspectRatio()),
		MinExtrapolatedHeight:   ptrFloat64(empty.GetMinExtrapolatedHeight()),
		ScoreGain:               ptrFloat64(empty.GetScoreGain()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
// Fields omitted from the file fall back to their defaults.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MaxExtrapolationLength != nil && *c.MaxExtrapolationLength < 0 {
		return fmt.Errorf("max_extrapolation_length must be non-negative, got %d", *c.MaxExtrapolationLength)
	}
	if c.ReliableTrackDetections != nil && *c.ReliableTrackDetections < 1 {
		return fmt.Errorf("reliable_track_detections must be at least 1, got %d", *c.ReliableTrackDetections)
	}
	if c.MinReliableHeight != nil && *c.MinReliableHeight <= 0 {
		return fmt.Errorf("min_reliable_height must be positive, got %f", *c.MinReliableHeight)
	}
	if c.MaxMotionDeltas != nil && *c.MaxMotionDeltas < 1 {
		return fmt.Errorf("max_motion_deltas must be at least 1, got %d", *c.MaxMotionDeltas)
	}
	if c.AspectRatio != nil && *c.AspectRatio <= 0 {
		return fmt.Errorf("aspect_ratio must be positive, got %f", *c.AspectRatio)
	}
	if c.MinExtrapolatedHeight != nil && *c.MinExtrapolatedHeight <= 0 {
		return fmt.Errorf("min_extrapolated_height must be positive, got %f", *c.MinExtrapolatedHeight)
	}
	if c.ScoreGain != nil && *c.ScoreGain <= 0 {
		return fmt.Errorf("score_gain must be positive, got %f", *c.ScoreGain)
	}
	return nil
}

// GetMaxExtrapolationLength returns the max_extrapolation_length value or the default.
func (c *TuningConfig) GetMaxExtrapolationLength() int {
	if c.MaxExtrapolationLength == nil {
		return 15 // ~1 second at 15 fps
	}
	return *c.MaxExtrapolationLength
}

// GetReliableTrackDetections returns the reliable_track_detections value or the default.
func (c *TuningConfig) GetReliableTrackDetections() int {
	if c.ReliableTrackDetections == nil {
		return 30
	}
	return *c.ReliableTrackDetections
}

// GetMinReliableHeight returns the min_reliable_height value or the default.
func (c *TuningConfig) GetMinReliableHeight() float64 {
	if c.MinReliableHeight == nil {
		return 128
	}
	return *c.MinReliableHeight
}

// GetMaxMotionDeltas returns the max_motion_deltas value or the default.
func (c *TuningConfig) GetMaxMotionDeltas() int {
	if c.MaxMotionDeltas == nil {
		return 10
	}
	return *c.MaxMotionDeltas
}

// GetAspectRatio returns the aspect_ratio value or the default.
func (c *TuningConfig) GetAspectRatio() float64 {
	if c.AspectRatio == nil {
		return 0.4
	}
	return *c.AspectRatio
}

// GetMinExtrapolatedHeight returns the min_extrapolated_height value or the default.
func (c *TuningConfig) GetMinExtrapolatedHeight() float64 {
	if c.MinExtrapolatedHeight == nil {
		return 5.0
	}
	return *c.MinExtrapolatedHeight
}

// GetScoreGain returns the score_gain value or the default.
func (c *TuningConfig) GetScoreGain() float64 {
	if c.ScoreGain == nil {
		return 2.0
	}
	return *c.ScoreGain
}
