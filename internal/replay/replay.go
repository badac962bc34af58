// Package replay drives tracks from a recorded event log.
//
// Each line of the log is a JSON object naming a frame, a track id, and
// whether the associator matched a detection to that track ("match") or
// reported no match ("miss"). The first event of a track id must be a
// match; it founds the track. Replay reports the reliability gate's
// decision after every event but never removes a track itself.
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/banshee-data/coasttrack/internal/tracking"
)

// Event kinds.
const (
	EventMatch = "match"
	EventMiss  = "miss"
)

var (
	// ErrUnknownEvent is returned for an event kind other than match or miss.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrMissBeforeFound is returned when a miss names a track that was never founded.
	ErrMissBeforeFound = errors.New("miss for a track with no founding detection")
	// ErrMissingDetection is returned when a match event carries no detection.
	ErrMissingDetection = errors.New("match event without detection")
)

// DetectionRecord is the wire form of a detection.
type DetectionRecord struct {
	Class string     `json:"class"`
	Box   [4]float64 `json:"box"` // min_x, min_y, max_x, max_y
	Score float64    `json:"score"`
}

// Event is one line of the log.
type Event struct {
	Frame     int              `json:"frame"`
	TrackID   int              `json:"track_id"`
	Event     string           `json:"event"`
	Detection *DetectionRecord `json:"detection,omitempty"`
}

// FrameReport is the state of one track after one event.
type FrameReport struct {
	Frame               int
	TrackID             int
	Event               string
	Box                 tracking.Rectangle
	Score               float64
	ExtrapolationLength int
	Budget              int
	Terminate           bool
}

// Options configures a replay.
type Options struct {
	MaxExtrapolationLength int
	Params                 tracking.Params

	// OnFrame, when set, is called with each report as it is produced.
	OnFrame func(FrameReport)
}

// Result holds every track and report produced by a replay.
type Result struct {
	Tracks  map[int]*tracking.Track
	Reports []FrameReport

	// TerminatedAt maps a track id to the first frame at which the gate
	// reported its budget exhausted.
	TerminatedAt map[int]int
}

// TrackIDs returns the ids of all replayed tracks in ascending order.
func (r *Result) TrackIDs() []int {
	ids := make([]int, 0, len(r.Tracks))
	for id := range r.Tracks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ToDetection converts the wire form into a tracking.Detection.
func (d DetectionRecord) ToDetection() (tracking.Detection, error) {
	class, err := tracking.ParseObjectClass(d.Class)
	if err != nil {
		return tracking.Detection{}, err
	}
	return tracking.Detection{
		ObjectClass: class,
		BoundingBox: tracking.Rectangle{
			Min: tracking.Point{X: d.Box[0], Y: d.Box[1]},
			Max: tracking.Point{X: d.Box[2], Y: d.Box[3]},
		},
		Score: d.Score,
	}, nil
}

// Run reads events from r until EOF and applies them in order.
// Blank lines and lines starting with '#' are skipped.
func Run(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	res := &Result{
		Tracks:       make(map[int]*tracking.Track),
		TerminatedAt: make(map[int]int),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return res, fmt.Errorf("line %d: parse event: %w", lineNo, err)
		}

		report, err := res.apply(ev, opts)
		if err != nil {
			return res, fmt.Errorf("line %d frame %d track %d: %w", lineNo, ev.Frame, ev.TrackID, err)
		}

		res.Reports = append(res.Reports, report)
		if report.Terminate {
			if _, seen := res.TerminatedAt[report.TrackID]; !seen {
				res.TerminatedAt[report.TrackID] = report.Frame
			}
		}
		if opts.OnFrame != nil {
			opts.OnFrame(report)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read events: %w", err)
	}
	return res, nil
}

func (res *Result) apply(ev Event, opts Options) (FrameReport, error) {
	track, exists := res.Tracks[ev.TrackID]

	switch ev.Event {
	case EventMatch:
		if ev.Detection == nil {
			return FrameReport{}, ErrMissingDetection
		}
		d, err := ev.Detection.ToDetection()
		if err != nil {
			return FrameReport{}, err
		}
		if !exists {
			track = tracking.NewTrack(ev.TrackID, d, opts.MaxExtrapolationLength, opts.Params)
			res.Tracks[ev.TrackID] = track
		} else if err := track.AddMatchedDetection(d); err != nil {
			return FrameReport{}, err
		}

	case EventMiss:
		if !exists {
			return FrameReport{}, ErrMissBeforeFound
		}
		track.SkipOneDetection()

	default:
		return FrameReport{}, fmt.Errorf("%w %q", ErrUnknownEvent, ev.Event)
	}

	current := track.CurrentDetection()
	return FrameReport{
		Frame:               ev.Frame,
		TrackID:             ev.TrackID,
		Event:               ev.Event,
		Box:                 current.BoundingBox,
		Score:               current.Score,
		ExtrapolationLength: track.ExtrapolationLength(),
		Budget:              track.MaxExtrapolationLength(),
		Terminate:           track.ShouldTerminate(),
	}, nil
}
