package tracking

// Track is the accumulated state of one object followed across frames.
//
// The caller drives a Track with exactly one of AddMatchedDetection or
// SkipOneDetection per frame, then consults MaxExtrapolationLength to
// decide whether the track may keep coasting.
type Track struct {
	id                     int
	objectClass            ObjectClass
	maxExtrapolationLength int
	params                 Params

	// detectionsInTime mixes matched and extrapolated entries; index 0 is
	// the founding detection. It is append-only and never empty.
	detectionsInTime []Detection

	maxDetectionScore float64 // Running max over matched detector scores

	numTrueDetectionsInTime   int // Matched detections since creation (founding excluded)
	numExtrapolatedDetections int // Consecutive extrapolations since the last match
	numConsecutiveDetections  int // Consecutive matches since the last extrapolation
	maxConsecutiveDetections  int
}

// TrackSnapshot is a point-in-time copy of a track's state for reporting
// and persistence.
type TrackSnapshot struct {
	ID                        int
	ObjectClass               ObjectClass
	MaxExtrapolationLength    int
	Detections                []Detection
	MaxDetectionScore         float64
	NumTrueDetections         int
	NumExtrapolatedDetections int
	NumConsecutiveDetections  int
	MaxConsecutiveDetections  int
	ExtrapolationBudget       int
}

// NewTrack founds a track from its first detection. The founding detection
// fixes the track's object class and is not counted as a true detection.
func NewTrack(id int, founding Detection, maxExtrapolationLength int, params Params) *Track {
	if maxExtrapolationLength < 0 {
		maxExtrapolationLength = 0
	}
	founding.Extrapolated = false

	history := make([]Detection, 1, 32)
	history[0] = founding

	tracef("track %d founded class=%s box=%s score=%.3f", id, founding.ObjectClass, founding.BoundingBox, founding.Score)

	return &Track{
		id:                     id,
		objectClass:            founding.ObjectClass,
		maxExtrapolationLength: maxExtrapolationLength,
		params:                 params.withDefaults(),
		detectionsInTime:       history,
		maxDetectionScore:      founding.Score,
	}
}

// AddMatchedDetection absorbs a detection the associator matched to this
// track. A detection of a different class is rejected with a
// *ClassMismatchError and leaves the track unchanged.
//
// The stored copy of d carries a reweighted score: the best score seen so
// far, scaled by the fraction of history that was observed rather than
// extrapolated, times Params.ScoreGain.
func (t *Track) AddMatchedDetection(d Detection) error {
	if d.ObjectClass != t.objectClass {
		opsf("track %d: rejected %s detection, track class is %s", t.id, d.ObjectClass, t.objectClass)
		return &ClassMismatchError{TrackID: t.id, Track: t.objectClass, Got: d.ObjectClass}
	}

	if d.Score > t.maxDetectionScore {
		t.maxDetectionScore = d.Score
	}

	d.Extrapolated = false
	t.detectionsInTime = append(t.detectionsInTime, d)
	t.numTrueDetectionsInTime++

	last := &t.detectionsInTime[len(t.detectionsInTime)-1]
	last.Score = t.maxDetectionScore
	last.Score *= float64(t.numTrueDetectionsInTime) / float64(len(t.detectionsInTime))
	last.Score *= t.params.ScoreGain

	t.numExtrapolatedDetections = 0
	t.numConsecutiveDetections++
	if t.numConsecutiveDetections > t.maxConsecutiveDetections {
		t.maxConsecutiveDetections = t.numConsecutiveDetections
	}

	tracef("track %d matched box=%s score=%.3f stored=%.3f streak=%d",
		t.id, d.BoundingBox, d.Score, last.Score, t.numConsecutiveDetections)
	return nil
}

// ID returns the identity assigned at creation.
func (t *Track) ID() int { return t.id }

// ObjectClass returns the class fixed by the founding detection.
func (t *Track) ObjectClass() ObjectClass { return t.objectClass }

// CurrentDetection returns the most recent history entry.
func (t *Track) CurrentDetection() Detection {
	return t.detectionsInTime[len(t.detectionsInTime)-1]
}

// CurrentBoundingBox returns the box of the most recent history entry.
func (t *Track) CurrentBoundingBox() Rectangle {
	return t.CurrentDetection().BoundingBox
}

// DetectionsInTime returns a copy of the full history, oldest first.
func (t *Track) DetectionsInTime() []Detection {
	out := make([]Detection, len(t.detectionsInTime))
	copy(out, t.detectionsInTime)
	return out
}

// Length returns the number of history entries, matched and extrapolated.
func (t *Track) Length() int { return len(t.detectionsInTime) }

// ExtrapolationLength returns the number of consecutive extrapolated
// frames since the last match.
func (t *Track) ExtrapolationLength() int { return t.numExtrapolatedDetections }

// MaxDetectionScore returns the best detector score among matched detections.
func (t *Track) MaxDetectionScore() float64 { return t.maxDetectionScore }

// NumTrueDetections returns the number of matched detections since creation.
func (t *Track) NumTrueDetections() int { return t.numTrueDetectionsInTime }

// ConsecutiveDetections returns the current run of matched frames.
func (t *Track) ConsecutiveDetections() int { return t.numConsecutiveDetections }

// MaxConsecutiveDetections returns the longest run of matched frames.
func (t *Track) MaxConsecutiveDetections() int { return t.maxConsecutiveDetections }

// Params returns the policy constants in effect for this track.
func (t *Track) Params() Params { return t.params }

// Snapshot copies the track state.
func (t *Track) Snapshot() TrackSnapshot {
	return TrackSnapshot{
		ID:                        t.id,
		ObjectClass:               t.objectClass,
		MaxExtrapolationLength:    t.maxExtrapolationLength,
		Detections:                t.DetectionsInTime(),
		MaxDetectionScore:         t.maxDetectionScore,
		NumTrueDetections:         t.numTrueDetectionsInTime,
		NumExtrapolatedDetections: t.numExtrapolatedDetections,
		NumConsecutiveDetections:  t.numConsecutiveDetections,
		MaxConsecutiveDetections:  t.maxConsecutiveDetections,
		ExtrapolationBudget:       t.MaxExtrapolationLength(),
	}
}
