package tracking

// MaxExtrapolationLength returns how many consecutive extrapolated frames
// this track is currently allowed. Only tracks that have been observed for
// long enough and are tall enough earn the configured budget; all others
// get zero and should be dropped on their first miss.
func (t *Track) MaxExtrapolationLength() int {
	numTrueInWindow := len(t.detectionsInTime) - t.numExtrapolatedDetections
	if numTrueInWindow < 1 {
		numTrueInWindow = 1
	}
	hasEnoughDetections := numTrueInWindow > t.params.ReliableTrackDetections

	height := t.CurrentBoundingBox().Height()
	isHighEnough := height > t.params.MinReliableHeight

	if hasEnoughDetections && isHighEnough {
		return t.maxExtrapolationLength
	}
	return 0
}

// ShouldTerminate reports whether the current extrapolation run has
// outlasted the gate's budget. Deleting the track is left to the caller.
func (t *Track) ShouldTerminate() bool {
	budget := t.MaxExtrapolationLength()
	terminate := t.numExtrapolatedDetections > budget
	if terminate {
		diagf("track %d exceeded extrapolation budget: run=%d budget=%d len=%d height=%.1f",
			t.id, t.numExtrapolatedDetections, budget, len(t.detectionsInTime), t.CurrentBoundingBox().Height())
	}
	return terminate
}
