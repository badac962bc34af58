// Package tracking owns the per-object state of the bounding-box tracker.
//
// Responsibilities: holding one track's detection history, absorbing
// matched detections with score reweighting, extrapolating a box when a
// frame has no match, and gating how long a track may coast.
// Key types: Track, Detection, Rectangle, Params.
//
// Association of detections to tracks and deletion of tracks across the
// population belong to the caller. A Track is not safe for concurrent
// mutation; tracks share no state, so distinct tracks may be updated from
// distinct goroutines.
package tracking
