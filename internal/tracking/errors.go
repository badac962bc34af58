package tracking

import (
	"errors"
	"fmt"
)

// ErrClassMismatch is returned when a matched detection's class differs
// from the class the track was founded with.
var ErrClassMismatch = errors.New("detection class does not match track class")

// ClassMismatchError carries the details of a rejected detection.
type ClassMismatchError struct {
	TrackID int
	Track   ObjectClass
	Got     ObjectClass
}

func (e *ClassMismatchError) Error() string {
	return fmt.Sprintf("track %d: %v (track=%s, detection=%s)", e.TrackID, ErrClassMismatch, e.Track, e.Got)
}

func (e *ClassMismatchError) Unwrap() error { return ErrClassMismatch }
