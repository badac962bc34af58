package tracking

import "fmt"

// ObjectClass identifies the detector class of a detection.
type ObjectClass int

const (
	ClassPedestrian ObjectClass = iota
	ClassCar
	ClassBicycle
	ClassOther
)

func (c ObjectClass) String() string {
	switch c {
	case ClassPedestrian:
		return "pedestrian"
	case ClassCar:
		return "car"
	case ClassBicycle:
		return "bicycle"
	case ClassOther:
		return "other"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// ParseObjectClass maps a class name back to its ObjectClass.
func ParseObjectClass(s string) (ObjectClass, error) {
	switch s {
	case "pedestrian":
		return ClassPedestrian, nil
	case "car":
		return ClassCar, nil
	case "bicycle":
		return ClassBicycle, nil
	case "other":
		return ClassOther, nil
	}
	return 0, fmt.Errorf("unknown object class %q", s)
}

// Detection is one observation of an object in one frame.
//
// Entries stored in a Track's history carry the reweighted score rather
// than the detector score, and Extrapolated marks entries synthesized by
// SkipOneDetection.
type Detection struct {
	ObjectClass  ObjectClass
	BoundingBox  Rectangle
	Score        float64
	Extrapolated bool
}
