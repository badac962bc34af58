package tracking

import "fmt"

// Point is a 2D image-plane position in pixels.
type Point struct {
	X float64
	Y float64
}

// Rectangle is an axis-aligned box given by its min and max corners.
type Rectangle struct {
	Min Point
	Max Point
}

// RectangleFromCenter builds a box of the given size centred on c.
func RectangleFromCenter(c Point, width, height float64) Rectangle {
	return Rectangle{
		Min: Point{X: c.X - width/2, Y: c.Y - height/2},
		Max: Point{X: c.X + width/2, Y: c.Y + height/2},
	}
}

// Width returns Max.X - Min.X.
func (r Rectangle) Width() float64 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y.
func (r Rectangle) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint of the two corners.
func (r Rectangle) Center() Point {
	return Point{
		X: (r.Max.X + r.Min.X) / 2.0,
		Y: (r.Max.Y + r.Min.Y) / 2.0,
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[(%.1f,%.1f) (%.1f,%.1f)]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
