// Package geometry holds the pure math used to hit-test, rotate and resize
// scene objects. Nothing here keeps state.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Box is the unrotated bounding box of a layer plus its rotation in radians
// about the box center.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

// Center returns the visual center of the box.
func (b Box) Center() Point {
	return Point{b.Left + b.Width/2, b.Top + b.Height/2}
}

// Inflate grows the box by pad on every side keeping its center and angle.
func (b Box) Inflate(pad float64) Box {
	b.Left -= pad
	b.Top -= pad
	b.Width += 2 * pad
	b.Height += 2 * pad
	return b
}

// Corners returns the four corners of the unrotated box in NW, NE, SW, SE order.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{b.Left, b.Top},
		{b.Left + b.Width, b.Top},
		{b.Left, b.Top + b.Height},
		{b.Left + b.Width, b.Top + b.Height},
	}
}

// RotatedPosition maps p into the unrotated frame of box by rotating it about
// the box center by -box.Angle. A zero angle returns p unchanged.
func RotatedPosition(p Point, box Box) Point {
	if box.Angle == 0 {
		return p
	}
	return fromVec(r2.Rotate(p.vec(), -box.Angle, box.Center().vec()))
}

// Rotate turns p about center by angle radians.
func Rotate(p, center Point, angle float64) Point {
	if angle == 0 {
		return p
	}
	return fromVec(r2.Rotate(p.vec(), angle, center.vec()))
}

// Bearing returns the angle of the vector from center to p.
func Bearing(center, p Point) float64 {
	d := r2.Sub(p.vec(), center.vec())
	return math.Atan2(d.Y, d.X)
}

// HitTest reports whether p falls inside box grown by padding, taking the box
// rotation into account.
func HitTest(p Point, box Box, padding float64) bool {
	r := RotatedPosition(p, box)
	if r.X < box.Left-padding || r.X > box.Left+box.Width+padding {
		return false
	}
	if r.Y < box.Top-padding || r.Y > box.Top+box.Height+padding {
		return false
	}
	return true
}

// CornerHit reports whether p lies within a square of half-size size centered
// on any corner of box grown by padding. The corner squares sit where the
// selection handles are drawn.
func CornerHit(p Point, box Box, padding, size float64) bool {
	r := RotatedPosition(p, box)
	for _, c := range box.Inflate(padding).Corners() {
		if math.Abs(r.X-c.X) <= size && math.Abs(r.Y-c.Y) <= size {
			return true
		}
	}
	return false
}

// Frontmost scans boxes from the last to the first and returns the index of
// the first one accepted by match whose padded, rotated area contains p. It
// returns -1 when nothing matches. A nil match accepts every box.
func Frontmost(p Point, boxes []Box, match func(i int) bool, padding float64) int {
	for i := len(boxes) - 1; i >= 0; i-- {
		if match != nil && !match(i) {
			continue
		}
		if HitTest(p, boxes[i], padding) {
			return i
		}
	}
	return -1
}

// Bounds returns the tight axis-aligned bounds of pts. ok is false for an
// empty slice.
func Bounds(pts []Point) (min, max Point, ok bool) {
	if len(pts) == 0 {
		return Point{}, Point{}, false
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, true
}
