// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Norm returns the Euclidean length of the point treated as a vector.
func (p Point2D) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Unit returns the point normalized to unit length. The second return
// value is false when the vector is too short to normalize.
func (p Point2D) Unit() (Point2D, bool) {
	n := p.Norm()
	if n <= 1e-6 {
		return Point2D{}, false
	}
	return Point2D{X: p.X / n, Y: p.Y / n}, true
}

// AngleRad returns the atan2 angle of the vector in radians.
// In image coordinates (y down) this increases clockwise, with zero
// pointing right (3 o'clock).
func (p Point2D) AngleRad() float64 {
	return math.Atan2(p.Y, p.X)
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// XYXY returns the rectangle as (xMin, yMin, xMax, yMax).
func (r Rect) XYXY() (float64, float64, float64, float64) {
	return r.X, r.Y, r.X + r.Width, r.Y + r.Height
}

// Ellipse represents an ellipse by center, radii, and rotation in degrees.
type Ellipse struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	RX       float64 `json:"rx"`
	RY       float64 `json:"ry"`
	Rotation float64 `json:"rotation"`
}

// Center returns the ellipse center.
func (e Ellipse) Center() Point2D {
	return Point2D{X: e.CX, Y: e.CY}
}

// MaxRadius returns the larger of the two radii.
func (e Ellipse) MaxRadius() float64 {
	return math.Max(e.RX, e.RY)
}

// BoundingBox returns the axis-aligned bounding box of the ellipse,
// ignoring rotation, widened by padRatio of each radius on every side.
func (e Ellipse) BoundingBox(padRatio float64) Rect {
	padX := e.RX * padRatio
	padY := e.RY * padRatio
	return Rect{
		X:      e.CX - e.RX - padX,
		Y:      e.CY - e.RY - padY,
		Width:  2 * (e.RX + padX),
		Height: 2 * (e.RY + padY),
	}
}
