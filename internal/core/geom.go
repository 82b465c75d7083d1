// Package core provides fundamental types and utilities for the arcade world.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Box is an axis-aligned rectangle used for entity placement and collision.
// Origin is top-left and y grows downward.
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// CellBox returns the box covering grid cell (x, y) for the given cell size.
func CellBox(x, y int, size float64) Box {
	return Box{X: float64(x) * size, Y: float64(y) * size, W: size, H: size}
}

// Valid reports whether the box has a positive area.
func (b Box) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Overlaps reports whether a and b intersect with non-zero area.
// Boxes that only share an edge do not overlap.
func Overlaps(a, b Box) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// OutOfBounds reports whether any edge of box lies outside bounds.
func OutOfBounds(box, bounds Box) bool {
	return box.X < bounds.X ||
		box.Y < bounds.Y ||
		box.Right() > bounds.Right() ||
		box.Bottom() > bounds.Bottom()
}

// Distance returns the distance between the centers of two boxes.
func Distance(a, b Box) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	return math.Hypot(ax-bx, ay-by)
}
