// Package math provides the small vector and matrix types used by the mesh
// geometry code. All types are float64 value types.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// NormalizeOr returns a unit vector, or fallback when the length of v is at
// most eps.
func (v Vec2) NormalizeOr(eps float64, fallback Vec2) Vec2 {
	l := v.Length()
	if l <= eps {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}
