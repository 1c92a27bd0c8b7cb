// Package blueprint turns raw, untrusted vertex, triangle and inclusion arrays
// into a validated mesh description that the mesh package can be built from.
package blueprint

import (
	"fmt"

	"github.com/Faultbox/dtsmesh/pkg/math"
)

// DirectionEpsilon is the length at or below which an inclusion direction is
// replaced by the canonical direction (1, 0).
const DirectionEpsilon = 1e-8

// ArraySource identifies blueprints built from in-memory arrays.
const ArraySource = "array input"

// Vertex is a validated vertex record.
type Vertex struct {
	ID     int
	X      float64
	Y      float64
	Z      float64
	Domain int
	Active bool
}

// Position returns the vertex coordinates as a vector.
func (v Vertex) Position() math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Triangle is a validated triangle record. V1, V2 and V3 are distinct vertex
// ids.
type Triangle struct {
	ID int
	V1 int
	V2 int
	V3 int
}

// Inclusion is a point marker attached to a vertex. (DX, DY) is always a unit
// vector.
type Inclusion struct {
	ID       int
	TypeID   int
	VertexID int
	DX       float64
	DY       float64
}

// Box holds the extents of the simulation box.
type Box struct {
	X, Y, Z float64
}

// Vec returns the box extents as a vector.
func (b Box) Vec() math.Vec3 {
	return math.Vec3{X: b.X, Y: b.Y, Z: b.Z}
}

// DefaultBox is used when no box size is supplied.
var DefaultBox = Box{1, 1, 1}

// Blueprint is the validated description a mesh is generated from.
type Blueprint struct {
	Vertices   []Vertex
	Triangles  []Triangle
	Inclusions []Inclusion
	Box        Box

	// Periodic is set when the box was supplied explicitly. Only then are
	// displacements wrapped to their minimum image.
	Periodic bool

	// VectorFields is the number of per-vertex vector fields. Always 0 here.
	VectorFields int

	// Source names the input the blueprint came from, for diagnostics.
	Source string
}

// String returns a short summary.
func (bp *Blueprint) String() string {
	return fmt.Sprintf("Blueprint(source=%q, vertices=%d, triangles=%d, inclusions=%d)",
		bp.Source, len(bp.Vertices), len(bp.Triangles), len(bp.Inclusions))
}
