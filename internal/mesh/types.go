// Package mesh holds the live triangulated surface: vertices, triangles and
// the directed links between them, plus the cached per-element geometry the
// curvature pipeline refreshes.
package mesh

import (
	"fmt"

	"github.com/Faultbox/dtsmesh/pkg/math"
)

// VertexKind classifies a vertex by its position in the surface.
type VertexKind uint8

// Vertex kinds.
const (
	SurfaceVertex VertexKind = 0 // Interior vertex, closed fan of triangles
	EdgeVertex    VertexKind = 1 // Vertex on a boundary loop
)

// String returns a human-readable kind name.
func (k VertexKind) String() string {
	switch k {
	case SurfaceVertex:
		return "Surface"
	case EdgeVertex:
		return "Edge"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Vertex is a mesh vertex. Fields below the topology block are derived and
// only meaningful after a curvature run.
type Vertex struct {
	ID     int
	Domain int
	Pos    math.Vec3
	Active bool
	Kind   VertexKind

	Triangles []*Triangle // Incident triangles
	Links     []*Link     // Outgoing links (Link.V1 == this vertex)

	// Boundary links through an edge vertex; nil for surface vertices.
	EdgeLink          *Link // Boundary link leaving the vertex
	PrecedingEdgeLink *Link // Boundary link arriving at the vertex

	Area   float64
	Normal math.Vec3
	P1, P2 float64   // Principal curvatures, P1 >= P2
	Dir1   math.Vec3 // Principal direction of P1
	Dir2   math.Vec3 // Principal direction of P2

	// Boundary curve curvature, edge vertices only.
	GeodesicCurvature float64
	NormalCurvature   float64

	// Valid is false when the last run found zero area or a zero normal.
	Valid bool
}

// MeanCurvature returns (P1 + P2) / 2.
func (v *Vertex) MeanCurvature() float64 {
	return (v.P1 + v.P2) / 2
}

// GaussianCurvature returns P1 * P2.
func (v *Vertex) GaussianCurvature() float64 {
	return v.P1 * v.P2
}

// ResetDerived clears every derived field.
func (v *Vertex) ResetDerived() {
	v.Area = 0
	v.Normal = math.Vec3{}
	v.P1, v.P2 = 0, 0
	v.Dir1, v.Dir2 = math.Vec3{}, math.Vec3{}
	v.GeodesicCurvature, v.NormalCurvature = 0, 0
	v.Valid = false
}

// Triangle is an oriented mesh face V1 -> V2 -> V3.
type Triangle struct {
	ID         int
	V1, V2, V3 *Vertex
	Links      [3]*Link // V1->V2, V2->V3, V3->V1

	AreaVector math.Vec3 // Half the cross product of two edges
	Area       float64
	Normal     math.Vec3 // Unit normal, zero when Area is zero
}

// Vertices returns the three corners in order.
func (t *Triangle) Vertices() [3]*Vertex {
	return [3]*Vertex{t.V1, t.V2, t.V3}
}

// Link is the directed edge V1 -> V2 of triangle T1. Mirror is the opposite
// link of the neighbouring triangle, nil on a boundary.
type Link struct {
	ID     int
	V1, V2 *Vertex
	V3     *Vertex // Corner of T1 opposite the link
	T1     *Triangle
	Mirror *Link
	Next   *Link // Next link around T1

	EdgeVector math.Vec3
	EdgeLength float64

	// Shape-operator contribution, interior links only.
	He         float64   // Edge length times signed dihedral angle
	Be         math.Vec3 // Unit tangent orthogonal to the edge
	EdgeNormal math.Vec3 // Normalised sum of the two face normals
}

// IsBoundary reports whether the link has no mirror.
func (l *Link) IsBoundary() bool {
	return l.Mirror == nil
}

// Inclusion is an inclusion attached to a mesh vertex.
type Inclusion struct {
	ID        int
	TypeID    int
	Vertex    *Vertex
	Direction math.Vec2
}
