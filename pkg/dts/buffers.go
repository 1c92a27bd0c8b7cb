package dts

import (
	"github.com/Faultbox/dtsmesh/internal/mesh"
)

// Every projection returns a freshly allocated slice. Per-vertex buffers
// share the active-vertex order, which is vertex id order.

// Positions returns x, y, z per vertex (length 3N).
func (s *Surface) Positions() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 3, func(v *mesh.Vertex, dst []float64) {
		dst[0], dst[1], dst[2] = v.Pos.X, v.Pos.Y, v.Pos.Z
	})
}

// Triangles returns the three vertex ids of every triangle (length 3M).
func (s *Surface) Triangles() []int {
	tris := s.mesh.ActiveTriangles()
	out := make([]int, 0, 3*len(tris))
	for _, t := range tris {
		out = append(out, t.V1.ID, t.V2.ID, t.V3.ID)
	}
	return out
}

// Curvatures returns P1, P2 per vertex (length 2N), P1 >= P2.
func (s *Surface) Curvatures() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 2, func(v *mesh.Vertex, dst []float64) {
		dst[0], dst[1] = v.P1, v.P2
	})
}

// Normals returns the unit normal per vertex (length 3N). Degenerate
// vertices report a zero normal.
func (s *Surface) Normals() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 3, func(v *mesh.Vertex, dst []float64) {
		dst[0], dst[1], dst[2] = v.Normal.X, v.Normal.Y, v.Normal.Z
	})
}

// Areas returns the area per vertex (length N).
func (s *Surface) Areas() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 1, func(v *mesh.Vertex, dst []float64) {
		dst[0] = v.Area
	})
}

// MeanCurvatures returns (P1 + P2) / 2 per vertex.
func (s *Surface) MeanCurvatures() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 1, func(v *mesh.Vertex, dst []float64) {
		dst[0] = v.MeanCurvature()
	})
}

// GaussianCurvatures returns P1 * P2 per vertex.
func (s *Surface) GaussianCurvatures() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 1, func(v *mesh.Vertex, dst []float64) {
		dst[0] = v.GaussianCurvature()
	})
}

// BoundaryCurvatures returns geodesic and normal curvature of the boundary
// curve per vertex (length 2N). Both are zero off the boundary.
func (s *Surface) BoundaryCurvatures() []float64 {
	return vertexBuffer(s.mesh.ActiveVertices(), 2, func(v *mesh.Vertex, dst []float64) {
		dst[0], dst[1] = v.GeodesicCurvature, v.NormalCurvature
	})
}

// Validity reports per vertex whether the last run produced usable geometry.
func (s *Surface) Validity() []bool {
	verts := s.mesh.ActiveVertices()
	out := make([]bool, len(verts))
	for i, v := range verts {
		out[i] = v.Valid
	}
	return out
}

// EdgeVertexMask reports per vertex whether it lies on a boundary.
func (s *Surface) EdgeVertexMask() []bool {
	verts := s.mesh.ActiveVertices()
	out := make([]bool, len(verts))
	for i, v := range verts {
		out[i] = v.Kind == mesh.EdgeVertex
	}
	return out
}

// Domains returns the domain tag per vertex.
func (s *Surface) Domains() []int {
	verts := s.mesh.ActiveVertices()
	out := make([]int, len(verts))
	for i, v := range verts {
		out[i] = v.Domain
	}
	return out
}

// InclusionMapping returns, in insertion order, the vertex id and type id of
// every inclusion.
func (s *Surface) InclusionMapping() (vertexIDs, typeIDs []int) {
	incs := s.mesh.Inclusions()
	vertexIDs = make([]int, len(incs))
	typeIDs = make([]int, len(incs))
	for i, inc := range incs {
		vertexIDs[i] = inc.Vertex.ID
		typeIDs[i] = inc.TypeID
	}
	return vertexIDs, typeIDs
}

// InclusionDirections returns the unit in-plane direction of every inclusion
// (length 2K).
func (s *Surface) InclusionDirections() []float64 {
	incs := s.mesh.Inclusions()
	out := make([]float64, 0, 2*len(incs))
	for _, inc := range incs {
		out = append(out, inc.Direction.X, inc.Direction.Y)
	}
	return out
}

func vertexBuffer(verts []*mesh.Vertex, stride int, fill func(*mesh.Vertex, []float64)) []float64 {
	out := make([]float64, stride*len(verts))
	for i, v := range verts {
		fill(v, out[i*stride:(i+1)*stride])
	}
	return out
}
