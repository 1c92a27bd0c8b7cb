package curvature

import (
	"github.com/Faultbox/dtsmesh/internal/mesh"
	"github.com/Faultbox/dtsmesh/pkg/math"
)

// DefaultEpsilon is the area and normal length below which a vertex is
// degenerate.
const DefaultEpsilon = 1e-8

// ShapeOperator estimates curvature from the discrete shape operator
//
//	S(v) = 1/A(v) Σ ½ He (N·Ne) (P Be)(P Be)ᵀ,  P = I - N Nᵀ
//
// summed over the interior links leaving v. The eigenvalues of S in the
// tangent plane are the principal curvatures.
type ShapeOperator struct {
	Epsilon float64
}

// NewShapeOperator returns an estimator using DefaultEpsilon.
func NewShapeOperator() *ShapeOperator {
	return &ShapeOperator{Epsilon: DefaultEpsilon}
}

// UpdateSurfaceVertex sets area, normal and principal curvatures of v.
func (s *ShapeOperator) UpdateSurfaceVertex(v *mesh.Vertex) *Diagnostic {
	if d := s.normalArea(v); d != nil {
		return d
	}
	s.principal(v, s.tensor(v))
	return nil
}

// UpdateEdgeVertex sets area, normal and principal curvatures of a boundary
// vertex from the interior links of its fan, and the geodesic and normal
// curvature of the boundary curve from its two boundary links.
func (s *ShapeOperator) UpdateEdgeVertex(v *mesh.Vertex) *Diagnostic {
	if d := s.normalArea(v); d != nil {
		return d
	}
	s.principal(v, s.tensor(v))

	out, in := v.EdgeLink, v.PrecedingEdgeLink
	if out == nil || in == nil {
		return nil
	}
	if out.EdgeLength < s.Epsilon || in.EdgeLength < s.Epsilon {
		return nil
	}
	length := out.EdgeLength + in.EdgeLength
	tOut := out.EdgeVector.Scale(1 / out.EdgeLength)
	tIn := in.EdgeVector.Scale(1 / in.EdgeLength)

	kappa := tOut.Sub(tIn).Scale(2 / length)
	tangent := tOut.Add(tIn).Normalize()

	v.GeodesicCurvature = kappa.Dot(v.Normal.Cross(tangent))
	// Same sign convention as the principal curvatures: positive where the
	// curve bends away from the normal.
	v.NormalCurvature = -kappa.Dot(v.Normal)
	return nil
}

// normalArea resets v and sets its area and unit normal from the incident
// triangles.
func (s *ShapeOperator) normalArea(v *mesh.Vertex) *Diagnostic {
	v.ResetDerived()

	var sum math.Vec3
	var area float64
	for _, t := range v.Triangles {
		sum = sum.Add(t.AreaVector)
		area += t.Area
	}
	area /= 3
	v.Area = area

	if area < s.Epsilon {
		return &Diagnostic{VertexID: v.ID, Kind: ZeroArea, Area: area, NormalLength: sum.Length()}
	}
	l := sum.Length()
	if l < s.Epsilon {
		return &Diagnostic{VertexID: v.ID, Kind: ZeroNormal, Area: area, NormalLength: l}
	}

	v.Normal = sum.Scale(1 / l)
	v.Valid = true
	return nil
}

// tensor accumulates the shape operator of v from its interior links.
func (s *ShapeOperator) tensor(v *mesh.Vertex) math.Mat3 {
	p := math.Projector(v.Normal)

	var sum math.Mat3
	for _, l := range v.Links {
		if l.IsBoundary() {
			continue
		}
		be := p.MulVec(l.Be)
		w := v.Normal.Dot(l.EdgeNormal)
		sum = sum.Add(math.Outer(be, be).Scale(0.5 * l.He * w))
	}
	return sum.Scale(1 / v.Area)
}

// principal diagonalises S in the tangent plane of v.
func (s *ShapeOperator) principal(v *mesh.Vertex, S math.Mat3) {
	t1, t2 := math.TangentFrame(v.Normal)
	a := S.Bilinear(t1, t1)
	b := S.Bilinear(t1, t2)
	c := S.Bilinear(t2, t2)

	l1, l2, e := math.SymEigen2(a, b, c)
	v.P1, v.P2 = l1, l2
	v.Dir1 = t1.Scale(e.X).Add(t2.Scale(e.Y))
	v.Dir2 = v.Normal.Cross(v.Dir1)
}
