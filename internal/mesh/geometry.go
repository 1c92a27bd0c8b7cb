package mesh

import (
	stdmath "math"

	"github.com/Faultbox/dtsmesh/pkg/math"
)

// UpdateNormalArea recomputes the area vector, area and unit normal from the
// current corner positions.
func (t *Triangle) UpdateNormalArea(box math.Vec3, periodic bool) {
	e1 := math.MinImage(t.V1.Pos, t.V2.Pos, box, periodic)
	e2 := math.MinImage(t.V1.Pos, t.V3.Pos, box, periodic)

	t.AreaVector = e1.Cross(e2).Scale(0.5)
	t.Area = t.AreaVector.Length()
	if t.Area == 0 {
		t.Normal = math.Vec3{}
		return
	}
	t.Normal = t.AreaVector.Scale(1 / t.Area)
}

// UpdateEdgeVector recomputes the displacement V1 -> V2 and its length.
func (l *Link) UpdateEdgeVector(box math.Vec3, periodic bool) {
	l.EdgeVector = math.MinImage(l.V1.Pos, l.V2.Pos, box, periodic)
	l.EdgeLength = l.EdgeVector.Length()
}

// UpdateShapeOperator recomputes the link's shape-operator contribution from
// the normals of T1 and the mirror's triangle, which must be current. The
// mirror link is updated with the same contribution. Boundary links only get
// their edge vector refreshed.
func (l *Link) UpdateShapeOperator(box math.Vec3, periodic bool) {
	l.UpdateEdgeVector(box, periodic)
	if l.Mirror == nil {
		l.He, l.Be, l.EdgeNormal = 0, math.Vec3{}, math.Vec3{}
		return
	}

	n1 := l.T1.Normal
	n2 := l.Mirror.T1.Normal
	dir := l.EdgeVector.Normalize()

	// Signed dihedral angle; positive where the surface bends away from the
	// normals (convex with outward normals).
	phi := stdmath.Atan2(n1.Cross(n2).Dot(dir), n1.Dot(n2))

	ne := n1.Add(n2).Normalize()
	if ne == (math.Vec3{}) {
		ne = n1
	}

	l.EdgeNormal = ne
	l.Be = dir.Cross(ne).Normalize()
	l.He = l.EdgeLength * phi

	m := l.Mirror
	m.EdgeVector = l.EdgeVector.Neg()
	m.EdgeLength = l.EdgeLength
	m.EdgeNormal = ne
	m.Be = l.Be.Neg()
	m.He = l.He
}
