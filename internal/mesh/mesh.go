package mesh

import (
	"fmt"

	"github.com/Faultbox/dtsmesh/pkg/blueprint"
	"github.com/Faultbox/dtsmesh/pkg/math"
)

// Mesh is a triangulated surface built from a blueprint. A Mesh is owned by a
// single caller and is not safe for concurrent use.
type Mesh struct {
	vertices   []*Vertex
	triangles  []*Triangle
	links      []*Link
	rightLinks []*Link
	edgeLinks  []*Link
	surfaceV   []*Vertex
	edgeV      []*Vertex
	inclusions []*Inclusion

	box      math.Vec3
	periodic bool
	source   string
}

type edgeKey struct{ from, to int }

// Generate builds a mesh from bp. Topology the mesh cannot represent (an edge
// shared by more than two triangles, inconsistently oriented neighbours, a
// vertex whose triangles do not form a single fan) fails with
// blueprint.ErrMeshConstruction.
func Generate(bp *blueprint.Blueprint) (*Mesh, error) {
	m := &Mesh{
		box:      bp.Box.Vec(),
		periodic: bp.Periodic,
		source:   bp.Source,
	}

	m.vertices = make([]*Vertex, len(bp.Vertices))
	for i, bv := range bp.Vertices {
		m.vertices[i] = &Vertex{
			ID:     bv.ID,
			Domain: bv.Domain,
			Pos:    bv.Position(),
			Active: bv.Active,
		}
	}

	directed := make(map[edgeKey]*Link, 3*len(bp.Triangles))
	m.triangles = make([]*Triangle, len(bp.Triangles))
	m.links = make([]*Link, 0, 3*len(bp.Triangles))

	for i, bt := range bp.Triangles {
		if err := m.checkCorners(bt); err != nil {
			return nil, err
		}
		t := &Triangle{
			ID: bt.ID,
			V1: m.vertices[bt.V1],
			V2: m.vertices[bt.V2],
			V3: m.vertices[bt.V3],
		}
		corners := t.Vertices()
		for j := 0; j < 3; j++ {
			a, b, c := corners[j], corners[(j+1)%3], corners[(j+2)%3]
			key := edgeKey{a.ID, b.ID}
			if prev, ok := directed[key]; ok {
				return nil, m.constructionError("edge %d->%d used by triangles %d and %d (non-manifold or inconsistent orientation)",
					a.ID, b.ID, prev.T1.ID, t.ID)
			}
			l := &Link{ID: len(m.links), V1: a, V2: b, V3: c, T1: t}
			directed[key] = l
			t.Links[j] = l
			m.links = append(m.links, l)
			a.Links = append(a.Links, l)
		}
		for j := 0; j < 3; j++ {
			t.Links[j].Next = t.Links[(j+1)%3]
			corners[j].Triangles = append(corners[j].Triangles, t)
		}
		m.triangles[i] = t
	}

	for _, l := range m.links {
		if mirror, ok := directed[edgeKey{l.V2.ID, l.V1.ID}]; ok {
			l.Mirror = mirror
			if l.ID < mirror.ID {
				m.rightLinks = append(m.rightLinks, l)
			}
			continue
		}
		m.edgeLinks = append(m.edgeLinks, l)
	}

	if err := m.classify(); err != nil {
		return nil, err
	}

	m.inclusions = make([]*Inclusion, len(bp.Inclusions))
	for i, bi := range bp.Inclusions {
		if bi.VertexID < 0 || bi.VertexID >= len(m.vertices) {
			return nil, m.constructionError("inclusion %d references vertex %d of %d", bi.ID, bi.VertexID, len(m.vertices))
		}
		m.inclusions[i] = &Inclusion{
			ID:        bi.ID,
			TypeID:    bi.TypeID,
			Vertex:    m.vertices[bi.VertexID],
			Direction: math.Vec2{X: bi.DX, Y: bi.DY},
		}
	}

	return m, nil
}

// checkCorners guards against blueprints that were not produced by
// blueprint.Build.
func (m *Mesh) checkCorners(bt blueprint.Triangle) error {
	n := len(m.vertices)
	for _, id := range [3]int{bt.V1, bt.V2, bt.V3} {
		if id < 0 || id >= n {
			return m.constructionError("triangle %d references vertex %d of %d", bt.ID, id, n)
		}
	}
	if bt.V1 == bt.V2 || bt.V1 == bt.V3 || bt.V2 == bt.V3 {
		return m.constructionError("triangle %d is degenerate", bt.ID)
	}
	return nil
}

// classify splits vertices into surface and edge vertices and wires the
// boundary links through each edge vertex.
func (m *Mesh) classify() error {
	for _, l := range m.edgeLinks {
		if l.V1.EdgeLink != nil {
			return m.constructionError("vertex %d lies on more than one boundary fan", l.V1.ID)
		}
		l.V1.EdgeLink = l
		l.V2.PrecedingEdgeLink = l
	}

	for _, v := range m.vertices {
		if !v.Active {
			continue
		}
		if v.EdgeLink != nil || v.PrecedingEdgeLink != nil {
			v.Kind = EdgeVertex
			m.edgeV = append(m.edgeV, v)
			continue
		}
		v.Kind = SurfaceVertex
		m.surfaceV = append(m.surfaceV, v)
	}

	for _, v := range m.vertices {
		if n := fanSize(v); n != len(v.Triangles) {
			return m.constructionError("vertex %d joins %d triangles but its fan reaches %d (non-manifold vertex)",
				v.ID, len(v.Triangles), n)
		}
	}
	return nil
}

// fanSize walks the triangles around v, starting at the outgoing boundary
// link for edge vertices, and returns how many it reaches.
func fanSize(v *Vertex) int {
	if len(v.Links) == 0 {
		return 0
	}
	start := v.EdgeLink
	if start == nil {
		start = v.Links[0]
	}
	n := 0
	for l := start; l != nil && n <= len(v.Links); {
		n++
		// The link arriving at v in the same triangle, crossed to the
		// neighbour, is the next link leaving v.
		l = l.Next.Next.Mirror
		if l == start {
			break
		}
	}
	return n
}

func (m *Mesh) constructionError(format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", m.source, fmt.Sprintf(format, args...), blueprint.ErrMeshConstruction)
}

// ActiveVertices returns the active vertices in id order.
func (m *Mesh) ActiveVertices() []*Vertex {
	active := make([]*Vertex, 0, len(m.vertices))
	for _, v := range m.vertices {
		if v.Active {
			active = append(active, v)
		}
	}
	return active
}

// ActiveTriangles returns the triangles in insertion order.
func (m *Mesh) ActiveTriangles() []*Triangle {
	return m.triangles
}

// RightLinks returns one link of every interior edge.
func (m *Mesh) RightLinks() []*Link {
	return m.rightLinks
}

// EdgeLinks returns the boundary links.
func (m *Mesh) EdgeLinks() []*Link {
	return m.edgeLinks
}

// SurfaceVertices returns the active vertices off the boundary.
func (m *Mesh) SurfaceVertices() []*Vertex {
	return m.surfaceV
}

// EdgeVertices returns the active vertices on a boundary.
func (m *Mesh) EdgeVertices() []*Vertex {
	return m.edgeV
}

// Links returns every directed link.
func (m *Mesh) Links() []*Link {
	return m.links
}

// Inclusions returns the inclusions in insertion order.
func (m *Mesh) Inclusions() []*Inclusion {
	return m.inclusions
}

// Box returns the simulation box extents.
func (m *Mesh) Box() math.Vec3 {
	return m.box
}

// Periodic reports whether displacements use the minimum image.
func (m *Mesh) Periodic() bool {
	return m.periodic
}

// Source returns the name of the input the mesh was built from.
func (m *Mesh) Source() string {
	return m.source
}

// SetBox replaces the simulation box and turns periodic wrapping on.
func (m *Mesh) SetBox(box math.Vec3) error {
	if box.X <= 0 || box.Y <= 0 || box.Z <= 0 {
		return fmt.Errorf("box extents must be positive, got %v", box)
	}
	m.box = box
	m.periodic = true
	return nil
}

// Vertex returns the vertex with the given id, or nil.
func (m *Mesh) Vertex(id int) *Vertex {
	if id < 0 || id >= len(m.vertices) {
		return nil
	}
	return m.vertices[id]
}

// MoveVertex sets the position of vertex id. Derived geometry is stale until
// the next curvature run.
func (m *Mesh) MoveVertex(id int, pos math.Vec3) error {
	v := m.Vertex(id)
	if v == nil {
		return fmt.Errorf("move vertex %d: %w", id, blueprint.ErrIndexRange)
	}
	v.Pos = pos
	return nil
}

// String returns a short summary.
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh(vertices=%d, triangles=%d, links=%d, boundary=%d)",
		len(m.vertices), len(m.triangles), len(m.links), len(m.edgeLinks))
}
