package curvature

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dtsmesh/internal/mesh"
	"github.com/Faultbox/dtsmesh/pkg/math"
)

// Mesh is what a Calculator needs from a mesh. *mesh.Mesh implements it.
type Mesh interface {
	ActiveTriangles() []*mesh.Triangle
	RightLinks() []*mesh.Link
	EdgeLinks() []*mesh.Link
	SurfaceVertices() []*mesh.Vertex
	EdgeVertices() []*mesh.Vertex
	Box() math.Vec3
	Periodic() bool
}

// Estimator turns the link contributions around a vertex into curvature.
// It returns a non-nil Diagnostic when the vertex is degenerate.
type Estimator interface {
	UpdateSurfaceVertex(v *mesh.Vertex) *Diagnostic
	UpdateEdgeVertex(v *mesh.Vertex) *Diagnostic
}

// Stage identifies one step of the pipeline.
type Stage uint8

// Pipeline stages in execution order.
const (
	StageTriangles Stage = iota + 1
	StageRightLinks
	StageEdgeLinks
	StageSurfaceVertices
	StageEdgeVertices
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageTriangles:
		return "triangles"
	case StageRightLinks:
		return "right-links"
	case StageEdgeLinks:
		return "edge-links"
	case StageSurfaceVertices:
		return "surface-vertices"
	case StageEdgeVertices:
		return "edge-vertices"
	default:
		return fmt.Sprintf("stage(%d)", s)
	}
}

// Report summarises one run.
type Report struct {
	Triangles       int
	RightLinks      int
	EdgeLinks       int
	SurfaceVertices int
	EdgeVertices    int
	Diagnostics     []Diagnostic
}

// OK reports whether no vertex was degenerate.
func (r Report) OK() bool {
	return len(r.Diagnostics) == 0
}

// Calculator runs the curvature pipeline over one mesh.
type Calculator struct {
	mesh      Mesh
	estimator Estimator
	log       *zap.Logger

	box      math.Vec3
	periodic bool
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger diagnostics are written to.
func WithLogger(log *zap.Logger) Option {
	return func(c *Calculator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithEstimator replaces the default ShapeOperator estimator.
func WithEstimator(e Estimator) Option {
	return func(c *Calculator) {
		if e != nil {
			c.estimator = e
		}
	}
}

// New returns a Calculator for m. Nothing is computed until Run.
func New(m Mesh, opts ...Option) *Calculator {
	c := &Calculator{
		mesh:      m,
		estimator: NewShapeOperator(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.box = m.Box()
	c.periodic = m.Periodic()
	return c
}

// Run executes all five stages and returns what it found. It never fails;
// degenerate vertices are listed in Report.Diagnostics.
func (c *Calculator) Run() Report {
	c.box = c.mesh.Box()
	c.periodic = c.mesh.Periodic()

	var r Report

	triangles := c.mesh.ActiveTriangles()
	for _, t := range triangles {
		t.UpdateNormalArea(c.box, c.periodic)
	}
	r.Triangles = len(triangles)

	right := c.mesh.RightLinks()
	for _, l := range right {
		l.UpdateShapeOperator(c.box, c.periodic)
	}
	r.RightLinks = len(right)

	edge := c.mesh.EdgeLinks()
	for _, l := range edge {
		l.UpdateEdgeVector(c.box, c.periodic)
	}
	r.EdgeLinks = len(edge)

	surface := c.mesh.SurfaceVertices()
	for _, v := range surface {
		c.record(&r, StageSurfaceVertices, c.estimator.UpdateSurfaceVertex(v))
	}
	r.SurfaceVertices = len(surface)

	edgeV := c.mesh.EdgeVertices()
	for _, v := range edgeV {
		c.record(&r, StageEdgeVertices, c.estimator.UpdateEdgeVertex(v))
	}
	r.EdgeVertices = len(edgeV)

	c.log.Debug("curvature updated",
		zap.Int("triangles", r.Triangles),
		zap.Int("right_links", r.RightLinks),
		zap.Int("edge_links", r.EdgeLinks),
		zap.Int("surface_vertices", r.SurfaceVertices),
		zap.Int("edge_vertices", r.EdgeVertices),
		zap.Int("diagnostics", len(r.Diagnostics)),
	)
	return r
}

func (c *Calculator) record(r *Report, stage Stage, d *Diagnostic) {
	if d == nil {
		return
	}
	d.Stage = stage
	r.Diagnostics = append(r.Diagnostics, *d)
	c.log.Warn(d.Kind.Message(),
		zap.Int("vertex", d.VertexID),
		zap.Stringer("stage", stage),
		zap.Float64("area", d.Area),
		zap.Float64("normal_length", d.NormalLength),
	)
}
