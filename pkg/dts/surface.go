// Package dts is the public entry point: it builds a triangulated surface from
// arrays or a mesh file, runs the curvature pipeline and exposes the results
// as flat numeric buffers.
package dts

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dtsmesh/internal/curvature"
	"github.com/Faultbox/dtsmesh/internal/mesh"
	"github.com/Faultbox/dtsmesh/pkg/blueprint"
	"github.com/Faultbox/dtsmesh/pkg/formats"
	"github.com/Faultbox/dtsmesh/pkg/math"
)

// Surface owns one mesh and its curvature calculator. It is not safe for
// concurrent use.
type Surface struct {
	mesh   *mesh.Mesh
	calc   *curvature.Calculator
	report curvature.Report
	log    *zap.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used for construction messages and curvature
// diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Surface) {
		if log != nil {
			s.log = log
		}
	}
}

// New validates in, builds the mesh and computes curvature once.
func New(in blueprint.Input, opts ...Option) (*Surface, error) {
	bp, err := blueprint.Build(in)
	if err != nil {
		return nil, err
	}
	return FromBlueprint(bp, opts...)
}

// Open reads a .tsi, .yaml or .yml mesh file and builds a Surface from it.
func Open(path string, opts ...Option) (*Surface, error) {
	in, err := formats.LoadInput(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return New(in, opts...)
}

// FromBlueprint builds a Surface from an already validated blueprint.
func FromBlueprint(bp *blueprint.Blueprint, opts ...Option) (*Surface, error) {
	s := &Surface{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	m, err := mesh.Generate(bp)
	if err != nil {
		return nil, err
	}
	s.mesh = m
	s.calc = curvature.New(m, curvature.WithLogger(s.log))

	s.log.Debug("mesh generated",
		zap.String("source", bp.Source),
		zap.Int("vertices", len(bp.Vertices)),
		zap.Int("triangles", len(bp.Triangles)),
		zap.Int("inclusions", len(bp.Inclusions)),
		zap.Bool("periodic", bp.Periodic),
	)

	s.Recompute()
	return s, nil
}

// Recompute reruns the whole curvature pipeline on the current geometry.
func (s *Surface) Recompute() curvature.Report {
	s.report = s.calc.Run()
	return s.report
}

// Report returns the result of the last curvature run.
func (s *Surface) Report() curvature.Report {
	return s.report
}

// Diagnostics returns the degenerate vertices found by the last run.
func (s *Surface) Diagnostics() []curvature.Diagnostic {
	out := make([]curvature.Diagnostic, len(s.report.Diagnostics))
	copy(out, s.report.Diagnostics)
	return out
}

// MoveVertex moves vertex id. Outputs are stale until Recompute.
func (s *Surface) MoveVertex(id int, x, y, z float64) error {
	return s.mesh.MoveVertex(id, math.Vec3{X: x, Y: y, Z: z})
}

// SetBox replaces the periodic box. Outputs are stale until Recompute.
func (s *Surface) SetBox(x, y, z float64) error {
	return s.mesh.SetBox(math.Vec3{X: x, Y: y, Z: z})
}

// Box returns the box extents and whether periodic wrapping is on.
func (s *Surface) Box() (x, y, z float64, periodic bool) {
	b := s.mesh.Box()
	return b.X, b.Y, b.Z, s.mesh.Periodic()
}

// Source names the input the surface was built from.
func (s *Surface) Source() string {
	return s.mesh.Source()
}

// VertexCount returns the number of active vertices.
func (s *Surface) VertexCount() int {
	return len(s.mesh.ActiveVertices())
}

// TriangleCount returns the number of active triangles.
func (s *Surface) TriangleCount() int {
	return len(s.mesh.ActiveTriangles())
}

// InclusionCount returns the number of inclusions.
func (s *Surface) InclusionCount() int {
	return len(s.mesh.Inclusions())
}

// String returns a short summary.
func (s *Surface) String() string {
	return fmt.Sprintf("Surface(vertices=%d, triangles=%d, inclusions=%d)",
		s.VertexCount(), s.TriangleCount(), s.InclusionCount())
}
