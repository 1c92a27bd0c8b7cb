package curvature

import "fmt"

// DiagnosticKind names the way a vertex was degenerate.
type DiagnosticKind uint8

// Diagnostic kinds.
const (
	ZeroArea   DiagnosticKind = 1 // Accumulated area below epsilon
	ZeroNormal DiagnosticKind = 2 // Summed area vectors cancel out
)

// String returns the kind name.
func (k DiagnosticKind) String() string {
	switch k {
	case ZeroArea:
		return "ZeroArea"
	case ZeroNormal:
		return "ZeroNormal"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Message returns the log message for the kind.
func (k DiagnosticKind) Message() string {
	switch k {
	case ZeroArea:
		return "vertex has negative or zero area"
	case ZeroNormal:
		return "vertex has zero normal"
	default:
		return "vertex geometry is degenerate"
	}
}

// Diagnostic records a degenerate vertex. The vertex keeps zero normal and
// curvature and is marked invalid.
type Diagnostic struct {
	VertexID     int
	Kind         DiagnosticKind
	Stage        Stage
	Area         float64
	NormalLength float64
}

// String returns a one-line description.
func (d Diagnostic) String() string {
	return fmt.Sprintf("vertex %d: %s (area=%g, |normal|=%g)", d.VertexID, d.Kind.Message(), d.Area, d.NormalLength)
}
