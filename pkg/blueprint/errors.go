package blueprint

import "errors"

// Blueprint errors. Build wraps them with row and column context; callers
// match with errors.Is.
var (
	// ErrInputShape reports an array whose rank, column count or row count
	// does not match what the builder expects.
	ErrInputShape = errors.New("blueprint: invalid input shape")

	// ErrIndexRange reports a vertex id outside [0, vertex count).
	ErrIndexRange = errors.New("blueprint: vertex index out of range")

	// ErrDegenerateTriangle reports a triangle whose corners are not pairwise
	// distinct.
	ErrDegenerateTriangle = errors.New("blueprint: degenerate triangle")

	// ErrMeshConstruction reports a blueprint the mesh could not be built
	// from, such as a non-manifold edge.
	ErrMeshConstruction = errors.New("blueprint: mesh construction failed")
)
