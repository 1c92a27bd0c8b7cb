package blueprint

import (
	"fmt"

	"github.com/Faultbox/dtsmesh/pkg/math"
)

// Input holds the raw arrays a blueprint is built from. Everything except
// Vertices and Triangles is optional; nil or empty means "not supplied".
type Input struct {
	Vertices            [][]float64 // N x 3
	Triangles           [][]int     // M x 3, zero-based vertex ids
	Inclusions          [][]int     // K x 2, (type id, vertex id)
	InclusionDirections [][]float64 // K x 2
	BoxSize             []float64   // 3
	VertexDomains       []int       // N
	Source              string
}

// Build validates in and returns the blueprint it describes. Any violated
// rule aborts the build; nothing is repaired except inclusion directions,
// which are normalised.
func Build(in Input) (*Blueprint, error) {
	if err := validateRows("vertices", len(in.Vertices), func(i int) int { return len(in.Vertices[i]) }, 3); err != nil {
		return nil, err
	}
	if err := validateRows("triangles", len(in.Triangles), func(i int) int { return len(in.Triangles[i]) }, 3); err != nil {
		return nil, err
	}

	bp := &Blueprint{
		Box:    DefaultBox,
		Source: in.Source,
	}
	if bp.Source == "" {
		bp.Source = ArraySource
	}

	if len(in.BoxSize) > 0 {
		if len(in.BoxSize) != 3 {
			return nil, fmt.Errorf("box size must have 3 components, got %d: %w", len(in.BoxSize), ErrInputShape)
		}
		for i, v := range in.BoxSize {
			if !(v > 0) {
				return nil, fmt.Errorf("box size component %d must be positive, got %g: %w", i, v, ErrInputShape)
			}
		}
		bp.Box = Box{in.BoxSize[0], in.BoxSize[1], in.BoxSize[2]}
		bp.Periodic = true
	}

	n := len(in.Vertices)
	bp.Vertices = make([]Vertex, n)
	for i, row := range in.Vertices {
		bp.Vertices[i] = Vertex{
			ID:     i,
			X:      row[0],
			Y:      row[1],
			Z:      row[2],
			Active: true,
		}
	}

	bp.Triangles = make([]Triangle, len(in.Triangles))
	for i, row := range in.Triangles {
		v1, v2, v3 := row[0], row[1], row[2]
		for _, v := range row {
			if err := validateVertexID(v, n); err != nil {
				return nil, fmt.Errorf("triangle %d: %w", i, err)
			}
		}
		if v1 == v2 || v1 == v3 || v2 == v3 {
			return nil, fmt.Errorf("triangle %d (%d, %d, %d): %w", i, v1, v2, v3, ErrDegenerateTriangle)
		}
		bp.Triangles[i] = Triangle{ID: i, V1: v1, V2: v2, V3: v3}
	}

	incs, err := buildInclusions(in.Inclusions, in.InclusionDirections, n)
	if err != nil {
		return nil, err
	}
	bp.Inclusions = incs
	bp.VectorFields = 0

	if len(in.VertexDomains) > 0 {
		if len(in.VertexDomains) != n {
			return nil, fmt.Errorf("vertex domains must have %d entries, got %d: %w", n, len(in.VertexDomains), ErrInputShape)
		}
		for i, d := range in.VertexDomains {
			bp.Vertices[i].Domain = d
		}
	}

	return bp, nil
}

// buildInclusions validates inclusion records against their directions and
// normalises every direction before it is stored.
func buildInclusions(records [][]int, directions [][]float64, n int) ([]Inclusion, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if len(records) != len(directions) {
		return nil, fmt.Errorf("inclusions (%d rows) and directions (%d rows) must match: %w",
			len(records), len(directions), ErrInputShape)
	}
	if err := validateRows("inclusions", len(records), func(i int) int { return len(records[i]) }, 2); err != nil {
		return nil, err
	}
	if err := validateRows("inclusion directions", len(directions), func(i int) int { return len(directions[i]) }, 2); err != nil {
		return nil, err
	}

	incs := make([]Inclusion, len(records))
	for i, row := range records {
		typeID, vid := row[0], row[1]
		if err := validateVertexID(vid, n); err != nil {
			return nil, fmt.Errorf("inclusion %d: %w", i, err)
		}
		d := NormalizeDirection(directions[i][0], directions[i][1])
		incs[i] = Inclusion{
			ID:       i,
			TypeID:   typeID,
			VertexID: vid,
			DX:       d.X,
			DY:       d.Y,
		}
	}
	return incs, nil
}

// NormalizeDirection returns (x, y) scaled to unit length, or (1, 0) when its
// length is at most DirectionEpsilon.
func NormalizeDirection(x, y float64) math.Vec2 {
	return math.Vec2{X: x, Y: y}.NormalizeOr(DirectionEpsilon, math.Vec2{X: 1, Y: 0})
}

// FromFlat builds an Input from row-major contiguous buffers. vertices must
// hold 3N values, triangles 3M; inclusions and directions, when given, 2K each.
func FromFlat(vertices []float64, triangles []int, inclusions []int, directions []float64) (Input, error) {
	if len(vertices)%3 != 0 {
		return Input{}, fmt.Errorf("vertex buffer length %d is not a multiple of 3: %w", len(vertices), ErrInputShape)
	}
	if len(triangles)%3 != 0 {
		return Input{}, fmt.Errorf("triangle buffer length %d is not a multiple of 3: %w", len(triangles), ErrInputShape)
	}
	if len(inclusions)%2 != 0 {
		return Input{}, fmt.Errorf("inclusion buffer length %d is not a multiple of 2: %w", len(inclusions), ErrInputShape)
	}
	if len(directions)%2 != 0 {
		return Input{}, fmt.Errorf("direction buffer length %d is not a multiple of 2: %w", len(directions), ErrInputShape)
	}
	return Input{
		Vertices:            rowsOf(vertices, 3),
		Triangles:           rowsOf(triangles, 3),
		Inclusions:          rowsOf(inclusions, 2),
		InclusionDirections: rowsOf(directions, 2),
	}, nil
}

func rowsOf[T any](flat []T, width int) [][]T {
	if len(flat) == 0 {
		return nil
	}
	rows := make([][]T, len(flat)/width)
	for i := range rows {
		rows[i] = flat[i*width : (i+1)*width : (i+1)*width]
	}
	return rows
}
