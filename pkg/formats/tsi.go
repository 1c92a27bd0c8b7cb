package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/dtsmesh/pkg/blueprint"
)

// TSI format errors.
var (
	ErrInvalidTSISection = errors.New("invalid TSI section")
	ErrTruncatedTSIData  = errors.New("truncated TSI data")
	ErrInvalidTSIRecord  = errors.New("invalid TSI record")
)

// TSIVertex is one vertex line: id x y z [domain].
type TSIVertex struct {
	ID      int
	X, Y, Z float64
	Domain  int
}

// TSITriangle is one triangle line: id v1 v2 v3.
type TSITriangle struct {
	ID         int
	V1, V2, V3 int
}

// TSIInclusion is one inclusion line: id type vertex [dx dy].
type TSIInclusion struct {
	ID       int
	TypeID   int
	VertexID int
	DX, DY   float64
}

// TSI is a parsed topology file.
type TSI struct {
	Version    string
	Box        [3]float64
	HasBox     bool
	Vertices   []TSIVertex
	Triangles  []TSITriangle
	Inclusions []TSIInclusion
}

// ParseTSI parses TSI text. Blank lines and lines starting with ';' or '#'
// are ignored. Vertices must be listed with ids 0..N-1 in order.
func ParseTSI(data []byte) (*TSI, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	t := &TSI{}
	line := 0
	next := func() ([]string, bool) {
		for sc.Scan() {
			line++
			text := strings.TrimSpace(sc.Text())
			if text == "" || strings.HasPrefix(text, ";") || strings.HasPrefix(text, "#") {
				continue
			}
			return strings.Fields(text), true
		}
		return nil, false
	}

	for {
		fields, ok := next()
		if !ok {
			break
		}
		switch strings.ToLower(fields[0]) {
		case "version":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %w: version without value", line, ErrInvalidTSIRecord)
			}
			t.Version = fields[1]
		case "box":
			vals, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: box: %w", line, err)
			}
			copy(t.Box[:], vals)
			t.HasBox = true
		case "vertex":
			n, err := sectionCount(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			t.Vertices = make([]TSIVertex, 0, n)
			for i := 0; i < n; i++ {
				rec, ok := next()
				if !ok {
					return nil, fmt.Errorf("%w: expected %d vertices, got %d", ErrTruncatedTSIData, n, i)
				}
				v, err := parseTSIVertex(rec)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				if v.ID != i {
					return nil, fmt.Errorf("line %d: %w: vertex id %d out of order, expected %d", line, ErrInvalidTSIRecord, v.ID, i)
				}
				t.Vertices = append(t.Vertices, v)
			}
		case "triangle":
			n, err := sectionCount(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			t.Triangles = make([]TSITriangle, 0, n)
			for i := 0; i < n; i++ {
				rec, ok := next()
				if !ok {
					return nil, fmt.Errorf("%w: expected %d triangles, got %d", ErrTruncatedTSIData, n, i)
				}
				tr, err := parseTSITriangle(rec)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				t.Triangles = append(t.Triangles, tr)
			}
		case "inclusion":
			n, err := sectionCount(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			t.Inclusions = make([]TSIInclusion, 0, n)
			for i := 0; i < n; i++ {
				rec, ok := next()
				if !ok {
					return nil, fmt.Errorf("%w: expected %d inclusions, got %d", ErrTruncatedTSIData, n, i)
				}
				inc, err := parseTSIInclusion(rec)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				t.Inclusions = append(t.Inclusions, inc)
			}
		default:
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrInvalidTSISection, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTSIFile parses a TSI file from disk.
func ParseTSIFile(path string) (*TSI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTSI(data)
}

// Input converts the file contents into blueprint input. Validation is left
// to blueprint.Build.
func (t *TSI) Input() blueprint.Input {
	in := blueprint.Input{
		Vertices:      make([][]float64, len(t.Vertices)),
		Triangles:     make([][]int, len(t.Triangles)),
		VertexDomains: make([]int, len(t.Vertices)),
	}
	for i, v := range t.Vertices {
		in.Vertices[i] = []float64{v.X, v.Y, v.Z}
		in.VertexDomains[i] = v.Domain
	}
	for i, tr := range t.Triangles {
		in.Triangles[i] = []int{tr.V1, tr.V2, tr.V3}
	}
	if len(t.Inclusions) > 0 {
		in.Inclusions = make([][]int, len(t.Inclusions))
		in.InclusionDirections = make([][]float64, len(t.Inclusions))
		for i, inc := range t.Inclusions {
			in.Inclusions[i] = []int{inc.TypeID, inc.VertexID}
			in.InclusionDirections[i] = []float64{inc.DX, inc.DY}
		}
	}
	if t.HasBox {
		in.BoxSize = []float64{t.Box[0], t.Box[1], t.Box[2]}
	}
	return in
}

// WriteTo writes the file in TSI text form.
func (t *TSI) WriteTo(w io.Writer) (int64, error) {
	var bw bytes.Buffer
	version := t.Version
	if version == "" {
		version = "1.1"
	}
	fmt.Fprintf(&bw, "version %s\n", version)
	if t.HasBox {
		fmt.Fprintf(&bw, "box %18.10f %18.10f %18.10f\n", t.Box[0], t.Box[1], t.Box[2])
	}
	fmt.Fprintf(&bw, "vertex %10d\n", len(t.Vertices))
	for _, v := range t.Vertices {
		fmt.Fprintf(&bw, "%-6d %18.10f %18.10f %18.10f %d\n", v.ID, v.X, v.Y, v.Z, v.Domain)
	}
	fmt.Fprintf(&bw, "triangle %10d\n", len(t.Triangles))
	for _, tr := range t.Triangles {
		fmt.Fprintf(&bw, "%-6d %6d %6d %6d\n", tr.ID, tr.V1, tr.V2, tr.V3)
	}
	if len(t.Inclusions) > 0 {
		fmt.Fprintf(&bw, "inclusion %10d\n", len(t.Inclusions))
		for _, inc := range t.Inclusions {
			fmt.Fprintf(&bw, "%-6d %6d %6d %12.8f %12.8f\n", inc.ID, inc.TypeID, inc.VertexID, inc.DX, inc.DY)
		}
	}
	return bw.WriteTo(w)
}

// TSIFromBlueprint converts a validated blueprint back to TSI form.
func TSIFromBlueprint(bp *blueprint.Blueprint) *TSI {
	t := &TSI{
		Version:    "1.1",
		Box:        [3]float64{bp.Box.X, bp.Box.Y, bp.Box.Z},
		HasBox:     bp.Periodic,
		Vertices:   make([]TSIVertex, len(bp.Vertices)),
		Triangles:  make([]TSITriangle, len(bp.Triangles)),
		Inclusions: make([]TSIInclusion, len(bp.Inclusions)),
	}
	for i, v := range bp.Vertices {
		t.Vertices[i] = TSIVertex{ID: v.ID, X: v.X, Y: v.Y, Z: v.Z, Domain: v.Domain}
	}
	for i, tr := range bp.Triangles {
		t.Triangles[i] = TSITriangle{ID: tr.ID, V1: tr.V1, V2: tr.V2, V3: tr.V3}
	}
	for i, inc := range bp.Inclusions {
		t.Inclusions[i] = TSIInclusion{ID: inc.ID, TypeID: inc.TypeID, VertexID: inc.VertexID, DX: inc.DX, DY: inc.DY}
	}
	return t
}

func sectionCount(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: %s without count", ErrInvalidTSISection, fields[0])
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s count %q", ErrInvalidTSISection, fields[0], fields[1])
	}
	return n, nil
}

func parseTSIVertex(f []string) (TSIVertex, error) {
	if len(f) < 4 {
		return TSIVertex{}, fmt.Errorf("%w: vertex needs id x y z, got %d fields", ErrInvalidTSIRecord, len(f))
	}
	ints, err := parseInts(f[:1], 1)
	if err != nil {
		return TSIVertex{}, err
	}
	pos, err := parseFloats(f[1:4], 3)
	if err != nil {
		return TSIVertex{}, err
	}
	v := TSIVertex{ID: ints[0], X: pos[0], Y: pos[1], Z: pos[2]}
	if len(f) > 4 {
		d, err := parseInts(f[4:5], 1)
		if err != nil {
			return TSIVertex{}, err
		}
		v.Domain = d[0]
	}
	return v, nil
}

func parseTSITriangle(f []string) (TSITriangle, error) {
	if len(f) < 4 {
		return TSITriangle{}, fmt.Errorf("%w: triangle needs id v1 v2 v3, got %d fields", ErrInvalidTSIRecord, len(f))
	}
	ints, err := parseInts(f[:4], 4)
	if err != nil {
		return TSITriangle{}, err
	}
	return TSITriangle{ID: ints[0], V1: ints[1], V2: ints[2], V3: ints[3]}, nil
}

func parseTSIInclusion(f []string) (TSIInclusion, error) {
	if len(f) < 3 {
		return TSIInclusion{}, fmt.Errorf("%w: inclusion needs id type vertex, got %d fields", ErrInvalidTSIRecord, len(f))
	}
	ints, err := parseInts(f[:3], 3)
	if err != nil {
		return TSIInclusion{}, err
	}
	inc := TSIInclusion{ID: ints[0], TypeID: ints[1], VertexID: ints[2], DX: 1}
	if len(f) >= 5 {
		dir, err := parseFloats(f[3:5], 2)
		if err != nil {
			return TSIInclusion{}, err
		}
		inc.DX, inc.DY = dir[0], dir[1]
	}
	return inc, nil
}

func parseFloats(f []string, n int) ([]float64, error) {
	if len(f) < n {
		return nil, fmt.Errorf("%w: expected %d numbers, got %d", ErrInvalidTSIRecord, n, len(f))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidTSIRecord, f[i])
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(f []string, n int) ([]int, error) {
	if len(f) < n {
		return nil, fmt.Errorf("%w: expected %d integers, got %d", ErrInvalidTSIRecord, n, len(f))
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(f[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidTSIRecord, f[i])
		}
		out[i] = v
	}
	return out, nil
}
