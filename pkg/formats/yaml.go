package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dtsmesh/pkg/blueprint"
)

// ErrEmptyDocument is returned for a YAML file with no mesh document.
var ErrEmptyDocument = errors.New("empty mesh document")

// MeshDocument is the YAML mesh description.
//
//	box: [10, 10, 10]
//	vertices:
//	  - [0, 0, 0]
//	  - [1, 0, 0]
//	  - [0, 1, 0]
//	triangles:
//	  - [0, 1, 2]
//	domains: [0, 0, 1]
//	inclusions:
//	  - {type: 1, vertex: 0, direction: [1, 0]}
type MeshDocument struct {
	Box        []float64       `yaml:"box,omitempty,flow"`
	Vertices   [][]float64     `yaml:"vertices"`
	Triangles  [][]int         `yaml:"triangles"`
	Domains    []int           `yaml:"domains,omitempty,flow"`
	Inclusions []YAMLInclusion `yaml:"inclusions,omitempty"`
}

// YAMLInclusion is one inclusion entry. A missing direction means (1, 0).
type YAMLInclusion struct {
	Type      int       `yaml:"type"`
	Vertex    int       `yaml:"vertex"`
	Direction []float64 `yaml:"direction,omitempty,flow"`
}

// ParseYAML parses a YAML mesh document. Unknown keys are rejected.
func ParseYAML(data []byte) (*MeshDocument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc MeshDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decoding mesh document: %w", err)
	}
	return &doc, nil
}

// ParseYAMLFile parses a YAML mesh document from disk.
func ParseYAMLFile(path string) (*MeshDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// Input converts the document into blueprint input.
func (d *MeshDocument) Input() blueprint.Input {
	in := blueprint.Input{
		Vertices:      d.Vertices,
		Triangles:     d.Triangles,
		BoxSize:       d.Box,
		VertexDomains: d.Domains,
	}
	if len(d.Inclusions) > 0 {
		in.Inclusions = make([][]int, len(d.Inclusions))
		in.InclusionDirections = make([][]float64, len(d.Inclusions))
		for i, inc := range d.Inclusions {
			in.Inclusions[i] = []int{inc.Type, inc.Vertex}
			dir := inc.Direction
			if len(dir) == 0 {
				dir = []float64{1, 0}
			}
			in.InclusionDirections[i] = dir
		}
	}
	return in
}

// Marshal encodes the document as YAML.
func (d *MeshDocument) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DocumentFromBlueprint converts a validated blueprint to a YAML document.
func DocumentFromBlueprint(bp *blueprint.Blueprint) *MeshDocument {
	d := &MeshDocument{
		Vertices:  make([][]float64, len(bp.Vertices)),
		Triangles: make([][]int, len(bp.Triangles)),
	}
	if bp.Periodic {
		d.Box = []float64{bp.Box.X, bp.Box.Y, bp.Box.Z}
	}
	hasDomains := false
	domains := make([]int, len(bp.Vertices))
	for i, v := range bp.Vertices {
		d.Vertices[i] = []float64{v.X, v.Y, v.Z}
		domains[i] = v.Domain
		hasDomains = hasDomains || v.Domain != 0
	}
	if hasDomains {
		d.Domains = domains
	}
	for i, t := range bp.Triangles {
		d.Triangles[i] = []int{t.V1, t.V2, t.V3}
	}
	for _, inc := range bp.Inclusions {
		d.Inclusions = append(d.Inclusions, YAMLInclusion{
			Type:      inc.TypeID,
			Vertex:    inc.VertexID,
			Direction: []float64{inc.DX, inc.DY},
		})
	}
	return d
}
