package formats

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dtsmesh/pkg/blueprint"
)

const sampleTSI = `version 1.1
box   10.0   10.0   10.0
; three vertices, the last in domain 1
vertex 3
0  0.0 0.0 0.0
1  1.0 0.0 0.0
2  0.0 1.0 0.0 1
triangle 1
0  0 1 2
inclusion 1
0  4 2 0.0 0.0
`

const sampleYAML = `
box: [10, 10, 10]
vertices:
  - [0, 0, 0]
  - [1, 0, 0]
  - [0, 1, 0]
triangles:
  - [0, 1, 2]
domains: [0, 0, 1]
inclusions:
  - {type: 4, vertex: 2, direction: [0, 0]}
`

func TestParseTSI(t *testing.T) {
	tsi, err := ParseTSI([]byte(sampleTSI))
	require.NoError(t, err)

	assert.Equal(t, "1.1", tsi.Version)
	assert.True(t, tsi.HasBox)
	assert.Equal(t, [3]float64{10, 10, 10}, tsi.Box)
	require.Len(t, tsi.Vertices, 3)
	assert.Equal(t, 1, tsi.Vertices[2].Domain)
	assert.Equal(t, []TSITriangle{{ID: 0, V1: 0, V2: 1, V3: 2}}, tsi.Triangles)
	assert.Equal(t, []TSIInclusion{{ID: 0, TypeID: 4, VertexID: 2}}, tsi.Inclusions)
}

func TestParseTSI_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown section", "version 1.1\nedges 3\n", ErrInvalidTSISection},
		{"missing count", "vertex\n", ErrInvalidTSISection},
		{"truncated vertices", "vertex 2\n0 0 0 0\n", ErrTruncatedTSIData},
		{"short vertex", "vertex 1\n0 0 0\n", ErrInvalidTSIRecord},
		{"bad number", "vertex 1\n0 0 x 0\n", ErrInvalidTSIRecord},
		{"vertex ids out of order", "vertex 2\n1 0 0 0\n0 1 0 0\n", ErrInvalidTSIRecord},
		{"short triangle", "vertex 1\n0 0 0 0\ntriangle 1\n0 0 1\n", ErrInvalidTSIRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTSI([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10, 10}, doc.Box)
	assert.Len(t, doc.Vertices, 3)
	assert.Equal(t, []int{0, 0, 1}, doc.Domains)

	_, err = ParseYAML([]byte("vertices: []\ncolour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = ParseYAML(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestTSIAndYAMLAgree(t *testing.T) {
	tsi, err := ParseTSI([]byte(sampleTSI))
	require.NoError(t, err)
	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	a, err := blueprint.Build(tsi.Input())
	require.NoError(t, err)
	b, err := blueprint.Build(doc.Input())
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("TSI and YAML blueprints differ (-tsi +yaml):\n%s", diff)
	}
	assert.Equal(t, blueprint.Inclusion{ID: 0, TypeID: 4, VertexID: 2, DX: 1, DY: 0}, a.Inclusions[0])
}

func TestTSIRoundTrip(t *testing.T) {
	tsi, err := ParseTSI([]byte(sampleTSI))
	require.NoError(t, err)
	bp, err := blueprint.Build(tsi.Input())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = TSIFromBlueprint(bp).WriteTo(&buf)
	require.NoError(t, err)

	again, err := ParseTSI(buf.Bytes())
	require.NoError(t, err)
	bp2, err := blueprint.Build(again.Input())
	require.NoError(t, err)

	if diff := cmp.Diff(bp, bp2); diff != "" {
		t.Errorf("round trip changed blueprint:\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)
	bp, err := blueprint.Build(doc.Input())
	require.NoError(t, err)

	data, err := DocumentFromBlueprint(bp).Marshal()
	require.NoError(t, err)
	again, err := ParseYAML(data)
	require.NoError(t, err)
	bp2, err := blueprint.Build(again.Input())
	require.NoError(t, err)

	if diff := cmp.Diff(bp, bp2); diff != "" {
		t.Errorf("round trip changed blueprint:\n%s", diff)
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()
	tsiPath := filepath.Join(dir, "mesh.tsi")
	yamlPath := filepath.Join(dir, "mesh.yml")
	require.NoError(t, os.WriteFile(tsiPath, []byte(sampleTSI), 0644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0644))

	in, err := LoadInput(tsiPath)
	require.NoError(t, err)
	assert.Equal(t, tsiPath, in.Source)
	assert.Len(t, in.Vertices, 3)

	in, err = LoadInput(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, in.Source)

	_, err = LoadInput(filepath.Join(dir, "mesh.obj"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadInput(filepath.Join(dir, "missing.tsi"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatTSI, DetectFormat("a/b/MESH.TSI"))
	assert.Equal(t, FormatYAML, DetectFormat("x.yaml"))
	assert.Equal(t, FormatUnknown, DetectFormat("x.q"))
	assert.Equal(t, "tsi", FormatTSI.String())
}
