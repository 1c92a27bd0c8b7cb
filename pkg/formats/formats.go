// Package formats reads and writes mesh description files.
//
// Supported formats:
//   - TSI (.tsi): the FreeDTS topology text format, reduced to its vertex,
//     triangle, inclusion and box sections
//   - YAML (.yaml, .yml): a structured mesh document
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/dtsmesh/pkg/blueprint"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported mesh file format")

// Format identifies a mesh file format.
type Format uint8

// Known formats.
const (
	FormatUnknown Format = iota
	FormatTSI
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTSI:
		return "tsi"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsi":
		return FormatTSI
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// LoadInput reads the mesh file at path and returns it as blueprint input.
// Input.Source is set to path.
func LoadInput(path string) (blueprint.Input, error) {
	var (
		in  blueprint.Input
		err error
	)
	switch DetectFormat(path) {
	case FormatTSI:
		var t *TSI
		t, err = ParseTSIFile(path)
		if err == nil {
			in = t.Input()
		}
	case FormatYAML:
		var doc *MeshDocument
		doc, err = ParseYAMLFile(path)
		if err == nil {
			in = doc.Input()
		}
	default:
		return blueprint.Input{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return blueprint.Input{}, err
	}
	in.Source = path
	return in, nil
}
