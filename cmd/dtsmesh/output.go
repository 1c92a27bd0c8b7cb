package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dtsmesh/pkg/dts"
)

// vertexRow is one line of curvature output.
type vertexRow struct {
	ID       int        `yaml:"id"`
	Position [3]float64 `yaml:"position,flow"`
	K1       float64    `yaml:"k1"`
	K2       float64    `yaml:"k2"`
	Mean     float64    `yaml:"mean"`
	Gaussian float64    `yaml:"gaussian"`
	Normal   [3]float64 `yaml:"normal,flow"`
	Area     float64    `yaml:"area"`
	Edge     bool       `yaml:"edge"`
	Valid    bool       `yaml:"valid"`
}

func vertexRows(s *dts.Surface) []vertexRow {
	pos, curv, normals := s.Positions(), s.Curvatures(), s.Normals()
	areas, mean, gauss := s.Areas(), s.MeanCurvatures(), s.GaussianCurvatures()
	valid, edge := s.Validity(), s.EdgeVertexMask()

	rows := make([]vertexRow, len(areas))
	for i := range rows {
		rows[i] = vertexRow{
			ID:       i,
			Position: [3]float64{pos[3*i], pos[3*i+1], pos[3*i+2]},
			K1:       curv[2*i],
			K2:       curv[2*i+1],
			Mean:     mean[i],
			Gaussian: gauss[i],
			Normal:   [3]float64{normals[3*i], normals[3*i+1], normals[3*i+2]},
			Area:     areas[i],
			Edge:     edge[i],
			Valid:    valid[i],
		}
	}
	return rows
}

var columns = []string{"id", "x", "y", "z", "k1", "k2", "mean", "gaussian", "nx", "ny", "nz", "area", "edge", "valid"}

func (r vertexRow) fields(prec int) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', prec, 64) }
	return []string{
		strconv.Itoa(r.ID),
		f(r.Position[0]), f(r.Position[1]), f(r.Position[2]),
		f(r.K1), f(r.K2), f(r.Mean), f(r.Gaussian),
		f(r.Normal[0]), f(r.Normal[1]), f(r.Normal[2]),
		f(r.Area),
		strconv.FormatBool(r.Edge),
		strconv.FormatBool(r.Valid),
	}
}

func writeCSV(w io.Writer, rows []vertexRow, prec int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.fields(prec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(w io.Writer, rows []vertexRow, prec int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, c := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw, "\t")
	for _, r := range rows {
		for i, c := range r.fields(prec) {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw, "\t")
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, rows []vertexRow) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]vertexRow{"vertices": rows}); err != nil {
		return err
	}
	return enc.Close()
}

// summary aggregates whole-surface quantities.
type summary struct {
	Source         string
	Vertices       int
	Triangles      int
	Inclusions     int
	EdgeVertices   int
	Box            [3]float64
	Periodic       bool
	TotalArea      float64
	MeanCurvature  float64 // Area-weighted over valid vertices
	TotalGaussian  float64 // Sum of K * area over valid vertices
	Diagnostics    int
	InclusionTypes map[int]int
}

func summarize(s *dts.Surface) summary {
	x, y, z, periodic := s.Box()
	sum := summary{
		Source:         s.Source(),
		Vertices:       s.VertexCount(),
		Triangles:      s.TriangleCount(),
		Inclusions:     s.InclusionCount(),
		Box:            [3]float64{x, y, z},
		Periodic:       periodic,
		Diagnostics:    len(s.Diagnostics()),
		InclusionTypes: make(map[int]int),
	}

	areas, mean, gauss := s.Areas(), s.MeanCurvatures(), s.GaussianCurvatures()
	valid, edge := s.Validity(), s.EdgeVertexMask()
	var weighted float64
	for i, a := range areas {
		if edge[i] {
			sum.EdgeVertices++
		}
		if !valid[i] {
			continue
		}
		sum.TotalArea += a
		weighted += mean[i] * a
		sum.TotalGaussian += gauss[i] * a
	}
	if sum.TotalArea > 0 {
		sum.MeanCurvature = weighted / sum.TotalArea
	}

	_, types := s.InclusionMapping()
	for _, t := range types {
		sum.InclusionTypes[t]++
	}
	return sum
}

func writeSummary(w io.Writer, s summary, prec int) {
	fmt.Fprintf(w, "Source:         %s\n", s.Source)
	fmt.Fprintf(w, "Vertices:       %d (%d on a boundary)\n", s.Vertices, s.EdgeVertices)
	fmt.Fprintf(w, "Triangles:      %d\n", s.Triangles)
	fmt.Fprintf(w, "Inclusions:     %d\n", s.Inclusions)
	if s.Periodic {
		fmt.Fprintf(w, "Box:            %.*f x %.*f x %.*f (periodic)\n", prec, s.Box[0], prec, s.Box[1], prec, s.Box[2])
	} else {
		fmt.Fprintln(w, "Box:            none")
	}
	fmt.Fprintf(w, "Area:           %.*f\n", prec, s.TotalArea)
	fmt.Fprintf(w, "Mean curvature: %.*f\n", prec, s.MeanCurvature)
	fmt.Fprintf(w, "Total Gaussian: %.*f\n", prec, s.TotalGaussian)
	fmt.Fprintf(w, "Degenerate:     %d\n", s.Diagnostics)
	if len(s.InclusionTypes) > 0 {
		fmt.Fprintln(w, "Inclusions by type:")
		types := make([]int, 0, len(s.InclusionTypes))
		for t := range s.InclusionTypes {
			types = append(types, t)
		}
		sort.Ints(types)
		for _, t := range types {
			fmt.Fprintf(w, "  type %-6d %d\n", t, s.InclusionTypes[t])
		}
	}
}
