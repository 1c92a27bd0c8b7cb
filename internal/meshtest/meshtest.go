// Package meshtest generates small reference surfaces for tests.
package meshtest

import (
	"math"

	"github.com/Faultbox/dtsmesh/pkg/blueprint"
)

// FlatTriangle returns the unit right triangle in the z=0 plane, wound
// counter-clockwise seen from +z.
func FlatTriangle() blueprint.Input {
	return blueprint.Input{
		Vertices:  [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles: [][]int{{0, 1, 2}},
	}
}

// Grid returns an n x n flat grid of quads in the z=0 plane with the given
// spacing, each quad split into two counter-clockwise triangles.
func Grid(n int, spacing float64) blueprint.Input {
	var in blueprint.Input
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			in.Vertices = append(in.Vertices, []float64{float64(i) * spacing, float64(j) * spacing, 0})
		}
	}
	idx := func(i, j int) int { return j*(n+1) + i }
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			in.Triangles = append(in.Triangles, []int{a, b, c}, []int{a, c, d})
		}
	}
	return in
}

// Tetrahedron returns a closed regular tetrahedron with outward normals.
func Tetrahedron() blueprint.Input {
	return blueprint.Input{
		Vertices: [][]float64{
			{1, 1, 1},
			{1, -1, -1},
			{-1, 1, -1},
			{-1, -1, 1},
		},
		Triangles: [][]int{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}
}

// Icosphere returns a closed sphere of the given radius made by subdividing
// an icosahedron level times. Triangles are wound so normals point outward.
func Icosphere(radius float64, level int) blueprint.Input {
	t := (1 + math.Sqrt(5)) / 2
	verts := [][3]float64{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for i := range verts {
		verts[i] = project(verts[i])
	}

	for l := 0; l < level; l++ {
		mid := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if id, ok := mid[key]; ok {
				return id
			}
			p := verts[a]
			q := verts[b]
			verts = append(verts, project([3]float64{(p[0] + q[0]) / 2, (p[1] + q[1]) / 2, (p[2] + q[2]) / 2}))
			mid[key] = len(verts) - 1
			return len(verts) - 1
		}
		next := make([][3]int, 0, 4*len(faces))
		for _, f := range faces {
			a := midpoint(f[0], f[1])
			b := midpoint(f[1], f[2])
			c := midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], a, c},
				[3]int{f[1], b, a},
				[3]int{f[2], c, b},
				[3]int{a, b, c},
			)
		}
		faces = next
	}

	in := blueprint.Input{
		Vertices:  make([][]float64, len(verts)),
		Triangles: make([][]int, len(faces)),
	}
	for i, v := range verts {
		in.Vertices[i] = []float64{v[0] * radius, v[1] * radius, v[2] * radius}
	}
	for i, f := range faces {
		in.Triangles[i] = []int{f[0], f[1], f[2]}
	}
	return in
}

// Cylinder returns an open cylinder of the given radius around the z axis
// with segments facets around and rings rows of quads, normals outward.
func Cylinder(radius, height float64, segments, rings int) blueprint.Input {
	var in blueprint.Input
	for r := 0; r <= rings; r++ {
		z := height * float64(r) / float64(rings)
		for s := 0; s < segments; s++ {
			a := 2 * math.Pi * float64(s) / float64(segments)
			in.Vertices = append(in.Vertices, []float64{radius * math.Cos(a), radius * math.Sin(a), z})
		}
	}
	idx := func(s, r int) int { return r*segments + s%segments }
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a, b, c, d := idx(s, r), idx(s+1, r), idx(s+1, r+1), idx(s, r+1)
			in.Triangles = append(in.Triangles, []int{a, b, c}, []int{a, c, d})
		}
	}
	return in
}

func project(p [3]float64) [3]float64 {
	l := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	return [3]float64{p[0] / l, p[1] / l, p[2] / l}
}
