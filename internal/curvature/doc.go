// Package curvature computes per-vertex principal curvatures, normals and
// areas of a mesh.
//
// A Calculator runs a fixed five-stage pipeline over the mesh's current
// active elements:
//
//  1. refresh triangle normals and areas
//  2. update the shape-operator contribution of every interior link
//  3. update the edge vector of every boundary link
//  4. estimate curvature at surface vertices
//  5. estimate curvature at edge vertices
//
// Each stage consumes what the previous ones produced, so the stages always
// run together and in this order. Degenerate vertices (zero area or a zero
// normal) do not fail a run: they are reported as Diagnostics and keep zeroed
// curvature and normal.
package curvature
