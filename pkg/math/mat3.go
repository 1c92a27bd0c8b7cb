package math

import "math"

// Mat3 is a 3x3 matrix in row-major order.
type Mat3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Outer returns the outer product a bᵀ.
func Outer(a, b Vec3) Mat3 {
	return Mat3{
		a.X * b.X, a.X * b.Y, a.X * b.Z,
		a.Y * b.X, a.Y * b.Y, a.Y * b.Z,
		a.Z * b.X, a.Z * b.Y, a.Z * b.Z,
	}
}

// Projector returns I - n nᵀ, the projection onto the plane orthogonal to the
// unit vector n.
func Projector(n Vec3) Mat3 {
	return Identity3().Sub(Outer(n, n))
}

// Add returns m + other.
func (m Mat3) Add(other Mat3) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] + other[i]
	}
	return r
}

// Sub returns m - other.
func (m Mat3) Sub(other Mat3) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] - other[i]
	}
	return r
}

// Scale returns m * s.
func (m Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] * s
	}
	return r
}

// MulVec returns m v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Bilinear returns aᵀ m b.
func (m Mat3) Bilinear(a, b Vec3) float64 {
	return a.Dot(m.MulVec(b))
}

// Trace returns the sum of the diagonal.
func (m Mat3) Trace() float64 {
	return m[0] + m[4] + m[8]
}

// SymEigen2 returns the eigenvalues (l1 >= l2) of the symmetric 2x2 matrix
// [[a, b], [b, c]] and the unit eigenvector of l1 in the same 2D basis.
func SymEigen2(a, b, c float64) (l1, l2 float64, e1 Vec2) {
	mean := (a + c) / 2
	r := math.Hypot((a-c)/2, b)
	l1, l2 = mean+r, mean-r
	if r == 0 {
		return l1, l2, Vec2{1, 0}
	}
	theta := 0.5 * math.Atan2(2*b, a-c)
	return l1, l2, Vec2{math.Cos(theta), math.Sin(theta)}
}

// TangentFrame returns two unit vectors that together with the unit vector n
// form a right-handed orthonormal basis.
func TangentFrame(n Vec3) (t1, t2 Vec3) {
	ref := Vec3{1, 0, 0}
	if math.Abs(n.X) > 0.9 {
		ref = Vec3{0, 1, 0}
	}
	t1 = ref.Sub(n.Scale(ref.Dot(n))).Normalize()
	t2 = n.Cross(t1)
	return t1, t2
}
