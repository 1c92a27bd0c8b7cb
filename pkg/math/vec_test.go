package math

import (
	"math"
	"testing"
)

func TestVec2NormalizeOr(t *testing.T) {
	v := Vec2{3, 4}
	n := v.NormalizeOr(1e-8, Vec2{1, 0})
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Vec2.NormalizeOr().Length() = %v, want 1", n.Length())
	}

	got := Vec2{1e-9, 0}.NormalizeOr(1e-8, Vec2{1, 0})
	if got != (Vec2{1, 0}) {
		t.Errorf("Vec2.NormalizeOr() below eps = %v, want fallback", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
	n := Vec3{1, 2, 2}.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize().Length() = %v, want 1", n.Length())
	}
}

func TestMinImage(t *testing.T) {
	box := Vec3{10, 10, 10}
	a := Vec3{1, 1, 1}
	b := Vec3{9, 1, 2}

	got := MinImage(a, b, box, true)
	want := Vec3{-2, 0, 1}
	if got != want {
		t.Errorf("MinImage(periodic) = %v, want %v", got, want)
	}

	got = MinImage(a, b, box, false)
	want = Vec3{8, 0, 1}
	if got != want {
		t.Errorf("MinImage(open) = %v, want %v", got, want)
	}
}

func TestSymEigen2(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		l1, l2  float64
	}{
		{"diagonal", 3, 0, 1, 3, 1},
		{"swapped diagonal", 1, 0, 3, 3, 1},
		{"isotropic", 2, 0, 2, 2, 2},
		{"off diagonal", 0, 1, 0, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l1, l2, e1 := SymEigen2(tt.a, tt.b, tt.c)
			if math.Abs(l1-tt.l1) > 1e-12 || math.Abs(l2-tt.l2) > 1e-12 {
				t.Errorf("eigenvalues = (%v, %v), want (%v, %v)", l1, l2, tt.l1, tt.l2)
			}
			// M e1 = l1 e1
			mx := tt.a*e1.X + tt.b*e1.Y
			my := tt.b*e1.X + tt.c*e1.Y
			if math.Abs(mx-l1*e1.X) > 1e-12 || math.Abs(my-l1*e1.Y) > 1e-12 {
				t.Errorf("e1 = %v is not an eigenvector of %v", e1, l1)
			}
		})
	}
}

func TestTangentFrame(t *testing.T) {
	for _, n := range []Vec3{{0, 0, 1}, {1, 0, 0}, Vec3{1, 1, 1}.Normalize()} {
		t1, t2 := TangentFrame(n)
		if math.Abs(t1.Dot(n)) > 1e-12 || math.Abs(t2.Dot(n)) > 1e-12 || math.Abs(t1.Dot(t2)) > 1e-12 {
			t.Errorf("frame for %v is not orthogonal: t1=%v t2=%v", n, t1, t2)
		}
		if d := t1.Cross(t2).Sub(n).Length(); d > 1e-12 {
			t.Errorf("frame for %v is not right-handed", n)
		}
	}
}

func TestProjector(t *testing.T) {
	p := Projector(Vec3{0, 0, 1})
	got := p.MulVec(Vec3{1, 2, 3})
	if got != (Vec3{1, 2, 0}) {
		t.Errorf("Projector().MulVec() = %v, want {1 2 0}", got)
	}
	if p.Trace() != 2 {
		t.Errorf("Projector().Trace() = %v, want 2", p.Trace())
	}
}
