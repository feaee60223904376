package tilegrid

import (
	"math"
	"testing"
)

func TestTruncTowardZero(t *testing.T) {
	tests := []struct {
		in   Vec3
		want IVec3
	}{
		{Vec3{X: 2.9, Y: -2.9, Z: 0.5}, IVec3{X: 2, Y: -2}},
		{Vec3{X: -0.5, Y: 0.5, Z: -0.5}, IVec3{}},
		{Vec3{X: 1, Y: -1, Z: 2.5}, IVec3{X: 1, Y: -1, Z: 2}},
	}
	for _, tt := range tests {
		if got := tt.in.Trunc(); got != tt.want {
			t.Errorf("Trunc(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundNearest(t *testing.T) {
	in := Vec3{X: 1.5, Y: -1.5, Z: 0.49}
	if got, want := in.Round(), (IVec3{X: 2, Y: -2}); got != want {
		t.Errorf("Round(%v) = %v, want %v", in, got, want)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}

	n := Vec3{X: 3, Y: 4}.Normalize()
	if math.Abs(float64(n.Length())-1) > 1e-6 {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
}

func TestSign(t *testing.T) {
	got := Vec3{X: 2.5, Y: -0.1}.Sign()
	if want := (IVec3{X: 1, Y: -1}); got != want {
		t.Errorf("Sign = %v, want %v", got, want)
	}
}
