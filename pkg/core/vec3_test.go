package core

import (
	"math"
	"testing"
)

func TestMulVec(t *testing.T) {
	result := MulVec(NewVec3(1, 2, 3), NewVec3(0.5, 0, -1))
	expected := NewVec3(0.5, 0, -3)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		t        float64
		expected Vec3
	}{
		{"start", NewVec3(1, 1, 0), NewVec3(-1, 1, 0), 0, NewVec3(1, 1, 0)},
		{"end", NewVec3(1, 1, 0), NewVec3(-1, 1, 0), 1, NewVec3(-1, 1, 0)},
		{"midpoint", NewVec3(1, 1, 0), NewVec3(-1, -1, 0), 0.5, NewVec3(0, 0, 0)},
		{"quarter", NewVec3(0, 0, 0), NewVec3(4, 8, -4), 0.25, NewVec3(1, 2, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if result.Sub(tt.expected).Len() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	result := Clamp01(NewVec3(-0.5, 0.25, 7))
	expected := NewVec3(0, 0.25, 1)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestSafeNormalize(t *testing.T) {
	unit := SafeNormalize(NewVec3(0, 3, 4))
	if math.Abs(unit.Len()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", unit.Len())
	}
	if math.Abs(unit.Y()-0.6) > 1e-12 || math.Abs(unit.Z()-0.8) > 1e-12 {
		t.Errorf("Expected (0, 0.6, 0.8), got %v", unit)
	}

	zero := SafeNormalize(Vec3{})
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
	if !IsFinite(zero) {
		t.Error("Normalized zero vector should be finite")
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(NewVec3(1, -2, 3)) {
		t.Error("Expected regular vector to be finite")
	}
	if IsFinite(NewVec3(math.NaN(), 0, 0)) {
		t.Error("Expected NaN component to be reported")
	}
	if IsFinite(NewVec3(0, math.Inf(-1), 0)) {
		t.Error("Expected infinite component to be reported")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))
	point := ray.At(1.5)
	expected := NewVec3(1, 3, 0)
	if point != expected {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}

func TestRay_IsDegenerate(t *testing.T) {
	if !NewRay(NewVec3(1, 2, 3), Vec3{}).IsDegenerate() {
		t.Error("Zero-length direction should be degenerate")
	}
	if NewRay(Vec3{}, NewVec3(0, 0, 1e-3)).IsDegenerate() {
		t.Error("Short but non-zero direction should not be degenerate")
	}
}
