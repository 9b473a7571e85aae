package core

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{15, 15, true},  // Inside
		{10, 10, true},  // Top-left corner
		{29, 29, true},  // Just inside bottom-right
		{30, 30, false}, // Bottom-right edge (exclusive)
		{5, 15, false},  // Left of rect
		{35, 15, false}, // Right of rect
		{15, 5, false},  // Above rect
		{15, 35, false}, // Below rect
	}

	for _, tt := range tests {
		result := r.Contains(tt.x, tt.y)
		if result != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, result, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // Within range
		{-5, 0, 10, 0},  // Below min
		{15, 0, 10, 10}, // Above max
		{0, 0, 10, 0},   // At min
		{10, 0, 10, 10}, // At max
	}

	for _, tt := range tests {
		result := Clamp(tt.val, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tt := range tests {
		result := ClampF(tt.val, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tt.val, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Errorf("Lerp(2, 6, 0.25) = %v, expected 3", got)
	}
	if got := Lerp(2, 6, 1.5); got != 8 {
		t.Errorf("Lerp(2, 6, 1.5) = %v, expected 8 (unclamped)", got)
	}
	if got := LerpVec3(V3(0, 0, 0), V3(2, 4, -8), 0.5); got != V3(1, 2, -4) {
		t.Errorf("LerpVec3() = %v, expected {1 2 -4}", got)
	}
}

func near(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestVec3(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add() = %v, expected {5 7 9}", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub() = %v, expected {3 3 3}", got)
	}
	if got := a.Mul(b); got != V3(4, 10, 18) {
		t.Errorf("Mul() = %v, expected {4 10 18}", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot() = %v, expected 32", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross() = %v, expected {0 0 1}", got)
	}
	if got := V3(3, 0, 4).Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
	if got := V3(0, 0, 0).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, expected zero", got)
	}
	if got := V3(0, 3, 4).Normalize().Len(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Normalize().Len() = %v, expected 1", got)
	}
}

func TestRotateXYZ(t *testing.T) {
	tests := []struct {
		name     string
		v, r     Vec3
		expected Vec3
	}{
		{"x quarter turn", V3(0, 1, 0), V3(math.Pi/2, 0, 0), V3(0, 0, 1)},
		{"y quarter turn", V3(1, 0, 0), V3(0, math.Pi/2, 0), V3(0, 0, -1)},
		{"z quarter turn", V3(1, 0, 0), V3(0, 0, math.Pi/2), V3(0, 1, 0)},
		{"no rotation", V3(1, 2, 3), Vec3{}, V3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.RotateXYZ(tt.r); !near(got, tt.expected) {
				t.Errorf("RotateXYZ() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVec3UnmarshalYAML(t *testing.T) {
	var v struct {
		Camera Vec3 `yaml:"camera"`
	}
	if err := yaml.Unmarshal([]byte("camera: [0, 3.5, -16]"), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v.Camera != V3(0, 3.5, -16) {
		t.Errorf("Camera = %v, expected {0 3.5 -16}", v.Camera)
	}

	if err := yaml.Unmarshal([]byte("camera: [1, 2]"), &v); err == nil {
		t.Error("Unmarshal() of a 2-element vector should fail")
	}
}
