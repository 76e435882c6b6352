package geometry

import (
	"math"
	"testing"
)

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2)
	if v.X != 1 || v.Y != 2 {
		t.Errorf("NewVector(1, 2) = %v; want (1, 2)", v)
	}
}

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   Vector2D
	}{
		{"Zero radius", 0, 0, Vector2D{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector2D{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector2D{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector2D{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector2D{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("Dot", func(t *testing.T) {
		want := 11.0
		if got := v1.Dot(v2); got != want {
			t.Errorf("%v.Dot(%v) = %v; want %v", v1, v2, got, want)
		}
	})
}

func TestVector_Length(t *testing.T) {
	v := Vector2D{3, 4}

	if got := v.Len(); got != 5 {
		t.Errorf("%v.Len() = %v; want 5", v, got)
	}
	if got := v.LenSqr(); got != 25 {
		t.Errorf("%v.LenSqr() = %v; want 25", v, got)
	}
	if got := (Vector2D{1, 1}).DistanceTo(Vector2D{4, 5}); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
	if got := (Vector2D{1, 1}).DistanceSquaredTo(Vector2D{4, 5}); got != 25 {
		t.Errorf("DistanceSquaredTo = %v; want 25", got)
	}
}

func TestVector_Normalize(t *testing.T) {
	t.Run("Unit direction preserved", func(t *testing.T) {
		v := Vector2D{3, 4}
		got := v.Normalize()
		want := Vector2D{0.6, 0.8}
		if !got.Eq(want) {
			t.Errorf("%v.Normalize() = %v; want %v", v, got, want)
		}
	})

	t.Run("Zero vector stays zero", func(t *testing.T) {
		got := Vector2D{0, 0}.Normalize()
		if !got.Eq(Vector2D{0, 0}) {
			t.Errorf("zero.Normalize() = %v; want (0, 0)", got)
		}
		if math.IsNaN(got.X) || math.IsNaN(got.Y) {
			t.Errorf("zero.Normalize() produced NaN: %v", got)
		}
	})

	t.Run("Sub-epsilon vector stays zero", func(t *testing.T) {
		got := Vector2D{1e-12, -1e-12}.Normalize()
		if !got.Eq(Vector2D{0, 0}) {
			t.Errorf("tiny.Normalize() = %v; want (0, 0)", got)
		}
	})
}

func TestVector_ClampLength(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
		max  float64
		want Vector2D
	}{
		{"Longer vector rescaled", Vector2D{6, 8}, 5, Vector2D{3, 4}},
		{"Shorter vector untouched", Vector2D{1, 0}, 5, Vector2D{1, 0}},
		{"Exact length untouched", Vector2D{3, 4}, 5, Vector2D{3, 4}},
		{"Zero vector untouched", Vector2D{0, 0}, 5, Vector2D{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ClampLength(tt.max)
			if !got.Eq(tt.want) {
				t.Errorf("%v.ClampLength(%v) = %v; want %v", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestVector_Angle(t *testing.T) {
	if got := (Vector2D{1, 0}).Angle(); got != 0 {
		t.Errorf("(1,0).Angle() = %v; want 0", got)
	}
	if got := (Vector2D{0, 1}).Angle(); math.Abs(got-math.Pi/2) > Epsilon {
		t.Errorf("(0,1).Angle() = %v; want Pi/2", got)
	}
}
