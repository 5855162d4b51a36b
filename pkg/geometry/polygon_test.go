package geometry

import "testing"

func square() Polygon {
	return Polygon{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}}
}

// lShape is concave: a 40x40 square with the bottom-right 20x20 corner removed.
func lShape() Polygon {
	return Polygon{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 20}, {X: 20, Y: 20}, {X: 20, Y: 40}, {X: 0, Y: 40}}
}

func TestClassifyPoint(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		p    PointInt
		want Classification
	}{
		{"vertex is boundary", square(), PointInt{10, 10}, OnBoundary},
		{"edge midpoint is boundary", square(), PointInt{30, 10}, OnBoundary},
		{"right edge is boundary", square(), PointInt{50, 30}, OnBoundary},
		{"one pixel inside", square(), PointInt{11, 11}, Inside},
		{"center inside", square(), PointInt{30, 30}, Inside},
		{"one pixel outside", square(), PointInt{9, 30}, Outside},
		{"far outside", square(), PointInt{200, 200}, Outside},
		{"concave notch is outside", lShape(), PointInt{30, 30}, Outside},
		{"concave arm is inside", lShape(), PointInt{10, 30}, Inside},
		{"concave inner corner is boundary", lShape(), PointInt{20, 20}, OnBoundary},
	}
	for _, tt := range tests {
		if got := ClassifyPoint(tt.p, tt.poly); got != tt.want {
			t.Errorf("%s: ClassifyPoint(%v) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestClassifyPointWindingIndependent(t *testing.T) {
	sq := square()
	reversed := make(Polygon, len(sq))
	for i, p := range sq {
		reversed[len(sq)-1-i] = p
	}

	pts := []PointInt{{30, 30}, {10, 10}, {9, 30}}
	for _, p := range pts {
		if a, b := ClassifyPoint(p, sq), ClassifyPoint(p, reversed); a != b {
			t.Errorf("classification of %v depends on winding: %v vs %v", p, a, b)
		}
	}
}

func TestClassifyPointDegenerate(t *testing.T) {
	line := Polygon{{X: 0, Y: 0}, {X: 10, Y: 10}}
	if got := ClassifyPoint(PointInt{5, 5}, line); got != Outside {
		t.Errorf("degenerate polygon should classify as Outside, got %v", got)
	}
}

func TestPolygonArea(t *testing.T) {
	if got := square().Area(); got != 1600 {
		t.Errorf("square area = %v, want 1600", got)
	}
	if got := lShape().Area(); got != 1200 {
		t.Errorf("L-shape area = %v, want 1200", got)
	}
	if got := (Polygon{{0, 0}, {10, 10}}).Area(); got != 0 {
		t.Errorf("degenerate area = %v, want 0", got)
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	bb := lShape().BoundingBox()
	want := RectInt{X: 0, Y: 0, Width: 40, Height: 40}
	if bb != want {
		t.Errorf("bounding box = %+v, want %+v", bb, want)
	}
	if !bb.Contains(PointInt{40, 40}) {
		t.Error("bounding box should contain its max corner")
	}
	if bb.Contains(PointInt{41, 0}) {
		t.Error("bounding box should not contain points past its max corner")
	}
}
