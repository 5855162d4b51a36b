// Package geometry provides basic geometric types used throughout the application.
package geometry

// PointInt represents a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains returns true if the point is inside the rectangle (inclusive edges).
func (r RectInt) Contains(p PointInt) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Polygon is a closed outline of integer pixel points. The last point
// connects implicitly back to the first. Point order is whatever the
// source provided; no winding is enforced.
type Polygon []PointInt

// BoundingBox computes the axis-aligned bounding box of the outline.
func (pg Polygon) BoundingBox() RectInt {
	if len(pg) == 0 {
		return RectInt{}
	}
	minX, minY := pg[0].X, pg[0].Y
	maxX, maxY := minX, minY
	for _, p := range pg[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return RectInt{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Area returns the enclosed area in square pixels via the shoelace formula.
// Degenerate outlines (fewer than 3 points) have zero area.
func (pg Polygon) Area() float64 {
	if len(pg) < 3 {
		return 0
	}
	n := len(pg)
	sum := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pg[i].X*pg[j].Y - pg[j].X*pg[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}
