package geometry

// Classification is the outcome of testing a point against a closed polygon.
type Classification int

const (
	// Outside means the point is strictly outside the polygon.
	Outside Classification = iota
	// OnBoundary means the point lies exactly on a polygon edge or vertex.
	OnBoundary
	// Inside means the point is strictly enclosed by the polygon.
	Inside
)

// String returns a human-readable name for the classification.
func (c Classification) String() string {
	switch c {
	case Inside:
		return "inside"
	case OnBoundary:
		return "boundary"
	case Outside:
		return "outside"
	default:
		return "unknown"
	}
}

// ClassifyPoint tests a point against a polygon with three outcomes:
// strictly inside, exactly on the boundary, or outside. The boundary test
// is exact for integer coordinates; the interior test uses even-odd ray
// casting. Degenerate polygons (fewer than 3 points) classify everything
// as Outside.
func ClassifyPoint(p PointInt, polygon Polygon) Classification {
	n := len(polygon)
	if n < 3 {
		return Outside
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if onSegment(p, polygon[i], polygon[j]) {
			return OnBoundary
		}
	}

	inside := false
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right crosses edge pi-pj. The half-open
		// y-interval rule counts each vertex crossing exactly once; boundary
		// contact was already excluded above, so strict comparison is safe.
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			crossX := float64(pj.X-pi.X)*float64(p.Y-pi.Y)/float64(pj.Y-pi.Y) + float64(pi.X)
			if float64(p.X) < crossX {
				inside = !inside
			}
		}
	}

	if inside {
		return Inside
	}
	return Outside
}

// onSegment reports whether p lies exactly on the closed segment a-b.
func onSegment(p, a, b PointInt) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	if p.X < min(a.X, b.X) || p.X > max(a.X, b.X) {
		return false
	}
	if p.Y < min(a.Y, b.Y) || p.Y > max(a.Y, b.Y) {
		return false
	}
	return true
}
