package cell

import (
	"fmt"
	"image"

	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// Detection is one classified cell candidate. Accepted (Inside) detections
// carry a 1-based sequence number; rejected candidates carry Seq 0 and are
// kept for visualization and diagnostics.
type Detection struct {
	Seq      int
	X        int
	Y        int
	Area     int
	Class    geometry.Classification
	Boundary []image.Point
}

// Classify computes each region's centroid and tests it against the ROI
// outline. Inside centroids are accepted and numbered 1..K in region
// discovery order; OnBoundary and Outside centroids are rejected but
// remain in the returned list. A zero-area region is an error: the area
// filter must run before classification.
func Classify(regions []Region, outline geometry.Polygon) ([]Detection, error) {
	dets := make([]Detection, 0, len(regions))
	seq := 0
	for i, r := range regions {
		if r.Area <= 0 {
			return nil, fmt.Errorf("region %d has zero area, centroid undefined", i)
		}
		c := r.Centroid()
		d := Detection{
			X:        c.X,
			Y:        c.Y,
			Area:     r.Area,
			Class:    geometry.ClassifyPoint(c, outline),
			Boundary: r.Boundary,
		}
		if d.Class == geometry.Inside {
			seq++
			d.Seq = seq
		}
		dets = append(dets, d)
	}
	return dets, nil
}

// Accepted filters a detection list down to the accepted (Inside) entries,
// preserving sequence order.
func Accepted(dets []Detection) []Detection {
	var acc []Detection
	for _, d := range dets {
		if d.Class == geometry.Inside {
			acc = append(acc, d)
		}
	}
	return acc
}
