// Package stats summarizes detection results per image and across a batch.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cloefgms/FOXP2Project/internal/cell"
	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// ImageSummary describes the classification tally for one processed image.
type ImageSummary struct {
	Accepted   int
	OnBoundary int
	Outside    int
	ROIAreaPx  float64
	// Density is accepted cells per square physical unit, derived from the
	// ROI pixel area and the loader's unit-to-pixel scale.
	Density float64
}

// Summarize tallies a classified detection list against the ROI it was
// classified with. scale is the unit-to-pixel factor used by the loader.
func Summarize(dets []cell.Detection, outline geometry.Polygon, scale float64) ImageSummary {
	s := ImageSummary{ROIAreaPx: outline.Area()}
	for _, d := range dets {
		switch d.Class {
		case geometry.Inside:
			s.Accepted++
		case geometry.OnBoundary:
			s.OnBoundary++
		default:
			s.Outside++
		}
	}
	if s.ROIAreaPx > 0 && scale > 0 {
		s.Density = float64(s.Accepted) / (s.ROIAreaPx / (scale * scale))
	}
	return s
}

// BatchSummary aggregates accepted counts across a batch of images.
type BatchSummary struct {
	Images int
	Total  int
	Mean   float64
	StdDev float64
	Median float64
}

// SummarizeBatch computes count statistics over per-image accepted counts.
// Callers pass counts of successfully processed images only.
func SummarizeBatch(counts []int) BatchSummary {
	s := BatchSummary{Images: len(counts)}
	if len(counts) == 0 {
		return s
	}

	xs := make([]float64, len(counts))
	for i, c := range counts {
		s.Total += c
		xs[i] = float64(c)
	}
	sort.Float64s(xs)

	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
	return s
}
