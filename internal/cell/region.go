// Package cell turns a cleaned binary map into classified cell detections.
//
// Extraction collects 8-connected foreground regions with a stack-based
// flood fill and filters them by pixel-count area. Classification computes
// each surviving region's centroid from its first-order moments and tests
// it against the ROI outline.
package cell

import (
	"image"

	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// Bitmap is a binary raster in row-major order. Any nonzero byte is
// foreground.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// At reports whether the pixel at (x, y) is foreground. Out-of-range
// coordinates read as background.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return false
	}
	return b.Pix[y*b.Width+x] != 0
}

// Region is one 8-connected set of foreground pixels. Coordinate sums are
// kept as int64 so first-order moments cannot overflow on large rasters.
type Region struct {
	Area     int
	SumX     int64
	SumY     int64
	Boundary []image.Point // foreground pixels with a background 4-neighbor
}

// Centroid returns the first-order moment ratio (SumX/Area, SumY/Area)
// truncated to integer pixel coordinates. The caller must ensure Area > 0.
func (r Region) Centroid() geometry.PointInt {
	return geometry.PointInt{X: int(r.SumX / int64(r.Area)), Y: int(r.SumY / int64(r.Area))}
}

// Extract scans the bitmap row-major and collects every 8-connected
// foreground region whose area is strictly greater than minArea. The area
// filter runs here, before any centroid math, so downstream moment ratios
// never divide by zero. Discovery order follows the seed scan and is stable
// for identical input.
func Extract(bm Bitmap, minArea int) []Region {
	if bm.Width <= 0 || bm.Height <= 0 || len(bm.Pix) < bm.Width*bm.Height {
		return nil
	}

	visited := make([]bool, bm.Width*bm.Height)
	var regions []Region
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			if !bm.At(x, y) || visited[y*bm.Width+x] {
				continue
			}
			r := fill(bm, visited, x, y)
			if r.Area > minArea {
				regions = append(regions, r)
			}
		}
	}
	return regions
}

// fill flood-fills one region from a seed pixel. Iterative stack-based
// traversal avoids recursion depth limits on large blobs; connectivity is
// 8-way (diagonal neighbors join).
func fill(bm Bitmap, visited []bool, startX, startY int) Region {
	var r Region
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !bm.At(p.X, p.Y) || visited[p.Y*bm.Width+p.X] {
			continue
		}
		visited[p.Y*bm.Width+p.X] = true

		r.Area++
		r.SumX += int64(p.X)
		r.SumY += int64(p.Y)
		if isBoundary(bm, p.X, p.Y) {
			r.Boundary = append(r.Boundary, p)
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return r
}

// isBoundary reports whether a foreground pixel touches background, or the
// raster edge, through any 4-neighbor.
func isBoundary(bm Bitmap, x, y int) bool {
	return !bm.At(x-1, y) || !bm.At(x+1, y) || !bm.At(x, y-1) || !bm.At(x, y+1)
}
