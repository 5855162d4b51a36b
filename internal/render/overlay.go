// Package render draws counting results onto rasters for visual review
// and writes rasters to disk.
package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"github.com/cloefgms/FOXP2Project/internal/cell"
	"github.com/cloefgms/FOXP2Project/internal/pipeline"
	"github.com/cloefgms/FOXP2Project/pkg/colorutil"
	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// Overlay paints the counting result onto a BGR copy of the grayscale
// source: region boundaries in blue for accepted cells and red for
// rejected candidates, centroid dots, sequence labels next to accepted
// centroids, the ROI outline in green, and the accepted count in the
// top-left corner of the ROI.
func Overlay(src gocv.Mat, outline geometry.Polygon, dets []cell.Detection) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("source raster is empty")
	}

	img := gocv.NewMat()
	gocv.CvtColor(src, &img, gocv.ColorGrayToBGR)

	rows, cols := img.Rows(), img.Cols()
	for _, d := range dets {
		accepted := d.Class == geometry.Inside
		for _, p := range d.Boundary {
			if p.X < 0 || p.X >= cols || p.Y < 0 || p.Y >= rows {
				continue
			}
			// BGR channel order.
			if accepted {
				img.SetUCharAt(p.Y, p.X*3+0, 255)
				img.SetUCharAt(p.Y, p.X*3+1, 0)
				img.SetUCharAt(p.Y, p.X*3+2, 0)
			} else {
				img.SetUCharAt(p.Y, p.X*3+0, 0)
				img.SetUCharAt(p.Y, p.X*3+1, 0)
				img.SetUCharAt(p.Y, p.X*3+2, 255)
			}
		}

		dotColor := colorutil.Red
		if accepted {
			dotColor = colorutil.Blue
		}
		gocv.Circle(&img, image.Pt(d.X, d.Y), 2, dotColor, -1)
		if accepted {
			gocv.PutText(&img, strconv.Itoa(d.Seq), image.Pt(d.X+5, d.Y-5),
				gocv.FontHersheyPlain, 0.9, colorutil.Yellow, 1)
		}
	}

	pts := make([]image.Point, len(outline))
	for i, p := range outline {
		pts[i] = image.Pt(p.X, p.Y)
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()
	gocv.Polylines(&img, pv, true, colorutil.Green, 2)

	count := len(cell.Accepted(dets))
	bbox := outline.BoundingBox()
	labelAt := image.Pt(bbox.X, max(bbox.Y-6, 12))
	gocv.PutText(&img, fmt.Sprintf("cells: %d", count), labelAt,
		gocv.FontHersheyPlain, 0.9, colorutil.White, 1)

	return img, nil
}

// SaveMat writes a raster to path, with the format taken from the file
// extension.
func SaveMat(m gocv.Mat, path string) error {
	img, err := m.ToImage()
	if err != nil {
		return fmt.Errorf("failed to convert raster for %s: %w", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// SaveIntermediates writes the per-stage rasters of a run into dir as
// numbered PNG files. A nil set is a no-op.
func SaveIntermediates(im *pipeline.Intermediates, dir string) error {
	if im == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	stages := []struct {
		name string
		mat  gocv.Mat
	}{
		{"01-mask.png", im.Mask},
		{"02-cropped.png", im.Cropped},
		{"03-blurred.png", im.Blurred},
		{"04-binary.png", im.Binary},
		{"05-cleaned.png", im.Cleaned},
	}
	for _, s := range stages {
		if err := SaveMat(s.mat, filepath.Join(dir, s.name)); err != nil {
			return err
		}
	}
	return nil
}
