// Package segment produces the binary foreground map for one raster.
//
// Stages, in pipeline order:
//
//	BuildMask -> Apply -> Denoise -> Binarize -> Open
//
// BuildMask rasterizes the ROI outline into a filled mask, Apply zeroes
// everything outside it, Denoise suppresses sensor noise, Binarize runs a
// local adaptive threshold so stained cells darker than their local
// background become foreground, and Open (morph.go) removes speckle.
package segment

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// gaussKernel is the fixed denoising kernel side. Sigma 0 lets OpenCV
// derive it from the kernel size.
const gaussKernel = 5

// BuildMask rasterizes the outline into a filled 8-bit mask of the given
// size: 255 for every pixel enclosed by the polygon, 0 elsewhere. Pixels
// exactly on the boundary are inside for masking purposes.
func BuildMask(rows, cols int, outline geometry.Polygon) (gocv.Mat, error) {
	if rows <= 0 || cols <= 0 {
		return gocv.NewMat(), fmt.Errorf("mask size %dx%d has zero area", cols, rows)
	}
	if len(outline) < 3 {
		return gocv.NewMat(), fmt.Errorf("outline needs at least 3 points, got %d", len(outline))
	}

	pts := make([]image.Point, len(outline))
	for i, p := range outline {
		pts[i] = image.Point{X: p.X, Y: p.Y}
	}

	mask := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()
	gocv.FillPoly(&mask, pv, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return mask, nil
}

// Apply masks the source raster: pixels under the mask are copied, pixels
// outside become 0, same as an elementwise multiply by a 0/1 mask. The
// result is the cropped raster all downstream stages operate on.
func Apply(src, mask gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty source raster")
	}
	if src.Rows() != mask.Rows() || src.Cols() != mask.Cols() {
		return gocv.NewMat(), fmt.Errorf("mask size %dx%d does not match raster %dx%d",
			mask.Cols(), mask.Rows(), src.Cols(), src.Rows())
	}

	cropped := gocv.NewMatWithSize(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1)
	src.CopyToWithMask(&cropped, mask)
	return cropped, nil
}

// Denoise applies the fixed small Gaussian smoothing kernel.
func Denoise(src gocv.Mat) gocv.Mat {
	blurred := gocv.NewMat()
	gocv.GaussianBlur(src, &blurred, image.Point{X: gaussKernel, Y: gaussKernel}, 0, 0, gocv.BorderDefault)
	return blurred
}

// Binarize runs the local adaptive threshold: each pixel is compared
// against the Gaussian-weighted mean of its blockSize neighborhood minus c,
// inverted so darker-than-local-background pixels come out as foreground
// (255). blockSize must be odd and at least 3.
func Binarize(src gocv.Mat, blockSize int, c float64) (gocv.Mat, error) {
	if blockSize < 3 || blockSize%2 == 0 {
		return gocv.NewMat(), fmt.Errorf("block size must be odd and >= 3, got %d", blockSize)
	}
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty raster")
	}

	binary := gocv.NewMat()
	gocv.AdaptiveThreshold(src, &binary, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, blockSize, float32(c))
	return binary, nil
}
