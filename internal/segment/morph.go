package segment

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Open applies one erosion pass followed by one dilation pass with the same
// square all-ones structuring element (morphological opening). Erosion
// eliminates isolated speckles and thin connections; dilation restores the
// approximate footprint of the blobs that survived. Blobs fully erased by
// the erosion stay erased. kernelSize must be odd and at least 1.
func Open(src gocv.Mat, kernelSize int) (gocv.Mat, error) {
	if kernelSize < 1 || kernelSize%2 == 0 {
		return gocv.NewMat(), fmt.Errorf("kernel size must be odd and >= 1, got %d", kernelSize)
	}
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("empty binary map")
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: kernelSize, Y: kernelSize})
	defer kernel.Close()

	eroded := gocv.NewMat()
	defer eroded.Close()
	gocv.Erode(src, &eroded, kernel)

	opened := gocv.NewMat()
	gocv.Dilate(eroded, &opened, kernel)
	return opened, nil
}
