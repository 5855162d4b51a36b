// Package raster loads grayscale microscope rasters into OpenCV mats.
package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"sync"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Load reads a raster file (PNG, JPEG or TIFF) and returns it as a
// single-channel 8-bit mat.
func Load(path string) (gocv.Mat, error) {
	file, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to open raster: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to decode raster %s: %w", path, err)
	}
	return ToGrayMat(img)
}

// ToGrayMat converts a decoded image to a single-channel mat. Grayscale
// inputs copy rows directly; everything else goes through a BGR mat and a
// CvtColor pass so luminance weighting matches the raster library.
func ToGrayMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return gocv.NewMat(), fmt.Errorf("raster %dx%d has zero area", width, height)
	}

	if gray, ok := img.(*image.Gray); ok {
		mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC1)
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x, v := range row {
				mat.SetUCharAt(y, x, v)
			}
		}
		return mat, nil
	}

	bgr := toBGRMat(img)
	defer bgr.Close()

	mat := gocv.NewMat()
	gocv.CvtColor(bgr, &mat, gocv.ColorBGRToGray)
	return mat, nil
}

// toBGRMat converts a Go image.Image to a BGR mat, parallelized by
// horizontal stripes.
func toBGRMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
					// OpenCV uses BGR order
					mat.SetUCharAt(y, x*3+0, uint8(b>>8))
					mat.SetUCharAt(y, x*3+1, uint8(g>>8))
					mat.SetUCharAt(y, x*3+2, uint8(r>>8))
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return mat
}
