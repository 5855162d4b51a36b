package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

func TestLoadGrayPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(10*y + x)})
		}
	}

	mat, err := Load(writePNG(t, img))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer mat.Close()

	if mat.Rows() != 6 || mat.Cols() != 8 {
		t.Fatalf("mat is %dx%d, want 8x6", mat.Cols(), mat.Rows())
	}
	if got := mat.GetUCharAt(3, 5); got != 35 {
		t.Errorf("pixel (5, 3) = %d, want 35", got)
	}
}

func TestLoadColorPNGConvertsToGray(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	mat, err := Load(writePNG(t, img))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer mat.Close()

	// Pure red under OpenCV luminance weighting is roughly 0.299 * 255.
	got := int(mat.GetUCharAt(2, 2))
	if got < 74 || got > 79 {
		t.Errorf("red pixel converted to %d, want about 76", got)
	}
}

func TestLoadTIFF(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.SetGray(x, y, color.Gray{Y: 90})
		}
	}
	path := filepath.Join(t.TempDir(), "scan.tif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := tiff.Encode(f, img, nil); err != nil {
		f.Close()
		t.Fatalf("failed to encode tiff: %v", err)
	}
	f.Close()

	mat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer mat.Close()
	if got := mat.GetUCharAt(1, 1); got != 90 {
		t.Errorf("tiff pixel = %d, want 90", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestToGrayMatZeroArea(t *testing.T) {
	if _, err := ToGrayMat(image.NewGray(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatal("zero-area image must fail")
	}
}
