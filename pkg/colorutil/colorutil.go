// Package colorutil provides the shared overlay palette for annotated rasters.
package colorutil

import "image/color"

// Overlay colors. The counting convention: ROI outline green, accepted
// cell contours blue, rejected candidates red.
var (
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)
