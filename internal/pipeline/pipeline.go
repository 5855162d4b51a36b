// Package pipeline orchestrates the stained-cell counting stages for a
// single image: ROI masking, denoising, adaptive thresholding, opening,
// region extraction and centroid classification.
//
// The pipeline holds no state between runs. Batching and reporting happen
// a layer above; this package only turns one raster plus one outline into
// a list of detections.
package pipeline

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/cloefgms/FOXP2Project/internal/cell"
	"github.com/cloefgms/FOXP2Project/internal/raster"
	"github.com/cloefgms/FOXP2Project/internal/roi"
	"github.com/cloefgms/FOXP2Project/internal/segment"
	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// Intermediates holds the per-stage rasters of one run, in stage order.
type Intermediates struct {
	Mask    gocv.Mat
	Cropped gocv.Mat
	Blurred gocv.Mat
	Binary  gocv.Mat
	Cleaned gocv.Mat
}

// Close releases the stage rasters.
func (im *Intermediates) Close() {
	im.Mask.Close()
	im.Cropped.Close()
	im.Blurred.Close()
	im.Binary.Close()
	im.Cleaned.Close()
}

// Result carries everything one run produces. The result owns the source
// raster and, when requested, the intermediate stage rasters; Close
// releases them all.
type Result struct {
	ROI           geometry.Polygon
	Detections    []cell.Detection
	Source        gocv.Mat
	Intermediates *Intermediates
}

// Accepted returns the detections inside the ROI, in sequence order.
func (r *Result) Accepted() []cell.Detection {
	return cell.Accepted(r.Detections)
}

// Close releases the rasters held by the result.
func (r *Result) Close() {
	r.Source.Close()
	if r.Intermediates != nil {
		r.Intermediates.Close()
		r.Intermediates = nil
	}
}

// Run counts cells in the raster at rasterPath within the outline described
// by the ROI file at roiPath. Parameters are checked first, then the ROI:
// a degenerate outline fails before any raster work begins.
func Run(rasterPath, roiPath string, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	outline, err := roi.Load(roiPath, p.Scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	src, err := raster.Load(rasterPath)
	if err != nil {
		return nil, fmt.Errorf("%w: raster %s: %w", ErrInput, rasterPath, err)
	}

	res, err := Process(src, outline, p)
	if err != nil {
		src.Close()
		return nil, err
	}
	return res, nil
}

// Process runs the counting stages over an in-memory grayscale raster and a
// pixel-space outline. On success the raster is owned by the returned
// result; on error the caller keeps ownership.
func Process(src gocv.Mat, outline geometry.Polygon, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src.Empty() {
		return nil, fmt.Errorf("%w: raster has zero area", ErrInput)
	}

	// 1. Rasterize the ROI outline into a binary mask.
	mask, err := segment.BuildMask(src.Rows(), src.Cols(), outline)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	// 2. Zero out everything outside the ROI.
	cropped, err := segment.Apply(src, mask)
	if err != nil {
		mask.Close()
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	// 3. Suppress scanner noise before thresholding.
	blurred := segment.Denoise(cropped)

	// 4. Separate stained pixels from background. Stained cells are darker
	// than tissue, so the inverted threshold marks them as foreground.
	binary, err := segment.Binarize(blurred, p.BlockSize, p.C)
	if err != nil {
		mask.Close()
		cropped.Close()
		blurred.Close()
		return nil, fmt.Errorf("%w: %w", ErrParameter, err)
	}

	// 5. Open the binary map to drop speckles and detach touching blobs.
	cleaned, err := segment.Open(binary, p.KernelSize)
	if err != nil {
		mask.Close()
		cropped.Close()
		blurred.Close()
		binary.Close()
		return nil, fmt.Errorf("%w: %w", ErrParameter, err)
	}

	// 6. Extract connected regions and classify their centroids against
	// the outline.
	bm := cell.Bitmap{
		Width:  cleaned.Cols(),
		Height: cleaned.Rows(),
		Pix:    cleaned.ToBytes(),
	}
	regions := cell.Extract(bm, p.MinArea)
	dets, err := cell.Classify(regions, outline)
	if err != nil {
		mask.Close()
		cropped.Close()
		blurred.Close()
		binary.Close()
		cleaned.Close()
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	res := &Result{ROI: outline, Detections: dets, Source: src}
	if p.KeepIntermediates {
		res.Intermediates = &Intermediates{
			Mask:    mask,
			Cropped: cropped,
			Blurred: blurred,
			Binary:  binary,
			Cleaned: cleaned,
		}
	} else {
		mask.Close()
		cropped.Close()
		blurred.Close()
		binary.Close()
		cleaned.Close()
	}
	return res, nil
}
