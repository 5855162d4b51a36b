package pipeline

import (
	"fmt"

	"github.com/cloefgms/FOXP2Project/internal/roi"
)

// Params collects every tunable of the counting pipeline in one struct so
// call sites cannot drift apart on defaults.
type Params struct {
	// BlockSize is the side of the adaptive threshold neighborhood in
	// pixels. Must be odd and >= 3.
	BlockSize int `json:"block_size"`

	// C is the constant subtracted from the Gaussian-weighted local mean.
	// Larger values admit fewer pixels as foreground.
	C float64 `json:"c"`

	// KernelSize is the side of the square opening kernel. Must be odd
	// and >= 1.
	KernelSize int `json:"kernel_size"`

	// MinArea is the strict lower bound on region pixel count. Regions
	// with area <= MinArea are discarded as noise.
	MinArea int `json:"min_area"`

	// Scale converts ROI physical units to pixels.
	Scale float64 `json:"scale"`

	// KeepIntermediates retains the stage rasters on the result for
	// inspection. The caller owns closing them.
	KeepIntermediates bool `json:"keep_intermediates"`
}

// DefaultParams returns the tuning used for 300 DPI stained slide scans.
func DefaultParams() Params {
	return Params{
		BlockSize:  25,
		C:          10,
		KernelSize: 7,
		MinArea:    50,
		Scale:      roi.DefaultScale,
	}
}

// Validate reports the first invalid tunable. Run checks this before
// touching any input file.
func (p Params) Validate() error {
	if p.BlockSize < 3 || p.BlockSize%2 == 0 {
		return fmt.Errorf("%w: block size must be odd and >= 3, got %d", ErrParameter, p.BlockSize)
	}
	if p.KernelSize < 1 || p.KernelSize%2 == 0 {
		return fmt.Errorf("%w: kernel size must be odd and >= 1, got %d", ErrParameter, p.KernelSize)
	}
	if p.MinArea <= 0 {
		return fmt.Errorf("%w: min area must be positive, got %d", ErrParameter, p.MinArea)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrParameter, p.Scale)
	}
	return nil
}
