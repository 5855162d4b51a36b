// Package roi loads hand-drawn region-of-interest outlines.
//
// An outline file carries one coordinate pair per line, "x y" in physical
// units (inches on a 300 DPI scan). Coordinates are converted to integer
// pixel positions once at load time; everything downstream works in pixel
// space.
package roi

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cloefgms/FOXP2Project/pkg/geometry"
)

// DefaultScale is the physical-unit to pixel conversion factor,
// matching a 300 DPI scan.
const DefaultScale = 300.0

// Load reads a polygon outline from a text file and converts it to pixel
// coordinates. Point order is preserved exactly as written.
func Load(path string, scale float64) (geometry.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roi file: %w", err)
	}
	defer f.Close()

	poly, err := Parse(f, scale)
	if err != nil {
		return nil, fmt.Errorf("roi file %s: %w", path, err)
	}
	return poly, nil
}

// Parse reads coordinate lines from r and scales them to pixels, rounding
// each coordinate to the nearest integer. Blank lines are skipped; any
// non-blank line must contain exactly two numeric tokens. Fewer than three
// points is a degenerate outline and an error.
func Parse(r io.Reader, scale float64) (geometry.Polygon, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", scale)
	}

	var poly geometry.Polygon
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected two coordinates, got %d tokens", lineNo, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad x coordinate %q", lineNo, fields[0])
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad y coordinate %q", lineNo, fields[1])
		}
		poly = append(poly, geometry.PointInt{
			X: int(math.Round(x * scale)),
			Y: int(math.Round(y * scale)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roi data: %w", err)
	}
	if len(poly) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(poly))
	}
	return poly, nil
}
