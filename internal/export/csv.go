// Package export writes detection tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cloefgms/FOXP2Project/internal/cell"
)

// WriteCSV writes accepted detections as a flat table with header n,x,y,
// one row per detection in sequence order. Rejected candidates are never
// exported.
func WriteCSV(w io.Writer, dets []cell.Detection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "x", "y"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, d := range cell.Accepted(dets) {
		rec := []string{strconv.Itoa(d.Seq), strconv.Itoa(d.X), strconv.Itoa(d.Y)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", d.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the detection table to the given path.
func WriteCSVFile(path string, dets []cell.Detection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	if err := WriteCSV(f, dets); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
