// Package batch fans the counting pipeline out over a set of slide scans
// described by a job file.
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloefgms/FOXP2Project/internal/pipeline"
)

// Config describes one batch run: which scans to count, with which
// parameters, and what to write where. Relative paths are resolved against
// the directory of the config file.
type Config struct {
	Version int `json:"version"`

	// Params is the single tuning shared by every image in the batch.
	Params pipeline.Params `json:"params"`

	// OutDir receives CSV files and rendered rasters.
	OutDir string `json:"out_dir,omitempty"`

	// Overlay writes an annotated raster next to each CSV.
	Overlay bool `json:"overlay"`

	// Intermediates writes the per-stage rasters of each image.
	Intermediates bool `json:"intermediates"`

	// Workers bounds the number of images processed concurrently.
	// Zero means one worker per CPU.
	Workers int `json:"workers,omitempty"`

	Images []Entry `json:"images"`
}

// Entry pairs a raster with its ROI description file.
type Entry struct {
	Name   string `json:"name,omitempty"`
	Raster string `json:"raster"`
	ROI    string `json:"roi"`
}

// New creates a config with default parameters and output settings.
func New() *Config {
	return &Config{
		Version: 1,
		Params:  pipeline.DefaultParams(),
		OutDir:  "results",
		Overlay: true,
	}
}

// LoadConfig loads a batch config from a JSON file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first problem that would make the batch unrunnable.
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if len(c.Images) == 0 {
		return fmt.Errorf("config lists no images")
	}
	for i, e := range c.Images {
		if e.Raster == "" {
			return fmt.Errorf("image %d has no raster path", i)
		}
		if e.ROI == "" {
			return fmt.Errorf("image %d has no roi path", i)
		}
	}
	return nil
}

// ResolvedOutDir returns the absolute output directory.
func (c *Config) ResolvedOutDir(configPath string) string {
	out := c.OutDir
	if out == "" {
		out = "results"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(filepath.Dir(configPath), out)
}

// RasterPath returns the absolute path to the entry's raster.
func (e Entry) RasterPath(configPath string) string {
	if filepath.IsAbs(e.Raster) {
		return e.Raster
	}
	return filepath.Join(filepath.Dir(configPath), e.Raster)
}

// ROIPath returns the absolute path to the entry's ROI file.
func (e Entry) ROIPath(configPath string) string {
	if filepath.IsAbs(e.ROI) {
		return e.ROI
	}
	return filepath.Join(filepath.Dir(configPath), e.ROI)
}

// Label names the entry in logs and output files. Defaults to the raster
// base name without its extension.
func (e Entry) Label() string {
	if e.Name != "" {
		return e.Name
	}
	base := filepath.Base(e.Raster)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
