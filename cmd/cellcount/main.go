// Command cellcount counts stained cells inside a region of interest on a
// microscope slide scan and reports their centroids.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cloefgms/FOXP2Project/internal/batch"
	"github.com/cloefgms/FOXP2Project/internal/export"
	"github.com/cloefgms/FOXP2Project/internal/pipeline"
	"github.com/cloefgms/FOXP2Project/internal/render"
	"github.com/cloefgms/FOXP2Project/internal/stats"
	"github.com/cloefgms/FOXP2Project/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to slide scan (TIFF, PNG, or JPEG)")
	roiPath := flag.String("roi", "", "Path to ROI outline file (one 'x y' pair per line, physical units)")
	outPath := flag.String("out", "", "Write accepted centroids as CSV to this path")
	overlayPath := flag.String("overlay", "", "Write an annotated raster to this path")
	stagesDir := flag.String("intermediates", "", "Write per-stage rasters into this directory")

	configPath := flag.String("config", "", "Batch mode: process every image in this config file")
	writeConfig := flag.String("write-config", "", "Write a starter batch config to this path and exit")
	workers := flag.Int("workers", 0, "Batch mode: concurrent images (0 = one per CPU)")

	defaults := pipeline.DefaultParams()
	blockSize := flag.Int("block", defaults.BlockSize, "Adaptive threshold neighborhood side (odd, >= 3)")
	c := flag.Float64("c", defaults.C, "Adaptive threshold constant")
	kernelSize := flag.Int("kernel", defaults.KernelSize, "Opening kernel side (odd, >= 1)")
	minArea := flag.Int("min-area", defaults.MinArea, "Discard regions with pixel area <= this")
	scale := flag.Float64("scale", defaults.Scale, "Pixels per ROI physical unit")

	verbose := flag.Bool("v", false, "Debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("cellcount " + version.String())
		return
	}

	log := newLogger(*verbose)

	if *writeConfig != "" {
		cfg := batch.New()
		if err := cfg.Save(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote starter config to %s\n", *writeConfig)
		return
	}

	params := pipeline.Params{
		BlockSize:  *blockSize,
		C:          *c,
		KernelSize: *kernelSize,
		MinArea:    *minArea,
		Scale:      *scale,
	}

	switch {
	case *configPath != "":
		os.Exit(runBatch(*configPath, *workers, log))
	case *imagePath != "" && *roiPath != "":
		os.Exit(runSingle(*imagePath, *roiPath, *outPath, *overlayPath, *stagesDir, params, log))
	default:
		fmt.Println("Usage: cellcount -image <scan> -roi <outline> [-out cells.csv] [-overlay out.png]")
		fmt.Println("       cellcount -config <batch.json> [-workers N]")
		fmt.Println("       cellcount -write-config <batch.json>")
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runSingle(imagePath, roiPath, outPath, overlayPath, stagesDir string, p pipeline.Params, log *slog.Logger) int {
	p.KeepIntermediates = p.KeepIntermediates || stagesDir != ""
	log.Debug("counting", "image", imagePath, "roi", roiPath,
		"block", p.BlockSize, "c", p.C, "kernel", p.KernelSize, "min_area", p.MinArea, "scale", p.Scale)

	res, err := pipeline.Run(imagePath, roiPath, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Counting failed (%s): %v\n", pipeline.Kind(err), err)
		return 1
	}
	defer res.Close()

	accepted := res.Accepted()
	fmt.Printf("Accepted %d cells:\n", len(accepted))
	fmt.Printf("%4s %6s %6s %8s\n", "n", "x", "y", "area")
	for _, d := range accepted {
		fmt.Printf("%4d %6d %6d %8d\n", d.Seq, d.X, d.Y, d.Area)
	}

	s := stats.Summarize(res.Detections, res.ROI, p.Scale)
	fmt.Printf("\nAccepted: %d  On boundary: %d  Outside: %d\n", s.Accepted, s.OnBoundary, s.Outside)
	fmt.Printf("ROI area: %.0f px^2  Density: %.2f cells per unit^2\n", s.ROIAreaPx, s.Density)

	if outPath != "" {
		if err := export.WriteCSVFile(outPath, res.Detections); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s\n", outPath)
	}

	if overlayPath != "" {
		img, err := render.Overlay(res.Source, res.ROI, res.Detections)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render overlay: %v\n", err)
			return 1
		}
		err = render.SaveMat(img, overlayPath)
		img.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write overlay: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s\n", overlayPath)
	}

	if stagesDir != "" {
		if err := render.SaveIntermediates(res.Intermediates, stagesDir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write stage rasters: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote stage rasters to %s\n", stagesDir)
	}
	return 0
}

func runBatch(configPath string, workers int, log *slog.Logger) int {
	cfg, err := batch.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Bad config: %v\n", err)
		return 1
	}

	outcomes := batch.Run(cfg, configPath, log)

	failed := 0
	fmt.Printf("%-20s %8s\n", "image", "cells")
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Printf("%-20s %8s\n", o.Name, "failed")
			continue
		}
		fmt.Printf("%-20s %8d\n", o.Name, o.Count)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d images failed\n", failed, len(outcomes))
		return 1
	}
	return 0
}
