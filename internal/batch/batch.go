package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cloefgms/FOXP2Project/internal/export"
	"github.com/cloefgms/FOXP2Project/internal/pipeline"
	"github.com/cloefgms/FOXP2Project/internal/render"
	"github.com/cloefgms/FOXP2Project/internal/stats"
)

// Outcome is the per-image result of a batch run.
type Outcome struct {
	Name  string
	Count int
	Err   error
}

// Run counts every image in the config with a bounded worker pool and
// returns one outcome per image, in config order. A failed image is
// reported in its outcome and never aborts the others.
func Run(cfg *Config, configPath string, log *slog.Logger) []Outcome {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cfg.Images) {
		workers = len(cfg.Images)
	}

	outDir := cfg.ResolvedOutDir(configPath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		outcomes := make([]Outcome, len(cfg.Images))
		for i, e := range cfg.Images {
			outcomes[i] = Outcome{Name: e.Label(), Err: fmt.Errorf("failed to create %s: %w", outDir, err)}
		}
		return outcomes
	}

	outcomes := make([]Outcome, len(cfg.Images))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = runOne(cfg, configPath, cfg.Images[i], outDir, log)
			}
		}()
	}
	for i := range cfg.Images {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	logSummary(outcomes, log)
	return outcomes
}

func runOne(cfg *Config, configPath string, e Entry, outDir string, log *slog.Logger) Outcome {
	name := e.Label()

	p := cfg.Params
	p.KeepIntermediates = p.KeepIntermediates || cfg.Intermediates

	res, err := pipeline.Run(e.RasterPath(configPath), e.ROIPath(configPath), p)
	if err != nil {
		log.Error("image failed", "image", name, "kind", pipeline.Kind(err), "err", err)
		return Outcome{Name: name, Err: err}
	}
	defer res.Close()

	count := len(res.Accepted())

	if err := export.WriteCSVFile(filepath.Join(outDir, name+".csv"), res.Detections); err != nil {
		log.Error("csv export failed", "image", name, "err", err)
		return Outcome{Name: name, Err: err}
	}

	if cfg.Overlay {
		img, err := render.Overlay(res.Source, res.ROI, res.Detections)
		if err != nil {
			log.Error("overlay failed", "image", name, "err", err)
			return Outcome{Name: name, Err: err}
		}
		err = render.SaveMat(img, filepath.Join(outDir, name+"-overlay.png"))
		img.Close()
		if err != nil {
			log.Error("overlay save failed", "image", name, "err", err)
			return Outcome{Name: name, Err: err}
		}
	}

	if cfg.Intermediates {
		if err := render.SaveIntermediates(res.Intermediates, filepath.Join(outDir, name+"-stages")); err != nil {
			log.Error("stage export failed", "image", name, "err", err)
			return Outcome{Name: name, Err: err}
		}
	}

	log.Info("image counted", "image", name, "accepted", count)
	return Outcome{Name: name, Count: count}
}

func logSummary(outcomes []Outcome, log *slog.Logger) {
	var counts []int
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		counts = append(counts, o.Count)
	}
	if len(counts) == 0 {
		log.Error("batch produced no counts", "images", len(outcomes), "failed", failed)
		return
	}

	s := stats.SummarizeBatch(counts)
	log.Info("batch complete",
		"images", len(outcomes),
		"failed", failed,
		"cells", s.Total,
		"mean", s.Mean,
		"stddev", s.StdDev,
		"median", s.Median,
	)
}
