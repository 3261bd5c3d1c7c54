package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mu-geom/internal/fragment"
	"mu-geom/internal/postprocess"
	"mu-geom/internal/raster"
	"mu-geom/internal/scene"
	"mu-geom/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	TexResolver texture.Resolver
	Output      fragment.Output
	RenderSize  int
	Supersample int
	Workers     int
}

// Result holds the outcome of processing one scene.
type Result struct {
	Name    string
	Path    string
	Image   string // output path relative to OutputDir
	Nodes   int
	Lines   int
	Tris    int
	Success bool
	Error   string
}

// Run renders all scene files using a worker pool.
func Run(cfg Config, scenePaths []string) []Result {
	total := len(scenePaths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	workers := max(cfg.Workers, 1)
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenePaths[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenePaths {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

// SceneName returns the file stem used for a scene's output image.
func SceneName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func processScene(cfg Config, path string) Result {
	name := SceneName(path)
	res := Result{Name: name, Path: path}

	s, err := scene.Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Nodes, res.Lines, res.Tris = len(s.Nodes), len(s.Lines), len(s.Triangles)
	if res.Lines == 0 && res.Tris == 0 {
		res.Error = "No geometry in scene"
		return res
	}

	img := raster.Render(s, cfg.TexResolver, raster.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		Output:      cfg.Output,
	})

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	// Save as WebP
	res.Image = name + ".webp"
	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	if err := writeWebP(outPath, img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// writeWebP encodes img to path. A partial file is removed on failure.
func writeWebP(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := encodeWebP(f, img); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}

// encodeWebP is swapped in tests.
var encodeWebP = func(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}
