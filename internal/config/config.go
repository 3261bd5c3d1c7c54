package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"mu-geom/internal/fragment"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	SceneDir   string `json:"scene_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	RenderSize  int `json:"render_size"`
	Supersample int `json:"supersample"`
	Workers     int `json:"workers"`

	// Output stage
	Exposure           float64 `json:"exposure"`
	ToneMapping        string  `json:"tone_mapping"`
	ColorSpace         string  `json:"color_space"`
	Gamma              float64 `json:"gamma"`
	Dither             bool    `json:"dither"`
	PremultipliedAlpha bool    `json:"premultiplied_alpha"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	c.SceneDir = c.underBase(c.SceneDir, "scenes")
	c.TextureDir = c.underBase(c.TextureDir, "textures")
	c.OutputDir = c.underBase(c.OutputDir, "renders")

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Exposure <= 0 {
		c.Exposure = 1.05
	}
	if c.Gamma <= 0 {
		c.Gamma = fragment.DefaultGamma
	}
}

func (c *Config) underBase(p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Output builds the fragment output stage from the config.
func (c *Config) Output() (fragment.Output, error) {
	tm, err := fragment.ParseToneMapping(c.ToneMapping)
	if err != nil {
		return fragment.Output{}, fmt.Errorf("config: %w", err)
	}
	cs, err := fragment.ParseColorSpace(c.ColorSpace)
	if err != nil {
		return fragment.Output{}, fmt.Errorf("config: %w", err)
	}
	return fragment.Output{
		ToneMapping:   tm,
		Exposure:      c.Exposure,
		ColorSpace:    cs,
		Gamma:         c.Gamma,
		Dither:        c.Dither,
		Premultiplied: c.PremultipliedAlpha,
	}, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneDir  string
	OutputDir string
	Workers   int
}
