package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Atlas describes the grid layout of the shared terrain texture atlas.
// Material ids address cells left to right, top to bottom.
type Atlas struct {
	Columns int     `yaml:"columns"`
	Rows    int     `yaml:"rows"`
	Step    float32 `yaml:"step"`   // UV distance between neighbouring cells
	Span    float32 `yaml:"span"`   // UV extent of one material image
	Margin  float32 `yaml:"margin"` // inset of column 0 from u=0
	Top     float32 `yaml:"top"`    // v origin of row 0

	Texture string `yaml:"texture"`
	Size    int    `yaml:"size"` // texture edge in pixels after loading
}

// Meshing holds the compiler's capacity hints and parallelism.
type Meshing struct {
	Workers              int `yaml:"workers"`
	Grain                int `yaml:"grain"` // minimum cells per parallel sub-range
	ReservedCells        int `yaml:"reserved_cells"`
	PreviewReservedCells int `yaml:"preview_reserved_cells"`
}

// World holds chunk streaming and edit placement settings.
type World struct {
	ChunkSize       int     `yaml:"chunk_size"`
	ViewRadius      int     `yaml:"view_radius"` // chunks per axis around the viewer
	MaxPreviewScale int     `yaml:"max_preview_scale"`
	Reach           float32 `yaml:"reach"`
	ShotLength      float32 `yaml:"shot_length"` // ray fill distance
}

// Render holds window and shader settings for the viewer.
type Render struct {
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	FPSLimit       int    `yaml:"fps_limit"` // 0 disables the limiter
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`

	// point topology only
	PointVertexShader string `yaml:"point_vertex_shader"`
	GeometryShader    string `yaml:"geometry_shader"`
}

// Config is the full terrain configuration. It is passed explicitly to
// every component; nothing reads it from package state.
type Config struct {
	Atlas   Atlas   `yaml:"atlas"`
	Meshing Meshing `yaml:"meshing"`
	World   World   `yaml:"world"`
	Render  Render  `yaml:"render"`
}

const (
	minViewRadius = 1
	maxViewRadius = 16
)

// Default returns the stock configuration: a 8x2 atlas and 7x7x7 chunks of
// 8^3 cells in view.
func Default() Config {
	return Config{
		Atlas: Atlas{
			Columns: 8,
			Rows:    2,
			Step:    0.125,
			Span:    0.124,
			Margin:  0.001,
			Top:     0.876,
			Texture: "assets/textures/atlas.png",
			Size:    1024,
		},
		Meshing: Meshing{
			Workers:              max(runtime.NumCPU(), 1),
			Grain:                512,
			ReservedCells:        175616, // 8*8*8 * 7*7*7
			PreviewReservedCells: 125,
		},
		World: World{
			ChunkSize:       8,
			ViewRadius:      3,
			MaxPreviewScale: 5,
			Reach:           6,
			ShotLength:      100,
		},
		Render: Render{
			Width:             900,
			Height:            600,
			FPSLimit:          120,
			VertexShader:      "assets/shaders/terrain.vert",
			FragmentShader:    "assets/shaders/terrain.frag",
			PointVertexShader: "assets/shaders/terrain_points.vert",
			GeometryShader:    "assets/shaders/terrain_points.geom",
		},
	}
}

// Load reads a YAML config on top of Default. A missing file is not an
// error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.World.ViewRadius = ClampViewRadius(cfg.World.ViewRadius)
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// ClampViewRadius keeps the streaming radius in a range the reserved
// capacities can reasonably serve.
func ClampViewRadius(r int) int {
	if r < minViewRadius {
		return minViewRadius
	}
	if r > maxViewRadius {
		return maxViewRadius
	}
	return r
}

// Materials returns the number of material ids the atlas can address.
func (a Atlas) Materials() int {
	return a.Columns * a.Rows
}

// Validate reports the first setting that cannot produce a working compiler.
func (c Config) Validate() error {
	a := c.Atlas
	switch {
	case a.Columns <= 0 || a.Rows <= 0:
		return fmt.Errorf("config: atlas grid %dx%d must be positive", a.Columns, a.Rows)
	case a.Materials() > 128:
		return fmt.Errorf("config: atlas holds %d materials, ids are int8", a.Materials())
	case a.Step <= 0 || a.Span <= 0 || a.Span > a.Step:
		return fmt.Errorf("config: atlas span %v must be in (0, step %v]", a.Span, a.Step)
	}

	m := c.Meshing
	switch {
	case m.Workers < 1:
		return fmt.Errorf("config: meshing workers %d must be at least 1", m.Workers)
	case m.Grain < 1:
		return fmt.Errorf("config: meshing grain %d must be at least 1", m.Grain)
	case m.ReservedCells < 0 || m.PreviewReservedCells < 0:
		return errors.New("config: reserved capacities must not be negative")
	}

	w := c.World
	switch {
	case w.ChunkSize <= 0:
		return fmt.Errorf("config: chunk size %d must be positive", w.ChunkSize)
	case w.ViewRadius < minViewRadius || w.ViewRadius > maxViewRadius:
		return fmt.Errorf("config: view radius %d outside [%d, %d]", w.ViewRadius, minViewRadius, maxViewRadius)
	case w.MaxPreviewScale < 1:
		return fmt.Errorf("config: max preview scale %d must be at least 1", w.MaxPreviewScale)
	case w.Reach <= 0:
		return fmt.Errorf("config: reach %v must be positive", w.Reach)
	case w.ShotLength <= 0:
		return fmt.Errorf("config: shot length %v must be positive", w.ShotLength)
	}

	r := c.Render
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return fmt.Errorf("config: window %dx%d must be positive", r.Width, r.Height)
	case r.FPSLimit < 0:
		return fmt.Errorf("config: fps limit %d must not be negative", r.FPSLimit)
	}
	return nil
}
