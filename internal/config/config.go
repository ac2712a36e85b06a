// Package config loads the engine settings shared by the viewer, the headless
// generator and the preview server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"redsands/internal/borders"
	"redsands/internal/core"
	"redsands/internal/mesh"
	"redsands/internal/noise"
	"redsands/internal/provinces"
)

// ErrUnknownKey is returned by Set for keys it does not recognise.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the engine configuration. The first three fields keep the names
// used by engine.yml files.
type Config struct {
	PlanetLODs    []int `yaml:"planet_lods"`
	MapDimensions int   `yaml:"map_dimensions"`
	NumProvinces  int   `yaml:"num_provinces"`

	Seed    int64   `yaml:"seed"`
	Radius  float64 `yaml:"radius"`
	UVScale float64 `yaml:"uv_scale"`
	Workers int     `yaml:"workers"`

	Noise   NoiseConfig   `yaml:"noise"`
	Borders BorderConfig  `yaml:"borders"`
	Assets  AssetConfig   `yaml:"assets"`
	Window  WindowConfig  `yaml:"window"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type NoiseConfig struct {
	Octaves      int     `yaml:"octaves"`
	Boost        float64 `yaml:"boost"`
	Displacement float64 `yaml:"displacement"`
}

type BorderConfig struct {
	Bloom float64 `yaml:"bloom"`
	Alpha int     `yaml:"alpha"`
	Sigma float64 `yaml:"sigma"`
}

type AssetConfig struct {
	// ElevationDir holds one PNG per face. Empty means synthetic elevation.
	ElevationDir string `yaml:"elevation_dir"`
	// SaveDir receives debug dumps of the face images when set.
	SaveDir string `yaml:"save_dir"`
}

type WindowConfig struct {
	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Default returns a configuration that generates a medium sized planet
// without any files on disk.
func Default() Config {
	return Config{
		PlanetLODs:    []int{8, 32, 128},
		MapDimensions: 512,
		NumProvinces:  400,
		Seed:          1337,
		Radius:        1,
		UVScale:       1,
		Workers:       runtime.NumCPU(),
		Noise: NoiseConfig{
			Octaves:      noise.DefaultOctaves,
			Boost:        noise.DefaultBoost,
			Displacement: provinces.DefaultDisplacement,
		},
		Borders: BorderConfig{
			Bloom: borders.DefaultBloom,
			Alpha: borders.DefaultAlpha,
			Sigma: borders.DefaultSigma,
		},
		Window: WindowConfig{Scale: 1, TPS: 60},
		Server: ServerConfig{Listen: "127.0.0.1:8080"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would fail generation.
func (c *Config) Validate() error {
	if err := mesh.ValidateLODs(c.PlanetLODs); err != nil {
		return fmt.Errorf("planet_lods: %w", err)
	}
	if c.MapDimensions < 3 {
		return fmt.Errorf("map_dimensions must be at least 3")
	}
	if c.NumProvinces < 1 {
		return fmt.Errorf("num_provinces must be positive")
	}
	if limit := provinces.SeedCapacity(c.MapDimensions); c.NumProvinces > limit {
		return fmt.Errorf("num_provinces %d exceeds %d for map_dimensions %d: %w",
			c.NumProvinces, limit, c.MapDimensions, provinces.ErrTooManySeeds)
	}
	if !(c.Radius > 0) {
		return fmt.Errorf("radius must be positive")
	}
	if !(c.UVScale > 0) {
		return fmt.Errorf("uv_scale must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if c.Noise.Octaves < 1 || c.Noise.Octaves > noise.MaxOctaves {
		return fmt.Errorf("noise.octaves must be between 1 and %d", noise.MaxOctaves)
	}
	if !(c.Noise.Boost > 0) {
		return fmt.Errorf("noise.boost must be positive")
	}
	if !(c.Noise.Displacement >= 0) {
		return fmt.Errorf("noise.displacement cannot be negative")
	}
	if !(c.Borders.Bloom > 0) {
		return fmt.Errorf("borders.bloom must be positive")
	}
	if c.Borders.Alpha < 0 || c.Borders.Alpha > 255 {
		return fmt.Errorf("borders.alpha must be between 0 and 255")
	}
	if !(c.Borders.Sigma >= 0) {
		return fmt.Errorf("borders.sigma cannot be negative")
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Window.TPS <= 0 {
		c.Window.TPS = 60
	}
	return nil
}

// Bind registers command line overrides for the most common settings.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.MapDimensions, "dim", c.MapDimensions, "face image dimension in pixels")
	fs.IntVar(&c.NumProvinces, "provinces", c.NumProvinces, "number of provinces")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.Workers, "workers", c.Workers, "background worker count (0 = unbounded)")
	fs.StringVar(&c.Assets.ElevationDir, "elevation", c.Assets.ElevationDir, "directory with one elevation PNG per face")
	fs.StringVar(&c.Assets.SaveDir, "save", c.Assets.SaveDir, "directory for face and border PNG dumps")
	fs.IntVar(&c.Window.Scale, "scale", c.Window.Scale, "pixel scale factor")
	fs.IntVar(&c.Window.TPS, "tps", c.Window.TPS, "ticks per second")
	fs.BoolVar(&c.Logging.Verbose, "v", c.Logging.Verbose, "verbose progress logging")
	fs.Func("lods", "comma separated ascending mesh resolutions", func(s string) error {
		lods, err := parseInts(s)
		if err != nil {
			return err
		}
		c.PlanetLODs = lods
		return nil
	})
}

// Set applies a single key=value override using the YAML key names. Nested
// keys use dots, e.g. "borders.sigma".
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "planet_lods":
		c.PlanetLODs, err = parseInts(value)
	case "map_dimensions":
		c.MapDimensions, err = strconv.Atoi(value)
	case "num_provinces":
		c.NumProvinces, err = strconv.Atoi(value)
	case "seed":
		c.Seed, err = strconv.ParseInt(value, 10, 64)
	case "radius":
		c.Radius, err = strconv.ParseFloat(value, 64)
	case "uv_scale":
		c.UVScale, err = strconv.ParseFloat(value, 64)
	case "workers":
		c.Workers, err = strconv.Atoi(value)
	case "noise.octaves":
		c.Noise.Octaves, err = strconv.Atoi(value)
	case "noise.boost":
		c.Noise.Boost, err = strconv.ParseFloat(value, 64)
	case "noise.displacement":
		c.Noise.Displacement, err = strconv.ParseFloat(value, 64)
	case "borders.bloom":
		c.Borders.Bloom, err = strconv.ParseFloat(value, 64)
	case "borders.alpha":
		c.Borders.Alpha, err = strconv.Atoi(value)
	case "borders.sigma":
		c.Borders.Sigma, err = strconv.ParseFloat(value, 64)
	case "assets.elevation_dir":
		c.Assets.ElevationDir = value
	case "assets.save_dir":
		c.Assets.SaveDir = value
	case "server.listen":
		c.Server.Listen = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// ApplyOverrides applies a list of key=value strings in order.
func (c *Config) ApplyOverrides(kvs []string) error {
	for _, kv := range kvs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q is not in key=value form", kv)
		}
		if err := c.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

// Sampler returns the noise field described by the config.
func (c *Config) Sampler() noise.Sampler {
	return noise.New(c.Noise.Octaves, c.Noise.Boost)
}

// ProvinceOptions converts the config into partition options.
func (c *Config) ProvinceOptions() provinces.Options {
	return provinces.Options{
		Seeds:        c.NumProvinces,
		Dimension:    c.MapDimensions,
		Displacement: c.Noise.Displacement,
		Seed:         c.Seed,
		Sampler:      c.Sampler(),
		Verbose:      c.Logging.Verbose,
	}
}

// BorderOptions converts the config into border extraction options.
func (c *Config) BorderOptions() borders.Options {
	return borders.Options{
		Bloom: c.Borders.Bloom,
		Alpha: uint8(c.Borders.Alpha),
		Sigma: c.Borders.Sigma,
	}
}

// Parameters describes the active settings for the HUD and the status API.
func (c *Config) Parameters() core.ParameterSnapshot {
	lods := make([]string, len(c.PlanetLODs))
	for i, l := range c.PlanetLODs {
		lods[i] = strconv.Itoa(l)
	}
	elevation := c.Assets.ElevationDir
	if elevation == "" {
		elevation = "synthetic"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Planet", Params: []core.Parameter{
			core.IntParam("map_dimensions", "Face size", c.MapDimensions),
			core.IntParam("num_provinces", "Provinces", c.NumProvinces),
			core.StringParam("planet_lods", "LODs", strings.Join(lods, ",")),
			core.IntParam("seed", "Seed", int(c.Seed)),
			core.StringParam("elevation", "Elevation", elevation),
		}},
		{Name: "Noise", Params: []core.Parameter{
			core.IntParam("noise.octaves", "Octaves", c.Noise.Octaves),
			core.FloatParam("noise.displacement", "Displacement", c.Noise.Displacement),
		}},
		{Name: "Borders", Params: []core.Parameter{
			core.FloatParam("borders.bloom", "Bloom", c.Borders.Bloom),
			core.FloatParam("borders.sigma", "Blur sigma", c.Borders.Sigma),
		}},
	}}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
