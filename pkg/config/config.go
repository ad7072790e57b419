// Package config loads the mindmap configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. The TOML file at $XDG_CONFIG_HOME/mindmap/config.toml (or --config)
//  3. MINDMAP_* environment variables ([Config.ApplyEnv])
//
// Command-line flags are applied on top by the caller.
//
// Example config.toml:
//
//	[canvas]
//	width = 1024
//	height = 768
//
//	[render]
//	style = "simple"
//	theme = "day"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "redis://localhost:6379/0"
//	ttl = "12h"
package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/integrations/generator"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/storage"
)

const appName = "mindmap"

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the full configuration.
type Config struct {
	Canvas    Canvas    `toml:"canvas"`
	Render    Render    `toml:"render"`
	Cache     Cache     `toml:"cache"`
	Store     Store     `toml:"store"`
	Server    Server    `toml:"server"`
	Generator Generator `toml:"generator"`
}

type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Render struct {
	Style   string   `toml:"style"`
	Theme   string   `toml:"theme"`
	Formats []string `toml:"formats"`
}

// Cache selects the backend shared by layouts, artifacts and generator
// responses. Dir is only used by the file backend, RedisAddr only by redis.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

type Store struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type Server struct {
	Addr            string `toml:"addr"`
	AllowAllOrigins bool   `toml:"allow_all_origins"`
}

type Generator struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight},
		Render: Render{
			Style:   pipeline.DefaultStyle,
			Theme:   pipeline.DefaultTheme,
			Formats: []string{pipeline.FormatSVG},
		},
		Cache:     Cache{Backend: CacheFile, TTL: cache.TTLHTTP},
		Store:     Store{Backend: StoreMemory, Database: appName},
		Server:    Server{Addr: ":8080"},
		Generator: Generator{BaseURL: generator.DefaultBaseURL, Timeout: 90 * time.Second},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/mindmap).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path on top of the defaults and then applies
// environment overrides. An empty path means [Path]; a missing default file is
// not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		if p, err := Path(); err == nil {
			path = p
		}
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil && (explicit || !os.IsNotExist(err)) {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Decode reads TOML from r on top of c.
func (c *Config) Decode(r io.Reader) error {
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overrides fields from MINDMAP_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *float64) error {
		v := getenv(name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "%s: not a number: %q", name, v)
		}
		*dst = f
		return nil
	}
	dur := func(name string, dst *time.Duration) error {
		v := getenv(name)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "%s: not a duration: %q", name, v)
		}
		*dst = d
		return nil
	}

	if err := num("MINDMAP_WIDTH", &c.Canvas.Width); err != nil {
		return err
	}
	if err := num("MINDMAP_HEIGHT", &c.Canvas.Height); err != nil {
		return err
	}
	str("MINDMAP_STYLE", &c.Render.Style)
	str("MINDMAP_THEME", &c.Render.Theme)
	if v := getenv("MINDMAP_FORMATS"); v != "" {
		c.Render.Formats = strings.Split(v, ",")
	}

	str("MINDMAP_CACHE_BACKEND", &c.Cache.Backend)
	str("MINDMAP_CACHE_DIR", &c.Cache.Dir)
	str("MINDMAP_REDIS_ADDR", &c.Cache.RedisAddr)
	if err := dur("MINDMAP_CACHE_TTL", &c.Cache.TTL); err != nil {
		return err
	}

	str("MINDMAP_STORE_BACKEND", &c.Store.Backend)
	str("MINDMAP_STORE_DIR", &c.Store.Dir)
	str("MINDMAP_MONGO_URI", &c.Store.MongoURI)
	str("MINDMAP_MONGO_DATABASE", &c.Store.Database)

	str("MINDMAP_ADDR", &c.Server.Addr)
	if v := getenv("MINDMAP_ALLOW_ALL_ORIGINS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidArgument, err, "MINDMAP_ALLOW_ALL_ORIGINS: not a bool: %q", v)
		}
		c.Server.AllowAllOrigins = b
	}

	str("MINDMAP_GENERATOR_URL", &c.Generator.BaseURL)
	return dur("MINDMAP_GENERATOR_TIMEOUT", &c.Generator.Timeout)
}

// Validate checks enumerations and the canvas.
func (c Config) Validate() error {
	if err := errors.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateTheme(c.Render.Theme); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "cache backend redis requires redis_addr")
	}
	if !slices.Contains([]string{StoreMemory, StoreFile, StoreMongo}, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid store backend: %q (must be one of: memory, file, mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidArgument, "store backend mongo requires mongo_uri")
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the config.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Canvas.Width,
		Height:  c.Canvas.Height,
		Style:   c.Render.Style,
		Theme:   c.Render.Theme,
		Formats: slices.Clone(c.Render.Formats),
	}
}

// Open connects the configured cache backend.
func (c Cache) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.RedisAddr)
	case CacheFile, "":
		dir := c.Dir
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
	return nil, fmt.Errorf("unknown cache backend: %s", c.Backend)
}

// Open connects the configured map store.
func (s Store) Open(ctx context.Context) (storage.Store, error) {
	switch s.Backend {
	case StoreMemory, "":
		return storage.NewMemoryStore(), nil
	case StoreFile:
		return storage.NewFileStore(s.Dir)
	case StoreMongo:
		return storage.NewMongoStore(ctx, s.MongoURI, s.Database)
	}
	return nil, fmt.Errorf("unknown store backend: %s", s.Backend)
}

// Client creates a generation client caching responses in backend for ttl.
func (g Generator) Client(backend cache.Cache, ttl time.Duration) *generator.Client {
	c := generator.NewClient(g.BaseURL, backend, ttl)
	if g.Timeout > 0 {
		c.SetHTTPClient(&http.Client{Timeout: g.Timeout})
	}
	return c
}
