// Package projectconfig provides the ProjectConfig struct and loader for
// .oee.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fabmetrics/oee/internal/oee"
	"github.com/fabmetrics/oee/internal/utils"
	"github.com/fabmetrics/oee/internal/validation"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".oee.yaml"

// Default values for project configuration. These are the single source of
// truth; New() references them and no other code should duplicate them.
const (
	DefaultDatasetPath = "data.csv"
	DefaultServerPort  = 8701
	DefaultCacheDir    = ".oee/cache"
)

// ViewConfig is one report section spec. Kind selects the view; the inline
// map carries kind-specific options, decoded by the reporting package.
type ViewConfig struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:",inline"`
}

// ReportConfig holds the report section list.
type ReportConfig struct {
	Views []ViewConfig `yaml:"views,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port      int   `yaml:"port,omitempty"`
	NoBrowser *bool `yaml:"no_browser,omitempty"`
}

// CacheConfig holds dataset cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .oee.yaml.
type ProjectConfig struct {
	Dataset     string       `yaml:"dataset,omitempty"`
	HoursPerDay float64      `yaml:"hours_per_day,omitempty"`
	Report      ReportConfig `yaml:"report,omitempty"`
	Server      ServerConfig `yaml:"server,omitempty"`
	Cache       CacheConfig  `yaml:"cache,omitempty"`

	// Dir is the directory the config file was found in; empty when running
	// on pure defaults. Found reports whether a file was read at all.
	Dir   string `yaml:"-"`
	Found bool   `yaml:"-"`
}

// DefaultViews returns the report sections used when .oee.yaml does not
// specify any.
func DefaultViews() []ViewConfig {
	return []ViewConfig{
		{Kind: "overall"},
		{Kind: "groups", Params: map[string]any{"by": "machine"}},
		{Kind: "groups", Params: map[string]any{"by": "product"}},
		{Kind: "trend"},
	}
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Dataset:     DefaultDatasetPath,
		HoursPerDay: oee.DefaultHoursPerDay,
		Report: ReportConfig{
			Views: DefaultViews(),
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			NoBrowser: boolPtr(false),
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Dir:     DefaultCacheDir,
		},
	}
}

// Load finds .oee.yaml by walking up from startDir (max 10 levels),
// validates it against the config schema, unmarshals it, and fills in
// missing fields with defaults. If no config file is found, returns
// defaults with a nil error. Real I/O errors (e.g. permission denied) are
// returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, dir, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s: %s", filepath.Join(dir, FileName), strings.Join(errs, "; "))
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.Dir = dir
	cfg.Found = true
	return cfg, nil
}

// ResolveDataset returns the dataset path resolved against the directory
// the config file was found in. It applies only to the config file's own
// value; paths given on the command line are used as-is.
func (c *ProjectConfig) ResolveDataset() string {
	if c.Dir == "" {
		return c.Dataset
	}
	return utils.ResolvePath(c.Dataset, c.Dir)
}

// findConfigFile walks up from dir looking for .oee.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Dataset != "" {
		dst.Dataset = src.Dataset
	}
	if src.HoursPerDay != 0 {
		dst.HoursPerDay = src.HoursPerDay
	}

	// A views list in the file replaces the default list wholesale.
	if len(src.Report.Views) > 0 {
		dst.Report.Views = src.Report.Views
	}

	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}

	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
}

func boolPtr(b bool) *bool {
	return &b
}
