package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fabmetrics/oee/internal/cache"
	"github.com/fabmetrics/oee/internal/loader"
	"github.com/fabmetrics/oee/internal/projectconfig"
	"github.com/fabmetrics/oee/internal/records"
	"github.com/fabmetrics/oee/internal/reporting"
	"github.com/fabmetrics/oee/internal/utils"
)

// projectContext is the resolved project configuration for one command
// invocation: .oee.yaml merged with the command-line overrides.
type projectContext struct {
	cfg      *projectconfig.ProjectConfig
	dataPath string
	explicit bool // --data was given
	hours    float64
	cacheDir string
	cache    *cache.Cache
}

// resolveProject loads .oee.yaml from the working directory upward and
// applies command-line overrides on top. Zero-valued flags mean "use the
// configured value".
func resolveProject(dataFlag string, hoursFlag float64) (*projectContext, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}

	proj := &projectContext{
		cfg:      cfg,
		dataPath: cfg.ResolveDataset(),
		hours:    cfg.HoursPerDay,
	}
	if dataFlag != "" {
		proj.dataPath = dataFlag
		proj.explicit = true
	}
	if hoursFlag != 0 {
		proj.hours = hoursFlag
	}

	if cfg.Cache.Enabled != nil && *cfg.Cache.Enabled {
		proj.cacheDir = utils.ResolvePath(cfg.Cache.Dir, cfg.Dir)
	}
	proj.cache = cache.New(proj.cacheDir)

	return proj, nil
}

// openDataset loads the project dataset. A missing default file becomes a
// hint pointing at init instead of a bare I/O error; an explicitly given
// path that is missing surfaces as-is.
func (p *projectContext) openDataset() (*records.Set, error) {
	set, err := loader.Open(p.dataPath, p.cache)
	if err != nil && !p.explicit && errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no dataset at %s (run 'oee init' to create a starter file, or pass --data)", p.dataPath)
	}
	return set, err
}

// views converts the configured report sections to view specs.
func (p *projectContext) views() []reporting.ViewSpec {
	specs := make([]reporting.ViewSpec, 0, len(p.cfg.Report.Views))
	for _, v := range p.cfg.Report.Views {
		specs = append(specs, reporting.ViewSpec{Kind: v.Kind, Params: v.Params})
	}
	return specs
}
