package cli

import (
	"context"
	"os"

	"github.com/minipm/minipm/pkg/config"
	"github.com/minipm/minipm/pkg/httputil"
	"github.com/minipm/minipm/pkg/registry"
)

// project bundles everything a command needs to operate on the current
// working directory: its configuration and a registry client.
type project struct {
	dir string
	cfg *config.Config
	reg registry.Client
}

// loadProject resolves the working directory's configuration and builds the
// registry client. A broken metadata cache degrades to uncached operation
// with a warning rather than failing the command.
func loadProject(ctx context.Context) (*project, error) {
	logger := loggerFromContext(ctx)

	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	var cache *httputil.Cache
	if !cfg.Cache.Disable {
		cache, err = httputil.NewCache(cfg.Cache.Dir, cfg.Cache.TTL.Duration)
		if err != nil {
			logger.Warnf("metadata cache unavailable: %v", err)
			cache = nil
		}
	}

	return &project{
		dir: dir,
		cfg: cfg,
		reg: registry.NewNPM(cfg.Registry.URL, cache),
	}, nil
}
