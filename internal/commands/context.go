// Package commands implements the flicks CLI subcommands: init, scan,
// view, import, sync, stats, query, rehash, ignore, and catalog watch.
package commands

import (
	"path/filepath"

	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/config"
	"github.com/MimeLyc/flicks/internal/ferr"
	"github.com/MimeLyc/flicks/internal/library"
)

const dataDirName = ".meta"

// App bundles the dependencies every subcommand (other than init) needs:
// the loaded config, the catalog index, and the library store.
type App struct {
	Config  *config.Config
	Index   *catalog.Index
	Library *library.Store
	DataDir string
}

// Open loads config from configPath, then the catalog index and library
// store rooted at the configured library root. Any command other than
// init is expected to call this first.
func Open(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, ferr.Wrap(ferr.KindConfigMissing, "run 'flicks init <directory>' first", err)
	}

	dataDir := filepath.Join(cfg.RootPath, dataDirName)
	idx, err := catalog.LoadOrBuild(filepath.Join(dataDir, "catalog"))
	if err != nil {
		return nil, err
	}

	lib, err := library.Open(filepath.Join(dataDir, "library.db"))
	if err != nil {
		return nil, err
	}

	return &App{Config: cfg, Index: idx, Library: lib, DataDir: dataDir}, nil
}

// Close releases the app's held resources.
func (a *App) Close() error {
	if a == nil || a.Library == nil {
		return nil
	}
	return a.Library.Close()
}
