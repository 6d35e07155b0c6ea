package main

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"apiscout/internal/catalog"
	"apiscout/internal/config"
	"apiscout/internal/eventbus"
	"apiscout/internal/match"
	"apiscout/internal/obs"
	"apiscout/internal/search"
)

// loadConfig reads an explicit config file, which must exist, or the default
// location with fallback to built-in defaults
func loadConfig(path string, bus eventbus.EventBus) (*config.Config, error) {
	if path != "" {
		return config.NewConfigServiceForPath(path).LoadFromPath(path)
	}
	return config.WithBus(config.NewConfigService(), bus).Load()
}

// setupLogging points the global logger at the configured file. Logging
// falls back to stderr when the file cannot be opened.
func setupLogging(cfg *config.Config) io.Closer {
	if cfg.Log.File == "" {
		obs.InitLogger(cfg.Log.Level, nil)
		return io.NopCloser(nil)
	}

	f, err := obs.OpenLogFile(cfg.Log.File)
	if err != nil {
		obs.InitLogger(cfg.Log.Level, nil)
		log.Warn().Err(err).Str("file", cfg.Log.File).Msg("could not open log file")
		return io.NopCloser(nil)
	}

	obs.InitLogger(cfg.Log.Level, f)
	return f
}

// specSources turns command line spec paths, or the configured specs, into
// catalog sources. Several command line specs are versioned by file name.
func specSources(cfg *config.Config, args []string) []catalog.Source {
	if len(args) == 0 {
		sources := make([]catalog.Source, 0, len(cfg.Specs))
		for _, s := range cfg.Specs {
			sources = append(sources, catalog.Source{
				Version: s.Version,
				Path:    s.Path,
				Label:   s.Label,
				Default: s.Default,
			})
		}
		return sources
	}

	sources := make([]catalog.Source, 0, len(args))
	for _, arg := range args {
		src := catalog.Source{Path: arg}
		if len(args) > 1 {
			src.Version = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		sources = append(sources, src)
	}
	return sources
}

func matchOptions(cfg *config.Config) match.Options {
	opts := match.DefaultOptions()
	opts.Threshold = cfg.Search.Threshold
	return opts
}

func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		Debounce:       time.Duration(cfg.Search.DebounceMS) * time.Millisecond,
		MaxResults:     cfg.Search.MaxResults,
		ScopeToVersion: cfg.Search.ScopeToVersion,
	}
}
