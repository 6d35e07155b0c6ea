// Command apiscout browses and fuzzy-searches OpenAPI endpoints in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"apiscout/internal/catalog"
	"apiscout/internal/eventbus"
	"apiscout/internal/obs"
	"apiscout/internal/search"
	"apiscout/internal/ui"
	"apiscout/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "apiscout [spec...]",
		Short:        "Browse and fuzzy-search OpenAPI endpoints",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), configPath, args)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default ./.apiscout.toml, then the user config directory)")

	root.AddCommand(
		newSearchCmd(&configPath),
		newVersionsCmd(&configPath),
		newDiffCmd(&configPath),
	)
	return root
}

func runTUI(ctx context.Context, configPath string, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(configPath, bus)
	if err != nil {
		return err
	}

	logFile := setupLogging(cfg)
	defer logFile.Close()
	logger := obs.Logger("main")

	// A catalog that fails to load leaves the search box disabled
	var (
		records  search.RecordSource
		selector *version.Selector
		loadErr  error
		cat      *catalog.Catalog
	)
	cat, loadErr = catalog.Load(specSources(cfg, args))
	if loadErr != nil {
		logger.Error().Err(loadErr).Msg("failed to load API catalog")
	} else {
		records = cat
		selector = version.NewSelector(cat.Versions(), cat.Default(), bus)
		logger.Info().
			Int("endpoints", cat.Len()).
			Int("versions", len(cat.Versions())).
			Str("default", cat.Default()).
			Msg("catalog loaded")
	}

	uiModel := ui.NewModel(bus, records, selector, ui.Options{
		Search:      searchOptions(cfg),
		Match:       search.EngineBuilder(matchOptions(cfg)),
		ShowTargets: cfg.UI.ShowTargets,
		WrapWidth:   cfg.UI.WrapWidth,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventVersionChanged,
		eventbus.EventCatalogLoaded,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if loadErr != nil {
		bus.Publish(eventbus.ErrorEvent{Message: fmt.Sprintf("Search unavailable: %v", loadErr), Err: loadErr})
	} else {
		bus.Publish(eventbus.CatalogLoadedEvent{Versions: cat.Versions(), Endpoints: cat.Len()})
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("error running program")
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
