package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"apiscout/internal/catalog"
	"apiscout/internal/config"
	"apiscout/internal/domain"
	"apiscout/internal/match"
	"apiscout/internal/obs"
	"apiscout/internal/search"
	"apiscout/internal/version"
)

// openCatalog loads config and the catalog for a one-shot command. Only the
// TUI owns the terminal, so one-shot commands log to stderr, not the log file.
func openCatalog(configPath string, args []string) (*config.Config, *catalog.Catalog, error) {
	cfg, err := loadConfig(configPath, nil)
	if err != nil {
		return nil, nil, err
	}

	obs.InitLogger(cfg.Log.Level, os.Stderr)
	cat, err := catalog.Load(specSources(cfg, args))
	if err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

func newSearchCmd(configPath *string) *cobra.Command {
	var (
		versionID string
		allVers   bool
		limit     int
		specs     []string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search endpoints and print the ranked matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := openCatalog(*configPath, specs)
			if err != nil {
				return err
			}

			records := cat.Endpoints()
			if !allVers && (versionID != "" || cfg.Search.ScopeToVersion) {
				sel := version.NewSelector(cat.Versions(), cat.Default(), nil)
				if versionID != "" {
					if err := sel.Set(versionID); err != nil {
						return err
					}
				}
				records = visibleRecords(records, sel)
			}

			if limit <= 0 {
				limit = cfg.Search.MaxResults
			}

			query := strings.Join(args, " ")
			results := match.Build(records, matchOptions(cfg)).Search(query)
			entries := search.Entries(results, limit)

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No endpoints match %q\n", query)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%-7s %-40s %.3f  %s\n",
					strings.ToUpper(e.Endpoint.Method), e.Endpoint.Path, e.Score, e.Target)
			}
			fmt.Fprintf(out, "\n%d of %d\n", len(entries), len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&versionID, "version", "", "search only this API version")
	cmd.Flags().BoolVar(&allVers, "all", false, "search every loaded version")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results to print (default from config)")
	cmd.Flags().StringSliceVar(&specs, "spec", nil, "OpenAPI documents to load instead of the configured ones")
	return cmd
}

func visibleRecords(records []domain.Endpoint, sel *version.Selector) []domain.Endpoint {
	visible := make([]domain.Endpoint, 0, len(records))
	for _, e := range records {
		if sel.Visible(e.Version) {
			visible = append(visible, e)
		}
	}
	return visible
}

func newVersionsCmd(configPath *string) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List loaded API versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cat, err := openCatalog(*configPath, specs)
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("VERSION", "LABEL", "ENDPOINTS", "DEFAULT")
			for _, v := range cat.Versions() {
				def := ""
				if v.IsDefault {
					def = "*"
				}
				t.Row(v.ID, v.Label, strconv.Itoa(v.EndpointCount), def)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&specs, "spec", nil, "OpenAPI documents to load instead of the configured ones")
	return cmd
}

func newDiffCmd(configPath *string) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show endpoints added and removed between consecutive versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cat, err := openCatalog(*configPath, specs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			diffs := cat.Compare()
			if len(diffs) == 0 {
				fmt.Fprintln(out, "Only one version loaded, nothing to compare")
				return nil
			}

			for _, d := range diffs {
				if d.Previous == "" {
					fmt.Fprintf(out, "%s: %d endpoints\n", d.Version, d.Count)
					continue
				}
				fmt.Fprintf(out, "%s (from %s): %d endpoints, +%d -%d\n",
					d.Version, d.Previous, d.Count, len(d.Added), len(d.Removed))
				for _, k := range d.Added {
					fmt.Fprintf(out, "  + %s\n", k)
				}
				for _, k := range d.Removed {
					fmt.Fprintf(out, "  - %s\n", k)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&specs, "spec", nil, "OpenAPI documents to load instead of the configured ones")
	return cmd
}
