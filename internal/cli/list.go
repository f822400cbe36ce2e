/*
PURPOSE:
  Defines the 'list' subcommand.
  Loads one index page with every referenced entry and prints the (filtered) result.

REQUIREMENTS:
  User-specified:
  - Show name, artwork and types of every entry.
  - Narrow the list with a case-insensitive name search.

  Implementation-discovered:
  - Output must be scriptable: table for humans, JSON lines or CSV for tools.
  - Upstream order is lost in the fan-out; --sort restores id order for display.
  - An index failure is reported but the command still prints an (empty) list.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine (ListScreen, Filter)
  - Uses: internal/output (CSV/JSON writers)

ERROR HANDLING:
  - Index failure: logged, empty list printed, exit status 1.
  - Per-entry failures are logged by the engine and skipped.

IMPLEMENTATION RULES:
  - Write to cmd.OutOrStdout() so tests can capture output.
  - Logs go to stderr.

USAGE:
  dexview list --search char --format csv -o starters.csv

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/list.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when adding output formats.
*/

package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daryltucker/dexview/internal/engine"
	"github.com/daryltucker/dexview/internal/model"
	"github.com/daryltucker/dexview/internal/output"
)

var (
	searchQuery    string
	limitOverride  int
	offsetOverride int
	sortByID       bool
	listFormat     string
	listOutput     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries with their types",
	Example: `  # First 100 entries
  dexview list

  # Search by name, sorted by id
  dexview list --search saur --sort

  # Export the first generation as CSV
  dexview list --limit 151 --format csv -o gen1.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if limitOverride > 0 {
			cfg.PageLimit = limitOverride
		}
		if offsetOverride > 0 {
			cfg.PageOffset = offsetOverride
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		e := engine.New(cfg)
		defer e.Close()

		screen := engine.NewListScreen(e)
		loadErr := screen.Load(cmd.Context())

		entries := screen.Visible(searchQuery)
		if sortByID {
			slices.SortFunc(entries, func(a, b model.Entry) int { return a.ID - b.ID })
		}

		if err := writeEntries(cmd.OutOrStdout(), entries); err != nil {
			return err
		}
		if loadErr != nil {
			return fmt.Errorf("catalog index unavailable: %w", loadErr)
		}
		return nil
	},
}

func writeEntries(stdout io.Writer, entries []model.Entry) error {
	switch listFormat {
	case "table", "":
		return writeTable(stdout, entries)
	case "json":
		var w *output.JSONWriter
		if listOutput != "" {
			f, err := output.NewJSONFile(listOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", listOutput, err)
			}
			w = f
		} else {
			w = output.NewJSONWriter(stdout)
		}
		defer w.Close()
		for _, e := range entries {
			if err := w.Write(e); err != nil {
				return err
			}
		}
		return nil
	case "csv":
		var w *output.CSVWriter
		var err error
		if listOutput != "" {
			w, err = output.NewCSVFile(listOutput)
		} else {
			w, err = output.NewCSVWriter(stdout)
		}
		if err != nil {
			return fmt.Errorf("failed to init CSV writer: %w", err)
		}
		defer w.Close()
		for _, e := range entries {
			if err := w.Write(e); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json or csv)", listFormat)
	}
}

func writeTable(w io.Writer, entries []model.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPES\tIMAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Name, strings.Join(e.Types, ", "), e.Image)
	}
	fmt.Fprintf(tw, "\n%d entries\n", len(entries))
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Case-insensitive substring to match against names")
	listCmd.Flags().IntVar(&limitOverride, "limit", 0, "Index page size (overrides config)")
	listCmd.Flags().IntVar(&offsetOverride, "offset", 0, "Index page offset (overrides config)")
	listCmd.Flags().BoolVar(&sortByID, "sort", false, "Sort entries by id")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format: table, json, csv")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Write json/csv output to this file instead of stdout")
}
