/*
PURPOSE:
  Defines the 'show' subcommand.
  Prints the full record of one entry: measurements, abilities, stats and moves.

REQUIREMENTS:
  User-specified:
  - Look up an entry by id or name.
  - Report "not found" cleanly instead of crashing or hanging.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.DetailScreen

ERROR HANDLING:
  - Any fetch failure prints "<id>: not found" and exits 1.

USAGE:
  dexview show 25
  dexview show pikachu --format json
*/

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daryltucker/dexview/internal/engine"
	"github.com/daryltucker/dexview/internal/model"
	"github.com/daryltucker/dexview/internal/output"
)

// statBarWidth is the width of a full (255) stat bar.
const statBarWidth = 30

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show the full record of one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := engine.New(cfg)
		defer e.Close()

		screen := engine.NewDetailScreen(e)
		d, err := screen.Show(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not found\n", args[0])
			return err
		}

		switch showFormat {
		case "text", "":
			return writeDetail(cmd.OutOrStdout(), d)
		case "json":
			return output.NewJSONWriter(cmd.OutOrStdout()).Write(d)
		default:
			return fmt.Errorf("unknown format %q (want text or json)", showFormat)
		}
	},
}

func writeDetail(w io.Writer, d model.Detail) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#%d %s\n", d.ID, d.Name)
	fmt.Fprintf(tw, "Types:\t%s\n", strings.Join(d.Types, ", "))
	fmt.Fprintf(tw, "Height:\t%.1f m\n", d.Height)
	fmt.Fprintf(tw, "Weight:\t%.1f kg\n", d.Weight)
	fmt.Fprintf(tw, "Abilities:\t%s\n", strings.Join(d.Abilities, ", "))
	fmt.Fprintf(tw, "Image:\t%s\n", d.Image)
	fmt.Fprintln(tw, "\nStats:")
	for _, s := range d.Stats {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", s.Name, s.Value, statBar(s.Value))
	}
	fmt.Fprintf(tw, "\nMoves:\t%s\n", strings.Join(d.Moves, ", "))
	return tw.Flush()
}

// statBar renders value on a 0-255 scale.
func statBar(value int) string {
	n := max(0, min(value, 255)) * statBarWidth / 255
	return strings.Repeat("#", n) + strings.Repeat(".", statBarWidth-n)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "text", "Output format: text or json")
}
