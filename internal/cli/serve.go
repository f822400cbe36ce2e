package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/dexview/internal/engine"
	"github.com/daryltucker/dexview/internal/server"
)

var addrOverride string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the list and detail views as a JSON API",
	Long: `Starts an HTTP server for a browser front end.

  GET /api/pokemon?q=<search>   list view (fresh load per request)
  GET /api/pokemon/{id}         detail view, 404 when not found
  GET /health                   liveness`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addrOverride != "" {
			cfg.ListenAddr = addrOverride
		}
		return server.New(cfg, engine.New(cfg)).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&addrOverride, "addr", "", "Listen address (overrides config, default :8080)")
}
