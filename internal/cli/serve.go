package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mam276/loan-default-dashboard/internal/llm"
	"github.com/mam276/loan-default-dashboard/internal/server"
)

var (
	serveAddr    string
	serveDataDir string
	serveNoCache bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard HTTP API",
	Long: `Serve loads the dataset once and exposes the dashboard API:

- /api/kpis, /api/rates-by-purpose, /api/report: metrics over the
  filtered view, recomputed per request from query parameters
- /api/charts/*: render-ready chart payloads
- /api/records: the data explorer (column selection, paging, statistics)
- /api/artifacts/*: precomputed auxiliary tables where available
- /download/*: CSV and text downloads

Example:
  loandash serve --addr :8080 --data-dir ./data`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory (default from config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable the parsed-artifact cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(serveDataDir, serveNoCache)
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := newLogger()

	sess, err := openSession(cfg, logger)
	if err != nil {
		return err
	}

	narrator, err := llm.NewNarrator(narratorConfig(cfg))
	if err != nil {
		// A broken narrator config should not block the dashboard.
		fmt.Fprintf(os.Stderr, "Warning: report narration disabled: %v\n", err)
		narrator = nil
	}

	srv := server.New(sess, cfg.Server, narrator, logger)
	return srv.ListenAndServe()
}
