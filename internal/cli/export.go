package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mam276/loan-default-dashboard/internal/dataset"
	"github.com/mam276/loan-default-dashboard/internal/filter"
)

var (
	exportFilters filterFlags
	exportDataDir string
	exportNoCache bool
	exportOut     string
	exportTable   string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a table as a delimited text file",
	Long: `Export writes one of the session's tables to a file (or stdout with
--out -): the dataset filtered by the filter flags, the precomputed
default-rates table, or the analysis report text.

Example:
  loandash export --out filtered.csv --status defaults
  loandash export --table default-rates --out rates.csv
  loandash export --table report --out -`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportDataDir, "data-dir", "", "data directory (default from config)")
	exportCmd.Flags().BoolVar(&exportNoCache, "no-cache", false, "disable the parsed-artifact cache")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path ('-' for stdout)")
	exportCmd.Flags().StringVar(&exportTable, "table", "dataset", "table to export (dataset, default-rates, report)")

	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(exportDataDir, exportNoCache)
	logger := newLogger()

	sess, err := openSession(cfg, logger)
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportTable {
	case "dataset":
		criteria, err := exportFilters.criteria(sess.Dataset)
		if err != nil {
			return err
		}
		view := filter.Apply(sess.Dataset, criteria)
		if err := dataset.WriteCSV(out, view); err != nil {
			return fmt.Errorf("export dataset: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Exported %d of %d records\n", view.Len(), sess.Dataset.Len())
		}

	case "default-rates":
		if sess.DefaultRates == nil {
			return fmt.Errorf("default-rates table is not available for this session")
		}
		if err := dataset.WriteRatesCSV(out, sess.DefaultRates); err != nil {
			return fmt.Errorf("export default rates: %w", err)
		}

	case "report":
		if sess.Report == "" {
			return fmt.Errorf("analysis report is not available for this session")
		}
		if _, err := out.WriteString(sess.Report); err != nil {
			return fmt.Errorf("export report: %w", err)
		}

	default:
		return fmt.Errorf("unknown table %q (expected dataset, default-rates, report)", exportTable)
	}

	return nil
}
