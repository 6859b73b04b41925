package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mam276/loan-default-dashboard/internal/cache"
	"github.com/mam276/loan-default-dashboard/internal/dataset"
	"github.com/mam276/loan-default-dashboard/internal/model"
)

// filterFlags holds the filter values shared by summary and export.
type filterFlags struct {
	status    string
	amountMin float64
	amountMax float64
	creditMin float64
	creditMax float64
	purposes  []string
}

// register adds the filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "all", "loan status filter (all, defaults, non_defaults)")
	cmd.Flags().Float64Var(&f.amountMin, "amount-min", -1, "minimum loan amount (default: data minimum)")
	cmd.Flags().Float64Var(&f.amountMax, "amount-max", -1, "maximum loan amount (default: data maximum)")
	cmd.Flags().Float64Var(&f.creditMin, "credit-min", -1, "minimum credit score (default: data minimum)")
	cmd.Flags().Float64Var(&f.creditMax, "credit-max", -1, "maximum credit score (default: data maximum)")
	cmd.Flags().StringSliceVar(&f.purposes, "purpose", nil, "loan purposes to include (default: all)")
}

// criteria assembles well-formed criteria against a loaded dataset:
// unset flags default to the data bounds and all known purposes, and
// requested ranges are clamped the same way the dashboard sidebar does.
func (f *filterFlags) criteria(ds *model.Dataset) (model.Criteria, error) {
	status, err := model.ParseStatusFilter(f.status)
	if err != nil {
		return model.Criteria{}, err
	}

	amount := ds.AmountBounds()
	if f.amountMin >= 0 {
		amount.Min = f.amountMin
	}
	if f.amountMax >= 0 {
		amount.Max = f.amountMax
	}

	credit := ds.CreditBounds()
	if f.creditMin >= 0 {
		credit.Min = f.creditMin
	}
	if f.creditMax >= 0 {
		credit.Max = f.creditMax
	}

	purposes := f.purposes
	if len(purposes) == 0 {
		purposes = ds.Purposes()
	}

	return model.Criteria{
		Status:   status,
		Amount:   amount.Clamp(ds.AmountBounds()),
		Credit:   credit.Clamp(ds.CreditBounds()),
		Purposes: purposes,
	}, nil
}

// loadConfig merges defaults, the viper config file, and common flags.
func loadConfig(dataDir string, noCache bool) *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}

	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose
	return cfg
}

// newLogger builds the slog logger the commands share.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openSession loads the dataset and artifacts for a command invocation.
func openSession(cfg *model.Config, logger *slog.Logger) (*dataset.Session, error) {
	loader := dataset.NewLoader(cache.New(cfg.Cache), logger)
	sess, err := dataset.NewSession(loader, cfg.Data, logger)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return sess, nil
}
