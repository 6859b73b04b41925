package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mam276/loan-default-dashboard/internal/filter"
	"github.com/mam276/loan-default-dashboard/internal/llm"
	"github.com/mam276/loan-default-dashboard/internal/model"
	"github.com/mam276/loan-default-dashboard/internal/report"
)

var (
	summaryFilters filterFlags
	summaryDataDir string
	summaryNoCache bool
	outJSON        string
	outMD          string
	noFooter       bool
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compute KPIs for a filter selection and print or export a report",
	Long: `Summary loads the dataset, applies the filter flags, and prints the
KPIs over the filtered subset. Optionally writes the full analysis report
as JSON and/or Markdown.

Example:
  loandash summary --status defaults --credit-min 650
  loandash summary --json report.json --md report.md
  loandash summary --llm --llm-provider openai`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryFilters.register(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryDataDir, "data-dir", "", "data directory (default from config)")
	summaryCmd.Flags().BoolVar(&summaryNoCache, "no-cache", false, "disable the parsed-artifact cache")

	// Output flags
	summaryCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	summaryCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	summaryCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	summaryCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	summaryCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	summaryCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(summaryDataDir, summaryNoCache)
	logger := newLogger()

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	sess, err := openSession(cfg, logger)
	if err != nil {
		return err
	}

	criteria, err := summaryFilters.criteria(sess.Dataset)
	if err != nil {
		return err
	}

	view := filter.Apply(sess.Dataset, criteria)
	rep := report.Build(sess, view, criteria)

	if llmEnabled {
		narrator, err := llm.NewNarrator(narratorConfig(cfg))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := narrator.Narrate(ctx, rep); err != nil {
			// The metrics stand on their own; warn and continue.
			fmt.Fprintf(os.Stderr, "Warning: narrative generation failed: %v\n", err)
		}
	}

	report.PrintSummary(rep)

	renderer := report.NewRenderer(!noFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(rep, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(rep, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	return nil
}

// narratorConfig derives the narrator configuration from the app config.
func narratorConfig(cfg *model.Config) llm.Config {
	return llm.ConfigFromModel(cfg.LLM)
}
