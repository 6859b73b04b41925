package model

import (
	"path/filepath"
	"time"
)

// Config is the complete loandash configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
	LLM    LLMConfig    `yaml:"llm"`
	Output OutputConfig `yaml:"output"`
}

// DataConfig locates the dataset and auxiliary artifacts. Paths are
// relative to Dir unless absolute.
type DataConfig struct {
	Dir         string `yaml:"dir"`          // data directory
	DatasetFile string `yaml:"dataset_file"` // primary dataset (required)
	SummaryFile string `yaml:"summary_file"` // summary statistics (optional)
	RatesFile   string `yaml:"rates_file"`   // default rates by purpose (optional)
	ReportFile  string `yaml:"report_file"`  // analysis report text (optional)
}

// DatasetPath returns the resolved path of the primary dataset.
func (c DataConfig) DatasetPath() string { return c.resolve(c.DatasetFile) }

// SummaryPath returns the resolved path of the summary-statistics artifact.
func (c DataConfig) SummaryPath() string { return c.resolve(c.SummaryFile) }

// RatesPath returns the resolved path of the default-rates artifact.
func (c DataConfig) RatesPath() string { return c.resolve(c.RatesFile) }

// ReportPath returns the resolved path of the report artifact.
func (c DataConfig) ReportPath() string { return c.resolve(c.ReportFile) }

func (c DataConfig) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	RatePerSecond   float64       `yaml:"rate_per_second"` // per-client request rate
	RateBurst       int           `yaml:"rate_burst"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	MaxExplorerRows int           `yaml:"max_explorer_rows"` // page-size cap for /api/records
}

// CacheConfig configures the parsed-artifact cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // disk cache directory ("" = memory only)
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// LLMConfig configures the optional report narrator.
// Provider "" leaves narration disabled.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", ""
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         "data",
			DatasetFile: "loan_data_cleaned.csv",
			SummaryFile: "loan_summary_statistics.csv",
			RatesFile:   "default_rates_by_purpose.csv",
			ReportFile:  "loan_analysis_report.txt",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RatePerSecond:   20,
			RateBurst:       40,
			AllowedOrigins:  []string{"*"},
			MaxExplorerRows: 1000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 600,
		},
	}
}
