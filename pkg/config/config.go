package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "2s" or "500ms" parse.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string or a nanosecond integer.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, parseErr := time.ParseDuration(s)
		if parseErr != nil {
			return fmt.Errorf("parse duration '%s': %w", s, parseErr)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all settings for one crawl session
type Config struct {
	BaseURL      string        `yaml:"base_url"`                // Site root to crawl (required)
	ScrapeDelay  Duration      `yaml:"scrape_delay,omitempty"`  // Politeness delay before each fetch
	MaxPages     int           `yaml:"max_pages,omitempty"`     // Hard ceiling on pages scraped per session
	DataDir      string        `yaml:"data_dir,omitempty"`      // Output directory for records and summary
	RecordsFile  string        `yaml:"records_file,omitempty"`  // JSON records filename
	SummaryFile  string        `yaml:"summary_file,omitempty"`  // Text summary filename
	SaveRawHTML  bool          `yaml:"save_raw_html,omitempty"` // Snapshot rendered HTML per page
	Browser      BrowserConfig `yaml:"browser,omitempty"`
	SectionLimit int           `yaml:"section_limit,omitempty"` // Max subsections fetched per section
	SweepLimit   int           `yaml:"sweep_limit,omitempty"`   // Max pages fetched in the sweep phase
}

// BrowserConfig holds settings for the headless browser session
type BrowserConfig struct {
	Headed          bool     `yaml:"headed,omitempty"` // Show a browser window; headless is the default
	UserAgent       string   `yaml:"user_agent,omitempty"`
	PageLoadTimeout Duration `yaml:"page_load_timeout,omitempty"` // Per-navigation timeout
	QueryTimeout    Duration `yaml:"query_timeout,omitempty"`     // Per-selector-query timeout
	SettleWait      Duration `yaml:"settle_wait,omitempty"`       // Extra wait after load for dynamic content
	DropdownWait    Duration `yaml:"dropdown_wait,omitempty"`     // Wait after hovering a dropdown trigger
}

// Load reads and parses a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config with all defaults applied for the given base URL.
func Default(baseURL string) *Config {
	cfg := &Config{BaseURL: baseURL}
	cfg.Validate() // Defaults only; base URL validity is checked by the caller
	return cfg
}
