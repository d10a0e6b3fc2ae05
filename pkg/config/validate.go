package config

import (
	"fmt"
	"net/url"
	"time"

	"site-crawler/pkg/utils"
)

// Validate checks Config fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *Config) Validate() (warnings []string, err error) {
	// BaseURL is the only setting with no usable default
	if c.BaseURL == "" {
		return warnings, fmt.Errorf("%w: base_url is required", utils.ErrConfigValidation)
	}
	parsed, parseErr := url.Parse(c.BaseURL)
	if parseErr != nil || parsed.Hostname() == "" {
		return warnings, fmt.Errorf("%w: base_url '%s' is not an absolute URL", utils.ErrConfigValidation, c.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return warnings, fmt.Errorf("%w: base_url scheme '%s' not supported", utils.ErrConfigValidation, parsed.Scheme)
	}

	// ScrapeDelay
	if c.ScrapeDelay <= 0 {
		warnings = append(warnings, "scrape_delay should be > 0, defaulting to 1s")
		c.ScrapeDelay = Duration(1 * time.Second)
	}

	// MaxPages
	if c.MaxPages <= 0 {
		warnings = append(warnings, "max_pages should be > 0, defaulting to 50")
		c.MaxPages = 50
	}

	// Output locations
	if c.DataDir == "" {
		warnings = append(warnings, "data_dir is empty, defaulting to './data'")
		c.DataDir = "./data"
	}
	if c.RecordsFile == "" {
		c.RecordsFile = "scraped_data.json"
	}
	if c.SummaryFile == "" {
		c.SummaryFile = "scraping_summary.txt"
	}

	// Phase limits
	if c.SectionLimit <= 0 {
		c.SectionLimit = 5
	}
	if c.SweepLimit <= 0 {
		c.SweepLimit = 10
	}

	// Browser timeouts
	if c.Browser.PageLoadTimeout <= 0 {
		c.Browser.PageLoadTimeout = Duration(30 * time.Second)
	}
	if c.Browser.QueryTimeout <= 0 {
		c.Browser.QueryTimeout = Duration(5 * time.Second)
	}
	if c.Browser.SettleWait <= 0 {
		c.Browser.SettleWait = Duration(2 * time.Second)
	}
	if c.Browser.DropdownWait <= 0 {
		c.Browser.DropdownWait = Duration(500 * time.Millisecond)
	}

	return warnings, nil
}

// BaseHost returns the hostname of the configured base URL.
// Validate must have succeeded beforehand.
func (c *Config) BaseHost() string {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
