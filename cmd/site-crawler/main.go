package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"site-crawler/pkg/browser"
	"site-crawler/pkg/config"
	"site-crawler/pkg/crawler"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "crawl":
		runCrawl(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("site-crawler %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `site-crawler - Corporate website crawler

Usage:
  site-crawler <command> [options]

Commands:
  crawl       Crawl a website and extract page records
  validate    Validate configuration file
  version     Show version info

Run 'site-crawler <command> -h' for command-specific help.`)
}

// runCrawl handles the crawl subcommand
func runCrawl(args []string) {
	fs := flag.NewFlagSet("crawl", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to config file (optional when -url is given)")
	baseURL := fs.String("url", "", "Base URL to crawl (overrides config)")
	maxPages := fs.Int("max-pages", 0, "Page budget override (0 = use config)")
	dataDir := fs.String("data-dir", "", "Output directory override")
	saveHTML := fs.Bool("save-html", false, "Save rendered HTML snapshots alongside records")
	headed := fs.Bool("headed", false, "Run the browser with a visible window")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: site-crawler crawl [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  site-crawler crawl -url https://example.com\n")
		fmt.Fprintf(os.Stderr, "  site-crawler crawl -config config.yaml -loglevel debug\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	log := setupLogger(*logLevel)
	cfg := loadAndValidateConfig(*configFile, *baseURL, log)

	if *maxPages > 0 {
		cfg.MaxPages = *maxPages
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *saveHTML {
		cfg.SaveRawHTML = true
	}
	if *headed {
		cfg.Browser.Headed = true
	}

	executeCrawl(cfg, log)
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: site-crawler validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	os.Exit(doValidate(*configFile, os.Stdout, os.Stderr))
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "OK: base URL %s, budget %d pages, delay %s\n",
		cfg.BaseURL, cfg.MaxPages, cfg.ScrapeDelay.Std())
	fmt.Fprintln(stdout, "\nConfiguration valid.")
	return 0
}

// setupLogger creates a configured logrus.Logger with the given log level.
func setupLogger(logLevelStr string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		log.SetLevel(level)
	}

	return log
}

// loadAndValidateConfig resolves the effective config from file and the
// -url override, applies defaults, and logs any warnings.
func loadAndValidateConfig(configFile, baseURL string, log *logrus.Logger) *config.Config {
	var cfg *config.Config

	switch {
	case configFile != "":
		log.Infof("Loading configuration from %s", configFile)
		loaded, err := config.Load(configFile)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
	case baseURL != "":
		cfg = config.Default(baseURL)
	default:
		log.Fatal("Error: either -config or -url is required")
	}

	warnings, err := cfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}
	return cfg
}

// executeCrawl contains the main crawl logic
func executeCrawl(cfg *config.Config, log *logrus.Logger) {
	log.Infof("Crawl target: %s (budget %d pages, delay %s)",
		cfg.BaseURL, cfg.MaxPages, cfg.ScrapeDelay.Std())

	crawlCtx, cancelCrawl := context.WithCancel(context.Background())
	defer cancelCrawl()

	// Channel to listen for OS signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancelCrawl()

		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()
	defer signal.Stop(sigChan)

	log.Info("Launching browser...")
	session, err := browser.NewSession(crawlCtx, cfg.Browser, log.WithField("component", "browser"))
	if err != nil {
		log.Fatalf("Failed to launch browser: %v", err)
	}
	defer session.Close()

	c, err := crawler.New(cfg, session, log)
	if err != nil {
		log.Fatalf("Failed to initialize crawler: %v", err)
	}

	log.WithField("session_id", c.SessionID()).Info("Starting crawl")
	start := time.Now()

	if err := c.Run(crawlCtx); err != nil {
		if crawlCtx.Err() != nil {
			log.Warnf("Crawl interrupted: %v", err)
		} else {
			log.Fatalf("Crawl failed: %v", err)
		}
	}

	log.Infof("Crawl finished in %s", time.Since(start).Round(time.Second))
}
