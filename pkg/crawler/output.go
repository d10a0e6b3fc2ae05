package crawler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"site-crawler/pkg/config"
	"site-crawler/pkg/models"
	"site-crawler/pkg/utils"
)

// RawHTMLDir is the subdirectory for rendered-markup snapshots.
const RawHTMLDir = "raw_html"

// OutputManager owns the persistence sink: the JSON record file read by the
// chunking pipeline and the human-readable crawl summary.
type OutputManager struct {
	log         *logrus.Entry
	dataDir     string
	recordsPath string
	summaryPath string
	saveRawHTML bool
}

// NewOutputManager creates an OutputManager from the session config.
func NewOutputManager(cfg *config.Config, log *logrus.Entry) *OutputManager {
	return &OutputManager{
		log:         log,
		dataDir:     cfg.DataDir,
		recordsPath: filepath.Join(cfg.DataDir, cfg.RecordsFile),
		summaryPath: filepath.Join(cfg.DataDir, cfg.SummaryFile),
		saveRawHTML: cfg.SaveRawHTML,
	}
}

// EnsureDirs creates the output directory tree.
func (om *OutputManager) EnsureDirs() error {
	if err := os.MkdirAll(om.dataDir, 0755); err != nil {
		return fmt.Errorf("%w: creating data dir '%s': %w", utils.ErrFilesystem, om.dataDir, err)
	}
	if om.saveRawHTML {
		if err := os.MkdirAll(filepath.Join(om.dataDir, RawHTMLDir), 0755); err != nil {
			return fmt.Errorf("%w: creating raw html dir: %w", utils.ErrFilesystem, err)
		}
	}
	return nil
}

// Persist writes the record sequence and the summary file.
func (om *OutputManager) Persist(records []models.PageRecord, summary models.CrawlSummary) error {
	if err := om.writeRecords(records); err != nil {
		return err
	}
	if err := om.writeSummary(summary); err != nil {
		return err
	}
	om.log.WithFields(logrus.Fields{
		"records": om.recordsPath,
		"summary": om.summaryPath,
		"pages":   len(records),
	}).Info("Crawl output persisted")
	return nil
}

func (om *OutputManager) writeRecords(records []models.PageRecord) error {
	// Empty crawl still produces a valid, empty JSON array
	if records == nil {
		records = []models.PageRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling records JSON: %w", utils.ErrParsing, err)
	}
	if err := os.WriteFile(om.recordsPath, data, 0644); err != nil {
		return fmt.Errorf("%w: writing '%s': %w", utils.ErrFilesystem, om.recordsPath, err)
	}
	return nil
}

func (om *OutputManager) writeSummary(summary models.CrawlSummary) error {
	f, err := os.Create(om.summaryPath)
	if err != nil {
		return fmt.Errorf("%w: creating '%s': %w", utils.ErrFilesystem, om.summaryPath, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Web Scraping Summary\n")
	fmt.Fprintf(f, "====================\n\n")
	fmt.Fprintf(f, "Session: %s\n", summary.SessionID)
	fmt.Fprintf(f, "Base URL: %s\n", summary.BaseURL)
	fmt.Fprintf(f, "Duration: %s\n", summary.EndTime.Sub(summary.StartTime).Round(time.Second))
	fmt.Fprintf(f, "Total pages scraped: %d\n", summary.TotalPages)
	fmt.Fprintf(f, "Scraped URLs:\n")
	for i, entry := range summary.ScrapedPages {
		title := entry.Title
		if title == "" {
			title = "No title"
		}
		fmt.Fprintf(f, "%d. %s - %s\n", i+1, entry.URL, title)
	}
	return nil
}

// SnapshotHTML saves the rendered markup of one page, when enabled.
// Snapshot failures are logged, never propagated; the record is the
// product, the snapshot a debugging aid.
func (om *OutputManager) SnapshotHTML(pageURL, html string) {
	if !om.saveRawHTML {
		return
	}
	path := filepath.Join(om.dataDir, RawHTMLDir, utils.SanitizeFilename(pageURL)+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		om.log.WithField("url", pageURL).Warnf("Could not write HTML snapshot: %v", err)
	}
}
