package models

import (
	"strings"
	"time"
)

// PageRecord holds the structured content extracted from one scraped page.
// Records are created once by the extractor and never mutated afterwards.
type PageRecord struct {
	URL             string   `json:"url"`                        // Canonical absolute URL; unique per session
	Title           string   `json:"title"`                      // Best-effort title; may be empty
	Content         string   `json:"content"`                    // Cleaned body text; never empty for a stored record
	Headings        []string `json:"headings"`                   // Non-empty heading texts in document order
	MetaDescription string   `json:"meta_description"`           // Raw meta description, or ""
	ScrapedAt       float64  `json:"scraped_at"`                 // Unix timestamp at extraction time
	WordCount       int      `json:"word_count"`                 // Whitespace-delimited token count of Content
}

// NewPageRecord builds a record for url from already-cleaned content,
// stamping the scrape time and deriving the word count.
func NewPageRecord(url, title, content string, headings []string, metaDescription string) PageRecord {
	return PageRecord{
		URL:             url,
		Title:           title,
		Content:         content,
		Headings:        headings,
		MetaDescription: metaDescription,
		ScrapedAt:       float64(time.Now().Unix()),
		WordCount:       len(strings.Fields(content)),
	}
}

// CrawlSummary holds session-level metadata for the human-readable summary file.
type CrawlSummary struct {
	SessionID    string    // UUID assigned at session start
	BaseURL      string    // Site root the session crawled
	StartTime    time.Time
	EndTime      time.Time
	TotalPages   int
	ScrapedPages []SummaryEntry // In scrape order
}

// SummaryEntry is one line of the summary listing.
type SummaryEntry struct {
	URL   string
	Title string
}
