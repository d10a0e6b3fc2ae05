// Package frontier tracks per-session crawl state: which URLs have been
// fetched or attempted, the ordered record collection, and the page budget.
package frontier

import (
	"sync"

	"site-crawler/pkg/models"
)

// Ledger owns the visited set and record sequence for one crawl session.
// The crawl loop is single-threaded, but check-then-insert stays a single
// critical section per URL so the no-duplicate-fetch invariant survives a
// parallel evolution.
type Ledger struct {
	mu       sync.Mutex
	visited  map[string]bool
	records  []models.PageRecord
	maxPages int
}

// NewLedger creates an empty ledger enforcing the given page budget.
func NewLedger(maxPages int) *Ledger {
	return &Ledger{
		visited:  make(map[string]bool),
		maxPages: maxPages,
	}
}

// AlreadyVisited reports whether url has been fetched or attempted this session.
func (l *Ledger) AlreadyVisited(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visited[url]
}

// MarkVisited records a fetch attempt for url, successful or not.
// Returns false if the URL was already visited.
func (l *Ledger) MarkVisited(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.visited[url] {
		return false
	}
	l.visited[url] = true
	return true
}

// Record appends rec to the output sequence and marks its URL visited.
// Returns false without storing when the URL was already recorded or the
// budget is exhausted.
func (l *Ledger) Record(rec models.PageRecord) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.records) >= l.maxPages {
		return false
	}
	for _, existing := range l.records {
		if existing.URL == rec.URL {
			return false
		}
	}
	l.visited[rec.URL] = true
	l.records = append(l.records, rec)
	return true
}

// BudgetRemaining reports whether another page may still be scraped.
func (l *Ledger) BudgetRemaining() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records) < l.maxPages
}

// PagesScraped returns the number of records stored so far.
func (l *Ledger) PagesScraped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// VisitedCount returns the number of URLs attempted this session.
func (l *Ledger) VisitedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visited)
}

// Records returns a copy of the record sequence in scrape order.
func (l *Ledger) Records() []models.PageRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.PageRecord, len(l.records))
	copy(out, l.records)
	return out
}

// RecordedURLs returns the URLs of stored records in scrape order.
func (l *Ledger) RecordedURLs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	urls := make([]string, 0, len(l.records))
	for _, rec := range l.records {
		urls = append(urls, rec.URL)
	}
	return urls
}
