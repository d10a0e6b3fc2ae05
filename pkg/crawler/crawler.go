package crawler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"site-crawler/pkg/browser"
	"site-crawler/pkg/classify"
	"site-crawler/pkg/config"
	"site-crawler/pkg/discover"
	"site-crawler/pkg/extract"
	"site-crawler/pkg/frontier"
	"site-crawler/pkg/models"
	"site-crawler/pkg/utils"
)

// Phase names the stage the crawl session is currently in. Phases are
// strictly ordered; a session never moves backwards.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseDiscovering      Phase = "discovering_nav"
	PhaseScrapingHome     Phase = "scraping_home"
	PhaseScrapingSections Phase = "scraping_sections"
	PhaseSweeping         Phase = "sweeping_remainder"
	PhasePersisting       Phase = "persisting"
	PhaseDone             Phase = "done"
)

// Pager is the page-level browser surface the crawler drives.
// *browser.Session satisfies it; tests substitute a scripted fake.
type Pager interface {
	Navigate(pageURL string) (int, error)
	HTML() (string, error)
	Anchors(selector string) ([]browser.Anchor, error)
	Hover(selector string) error
}

// Crawler runs one breadth-limited crawl session over a single host:
// home page, navigation sections, their subsections, then a final
// sweep of already-seen links that the page budget still allows.
type Crawler struct {
	log  *logrus.Entry
	cfg  *config.Config
	base *url.URL

	page   Pager
	disc   *discover.Discoverer
	ext    *extract.Extractor
	ledger *frontier.Ledger
	out    *OutputManager

	sessionID string
	phase     Phase
	startedAt time.Time
}

// New builds a Crawler over an already-launched page session.
func New(cfg *config.Config, page Pager, log *logrus.Logger) (*Crawler, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL '%s': %w", cfg.BaseURL, err)
	}
	sessionID := uuid.New().String()
	entry := log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"site":       base.Host,
	})

	disc, err := discover.NewDiscoverer(cfg.BaseURL, entry)
	if err != nil {
		return nil, err
	}
	return &Crawler{
		log:       entry,
		cfg:       cfg,
		base:      base,
		page:      page,
		disc:      disc,
		ext:       extract.NewExtractor(entry),
		ledger:    frontier.NewLedger(cfg.MaxPages),
		out:       NewOutputManager(cfg, entry),
		sessionID: sessionID,
		phase:     PhaseIdle,
	}, nil
}

// SessionID reports the identifier stamped on this session's output.
func (c *Crawler) SessionID() string { return c.sessionID }

// Phase reports the current crawl stage.
func (c *Crawler) Phase() Phase { return c.phase }

func (c *Crawler) setPhase(p Phase) {
	c.phase = p
	c.log.WithField("phase", string(p)).Info("Crawl phase")
}

// Run executes the full crawl: navigation discovery on the home page, the
// home record, sections with subsections, remainder sweep, then
// persistence. Individual page failures are logged and skipped; Run only
// returns an error for context cancellation or a persistence failure.
func (c *Crawler) Run(ctx context.Context) error {
	c.startedAt = time.Now()
	if err := c.out.EnsureDirs(); err != nil {
		return err
	}

	c.setPhase(PhaseDiscovering)
	homeStatus, homeLoaded := c.loadPage(ctx, c.cfg.BaseURL)

	var sections []string
	if homeLoaded {
		// Discover from whatever DOM the home page served; an error page
		// can still carry the site's navigation markup.
		sections = c.disc.DiscoverSections(c.page)
		c.log.WithField("count", len(sections)).Info("Main sections discovered")
	} else {
		c.log.Warn("Home page did not load; no sections to crawl")
	}

	c.setPhase(PhaseScrapingHome)
	if homeLoaded && c.statusOK(c.cfg.BaseURL, homeStatus) {
		c.capturePage(c.cfg.BaseURL)
	}

	c.setPhase(PhaseScrapingSections)
	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.ledger.BudgetRemaining() {
			c.log.Info("Page budget exhausted")
			break
		}
		if c.ledger.AlreadyVisited(section) {
			continue
		}
		if !c.delay(ctx) {
			return ctx.Err()
		}
		if !c.scrapePage(ctx, section) {
			continue
		}
		c.scrapeSubsections(ctx, section)
	}

	c.setPhase(PhaseSweeping)
	if err := c.sweep(ctx); err != nil {
		return err
	}

	c.setPhase(PhasePersisting)
	if err := c.persist(); err != nil {
		return err
	}
	c.setPhase(PhaseDone)
	return ctx.Err()
}

// scrapePage fetches one URL and extracts a record when the status and
// content gates pass. It reports whether the page loaded with a success
// status, so callers can still harvest links from pages whose extracted
// content was rejected.
func (c *Crawler) scrapePage(ctx context.Context, pageURL string) bool {
	status, ok := c.loadPage(ctx, pageURL)
	if !ok {
		return false
	}
	if !c.statusOK(pageURL, status) {
		return false
	}
	c.capturePage(pageURL)
	return true
}

// loadPage marks pageURL visited and navigates to it. ok is false when
// the URL was already visited or the navigation itself failed; a
// non-success status still counts as loaded, since a DOM was served.
func (c *Crawler) loadPage(ctx context.Context, pageURL string) (status int, ok bool) {
	if err := ctx.Err(); err != nil {
		return 0, false
	}
	if !c.ledger.MarkVisited(pageURL) {
		return 0, false
	}
	status, err := c.page.Navigate(pageURL)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"url":      pageURL,
			"category": utils.CategorizeError(err),
		}).Warnf("Navigation failed: %v", err)
		return 0, false
	}
	return status, true
}

// statusOK gates record extraction on a 2xx navigation status.
func (c *Crawler) statusOK(pageURL string, status int) bool {
	if status >= 200 && status < 300 {
		return true
	}
	err := fmt.Errorf("%w: status %d at '%s'", utils.ErrHTTPStatus, status, pageURL)
	c.log.WithFields(logrus.Fields{
		"url":      pageURL,
		"status":   status,
		"category": utils.CategorizeError(err),
	}).Warnf("Skipping page: %v", err)
	return false
}

// capturePage snapshots and extracts the currently loaded page, recording
// it when the content gate passes.
func (c *Crawler) capturePage(pageURL string) {
	plog := c.log.WithField("url", pageURL)

	html, err := c.page.HTML()
	if err != nil {
		plog.Warnf("Could not capture page markup: %v", err)
		return
	}
	c.out.SnapshotHTML(pageURL, html)

	rec, ok, err := c.ext.Extract(pageURL, html)
	if err != nil {
		plog.Warnf("Extraction failed: %v", err)
		return
	}
	if !ok {
		plog.Debug("Page rejected by content gate")
		return
	}
	if c.ledger.Record(rec) {
		plog.WithFields(logrus.Fields{
			"title":      rec.Title,
			"word_count": rec.WordCount,
			"scraped":    c.ledger.PagesScraped(),
		}).Info("Page scraped")
	}
}

// scrapeSubsections harvests same-host links nested under the section
// path from the page currently loaded, then fetches up to the
// per-section limit of them.
func (c *Crawler) scrapeSubsections(ctx context.Context, sectionURL string) {
	parent, err := url.Parse(sectionURL)
	if err != nil {
		return
	}
	anchors, err := c.page.Anchors("a[href]")
	if err != nil {
		c.log.WithField("url", sectionURL).Warnf("Subsection harvest failed: %v", err)
		return
	}

	var subs []string
	for _, a := range anchors {
		child, err := classify.ResolveURL(c.base, a.Href)
		if err != nil {
			continue
		}
		if !classify.IsValid(child, c.base.Hostname()) {
			continue
		}
		if !classify.IsSubsection(parent, child) {
			continue
		}
		subs = append(subs, child.String())
	}
	subs = discover.DedupeKeepOrder(subs)

	fetched := 0
	for _, sub := range subs {
		if fetched >= c.cfg.SectionLimit {
			break
		}
		if !c.ledger.BudgetRemaining() {
			return
		}
		if c.ledger.AlreadyVisited(sub) {
			continue
		}
		if !c.delay(ctx) {
			return
		}
		c.scrapePage(ctx, sub)
		fetched++
	}
}

// sweep revisits every recorded page, collects the remaining unvisited
// same-host links, and fetches up to the sweep limit of them while the
// budget lasts.
func (c *Crawler) sweep(ctx context.Context) error {
	if !c.ledger.BudgetRemaining() {
		return nil
	}

	var candidates []string
	for _, recorded := range c.ledger.RecordedURLs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.page.Navigate(recorded); err != nil {
			c.log.WithField("url", recorded).Debugf("Sweep revisit failed: %v", err)
			continue
		}
		anchors, err := c.page.Anchors("a[href]")
		if err != nil {
			continue
		}
		for _, a := range anchors {
			resolved, err := classify.ResolveURL(c.base, a.Href)
			if err != nil {
				continue
			}
			if !classify.IsValid(resolved, c.base.Hostname()) {
				continue
			}
			candidates = append(candidates, resolved.String())
		}
	}

	fetched := 0
	for _, candidate := range discover.DedupeKeepOrder(candidates) {
		if fetched >= c.cfg.SweepLimit {
			break
		}
		if !c.ledger.BudgetRemaining() {
			break
		}
		if c.ledger.AlreadyVisited(candidate) {
			continue
		}
		if !c.delay(ctx) {
			return ctx.Err()
		}
		c.scrapePage(ctx, candidate)
		fetched++
	}
	return nil
}

func (c *Crawler) persist() error {
	records := c.ledger.Records()
	summary := models.CrawlSummary{
		SessionID:  c.sessionID,
		BaseURL:    c.cfg.BaseURL,
		StartTime:  c.startedAt,
		EndTime:    time.Now(),
		TotalPages: len(records),
	}
	for _, rec := range records {
		summary.ScrapedPages = append(summary.ScrapedPages, models.SummaryEntry{
			URL:   rec.URL,
			Title: rec.Title,
		})
	}
	return c.out.Persist(records, summary)
}

// delay applies the politeness pause before a fetch. It reports false
// when the context was cancelled during the wait.
func (c *Crawler) delay(ctx context.Context) bool {
	d := c.cfg.ScrapeDelay.Std()
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
