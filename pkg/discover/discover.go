// Package discover finds the seed set of section URLs on a site's home
// page: semantic navigation regions first, then a keyword scan over all
// anchors for sites without meaningful nav markup.
package discover

import (
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"site-crawler/pkg/browser"
	"site-crawler/pkg/classify"
	"site-crawler/pkg/utils"
)

// Dropdown menus hide links until hovered; these trigger elements cover the
// common CMS/theme conventions.
var dropdownSelectors = []string{
	"nav .dropdown",
	"nav .has-dropdown",
	".menu-item-has-children",
}

// Anchor queries for known navigation containers.
var navSelectors = []string{
	"nav a[href]",
	".navigation a[href]",
	".nav a[href]",
	".menu a[href]",
	".navbar a[href]",
	"header a[href]",
	".main-nav a[href]",
	".primary-nav a[href]",
}

// PageQuerier is the slice of a live page the discoverer needs.
type PageQuerier interface {
	Anchors(selector string) ([]browser.Anchor, error)
	Hover(selector string) error
}

// Discoverer collects candidate section URLs from a loaded home page.
type Discoverer struct {
	log  *logrus.Entry
	base *url.URL
}

// NewDiscoverer creates a Discoverer for the given base URL.
func NewDiscoverer(baseURL string, log *logrus.Entry) (*Discoverer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base URL '%s': %w", utils.ErrParsing, baseURL, err)
	}
	return &Discoverer{log: log, base: base}, nil
}

// DiscoverSections runs the full discovery pass against the currently
// loaded home page. No failure here is fatal: each source that errors
// simply contributes nothing.
func (d *Discoverer) DiscoverSections(pg PageQuerier) []string {
	// Reveal dropdown navigation first; absence of dropdowns is normal
	for _, sel := range dropdownSelectors {
		if err := pg.Hover(sel); err != nil {
			d.log.WithField("selector", sel).Debugf("Dropdown hover failed: %v", err)
		}
	}

	var candidates []string
	for _, sel := range navSelectors {
		anchors, err := pg.Anchors(sel)
		if err != nil {
			d.log.WithField("selector", sel).Debugf("Nav anchor query failed: %v", err)
			continue
		}
		candidates = append(candidates, d.FilterNavAnchors(anchors)...)
	}

	// Secondary strategy: some sites carry no semantic nav markup at all,
	// so scan every anchor for section keywords in the visible text
	allAnchors, err := pg.Anchors("a[href]")
	if err != nil {
		d.log.Debugf("Full anchor scan failed: %v", err)
	} else {
		candidates = append(candidates, d.FilterByLinkText(allAnchors)...)
	}

	sections := DedupeKeepOrder(candidates)
	d.log.WithField("count", len(sections)).Info("Navigation discovery complete")
	return sections
}

// FilterNavAnchors keeps anchors from navigation containers whose raw href
// names a main section and whose resolved URL is crawlable.
func (d *Discoverer) FilterNavAnchors(anchors []browser.Anchor) []string {
	var out []string
	for _, a := range anchors {
		if a.Href == "" || !classify.IsMainSection(a.Href) {
			continue
		}
		resolved, err := classify.ResolveURL(d.base, a.Href)
		if err != nil {
			d.log.Debugf("Skipping unparseable href '%s': %v", a.Href, err)
			continue
		}
		if classify.IsValid(resolved, d.base.Hostname()) {
			out = append(out, resolved.String())
		}
	}
	return out
}

// FilterByLinkText keeps anchors whose visible text mentions a section
// keyword, subject to URL validity only.
func (d *Discoverer) FilterByLinkText(anchors []browser.Anchor) []string {
	var out []string
	for _, a := range anchors {
		if a.Href == "" || !classify.ContainsSectionKeyword(a.Text) {
			continue
		}
		resolved, err := classify.ResolveURL(d.base, a.Href)
		if err != nil {
			continue
		}
		if classify.IsValid(resolved, d.base.Hostname()) {
			out = append(out, resolved.String())
		}
	}
	return out
}

// DedupeKeepOrder removes duplicates, keeping the first occurrence of each
// URL in its original position.
func DedupeKeepOrder(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
