package discover

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-crawler/pkg/browser"
)

func testDiscoverer(t *testing.T) *Discoverer {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	d, err := NewDiscoverer("https://example.com", logrus.NewEntry(logger))
	require.NoError(t, err)
	return d
}

// fakePage serves canned anchors per selector and records hover calls.
type fakePage struct {
	anchors   map[string][]browser.Anchor
	failing   map[string]bool
	hovered   []string
	hoverFail bool
}

func (f *fakePage) Anchors(selector string) ([]browser.Anchor, error) {
	if f.failing[selector] {
		return nil, errors.New("query blew up")
	}
	return f.anchors[selector], nil
}

func (f *fakePage) Hover(selector string) error {
	if f.hoverFail {
		return errors.New("hover failed")
	}
	f.hovered = append(f.hovered, selector)
	return nil
}

func TestDedupeKeepOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "FirstOccurrenceWins", input: []string{"a", "b", "a", "c"}, expected: []string{"a", "b", "c"}},
		{name: "NoDuplicates", input: []string{"a", "b", "c"}, expected: []string{"a", "b", "c"}},
		{name: "AllSame", input: []string{"a", "a", "a"}, expected: []string{"a"}},
		{name: "Empty", input: nil, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeKeepOrder(tt.input))
		})
	}
}

func TestFilterNavAnchors(t *testing.T) {
	d := testDiscoverer(t)

	anchors := []browser.Anchor{
		{Href: "/about", Text: "About"},
		{Href: "/style.css", Text: "Styles"},           // denylisted extension
		{Href: "/products", Text: "Products"},          // no section keyword in href
		{Href: "https://other.com/about", Text: "About"}, // wrong host
		{Href: "/services/tax", Text: "Tax"},
		{Href: "", Text: "Blank"},
	}

	got := d.FilterNavAnchors(anchors)
	assert.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/services/tax",
	}, got)
}

func TestFilterByLinkText(t *testing.T) {
	d := testDiscoverer(t)

	anchors := []browser.Anchor{
		{Href: "/who-we-are", Text: "About our company"}, // keyword in text only
		{Href: "/pricing", Text: "Pricing"},              // no keyword anywhere
		{Href: "/brochure.pdf", Text: "Our services"},    // keyword but invalid URL
		{Href: "/people", Text: "Meet the Team"},
	}

	got := d.FilterByLinkText(anchors)
	assert.Equal(t, []string{
		"https://example.com/who-we-are",
		"https://example.com/people",
	}, got)
}

func TestDiscoverSections_UnionDedupedInOrder(t *testing.T) {
	d := testDiscoverer(t)

	page := &fakePage{anchors: map[string][]browser.Anchor{
		"nav a[href]": {
			{Href: "/about", Text: "About"},
			{Href: "/services", Text: "Services"},
		},
		"header a[href]": {
			{Href: "/about", Text: "About"}, // duplicate of nav entry
			{Href: "/contact", Text: "Contact"},
		},
		"a[href]": {
			{Href: "/join-us", Text: "Careers at Example"}, // found by text only
			{Href: "/services", Text: "Services"},          // duplicate again
		},
	}}

	got := d.DiscoverSections(page)
	assert.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/services",
		"https://example.com/contact",
		"https://example.com/join-us",
	}, got)
}

// Scenario: valid keyword link kept, denylisted asset link excluded.
func TestDiscoverSections_ExcludesInvalidURLs(t *testing.T) {
	d := testDiscoverer(t)

	page := &fakePage{anchors: map[string][]browser.Anchor{
		"nav a[href]": {
			{Href: "https://example.com/about", Text: "About"},
			{Href: "https://example.com/style.css", Text: "About styles"},
		},
	}}

	got := d.DiscoverSections(page)
	assert.Contains(t, got, "https://example.com/about")
	assert.NotContains(t, got, "https://example.com/style.css")
}

func TestDiscoverSections_SourceFailuresAreNotFatal(t *testing.T) {
	d := testDiscoverer(t)

	page := &fakePage{
		anchors: map[string][]browser.Anchor{
			".menu a[href]": {{Href: "/blog", Text: "Blog"}},
		},
		failing:   map[string]bool{"nav a[href]": true, "a[href]": true},
		hoverFail: true,
	}

	got := d.DiscoverSections(page)
	assert.Equal(t, []string{"https://example.com/blog"}, got)
}

func TestDiscoverSections_HoversDropdownTriggers(t *testing.T) {
	d := testDiscoverer(t)
	page := &fakePage{}

	d.DiscoverSections(page)
	assert.Equal(t, []string{"nav .dropdown", "nav .has-dropdown", ".menu-item-has-children"}, page.hovered)
}
