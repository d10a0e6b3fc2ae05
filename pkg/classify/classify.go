// Package classify provides the pure URL predicates that drive crawl
// decisions: in-scope validity, main-section seeding, and structural
// subsection nesting. No function here performs I/O or keeps state.
package classify

import (
	"net/url"
	"strings"
)

// Extensions that never contain crawlable page content.
var denyExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".css", ".js", ".ico", ".xml", ".zip",
}

// Substrings that mark a URL as non-navigational or off-limits.
var denySubstrings = []string{
	"#", "mailto:", "tel:", "javascript:", "login", "admin", "wp-admin",
}

// Keywords identifying top-level site sections worth seeding the crawl with.
var sectionKeywords = []string{
	"about", "services", "team", "resources", "contact",
	"portfolio", "blog", "news", "careers", "clients",
}

// IsValid reports whether u is crawlable: same host as baseHost, not a
// denylisted file type, and free of denylisted substrings.
func IsValid(u *url.URL, baseHost string) bool {
	if u == nil || u.Hostname() != baseHost {
		return false
	}

	lower := strings.ToLower(u.String())
	for _, ext := range denyExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	for _, substr := range denySubstrings {
		if strings.Contains(lower, substr) {
			return false
		}
	}
	return true
}

// IsMainSection reports whether the raw href looks like a top-level site
// section. False negatives are fine (the sweep phase recovers them); false
// positives cost one budgeted fetch.
func IsMainSection(href string) bool {
	lower := strings.ToLower(href)
	for _, keyword := range sectionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ContainsSectionKeyword reports whether visible link text mentions a
// section keyword. Used by the text-scan discovery fallback.
func ContainsSectionKeyword(text string) bool {
	return IsMainSection(text)
}

// IsSubsection reports whether child's path structurally nests under
// parent's path. A URL is never a subsection of itself.
func IsSubsection(parent, child *url.URL) bool {
	if parent == nil || child == nil {
		return false
	}
	parentPath := strings.Trim(parent.Path, "/")
	childPath := strings.Trim(child.Path, "/")
	return strings.HasPrefix(childPath, parentPath) && childPath != parentPath
}

// ResolveURL resolves an href against base, yielding an absolute URL.
func ResolveURL(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(ref), nil
}
