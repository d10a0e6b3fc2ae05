package classify

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected bool
	}{
		{name: "SameHostPage", rawURL: "https://example.com/about", expected: true},
		{name: "Root", rawURL: "https://example.com/", expected: true},
		{name: "OtherDomain", rawURL: "https://other.com/about", expected: false},
		{name: "Subdomain", rawURL: "https://blog.example.com/post", expected: false},
		{name: "Stylesheet", rawURL: "https://example.com/style.css", expected: false},
		{name: "PDF", rawURL: "https://example.com/brochure.pdf", expected: false},
		{name: "UppercaseExtension", rawURL: "https://example.com/IMAGE.PNG", expected: false},
		{name: "Fragment", rawURL: "https://example.com/page#section", expected: false},
		{name: "LoginPath", rawURL: "https://example.com/login", expected: false},
		{name: "AdminPath", rawURL: "https://example.com/wp-admin/panel", expected: false},
		{name: "ExtensionMidPath", rawURL: "https://example.com/jsonapi/page", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mustParse(t, tt.rawURL)
			assert.Equal(t, tt.expected, IsValid(u, "example.com"))
		})
	}
}

func TestIsValid_NilURL(t *testing.T) {
	assert.False(t, IsValid(nil, "example.com"))
}

// The predicates are pure: repeated calls with the same input always agree.
func TestIsValid_Deterministic(t *testing.T) {
	u := mustParse(t, "https://example.com/services")
	first := IsValid(u, "example.com")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsValid(u, "example.com"))
	}
}

func TestIsMainSection(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected bool
	}{
		{name: "About", href: "/about", expected: true},
		{name: "AboutUppercase", href: "/ABOUT-US", expected: true},
		{name: "Services", href: "https://example.com/services/tax", expected: true},
		{name: "Blog", href: "/blog", expected: true},
		{name: "Careers", href: "/careers", expected: true},
		{name: "Product", href: "/products/widget", expected: false},
		{name: "Empty", href: "", expected: false},
		{name: "KeywordEmbedded", href: "/our-team", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMainSection(tt.href))
		})
	}
}

func TestIsSubsection(t *testing.T) {
	tests := []struct {
		name     string
		parent   string
		child    string
		expected bool
	}{
		{name: "DirectChild", parent: "https://example.com/services", child: "https://example.com/services/tax", expected: true},
		{name: "DeepChild", parent: "https://example.com/services", child: "https://example.com/services/tax/filing", expected: true},
		{name: "SamePath", parent: "https://example.com/services", child: "https://example.com/services", expected: false},
		{name: "SamePathTrailingSlash", parent: "https://example.com/services/", child: "https://example.com/services", expected: false},
		{name: "Sibling", parent: "https://example.com/services", child: "https://example.com/about", expected: false},
		{name: "ParentOfParent", parent: "https://example.com/services/tax", child: "https://example.com/services", expected: false},
		{name: "EverythingNestsUnderRoot", parent: "https://example.com/", child: "https://example.com/about", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := mustParse(t, tt.parent)
			child := mustParse(t, tt.child)
			assert.Equal(t, tt.expected, IsSubsection(parent, child))
		})
	}
}

func TestResolveURL(t *testing.T) {
	base := mustParse(t, "https://example.com/services/")

	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{name: "Relative", href: "tax", expected: "https://example.com/services/tax"},
		{name: "RootRelative", href: "/about", expected: "https://example.com/about"},
		{name: "Absolute", href: "https://example.com/contact", expected: "https://example.com/contact"},
		{name: "WithWhitespace", href: "  /about  ", expected: "https://example.com/about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := ResolveURL(base, tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resolved.String())
		})
	}
}
