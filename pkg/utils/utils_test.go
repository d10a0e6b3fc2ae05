package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Nil", err: nil, expected: "None"},
		{name: "BrowserSetup", err: fmt.Errorf("%w: launching chrome", ErrBrowserSetup), expected: "Browser_Setup"},
		{name: "HTTP404", err: fmt.Errorf("%w: got 404 for page", ErrHTTPStatus), expected: "HTTP_404"},
		{name: "HTTP403", err: fmt.Errorf("%w: got 403 for page", ErrHTTPStatus), expected: "HTTP_403"},
		{name: "HTTP500", err: fmt.Errorf("%w: got 500 for page", ErrHTTPStatus), expected: "HTTP_5xx"},
		{name: "NavigationTimeout", err: fmt.Errorf("%w: navigate: %w", ErrNavigation, context.DeadlineExceeded), expected: "Navigation_Timeout"},
		{name: "NavigationOther", err: fmt.Errorf("%w: net::ERR_NAME_NOT_RESOLVED", ErrNavigation), expected: "Navigation_Failed"},
		{name: "Selector", err: fmt.Errorf("%w: querying 'main'", ErrSelector), expected: "DOM_Selector"},
		{name: "ParsingURL", err: fmt.Errorf("%w: parsing URL '::'", ErrParsing), expected: "Content_ParsingURL"},
		{name: "ParsingHTML", err: fmt.Errorf("%w: parsing HTML body", ErrParsing), expected: "Content_ParsingHTML"},
		{name: "Filesystem", err: fmt.Errorf("%w: writing output", ErrFilesystem), expected: "Filesystem_Other"},
		{name: "ConfigValidation", err: fmt.Errorf("%w: base_url required", ErrConfigValidation), expected: "Config_Validation"},
		{name: "ContextCanceled", err: context.Canceled, expected: "System_ContextCanceled"},
		{name: "DeadlineExceeded", err: context.DeadlineExceeded, expected: "System_ContextDeadlineExceeded"},
		{name: "ConnectionRefused", err: errors.New("dial tcp: connection refused"), expected: "Network_ConnectionRefused"},
		{name: "DNS", err: errors.New("lookup example.invalid: no such host"), expected: "Network_DNSLookup"},
		{name: "Unknown", err: errors.New("something odd"), expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeError(tt.err))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "URL", input: "https://example.com/about", expected: "https_example.com_about"},
		{name: "Clean", input: "index.html", expected: "index.html"},
		{name: "Empty", input: "", expected: "untitled"},
		{name: "OnlyUnsafe", input: "///???", expected: "untitled"},
		{name: "TrimsUnderscores", input: "/about/", expected: "about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_LongInput(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "segment-abc"
	}
	got := SanitizeFilename(long)
	assert.LessOrEqual(t, len(got), 100)
	assert.NotEmpty(t, got)
}
