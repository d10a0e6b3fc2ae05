package utils

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrBrowserSetup     = errors.New("browser setup failed")        // Fatal: allocator/context creation
	ErrNavigation       = errors.New("page navigation failed")      // Wraps chromedp navigation errors
	ErrHTTPStatus       = errors.New("non-success HTTP status")     // Navigation returned non-2xx
	ErrSelector         = errors.New("selector query failed")       // Wraps DOM query errors
	ErrParsing          = errors.New("parsing error")               // Wraps URL/HTML parsing errors
	ErrFilesystem       = errors.New("filesystem error")            // Wraps os errors
	ErrConfigValidation = errors.New("configuration validation error")
)

// CategorizeError maps an error to a category string for structured logging.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrBrowserSetup):
		return "Browser_Setup"
	case errors.Is(err, ErrHTTPStatus):
		errMsg := err.Error()
		if strings.Contains(errMsg, " 404") {
			return "HTTP_404"
		}
		if strings.Contains(errMsg, " 403") {
			return "HTTP_403"
		}
		if strings.Contains(errMsg, " 429") {
			return "HTTP_429"
		}
		if strings.Contains(errMsg, " 5") {
			return "HTTP_5xx"
		}
		return "HTTP_NonSuccess"
	case errors.Is(err, ErrNavigation):
		if strings.Contains(strings.ToLower(err.Error()), "timeout") ||
			errors.Is(err, context.DeadlineExceeded) {
			return "Navigation_Timeout"
		}
		return "Navigation_Failed"
	case errors.Is(err, ErrSelector):
		return "DOM_Selector"
	case errors.Is(err, ErrParsing):
		errMsg := err.Error()
		if strings.Contains(errMsg, "URL") {
			return "Content_ParsingURL"
		}
		if strings.Contains(errMsg, "HTML") {
			return "Content_ParsingHTML"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrFilesystem):
		if errors.Is(err, os.ErrPermission) {
			return "Filesystem_Permission"
		}
		if errors.Is(err, os.ErrNotExist) {
			return "Filesystem_NotExist"
		}
		return "Filesystem_Other"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	// Context errors not wrapped by a sentinel
	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	// Network errors surfacing from the browser transport
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Network_Timeout"
	}
	lowerMsg := strings.ToLower(err.Error())
	if strings.Contains(lowerMsg, "timeout") {
		return "Network_TimeoutGeneric"
	}
	if strings.Contains(lowerMsg, "connection refused") {
		return "Network_ConnectionRefused"
	}
	if strings.Contains(lowerMsg, "no such host") {
		return "Network_DNSLookup"
	}
	if strings.Contains(lowerMsg, "reset by peer") {
		return "Network_ConnectionReset"
	}

	return "Unknown"
}
