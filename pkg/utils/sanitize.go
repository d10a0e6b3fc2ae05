package utils

import (
	"regexp"
	"strings"
)

var (
	unsafeFilenameChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	consecutiveUnderscores = regexp.MustCompile(`_+`)
)

const maxFilenameLength = 100

// SanitizeFilename converts a URL or arbitrary string into a safe filename
// component, replacing anything outside [a-zA-Z0-9._-] with underscores.
func SanitizeFilename(name string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(name, "_")
	sanitized = consecutiveUnderscores.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_ ")
	if len(sanitized) > maxFilenameLength {
		sanitized = strings.Trim(sanitized[:maxFilenameLength], "_ ")
	}
	if sanitized == "" {
		sanitized = "untitled"
	}
	return sanitized
}
