package extract

import (
	"strings"
	"unicode/utf8"
)

// Line texts that are pure navigation chrome, never content.
var navTokens = map[string]bool{
	"home": true,
	"menu": true,
	"skip": true,
}

// CleanText normalizes raw page text: drops lines of 3 characters or fewer
// after trimming, drops pure-navigation lines, collapses runs of blank
// lines, and trims the result.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= 3 || navTokens[strings.ToLower(line)] {
			continue
		}
		kept = append(kept, line)
	}
	cleaned := strings.Join(kept, "\n")

	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(cleaned)
}
