package extract

import (
	"strings"

	"github.com/akolanti/ClaimDocs/internal/config"
)

// Summarize builds a short preview from the first meaningful lines of raw text.
func Summarize(raw string) string {
	kept := make([]string, 0, config.SummaryMaxLines)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) < config.SummaryMinLength {
			continue
		}
		kept = append(kept, line)
		if len(kept) == config.SummaryMaxLines {
			break
		}
	}

	summary := strings.Join(kept, " ")
	if runes := []rune(summary); len(runes) > config.SummaryMaxChars {
		summary = string(runes[:config.SummaryMaxChars])
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return config.NoSummaryText
	}
	return summary
}

// HasSummary reports whether s is a real summary rather than the placeholder.
func HasSummary(s string) bool {
	return s != "" && s != config.NoSummaryText
}
