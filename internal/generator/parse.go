package generator

import (
	"strings"
	"unicode"
)

const (
	// SummaryPlaceholder stands in for an empty generation response.
	SummaryPlaceholder = "Failed to generate summary"
	// SummaryError stands in for a failed generation call.
	SummaryError = "Error generating summary"
)

// maxHashtags and maxTitles cap the parsed lists, in original order.
const (
	maxHashtags = 10
	maxTitles   = 5
)

// ParseSummary passes the response through verbatim, substituting a fixed
// placeholder for empty responses.
func ParseSummary(response string) string {
	if strings.TrimSpace(response) == "" {
		return SummaryPlaceholder
	}
	return response
}

// ParseHashtags keeps lines starting with # or -, strips the leading dash
// run, and normalizes each entry to exactly one leading #.
func ParseHashtags(response string) []string {
	var hashtags []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || (!strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "-")) {
			continue
		}

		tag := strings.TrimSpace(strings.TrimLeft(line, "-"))
		tag = strings.TrimLeft(tag, "#")
		if tag == "" {
			continue
		}

		hashtags = append(hashtags, "#"+tag)
		if len(hashtags) == maxHashtags {
			break
		}
	}

	return hashtags
}

// ParseTitles strips "<n>. " numbering and leading dashes, and drops
// preamble lines ("Here are some titles:" and the like).
func ParseTitles(response string) []string {
	var titles []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var title string
		switch {
		case unicode.IsDigit(rune(line[0])):
			// "1. Foo" -> everything after the first ". "
			idx := strings.Index(line, ". ")
			if idx < 0 {
				continue
			}
			title = line[idx+2:]
		case strings.HasPrefix(line, "-"):
			title = strings.TrimSpace(strings.TrimPrefix(line, "-"))
		default:
			lower := strings.ToLower(line)
			if strings.Contains(lower, "title") || strings.Contains(lower, "suggestion") || strings.Contains(lower, "here are") {
				continue
			}
			title = line
		}

		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) == maxTitles {
			break
		}
	}

	return titles
}

// ParseChapters keeps lines containing both a colon and a digit.
func ParseChapters(response string) []string {
	var chapters []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}
		if !strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		chapters = append(chapters, line)
	}

	return chapters
}
