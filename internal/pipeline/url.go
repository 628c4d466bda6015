package pipeline

import "strings"

// IsVideoURL reports whether s looks like a supported video URL. It only
// requires the watch-path or short-link marker; everything else about the
// string is left to the downloader.
func IsVideoURL(s string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(s, "youtube.com/watch") || strings.Contains(s, "youtu.be/")
}
