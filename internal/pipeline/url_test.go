package pipeline

import "testing"

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=abc123", true},
		{"short link", "https://youtu.be/abc123", true},
		{"watch url with extra params", "https://www.youtube.com/watch?v=abc123&t=10s", true},
		{"no scheme", "youtube.com/watch?v=abc123", true},
		{"empty string", "", false},
		{"plain text", "not a url", false},
		{"unrelated host", "https://vimeo.com/12345", false},
		{"channel page", "https://www.youtube.com/@somechannel", false},
		{"bare domain", "https://www.youtube.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVideoURL(tt.url); got != tt.want {
				t.Errorf("IsVideoURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
