package generator

import "context"

// Content is the structured result of one generation run. Any field may be
// empty without invalidating the others; partial success is allowed.
type Content struct {
	Summary  string   `json:"summary"`
	Hashtags []string `json:"hashtags"`
	Titles   []string `json:"titles"`
}

// Generator turns a transcript into summary, hashtags and title suggestions.
type Generator interface {
	// Generate issues the three generation calls independently. It fails
	// only when all three calls fail; individual failures degrade to the
	// field's empty or placeholder value.
	Generate(ctx context.Context, transcript string) (*Content, error)

	// Chapters suggests timestamped chapter divisions. Not part of the
	// default Content record.
	Chapters(ctx context.Context, transcript string) ([]string, error)
}
