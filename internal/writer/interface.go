package writer

import (
	"context"

	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
)

// Record is the canonical machine-readable superset of the other output
// files, serialized to content.json.
type Record struct {
	Timestamp  string   `json:"timestamp"`
	Summary    string   `json:"summary"`
	Hashtags   []string `json:"hashtags"`
	Titles     []string `json:"titles"`
	Transcript string   `json:"transcript"`
}

// Writer serializes a generation result to the output directory.
type Writer interface {
	// Write produces the full output bundle. File writes are independent:
	// a failed write is collected into the returned error but does not
	// stop or roll back the others.
	Write(ctx context.Context, content *generator.Content, transcript string) error
}
