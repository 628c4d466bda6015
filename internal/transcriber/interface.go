package transcriber

import "context"

// Word is a single recognized word with timing and confidence.
type Word struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// Segment is a time-bounded span of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// DetailedTranscript keeps the per-segment structure the flat path
// collapses away. Used by advanced flows only.
type DetailedTranscript struct {
	Segments            []Segment `json:"segments"`
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability"`
}

// Transcriber converts audio files to text.
type Transcriber interface {
	// Transcribe runs recognition over the whole file and returns the
	// cleaned flat transcript. Empty results are an error.
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// TranscribeDetailed preserves segment and word-level timestamps.
	TranscribeDetailed(ctx context.Context, audioPath string) (*DetailedTranscript, error)
}
