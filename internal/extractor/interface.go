package extractor

import (
	"context"
	"time"
)

// Asset is a handle to an extracted local audio file.
type Asset struct {
	Path     string
	Size     int64
	Duration time.Duration // zero when the format has no cheap probe
}

// Extractor produces local audio files from remote videos or local files.
type Extractor interface {
	// FromURL downloads the best available audio track of the video at url
	// into the temp directory. Single attempt; the caller decides whether
	// a failed run is worth repeating.
	FromURL(ctx context.Context, url string) (*Asset, error)

	// FromFile extracts a PCM 44.1kHz stereo WAV track from a local video
	// file. Fails with a descriptive error when ffmpeg is not installed.
	FromFile(ctx context.Context, videoPath string) (*Asset, error)
}
