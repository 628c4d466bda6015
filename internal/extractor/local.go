package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FromFile extracts the audio track of a local video file with ffmpeg,
// re-encoded as PCM 16-bit, 44.1kHz, stereo WAV.
func (e *implExtractor) FromFile(ctx context.Context, videoPath string) (*Asset, error) {
	if _, err := e.executor.LookPath(e.cfg.FFmpeg.BinaryPath); err != nil {
		return nil, fmt.Errorf("ffmpeg not available, cannot extract audio from local files: %w", err)
	}

	if err := os.MkdirAll(e.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(e.cfg.Paths.Temp, name+"_extracted.wav")

	e.logger.Info(ctx, "Extracting audio from local file: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "44100",
		"-ac", "2",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("stat audio file: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("audio file %s is empty", audioPath)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return &Asset{Path: audioPath, Size: info.Size()}, nil
}
