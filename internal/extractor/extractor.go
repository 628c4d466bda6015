package extractor

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
)

// TempBaseName derives the temp-file base name for a URL. The name is a
// hash of the URL reduced mod 10000, so two concurrent runs on the same
// URL collide on the same file. Known limitation.
func TempBaseName(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("audio_ytdlp_%d", h.Sum64()%10000)
}

// FromURL downloads the best-available audio stream via yt-dlp into the temp
// directory, then rescans it for the produced file: yt-dlp picks the final
// extension, so the output template only fixes the base name.
func (e *implExtractor) FromURL(ctx context.Context, url string) (*Asset, error) {
	if url == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}

	if err := os.MkdirAll(e.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	base := TempBaseName(url)
	template := filepath.Join(e.cfg.Paths.Temp, base+".%(ext)s")

	e.logger.Info(ctx, "Extracting audio: %s", url)

	args := []string{
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", e.cfg.YtDlp.AudioFormat,
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"-o", template,
		url,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.YtDlp.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("yt-dlp download: %w", err)
	}

	path, err := e.findDownloaded(base)
	if err != nil {
		return nil, err
	}

	asset, err := e.probe(ctx, path)
	if err != nil {
		return nil, err
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s (%d bytes)", asset.Path, asset.Size)
	return asset, nil
}

// findDownloaded locates the file yt-dlp wrote for the given base name.
func (e *implExtractor) findDownloaded(base string) (string, error) {
	entries, err := os.ReadDir(e.cfg.Paths.Temp)
	if err != nil {
		return "", fmt.Errorf("scan temp dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), base+".") {
			return filepath.Join(e.cfg.Paths.Temp, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("no audio file produced for base name %s", base)
}

// probe verifies the file is non-empty and, for mp3, walks its frames for a
// duration estimate.
func (e *implExtractor) probe(ctx context.Context, path string) (*Asset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat audio file: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("audio file %s is empty", path)
	}

	asset := &Asset{Path: path, Size: info.Size()}

	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		dur, err := mp3Duration(path)
		if err != nil {
			e.logger.Warn(ctx, "Failed to probe mp3 duration for %s: %v", path, err)
		} else {
			asset.Duration = dur
			e.logger.Debug(ctx, "Audio duration: %s", dur)
		}
	}

	return asset, nil
}
