package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the input directory for URL drop files and local
// video files.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Drop a .url/.txt file with a video URL, or a video file (.mp4, .mov, .avi, .mkv, .webm, .m4v, .flv)")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing runs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				if !w.isCandidate(event.Name) {
					w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
					continue
				}

				w.logger.Info(ctx, "New drop detected: %s", event.Name)

				// Small delay to ensure file is fully written
				time.Sleep(500 * time.Millisecond)

				select {
				case w.semaphore <- struct{}{}:
					w.wg.Add(1)
					go func(filePath string) {
						defer w.wg.Done()
						defer func() { <-w.semaphore }()

						if err := w.handler(ctx, filePath); err != nil {
							w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
						}
					}(event.Name)
				case <-ctx.Done():
					return ctx.Err()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// IsURLFile reports whether the path is a URL drop file.
func IsURLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".url" || ext == ".txt"
}

// IsVideoFile reports whether the path has a supported video extension.
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"} {
		if ext == format {
			return true
		}
	}
	return false
}

func (w *implWatcher) isCandidate(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return IsURLFile(path) || IsVideoFile(path)
}
