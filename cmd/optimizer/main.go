package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/extractor"
	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
	"github.com/nguyentantai21042004/content-optimizer/internal/pipeline"
	"github.com/nguyentantai21042004/content-optimizer/internal/server"
	"github.com/nguyentantai21042004/content-optimizer/internal/transcriber"
	"github.com/nguyentantai21042004/content-optimizer/internal/watcher"
	"github.com/nguyentantai21042004/content-optimizer/internal/writer"
	"github.com/nguyentantai21042004/content-optimizer/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Content Optimizer Pipeline")
	log.Info(ctx, "========================================")

	apiKeys := config.GeminiAPIKeys()
	if len(apiKeys) == 0 {
		log.Warn(ctx, "No GEMINI_API_KEY set; content generation will fail")
	} else {
		log.Info(ctx, "Gemini keys configured: %d", len(apiKeys))
	}

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	ex := extractor.New(cfg, exec, log)
	tr := transcriber.New(cfg, exec, log)
	gen := generator.New(cfg, apiKeys, log)
	wr := writer.New(cfg, log)
	pipe := pipeline.New(cfg, ex, tr, gen, wr, log, nil)

	// Create watcher for the drop folder
	w, err := watcher.New(cfg.Paths.Input, dropHandler(pipe, log), log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()
	go func() {
		if err := server.New(cfg, pipe, log).Start(ctx); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Content Optimizer is ready!")
	log.Info(ctx, "HTTP:     POST http://localhost:%d/process", cfg.Server.Port)
	log.Info(ctx, "Drop dir: %s", cfg.Paths.Input)
	log.Info(ctx, "Outputs:  %s", cfg.Paths.Outputs)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Service error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Content Optimizer stopped")
}

// dropHandler routes drop-folder files: URL files trigger a download run,
// video files go through the local-extraction path. Handled drop files are
// removed afterwards.
func dropHandler(pipe pipeline.Pipeline, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		var err error
		switch {
		case watcher.IsURLFile(filePath):
			var url string
			url, err = readDroppedURL(filePath)
			if err == nil {
				_, err = pipe.Run(ctx, url)
			}
		case watcher.IsVideoFile(filePath):
			_, err = pipe.RunFile(ctx, filePath)
		default:
			return nil
		}

		if err != nil {
			return err
		}

		if rmErr := os.Remove(filePath); rmErr != nil {
			log.Warn(ctx, "Failed to remove drop file %s: %v", filePath, rmErr)
		}
		return nil
	}
}

// readDroppedURL reads the first non-empty line of a URL drop file.
func readDroppedURL(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open drop file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read drop file: %w", err)
	}
	return "", fmt.Errorf("drop file %s contains no URL", path)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Temp,
		cfg.Paths.Outputs,
		cfg.Paths.Prompts,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
