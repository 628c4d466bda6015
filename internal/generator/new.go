package generator

import (
	"sync"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
)

type implGenerator struct {
	cfg     *config.Config
	apiKeys []string
	logger  logger.Logger
	model   string

	// currentKey is shared by every run going through this generator;
	// the HTTP server and the watcher can drive runs concurrently.
	keyMu      sync.Mutex
	currentKey int
}

// New creates a Generator that rotates through the supplied Gemini API keys.
func New(cfg *config.Config, apiKeys []string, log logger.Logger) Generator {
	return &implGenerator{
		cfg:     cfg,
		apiKeys: apiKeys,
		logger:  log,
		model:   cfg.Gemini.Model,
	}
}
