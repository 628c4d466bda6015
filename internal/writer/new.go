package writer

import (
	"time"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
)

type implWriter struct {
	cfg    *config.Config
	logger logger.Logger
	now    func() time.Time
}

// New creates a new Writer instance
func New(cfg *config.Config, log logger.Logger) Writer {
	return &implWriter{
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}
