package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
)

// logReporter is the default Reporter; it forwards stage progress to the
// pipeline logger.
type logReporter struct {
	logger logger.Logger
}

func (r *logReporter) StageStarted(ctx context.Context, stage Stage) {
	r.logger.Info(ctx, "Stage started: %s", stage)
}

func (r *logReporter) StageCompleted(ctx context.Context, stage Stage) {
	r.logger.Info(ctx, "Stage completed: %s", stage)
}

func (r *logReporter) StageFailed(ctx context.Context, stage Stage, err error) {
	r.logger.Error(ctx, "Stage failed: %s: %v", stage, err)
}
