package pipeline

import (
	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/extractor"
	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
	"github.com/nguyentantai21042004/content-optimizer/internal/transcriber"
	"github.com/nguyentantai21042004/content-optimizer/internal/writer"
)

type implPipeline struct {
	cfg         *config.Config
	extractor   extractor.Extractor
	transcriber transcriber.Transcriber
	generator   generator.Generator
	writer      writer.Writer
	logger      logger.Logger
	reporter    Reporter
}

// New creates a new Pipeline instance. A nil reporter falls back to the
// logging reporter.
func New(
	cfg *config.Config,
	ex extractor.Extractor,
	tr transcriber.Transcriber,
	gen generator.Generator,
	wr writer.Writer,
	log logger.Logger,
	rep Reporter,
) Pipeline {
	if rep == nil {
		rep = &logReporter{logger: log}
	}
	return &implPipeline{
		cfg:         cfg,
		extractor:   ex,
		transcriber: tr,
		generator:   gen,
		writer:      wr,
		logger:      log,
		reporter:    rep,
	}
}
