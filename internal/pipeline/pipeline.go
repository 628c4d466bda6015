package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/content-optimizer/internal/extractor"
)

// Run executes the full pipeline for a video URL: validate, extract,
// transcribe, generate, write. The first failing stage halts the run; the
// temporary audio file is deleted afterwards in all cases.
func (p *implPipeline) Run(ctx context.Context, url string) (*Result, error) {
	p.reporter.StageStarted(ctx, StageValidation)
	if !IsVideoURL(url) {
		err := &StageError{Stage: StageValidation, Err: fmt.Errorf("not a recognized video URL: %q", url)}
		p.reporter.StageFailed(ctx, StageValidation, err.Err)
		return nil, err
	}
	p.reporter.StageCompleted(ctx, StageValidation)

	return p.run(ctx, url, func(ctx context.Context) (*extractor.Asset, error) {
		return p.extractor.FromURL(ctx, url)
	})
}

// RunFile executes the pipeline for a local video file via the ffmpeg
// extraction path. No URL validation applies.
func (p *implPipeline) RunFile(ctx context.Context, videoPath string) (*Result, error) {
	return p.run(ctx, videoPath, func(ctx context.Context) (*extractor.Asset, error) {
		return p.extractor.FromFile(ctx, videoPath)
	})
}

func (p *implPipeline) run(ctx context.Context, source string, extract func(context.Context) (*extractor.Asset, error)) (*Result, error) {
	started := time.Now()
	runID := uuid.New().String()
	p.logger.Info(ctx, "[%s] Starting run: %s", runID, source)

	p.reporter.StageStarted(ctx, StageExtraction)
	asset, err := extract(ctx)
	if err != nil {
		p.reporter.StageFailed(ctx, StageExtraction, err)
		return nil, &StageError{Stage: StageExtraction, Err: err}
	}
	defer p.removeAsset(ctx, asset)
	p.reporter.StageCompleted(ctx, StageExtraction)

	p.reporter.StageStarted(ctx, StageTranscription)
	transcript, err := p.transcriber.Transcribe(ctx, asset.Path)
	if err != nil {
		p.reporter.StageFailed(ctx, StageTranscription, err)
		return nil, &StageError{Stage: StageTranscription, Err: err}
	}
	p.reporter.StageCompleted(ctx, StageTranscription)

	p.reporter.StageStarted(ctx, StageGeneration)
	content, err := p.generator.Generate(ctx, transcript)
	if err != nil {
		p.reporter.StageFailed(ctx, StageGeneration, err)
		return nil, &StageError{Stage: StageGeneration, Err: err}
	}
	p.reporter.StageCompleted(ctx, StageGeneration)

	// Write failures are reported but do not fail the run: files already
	// written stay, and the caller still gets the generated content.
	p.reporter.StageStarted(ctx, StageWriting)
	if err := p.writer.Write(ctx, content, transcript); err != nil {
		p.reporter.StageFailed(ctx, StageWriting, err)
	} else {
		p.reporter.StageCompleted(ctx, StageWriting)
	}

	result := &Result{
		RunID:      runID,
		Timestamp:  started,
		Source:     source,
		Content:    content,
		Transcript: transcript,
		Elapsed:    time.Since(started),
	}

	p.logger.Info(ctx, "[%s] Run completed in %s", runID, result.Elapsed)
	return result, nil
}

// removeAsset deletes the temporary audio file after the run. No retention.
func (p *implPipeline) removeAsset(ctx context.Context, asset *extractor.Asset) {
	if err := os.Remove(asset.Path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to remove temp audio %s: %v", asset.Path, err)
	} else {
		p.logger.Debug(ctx, "Removed temp audio: %s", asset.Path)
	}
}
