package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
)

// Stage names one step of the linear pipeline.
type Stage string

const (
	StageValidation    Stage = "validation"
	StageExtraction    Stage = "extraction"
	StageTranscription Stage = "transcription"
	StageGeneration    Stage = "generation"
	StageWriting       Stage = "writing"
)

// StageError identifies which stage halted the run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the structured outcome of one completed run.
type Result struct {
	RunID      string             `json:"run_id"`
	Timestamp  time.Time          `json:"timestamp"`
	Source     string             `json:"source"`
	Content    *generator.Content `json:"content"`
	Transcript string             `json:"transcript"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
}

// Reporter receives stage progress. It exists so the pipeline can be
// driven without a UI; the default implementation logs.
type Reporter interface {
	StageStarted(ctx context.Context, stage Stage)
	StageCompleted(ctx context.Context, stage Stage)
	StageFailed(ctx context.Context, stage Stage, err error)
}

// Pipeline executes the full URL-to-files workflow.
type Pipeline interface {
	// Run processes a video URL through all stages, blocking until
	// completion or the first stage failure.
	Run(ctx context.Context, url string) (*Result, error)

	// RunFile processes a local video file instead of a URL.
	RunFile(ctx context.Context, videoPath string) (*Result, error)
}
