package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
	"github.com/nguyentantai21042004/content-optimizer/internal/pipeline"
)

type fakePipeline struct {
	result *pipeline.Result
	err    error
}

func (f *fakePipeline) Run(ctx context.Context, url string) (*pipeline.Result, error) {
	return f.result, f.err
}

func (f *fakePipeline) RunFile(ctx context.Context, path string) (*pipeline.Result, error) {
	return f.result, f.err
}

func testServer(t *testing.T, pipe pipeline.Pipeline) *Server {
	t.Helper()
	cfg := &config.Config{
		Whisper: config.WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper"},
		Paths:   config.PathsConfig{Outputs: t.TempDir()},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return New(cfg, pipe, logger.New("error"))
}

func TestHandleProcess(t *testing.T) {
	pipe := &fakePipeline{result: &pipeline.Result{
		RunID:      "run-1",
		Content:    &generator.Content{Summary: "A short video.", Hashtags: []string{"#demo"}, Titles: []string{"T"}},
		Transcript: "Hello world",
	}}
	srv := testServer(t, pipe)

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"url":"https://youtu.be/abc"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.RunID != "run-1" || result.Transcript != "Hello world" {
		t.Errorf("result = %+v", result)
	}
}

func TestHandleProcessValidationError(t *testing.T) {
	pipe := &fakePipeline{err: &pipeline.StageError{Stage: pipeline.StageValidation, Err: context.Canceled}}
	srv := testServer(t, pipe)

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"url":"nope"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Stage != string(pipeline.StageValidation) {
		t.Errorf("stage = %q, want validation", resp.Stage)
	}
}

func TestHandleProcessStageFailure(t *testing.T) {
	pipe := &fakePipeline{err: &pipeline.StageError{Stage: pipeline.StageExtraction, Err: context.DeadlineExceeded}}
	srv := testServer(t, pipe)

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"url":"https://youtu.be/abc"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Stage != string(pipeline.StageExtraction) {
		t.Errorf("stage = %q, want extraction", resp.Stage)
	}
}

func TestHandleProcessBadRequests(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"invalid json", http.MethodPost, "{", http.StatusBadRequest},
		{"missing url", http.MethodPost, "{}", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/process", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, &fakePipeline{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
