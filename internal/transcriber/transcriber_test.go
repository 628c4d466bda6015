package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
)

const whisperJSON = `{
  "result": { "language": "en" },
  "transcription": [
    {
      "offsets": { "from": 0, "to": 1500 },
      "text": " hello um",
      "tokens": [
        { "text": "[_BEG_]", "offsets": { "from": 0, "to": 0 }, "p": 0.5 },
        { "text": " hello", "offsets": { "from": 0, "to": 800 }, "p": 0.97 },
        { "text": " um", "offsets": { "from": 800, "to": 1500 }, "p": 0.42 }
      ]
    },
    {
      "offsets": { "from": 1500, "to": 2400 },
      "text": " world",
      "tokens": [
        { "text": " world", "offsets": { "from": 1500, "to": 2400 }, "p": 0.95 }
      ]
    }
  ]
}`

type fakeExecutor struct {
	run         func(name string, args ...string) (string, error)
	lookPathErr error
	lookups     int
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.run(name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.run(name, args...)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	f.lookups++
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + name, nil
}

func testSetup(t *testing.T, exec *fakeExecutor) (Transcriber, string) {
	t.Helper()

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.bin")
	if err := os.WriteFile(modelPath, []byte("weights"), 0644); err != nil {
		t.Fatal(err)
	}
	audioPath := filepath.Join(dir, "audio.mp3")
	if err := os.WriteFile(audioPath, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Whisper: config.WhisperConfig{ModelPath: modelPath, BinaryPath: "whisper"},
		Paths:   config.PathsConfig{Outputs: dir},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	return New(cfg, exec, logger.New("error")), audioPath
}

// whisperFake answers like whisper.cpp: it writes <prefix>.json next to the
// audio file.
func whisperFake(t *testing.T) *fakeExecutor {
	t.Helper()
	return &fakeExecutor{run: func(name string, args ...string) (string, error) {
		var prefix string
		for i, a := range args {
			if a == "--output-file" {
				prefix = args[i+1]
			}
		}
		return "", os.WriteFile(prefix+".json", []byte(whisperJSON), 0644)
	}}
}

func TestTranscribe(t *testing.T) {
	tr, audioPath := testSetup(t, whisperFake(t))

	got, err := tr.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "Hello world" {
		t.Errorf("Transcribe() = %q, want %q", got, "Hello world")
	}
}

func TestTranscribeDetailed(t *testing.T) {
	tr, audioPath := testSetup(t, whisperFake(t))

	got, err := tr.TranscribeDetailed(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("TranscribeDetailed() error = %v", err)
	}

	if got.Language != "en" {
		t.Errorf("Language = %q, want en", got.Language)
	}
	if len(got.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(got.Segments))
	}

	first := got.Segments[0]
	if first.Start != 0 || first.End != 1.5 {
		t.Errorf("segment times = %v..%v, want 0..1.5", first.Start, first.End)
	}
	if len(first.Words) != 2 {
		t.Fatalf("got %d words, want 2 (marker token dropped)", len(first.Words))
	}
	if first.Words[0].Word != "hello" || first.Words[0].Probability != 0.97 {
		t.Errorf("first word = %+v", first.Words[0])
	}
}

func TestTranscribeEmptyResult(t *testing.T) {
	exec := &fakeExecutor{run: func(name string, args ...string) (string, error) {
		var prefix string
		for i, a := range args {
			if a == "--output-file" {
				prefix = args[i+1]
			}
		}
		return "", os.WriteFile(prefix+".json", []byte(`{"result":{"language":"en"},"transcription":[]}`), 0644)
	}}
	tr, audioPath := testSetup(t, exec)

	if _, err := tr.Transcribe(context.Background(), audioPath); err == nil {
		t.Fatal("Transcribe() should fail on an empty transcription")
	}
}

func TestTranscribeMissingAudio(t *testing.T) {
	tr, _ := testSetup(t, whisperFake(t))

	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil || !strings.Contains(err.Error(), "unreadable") {
		t.Fatalf("Transcribe() error = %v, want unreadable-audio error", err)
	}
}

func TestEngineFailureIsCached(t *testing.T) {
	exec := &fakeExecutor{
		run:         func(name string, args ...string) (string, error) { return "", nil },
		lookPathErr: fmt.Errorf("executable file not found"),
	}
	tr, audioPath := testSetup(t, exec)

	for range 3 {
		if _, err := tr.Transcribe(context.Background(), audioPath); err == nil {
			t.Fatal("Transcribe() should fail when the engine is unavailable")
		}
	}
	if exec.lookups != 1 {
		t.Errorf("engine probed %d times, want 1 (failure must be cached)", exec.lookups)
	}
}

func TestParseWhisperOutputInvalid(t *testing.T) {
	if _, err := parseWhisperOutput([]byte("not json")); err == nil {
		t.Fatal("parseWhisperOutput() should reject invalid JSON")
	}
}
