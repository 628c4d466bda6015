package writer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/content-optimizer/internal/config"
	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
	"github.com/nguyentantai21042004/content-optimizer/internal/logger"
)

func testWriter(t *testing.T) (*implWriter, string) {
	t.Helper()
	outputs := t.TempDir()
	cfg := &config.Config{
		Whisper: config.WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper"},
		Paths:   config.PathsConfig{Outputs: outputs},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	w := New(cfg, logger.New("error")).(*implWriter)
	w.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	}
	return w, outputs
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestWriteFullBundle(t *testing.T) {
	w, dir := testWriter(t)
	content := &generator.Content{
		Summary:  "A short video.",
		Hashtags: []string{"#demo", "#test"},
		Titles:   []string{"Demo Title", "Test Title"},
	}

	if err := w.Write(context.Background(), content, "Hello world"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	md := readOutput(t, dir, SummaryFile)
	for _, want := range []string{
		"# Video Summary",
		"**Generated on:** 2025-06-01 12:30:00",
		"A short video.",
		"## Hashtags",
		"#demo #test",
		"## Title Suggestions",
		"1. Demo Title",
		"2. Test Title",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if got := readOutput(t, dir, HashtagsFile); got != "#demo\n#test\n" {
		t.Errorf("hashtags.txt = %q", got)
	}
	if got := readOutput(t, dir, TitlesFile); got != "1. Demo Title\n2. Test Title\n" {
		t.Errorf("titles.txt = %q", got)
	}

	tx := readOutput(t, dir, TranscriptFile)
	if !strings.HasPrefix(tx, "Video Transcript\nGenerated on: 2025-06-01 12:30:00\n"+strings.Repeat("=", 50)+"\n\n") {
		t.Errorf("transcript.txt header wrong:\n%s", tx)
	}
	if !strings.HasSuffix(tx, "Hello world") {
		t.Errorf("transcript.txt body wrong:\n%s", tx)
	}

	var record Record
	if err := json.Unmarshal([]byte(readOutput(t, dir, ContentFile)), &record); err != nil {
		t.Fatalf("content.json invalid: %v", err)
	}
	want := Record{
		Timestamp:  "20250601_123000",
		Summary:    "A short video.",
		Hashtags:   []string{"#demo", "#test"},
		Titles:     []string{"Demo Title", "Test Title"},
		Transcript: "Hello world",
	}
	if !reflect.DeepEqual(record, want) {
		t.Errorf("content.json = %+v, want %+v", record, want)
	}
}

func TestWriteEmptyContent(t *testing.T) {
	w, dir := testWriter(t)
	content := &generator.Content{Summary: "", Hashtags: []string{}, Titles: []string{}}

	if err := w.Write(context.Background(), content, "Some transcript"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// All five files exist even with empty content.
	for _, name := range []string{SummaryFile, HashtagsFile, TitlesFile, TranscriptFile, ContentFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	md := readOutput(t, dir, SummaryFile)
	if strings.Contains(md, "## Hashtags") || strings.Contains(md, "## Title Suggestions") {
		t.Errorf("markdown should omit empty sections:\n%s", md)
	}

	if got := readOutput(t, dir, HashtagsFile); got != "" {
		t.Errorf("hashtags.txt = %q, want empty", got)
	}
	if got := readOutput(t, dir, TitlesFile); got != "" {
		t.Errorf("titles.txt = %q, want empty", got)
	}

	var record Record
	if err := json.Unmarshal([]byte(readOutput(t, dir, ContentFile)), &record); err != nil {
		t.Fatalf("content.json invalid: %v", err)
	}
	if record.Hashtags == nil || record.Titles == nil {
		t.Error("content.json must serialize empty lists, not null")
	}
}

func TestWriteNoHTMLEscaping(t *testing.T) {
	w, dir := testWriter(t)
	content := &generator.Content{Summary: "Ampersands & <brackets>", Hashtags: []string{}, Titles: []string{}}

	if err := w.Write(context.Background(), content, "t"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	raw := readOutput(t, dir, ContentFile)
	if strings.Contains(raw, `\u003c`) || strings.Contains(raw, `\u0026`) {
		t.Errorf("content.json should not HTML-escape: %s", raw)
	}
}

func TestWriteOverwritesPreviousRun(t *testing.T) {
	w, dir := testWriter(t)

	first := &generator.Content{Summary: "first", Hashtags: []string{"#a"}, Titles: []string{"A"}}
	if err := w.Write(context.Background(), first, "one"); err != nil {
		t.Fatal(err)
	}

	second := &generator.Content{Summary: "second", Hashtags: []string{"#b"}, Titles: []string{"B"}}
	if err := w.Write(context.Background(), second, "two"); err != nil {
		t.Fatal(err)
	}

	if got := readOutput(t, dir, HashtagsFile); got != "#b\n" {
		t.Errorf("hashtags.txt = %q, want second run's content", got)
	}
}
