package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/content-optimizer/internal/generator"
)

// Fixed file names under the output directory. A later run overwrites them.
const (
	SummaryFile     = "video_summary.md"
	HashtagsFile    = "hashtags.txt"
	TitlesFile      = "titles.txt"
	TranscriptFile  = "transcript.txt"
	ContentFile     = "content.json"
	SummaryDocxFile = "video_summary.docx"
)

// Write serializes the run to the five bundle files plus a best-effort docx
// rendition of the summary. Every write is UTF-8; failures are collected,
// not fatal to the remaining files, and nothing is rolled back.
func (w *implWriter) Write(ctx context.Context, content *generator.Content, transcript string) error {
	if err := os.MkdirAll(w.cfg.Paths.Outputs, 0755); err != nil {
		return fmt.Errorf("create outputs dir: %w", err)
	}

	now := w.now()
	var errs []error

	write := func(name string, data []byte) {
		path := filepath.Join(w.cfg.Paths.Outputs, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			w.logger.Error(ctx, "Failed to write %s: %v", path, err)
			errs = append(errs, fmt.Errorf("write %s: %w", name, err))
			return
		}
		w.logger.Debug(ctx, "Wrote %s", path)
	}

	write(SummaryFile, w.renderMarkdown(content, now))
	write(HashtagsFile, renderHashtags(content.Hashtags))
	write(TitlesFile, renderTitles(content.Titles))
	write(TranscriptFile, renderTranscript(transcript, now))

	record, err := renderRecord(content, transcript, now)
	if err != nil {
		errs = append(errs, err)
	} else {
		write(ContentFile, record)
	}

	// Supplemental artifact; its failure never fails the bundle.
	docxPath := filepath.Join(w.cfg.Paths.Outputs, SummaryDocxFile)
	if err := summaryToDocx("Video Summary", content, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	w.logger.Info(ctx, "All outputs saved to %s", w.cfg.Paths.Outputs)
	return nil
}

func (w *implWriter) renderMarkdown(content *generator.Content, now time.Time) []byte {
	var b strings.Builder

	b.WriteString("# Video Summary\n\n")
	fmt.Fprintf(&b, "**Generated on:** %s\n\n", now.Format("2006-01-02 15:04:05"))

	if content.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", content.Summary)
	}

	if len(content.Hashtags) > 0 {
		b.WriteString("## Hashtags\n\n")
		b.WriteString(strings.Join(content.Hashtags, " "))
		b.WriteString("\n\n")
	}

	if len(content.Titles) > 0 {
		b.WriteString("## Title Suggestions\n\n")
		for i, title := range content.Titles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		}
	}

	return []byte(b.String())
}

func renderHashtags(hashtags []string) []byte {
	var b strings.Builder
	for _, tag := range hashtags {
		b.WriteString(tag)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func renderTitles(titles []string) []byte {
	var b strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	return []byte(b.String())
}

func renderTranscript(transcript string, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("Video Transcript\n")
	fmt.Fprintf(&b, "Generated on: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
	b.WriteString(transcript)
	return []byte(b.String())
}

func renderRecord(content *generator.Content, transcript string, now time.Time) ([]byte, error) {
	record := Record{
		Timestamp:  now.Format("20060102_150405"),
		Summary:    content.Summary,
		Hashtags:   content.Hashtags,
		Titles:     content.Titles,
		Transcript: transcript,
	}
	if record.Hashtags == nil {
		record.Hashtags = []string{}
	}
	if record.Titles == nil {
		record.Titles = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("encode %s: %w", ContentFile, err)
	}
	return buf.Bytes(), nil
}
