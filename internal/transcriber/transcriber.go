package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// whisperDoc mirrors the JSON file whisper.cpp writes with -oj / -ojf.
// Offsets are milliseconds from the start of the audio.
type whisperDoc struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Offsets struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	} `json:"offsets"`
	Text   string         `json:"text"`
	Tokens []whisperToken `json:"tokens,omitempty"`
}

type whisperToken struct {
	Text    string `json:"text"`
	Offsets struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	} `json:"offsets"`
	P float64 `json:"p"`
}

// Transcribe runs recognition in one pass and returns the cleaned flat
// transcript. Segment texts are concatenated in order with single spaces.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	doc, err := t.run(ctx, audioPath, false)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(doc.Transcription))
	for _, seg := range doc.Transcription {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}

	cleaned := CleanTranscript(strings.Join(parts, " "))
	if cleaned == "" {
		return "", fmt.Errorf("transcription produced no text for %s", audioPath)
	}

	t.logger.Info(ctx, "Transcription completed: %d segments, %d chars", len(doc.Transcription), len(cleaned))
	return cleaned, nil
}

// TranscribeDetailed preserves segment boundaries, word-level timestamps and
// the detected language instead of collapsing to flat text.
func (t *implTranscriber) TranscribeDetailed(ctx context.Context, audioPath string) (*DetailedTranscript, error) {
	doc, err := t.run(ctx, audioPath, true)
	if err != nil {
		return nil, err
	}
	return toDetailed(doc), nil
}

// run invokes whisper.cpp over the whole file and parses its JSON output.
func (t *implTranscriber) run(ctx context.Context, audioPath string, full bool) (*whisperDoc, error) {
	if err := t.ensureReady(); err != nil {
		return nil, fmt.Errorf("speech engine unavailable: %w", err)
	}

	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file unreadable: %w", err)
	}

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription (beam size %d): %s", t.cfg.Whisper.BeamSize, audioPath)

	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"-bs", strconv.Itoa(t.cfg.Whisper.BeamSize),
		"-np",
		"--output-file", outputPrefix,
	}
	if full {
		args = append(args, "-ojf")
	} else {
		args = append(args, "-oj")
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	return parseWhisperOutput(data)
}

func parseWhisperOutput(data []byte) (*whisperDoc, error) {
	var doc whisperDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}
	return &doc, nil
}

func toDetailed(doc *whisperDoc) *DetailedTranscript {
	out := &DetailedTranscript{Language: doc.Result.Language}

	for _, seg := range doc.Transcription {
		s := Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  strings.TrimSpace(seg.Text),
		}
		for _, tok := range seg.Tokens {
			word := strings.TrimSpace(tok.Text)
			// whisper emits bracketed marker tokens like [_BEG_]
			if word == "" || strings.HasPrefix(word, "[_") {
				continue
			}
			s.Words = append(s.Words, Word{
				Word:        word,
				Start:       float64(tok.Offsets.From) / 1000,
				End:         float64(tok.Offsets.To) / 1000,
				Probability: tok.P,
			})
		}
		out.Segments = append(out.Segments, s)
	}

	return out
}
