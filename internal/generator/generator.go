package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate issues the three content calls one after another. Each call is
// isolated: a failed summary does not prevent hashtag or title generation.
// The returned error is non-nil only when every call failed.
func (g *implGenerator) Generate(ctx context.Context, transcript string) (*Content, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	content := &Content{
		Hashtags: []string{},
		Titles:   []string{},
	}
	failures := 0
	var lastErr error

	g.logger.Info(ctx, "Generating summary...")
	if resp, err := g.callGemini(ctx, g.buildPrompt(ctx, promptSummary, transcript)); err != nil {
		g.logger.Error(ctx, "Summary generation failed: %v", err)
		content.Summary = SummaryError
		failures++
		lastErr = err
	} else {
		content.Summary = ParseSummary(resp)
	}

	g.logger.Info(ctx, "Generating hashtags...")
	if resp, err := g.callGemini(ctx, g.buildPrompt(ctx, promptHashtags, transcript)); err != nil {
		g.logger.Error(ctx, "Hashtag generation failed: %v", err)
		failures++
		lastErr = err
	} else {
		content.Hashtags = ParseHashtags(resp)
	}

	g.logger.Info(ctx, "Generating titles...")
	if resp, err := g.callGemini(ctx, g.buildPrompt(ctx, promptTitles, transcript)); err != nil {
		g.logger.Error(ctx, "Title generation failed: %v", err)
		failures++
		lastErr = err
	} else {
		content.Titles = ParseTitles(resp)
	}

	if failures == 3 {
		return nil, fmt.Errorf("all generation calls failed: %w", lastErr)
	}

	g.logger.Info(ctx, "Content generated: %d hashtags, %d titles", len(content.Hashtags), len(content.Titles))
	return content, nil
}

// Chapters suggests timestamped chapter divisions for the transcript.
func (g *implGenerator) Chapters(ctx context.Context, transcript string) ([]string, error) {
	resp, err := g.callGemini(ctx, fmt.Sprintf(chaptersPrompt, transcript))
	if err != nil {
		return nil, fmt.Errorf("generate chapters: %w", err)
	}
	return ParseChapters(resp), nil
}

// callGemini sends one prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (g *implGenerator) callGemini(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API key configured")
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		keyIdx, key := g.currentAPIKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		// A reachable service answering without candidates is an empty
		// response, not a failure: the parsers substitute placeholders.
		return responseText(result), nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}

func (g *implGenerator) currentAPIKey() (int, string) {
	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *implGenerator) rotateKey() {
	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
