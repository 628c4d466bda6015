package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	promptSummary  = "summary"
	promptHashtags = "hashtags"
	promptTitles   = "titles"
)

var builtinPrompts = map[string]string{
	promptSummary: `Given the following transcript of a YouTube video, write a concise summary in 3-4 sentences.

Transcript:`,
	promptHashtags: `Extract the top 10 SEO-optimized hashtags from this YouTube video transcript. Focus on relevancy, search trends, and audience discoverability. Return only the hashtags, one per line, with # prefix.

Transcript:`,
	promptTitles: `Generate 5 catchy, YouTube-optimized video titles based on this transcript. Include curiosity, clarity, and trending language. Make them engaging and click-worthy.

Transcript:`,
}

// buildPrompt loads the template for kind from the prompts directory,
// falling back to the built-in default, and interpolates the transcript
// verbatim.
func (g *implGenerator) buildPrompt(ctx context.Context, kind, transcript string) string {
	template := builtinPrompts[kind]

	path := filepath.Join(g.cfg.Paths.Prompts, kind+"_prompt.txt")
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		template = string(data)
	} else if err != nil && !os.IsNotExist(err) {
		g.logger.Warn(ctx, "Failed to read prompt template %s, using built-in: %v", path, err)
	}

	return fmt.Sprintf("%s\n\"\"\"\n%s\n\"\"\"", template, transcript)
}

const chaptersPrompt = `Based on this video transcript, suggest 5-8 chapter divisions with descriptive titles. Format as:

0:00 - Introduction
2:30 - Main Topic
5:15 - Key Points
etc.

Transcript:
"""%s"""`
