package generator

import (
	"context"
	"regexp"
	"strings"

	"realty-content-engine/pkg/llmprovider"
)

// generateText runs one LLM call and returns the concatenated response
// text. A nil manager is reported as ErrLLMUnavailable so callers can
// degrade instead of dereferencing nothing.
func generateText(ctx context.Context, llm *llmprovider.Manager, system, prompt string, temperature float64, maxTokens int) (string, error) {
	if llm == nil {
		return "", ErrLLMUnavailable
	}

	req := llmprovider.NewTextRequest(prompt, temperature, maxTokens)
	if system != "" {
		req.SystemInstruction = &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: system}},
		}
	}

	resp, err := llm.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyGeneration
	}
	return text, nil
}

var (
	headingPattern   = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	metaDescPattern  = regexp.MustCompile(`(?i)\*\*Meta Description[:\s]*\*\*\s*(.+)`)
	markdownSymbols  = regexp.MustCompile("[*_`#>]")
	whitespaceRunsRe = regexp.MustCompile(`\s+`)
)

// extractTitle pulls the first H1 heading out of markdown content.
// When no heading exists the raw fallback is returned instead.
func extractTitle(content, fallback string) string {
	if m := headingPattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

// extractSummary finds a short abstract for the content: the meta
// description when present, otherwise the first substantial paragraph
// after the title.
func extractSummary(content, fallback string) string {
	if m := metaDescPattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}

	paragraphs := strings.Split(content, "\n\n")
	for i, para := range paragraphs {
		if i == 0 {
			continue // skip the title block
		}
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") {
			continue
		}
		if len(para) > 50 {
			if len(para) > 300 {
				return para[:300]
			}
			return para
		}
	}
	return fallback
}

// plainText strips markdown decoration and collapses whitespace, used
// when content feeds a prompt rather than a renderer.
func plainText(s string) string {
	s = markdownSymbols.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRunsRe.ReplaceAllString(s, " "))
}

// wordCount counts whitespace-separated tokens.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// truncatePreview shortens a string for log lines.
func truncatePreview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
