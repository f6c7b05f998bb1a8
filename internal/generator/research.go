package generator

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
	"realty-content-engine/pkg/websearch"
)

// topicPrefixes are conversational lead-ins stripped before searching.
var topicPrefixes = []string{
	"research:",
	"research",
	"find information about",
	"look up",
	"search for",
	"tell me about",
	"what is",
	"who is",
	"learn about",
}

// ResearchGenerator performs web search plus LLM synthesis and formats a
// structured research report. Without a search provider it degrades to a
// pure LLM research brief.
type ResearchGenerator struct {
	l      pkgLog.Logger
	llm    *llmprovider.Manager
	search websearch.Provider
}

// NewResearch creates a ResearchGenerator. search may be nil.
func NewResearch(llm *llmprovider.Manager, search websearch.Provider, l pkgLog.Logger) *ResearchGenerator {
	return &ResearchGenerator{l: l, llm: llm, search: search}
}

func (g *ResearchGenerator) Name() string  { return router.HandlerResearch }
func (g *ResearchGenerator) Label() string { return "Research" }

// Execute researches the topic and returns a markdown report.
func (g *ResearchGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	topic := extractResearchTopic(in.UserInput, in.Context)

	results, questions := g.gatherSources(ctx, topic)

	analysis, err := g.analyze(ctx, topic, results)
	if err != nil {
		return Output{}, err
	}

	report := formatResearchReport(topic, analysis, results, questions)

	return Output{
		Content:     report,
		ContentType: model.ContentTypeResearch,
		Metadata: map[string]interface{}{
			"topic":        topic,
			"source_count": len(results),
			"web_search":   g.search != nil,
		},
	}, nil
}

// gatherSources runs the web search. Search failures are non-fatal: the
// report is then grounded on the model alone.
func (g *ResearchGenerator) gatherSources(ctx context.Context, topic string) ([]websearch.Result, []websearch.Question) {
	if g.search == nil {
		g.l.Infof(ctx, "%s: no search provider, using LLM-only research for %q", LogPrefixResearch, topic)
		return nil, nil
	}

	results, err := g.search.Search(ctx, websearch.Query{Text: topic, NumResults: searchResultLimit})
	if err != nil {
		g.l.Warnf(ctx, "%s: web search failed, continuing without sources: %v", LogPrefixResearch, err)
		return nil, nil
	}

	questions, err := g.search.RelatedQuestions(ctx, topic)
	if err != nil {
		g.l.Warnf(ctx, "%s: related questions lookup failed: %v", LogPrefixResearch, err)
		questions = nil
	}

	g.l.Infof(ctx, "%s: gathered %d results, %d related questions for %q",
		LogPrefixResearch, len(results), len(questions), topic)
	return results, questions
}

func (g *ResearchGenerator) analyze(ctx context.Context, topic string, results []websearch.Result) (string, error) {
	if len(results) == 0 {
		return generateText(ctx, g.llm, systemPromptResearch,
			fmt.Sprintf(researchFallbackTemplate, topic), factualTemperature, analysisMaxTokens)
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "Source %d: %s\n%s\n\n", i+1, r.Title, r.Snippet)
	}

	prompt := fmt.Sprintf(researchAnalysisTemplate, topic, sb.String())
	return generateText(ctx, g.llm, systemPromptResearch, prompt, factualTemperature, analysisMaxTokens)
}

// formatResearchReport assembles the final markdown document.
func formatResearchReport(topic, analysis string, results []websearch.Result, questions []websearch.Question) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Research Report: %s\n\n", topic)
	sb.WriteString(analysis)
	sb.WriteString("\n")

	if len(results) > 0 {
		sb.WriteString("\n## Sources\n\n")
		for i, r := range results {
			if i >= searchResultLimit {
				break
			}
			if r.URL != "" {
				fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, r.Title, r.URL)
			} else {
				fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
			}
		}
	}

	if len(questions) > 0 {
		sb.WriteString("\n## People Also Ask\n\n")
		for _, q := range questions {
			fmt.Fprintf(&sb, "- %s\n", q.Question)
		}
	}

	return sb.String()
}

// extractResearchTopic strips conversational prefixes so the search
// query carries only the subject.
func extractResearchTopic(userInput string, context map[string]interface{}) string {
	if context != nil {
		if topic, ok := context["topic"].(string); ok && topic != "" {
			return topic
		}
	}

	topic := strings.TrimSpace(strings.ToLower(userInput))
	for _, prefix := range topicPrefixes {
		if strings.HasPrefix(topic, prefix) {
			topic = strings.TrimSpace(topic[len(prefix):])
			break
		}
	}
	if topic == "" {
		return userInput
	}
	return topic
}
