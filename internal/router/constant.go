package router

// Log prefixes
const (
	LogPrefixRoute = "internal.router.Route"
)

// Tier confidences
const (
	ConfidencePattern = 0.9
	ConfidenceHistory = 0.6
	ConfidenceDefault = 0.5

	// Keyword-tier confidence grows with the match count, capped.
	ConfidenceKeywordBase = 0.3
	ConfidenceKeywordStep = 0.1
	ConfidenceKeywordCap  = 0.8
)

// Reasoning messages
const (
	ReasonPatternMatch   = "Matched intent pattern"
	ReasonKeywordMatch   = "Matched %d keywords"
	ReasonHistoryContext = "Inferred from conversation context"
	ReasonDefault        = "No specific intent detected, defaulting to general assistance"
)

// History fallback configuration
const (
	historyWindow          = 3
	historyKeywordsPerType = 5
)

// Handler names
const (
	HandlerResearch  = "research_agent"
	HandlerBlog      = "blog_writer_agent"
	HandlerLinkedIn  = "linkedin_writer_agent"
	HandlerInstagram = "instagram_writer_agent"
	HandlerImage     = "image_generator_agent"
	HandlerStrategy  = "content_strategist_agent"
	HandlerGeneral   = "query_handler_agent"
)
