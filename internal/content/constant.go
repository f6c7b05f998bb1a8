package content

// DefaultSessionID keys requests that arrive without a session.
const DefaultSessionID = "default"

// BlockedContentType is the pseudo content type reported when guardrails
// reject a request.
const BlockedContentType = "guardrails_blocked"

// Prompt templates for the research-first composite flow.
const (
	ResearchPromptTemplate = "Research: %s"

	BlogFromResearchTemplate     = "Write a blog post about: %s"
	LinkedInFromResearchTemplate = "Create a LinkedIn post about: %s"
	StrategyFromResearchTemplate = "Create a content strategy for: %s"
)

// Error message templates surfaced to the caller. The raw cause is kept
// in the logs; these strings also land in the session transcript.
const (
	MsgRoutingFailed   = "Routing failed: %v"
	MsgHandlerFailed   = "%s failed: %v"
	MsgWorkflowFailure = "An error occurred: %v"
)
