package guardrails

// Log prefixes
const (
	LogPrefixValidateInput  = "internal.guardrails.ValidateInput"
	LogPrefixValidateOutput = "internal.guardrails.ValidateOutput"
	LogPrefixImageRequest   = "internal.guardrails.ValidateImageRequest"
	LogPrefixSafetyGuard    = "internal.guardrails.SafetyGuard"
	LogPrefixTopicalGuard   = "internal.guardrails.TopicalGuard"
)

// Blocked response messages
const (
	MsgBlockedContent = "I cannot help create content with profanity, offensive language, " +
		"or inappropriate material. Please rephrase your request using " +
		"professional and appropriate language."

	MsgBlockedImage = "I cannot generate images containing inappropriate, offensive, " +
		"violent, or explicit content. Please describe a professional " +
		"and appropriate image for your real estate needs."

	MsgOffTopic = "Sorry! I cannot help you with that topic. My expertise is in Real Estate. " +
		"I can help you with property listings, real estate marketing, " +
		"home buying/selling content, property descriptions, " +
		"and real estate social media posts."

	MsgBlockedOutput = "Generated content contains inappropriate material and has been blocked."
)

// Severity levels
const (
	SeverityNone   = "none"
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Configuration
const (
	DefaultSemanticThreshold = 0.6

	semanticTemperature = 0.1
	semanticMaxTokens   = 20

	logPreviewChars = 50
)

// Semantic evaluation prompts
const (
	semanticSafetyPrompt = `Analyze the following text for safety issues.

Check for:
1. Profanity or offensive language (even if disguised or misspelled)
2. Hate speech or discrimination
3. Violence or threats
4. Adult/explicit content
5. Illegal activities
6. Harmful or dangerous content

Text to analyze: "%s"

Respond with ONLY one of these:
- "SAFE" if the text is appropriate and professional
- "UNSAFE" if the text contains any of the above issues

Response:`

	semanticTopicPrompt = `Analyze if the following user request is related to Real Estate.

Real Estate topics include:
- Property buying, selling, renting, or investing
- Real estate marketing and content creation
- Property descriptions and listings
- Home improvement for selling
- Real estate market analysis
- Mortgage and financing
- Property management
- Real estate social media and blog content

User Request: "%s"

Respond with ONLY one of these:
- "ON_TOPIC" if the request is related to real estate
- "OFF_TOPIC" if the request is NOT related to real estate

Response:`
)
