package gemini

import "regexp"

// dataURIPattern matches inline base64 images, which blow past token
// limits and carry no useful signal for text generation.
var dataURIPattern = regexp.MustCompile(`data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/=]+`)

// SanitizeText strips inline base64 image data from prompt text and
// truncates it to MaxInputChars.
func SanitizeText(text string) string {
	sanitized := dataURIPattern.ReplaceAllString(text, ImageOmittedPlaceholder)
	if len(sanitized) > MaxInputChars {
		sanitized = sanitized[:MaxInputChars]
	}
	return sanitized
}

// EstimateTokens gives a rough token count for budgeting purposes.
func EstimateTokens(text string) int {
	return len(text) / 4
}
