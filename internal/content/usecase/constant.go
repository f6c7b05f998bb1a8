package usecase

// Log prefixes
const (
	LogPrefixRun       = "internal.content.Run"
	LogPrefixResearch  = "internal.content.RunWithResearch"
	LogPrefixInstagram = "internal.content.GenerateInstagramPost"
	LogPrefixSchedule  = "internal.content.Schedule"
	LogPrefixSearch    = "internal.content.SearchHistory"
	LogPrefixHistory   = "internal.content.History"
	LogPrefixStore     = "internal.content.store"
)

// Defaults
const (
	defaultSearchLimit = 10
	defaultListLimit   = 5
)
