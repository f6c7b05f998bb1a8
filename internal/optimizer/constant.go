package optimizer

// Log prefixes
const (
	LogPrefixAnalyze = "internal.optimizer.Analyze"
)

// Keyword density targets, in percent of total words. Densities inside
// the band score full marks; outside it the score decays.
const (
	minTargetDensity = 0.5
	maxTargetDensity = 3.0
)

// Structure targets for long-form content.
const (
	minHeadings          = 3
	maxParagraphWords    = 120
	minParagraphCount    = 4
	readabilityFloor     = 30.0 // below this Flesch score the text is graduate-level dense
	readabilityIdealLow  = 50.0
	readabilityIdealHigh = 70.0
)

// Score weights. The three components sum to 100.
const (
	keywordWeight     = 30
	readabilityWeight = 40
	structureWeight   = 30
)
