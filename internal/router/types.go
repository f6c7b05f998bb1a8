package router

import "realty-content-engine/internal/model"

// routingPriority is the order content types are tested in. First match
// wins within every tier, so the order is load-bearing: the social caption
// type outranks everything, then research, long-form, professional,
// visual, strategy.
var routingPriority = []model.ContentType{
	model.ContentTypeInstagram,
	model.ContentTypeResearch,
	model.ContentTypeBlog,
	model.ContentTypeLinkedIn,
	model.ContentTypeImage,
	model.ContentTypeStrategy,
}

// contentKeywords associates each routable type with its signal words.
// Scoring is substring containment over the lowercased input.
var contentKeywords = map[model.ContentType][]string{
	model.ContentTypeInstagram: {
		"instagram",
		"insta",
		"caption",
		"hashtag",
		"hashtags",
		"reel",
		"carousel",
		"social post",
	},
	model.ContentTypeResearch: {
		"research",
		"find",
		"search",
		"look up",
		"investigate",
		"analyze",
		"study",
		"explore",
		"discover",
		"learn about",
		"what is",
		"who is",
		"how does",
		"why does",
		"explain",
		"information",
		"data",
		"facts",
		"statistics",
		"trends",
	},
	model.ContentTypeBlog: {
		"blog",
		"article",
		"post",
		"write",
		"content",
		"seo",
		"long-form",
		"guide",
		"tutorial",
		"how-to",
		"listicle",
		"review",
		"comparison",
		"pillar",
		"evergreen",
	},
	model.ContentTypeLinkedIn: {
		"linkedin",
		"professional",
		"network",
		"career",
		"business post",
		"thought leadership",
		"engagement",
		"social media",
		"professional network",
		"b2b",
		"corporate",
		"industry",
	},
	model.ContentTypeImage: {
		"image",
		"picture",
		"visual",
		"graphic",
		"illustration",
		"photo",
		"design",
		"create image",
		"generate image",
		"artwork",
		"banner",
		"thumbnail",
		"infographic",
	},
	model.ContentTypeStrategy: {
		"strategy",
		"plan",
		"campaign",
		"marketing",
		"content calendar",
		"roadmap",
		"outline",
		"framework",
		"approach",
		"methodology",
	},
}

// intentPatterns holds the high-confidence phrasings per type. Patterns
// are compiled case-insensitive and searched anywhere in the input.
var intentPatterns = map[model.ContentType][]string{
	model.ContentTypeInstagram: {
		`(?:write|create|generate|make) (?:a |an )?(?:instagram|insta) (?:post|caption|reel|story)\s*.*`,
		`(?:instagram|insta) (?:post|caption|content) (?:about|for|on)\s+.+`,
		`caption (?:for|about)\s+.+`,
	},
	model.ContentTypeResearch: {
		`(?:can you |please )?(?:research|find|look up|search for)\s+.+`,
		`what (?:is|are|does|do)\s+.+`,
		`tell me (?:about|more about)\s+.+`,
		`i (?:want|need) (?:to know|information) about\s+.+`,
	},
	model.ContentTypeBlog: {
		`(?:write|create|generate) (?:a |an )?(?:blog|article|post)\s+.+`,
		`(?:blog|article) (?:about|on)\s+.+`,
		`seo (?:content|article|blog)\s+.+`,
	},
	model.ContentTypeLinkedIn: {
		`(?:write|create|generate) (?:a )?linkedin (?:post|content)\s*.*`,
		`linkedin (?:post|content) (?:about|on)\s+.+`,
		`professional (?:post|content) (?:about|for)\s+.+`,
	},
	model.ContentTypeImage: {
		`(?:create|generate|make) (?:a |an )?(?:image|picture|visual|graphic)\s+.+`,
		`(?:image|picture|visual) (?:of|for|about)\s+.+`,
		`design (?:a |an )?.+`,
	},
	model.ContentTypeStrategy: {
		`(?:create|develop|build) (?:a )?(?:content )?strategy\s*.*`,
		`(?:marketing|content) plan (?:for|about)\s+.+`,
		`campaign (?:for|about)\s+.+`,
	},
}

// researchFirstTypes marks the types that benefit from a research pass
// before generation.
var researchFirstTypes = map[model.ContentType]bool{
	model.ContentTypeBlog:     true,
	model.ContentTypeLinkedIn: true,
	model.ContentTypeStrategy: true,
}

// followUps suggests what naturally comes after each content type.
var followUps = map[model.ContentType][]model.ContentType{
	model.ContentTypeResearch: {
		model.ContentTypeBlog,
		model.ContentTypeLinkedIn,
		model.ContentTypeImage,
	},
	model.ContentTypeBlog:      {model.ContentTypeLinkedIn, model.ContentTypeImage},
	model.ContentTypeLinkedIn:  {model.ContentTypeImage},
	model.ContentTypeInstagram: {model.ContentTypeImage},
	model.ContentTypeImage:     {},
	model.ContentTypeStrategy: {
		model.ContentTypeResearch,
		model.ContentTypeBlog,
		model.ContentTypeLinkedIn,
	},
	model.ContentTypeGeneral: {model.ContentTypeResearch},
}

// handlerNames maps each content type to the handler that executes it.
var handlerNames = map[model.ContentType]string{
	model.ContentTypeResearch:  HandlerResearch,
	model.ContentTypeBlog:      HandlerBlog,
	model.ContentTypeLinkedIn:  HandlerLinkedIn,
	model.ContentTypeInstagram: HandlerInstagram,
	model.ContentTypeImage:     HandlerImage,
	model.ContentTypeStrategy:  HandlerStrategy,
	model.ContentTypeGeneral:   HandlerGeneral,
}
