package generator

// Log prefixes
const (
	LogPrefixResearch    = "internal.generator.Research"
	LogPrefixBlog        = "internal.generator.Blog"
	LogPrefixLinkedIn    = "internal.generator.LinkedIn"
	LogPrefixInstagram   = "internal.generator.Instagram"
	LogPrefixImage       = "internal.generator.Image"
	LogPrefixStrategy    = "internal.generator.Strategy"
	LogPrefixGeneral     = "internal.generator.General"
	LogPrefixImagePrompt = "internal.generator.ImagePrompt"
)

// Generation parameters
const (
	defaultTemperature = 0.7
	factualTemperature = 0.3
	promptTemperature  = 0.6

	longFormMaxTokens = 4096
	postMaxTokens     = 1024
	promptMaxTokens   = 500
	analysisMaxTokens = 3000
)

// Aspect ratios handed to the image provider manager.
const (
	AspectBlogHeader = "16:9"
	AspectSquare     = "1:1"
)

// Caption limits for the social post generator.
const (
	captionMaxWords = 150
	minHashtagCount = 6
)

// searchResultLimit caps how many web results feed the research analysis.
const searchResultLimit = 10

// System prompts. Each writer generator sends one of these as the system
// instruction and builds a per-request user prompt on top.
const (
	systemPromptResearch = `You are an expert research analyst specializing in comprehensive web research and analysis. Synthesize findings into clear, structured reports: executive summary, key findings, supporting data, and source references. Focus on credible, recent information and clearly distinguish facts from opinions.`

	systemPromptBlog = `You are an expert SEO content writer creating high-quality, search-optimized blog posts. Structure articles with proper markdown headings (one # title, ## sections), incorporate keywords naturally, keep paragraphs short and scannable, and end with a strong conclusion and call-to-action. Write in a professional tone for real estate marketing.`

	systemPromptLinkedIn = `You are a professional LinkedIn content writer for the real estate industry. Create thought-leadership posts that open with a strong hook, deliver 3-5 concise insights, invite discussion with a closing question, and include 3-5 relevant hashtags. Keep posts under 300 words.`

	systemPromptInstagram = `You are a social media expert for real estate marketing. Create engaging, scroll-stopping Instagram captions: an attention-grabbing hook with 1-2 emojis, 2-3 sentences highlighting benefits and lifestyle, a clear call-to-action, and 20-30 relevant hashtags separated from the caption by a blank line. Caption text must stay under 150 words excluding hashtags.`

	systemPromptStrategy = `You are a senior content strategist for real estate businesses. Produce actionable content strategies: goals, audience definition, channel mix, content pillars, a cadence plan, and success metrics. Use markdown headings and bullet lists; be concrete rather than generic.`

	systemPromptGeneral = `You are a knowledgeable real estate assistant. Answer questions clearly and concisely, with practical guidance grounded in real estate practice. Use markdown formatting when it improves readability.`

	systemPromptImagePrompt = `You are an expert at writing image generation prompts for real estate marketing. Produce detailed scene descriptions covering subject, composition, lighting, and atmosphere in a photorealistic professional photography style. Never include text, logos, or watermarks in the description.`
)

// User prompt templates.
const (
	blogPromptTemplate = `Write a comprehensive, SEO-optimized blog post about: "%s"

Target Specifications:
- Word Count: Approximately %d words
- Tone: professional
- Target Audience: home buyers, sellers, and real estate professionals

Structure Requirements:
- Start with a single markdown H1 title line ("# ...")
- Use ## section headings and short, scannable paragraphs
- Include bullet points or numbered lists where they aid readability
- End with a conclusion and a call-to-action`

	blogResearchContextTemplate = `

Use the following research findings as factual grounding for the post:

%s`

	linkedinPromptTemplate = `Create a professional LinkedIn post about: "%s"

Requirements:
- Open with a hook line that stops the scroll
- Share 3-5 concise, concrete insights
- Close with a question that invites discussion
- Add 3-5 relevant hashtags on the final line
- Stay under 300 words`

	captionPromptTemplate = `Create a SHORT, engaging Instagram caption for the following real estate content:

**Content Description:** %s
%s
**STRICT REQUIREMENTS:**
1. Caption text MUST be %d words or LESS (excluding hashtags)
2. Start with an attention-grabbing hook (use 1-2 emojis)
3. Include 2-3 sentences highlighting key benefits
4. End with a clear call-to-action
5. MUST include 20-30 relevant hashtags at the end, separated from the caption by a blank line`

	strategyPromptTemplate = `Create a content strategy for: "%s"

Deliver a markdown document with these sections:
## Goals
## Target Audience
## Content Pillars
## Channel Mix
## Publishing Cadence
## Success Metrics

Be specific and actionable for a real estate business.`

	researchAnalysisTemplate = `Analyze the following research content about "%s":

%s

Provide a comprehensive analysis including:

1. EXECUTIVE SUMMARY (2-3 sentences)
2. KEY FINDINGS (5-7 bullet points of the most important insights)
3. SUPPORTING DATA (relevant statistics, facts, or figures)
4. RELATED TOPICS (3-5 related areas worth exploring)

Be thorough but concise. Focus on actionable insights.`

	researchFallbackTemplate = `As a research expert, provide comprehensive information about: "%s"

Include:
1. Key facts and information
2. Recent developments or trends
3. Important statistics or data points
4. Relevant context and background

Format your response as a detailed research brief.`

	imagePromptFromSummaryTemplate = `Create a detailed image generation prompt for a real estate header image.

Title: %s
Summary: %s

Requirements:
- Style: professional real estate photography
- Aspect Ratio: %s
- Focus on visual elements that represent the topic
- Photorealistic, high quality, professional
- No text, logos, or watermarks

Generate ONLY the image prompt, nothing else. The prompt should be 2-3 sentences describing the scene in detail.`

	imagePromptOptimizeTemplate = `Transform this image request into an optimized image generation prompt:

User Request: "%s"

Create a detailed prompt that covers:
1. Main subject and composition
2. Lighting and color palette
3. Background and environment
4. Mood and atmosphere

Important Guidelines:
- Be specific and descriptive, photorealistic professional real estate photography
- Avoid text in images
- Make it appropriate for professional marketing use

Provide ONLY the optimized prompt, no explanation.`
)

// fallbackHashtags is appended when the model forgets to include any.
const fallbackHashtags = "#realestate #realtor #dreamhome #property #househunting " +
	"#home #luxuryrealestate #homesweethome #realestateagent #forsale " +
	"#newhome #investment #realtorlife #housegoals #homebuyers " +
	"#realestateinvesting #listing #openhouse #homedesign #interiordesign"
