package content

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/lang"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/worker"
)

// Composer drafts derivative content — a news article and an X post — from
// a finalized verdict. Generators never return errors; a failed completion
// yields a localized human-readable error string instead.
type Composer struct {
	provider      llm.Provider
	tweetMaxRunes int
	maxSources    int
	logger        *logrus.Entry
}

// NewComposer creates a new content composer
func NewComposer(provider llm.Provider, cfg model.ContentConfig, logger *logrus.Entry) *Composer {
	tweetMax := cfg.TweetMaxRunes
	if tweetMax <= 0 {
		tweetMax = 280
	}
	maxSources := cfg.MaxSources
	if maxSources <= 0 {
		maxSources = 5
	}

	return &Composer{
		provider:      provider,
		tweetMaxRunes: tweetMax,
		maxSources:    maxSources,
		logger:        logger,
	}
}

// Request is the input shared by both generators
type Request struct {
	Claim    string
	Language string
	Verdict  model.Verdict
	Evidence []model.EvidenceItem
}

// Generated holds the requested derivative content
type Generated struct {
	NewsArticle string
	XTweet      string
}

// Generate runs the requested generators. When both are requested they run
// concurrently and the join waits for both.
func (c *Composer) Generate(ctx context.Context, req Request, wantNews, wantTweet bool) Generated {
	var ops []func(ctx context.Context) (string, error)
	var assign []func(*Generated, string)

	if wantNews {
		ops = append(ops, func(ctx context.Context) (string, error) {
			return c.newsArticle(ctx, req), nil
		})
		assign = append(assign, func(g *Generated, s string) { g.NewsArticle = s })
	}
	if wantTweet {
		ops = append(ops, func(ctx context.Context) (string, error) {
			return c.xTweet(ctx, req), nil
		})
		assign = append(assign, func(g *Generated, s string) { g.XTweet = s })
	}

	var out Generated
	for i, outcome := range worker.Gather(ctx, ops) {
		assign[i](&out, outcome.Value)
	}
	return out
}

const newsTruePrompt = `You are a senior international news agency journalist writing in %s language.

Write an analytical news article in the style of international agencies using the following title and analysis.

Begin the news with the main statement or event that appeared in the analysis results, not with the phrase "verification results confirmed", and integrate the verification result within the text naturally to support the credibility of the news.

Ensure the wording is human and smooth, balanced, and based on the details mentioned in the analysis, while avoiding repetition and mechanical formulas, and mention the sources mentioned in the analysis in a natural news style if they exist.

REQUIREMENTS:
- Language: %s entirely
- Style: Professional analytical journalism
- Tone: Neutral, transparent, informative, authoritative
- Structure: News article format with structured paragraphs
- Length: 150-250 words
- Start directly with the event without geographic/agency references
- Use strong professional language and journalistic terminology`

const newsUnconfirmedPrompt = `You are a senior international news agency journalist writing in %s language.

Write a brief analytical news article in the style of international agencies using the following title and analysis.

Begin the news by referring to the circulation of the news in media or social media in an objective manner such as: "Social media platforms circulated claims stating that..." or "Reports spread claiming that...", then clarify through the verification result that the claim is unconfirmed or incorrect and there is no evidence for it.

Ensure the wording is human and smooth and based on what was mentioned in the analysis, while avoiding repetition or mechanical phrases.

REQUIREMENTS:
- Language: %s entirely
- Style: Professional analytical journalism
- Tone: Objective, transparent, informative
- Structure: News article format with structured paragraphs
- Length: 150-250 words
- Start with social media/media circulation reference
- Use professional language and journalistic terminology`

const (
	newsTemperature = 0.1
	newsMaxTokens   = 400
)

// newsArticle drafts a short agency-style article from the verdict and its
// analysis. The prompt differs for confirmed and unconfirmed claims.
func (c *Composer) newsArticle(ctx context.Context, req Request) string {
	langUpper := strings.ToUpper(req.Language)

	var system string
	if req.Verdict.State == model.VerdictTrue {
		system = fmt.Sprintf(newsTruePrompt, langUpper, langUpper)
	} else {
		system = fmt.Sprintf(newsUnconfirmedPrompt, langUpper, langUpper)
	}

	user := fmt.Sprintf(`PROVIDED DATA:
Headline: %s
Fact-check Analysis: %s

AVAILABLE SOURCES:
%s

INSTRUCTIONS:
Write a professional analytical news article based on the above data and analysis.
Follow the specific guidelines provided in the system prompt.`,
		req.Claim, req.Verdict.Talk, c.sourcesContext(req.Evidence))

	article, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: newsTemperature,
		MaxTokens:   newsMaxTokens,
	})
	if err != nil {
		c.logger.WithError(err).Warn("news article generation failed")
		return lang.NewsErrorMessage(req.Language)
	}
	return article
}

const tweetSystemPrompt = `You are a professional social media journalist and X (Twitter) content creator.

X PLATFORM REQUIREMENTS:
- Maximum 280 characters (strict limit)
- Use hashtags strategically (2-3 relevant hashtags)
- Include emojis appropriately for engagement
- Use clear, concise language
- Maintain journalistic credibility

TWEET STRUCTURE FOR FACT-CHECKING:
1. Hook: attention-grabbing opening
2. Fact: clear statement of the fact-check result
3. Context: brief explanation or key detail
4. Hashtags and emojis: strategic, relevant

LANGUAGE POLICY:
- Write ENTIRELY in %s language
- Use a professional but engaging tone
- Use appropriate emojis for the language/culture

RESPONSE FORMAT:
Generate a single, professional X tweet (max 280 characters) that clearly
states the fact-check result and maintains journalistic credibility.`

const (
	tweetTemperature = 0.3
	tweetMaxTokens   = 100
)

// xTweet drafts an X post for the verdict and hard-truncates anything the
// model produces beyond the platform ceiling.
func (c *Composer) xTweet(ctx context.Context, req Request) string {
	langUpper := strings.ToUpper(req.Language)

	user := fmt.Sprintf(`FACT-CHECK RESULT:
Claim: %s
Result: %s
Analysis: %s

SOURCES:
%d sources available

INSTRUCTIONS:
Create a professional X tweet communicating the fact-check result.
LANGUAGE: %s
CHARACTER LIMIT: %d characters maximum`,
		req.Claim, req.Verdict.Case, req.Verdict.Talk, len(req.Evidence), langUpper, c.tweetMaxRunes)

	tweet, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      fmt.Sprintf(tweetSystemPrompt, langUpper),
		User:        user,
		Temperature: tweetTemperature,
		MaxTokens:   tweetMaxTokens,
	})
	if err != nil {
		c.logger.WithError(err).Warn("tweet generation failed")
		return lang.TweetErrorMessage(req.Language)
	}

	return Truncate(tweet, c.tweetMaxRunes)
}

// Truncate enforces the platform ceiling in runes, ending a cut tweet
// with an ellipsis. Ceilings too small to fit one (< 4 runes) cut hard.
func Truncate(tweet string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(tweet) <= maxRunes {
		return tweet
	}
	runes := []rune(tweet)
	if maxRunes < 4 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// sourcesContext renders up to maxSources evidence items for the prompts
func (c *Composer) sourcesContext(evidence []model.EvidenceItem) string {
	if len(evidence) == 0 {
		return "No specific sources available for this investigation."
	}

	limit := len(evidence)
	if limit > c.maxSources {
		limit = c.maxSources
	}

	var sb strings.Builder
	for i := 0; i < limit; i++ {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Source %d:\nTitle: %s\nURL: %s\nSnippet: %s",
			i+1, evidence[i].Title, evidence[i].Link, evidence[i].Snippet)
	}
	return sb.String()
}
