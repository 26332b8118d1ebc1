package verdict

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/lang"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
)

// Composer turns aggregated evidence into a verdict. Every failure mode —
// provider error, malformed response, unparseable repair — terminates in a
// well-formed Uncertain verdict; Compose never returns an error.
type Composer struct {
	provider llm.Provider
	logger   *logrus.Entry
	now      func() time.Time
}

// NewComposer creates a new verdict composer
func NewComposer(provider llm.Provider, logger *logrus.Entry) *Composer {
	return &Composer{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// Request is one verdict composition
type Request struct {
	Claim    string
	Language string
	Evidence []model.EvidenceItem

	// PreserveSources substitutes the raw evidence for cited sources on
	// uncertain verdicts instead of emptying them
	PreserveSources bool
}

const (
	composeTemperature = 0.2
	composeMaxTokens   = 800
)

// Compose builds the prompt, invokes the model, parses with the repair
// ladder, and normalizes the verdict state. The degraded flag reports
// whether a repair strategy or terminal fallback produced the result.
func (c *Composer) Compose(ctx context.Context, req Request) (model.Verdict, bool) {
	answer, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      factSystemPrompt,
		User:        buildUserMessage(req.Claim, req.Language, buildContext(req.Evidence), c.now()),
		Temperature: composeTemperature,
		MaxTokens:   composeMaxTokens,
	})
	if err != nil {
		c.logger.WithError(err).Warn("verdict completion failed")
		return c.terminal(req.Language), true
	}

	result := Parse(answer)
	if result.Status == ParseFailed {
		c.logger.WithField("response_prefix", prefix(answer, 200)).
			Warn("verdict response unparseable after repair ladder")
		return c.terminal(req.Language), true
	}
	if result.Status == ParseRecovered {
		c.logger.Info("verdict recovered from malformed model response")
	}

	v := c.normalize(result.Verdict, req)
	return v, result.Status == ParseRecovered
}

// normalize maps the localized verdict word to its state and enforces the
// uncertain-implies-no-sources invariant.
func (c *Composer) normalize(raw rawVerdict, req Request) model.Verdict {
	v := model.Verdict{
		Case:    raw.Case,
		State:   lang.StateFor(raw.Case),
		Talk:    raw.Talk,
		Sources: raw.Sources,
	}
	if v.Case == "" {
		v.Case = lang.UncertainWord(req.Language)
		v.State = model.VerdictUncertain
	}

	if v.State == model.VerdictUncertain {
		if req.PreserveSources {
			v.Sources = substituteEvidence(req.Evidence)
		} else {
			v.Sources = []model.CitedSource{}
		}
	}
	if v.Sources == nil {
		v.Sources = []model.CitedSource{}
	}

	return v
}

// terminal is the degraded end state: localized uncertain verdict, generic
// error explanation, no sources.
func (c *Composer) terminal(language string) model.Verdict {
	return model.Verdict{
		Case:    lang.UncertainWord(language),
		State:   model.VerdictUncertain,
		Talk:    lang.CheckErrorMessage(language),
		Sources: []model.CitedSource{},
	}
}

// substituteEvidence converts the raw deduplicated search evidence into the
// cited-source shape for the preserve-sources override.
func substituteEvidence(evidence []model.EvidenceItem) []model.CitedSource {
	sources := make([]model.CitedSource, 0, len(evidence))
	for _, e := range evidence {
		sources = append(sources, model.CitedSource{
			Title:   e.Title,
			URL:     e.Link,
			Snippet: e.Snippet,
		})
	}
	return sources
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
