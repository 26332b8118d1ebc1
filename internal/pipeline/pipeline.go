package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/cache"
	"github.com/factlens/factlens/internal/classify"
	"github.com/factlens/factlens/internal/content"
	"github.com/factlens/factlens/internal/enrich"
	"github.com/factlens/factlens/internal/imagecheck"
	"github.com/factlens/factlens/internal/intent"
	"github.com/factlens/factlens/internal/lang"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/logging"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/search"
	"github.com/factlens/factlens/internal/verdict"
	"github.com/factlens/factlens/internal/worker"
)

// Checker orchestrates the full fact-checking flow: language detection,
// search fan-out, verdict composition, derivative content, and source
// statistics. Its run methods never return errors: every failure mode
// degrades to a localized uncertain result.
type Checker struct {
	cfg        *model.Config
	detector   *lang.Detector
	extractor  *intent.Extractor
	aggregator *search.Aggregator
	enricher   *enrich.Enricher
	composer   *verdict.Composer
	contents   *content.Composer
	classifier *classify.Classifier
	images     *imagecheck.Checker
	logger     *logrus.Entry
}

// NewChecker wires a Checker from configuration. Missing provider
// credentials are a construction error, not a per-request condition.
func NewChecker(cfg *model.Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewComponentLogger("pipeline")

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	var searchCache cache.Cache
	if cfg.Cache.Enabled {
		searchCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	serp, err := search.NewSerpAPIClient(search.SerpAPIOptions{
		APIKey:    cfg.Search.APIKey,
		BaseURL:   cfg.Search.BaseURL,
		HL:        cfg.Search.HL,
		GL:        cfg.Search.GL,
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
		Limiter:   worker.NewLimiter(cfg.Search.RatePerSecond, cfg.Search.RateBurst),
		Cache:     searchCache,
		CacheTTL:  cfg.Cache.TTL,
		Logger:    logging.NewComponentLogger("serpapi"),
	})
	if err != nil {
		return nil, fmt.Errorf("create search client: %w", err)
	}

	c := &Checker{
		cfg:        cfg,
		detector:   lang.NewDetector(provider, logging.NewComponentLogger("lang")),
		aggregator: search.NewAggregator(serp, cfg.Search, logging.NewComponentLogger("search")),
		composer:   verdict.NewComposer(provider, logging.NewComponentLogger("verdict")),
		contents:   content.NewComposer(provider, cfg.Content, logging.NewComponentLogger("content")),
		classifier: classify.NewClassifier(),
		images:     imagecheck.NewChecker(provider, serp, cfg.Image, logging.NewComponentLogger("imagecheck")),
		logger:     logger,
	}
	if cfg.Intent.Enabled {
		c.extractor = intent.NewExtractor(provider, logging.NewComponentLogger("intent"))
	}
	if cfg.Enrich.Enabled {
		c.enricher = enrich.NewEnricher(cfg.HTTP, cfg.Enrich, logging.NewComponentLogger("enrich"))
	}
	return c, nil
}

// RunFactCheck verifies one claim end to end. It never returns an error;
// a panic anywhere in the flow degrades to a localized uncertain result.
func (c *Checker) RunFactCheck(ctx context.Context, claim string, opts model.CheckOptions) (result model.VerdictResult) {
	runID := uuid.NewString()
	log := c.logger.WithField("run_id", runID)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("fact check panicked")
			result = c.terminalResult(runID, claim, result.Language)
		}
	}()

	log.WithField("claim_len", len(claim)).Info("fact check started")

	// Language detection and the search fan-out are independent; run them
	// concurrently and join on both.
	language := lang.Fallback(claim)
	var claimIntent *model.Intent

	searchOpts := search.Options{GeneralNum: opts.SourceCount}
	if c.extractor != nil && opts.ExtractIntent {
		// Intent extraction needs the language first, so this path is
		// sequential: detect, extract, then search with the intent.
		language = c.detector.Detect(ctx, claim)
		claimIntent = c.extractor.Extract(ctx, claim, language)
		searchOpts.Intent = claimIntent

		evidence := c.aggregator.Aggregate(ctx, claim, searchOpts)
		return c.assemble(ctx, runID, claim, language, evidence, opts, log)
	}

	type branchResult struct {
		language string
		evidence []model.EvidenceItem
	}
	outcomes := worker.Gather(ctx, []func(ctx context.Context) (branchResult, error){
		func(ctx context.Context) (branchResult, error) {
			return branchResult{language: c.detector.Detect(ctx, claim)}, nil
		},
		func(ctx context.Context) (branchResult, error) {
			return branchResult{evidence: c.aggregator.Aggregate(ctx, claim, searchOpts)}, nil
		},
	})

	if outcomes[0].Err == nil && outcomes[0].Value.language != "" {
		language = outcomes[0].Value.language
	}
	evidence := outcomes[1].Value.evidence

	return c.assemble(ctx, runID, claim, language, evidence, opts, log)
}

// assemble runs the post-search stages and builds the final result
func (c *Checker) assemble(ctx context.Context, runID, claim, language string, evidence []model.EvidenceItem, opts model.CheckOptions, log *logrus.Entry) model.VerdictResult {
	if c.enricher != nil {
		evidence = c.enricher.Enrich(ctx, evidence)
	}

	log.WithFields(logrus.Fields{
		"language": language,
		"evidence": len(evidence),
	}).Info("evidence gathered")

	// With no evidence at all there is nothing for the model to judge;
	// short-circuit to a localized no-results verdict without an LLM call.
	if len(evidence) == 0 {
		return model.VerdictResult{
			RunID:    runID,
			Language: language,
			Case:     lang.UncertainWord(language),
			State:    model.VerdictUncertain,
			Talk:     lang.NoResultsMessage(language),
			Sources:  []model.CitedSource{},
		}
	}

	composed, degraded := c.composer.Compose(ctx, verdict.Request{
		Claim:           claim,
		Language:        language,
		Evidence:        evidence,
		PreserveSources: opts.PreserveSources,
	})

	result := model.VerdictResult{
		RunID:            runID,
		Language:         language,
		Case:             composed.Case,
		State:            composed.State,
		Talk:             composed.Talk,
		Sources:          composed.Sources,
		SourceStatistics: c.classifier.Statistics(evidence, claim),
		Degraded:         degraded,
	}

	if opts.GenerateNews || opts.GenerateTweet {
		generated := c.contents.Generate(ctx, content.Request{
			Claim:    claim,
			Language: language,
			Verdict:  composed,
			Evidence: evidence,
		}, opts.GenerateNews, opts.GenerateTweet)

		if opts.GenerateNews {
			result.NewsArticle = &generated.NewsArticle
		}
		if opts.GenerateTweet {
			result.XTweet = &generated.XTweet
		}
	}

	log.WithFields(logrus.Fields{
		"state":    result.State,
		"sources":  len(result.Sources),
		"degraded": result.Degraded,
	}).Info("fact check finished")

	return result
}

// RunImageCheck analyzes one image with the same never-fail policy as
// RunFactCheck. langHint may be empty.
func (c *Checker) RunImageCheck(ctx context.Context, imageBytes []byte, langHint string) (result model.ImageVerdict) {
	runID := uuid.NewString()
	log := c.logger.WithField("run_id", runID)

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("image check panicked")
			result = model.ImageVerdict{
				IsAIGenerated:  model.TriUnknown,
				IsPhotoshopped: model.TriUnknown,
				IsFake:         model.TriUnknown,
				Message:        lang.ImageErrorMessage(langHint),
				Language:       langHint,
			}
			if result.Language == "" {
				result.Language = "en"
			}
		}
	}()

	log.WithField("bytes", len(imageBytes)).Info("image check started")
	return c.images.Check(ctx, imageBytes, langHint)
}

// terminalResult is the generic degraded answer for a failed run
func (c *Checker) terminalResult(runID, claim, language string) model.VerdictResult {
	if language == "" {
		language = lang.Fallback(claim)
	}
	return model.VerdictResult{
		RunID:    runID,
		Language: language,
		Case:     lang.UncertainWord(language),
		State:    model.VerdictUncertain,
		Talk:     lang.CheckErrorMessage(language),
		Sources:  []model.CitedSource{},
		Degraded: true,
	}
}
