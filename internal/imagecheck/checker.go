package imagecheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/lang"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/search"
	"github.com/factlens/factlens/internal/verdict"
)

const (
	visionTemperature = 0.2
	visionMaxTokens   = 1500

	// A model that answers but hedges below this is treated as having
	// found signs of editing it would not commit to.
	lowConfidenceThreshold = 0.5

	maxFollowUpSources = 5
)

// Checker analyzes an image for AI generation and manipulation using a
// vision-capable model, then optionally searches for any claim text the
// model read off the image.
type Checker struct {
	provider llm.Provider
	searcher search.Provider
	cfg      model.ImageConfig
	logger   *logrus.Entry
}

// NewChecker creates a new image authenticity checker. searcher may be nil
// to disable the extracted-text follow-up search.
func NewChecker(provider llm.Provider, searcher search.Provider, cfg model.ImageConfig, logger *logrus.Entry) *Checker {
	return &Checker{
		provider: provider,
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
	}
}

const visionSystemPrompt = `You are a digital image forensics expert. Analyze the provided image for signs of AI generation and digital manipulation.

Examine:
- Lighting and shadow consistency
- Edge artifacts, blending seams, cloning patterns
- Texture regularity typical of generative models (skin, hair, backgrounds)
- Text rendering anomalies
- Metadata-independent visual evidence only

Also read any text, captions, or claims visible in the image.

Respond with ONLY a JSON object using these exact keys:
{
  "is_ai_generated": true|false,
  "ai_confidence": 0.0-1.0,
  "is_photoshopped": true|false,
  "is_fake": true|false,
  "message": "<short explanation of the findings, written in %s>",
  "manipulation_signs": ["<specific signs found, empty array if none>"],
  "extracted_text": "<text or claims visible in the image, empty string if none>"
}

No markdown fences, no commentary, JSON only.`

// rawImageVerdict mirrors the model's JSON shape
type rawImageVerdict struct {
	IsAIGenerated     bool     `json:"is_ai_generated"`
	AIConfidence      float64  `json:"ai_confidence"`
	IsPhotoshopped    bool     `json:"is_photoshopped"`
	IsFake            bool     `json:"is_fake"`
	Message           string   `json:"message"`
	ManipulationSigns []string `json:"manipulation_signs"`
	ExtractedText     string   `json:"extracted_text"`
}

// refusalPhrases mark a model declining to analyze rather than failing
var refusalPhrases = []string{
	"i can't",
	"i cannot",
	"i'm unable",
	"i am unable",
	"unable to assist",
	"cannot assist",
	"لا أستطيع",
	"لا يمكنني",
}

// Check analyzes imageBytes and returns a verdict. It never returns an
// error: technical failures and model refusals both degrade to a verdict
// with all tri-states Unknown, distinguished by the Refused flag.
func (c *Checker) Check(ctx context.Context, imageBytes []byte, language string) model.ImageVerdict {
	if language == "" {
		language = "en"
	}

	if c.cfg.MaxBytes > 0 && int64(len(imageBytes)) > c.cfg.MaxBytes {
		c.logger.WithField("bytes", len(imageBytes)).Warn("image exceeds size limit")
		return errorVerdict(language)
	}

	dataURL, err := normalize(imageBytes, c.cfg.MaxDimension, c.cfg.JPEGQuality)
	if err != nil {
		c.logger.WithError(err).Warn("image normalization failed")
		return errorVerdict(language)
	}

	resp, err := c.provider.CompleteVision(ctx, llm.VisionRequest{
		System:       fmt.Sprintf(visionSystemPrompt, strings.ToUpper(language)),
		Prompt:       "Analyze this image for authenticity. Respond in the required JSON format.",
		ImageDataURL: dataURL,
		Temperature:  visionTemperature,
		MaxTokens:    visionMaxTokens,
	})
	if err != nil {
		c.logger.WithError(err).Warn("vision completion failed")
		return errorVerdict(language)
	}

	if isRefusal(resp) {
		c.logger.Info("model declined to analyze image")
		return model.ImageVerdict{
			IsAIGenerated:  model.TriUnknown,
			IsPhotoshopped: model.TriUnknown,
			IsFake:         model.TriUnknown,
			Message:        lang.CannotAnalyzeMessage(language),
			Language:       language,
			Refused:        true,
		}
	}

	var raw rawImageVerdict
	if verdict.ExtractJSON(resp, &raw) == verdict.ParseFailed {
		c.logger.WithField("response_len", len(resp)).Warn("vision response was not parseable")
		return errorVerdict(language)
	}

	out := model.ImageVerdict{
		IsAIGenerated:     model.TriFromBool(raw.IsAIGenerated),
		IsPhotoshopped:    model.TriFromBool(raw.IsPhotoshopped),
		IsFake:            model.TriFromBool(raw.IsFake),
		Confidence:        raw.AIConfidence,
		Message:           raw.Message,
		ManipulationSigns: raw.ManipulationSigns,
		ExtractedText:     strings.TrimSpace(raw.ExtractedText),
		Language:          language,
	}

	// A hedging answer that still lists manipulation signs is treated as
	// an edited image rather than a clean one.
	if !raw.IsPhotoshopped && raw.AIConfidence < lowConfidenceThreshold && len(raw.ManipulationSigns) > 0 {
		out.IsPhotoshopped = model.TriTrue
	}

	if out.ExtractedText != "" && c.searcher != nil {
		out.Sources = c.searchExtractedText(ctx, out.ExtractedText)
	}

	return out
}

// searchExtractedText runs one general search for text read off the image.
// Failures are silent: the forensic verdict stands on its own.
func (c *Checker) searchExtractedText(ctx context.Context, text string) []model.EvidenceItem {
	items, err := c.searcher.Search(ctx, search.Query{
		Text: text,
		Num:  maxFollowUpSources,
	})
	if err != nil {
		c.logger.WithError(err).Debug("extracted-text search failed")
		return nil
	}
	if len(items) > maxFollowUpSources {
		items = items[:maxFollowUpSources]
	}
	return items
}

func isRefusal(resp string) bool {
	lower := strings.ToLower(strings.TrimSpace(resp))
	if strings.Contains(lower, "{") && strings.Contains(lower, "is_ai_generated") {
		return false
	}
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func errorVerdict(language string) model.ImageVerdict {
	return model.ImageVerdict{
		IsAIGenerated:  model.TriUnknown,
		IsPhotoshopped: model.TriUnknown,
		IsFake:         model.TriUnknown,
		Message:        lang.ImageErrorMessage(language),
		Language:       language,
	}
}
