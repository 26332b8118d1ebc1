package lang

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/factlens/factlens/internal/llm"
)

// Detector infers the ISO 639-1 language code of a claim. The primary
// strategy asks the model; the fallback is a deterministic character-class
// heuristic that needs no network access, so detection can never block the
// pipeline.
type Detector struct {
	provider llm.Provider // nil disables the LLM strategy
	logger   *logrus.Entry
}

// NewDetector creates a new language detector
func NewDetector(provider llm.Provider, logger *logrus.Entry) *Detector {
	return &Detector{
		provider: provider,
		logger:   logger,
	}
}

const detectSystemPrompt = "Detect the input language and return ONLY its ISO 639-1 code (like ar, en, fr, es, de)."

// Detect returns a two-letter language code for the given text
func (d *Detector) Detect(ctx context.Context, text string) string {
	if d.provider != nil {
		code, err := d.provider.Complete(ctx, llm.CompletionRequest{
			System:      detectSystemPrompt,
			User:        strings.TrimSpace(text),
			Temperature: 0,
			MaxTokens:   5,
		})
		if err == nil {
			if valid, ok := validateCode(code); ok {
				return valid
			}
			d.logger.WithField("response", code).Debug("language detector returned non-code response")
		} else {
			d.logger.WithError(err).Debug("LLM language detection failed, using fallback")
		}
	}

	return Fallback(text)
}

// validateCode accepts exactly two letters that parse as a language tag
func validateCode(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) != 2 {
		return "", false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return "", false
		}
	}
	if _, err := language.Parse(code); err != nil {
		return "", false
	}
	return code, true
}

// arabicRatioThreshold is the fraction of Arabic-block characters at which
// the fallback classifies text as Arabic.
const arabicRatioThreshold = 0.15

// Fallback is the deterministic detection strategy: the fraction of
// characters in the Arabic Unicode block decides between "ar" and "en".
func Fallback(text string) string {
	if text == "" {
		return "en"
	}

	total := 0
	arabic := 0
	for _, r := range text {
		total++
		if r >= 0x0600 && r <= 0x06FF {
			arabic++
		}
	}

	if float64(arabic)/float64(total) >= arabicRatioThreshold {
		return "ar"
	}
	return "en"
}
