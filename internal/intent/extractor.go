package intent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
)

const (
	minKeywords = 3
	maxKeywords = 8

	sameDayWindowHours = 24

	extractTemperature = 0.1
	extractMaxTokens   = 300
)

const systemPrompt = `You are a claim analysis assistant. Given a claim, extract its search intent as JSON.

Return ONLY a JSON object with these exact keys:
{
  "language": "<ISO 639-1 code of the claim language>",
  "keywords": ["<3 to 8 short search keywords capturing the claim's entities and events>"],
  "entities": ["<proper nouns named in the claim, verbatim>"],
  "temporal_type": "<one of: same_day, specific_date, none>",
  "date": "<YYYY-MM-DD when temporal_type is specific_date, otherwise empty string>"
}

Rules:
- temporal_type is "same_day" for claims about today or breaking news, "specific_date" when the claim names a date, otherwise "none".
- Keywords stay in the claim's language; include proper nouns verbatim.
- No markdown, no commentary, JSON only.`

// Extractor derives a structured search intent from a raw claim using
// the LLM. Any failure falls back to the default intent so the pipeline
// never blocks on extraction.
type Extractor struct {
	provider llm.Provider
	logger   *logrus.Entry
}

// NewExtractor creates a new intent extractor
func NewExtractor(provider llm.Provider, logger *logrus.Entry) *Extractor {
	return &Extractor{provider: provider, logger: logger}
}

type rawIntent struct {
	Language     string   `json:"language"`
	Keywords     []string `json:"keywords"`
	Entities     []string `json:"entities"`
	TemporalType string   `json:"temporal_type"`
	Date         string   `json:"date"`
}

// Extract asks the model for the claim's search intent. language is the
// already-detected claim language and seeds the fallback.
func (e *Extractor) Extract(ctx context.Context, claim, language string) *model.Intent {
	fallback := model.DefaultIntent(language)

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		User:        claim,
		Temperature: extractTemperature,
		MaxTokens:   extractMaxTokens,
	})
	if err != nil {
		e.logger.WithError(err).Warn("intent extraction failed, using defaults")
		return fallback
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(stripFences(resp)), &raw); err != nil {
		e.logger.WithError(err).Warn("intent response was not valid JSON, using defaults")
		return fallback
	}

	return e.coerce(raw, fallback)
}

// coerce validates the model output field by field, keeping fallback
// values for anything out of range.
func (e *Extractor) coerce(raw rawIntent, fallback *model.Intent) *model.Intent {
	out := *fallback

	if code := strings.ToLower(strings.TrimSpace(raw.Language)); len(code) == 2 {
		out.Language = code
	}

	keywords := cleanStrings(raw.Keywords)
	if len(keywords) >= minKeywords {
		if len(keywords) > maxKeywords {
			keywords = keywords[:maxKeywords]
		}
		out.Keywords = keywords
	}
	out.Entities = cleanStrings(raw.Entities)

	tt := model.TemporalType(strings.TrimSpace(raw.TemporalType))
	if tt.Valid() {
		out.Temporal = tt
	}
	switch out.Temporal {
	case model.TemporalSameDay:
		out.WindowHours = sameDayWindowHours
	case model.TemporalSpecificDate:
		date := strings.TrimSpace(raw.Date)
		if len(date) == len("2006-01-02") {
			out.Date = date
		} else {
			// A specific-date intent without a usable date is meaningless.
			out.Temporal = model.TemporalNone
			out.Date = ""
		}
	}

	return &out
}

func cleanStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		lower := strings.ToLower(k)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, k)
	}
	return out
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
