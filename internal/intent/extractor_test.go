package intent

import (
	"context"
	"fmt"
	"testing"

	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/logging"
	"github.com/factlens/factlens/internal/model"
)

type mockProvider struct {
	response string
	err      error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return m.response, m.err
}

func (m *mockProvider) CompleteVision(ctx context.Context, req llm.VisionRequest) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func TestExtract_WellFormed(t *testing.T) {
	provider := &mockProvider{response: `{
		"language": "ar",
		"keywords": ["قناة السويس", "إغلاق", "ملاحة"],
		"entities": ["قناة السويس"],
		"temporal_type": "same_day",
		"date": ""
	}`}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "عاجل: إغلاق قناة السويس!", "ar")

	if got.Language != "ar" {
		t.Errorf("Unexpected language: %q", got.Language)
	}
	if len(got.Keywords) != 3 {
		t.Errorf("Expected 3 keywords, got %v", got.Keywords)
	}
	if got.Temporal != model.TemporalSameDay {
		t.Errorf("Unexpected temporal type: %v", got.Temporal)
	}
	if got.WindowHours != sameDayWindowHours {
		t.Errorf("Same-day intent should carry a lookback window, got %d", got.WindowHours)
	}
}

func TestExtract_SpecificDate(t *testing.T) {
	provider := &mockProvider{response: `{
		"language": "en",
		"keywords": ["election", "results", "announced"],
		"entities": [],
		"temporal_type": "specific_date",
		"date": "2026-05-14"
	}`}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "en")
	if got.Temporal != model.TemporalSpecificDate || got.Date != "2026-05-14" {
		t.Errorf("Unexpected temporal intent: %v %q", got.Temporal, got.Date)
	}
}

func TestExtract_SpecificDateWithoutDateDowngrades(t *testing.T) {
	provider := &mockProvider{response: `{
		"language": "en",
		"keywords": ["a", "b", "c"],
		"entities": [],
		"temporal_type": "specific_date",
		"date": ""
	}`}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "en")
	if got.Temporal != model.TemporalNone {
		t.Errorf("Dateless specific_date should downgrade to none, got %v", got.Temporal)
	}
}

func TestExtract_TooFewKeywordsKeepsDefault(t *testing.T) {
	provider := &mockProvider{response: `{
		"language": "en",
		"keywords": ["only-one"],
		"entities": [],
		"temporal_type": "none",
		"date": ""
	}`}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "en")
	if len(got.Keywords) != 0 {
		t.Errorf("Too few keywords should keep the empty fallback, got %v", got.Keywords)
	}
}

func TestExtract_TooManyKeywordsClamped(t *testing.T) {
	provider := &mockProvider{response: `{
		"language": "en",
		"keywords": ["a","b","c","d","e","f","g","h","i","j"],
		"entities": [],
		"temporal_type": "none",
		"date": ""
	}`}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "en")
	if len(got.Keywords) != maxKeywords {
		t.Errorf("Expected clamp to %d keywords, got %d", maxKeywords, len(got.Keywords))
	}
}

func TestExtract_InvalidJSONFallsBack(t *testing.T) {
	provider := &mockProvider{response: "I think this claim is about shipping."}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "fr")
	want := model.DefaultIntent("fr")
	if got.Language != want.Language || got.Temporal != want.Temporal {
		t.Errorf("Expected default intent, got %+v", got)
	}
}

func TestExtract_ProviderErrorFallsBack(t *testing.T) {
	provider := &mockProvider{err: fmt.Errorf("timeout")}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "ar")
	if got.Language != "ar" {
		t.Errorf("Expected fallback language ar, got %q", got.Language)
	}
}

func TestExtract_FencedResponse(t *testing.T) {
	provider := &mockProvider{response: "```json\n{\"language\": \"es\", \"keywords\": [\"x\",\"y\",\"z\"], \"entities\": [], \"temporal_type\": \"none\", \"date\": \"\"}\n```"}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "en")
	if got.Language != "es" {
		t.Errorf("Fenced JSON should still parse, got %+v", got)
	}
}

func TestExtract_DuplicateKeywordsDeduped(t *testing.T) {
	provider := &mockProvider{response: `{
		"language": "en",
		"keywords": ["canal", "Canal", "closure", "traffic"],
		"entities": [],
		"temporal_type": "none",
		"date": ""
	}`}
	e := NewExtractor(provider, logging.NewComponentLogger("test"))

	got := e.Extract(context.Background(), "claim", "en")
	if len(got.Keywords) != 3 {
		t.Errorf("Expected case-insensitive dedupe to 3 keywords, got %v", got.Keywords)
	}
}
