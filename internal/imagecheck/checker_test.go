package imagecheck

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/logging"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/search"
)

type mockVisionProvider struct {
	response string
	err      error
	lastReq  llm.VisionRequest
}

func (m *mockVisionProvider) Name() string { return "mock" }

func (m *mockVisionProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return "", fmt.Errorf("not implemented")
}

func (m *mockVisionProvider) CompleteVision(ctx context.Context, req llm.VisionRequest) (string, error) {
	m.lastReq = req
	return m.response, m.err
}

func (m *mockVisionProvider) IsAvailable(ctx context.Context) bool { return true }

type mockSearcher struct {
	items   []model.EvidenceItem
	err     error
	lastQ   search.Query
	queried bool
}

func (m *mockSearcher) Name() string { return "mock-search" }

func (m *mockSearcher) Search(ctx context.Context, q search.Query) ([]model.EvidenceItem, error) {
	m.queried = true
	m.lastQ = q
	return m.items, m.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func imageConfig() model.ImageConfig {
	return model.ImageConfig{MaxDimension: 2048, JPEGQuality: 85, MaxBytes: 10 * 1024 * 1024}
}

func TestCheck_CleanImage(t *testing.T) {
	provider := &mockVisionProvider{response: `{
		"is_ai_generated": false,
		"ai_confidence": 0.9,
		"is_photoshopped": false,
		"is_fake": false,
		"message": "No manipulation detected.",
		"manipulation_signs": [],
		"extracted_text": ""
	}`}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 32, 32), "en")

	if v.IsAIGenerated != model.TriFalse || v.IsPhotoshopped != model.TriFalse || v.IsFake != model.TriFalse {
		t.Errorf("Unexpected tri-states: %+v", v)
	}
	if v.Refused {
		t.Error("Clean analysis must not be marked refused")
	}
	if !strings.HasPrefix(provider.lastReq.ImageDataURL, "data:image/jpeg;base64,") {
		t.Errorf("Image must travel as a JPEG data URL, got prefix %q", provider.lastReq.ImageDataURL[:30])
	}
}

func TestCheck_ManipulatedImage(t *testing.T) {
	provider := &mockVisionProvider{response: `{
		"is_ai_generated": true,
		"ai_confidence": 0.85,
		"is_photoshopped": true,
		"is_fake": true,
		"message": "Synthetic texture patterns.",
		"manipulation_signs": ["texture regularity", "edge artifacts"],
		"extracted_text": ""
	}`}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 32, 32), "en")
	if v.IsAIGenerated != model.TriTrue || v.IsFake != model.TriTrue {
		t.Errorf("Unexpected tri-states: %+v", v)
	}
	if len(v.ManipulationSigns) != 2 {
		t.Errorf("Expected 2 manipulation signs, got %v", v.ManipulationSigns)
	}
}

func TestCheck_RefusalIsNotFailure(t *testing.T) {
	provider := &mockVisionProvider{response: "I cannot analyze images of this nature."}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 32, 32), "ar")

	if !v.Refused {
		t.Fatal("Expected refusal flag")
	}
	if v.IsAIGenerated != model.TriUnknown || v.IsPhotoshopped != model.TriUnknown || v.IsFake != model.TriUnknown {
		t.Errorf("Refusal must leave all tri-states unknown: %+v", v)
	}
	if v.Message != "تعذر تحليل هذه الصورة." {
		t.Errorf("Expected localized cannot-analyze message, got %q", v.Message)
	}
}

func TestCheck_ArabicRefusal(t *testing.T) {
	provider := &mockVisionProvider{response: "عذراً، لا أستطيع تحليل هذه الصورة"}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	if v := c.Check(context.Background(), pngBytes(t, 8, 8), "ar"); !v.Refused {
		t.Error("Expected Arabic refusal phrase to be detected")
	}
}

func TestCheck_MalformedResponse(t *testing.T) {
	provider := &mockVisionProvider{response: "the image looks fine to me, probably"}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 8, 8), "en")

	if v.Refused {
		t.Error("Malformed response is a technical failure, not a refusal")
	}
	if v.IsAIGenerated != model.TriUnknown {
		t.Errorf("Expected unknown tri-states, got %+v", v)
	}
	if v.Message != "An error occurred during image analysis. Please try again." {
		t.Errorf("Expected technical-failure message, got %q", v.Message)
	}
}

func TestCheck_ProviderError(t *testing.T) {
	provider := &mockVisionProvider{err: fmt.Errorf("overloaded")}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 8, 8), "en")
	if v.IsFake != model.TriUnknown || v.Refused {
		t.Errorf("Provider error must degrade to unknown without refusal: %+v", v)
	}
}

func TestCheck_LowConfidenceEditBias(t *testing.T) {
	provider := &mockVisionProvider{response: `{
		"is_ai_generated": false,
		"ai_confidence": 0.3,
		"is_photoshopped": false,
		"is_fake": false,
		"message": "Possible local edits.",
		"manipulation_signs": ["blending seam near subject"],
		"extracted_text": ""
	}`}
	c := NewChecker(provider, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 8, 8), "en")
	if v.IsPhotoshopped != model.TriTrue {
		t.Errorf("Hedged answer with signs should bias photoshopped to true, got %v", v.IsPhotoshopped)
	}
}

func TestCheck_ExtractedTextTriggersSearch(t *testing.T) {
	provider := &mockVisionProvider{response: `{
		"is_ai_generated": false,
		"ai_confidence": 0.9,
		"is_photoshopped": false,
		"is_fake": false,
		"message": "Contains a caption.",
		"manipulation_signs": [],
		"extracted_text": "canal closed to all traffic"
	}`}
	searcher := &mockSearcher{items: []model.EvidenceItem{
		{Title: "A", Snippet: "s", Link: "https://news.example/a"},
	}}
	c := NewChecker(provider, searcher, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 8, 8), "en")
	if !searcher.queried {
		t.Fatal("Expected a follow-up search for the extracted text")
	}
	if searcher.lastQ.Text != "canal closed to all traffic" {
		t.Errorf("Unexpected follow-up query: %q", searcher.lastQ.Text)
	}
	if len(v.Sources) != 1 {
		t.Errorf("Expected attached sources, got %d", len(v.Sources))
	}
}

func TestCheck_SearchFailureIsSilent(t *testing.T) {
	provider := &mockVisionProvider{response: `{
		"is_ai_generated": false,
		"ai_confidence": 0.9,
		"is_photoshopped": false,
		"is_fake": false,
		"message": "ok",
		"manipulation_signs": [],
		"extracted_text": "some caption"
	}`}
	searcher := &mockSearcher{err: fmt.Errorf("provider down")}
	c := NewChecker(provider, searcher, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 8, 8), "en")
	if len(v.Sources) != 0 {
		t.Errorf("Failed search must attach nothing, got %d", len(v.Sources))
	}
	if v.IsAIGenerated != model.TriFalse {
		t.Error("Search failure must not disturb the forensic verdict")
	}
}

func TestCheck_OversizedInput(t *testing.T) {
	cfg := imageConfig()
	cfg.MaxBytes = 16
	c := NewChecker(&mockVisionProvider{}, nil, cfg, logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), pngBytes(t, 8, 8), "en")
	if v.IsAIGenerated != model.TriUnknown {
		t.Errorf("Oversized input must degrade to unknown, got %+v", v)
	}
}

func TestCheck_UndecodableInput(t *testing.T) {
	c := NewChecker(&mockVisionProvider{}, nil, imageConfig(), logging.NewComponentLogger("test"))

	v := c.Check(context.Background(), []byte("not an image"), "en")
	if v.IsAIGenerated != model.TriUnknown {
		t.Errorf("Undecodable input must degrade to unknown, got %+v", v)
	}
}

func TestNormalize_Downscales(t *testing.T) {
	// A 100x50 image with a 40px bound must come out 40x20
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	scaled := downscale(src, 40)
	if scaled.Bounds().Dx() != 40 || scaled.Bounds().Dy() != 20 {
		t.Errorf("Unexpected scaled size: %v", scaled.Bounds())
	}

	// Portrait orientation bounds the height instead
	tall := image.NewRGBA(image.Rect(0, 0, 50, 100))
	scaled = downscale(tall, 40)
	if scaled.Bounds().Dx() != 20 || scaled.Bounds().Dy() != 40 {
		t.Errorf("Unexpected portrait scaled size: %v", scaled.Bounds())
	}

	// Within bounds passes through
	small := image.NewRGBA(image.Rect(0, 0, 30, 30))
	if downscale(small, 40) != small {
		t.Error("In-bounds image must pass through untouched")
	}
}
