package lang

import (
	"testing"

	"github.com/factlens/factlens/internal/model"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		word string
		want model.VerdictState
	}{
		{"True", model.VerdictTrue},
		{"حقيقي", model.VerdictTrue},
		{"pravda", model.VerdictTrue},
		{"False", model.VerdictFalse},
		{"كاذب", model.VerdictFalse},
		{"faux", model.VerdictFalse},
		{"Uncertain", model.VerdictUncertain},
		{"غير مؤكد", model.VerdictUncertain},
		{"  INCERTAIN  ", model.VerdictUncertain},
		// Anything outside the vocabulary normalizes to uncertain
		{"Probably True", model.VerdictUncertain},
		{"", model.VerdictUncertain},
	}
	for _, tt := range tests {
		if got := StateFor(tt.word); got != tt.want {
			t.Errorf("StateFor(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestIsUncertainTerm(t *testing.T) {
	for _, word := range []string{"uncertain", "Uncertain", "غير مؤكد", "belirsiz", " nejisté "} {
		if !IsUncertainTerm(word) {
			t.Errorf("Expected %q to be an uncertain term", word)
		}
	}
	for _, word := range []string{"true", "كاذب", "maybe", ""} {
		if IsUncertainTerm(word) {
			t.Errorf("Expected %q not to be an uncertain term", word)
		}
	}
}

func TestLocalizedMessages(t *testing.T) {
	if UncertainWord("ar") != "غير مؤكد" {
		t.Errorf("Unexpected Arabic uncertain word: %q", UncertainWord("ar"))
	}
	if UncertainWord("xx") != "Uncertain" {
		t.Errorf("Unknown language should fall back to English, got %q", UncertainWord("xx"))
	}
	if NoResultsMessage("ar") != "لم يتم العثور على نتائج بحث." {
		t.Errorf("Unexpected Arabic no-results message: %q", NoResultsMessage("ar"))
	}
	if NoResultsMessage("zz") != NoResultsMessage("en") {
		t.Error("Unknown language should fall back to English")
	}
	for _, code := range []string{"ar", "en", "fr", "es", "cs", "de", "tr", "ru"} {
		if CheckErrorMessage(code) == "" {
			t.Errorf("Missing check-error message for %s", code)
		}
		if ImageErrorMessage(code) == "" {
			t.Errorf("Missing image-error message for %s", code)
		}
	}
}
