package classify

import (
	"testing"

	"github.com/factlens/factlens/internal/model"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()
	claim := "the canal was closed"

	tests := []struct {
		name string
		item model.EvidenceItem
		want model.Stance
	}{
		{
			name: "supporting english",
			item: model.EvidenceItem{
				Title:   "Officials confirmed the closure",
				Snippet: "An official statement verified the event.",
				Link:    "https://www.reuters.com/article",
			},
			want: model.StanceSupporting,
		},
		{
			name: "supporting arabic",
			item: model.EvidenceItem{
				Title:   "تأكيد رسمي",
				Snippet: "أعلن المتحدث أن الخبر صحيح",
				Link:    "https://www.aljazeera.com/article",
			},
			want: model.StanceSupporting,
		},
		{
			name: "opposing",
			item: model.EvidenceItem{
				Title:   "Experts debunk viral hoax",
				Snippet: "The claim is fake and has been denied.",
				Link:    "https://www.bbc.com/article",
			},
			want: model.StanceOpposing,
		},
		{
			name: "neutral when nothing matches",
			item: model.EvidenceItem{
				Title:   "Shipping schedules",
				Snippet: "Timetables for the spring season.",
				Link:    "https://example.com/schedules",
			},
			want: model.StanceNeutral,
		},
		{
			name: "tie is neutral",
			item: model.EvidenceItem{
				Title:   "True or false?",
				Snippet: "",
				Link:    "https://example.com/x",
			},
			want: model.StanceNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.item, claim); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatistics(t *testing.T) {
	c := NewClassifier()
	items := []model.EvidenceItem{
		{Title: "Officials confirmed the closure", Snippet: "verified by an official source"},
		{Title: "Experts debunk viral hoax", Snippet: "fake and denied"},
		{Title: "Shipping schedules", Snippet: "weekly timetable"},
		{Title: "Spring season notes", Snippet: "nothing relevant"},
	}

	stats := c.Statistics(items, "the canal was closed")

	if stats.TotalSources != 4 {
		t.Fatalf("Expected 4 total sources, got %d", stats.TotalSources)
	}
	if stats.SupportingCount != 1 || stats.OpposingCount != 1 || stats.NeutralCount != 2 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.SupportingPercentage != 25.0 {
		t.Errorf("Expected 25.0%% supporting, got %v", stats.SupportingPercentage)
	}
	if stats.NeutralPercentage != 50.0 {
		t.Errorf("Expected 50.0%% neutral, got %v", stats.NeutralPercentage)
	}

	sum := stats.SupportingPercentage + stats.OpposingPercentage + stats.NeutralPercentage
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("Percentages should sum to ~100, got %v", sum)
	}
}

func TestStatistics_Empty(t *testing.T) {
	stats := NewClassifier().Statistics(nil, "claim")
	if stats.TotalSources != 0 || stats.SupportingPercentage != 0 {
		t.Errorf("Expected zero statistics, got %+v", stats)
	}
}
