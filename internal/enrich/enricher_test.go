package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/factlens/factlens/internal/logging"
	"github.com/factlens/factlens/internal/model"
)

func testEnricher() *Enricher {
	return NewEnricher(
		model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "Factlens/0.1", MaxBodyBytes: 1 << 20},
		model.EnrichConfig{Enabled: true, Timeout: 5 * time.Second},
		logging.NewComponentLogger("test"),
	)
}

func TestEnrich_BackfillsFromMetaDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprint(w, `<html><head>
			<title>Page Title</title>
			<meta name="description" content="The meta description wins.">
		</head><body>body</body></html>`)
	}))
	defer server.Close()

	items := testEnricher().Enrich(context.Background(), []model.EvidenceItem{
		{Title: "T", Snippet: "", Link: server.URL + "/article"},
	})

	if items[0].Snippet != "The meta description wins." {
		t.Errorf("Unexpected snippet: %q", items[0].Snippet)
	}
}

func TestEnrich_FallsBackToTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = fmt.Fprint(w, `<html><head><title>  Only A Title  </title></head><body></body></html>`)
	}))
	defer server.Close()

	items := testEnricher().Enrich(context.Background(), []model.EvidenceItem{
		{Title: "T", Snippet: "", Link: server.URL + "/article"},
	})

	if items[0].Snippet != "Only A Title" {
		t.Errorf("Unexpected snippet: %q", items[0].Snippet)
	}
}

func TestEnrich_ExistingSnippetUntouched(t *testing.T) {
	var fetched bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = true
	}))
	defer server.Close()

	items := testEnricher().Enrich(context.Background(), []model.EvidenceItem{
		{Title: "T", Snippet: "already present", Link: server.URL + "/article"},
	})

	if fetched {
		t.Error("Items with snippets must not be fetched")
	}
	if items[0].Snippet != "already present" {
		t.Errorf("Snippet changed: %q", items[0].Snippet)
	}
}

func TestEnrich_RobotsDisallowSkips(t *testing.T) {
	var pageFetched bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		pageFetched = true
	}))
	defer server.Close()

	items := testEnricher().Enrich(context.Background(), []model.EvidenceItem{
		{Title: "T", Snippet: "", Link: server.URL + "/article"},
	})

	if pageFetched {
		t.Error("Disallowed page must not be fetched")
	}
	if items[0].Snippet != "" {
		t.Errorf("Disallowed item must stay empty, got %q", items[0].Snippet)
	}
}

func TestEnrich_FetchErrorLeavesItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	items := testEnricher().Enrich(context.Background(), []model.EvidenceItem{
		{Title: "T", Snippet: "", Link: server.URL + "/article"},
	})

	if items[0].Snippet != "" {
		t.Errorf("Failed fetch must leave the item untouched, got %q", items[0].Snippet)
	}
}
