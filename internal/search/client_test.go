package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Instant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "go language" {
			t.Errorf("unexpected query: %s", q.Get("q"))
		}
		if q.Get("format") != "json" {
			t.Errorf("unexpected format: %s", q.Get("format"))
		}
		if q.Get("no_html") != "1" || q.Get("skip_disambig") != "1" {
			t.Errorf("missing no_html/skip_disambig params")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"Abstract":       "Go is a programming language.",
			"AbstractSource": "Wikipedia",
			"AbstractURL":    "https://en.wikipedia.org/wiki/Go",
			"RelatedTopics": []map[string]any{
				{"Text": "Golang", "FirstURL": "https://go.dev"},
			},
			"Infobox": map[string]any{
				"content": []map[string]any{
					{"label": "Designed by", "value": "Google"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Instant(context.Background(), "go language")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Abstract != "Go is a programming language." {
		t.Errorf("unexpected abstract: %s", result.Abstract)
	}
	if result.AbstractSource != "Wikipedia" {
		t.Errorf("unexpected abstract source: %s", result.AbstractSource)
	}
	if len(result.RelatedTopics) != 1 || result.RelatedTopics[0].Text != "Golang" {
		t.Errorf("unexpected related topics: %+v", result.RelatedTopics)
	}
	if result.Infobox == nil || len(result.Infobox.Content) != 1 {
		t.Errorf("unexpected infobox: %+v", result.Infobox)
	}
}

func TestClient_Instant_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Abstract":   "",
			"Definition": "",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Instant(context.Background(), "gibberish")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestClient_Instant_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Instant(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestResult_Empty(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{"all empty", Result{}, true},
		{"abstract only", Result{Abstract: "text"}, false},
		{"definition only", Result{Definition: "text"}, false},
		{"related topic with text", Result{RelatedTopics: []RelatedTopic{{Text: "x"}}}, false},
		{"related topic without text", Result{RelatedTopics: []RelatedTopic{{FirstURL: "u"}}}, true},
		{"infobox entry", Result{Infobox: &Infobox{Content: []InfoboxEntry{{Label: "l", Value: "v"}}}}, false},
		{"empty infobox", Result{Infobox: &Infobox{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
