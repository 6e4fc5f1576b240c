// Package search provides a client for the DuckDuckGo instant-answer API.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public DuckDuckGo instant-answer endpoint.
const DefaultBaseURL = "https://api.duckduckgo.com"

// userAgent identifies this client to the provider.
const userAgent = "openfloor-searchagent/1.0 (conversational search assistant)"

// ErrNoResults is returned when the provider responded successfully but no
// field carried usable content.
var ErrNoResults = errors.New("search: no results found")

// RelatedTopic is one entry of the provider's related-topics list.
type RelatedTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

// InfoboxEntry is one label/value pair of the provider's infobox.
type InfoboxEntry struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Infobox is the provider's structured fact box.
type Infobox struct {
	Content []InfoboxEntry `json:"content"`
}

// Result is the instant-answer response. All fields are optional; a Result
// with nothing usable is reported as ErrNoResults by Instant.
type Result struct {
	Abstract         string         `json:"Abstract"`
	AbstractSource   string         `json:"AbstractSource"`
	AbstractURL      string         `json:"AbstractURL"`
	Definition       string         `json:"Definition"`
	DefinitionSource string         `json:"DefinitionSource"`
	DefinitionURL    string         `json:"DefinitionURL"`
	RelatedTopics    []RelatedTopic `json:"RelatedTopics"`
	Infobox          *Infobox       `json:"Infobox"`
}

// Empty reports whether the result carries no usable content at all.
func (r *Result) Empty() bool {
	if r.Abstract != "" || r.Definition != "" {
		return false
	}
	for _, t := range r.RelatedTopics {
		if t.Text != "" {
			return false
		}
	}
	return r.Infobox == nil || len(r.Infobox.Content) == 0
}

// Client performs instant-answer lookups against DuckDuckGo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Instant performs one instant-answer lookup. HTML is stripped and
// disambiguation pages are skipped on the provider side. A successful
// response with no usable content returns ErrNoResults.
func (c *Client) Instant(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search error (status %d): %s", resp.StatusCode, string(body))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if result.Empty() {
		return nil, ErrNoResults
	}
	return &result, nil
}
