package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfloor-dev/searchagent/internal/search"
	"github.com/openfloor-dev/searchagent/openfloor"
)

const (
	testSpeakerURI = "tag:openfloor-dev,2025:search-agent"
	testServiceURL = "https://agents.example.com/search"

	userSpeakerURI = "tag:example,2025:user"
)

type stubProvider struct {
	mu        sync.Mutex
	queries   []string
	callTimes []time.Time
	result    *search.Result
	err       error
}

func (s *stubProvider) Instant(ctx context.Context, query string) (*search.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	s.callTimes = append(s.callTimes, time.Now())
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestAgent(provider SearchProvider, interval time.Duration) *Agent {
	return New(Config{
		Identity: openfloor.Identification{
			SpeakerURI:         testSpeakerURI,
			ServiceURL:         testServiceURL,
			ConversationalName: "Search Assistant",
		},
		Provider:          provider,
		MinSearchInterval: interval,
	})
}

func newInboundEnvelope(events ...openfloor.Event) *openfloor.Envelope {
	return &openfloor.Envelope{
		Schema:       openfloor.Schema{Version: openfloor.SchemaVersion},
		Conversation: openfloor.Conversation{ID: "conv-42"},
		Sender:       openfloor.Sender{SpeakerURI: userSpeakerURI},
		Events:       events,
	}
}

func utteranceWithTokens(to *openfloor.To, tokens ...string) openfloor.Event {
	toks := make([]openfloor.Token, len(tokens))
	for i, t := range tokens {
		toks[i] = openfloor.Token{Value: t}
	}
	return openfloor.Event{
		EventType: openfloor.EventUtterance,
		To:        to,
		Parameters: openfloor.Parameters{
			DialogEvent: &openfloor.DialogEvent{
				ID:         "dialog-1",
				SpeakerURI: userSpeakerURI,
				Features: map[string]openfloor.TextFeature{
					"text": {MimeType: openfloor.MimeTextPlain, Tokens: toks},
				},
			},
		},
	}
}

func utteranceText(t *testing.T, event openfloor.Event) string {
	t.Helper()
	require.Equal(t, openfloor.EventUtterance, event.EventType)
	require.NotNil(t, event.Parameters.DialogEvent)
	return event.Parameters.DialogEvent.Text()
}

func TestProcessEnvelope_EchoesConversationAndSchema(t *testing.T) {
	a := newTestAgent(&stubProvider{}, time.Millisecond)
	in := newInboundEnvelope()

	out := a.ProcessEnvelope(context.Background(), in)

	assert.Equal(t, in.Conversation.ID, out.Conversation.ID)
	assert.Equal(t, in.Schema.Version, out.Schema.Version)
	assert.Equal(t, testSpeakerURI, out.Sender.SpeakerURI)
	assert.Equal(t, testServiceURL, out.Sender.ServiceURL)
	assert.Empty(t, out.Events)
}

func TestProcessEnvelope_SearchScenario(t *testing.T) {
	provider := &stubProvider{result: &search.Result{Abstract: "It is sunny."}}
	a := newTestAgent(provider, time.Millisecond)
	in := newInboundEnvelope(utteranceWithTokens(nil, "weather", " ", "today"))

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 1)
	event := out.Events[0]
	require.NotNil(t, event.To)
	assert.Equal(t, userSpeakerURI, event.To.SpeakerURI)

	text := utteranceText(t, event)
	assert.Contains(t, text, `"weather today"`)
	assert.Contains(t, text, "It is sunny.")
	assert.Equal(t, []string{"weather today"}, provider.queries)
	assert.Equal(t, testSpeakerURI, event.Parameters.DialogEvent.SpeakerURI)
}

func TestProcessEnvelope_EmptyTokensPromptsForQuery(t *testing.T) {
	provider := &stubProvider{result: &search.Result{Abstract: "never used"}}
	a := newTestAgent(provider, time.Millisecond)
	in := newInboundEnvelope(utteranceWithTokens(nil))

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 1)
	assert.Equal(t, promptText, utteranceText(t, out.Events[0]))
	assert.Empty(t, provider.queries, "no provider call for an empty query")
}

func TestProcessEnvelope_MissingDialogEventPromptsForQuery(t *testing.T) {
	provider := &stubProvider{}
	a := newTestAgent(provider, time.Millisecond)
	in := newInboundEnvelope(openfloor.Event{EventType: openfloor.EventUtterance})

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 1)
	assert.Equal(t, promptText, utteranceText(t, out.Events[0]))
	assert.Empty(t, provider.queries)
}

func TestProcessEnvelope_ProviderFailureYieldsApology(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	a := newTestAgent(provider, time.Millisecond)
	in := newInboundEnvelope(utteranceWithTokens(nil, "anything"))

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 1)
	assert.Equal(t, apologyText, utteranceText(t, out.Events[0]))
}

func TestProcessEnvelope_NoResultsYieldsApology(t *testing.T) {
	provider := &stubProvider{err: search.ErrNoResults}
	a := newTestAgent(provider, time.Millisecond)
	in := newInboundEnvelope(utteranceWithTokens(nil, "gibberish"))

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 1)
	assert.Equal(t, apologyText, utteranceText(t, out.Events[0]))
}

func TestProcessEnvelope_GetManifests(t *testing.T) {
	a := newTestAgent(&stubProvider{}, time.Millisecond)
	in := newInboundEnvelope(openfloor.Event{EventType: openfloor.EventGetManifests})

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 1)
	event := out.Events[0]
	assert.Equal(t, openfloor.EventPublishManifests, event.EventType)
	require.NotNil(t, event.To)
	assert.Equal(t, userSpeakerURI, event.To.SpeakerURI)

	require.Len(t, event.Parameters.ServicingManifests, 1)
	manifest := event.Parameters.ServicingManifests[0]
	assert.Equal(t, testSpeakerURI, manifest.Identification.SpeakerURI)
	require.NotEmpty(t, manifest.Capabilities)
	assert.Contains(t, manifest.Capabilities[0].Keyphrases, "search")
}

func TestProcessEnvelope_UnrecognizedEventSkipped(t *testing.T) {
	a := newTestAgent(&stubProvider{}, time.Millisecond)
	in := newInboundEnvelope(openfloor.Event{EventType: "requestFloor"})

	out := a.ProcessEnvelope(context.Background(), in)

	assert.Empty(t, out.Events)
}

func TestProcessEnvelope_MixedEvents(t *testing.T) {
	provider := &stubProvider{result: &search.Result{Abstract: "Answer."}}
	a := newTestAgent(provider, time.Millisecond)
	in := newInboundEnvelope(
		openfloor.Event{EventType: openfloor.EventGetManifests},
		openfloor.Event{EventType: "requestFloor"},
		utteranceWithTokens(nil, "question"),
	)

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 2)
	assert.Equal(t, openfloor.EventPublishManifests, out.Events[0].EventType)
	assert.Equal(t, openfloor.EventUtterance, out.Events[1].EventType)
}

func TestAddressing(t *testing.T) {
	provider := &stubProvider{result: &search.Result{Abstract: "Answer."}}
	a := newTestAgent(provider, time.Millisecond)

	tests := []struct {
		name    string
		to      *openfloor.To
		handled bool
	}{
		{"no addressing", nil, true},
		{"my speaker uri", &openfloor.To{SpeakerURI: testSpeakerURI}, true},
		{"my service url", &openfloor.To{ServiceURL: testServiceURL}, true},
		{"loopback service url", &openfloor.To{ServiceURL: "http://localhost:8080/other"}, true},
		{"other speaker", &openfloor.To{SpeakerURI: "tag:example,2025:someone-else"}, false},
		{"other service", &openfloor.To{ServiceURL: "https://other.example.com"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newInboundEnvelope(utteranceWithTokens(tt.to, "query"))
			out := a.ProcessEnvelope(context.Background(), in)
			if tt.handled {
				assert.Len(t, out.Events, 1)
			} else {
				assert.Empty(t, out.Events)
			}
		})
	}
}

func TestProcessEnvelope_ProviderCallSpacing(t *testing.T) {
	const interval = 100 * time.Millisecond
	provider := &stubProvider{result: &search.Result{Abstract: "Answer."}}
	a := newTestAgent(provider, interval)
	in := newInboundEnvelope(
		utteranceWithTokens(nil, "first"),
		utteranceWithTokens(nil, "second"),
	)

	out := a.ProcessEnvelope(context.Background(), in)

	require.Len(t, out.Events, 2)
	require.Len(t, provider.callTimes, 2)
	// Small tolerance: the limiter measures from token consumption, which
	// happens a moment before the stub records its timestamp.
	spacing := provider.callTimes[1].Sub(provider.callTimes[0])
	assert.GreaterOrEqual(t, spacing, interval-5*time.Millisecond,
		"provider calls must be spaced at least the minimum interval apart")
}
