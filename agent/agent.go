// Package agent implements the Open Floor search assistant: envelope
// routing, query handling, and manifest publication.
package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/openfloor-dev/searchagent/internal/observability"
	"github.com/openfloor-dev/searchagent/internal/search"
	"github.com/openfloor-dev/searchagent/openfloor"
	obsmetrics "github.com/openfloor-dev/searchagent/pkg/observability"
)

// SearchProvider performs one instant-answer lookup. *search.Client is the
// production implementation.
type SearchProvider interface {
	Instant(ctx context.Context, query string) (*search.Result, error)
}

// Config holds everything needed to construct an Agent.
type Config struct {
	// Identity is the agent's fixed identity. Never mutated after New.
	Identity openfloor.Identification

	// Provider performs searches. Defaults to the public DuckDuckGo client.
	Provider SearchProvider

	// MinSearchInterval is the minimum spacing between provider call
	// initiations, shared across all concurrent requests.
	MinSearchInterval time.Duration
}

// Agent is a single conversational agent that answers utterances by
// delegating to a web-search provider. The identity and manifest are fixed
// at construction; concurrent envelope processing shares them read-only.
// The rate limiter is the only mutable state and is agent-wide.
type Agent struct {
	identity openfloor.Identification
	manifest openfloor.Manifest
	provider SearchProvider
	limiter  *searchLimiter
}

// New constructs the agent, building its capability manifest once.
func New(cfg Config) *Agent {
	provider := cfg.Provider
	if provider == nil {
		provider = search.NewClient("")
	}
	interval := cfg.MinSearchInterval
	if interval == 0 {
		interval = 2 * time.Second
	}
	return &Agent{
		identity: cfg.Identity,
		manifest: buildManifest(cfg.Identity),
		provider: provider,
		limiter:  newSearchLimiter(interval),
	}
}

// Manifest returns the agent's capability manifest.
func (a *Agent) Manifest() openfloor.Manifest {
	return a.manifest
}

// ProcessEnvelope routes each event of the inbound envelope and assembles
// the reply. It never panics or returns an error: per-event failures are
// absorbed into conversational utterances, and unrecognized or misaddressed
// events are skipped. The reply echoes the inbound conversation id and
// schema version and may carry zero events.
func (a *Agent) ProcessEnvelope(ctx context.Context, in *openfloor.Envelope) *openfloor.Envelope {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "agent.ProcessEnvelope")
	defer span.End()
	span.SetAttributes(
		attribute.String("conversation.id", in.Conversation.ID),
		attribute.Int("envelope.events", len(in.Events)),
	)

	var out []openfloor.Event
	for _, event := range in.Events {
		if !a.addressedToMe(event.To) {
			obsmetrics.RecordEvent(string(event.EventType), "skipped")
			continue
		}

		switch event.EventType {
		case openfloor.EventUtterance:
			out = append(out, a.handleUtterance(ctx, event, in))

		case openfloor.EventGetManifests:
			out = append(out, openfloor.NewPublishManifestsEvent(
				[]openfloor.Manifest{a.manifest},
				&openfloor.To{SpeakerURI: in.Sender.SpeakerURI},
			))
			obsmetrics.RecordEvent(string(event.EventType), "manifest")

		default:
			// Unrecognized event types are dropped silently, not errors.
			log.Printf("Skipping unrecognized event type %q in conversation %s",
				event.EventType, in.Conversation.ID)
			obsmetrics.RecordEvent(string(event.EventType), "skipped")
		}
	}

	obsmetrics.RecordEnvelope(time.Since(start))
	return openfloor.NewEnvelope(in, a.sender(), out)
}

// addressedToMe reports whether an event with the given addressing should be
// handled by this agent. Events with no addressing are for everyone.
// Matching any serviceUrl that merely contains "localhost" is deliberately
// loose: local multi-agent floors rely on it, so it stays.
func (a *Agent) addressedToMe(to *openfloor.To) bool {
	if to == nil {
		return true
	}
	if to.SpeakerURI != "" && to.SpeakerURI == a.identity.SpeakerURI {
		return true
	}
	if to.ServiceURL != "" && to.ServiceURL == a.identity.ServiceURL {
		return true
	}
	return strings.Contains(to.ServiceURL, "localhost")
}

func (a *Agent) sender() openfloor.Sender {
	return openfloor.Sender{
		SpeakerURI: a.identity.SpeakerURI,
		ServiceURL: a.identity.ServiceURL,
	}
}
