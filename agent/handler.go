package agent

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/openfloor-dev/searchagent/internal/observability"
	"github.com/openfloor-dev/searchagent/openfloor"
	obsmetrics "github.com/openfloor-dev/searchagent/pkg/observability"
)

const (
	promptText = "Please provide a search query."

	apologyText = "I'm sorry, I couldn't find anything for that search. " +
		"Please try a different query."
)

// handleUtterance extracts the query from an utterance event, performs a
// rate-limited search, and returns the reply utterance. It always produces
// an event: missing queries yield a prompt, and any search or formatting
// failure yields an apology rather than an error.
func (a *Agent) handleUtterance(ctx context.Context, event openfloor.Event, in *openfloor.Envelope) openfloor.Event {
	ctx, span := observability.StartSpan(ctx, "agent.handleUtterance")
	defer span.End()

	to := &openfloor.To{SpeakerURI: in.Sender.SpeakerURI}

	query := event.Parameters.DialogEvent.Text()
	if query == "" {
		obsmetrics.RecordEvent(string(event.EventType), "prompt")
		return openfloor.NewUtteranceEvent(a.identity.SpeakerURI, promptText, to)
	}
	span.SetAttributes(attribute.String("search.query", query))

	waitStart := time.Now()
	if err := a.limiter.Wait(ctx); err != nil {
		log.Printf("Rate limiter wait aborted: %v", err)
		obsmetrics.RecordEvent(string(event.EventType), "apology")
		return openfloor.NewUtteranceEvent(a.identity.SpeakerURI, apologyText, to)
	}
	obsmetrics.RecordRateLimitWait(time.Since(waitStart))

	searchStart := time.Now()
	result, err := a.provider.Instant(ctx, query)
	if err != nil {
		log.Printf("Search failed for query %q: %v", query, err)
		obsmetrics.RecordSearchCall("error", time.Since(searchStart))
		obsmetrics.RecordEvent(string(event.EventType), "apology")
		return openfloor.NewUtteranceEvent(a.identity.SpeakerURI, apologyText, to)
	}
	obsmetrics.RecordSearchCall("ok", time.Since(searchStart))

	obsmetrics.RecordEvent(string(event.EventType), "answered")
	return openfloor.NewUtteranceEvent(a.identity.SpeakerURI, formatResult(query, result), to)
}
