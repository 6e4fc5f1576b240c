package openfloor

// EventType discriminates the closed set of event kinds this package
// understands. Anything else decodes fine but routes to the caller's
// "unrecognized" arm.
type EventType string

const (
	// EventUtterance carries natural-language dialogue content.
	EventUtterance EventType = "utterance"

	// EventGetManifests asks an agent to publish its capability manifest.
	EventGetManifests EventType = "getManifests"

	// EventPublishManifests carries one or more capability manifests.
	EventPublishManifests EventType = "publishManifests"
)

// Event is one unit of conversational intent inside an envelope.
// Which parameter fields are populated depends on EventType.
type Event struct {
	EventType  EventType  `json:"eventType"`
	To         *To        `json:"to,omitempty"`
	Parameters Parameters `json:"parameters,omitempty"`
}

// Parameters holds the per-type payload of an event. Unknown event types
// carry none of these fields, which is harmless.
type Parameters struct {
	DialogEvent        *DialogEvent `json:"dialogEvent,omitempty"`
	ServicingManifests []Manifest   `json:"servicingManifests,omitempty"`
}

// NewUtteranceEvent builds an utterance event spoken by speakerURI with a
// single text token, addressed to the given recipient.
func NewUtteranceEvent(speakerURI, text string, to *To) Event {
	return Event{
		EventType: EventUtterance,
		To:        to,
		Parameters: Parameters{
			DialogEvent: NewDialogEvent(speakerURI, text),
		},
	}
}

// NewPublishManifestsEvent builds a publishManifests event carrying the
// given manifests, addressed to the requester.
func NewPublishManifestsEvent(manifests []Manifest, to *To) Event {
	return Event{
		EventType: EventPublishManifests,
		To:        to,
		Parameters: Parameters{
			ServicingManifests: manifests,
		},
	}
}
