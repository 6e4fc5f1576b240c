package openfloor

// SchemaVersion is the Open Floor protocol version this package speaks.
const SchemaVersion = "1.0.0"

// Schema identifies the protocol revision an envelope conforms to.
type Schema struct {
	Version string `json:"version"`
}

// Conversation identifies the dialogue an envelope belongs to.
// The id is assigned by whichever party opened the floor and is echoed
// unchanged on every reply.
type Conversation struct {
	ID string `json:"id"`
}

// Sender identifies the agent that produced an envelope.
type Sender struct {
	SpeakerURI string `json:"speakerUri"`
	ServiceURL string `json:"serviceUrl,omitempty"`
}

// To addresses an event at a specific agent. A nil To means the event is
// for everyone on the floor.
type To struct {
	SpeakerURI string `json:"speakerUri,omitempty"`
	ServiceURL string `json:"serviceUrl,omitempty"`
}

// Envelope is the top-level message unit of the Open Floor protocol:
// sender identity, conversation id, and an ordered list of events.
// Envelopes are never mutated after construction; replies are built fresh.
type Envelope struct {
	Schema       Schema       `json:"schema"`
	Conversation Conversation `json:"conversation"`
	Sender       Sender       `json:"sender"`
	Events       []Event      `json:"events"`
}

// Payload is the on-the-wire wrapper around an envelope.
type Payload struct {
	OpenFloor Envelope `json:"openFloor"`
}

// NewEnvelope creates a reply envelope that shares the conversation id and
// schema version of the inbound envelope, sent by the given sender.
func NewEnvelope(in *Envelope, sender Sender, events []Event) *Envelope {
	if events == nil {
		events = []Event{}
	}
	return &Envelope{
		Schema:       in.Schema,
		Conversation: in.Conversation,
		Sender:       sender,
		Events:       events,
	}
}
