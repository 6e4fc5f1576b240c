package openfloor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MimeTextPlain is the mime type of plain-text dialog features.
const MimeTextPlain = "text/plain"

// Token is one unit of a tokenized text feature.
type Token struct {
	Value string `json:"token"`
}

// TextFeature is the tokenized text payload of a dialog event.
type TextFeature struct {
	MimeType string  `json:"mimeType"`
	Tokens   []Token `json:"tokens"`
}

// DialogEvent carries the dialogue features of an utterance event.
// Each dialog event gets a unique id and a creation timestamp.
type DialogEvent struct {
	ID         string                 `json:"id"`
	SpeakerURI string                 `json:"speakerUri"`
	Span       Span                   `json:"span"`
	Features   map[string]TextFeature `json:"features"`
}

// Span records when a dialog event was produced.
type Span struct {
	StartTime string `json:"startTime"`
}

// NewDialogEvent creates a dialog event spoken by speakerURI whose text
// feature holds the given text as a single token.
func NewDialogEvent(speakerURI, text string) *DialogEvent {
	return &DialogEvent{
		ID:         uuid.New().String(),
		SpeakerURI: speakerURI,
		Span:       Span{StartTime: time.Now().UTC().Format(time.RFC3339)},
		Features: map[string]TextFeature{
			"text": {
				MimeType: MimeTextPlain,
				Tokens:   []Token{{Value: text}},
			},
		},
	}
}

// Text concatenates the token values of the text feature in order, with no
// separator. It returns "" when the event has no text feature or no tokens.
func (d *DialogEvent) Text() string {
	if d == nil {
		return ""
	}
	feature, ok := d.Features["text"]
	if !ok || len(feature.Tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range feature.Tokens {
		sb.WriteString(t.Value)
	}
	return sb.String()
}
