package openfloor

// Identification is an agent's identity block within a manifest.
type Identification struct {
	SpeakerURI         string `json:"speakerUri"`
	ServiceURL         string `json:"serviceUrl"`
	Organization       string `json:"organization,omitempty"`
	ConversationalName string `json:"conversationalName,omitempty"`
	Synopsis           string `json:"synopsis,omitempty"`
}

// Capability advertises one thing an agent can do: trigger keyphrases plus
// human-readable descriptions.
type Capability struct {
	Keyphrases   []string `json:"keyphrases"`
	Descriptions []string `json:"descriptions"`
}

// Manifest is an agent's self-describing capability advertisement.
// Built once at agent construction and shared read-only afterwards.
type Manifest struct {
	Identification Identification `json:"identification"`
	Capabilities   []Capability   `json:"capabilities"`
}

// NewManifest assembles a manifest from identity and capabilities.
// Pure construction, no side effects.
func NewManifest(id Identification, caps []Capability) Manifest {
	return Manifest{
		Identification: id,
		Capabilities:   caps,
	}
}
