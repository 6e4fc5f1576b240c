package agent

import "github.com/openfloor-dev/searchagent/openfloor"

// buildManifest assembles the agent's fixed capability manifest from its
// identity. Called once from New; the result is shared read-only.
func buildManifest(id openfloor.Identification) openfloor.Manifest {
	return openfloor.NewManifest(id, []openfloor.Capability{
		{
			Keyphrases: []string{"search", "web", "lookup", "find", "question"},
			Descriptions: []string{
				"Searches the web using the DuckDuckGo instant-answer API",
				"Answers questions with summaries, definitions, related topics, and quick facts",
			},
		},
	})
}
