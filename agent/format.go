package agent

import (
	"fmt"
	"strings"

	"github.com/openfloor-dev/searchagent/internal/search"
)

const (
	maxRelatedTopics  = 3
	maxInfoboxEntries = 5
)

// formatResult renders an instant-answer result as a human-readable text
// block: header, abstract, definition, related topics, infobox facts.
// Sections with no content are omitted.
func formatResult(query string, r *search.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's what I found for %q:\n", query)

	if r.Abstract != "" {
		sb.WriteString("\n")
		sb.WriteString(r.Abstract)
		sb.WriteString("\n")
		writeSource(&sb, r.AbstractSource, r.AbstractURL)
	}

	if r.Definition != "" {
		fmt.Fprintf(&sb, "\nDefinition: %s\n", r.Definition)
		writeSource(&sb, r.DefinitionSource, r.DefinitionURL)
	}

	writeRelatedTopics(&sb, r.RelatedTopics)
	writeInfobox(&sb, r.Infobox)

	return strings.TrimRight(sb.String(), "\n")
}

func writeSource(sb *strings.Builder, source, url string) {
	switch {
	case source != "" && url != "":
		fmt.Fprintf(sb, "Source: %s (%s)\n", source, url)
	case source != "":
		fmt.Fprintf(sb, "Source: %s\n", source)
	case url != "":
		fmt.Fprintf(sb, "Source: %s\n", url)
	}
}

func writeRelatedTopics(sb *strings.Builder, topics []search.RelatedTopic) {
	n := 0
	for _, t := range topics {
		if t.Text == "" {
			continue
		}
		if n == 0 {
			sb.WriteString("\nRelated topics:\n")
		}
		n++
		fmt.Fprintf(sb, "%d. %s\n", n, t.Text)
		if t.FirstURL != "" {
			fmt.Fprintf(sb, "   %s\n", t.FirstURL)
		}
		if n == maxRelatedTopics {
			break
		}
	}
}

func writeInfobox(sb *strings.Builder, box *search.Infobox) {
	if box == nil {
		return
	}
	n := 0
	for _, entry := range box.Content {
		value := infoboxValue(entry.Value)
		if entry.Label == "" || value == "" {
			continue
		}
		if n == 0 {
			sb.WriteString("\nQuick facts:\n")
		}
		n++
		fmt.Fprintf(sb, "- %s: %s\n", entry.Label, value)
		if n == maxInfoboxEntries {
			break
		}
	}
}

// infoboxValue renders an infobox value as text. The provider mixes strings
// and numbers here; structured values are skipped.
func infoboxValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return ""
	}
}
