package llm

import (
	"context"
	"fmt"
	"strings"
)

// Narrator writes a short narrative over the heuristic per-file summaries.
type Narrator interface {
	Narrate(ctx context.Context, header string, files []FileSummary) (string, error)
}

type FileSummary struct {
	Filename string
	Summary  string
}

// BuildPrompt is shared by every provider so they all see the same facts.
func BuildPrompt(header string, files []FileSummary) string {
	var sb strings.Builder
	sb.WriteString("Claim: ")
	sb.WriteString(header)
	sb.WriteString("\n\nDocuments:\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "- %s: %s\n", f.Filename, f.Summary)
	}
	sb.WriteString("\nWrite the adjudicator summary.")
	return sb.String()
}
