package extract

import (
	"strings"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
)

// LinesFromBlocks keeps LINE blocks with text and joins them one per line.
func LinesFromBlocks(blocks []documentModel.Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.BlockType != documentModel.BlockTypeLine {
			continue
		}
		if text := strings.TrimSpace(b.Text); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
