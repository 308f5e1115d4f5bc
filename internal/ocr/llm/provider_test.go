package llm

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Claim CLM-1 | 2 files, 12 kB", []FileSummary{
		{Filename: "bill.pdf", Summary: "Room charges 4000"},
		{Filename: "scan.png", Summary: "Discharge summary"},
	})

	for _, want := range []string{"Claim CLM-1 | 2 files, 12 kB", "- bill.pdf: Room charges 4000", "- scan.png: Discharge summary"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Index(prompt, "bill.pdf") > strings.Index(prompt, "scan.png") {
		t.Error("files must keep submission order")
	}
}
