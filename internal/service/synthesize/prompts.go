package synthesize

import (
	"fmt"
	"strings"

	"voicedeck/internal/domain/models"
)

const createSystem = "You write presentation documents for product projects from narrated video " +
	"transcripts. Produce a structured markdown document with a top-level title heading, an " +
	"executive summary, objectives, key features, constraints, and next steps. Base every " +
	"statement on the transcripts; do not invent facts."

const updateSystem = "You maintain a presentation document for a product project. You are given " +
	"the current document and the full set of narrated transcripts. Integrate the information " +
	"into the existing sections without duplicating content and without changing the document " +
	"structure. Return the complete updated markdown document."

const summarySystem = "Summarize the following presentation document in 2 to 3 sentences, " +
	"describing what it now covers. Reply with the summary only."

func createPrompt(project *models.Project, transcripts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", project.Name)
	if project.Description != nil && *project.Description != "" {
		fmt.Fprintf(&b, "Project description: %s\n", *project.Description)
	}
	b.WriteString("\nTranscripts, in recording order:\n")
	writeTranscripts(&b, transcripts)
	return b.String()
}

func updatePrompt(project *models.Project, current string, transcripts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n\nCurrent document:\n---\n%s\n---\n", project.Name, current)
	b.WriteString("\nAll transcripts, in recording order:\n")
	writeTranscripts(&b, transcripts)
	return b.String()
}

func writeTranscripts(b *strings.Builder, transcripts []string) {
	for i, t := range transcripts {
		fmt.Fprintf(b, "\n[Recording %d]\n%s\n", i+1, t)
	}
}

// extractTitle returns the text of the first top-level markdown heading, or
// a default built from the project name when the document has none.
func extractTitle(content string, project *models.Project) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return fmt.Sprintf("Presentation document – %s", project.Name)
}
