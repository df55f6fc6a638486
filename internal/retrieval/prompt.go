package retrieval

import (
	"strings"

	"github.com/occulog/occulog/internal/models"
)

// NoInfoAnswer is the terminal answer when both retrieval paths come back
// empty. Generation is skipped entirely in that case.
const NoInfoAnswer = "No relevant information found."

// BuildPrompt assembles the generation prompt from the bounded context,
// optionally preceded by the conversation-memory window.
func BuildPrompt(entries []string, question string, memory []models.QA) string {
	var sb strings.Builder
	sb.WriteString("You are an expert log analyst. Use the following context to answer the question.\n\n")

	if len(memory) > 0 {
		sb.WriteString("Previous Q&A:\n")
		for _, qa := range memory {
			sb.WriteString("Q: ")
			sb.WriteString(qa.Question)
			sb.WriteString("\nA: ")
			sb.WriteString(qa.Answer)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Relevant entries:\n")
	sb.WriteString(strings.Join(entries, "\n"))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer:")
	return sb.String()
}
