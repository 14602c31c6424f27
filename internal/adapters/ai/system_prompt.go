package ai

import "strings"

const markdownInstruction = "Format your response using Markdown."

// systemInstruction flattens a role's description and ordered instructions
// into the system prompt sent alongside every request.
func systemInstruction(req GenerateRequest) string {
	var b strings.Builder
	if req.Description != "" {
		b.WriteString(req.Description)
		b.WriteString("\n\n")
	}

	b.WriteString("Instructions:\n")
	for _, instruction := range req.Instructions {
		b.WriteString("- ")
		b.WriteString(instruction)
		b.WriteString("\n")
	}
	b.WriteString("- ")
	b.WriteString(markdownInstruction)

	return b.String()
}
