package extractor

import (
	"fmt"
	"strings"

	"jobspec-miner/internal/models"
)

// BuildPrompt embeds the posting verbatim and lists every field the model
// should fill, telling it to leave unmentioned fields empty.
func BuildPrompt(jobDescription string) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following job description and extract all relevant structured information.\n\n")
	sb.WriteString("Extract the following fields:\n")
	for _, f := range models.Fields {
		kind := "string or null"
		if f.List {
			kind = "array of strings"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", f.Name, kind, f.Description))
	}

	sb.WriteString("\nJob Description:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\n")
	sb.WriteString("Extract all relevant information. If a field is not mentioned in the job description, ")
	sb.WriteString("use null for optional string fields or an empty array for list fields. ")
	sb.WriteString("Do not guess or invent values that are not in the text.")

	return sb.String()
}
