package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Generator is the single call the extraction pipeline needs from the
// inference service: a prompt and a response schema in, JSON text out.
type Generator interface {
	GenerateJSON(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error)
}
