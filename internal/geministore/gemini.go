package geministore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "jobspec-miner/internal/errors"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Options struct {
	// BaseURL overrides the Gemini API endpoint. Empty uses the default.
	BaseURL string
	// Timeout bounds a single HTTP request. Zero means no client timeout.
	Timeout time.Duration
}

type GeminiClient struct {
	Client *genai.Client
}

func New(ctx context.Context, apiKey string, opts Options) (*GeminiClient, error) {

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	}

	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)

	if err != nil {
		return nil, fmt.Errorf("API key error: %w", err)
	}

	return &GeminiClient{Client: client}, nil
}

// GenerateJSON asks the model for a JSON document constrained by schema and
// returns the raw response text.
func (g *GeminiClient) GenerateJSON(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error) {

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	result, err := g.Client.Models.GenerateContent(
		ctx,
		model,
		genai.Text(prompt),
		config,
	)

	if err != nil {
		return "", classify(err)
	}

	return result.Text(), nil
}

// classify marks errors that no amount of retrying will fix.
func classify(err error) error {

	code := 0

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError

	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	default:
		if st, ok := status.FromError(err); ok {
			switch st.Code() {
			case codes.Unauthenticated:
				code = http.StatusUnauthorized
			case codes.PermissionDenied:
				code = http.StatusForbidden
			case codes.InvalidArgument:
				code = http.StatusBadRequest
			}
		}
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("gemini authentication failed: %w: %w", apperrors.ErrCredentialRejected, err)
	case http.StatusBadRequest:
		return fmt.Errorf("gemini invalid input (400): %w: %w", apperrors.ErrInvalidRequest, err)
	}

	return fmt.Errorf("failed to generate content: %w", err)
}
