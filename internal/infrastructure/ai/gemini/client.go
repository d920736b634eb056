// Package gemini provides the hosted Gemini text generation backend
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const backendName = "gemini"

// Client implements outbound.TextGenerator against the Gemini API.
// One client is constructed at startup and injected everywhere; there is no
// package-level singleton.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	logger *zap.Logger
}

// NewClient creates a Gemini client. A missing API key is an auth error at
// construction time, not at first call.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, apperrors.NewAuthError(backendName)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperrors.NewTransportError(backendName, err)
	}

	logger.Info("Gemini client initialized", zap.String("model", model))

	return &Client{
		client: client,
		model:  client.GenerativeModel(model),
		name:   model,
		logger: logger.Named("gemini-client"),
	}, nil
}

// Name identifies the backend in logs and audit records
func (c *Client) Name() string {
	return backendName
}

// Generate sends one prompt and returns the raw completion text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", c.mapError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewModelUnavailableError(backendName, c.name)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", apperrors.NewMalformedResponseError("gemini returned a non-text part", "")
	}

	return string(text), nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.client.Close()
}

// mapError translates Gemini API failures into the shared error taxonomy
func (c *Client) mapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewAuthError(backendName).WithCause(err)
		case http.StatusTooManyRequests:
			return apperrors.NewQuotaExceededError(backendName).WithCause(err)
		case http.StatusNotFound:
			return apperrors.NewModelUnavailableError(backendName, c.name).WithCause(err)
		}
	}
	return apperrors.NewTransportError(backendName, err)
}

var _ outbound.TextGenerator = (*Client)(nil)
