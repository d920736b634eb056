// Package ollama provides the local Ollama text generation backend, used as
// the fallback when the hosted backend is unreachable.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

const backendName = "ollama"

// Client implements outbound.TextGenerator against a local Ollama server
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates an Ollama client
func NewClient(baseURL, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "mistral"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", baseURL),
		zap.String("model", model),
		zap.Duration("timeout", timeout))

	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("ollama-client"),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Name identifies the backend in logs and audit records
func (c *Client) Name() string {
	return backendName
}

// HealthCheck verifies the Ollama server is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return apperrors.NewTransportError(backendName, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.NewTransportError(backendName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewTransportError(backendName,
			fmt.Errorf("health check returned status %d", resp.StatusCode))
	}

	c.logger.Debug("Ollama health check passed")
	return nil
}

// Generate sends one prompt through /api/generate and returns the completion
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode ollama request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewTransportError(backendName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewTransportError(backendName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError(backendName, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Ollama returns 404 for a model that is not pulled
		return "", apperrors.NewModelUnavailableError(backendName, c.model).
			WithMetadata("response", string(respBody))
	case resp.StatusCode != http.StatusOK:
		return "", apperrors.NewTransportError(backendName,
			fmt.Errorf("generate returned status %d: %s", resp.StatusCode, respBody))
	}

	var gen generateResponse
	if err := json.Unmarshal(respBody, &gen); err != nil {
		return "", apperrors.NewMalformedResponseError("ollama response is not valid JSON", string(respBody)).WithCause(err)
	}

	return gen.Response, nil
}

var _ outbound.TextGenerator = (*Client)(nil)
