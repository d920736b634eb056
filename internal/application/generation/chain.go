// Package generation implements the shared single-fallback policy for text
// generation backends. Every AI-backed use case (meal plans, recipes, the
// assistant, video scripts) funnels through one Chain so the retry behavior
// stays uniform.
package generation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// Chain holds a primary generator and an optional fallback. A request is sent
// to the primary; if that fails with a retryable error (transport, auth,
// quota, model unavailable) the fallback gets exactly one attempt. Malformed
// responses are never retried: re-prompting would mask a prompt/schema
// mismatch rather than fix it.
type Chain struct {
	primary  outbound.TextGenerator
	fallback outbound.TextGenerator
	audit    outbound.GenerationLog
	logger   *zap.Logger
}

// NewChain creates a generation chain. fallback and audit may be nil.
func NewChain(primary, fallback outbound.TextGenerator, audit outbound.GenerationLog, logger *zap.Logger) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		audit:    audit,
		logger:   logger.Named("generation-chain"),
	}
}

// Generate runs one prompt through the chain. kind labels the use case in
// logs and audit records (meal_plan, recipe, assistant, video_script).
func (c *Chain) Generate(ctx context.Context, kind, prompt string) (string, error) {
	text, err := c.attempt(ctx, kind, c.primary, prompt, false)
	if err == nil {
		return text, nil
	}

	if c.fallback == nil || !apperrors.Retryable(err) {
		return "", err
	}

	c.logger.Warn("Primary generator failed, trying fallback",
		zap.String("kind", kind),
		zap.String("primary", c.primary.Name()),
		zap.String("fallback", c.fallback.Name()),
		zap.Error(err))

	return c.attempt(ctx, kind, c.fallback, prompt, true)
}

func (c *Chain) attempt(ctx context.Context, kind string, gen outbound.TextGenerator, prompt string, isFallback bool) (string, error) {
	start := time.Now()
	text, err := gen.Generate(ctx, prompt)

	record := outbound.GenerationRecord{
		ID:         uuid.New(),
		Kind:       kind,
		Backend:    gen.Name(),
		Prompt:     prompt,
		Fallback:   isFallback,
		Success:    err == nil,
		DurationMS: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if err != nil {
		record.ErrorCode = string(apperrors.GetCode(err))
	}

	// Audit failures must never fail the generation itself
	if c.audit != nil {
		if auditErr := c.audit.Record(ctx, record); auditErr != nil {
			c.logger.Warn("Failed to record generation attempt",
				zap.String("kind", kind),
				zap.Error(auditErr))
		}
	}

	if err != nil {
		return "", err
	}
	return text, nil
}
