// Package assistant implements the conversational cooking assistant. Unlike
// the planner, the assistant's replies are free text: no JSON extraction, the
// raw completion is the result.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements inbound.AssistantService
type Service struct {
	chain  *generation.Chain
	logger *zap.Logger
}

// NewService creates the assistant service
func NewService(chain *generation.Chain, logger *zap.Logger) *Service {
	return &Service{
		chain:  chain,
		logger: logger.Named("assistant-service"),
	}
}

// Chat answers one user turn, optionally grounded in the current meal plan
func (s *Service) Chat(ctx context.Context, cmd inbound.ChatCommand) (*inbound.ChatReply, error) {
	if strings.TrimSpace(cmd.Message) == "" {
		return nil, apperrors.NewValidationError(mealplan.ErrEmptyMessage.Error())
	}

	prompt := buildPrompt(cmd.Message, cmd.CurrentPlan)
	text, err := s.chain.Generate(ctx, "assistant", prompt)
	if err != nil {
		return nil, err
	}

	reply := strings.TrimSpace(text)
	if reply == "" {
		return nil, apperrors.NewMalformedResponseError("assistant returned an empty reply", text)
	}

	s.logger.Debug("Assistant reply generated", zap.Int("reply_length", len(reply)))
	return &inbound.ChatReply{Reply: reply}, nil
}

func buildPrompt(message string, plan *mealplan.MealPlan) string {
	var b strings.Builder

	b.WriteString("You are a helpful AI cooking assistant. ")
	if plan != nil {
		fmt.Fprintf(&b, "Context: the user's current meal plan is breakfast %q, lunch %q, snack %q, dinner %q. ",
			plan.Breakfast.Name, plan.Lunch.Name, plan.Snack.Name, plan.Dinner.Name)
	}

	fmt.Fprintf(&b, "\n\nUser question: %s\n\n", message)

	b.WriteString(`Please provide a helpful, encouraging response with practical cooking advice. Format your response with:
- Use **bold** for important terms or headings
- Use bullet points (- ) for lists and tips
- Use numbered lists (1. 2. 3.) for step-by-step instructions
- Break content into short paragraphs for readability
- Add relevant cooking tips and suggestions

Be conversational, supportive, and informative.`)

	return b.String()
}
