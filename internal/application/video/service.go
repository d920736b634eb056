// Package video implements the simulated cooking video pipeline: script
// generation through the planner, provider selection by remaining free-tier
// credits, per-scene placeholder rendering, and a combine step. Credits are
// tracked as an explicit value struct; every call returns the caller a
// snapshot of what remains.
package video

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// ScriptGenerator produces the scene list for a recipe. The planner service
// satisfies this.
type ScriptGenerator interface {
	GenerateVideoScript(ctx context.Context, recipeName string, ingredients, steps []string) (mealplan.VideoScript, error)
}

// Service implements inbound.VideoService
type Service struct {
	scripts    ScriptGenerator
	sceneDelay time.Duration
	logger     *zap.Logger

	mu     sync.Mutex
	budget inbound.ProviderBudget
}

// NewService creates the video service with a starting credit budget.
// sceneDelay simulates the per-scene render time of a real provider.
func NewService(scripts ScriptGenerator, budget inbound.ProviderBudget, sceneDelay time.Duration, logger *zap.Logger) *Service {
	return &Service{
		scripts:    scripts,
		sceneDelay: sceneDelay,
		budget:     budget,
		logger:     logger.Named("video-service"),
	}
}

// Budget returns a snapshot of the remaining credits
func (s *Service) Budget() inbound.ProviderBudget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget
}

// GenerateScript produces just the script, without rendering
func (s *Service) GenerateScript(ctx context.Context, cmd inbound.GenerateVideoCommand) (mealplan.VideoScript, error) {
	return s.scripts.GenerateVideoScript(ctx, cmd.RecipeName, cmd.Ingredients, cmd.Steps)
}

// GenerateVideo runs the full pipeline: script, scene renders, voiceover and
// combine. The render loop honors ctx cancellation between scenes.
func (s *Service) GenerateVideo(ctx context.Context, cmd inbound.GenerateVideoCommand) (*inbound.VideoResult, error) {
	script, err := s.scripts.GenerateVideoScript(ctx, cmd.RecipeName, cmd.Ingredients, cmd.Steps)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	budget := s.budget
	s.mu.Unlock()

	provider := ChooseProvider(budget)
	s.logger.Info("Rendering cooking video",
		zap.String("recipe", cmd.RecipeName),
		zap.String("provider", provider),
		zap.Int("scenes", len(script)))

	sceneURLs, err := s.renderScenes(ctx, script, provider)
	if err != nil {
		return nil, err
	}

	voiceover := s.generateVoiceover(script)
	videoURL, thumbnail := s.combine(sceneURLs, voiceover)

	remaining := debit(budget, provider, len(script))
	s.mu.Lock()
	s.budget = remaining
	s.mu.Unlock()

	return &inbound.VideoResult{
		ID:        fmt.Sprintf("video_%s", uuid.New().String()),
		Provider:  provider,
		VideoURL:  videoURL,
		Thumbnail: thumbnail,
		Duration:  script.TotalDuration(),
		Status:    "completed",
		CreatedAt: time.Now(),
		Script:    script,
		Remaining: remaining,
	}, nil
}

func (s *Service) renderScenes(ctx context.Context, script mealplan.VideoScript, provider string) ([]string, error) {
	urls := make([]string, 0, len(script))
	for i, scene := range script {
		s.logger.Debug("Rendering scene",
			zap.Int("scene", i+1),
			zap.Int("total", len(script)),
			zap.String("visual", scene.Visual))

		if err := s.wait(ctx, s.sceneDelay); err != nil {
			return nil, err
		}

		urls = append(urls, fmt.Sprintf("https://video.nutriplan.app/%s/scene-%d-%s.mp4",
			provider, i+1, uuid.New().String()[:8]))
	}
	return urls, nil
}

func (s *Service) generateVoiceover(script mealplan.VideoScript) string {
	// Placeholder voiceover track; a real pipeline would call a TTS provider
	return fmt.Sprintf("https://audio.nutriplan.app/voiceover-%s.mp3", uuid.New().String()[:8])
}

func (s *Service) combine(sceneURLs []string, voiceover string) (string, string) {
	_ = voiceover
	if len(sceneURLs) == 0 {
		return "https://video.nutriplan.app/final-recipe.mp4", "https://video.nutriplan.app/thumbnail.jpg"
	}
	return sceneURLs[0], "https://video.nutriplan.app/thumbnail.jpg"
}

// wait sleeps for d but aborts when ctx is cancelled
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(err, "video generation cancelled")
		}
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return apperrors.Wrap(ctx.Err(), "video generation cancelled")
	case <-timer.C:
		return nil
	}
}
