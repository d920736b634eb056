package feedback

import (
	"context"
	"testing"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryFeedbackRepo struct {
	entries []*mealplan.Feedback
}

func (r *memoryFeedbackRepo) Create(ctx context.Context, fb *mealplan.Feedback) error {
	r.entries = append(r.entries, fb)
	return nil
}

func (r *memoryFeedbackRepo) List(ctx context.Context, offset, limit int) ([]*mealplan.Feedback, int, error) {
	total := len(r.entries)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return r.entries[offset:end], total, nil
}

func TestSubmit(t *testing.T) {
	repo := &memoryFeedbackRepo{}
	svc := NewService(repo, zap.NewNop())

	fb, err := svc.Submit(context.Background(), inbound.FeedbackCommand{
		UserID:   "user-1",
		Rating:   4,
		Feedback: "Good variety of meals",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, fb.Rating)
	assert.Equal(t, "Good variety of meals", fb.Feedback)
	assert.NotZero(t, fb.ID)
	assert.Len(t, repo.entries, 1)
}

func TestSubmitRejectsBadRating(t *testing.T) {
	svc := NewService(&memoryFeedbackRepo{}, zap.NewNop())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), inbound.FeedbackCommand{Rating: rating})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
	}
}

func TestSubmitAnonymousAllowed(t *testing.T) {
	svc := NewService(&memoryFeedbackRepo{}, zap.NewNop())

	fb, err := svc.Submit(context.Background(), inbound.FeedbackCommand{Rating: 5})
	require.NoError(t, err)
	assert.Empty(t, fb.UserID)
}

func TestList(t *testing.T) {
	repo := &memoryFeedbackRepo{}
	svc := NewService(repo, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(context.Background(), inbound.FeedbackCommand{Rating: 5})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), inbound.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, list.Total)
	assert.Len(t, list.Entries, 2)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 2, list.PageSize)
}
