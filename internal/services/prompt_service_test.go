package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/repositories"
	"github.com/sanjay2518/FR/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromptService_Add(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPromptRepository)
	events := new(MockEventPublisher)
	service := services.NewPromptService(repo, events)

	repo.On("Create", ctx, mock.MatchedBy(func(p *models.Prompt) bool {
		return p.Status == models.PromptStatusActive && p.Level == models.DefaultPromptLevel
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Prompt).ID = "p-1"
	}).Return(nil).Once()
	events.On("PublishEvent", services.EventPromptCreated, mock.MatchedBy(func(d map[string]interface{}) bool {
		return d["prompt_id"] == "p-1"
	})).Return(nil).Once()

	prompt, err := service.Add(ctx, services.NewPrompt{Title: "T", Description: "D", Type: "listening", Difficulty: "easy"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("p-1"), prompt.ID)
	assert.Equal(t, "A1", prompt.Level)
	assert.Equal(t, "active", prompt.Status)

	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestPromptService_Add_KeepsLevelAndDueDate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPromptRepository)
	service := services.NewPromptService(repo, nil)

	due := "2024-06-01"
	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	prompt, err := service.Add(ctx, services.NewPrompt{Title: "T", Description: "D", Type: "writing", Difficulty: "hard", Level: "B2", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "B2", prompt.Level)
	require.NotNil(t, prompt.DueDate)
	assert.Equal(t, due, *prompt.DueDate)
}

func TestPromptService_Add_MissingField(t *testing.T) {
	repo := new(MockPromptRepository)
	service := services.NewPromptService(repo, nil)

	_, err := service.Add(context.Background(), services.NewPrompt{Title: "T", Description: "D", Type: "listening"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Difficulty")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPromptService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPromptRepository)
	service := services.NewPromptService(repo, nil)

	repo.On("GetAll", ctx).Return(nil, nil).Once()
	prompts, err := service.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, prompts, "an empty catalog is an empty list")
	assert.Empty(t, prompts)

	repo.On("GetAll", ctx).Return(nil, repositories.ErrNotConfigured).Once()
	_, err = service.List(ctx)
	assert.ErrorIs(t, err, repositories.ErrNotConfigured)
}

func TestPromptService_ListForUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPromptRepository)
	service := services.NewPromptService(repo, nil)

	due := "2024-06-01"
	repo.On("GetByStatus", ctx, models.PromptStatusActive).Return([]models.Prompt{
		{ID: "p-1", Status: models.PromptStatusActive, DueDate: &due},
		{ID: "p-2", Status: models.PromptStatusActive},
	}, nil).Once()

	prompts, err := service.ListForUser(ctx, "42")
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	for _, p := range prompts {
		assert.Equal(t, models.PromptStatusPending, p.Status)
	}
	require.NotNil(t, prompts[0].DueDateAlias)
	assert.Equal(t, due, *prompts[0].DueDateAlias)
	assert.Nil(t, prompts[1].DueDateAlias)
}

func TestPromptService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPromptRepository)
	service := services.NewPromptService(repo, nil)

	repo.On("Delete", ctx, "p-1").Return(nil).Once()
	repo.On("Delete", ctx, "p-2").Return(errors.New("boom")).Once()

	assert.NoError(t, service.Delete(ctx, "p-1"))
	assert.Error(t, service.Delete(ctx, "p-2"))
}
