package repositories

import (
	"context"

	"github.com/sanjay2518/FR/internal/models"
)

// PromptRepository defines the interface for prompt catalog access.
type PromptRepository interface {
	// GetAll returns every prompt, newest first.
	GetAll(ctx context.Context) ([]models.Prompt, error)
	// GetByStatus returns the prompts with the given status, newest first.
	GetByStatus(ctx context.Context, status string) ([]models.Prompt, error)
	// Create stores the prompt and refreshes it with the stored row.
	Create(ctx context.Context, prompt *models.Prompt) error
	// Delete removes a prompt. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
