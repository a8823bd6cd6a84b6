package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/pkg/supabase"
)

// SupabasePromptRepository stores the catalog in the hosted "prompts" table.
type SupabasePromptRepository struct {
	client *supabase.Client
}

func NewSupabasePromptRepository(client *supabase.Client) *SupabasePromptRepository {
	return &SupabasePromptRepository{client: client}
}

func (r *SupabasePromptRepository) GetAll(ctx context.Context) ([]models.Prompt, error) {
	if r.client == nil {
		return nil, ErrNotConfigured
	}
	return r.list(ctx, r.client.From("prompts").Select("*").Order("created_at", false))
}

func (r *SupabasePromptRepository) GetByStatus(ctx context.Context, status string) ([]models.Prompt, error) {
	if r.client == nil {
		return nil, ErrNotConfigured
	}
	return r.list(ctx, r.client.From("prompts").Select("*").Eq("status", status).Order("created_at", false))
}

func (r *SupabasePromptRepository) list(ctx context.Context, q *supabase.QueryBuilder) ([]models.Prompt, error) {
	resp, err := q.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts: %w", err)
	}
	prompts := []models.Prompt{}
	if err := resp.JSON(&prompts); err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	return prompts, nil
}

// Create inserts the prompt. The id is left to the table default when empty.
func (r *SupabasePromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if r.client == nil {
		return ErrNotConfigured
	}
	row := map[string]any{
		"title":       prompt.Title,
		"description": prompt.Description,
		"type":        prompt.Type,
		"difficulty":  prompt.Difficulty,
		"level":       prompt.Level,
		"due_date":    prompt.DueDate,
		"status":      prompt.Status,
	}
	if prompt.ID != "" {
		row["id"] = prompt.ID
	}
	resp, err := r.client.From("prompts").ExecuteInsert(ctx, row)
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	var stored []models.Prompt
	if err := resp.JSON(&stored); err != nil {
		return fmt.Errorf("failed to decode created prompt: %w", err)
	}
	if len(stored) == 0 {
		return errors.New("failed to create prompt: no row returned")
	}
	*prompt = stored[0]
	return nil
}

func (r *SupabasePromptRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return ErrNotConfigured
	}
	if _, err := r.client.From("prompts").Eq("id", id).ExecuteDelete(ctx); err != nil {
		return fmt.Errorf("failed to delete prompt %s: %w", id, err)
	}
	return nil
}
