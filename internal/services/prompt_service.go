package services

import (
	"context"
	"fmt"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/repositories"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// NewPrompt carries the fields of a catalog entry to add.
type NewPrompt struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Type        string `validate:"required"`
	Difficulty  string `validate:"required"`
	Level       string
	DueDate     *string
}

// PromptService manages the prompt catalog.
type PromptService struct {
	repo     repositories.PromptRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewPromptService creates a new PromptService. events may be nil.
func NewPromptService(repo repositories.PromptRepository, events EventPublisher) *PromptService {
	return &PromptService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// List returns the whole catalog, newest first.
func (s *PromptService) List(ctx context.Context) ([]models.Prompt, error) {
	prompts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	return prompts, nil
}

// Add stores an active prompt. Level defaults to A1.
func (s *PromptService) Add(ctx context.Context, in NewPrompt) (*models.Prompt, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("missing required prompt field: %w", err)
	}

	level := in.Level
	if level == "" {
		level = models.DefaultPromptLevel
	}
	prompt := &models.Prompt{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Difficulty:  in.Difficulty,
		Level:       level,
		DueDate:     in.DueDate,
		Status:      models.PromptStatusActive,
	}
	if err := s.repo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	log.WithField("prompt_id", prompt.ID).Info("Prompt added")
	publish(s.events, EventPromptCreated, map[string]interface{}{
		"prompt_id": prompt.ID,
		"title":     prompt.Title,
		"type":      prompt.Type,
	})
	return prompt, nil
}

// Delete removes a prompt. An unknown id is not an error.
func (s *PromptService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.WithField("prompt_id", id).Info("Prompt deleted")
	return nil
}

// ListForUser returns the active prompts shaped as a learner's task list: every
// entry is reported as pending. The learner's own submissions are not consulted.
func (s *PromptService) ListForUser(ctx context.Context, userID string) ([]models.UserPrompt, error) {
	prompts, err := s.repo.GetByStatus(ctx, models.PromptStatusActive)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserPrompt, 0, len(prompts))
	for _, p := range prompts {
		p.Status = models.PromptStatusPending
		out = append(out, models.UserPrompt{Prompt: p, DueDateAlias: p.DueDate})
	}
	log.WithFields(log.Fields{"user_id": userID, "count": len(out)}).Debug("Listed user prompts")
	return out, nil
}
