package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sanjay2518/FR/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPromptRepository is a GORM implementation of PromptRepository.
type GORMPromptRepository struct {
	db *gorm.DB
}

// NewGORMPromptRepository creates a new instance of GORMPromptRepository.
func NewGORMPromptRepository(db *gorm.DB) *GORMPromptRepository {
	return &GORMPromptRepository{db: db}
}

func (r *GORMPromptRepository) GetAll(ctx context.Context) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all prompts: %w", err)
	}
	return prompts, nil
}

func (r *GORMPromptRepository) GetByStatus(ctx context.Context, status string) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at desc").Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts with status %s: %w", status, err)
	}
	return prompts, nil
}

func (r *GORMPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if prompt.ID == "" {
		prompt.ID = models.ID(uuid.New().String())
	}
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	return nil
}

func (r *GORMPromptRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Prompt{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete prompt %s: %w", id, err)
	}
	return nil
}
