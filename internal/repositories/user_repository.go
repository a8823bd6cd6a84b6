package repositories

import (
	"context"

	"github.com/sanjay2518/FR/internal/models"
)

// UserRepository defines the interface for profile data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// GetAll returns every profile, newest first.
	GetAll(ctx context.Context) ([]models.User, error)
}
