package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/pkg/supabase"
)

// SupabaseUserRepository stores profiles in the hosted "users" table.
type SupabaseUserRepository struct {
	client *supabase.Client
}

func NewSupabaseUserRepository(client *supabase.Client) *SupabaseUserRepository {
	return &SupabaseUserRepository{client: client}
}

func (r *SupabaseUserRepository) Create(ctx context.Context, user *models.User) error {
	if r.client == nil {
		return ErrNotConfigured
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.client.From("users").ExecuteInsert(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SupabaseUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if r.client == nil {
		return nil, ErrNotConfigured
	}
	resp, err := r.client.From("users").Select("*").Eq("id", id).Limit(1).Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	var users []models.User
	if err := resp.JSON(&users); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &users[0], nil
}

func (r *SupabaseUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *SupabaseUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *SupabaseUserRepository) exists(ctx context.Context, column, value string) (bool, error) {
	if r.client == nil {
		return false, ErrNotConfigured
	}
	resp, err := r.client.From("users").Select(column).Eq(column, value).Limit(1).Execute(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", column, err)
	}
	var rows []map[string]any
	if err := resp.JSON(&rows); err != nil {
		return false, fmt.Errorf("failed to decode user %s check: %w", column, err)
	}
	return len(rows) > 0, nil
}

func (r *SupabaseUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if r.client == nil {
		return nil, ErrNotConfigured
	}
	resp, err := r.client.From("users").Select("*").Order("created_at", false).Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	users := []models.User{}
	if err := resp.JSON(&users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
