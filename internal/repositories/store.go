package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/pkg/supabase"

	"gorm.io/gorm"
)

var (
	// ErrNotConfigured is returned by every call on a store built without backend credentials.
	ErrNotConfigured = errors.New("database not configured")
	// ErrNotFound is returned by single-row lookups when the row is absent.
	ErrNotFound = errors.New("record not found")
)

// HealthChecker issues a trivial bounded read against the backend.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Store bundles the repositories of one backend.
type Store struct {
	Users       UserRepository
	Prompts     PromptRepository
	Submissions SubmissionRepository
	// Credentials is nil when identities live in the hosted auth service.
	Credentials CredentialRepository
	// Health is nil when the backend is not configured.
	Health HealthChecker

	close func() error
}

// Close releases the backend connection pool, if any.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewSupabaseStore builds a store on the hosted service. A nil client yields the
// unconfigured store: every call fails with ErrNotConfigured.
func NewSupabaseStore(client *supabase.Client) *Store {
	s := &Store{
		Users:       NewSupabaseUserRepository(client),
		Prompts:     NewSupabasePromptRepository(client),
		Submissions: NewSupabaseSubmissionRepository(client),
	}
	if client != nil {
		s.Health = PingFunc(func(ctx context.Context) error {
			_, err := client.From("users").Select("id").Limit(1).Execute(ctx)
			return err
		})
	}
	return s
}

// NewGORMStore migrates the schema and builds a store on a SQL database.
func NewGORMStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Credential{}, &models.Prompt{}, &models.Submission{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{
		Users:       NewGORMUserRepository(db),
		Prompts:     NewGORMPromptRepository(db),
		Submissions: NewGORMSubmissionRepository(db),
		Credentials: NewGORMCredentialRepository(db),
		Health: PingFunc(func(ctx context.Context) error {
			var ids []string
			return db.WithContext(ctx).Model(&models.User{}).Limit(1).Pluck("id", &ids).Error
		}),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

// NewMockStore builds a process-lifetime in-memory store.
func NewMockStore() *Store {
	users := NewMockUserRepository()
	prompts := NewMockPromptRepository()
	return &Store{
		Users:       users,
		Prompts:     prompts,
		Submissions: NewMockSubmissionRepository(users, prompts),
		Credentials: NewMockCredentialRepository(),
		Health:      PingFunc(func(context.Context) error { return nil }),
	}
}
