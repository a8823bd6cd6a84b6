package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sanjay2518/FR/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CredentialRepository stores locally managed identities.
type CredentialRepository interface {
	Create(ctx context.Context, cred *models.Credential) error
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	Delete(ctx context.Context, id string) error
}

// GORMCredentialRepository is a GORM implementation of CredentialRepository.
type GORMCredentialRepository struct {
	db *gorm.DB
}

func NewGORMCredentialRepository(db *gorm.DB) *GORMCredentialRepository {
	return &GORMCredentialRepository{db: db}
}

func (r *GORMCredentialRepository) Create(ctx context.Context, cred *models.Credential) error {
	if cred.ID == "" {
		cred.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(cred).Error; err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

func (r *GORMCredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	if err := r.db.WithContext(ctx).First(&cred, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("credential for %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &cred, nil
}

func (r *GORMCredentialRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Credential{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete credential %s: %w", id, err)
	}
	return nil
}

// MockCredentialRepository is an in-memory implementation of CredentialRepository.
type MockCredentialRepository struct {
	creds map[string]models.Credential // by email
	mu    sync.RWMutex
}

func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{creds: make(map[string]models.Credential)}
}

func (r *MockCredentialRepository) Create(_ context.Context, cred *models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.creds[cred.Email]; ok {
		return fmt.Errorf("failed to create credential: email %s already registered", cred.Email)
	}
	if cred.ID == "" {
		cred.ID = uuid.New().String()
	}
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now().UTC()
	}
	r.creds[cred.Email] = *cred
	return nil
}

func (r *MockCredentialRepository) GetByEmail(_ context.Context, email string) (*models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.creds[email]
	if !ok {
		return nil, fmt.Errorf("credential for %s: %w", email, ErrNotFound)
	}
	return &cred, nil
}

func (r *MockCredentialRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, c := range r.creds {
		if c.ID == id {
			delete(r.creds, email)
		}
	}
	return nil
}
