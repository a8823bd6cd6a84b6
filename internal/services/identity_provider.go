package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/repositories"
	"github.com/sanjay2518/FR/pkg/supabase"

	"golang.org/x/crypto/bcrypt"
)

// IdentityProvider creates and authenticates login identities.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*models.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
	// DeleteIdentity removes an identity created by SignUp.
	DeleteIdentity(ctx context.Context, id string) error
}

// SupabaseIdentityProvider delegates identities to the hosted auth service.
type SupabaseIdentityProvider struct {
	client *supabase.Client
}

// NewSupabaseIdentityProvider creates a provider. A nil client makes every call
// fail with repositories.ErrNotConfigured.
func NewSupabaseIdentityProvider(client *supabase.Client) *SupabaseIdentityProvider {
	return &SupabaseIdentityProvider{client: client}
}

func (p *SupabaseIdentityProvider) SignUp(ctx context.Context, email, password string) (*models.AuthSession, error) {
	if p.client == nil {
		return nil, repositories.ErrNotConfigured
	}
	resp, err := p.client.Auth().SignUp(ctx, email, password)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			if strings.Contains(strings.ToLower(apiErr.Message), "already registered") {
				return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, apiErr.Message)
			}
			return nil, fmt.Errorf("%w: %s", ErrRejected, apiErr.Message)
		}
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	return toSession(resp), nil
}

func (p *SupabaseIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	if p.client == nil {
		return nil, repositories.ErrNotConfigured
	}
	resp, err := p.client.Auth().SignIn(ctx, email, password)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
		}
		return nil, fmt.Errorf("signin failed: %w", err)
	}
	return toSession(resp), nil
}

func (p *SupabaseIdentityProvider) DeleteIdentity(ctx context.Context, id string) error {
	if p.client == nil {
		return repositories.ErrNotConfigured
	}
	return p.client.Auth().DeleteUser(ctx, id)
}

func toSession(resp *supabase.AuthResponse) *models.AuthSession {
	s := &models.AuthSession{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		RefreshToken: resp.RefreshToken,
	}
	if resp.User != nil {
		s.User = &models.AuthUser{ID: resp.User.ID, Email: resp.User.Email}
	}
	return s
}

// LocalIdentityProvider keeps bcrypt-hashed credentials in the database and
// issues its own tokens.
type LocalIdentityProvider struct {
	creds  repositories.CredentialRepository
	tokens *TokenService
}

// NewLocalIdentityProvider creates a new LocalIdentityProvider.
func NewLocalIdentityProvider(creds repositories.CredentialRepository, tokens *TokenService) *LocalIdentityProvider {
	return &LocalIdentityProvider{creds: creds, tokens: tokens}
}

func (p *LocalIdentityProvider) SignUp(ctx context.Context, email, password string) (*models.AuthSession, error) {
	if _, err := p.creds.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email '%s' already registered", ErrAlreadyExists, email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	cred := &models.Credential{Email: email, PasswordHash: string(hashedPassword)}
	if err := p.creds.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to register identity: %w", err)
	}
	return p.session(cred)
}

func (p *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Do not reveal whether the email exists.
			return nil, fmt.Errorf("%w: invalid credentials", ErrAuthFailed)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrAuthFailed)
	}
	return p.session(cred)
}

func (p *LocalIdentityProvider) DeleteIdentity(ctx context.Context, id string) error {
	return p.creds.Delete(ctx, id)
}

func (p *LocalIdentityProvider) session(cred *models.Credential) (*models.AuthSession, error) {
	token, expiresIn, err := p.tokens.Issue(cred.ID, cred.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthSession{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		User:        &models.AuthUser{ID: cred.ID, Email: cred.Email},
	}, nil
}
