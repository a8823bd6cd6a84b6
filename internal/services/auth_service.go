package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanjay2518/FR/internal/metrics"
	"github.com/sanjay2518/FR/internal/models"
	"github.com/sanjay2518/FR/internal/repositories"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrAuthFailed is returned when the identity provider rejects the credentials.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrAlreadyExists is returned by signup for a taken email or username.
	ErrAlreadyExists = errors.New("already exists")
	// ErrRejected is returned when the identity provider refuses a signup, e.g. a weak password.
	ErrRejected = errors.New("rejected by identity provider")
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
}

// AuthService handles signup, signin and profile lookups.
type AuthService struct {
	identity IdentityProvider
	users    repositories.UserRepository
	events   EventPublisher
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(identity IdentityProvider, users repositories.UserRepository, events EventPublisher) *AuthService {
	return &AuthService{
		identity: identity,
		users:    users,
		events:   events,
	}
}

// Signup creates an identity and, when the provider returns a user, the profile
// keyed by that identity's id. If the profile insert fails the identity is deleted
// again on a best-effort basis. The returned profile is nil when the provider
// issued no user.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.AuthSession, *models.User, error) {
	if err := s.ensureAvailable(ctx, in.Email, in.Username); err != nil {
		recordSignupError(err)
		return nil, nil, err
	}

	session, err := s.identity.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		recordSignupError(err)
		return nil, nil, err
	}
	if session.User == nil {
		metrics.RecordSignup("created")
		return session, nil, nil
	}

	profile := &models.User{
		ID:        session.User.ID,
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.users.Create(ctx, profile); err != nil {
		logger := log.WithError(err).WithField("user_id", profile.ID)
		logger.Error("Profile insert failed after identity creation")
		if delErr := s.identity.DeleteIdentity(ctx, profile.ID); delErr != nil {
			logger.WithField("delete_error", delErr.Error()).Error("Failed to delete orphaned identity")
		}
		metrics.RecordSignup("failed")
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	metrics.RecordSignup("created")
	publish(s.events, EventUserSignedUp, map[string]interface{}{
		"user_id":  profile.ID,
		"email":    profile.Email,
		"username": profile.Username,
	})
	log.WithField("user_id", profile.ID).Info("User signed up")
	return session, profile, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, email, username string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: email '%s' already registered", ErrAlreadyExists, email)
	}
	exists, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: username '%s' already taken", ErrAlreadyExists, username)
	}
	return nil
}

func recordSignupError(err error) {
	if errors.Is(err, ErrAlreadyExists) {
		metrics.RecordSignup("conflict")
		return
	}
	metrics.RecordSignup("failed")
}

// Signin forwards the credentials to the identity provider.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*models.AuthSession, error) {
	session, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetProfile returns the profile row. A missing row is repositories.ErrNotFound,
// distinct from a provider failure.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UserExists reports whether a profile with the email exists.
func (s *AuthService) UserExists(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, email)
}

// UsernameExists reports whether a profile with the username exists.
func (s *AuthService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}
