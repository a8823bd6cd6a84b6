package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrInvalidToken is returned for a malformed, expired or wrongly signed token.
	ErrInvalidToken = errors.New("invalid token")
	errNoSecret     = errors.New("token secret is not configured")
)

// TokenClaims are the claims the service reads from a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenService issues and validates HS256 tokens. Tokens issued by the hosted auth
// service use the same claim layout, so one secret verifies both.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the user and returns it with its lifetime in seconds.
func (s *TokenService) Issue(userID, email string) (string, int, error) {
	if len(s.secret) == 0 {
		return "", 0, errNoSecret
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   now.Add(s.ttl).Unix(),
		"iat":   now.Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, int(s.ttl.Seconds()), nil
}

// Validate parses and validates a token, returning its claims.
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, errNoSecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		log.WithError(err).Debug("Token validation failed")
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	return &TokenClaims{UserID: sub, Email: email}, nil
}
