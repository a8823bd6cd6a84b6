package models

import "time"

// User is the profile row stored alongside the identity issued by the auth provider.
// The ID is the identity's ID.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	FirstName string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string    `json:"last_name" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName keeps the table name shared with the hosted schema.
func (User) TableName() string { return "users" }

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Credential is a locally managed identity, used when auth is not delegated
// to the hosted service.
type Credential struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Credential) TableName() string { return "identities" }

// AuthUser is the identity part of an auth result.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession is returned by signup and signin. Tokens are empty when the
// provider requires email confirmation before issuing a session.
type AuthSession struct {
	AccessToken  string    `json:"access_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	User         *AuthUser `json:"user"`
}

// AdminUser is a profile decorated for the admin user list.
type AdminUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Status       string `json:"status"`
	Subscription string `json:"subscription"`
	JoinDate     string `json:"joinDate"`
}
