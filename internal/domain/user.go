package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound    = errors.New("resource not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrInvalidAuth = errors.New("invalid email or password")
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	AvatarURL      *string   `json:"avatar_url"`
	HashedPassword string    `json:"-"`

	// Profile data
	Headline    *string `json:"headline"`
	Summary     *string `json:"summary"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	LinkedinURL *string `json:"linkedin_url"`

	// Education
	Institution    *string `json:"institution"`
	Degree         *string `json:"degree"`
	FieldOfStudy   *string `json:"field_of_study"`
	GraduationYear *string `json:"graduation_year"`

	Skills []string `json:"skills"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GithubConnection stores a linked GitHub account with its encrypted token.
type GithubConnection struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	GithubUserID    int64     `json:"github_user_id"`
	GithubUsername  string    `json:"github_username"`
	GithubAvatarURL *string   `json:"github_avatar_url"`
	EncryptedToken  string    `json:"-"`
	Scopes          []string  `json:"scopes"`
	ConnectedAt     time.Time `json:"connected_at"`
	TokenUpdatedAt  time.Time `json:"token_updated_at"`
}

// ProfileUpdate carries the mutable profile fields for a partial update.
type ProfileUpdate struct {
	Name           *string  `json:"name"`
	Headline       *string  `json:"headline"`
	Summary        *string  `json:"summary"`
	Location       *string  `json:"location"`
	Phone          *string  `json:"phone"`
	Website        *string  `json:"website"`
	LinkedinURL    *string  `json:"linkedin_url"`
	Institution    *string  `json:"institution"`
	Degree         *string  `json:"degree"`
	FieldOfStudy   *string  `json:"field_of_study"`
	GraduationYear *string  `json:"graduation_year"`
	Skills         []string `json:"skills"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
}

type GithubConnectionRepository interface {
	Upsert(ctx context.Context, conn *GithubConnection) error
	GetByUserID(ctx context.Context, userID string) (*GithubConnection, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, email, name, password string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*User, error)
	ConnectGithub(ctx context.Context, userID, accessToken string) (*GithubConnection, error)
	DisconnectGithub(ctx context.Context, userID string) error
}
