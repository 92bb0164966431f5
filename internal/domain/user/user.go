package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is the authentication identity behind a profile. Content lives on
// the profile aggregate; this row only exists for credential checks.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
