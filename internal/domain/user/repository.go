package user

import (
	"context"
)

type UserRepository interface {
	// GetByUsername returns ErrUserNotFound when no account matches
	GetByUsername(ctx context.Context, username string) (User, error)
	// Create returns ErrUsernameExists on a duplicate username
	Create(ctx context.Context, newUser User) (User, error)
}
