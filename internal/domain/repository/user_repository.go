package repository

import (
	"context"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
)

// UserRepository defines the persistence contract for users.
// Implementations hand out copies; callers never share a stored value.
type UserRepository interface {
	// Create assigns u.ID and stores u. The lowercase-email uniqueness check
	// and the insert happen atomically; a clash yields ErrDuplicateEmail.
	Create(ctx context.Context, u *entity.User) error
	// GetByID returns ErrInvalidID for malformed ids and ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail looks a user up by the lowercase email.
	GetByEmail(ctx context.Context, emailLower string) (*entity.User, error)
	// GetByIDs resolves many users in one round trip. Unknown or malformed ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	// Update replaces the stored user with u.
	Update(ctx context.Context, u *entity.User) error
	// ListExcept returns every user but id, newest-created first.
	ListExcept(ctx context.Context, id string) ([]entity.User, error)
}
