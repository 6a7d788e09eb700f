package repository

import (
	"context"
	"time"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
)

// SwapRequestRepository defines the persistence contract for swap requests.
type SwapRequestRepository interface {
	// Create assigns r.ID and stores r.
	Create(ctx context.Context, r *entity.SwapRequest) error
	// GetByID returns ErrNotFound for unknown and malformed ids alike.
	GetByID(ctx context.Context, id string) (*entity.SwapRequest, error)
	// UpdateStatus sets status and updatedAt and returns the stored request.
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus, updatedAt time.Time) (*entity.SwapRequest, error)
	// ListByParticipant returns requests sent or received by userID, newest-created first.
	ListByParticipant(ctx context.Context, userID string) ([]entity.SwapRequest, error)
}
