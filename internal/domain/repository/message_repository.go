package repository

import (
	"context"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
)

// MessageRepository defines the persistence contract for request messages.
type MessageRepository interface {
	// Create assigns m.ID and stores m.
	Create(ctx context.Context, m *entity.Message) error
	// ListByRequest returns the messages of a request, oldest first.
	ListByRequest(ctx context.Context, requestID string) ([]entity.Message, error)
}
