package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	const op = "storage/postgres/messages.Create"

	rid, err := uuid.Parse(m.RequestID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	sender, err := uuid.Parse(m.SenderID)
	if err != nil {
		return fmt.Errorf("%s: sender: %w", op, repository.ErrInvalidID)
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO request_messages (request_id, sender_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rid, sender, m.Text, m.CreatedAt).Scan(&id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.ID = id.String()
	return nil
}

func (r *MessageRepository) ListByRequest(ctx context.Context, requestID string) ([]entity.Message, error) {
	const op = "storage/postgres/messages.ListByRequest"

	rid, err := uuid.Parse(requestID)
	if err != nil {
		return []entity.Message{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, request_id, sender_id, text, created_at
		FROM request_messages
		WHERE request_id = $1
		ORDER BY created_at ASC, seq ASC
	`, rid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]entity.Message, 0)
	for rows.Next() {
		var (
			id, reqID, sender uuid.UUID
			m                 entity.Message
		)
		if err := rows.Scan(&id, &reqID, &sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		m.ID = id.String()
		m.RequestID = reqID.String()
		m.SenderID = sender.String()
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
