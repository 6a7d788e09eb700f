package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

const requestColumns = `id, from_user_id, to_user_id, message, status, created_at, updated_at`

type SwapRequestRepository struct {
	pool *pgxpool.Pool
}

func NewSwapRequestRepository(pool *pgxpool.Pool) *SwapRequestRepository {
	return &SwapRequestRepository{pool: pool}
}

func scanRequest(row pgx.Row) (*entity.SwapRequest, error) {
	var (
		id, from, to uuid.UUID
		status       string
		req          entity.SwapRequest
	)
	if err := row.Scan(&id, &from, &to, &req.Message, &status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	req.ID = id.String()
	req.FromUserID = from.String()
	req.ToUserID = to.String()
	req.Status = entity.RequestStatus(status)
	req.CreatedAt = req.CreatedAt.UTC()
	req.UpdatedAt = req.UpdatedAt.UTC()
	return &req, nil
}

func (r *SwapRequestRepository) Create(ctx context.Context, req *entity.SwapRequest) error {
	const op = "storage/postgres/requests.Create"

	from, err := uuid.Parse(req.FromUserID)
	if err != nil {
		return fmt.Errorf("%s: from: %w", op, repository.ErrInvalidID)
	}
	to, err := uuid.Parse(req.ToUserID)
	if err != nil {
		return fmt.Errorf("%s: to: %w", op, repository.ErrInvalidID)
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO swap_requests (from_user_id, to_user_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, from, to, req.Message, string(req.Status), req.CreatedAt, req.UpdatedAt).Scan(&id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.ID = id.String()
	return nil
}

func (r *SwapRequestRepository) GetByID(ctx context.Context, id string) (*entity.SwapRequest, error) {
	const op = "storage/postgres/requests.GetByID"

	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	req, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM swap_requests WHERE id = $1`, rid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return req, nil
}

func (r *SwapRequestRepository) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus, updatedAt time.Time) (*entity.SwapRequest, error) {
	const op = "storage/postgres/requests.UpdateStatus"

	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	req, err := scanRequest(r.pool.QueryRow(ctx, `
		UPDATE swap_requests SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+requestColumns, string(status), updatedAt, rid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return req, nil
}

func (r *SwapRequestRepository) ListByParticipant(ctx context.Context, userID string) ([]entity.SwapRequest, error) {
	const op = "storage/postgres/requests.ListByParticipant"

	uid, err := uuid.Parse(userID)
	if err != nil {
		return []entity.SwapRequest{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM swap_requests
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_at DESC, seq DESC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]entity.SwapRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

var _ repository.SwapRequestRepository = (*SwapRequestRepository)(nil)
