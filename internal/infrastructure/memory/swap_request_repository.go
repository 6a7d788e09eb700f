package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

type requestRow struct {
	req entity.SwapRequest
	seq uint64
}

type SwapRequestRepository struct {
	s *Store
}

func (r *SwapRequestRepository) Create(_ context.Context, req *entity.SwapRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req.ID = uuid.NewString()
	r.s.requests[req.ID] = requestRow{req: *req, seq: r.s.nextSeq()}
	return nil
}

func (r *SwapRequestRepository) GetByID(_ context.Context, id string) (*entity.SwapRequest, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.requests[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	req := row.req
	return &req, nil
}

func (r *SwapRequestRepository) UpdateStatus(_ context.Context, id string, status entity.RequestStatus, updatedAt time.Time) (*entity.SwapRequest, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.requests[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.req.Status = status
	row.req.UpdatedAt = updatedAt
	r.s.requests[key] = row

	req := row.req
	return &req, nil
}

func (r *SwapRequestRepository) ListByParticipant(_ context.Context, userID string) ([]entity.SwapRequest, error) {
	uid, ok := parseID(userID)
	if !ok {
		return []entity.SwapRequest{}, nil
	}

	r.s.mu.RLock()
	rows := make([]requestRow, 0)
	for _, row := range r.s.requests {
		if row.req.FromUserID == uid || row.req.ToUserID == uid {
			rows = append(rows, row)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].req.CreatedAt.Equal(rows[j].req.CreatedAt) {
			return rows[i].req.CreatedAt.After(rows[j].req.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]entity.SwapRequest, len(rows))
	for i, row := range rows {
		out[i] = row.req
	}
	return out, nil
}

var _ repository.SwapRequestRepository = (*SwapRequestRepository)(nil)
