package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

type messageRow struct {
	msg entity.Message
	seq uint64
}

type MessageRepository struct {
	s *Store
}

func (r *MessageRepository) Create(_ context.Context, m *entity.Message) error {
	key, ok := parseID(m.RequestID)
	if !ok {
		return repository.ErrNotFound
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m.ID = uuid.NewString()
	r.s.messages[key] = append(r.s.messages[key], messageRow{msg: *m, seq: r.s.nextSeq()})
	return nil
}

func (r *MessageRepository) ListByRequest(_ context.Context, requestID string) ([]entity.Message, error) {
	key, ok := parseID(requestID)
	if !ok {
		return []entity.Message{}, nil
	}

	r.s.mu.RLock()
	rows := append([]messageRow(nil), r.s.messages[key]...)
	r.s.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].msg.CreatedAt.Equal(rows[j].msg.CreatedAt) {
			return rows[i].msg.CreatedAt.Before(rows[j].msg.CreatedAt)
		}
		return rows[i].seq < rows[j].seq
	})

	out := make([]entity.Message, len(rows))
	for i, row := range rows {
		out[i] = row.msg
	}
	return out, nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
