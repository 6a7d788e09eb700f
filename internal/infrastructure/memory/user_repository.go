package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

type userRow struct {
	user entity.User
	seq  uint64
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emailIndex[u.EmailLower]; taken {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	r.s.users[u.ID] = userRow{user: *u, seq: r.s.nextSeq()}
	r.s.emailIndex[u.EmailLower] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repository.ErrInvalidID
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.users[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := row.user
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, emailLower string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emailIndex[emailLower]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id].user
	return &u, nil
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.User, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key, ok := parseID(id)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if row, ok := r.s.users[key]; ok {
			out = append(out, row.user)
		}
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	key, ok := parseID(u.ID)
	if !ok {
		return repository.ErrInvalidID
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users[key]
	if !ok {
		return repository.ErrNotFound
	}
	if row.user.EmailLower != u.EmailLower {
		if owner, taken := r.s.emailIndex[u.EmailLower]; taken && owner != key {
			return repository.ErrDuplicateEmail
		}
		delete(r.s.emailIndex, row.user.EmailLower)
		r.s.emailIndex[u.EmailLower] = key
	}
	row.user = *u
	r.s.users[key] = row
	return nil
}

func (r *UserRepository) ListExcept(_ context.Context, id string) ([]entity.User, error) {
	exclude, _ := parseID(id)

	r.s.mu.RLock()
	rows := make([]userRow, 0, len(r.s.users))
	for key, row := range r.s.users {
		if key == exclude {
			continue
		}
		rows = append(rows, row)
	}
	r.s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].user.CreatedAt.Equal(rows[j].user.CreatedAt) {
			return rows[i].user.CreatedAt.After(rows[j].user.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]entity.User, len(rows))
	for i, row := range rows {
		out[i] = row.user
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
