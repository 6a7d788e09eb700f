package application

import (
	"context"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/skillswap-api/internal/domain/repository"
)

// UserSnapshotCache stores sanitized user snapshots keyed by user id.
type UserSnapshotCache interface {
	GetMany(ctx context.Context, ids []string) (map[string]PublicUser, error)
	SetMany(ctx context.Context, users []PublicUser) error
	Invalidate(ctx context.Context, id string) error
}

// Directory resolves participant snapshots in batch. The cache is optional
// and fail-open: cache errors are logged and the store is consulted instead.
type Directory struct {
	Users  repo.UserRepository
	Cache  UserSnapshotCache
	Logger *logrus.Logger
}

func NewDirectory(users repo.UserRepository, cache UserSnapshotCache, logger *logrus.Logger) *Directory {
	return &Directory{Users: users, Cache: cache, Logger: logger}
}

// Resolve returns the snapshots of the distinct ids it can find, with at most
// one cache round trip and one store round trip.
func (d *Directory) Resolve(ctx context.Context, ids []string) (map[string]PublicUser, error) {
	wanted := distinct(ids)
	out := make(map[string]PublicUser, len(wanted))
	if len(wanted) == 0 {
		return out, nil
	}

	missing := wanted
	if d.Cache != nil {
		cached, err := d.Cache.GetMany(ctx, wanted)
		if err != nil {
			d.warn(err, "user cache read failed")
		} else {
			missing = missing[:0:0]
			for _, id := range wanted {
				if u, ok := cached[id]; ok {
					out[id] = u
					continue
				}
				missing = append(missing, id)
			}
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	users, err := d.Users.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	fresh := make([]PublicUser, 0, len(users))
	for i := range users {
		pu := NewPublicUser(&users[i])
		out[pu.ID] = pu
		fresh = append(fresh, pu)
	}
	if d.Cache != nil && len(fresh) > 0 {
		if err := d.Cache.SetMany(ctx, fresh); err != nil {
			d.warn(err, "user cache write failed")
		}
	}
	return out, nil
}

// Invalidate drops a cached snapshot after the user changed.
func (d *Directory) Invalidate(ctx context.Context, id string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Invalidate(ctx, id); err != nil {
		d.warn(err, "user cache invalidate failed")
	}
}

func (d *Directory) warn(err error, msg string) {
	if d.Logger != nil {
		d.Logger.WithError(err).Warn(msg)
	}
}

// lookup returns a pointer to the snapshot of id, or nil when unresolved.
func lookup(m map[string]PublicUser, id string) *PublicUser {
	u, ok := m[id]
	if !ok {
		return nil
	}
	return &u
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
