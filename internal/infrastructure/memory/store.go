// Package memory is the in-process storage backend. Entities live in maps
// keyed by generated UUIDs; every read returns a copy.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

// Store holds all three collections behind one lock.
type Store struct {
	mu sync.RWMutex

	users      map[string]userRow
	emailIndex map[string]string // emailLower -> id
	requests   map[string]requestRow
	messages   map[string][]messageRow // requestID -> messages in insertion order

	seq uint64
}

func New() *Store {
	return &Store{
		users:      make(map[string]userRow),
		emailIndex: make(map[string]string),
		requests:   make(map[string]requestRow),
		messages:   make(map[string][]messageRow),
	}
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Users:    &UserRepository{s: s},
		Requests: &SwapRequestRepository{s: s},
		Messages: &MessageRepository{s: s},
	}
}

// nextSeq orders rows created within the same millisecond. Caller holds mu.
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// parseID normalizes an id to the canonical UUID string form.
func parseID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
