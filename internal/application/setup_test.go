package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/internal/infrastructure/memory"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
	"github.com/oksasatya/skillswap-api/pkg/mailer"
)

const testSecret = "test-secret"

type fixture struct {
	store    repository.Store
	jwt      *helpers.JWTManager
	pub      *recordingPublisher
	dir      *Directory
	users    *UserService
	guard    *AccessGuard
	requests *RequestService
	messages *MessageService
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New().Repositories()
	logger := quietLogger()
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	pub := &recordingPublisher{}
	dir := NewDirectory(store.Users, nil, logger)
	notifier := NewNotifier(pub, logger, nil, "Skill Swap", "http://localhost:3000")
	requests := NewRequestService(store.Requests, store.Users, dir, notifier, logger, nil)
	return &fixture{
		store:    store,
		jwt:      jwt,
		pub:      pub,
		dir:      dir,
		users:    NewUserService(store.Users, jwt, dir, logger, nil),
		guard:    NewAccessGuard(store.Users, jwt, logger),
		requests: requests,
		messages: NewMessageService(store.Messages, requests, dir, notifier, logger, nil),
	}
}

func (f *fixture) register(t *testing.T, email, name string) *PublicUser {
	t.Helper()
	u, err := f.users.Register(context.Background(), email, "secret-"+name, name)
	require.NoError(t, err)
	return u
}

func requireKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperror.KindOf(err), "unexpected error: %v", err)
}

// recordingPublisher captures published jobs; fail makes every publish fail.
type recordingPublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	fail bool
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func (p *recordingPublisher) published() []mailer.EmailJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mailer.EmailJob(nil), p.jobs...)
}

// mapCache is an in-process UserSnapshotCache that counts lookups.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]PublicUser
	gets    int
	err     error
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]PublicUser{}} }

func (c *mapCache) GetMany(_ context.Context, ids []string) (map[string]PublicUser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, c.err
	}
	out := map[string]PublicUser{}
	for _, id := range ids {
		if u, ok := c.entries[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (c *mapCache) SetMany(_ context.Context, users []PublicUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, u := range users {
		c.entries[u.ID] = u
	}
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return c.err
}
