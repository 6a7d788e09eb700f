// Package storetest is the repository contract suite shared by every storage
// backend. Each backend's tests call Run with a factory for a fresh store.
package storetest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

// Backend describes a store under test.
type Backend struct {
	// New returns an empty store. Cleanup is registered on t.
	New func(t *testing.T) repository.Store
	// UnknownID is well-formed for the backend but never assigned.
	UnknownID string
}

// Run executes the whole contract suite against b.
func Run(t *testing.T, b Backend) {
	t.Run("Users", func(t *testing.T) { runUsers(t, b) })
	t.Run("SwapRequests", func(t *testing.T) { runRequests(t, b) })
	t.Run("Messages", func(t *testing.T) { runMessages(t, b) })
}

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newUser(email string, createdAt time.Time) *entity.User {
	return &entity.User{
		Email:        email,
		EmailLower:   strings.ToLower(email),
		Name:         "user " + email,
		PasswordHash: "$2a$10$digest",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func mustCreateUser(t *testing.T, repo repository.UserRepository, email string, createdAt time.Time) *entity.User {
	t.Helper()
	u := newUser(email, createdAt)
	require.NoError(t, repo.Create(context.Background(), u))
	require.NotEmpty(t, u.ID)
	return u
}

func runUsers(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		st := b.New(t)
		u := mustCreateUser(t, st.Users, "Alice@Example.com", base)

		got, err := st.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "Alice@Example.com", got.Email)
		require.Equal(t, "alice@example.com", got.EmailLower)
		require.Equal(t, "$2a$10$digest", got.PasswordHash)
		require.True(t, base.Equal(got.CreatedAt))

		byEmail, err := st.Users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		st := b.New(t)
		mustCreateUser(t, st.Users, "bob@example.com", base)

		dup := newUser("BOB@example.com", base.Add(time.Second))
		err := st.Users.Create(ctx, dup)
		require.ErrorIs(t, err, repository.ErrDuplicateEmail)

		all, err := st.Users.ListExcept(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("ConcurrentDuplicateEmail", func(t *testing.T) {
		st := b.New(t)
		const n = 8
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			oks  int
			dups int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := st.Users.Create(ctx, newUser("race@example.com", base))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					oks++
				case errors.Is(err, repository.ErrDuplicateEmail):
					dups++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, oks)
		require.Equal(t, n-1, dups)
	})

	t.Run("GetByIDErrors", func(t *testing.T) {
		st := b.New(t)
		_, err := st.Users.GetByID(ctx, "not-an-id")
		require.ErrorIs(t, err, repository.ErrInvalidID)

		_, err = st.Users.GetByID(ctx, b.UnknownID)
		require.ErrorIs(t, err, repository.ErrNotFound)

		_, err = st.Users.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("GetByIDs", func(t *testing.T) {
		st := b.New(t)
		a := mustCreateUser(t, st.Users, "a@example.com", base)
		c := mustCreateUser(t, st.Users, "c@example.com", base)
		mustCreateUser(t, st.Users, "other@example.com", base)

		got, err := st.Users.GetByIDs(ctx, []string{a.ID, c.ID, a.ID, b.UnknownID, "garbage"})
		require.NoError(t, err)
		ids := map[string]bool{}
		for _, u := range got {
			ids[u.ID] = true
		}
		require.Equal(t, map[string]bool{a.ID: true, c.ID: true}, ids)

		none, err := st.Users.GetByIDs(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("Update", func(t *testing.T) {
		st := b.New(t)
		u := mustCreateUser(t, st.Users, "p@example.com", base)

		next := *u
		next.Profile = entity.Profile{Bio: "hi", SkillsOffering: "guitar", SkillsSeeking: "piano", Availability: "weekends"}
		next.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, st.Users.Update(ctx, &next))

		got, err := st.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, next.Profile, got.Profile)
		require.True(t, base.Add(time.Hour).Equal(got.UpdatedAt))
		require.True(t, base.Equal(got.CreatedAt))

		// The caller's copy is not shared with the store.
		next.Profile.Bio = "mutated after write"
		again, err := st.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "hi", again.Profile.Bio)

		missing := *u
		missing.ID = b.UnknownID
		missing.EmailLower = "ghost@example.com"
		require.ErrorIs(t, st.Users.Update(ctx, &missing), repository.ErrNotFound)
	})

	t.Run("ListExceptNewestFirst", func(t *testing.T) {
		st := b.New(t)
		first := mustCreateUser(t, st.Users, "first@example.com", base)
		second := mustCreateUser(t, st.Users, "second@example.com", base.Add(time.Minute))
		third := mustCreateUser(t, st.Users, "third@example.com", base.Add(2*time.Minute))

		got, err := st.Users.ListExcept(ctx, second.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, third.ID, got[0].ID)
		require.Equal(t, first.ID, got[1].ID)
	})
}

func runRequests(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("CreateGetUpdate", func(t *testing.T) {
		st := b.New(t)
		alice := mustCreateUser(t, st.Users, "alice@example.com", base)
		bob := mustCreateUser(t, st.Users, "bob@example.com", base)

		req := &entity.SwapRequest{
			FromUserID: alice.ID,
			ToUserID:   bob.ID,
			Message:    "swap guitar for piano",
			Status:     entity.StatusPending,
			CreatedAt:  base,
			UpdatedAt:  base,
		}
		require.NoError(t, st.Requests.Create(ctx, req))
		require.NotEmpty(t, req.ID)

		got, err := st.Requests.GetByID(ctx, req.ID)
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.FromUserID)
		require.Equal(t, bob.ID, got.ToUserID)
		require.Equal(t, "swap guitar for piano", got.Message)
		require.Equal(t, entity.StatusPending, got.Status)

		for i, s := range []entity.RequestStatus{entity.StatusCompleted, entity.StatusPending, entity.StatusRejected, entity.StatusAccepted} {
			at := base.Add(time.Duration(i+1) * time.Minute)
			updated, err := st.Requests.UpdateStatus(ctx, req.ID, s, at)
			require.NoError(t, err)
			require.Equal(t, s, updated.Status)
			require.True(t, at.Equal(updated.UpdatedAt))

			reread, err := st.Requests.GetByID(ctx, req.ID)
			require.NoError(t, err)
			require.Equal(t, s, reread.Status)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		st := b.New(t)
		_, err := st.Requests.GetByID(ctx, "not-an-id")
		require.ErrorIs(t, err, repository.ErrNotFound)

		_, err = st.Requests.GetByID(ctx, b.UnknownID)
		require.ErrorIs(t, err, repository.ErrNotFound)

		_, err = st.Requests.UpdateStatus(ctx, b.UnknownID, entity.StatusAccepted, base)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("ListByParticipant", func(t *testing.T) {
		st := b.New(t)
		alice := mustCreateUser(t, st.Users, "alice@example.com", base)
		bob := mustCreateUser(t, st.Users, "bob@example.com", base)
		carol := mustCreateUser(t, st.Users, "carol@example.com", base)

		mk := func(from, to *entity.User, at time.Time) *entity.SwapRequest {
			r := &entity.SwapRequest{FromUserID: from.ID, ToUserID: to.ID, Status: entity.StatusPending, CreatedAt: at, UpdatedAt: at}
			require.NoError(t, st.Requests.Create(ctx, r))
			return r
		}
		r1 := mk(alice, bob, base)
		r2 := mk(carol, alice, base.Add(time.Minute))
		mk(bob, carol, base.Add(2*time.Minute))

		got, err := st.Requests.ListByParticipant(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, r2.ID, got[0].ID)
		require.Equal(t, r1.ID, got[1].ID)

		none, err := st.Requests.ListByParticipant(ctx, b.UnknownID)
		require.NoError(t, err)
		require.Empty(t, none)
	})
}

func runMessages(t *testing.T, b Backend) {
	ctx := context.Background()

	t.Run("AppendAndListAscending", func(t *testing.T) {
		st := b.New(t)
		alice := mustCreateUser(t, st.Users, "alice@example.com", base)
		bob := mustCreateUser(t, st.Users, "bob@example.com", base)

		req := &entity.SwapRequest{FromUserID: alice.ID, ToUserID: bob.ID, Status: entity.StatusPending, CreatedAt: base, UpdatedAt: base}
		require.NoError(t, st.Requests.Create(ctx, req))
		other := &entity.SwapRequest{FromUserID: bob.ID, ToUserID: alice.ID, Status: entity.StatusPending, CreatedAt: base, UpdatedAt: base}
		require.NoError(t, st.Requests.Create(ctx, other))

		m1 := &entity.Message{RequestID: req.ID, SenderID: alice.ID, Text: "first", CreatedAt: base.Add(time.Second)}
		m2 := &entity.Message{RequestID: req.ID, SenderID: bob.ID, Text: "second", CreatedAt: base.Add(2 * time.Second)}
		m3 := &entity.Message{RequestID: other.ID, SenderID: bob.ID, Text: "elsewhere", CreatedAt: base}
		for _, m := range []*entity.Message{m2, m1, m3} {
			require.NoError(t, st.Messages.Create(ctx, m))
			require.NotEmpty(t, m.ID)
		}

		got, err := st.Messages.ListByRequest(ctx, req.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "first", got[0].Text)
		require.Equal(t, alice.ID, got[0].SenderID)
		require.Equal(t, "second", got[1].Text)

		empty, err := st.Messages.ListByRequest(ctx, b.UnknownID)
		require.NoError(t, err)
		require.Empty(t, empty)
	})
}
