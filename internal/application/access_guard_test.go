package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/skillswap-api/internal/infrastructure/memory"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
		{"abc", "", false},
	}
	for _, tc := range cases {
		token, ok := BearerToken(tc.header)
		require.Equal(t, tc.ok, ok, tc.header)
		require.Equal(t, tc.token, token, tc.header)
	}
}

func TestAccessGuard_ResolvesIssuedToken(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice@example.com", "Alice")

	token, _, err := f.jwt.Issue(alice.ID)
	require.NoError(t, err)

	u, err := f.guard.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, alice.ID, u.ID)
	require.Equal(t, alice.Email, u.Email)
}

func TestAccessGuard_FailuresShareOneError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com", "Alice")

	expired, _, err := helpers.NewJWTManager(testSecret, -time.Minute).Issue(alice.ID)
	require.NoError(t, err)
	foreign, _, err := helpers.NewJWTManager("other-secret", time.Hour).Issue(alice.ID)
	require.NoError(t, err)
	malformedSubject, _, err := f.jwt.Issue("not-a-uuid")
	require.NoError(t, err)
	ghost, _, err := f.jwt.Issue("00000000-0000-0000-0000-000000000042")
	require.NoError(t, err)

	headers := []string{
		"",
		"Token abc",
		"Bearer not.a.jwt",
		"Bearer " + expired,
		"Bearer " + foreign,
		"Bearer " + malformedSubject,
		"Bearer " + ghost,
	}
	var messages []string
	for _, h := range headers {
		_, err := f.guard.Authenticate(ctx, h)
		requireKind(t, err, apperror.KindAuthentication)
		messages = append(messages, err.Error())
	}
	for _, m := range messages {
		require.Equal(t, messages[0], m)
	}
}

func TestAccessGuard_TokenFailsAfterUserRemoved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com", "Alice")
	token, _, err := f.jwt.Issue(alice.ID)
	require.NoError(t, err)

	_, err = f.guard.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)

	// Same token, same secret, but a store that no longer holds the user.
	emptied := NewAccessGuard(memory.New().Repositories().Users, f.jwt, quietLogger())
	_, err = emptied.Authenticate(ctx, "Bearer "+token)
	requireKind(t, err, apperror.KindAuthentication)
}
