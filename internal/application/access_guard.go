package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
)

// AccessGuard resolves a bearer token to the current user. Every failure
// surfaces as the same authentication error; the cause is only logged at debug level.
type AccessGuard struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAccessGuard(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AccessGuard {
	return &AccessGuard{Users: users, JWT: jwt, Logger: logger}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate verifies the header's token and loads the user it names.
func (g *AccessGuard) Authenticate(ctx context.Context, authorizationHeader string) (*PublicUser, error) {
	token, ok := BearerToken(authorizationHeader)
	if !ok {
		g.debug("missing bearer token", nil)
		return nil, apperror.Authentication(msgInvalidToken)
	}

	userID, err := g.JWT.Verify(token)
	if err != nil {
		g.debug("token rejected", err)
		return nil, apperror.Authentication(msgInvalidToken)
	}

	u, err := g.Users.GetByID(ctx, userID)
	if err != nil {
		if isMissing(err) {
			g.debug("token subject does not resolve", err)
			return nil, apperror.Authentication(msgInvalidToken)
		}
		return nil, internal(g.Logger, err, "load token subject failed", logrus.Fields{"user_id": userID})
	}
	pu := NewPublicUser(u)
	return &pu, nil
}

func (g *AccessGuard) debug(msg string, err error) {
	if g.Logger == nil {
		return
	}
	entry := logrus.NewEntry(g.Logger)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug(msg)
}
