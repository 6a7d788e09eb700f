package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	repo "github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

// UserService is the identity store: registration, credential checks and profiles.
type UserService struct {
	Repo      repo.UserRepository
	JWT       *helpers.JWTManager
	Directory *Directory
	Logger    *logrus.Logger
	Metrics   *metrics.Metrics
}

// Session is what register and login hand back to the client.
type Session struct {
	Token     string     `json:"token"`
	User      PublicUser `json:"user"`
	ExpiresAt string     `json:"-"`
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, dir *Directory, logger *logrus.Logger, m *metrics.Metrics) *UserService {
	return &UserService{Repo: r, JWT: jwt, Directory: dir, Logger: logger, Metrics: m}
}

// Register creates a user. The email keeps its casing for display; uniqueness
// is decided on the lowercase form by the repository.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*PublicUser, error) {
	if email == "" || password == "" || name == "" {
		return nil, apperror.Validation("email, password and name are required")
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, internal(s.Logger, err, "hash password failed", nil)
	}

	now := helpers.Now()
	u := &entity.User{
		Email:        email,
		EmailLower:   strings.ToLower(email),
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperror.Conflict("email is already registered")
		}
		return nil, internal(s.Logger, err, "create user failed", logrus.Fields{"email": u.EmailLower})
	}

	s.Metrics.UserRegistered()
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	pu := NewPublicUser(u)
	return &pu, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*PublicUser, error) {
	if email == "" || password == "" {
		return nil, apperror.Validation("email and password are required")
	}

	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if isMissing(err) {
			return nil, apperror.Authentication(msgInvalidCredentials)
		}
		return nil, internal(s.Logger, err, "get user by email failed", nil)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, apperror.Authentication(msgInvalidCredentials)
	}
	pu := NewPublicUser(u)
	return &pu, nil
}

// SignUp registers a user and issues a session token for it.
func (s *UserService) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	u, err := s.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login authenticates and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *UserService) issue(u *PublicUser) (*Session, error) {
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, internal(s.Logger, err, "issue token failed", logrus.Fields{"user_id": u.ID})
	}
	return &Session{Token: token, User: *u, ExpiresAt: helpers.FormatTimestamp(exp)}, nil
}

// FindByID returns the sanitized user, or NotFound for unknown and malformed ids.
func (s *UserService) FindByID(ctx context.Context, userID string) (*PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if isMissing(err) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, internal(s.Logger, err, "get user failed", logrus.Fields{"user_id": userID})
	}
	pu := NewPublicUser(u)
	return &pu, nil
}

// UpdateProfile replaces the whole profile of userID. The stored user is
// read, copied with the new profile and written back.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*PublicUser, error) {
	current, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if isMissing(err) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, internal(s.Logger, err, "get user failed", logrus.Fields{"user_id": userID})
	}

	next := *current
	next.Profile = entity.Profile{
		Bio:            in.Bio,
		SkillsOffering: in.SkillsOffering,
		SkillsSeeking:  in.SkillsSeeking,
		Availability:   in.Availability,
	}
	next.UpdatedAt = helpers.Now()

	if err := s.Repo.Update(ctx, &next); err != nil {
		if isMissing(err) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, internal(s.Logger, err, "update profile failed", logrus.Fields{"user_id": userID})
	}
	if s.Directory != nil {
		s.Directory.Invalidate(ctx, userID)
	}

	pu := NewPublicUser(&next)
	return &pu, nil
}

// ListOthers returns every user except excludingUserID, newest first.
func (s *UserService) ListOthers(ctx context.Context, excludingUserID string) ([]PublicUser, error) {
	users, err := s.Repo.ListExcept(ctx, excludingUserID)
	if err != nil {
		return nil, internal(s.Logger, err, "list users failed", nil)
	}
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, NewPublicUser(&users[i]))
	}
	return out, nil
}
