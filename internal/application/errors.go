package application

import (
	"errors"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
)

// Outward messages shared by several operations.
const (
	msgInvalidCredentials = "invalid credentials"
	msgInvalidToken       = "invalid or expired token"
	msgUserNotFound       = "user not found"
	msgRequestNotFound    = "request not found"
)

// internal logs an unexpected store failure and hides it behind KindInternal.
func internal(logger *logrus.Logger, err error, msg string, fields logrus.Fields) error {
	helpers.LogError(logger, msg, err, fields)
	return apperror.Internal(err)
}

// isMissing reports whether err means the key does not resolve to an entity.
func isMissing(err error) bool {
	return errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidID)
}
