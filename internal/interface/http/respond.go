package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/internal/interface/middleware"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/response"
	"github.com/oksasatya/skillswap-api/pkg/validation"
)

// respondError renders a classified error. Internal errors were already
// logged where they happened; here only the request id is attached.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal && logger != nil {
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
	}
	response.Error(c, apperror.HTTPStatus(kind), apperror.MessageOf(err), response.ErrorBody{Code: kind.String()})
}

// bindJSON decodes the body into obj. An empty body counts as "{}" so that
// missing fields are reported the same way as absent ones.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
			Code:    apperror.KindValidation.String(),
			Details: validation.ToDetails(err),
		})
		return false
	}
	return true
}

// caller returns the authenticated user or renders 401.
func caller(c *gin.Context) (*application.PublicUser, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid or expired token", response.ErrorBody{Code: apperror.KindAuthentication.String()})
		return nil, false
	}
	return u, true
}
