package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/response"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// Auth resolves the bearer token through the access guard and stores the
// sanitized user under "user" and its id under "userID".
func Auth(guard *application.AccessGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := guard.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			kind := apperror.KindOf(err)
			response.Abort(c, apperror.HTTPStatus(kind), apperror.MessageOf(err), response.ErrorBody{Code: kind.String()})
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (*application.PublicUser, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*application.PublicUser)
	return u, ok && u != nil
}
