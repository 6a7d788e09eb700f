package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/skillswap-api/internal/application"
	handlers "github.com/oksasatya/skillswap-api/internal/interface/http"
	"github.com/oksasatya/skillswap-api/internal/interface/middleware"
)

// UserModule wires the protected identity routes:
// GET /api/me, POST|PUT /api/profile, GET /api/users.
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   *application.AccessGuard
}

func NewUserModule(h *handlers.UserHandler, guard *application.AccessGuard) *UserModule {
	return &UserModule{Handler: h, Guard: guard}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Guard))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/profile", m.Handler.UpdateProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.GET("/users", m.Handler.List)
	}
}
