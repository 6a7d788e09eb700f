package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/skillswap-api/internal/application"
	handlers "github.com/oksasatya/skillswap-api/internal/interface/http"
	"github.com/oksasatya/skillswap-api/internal/interface/middleware"
)

// RequestModule wires swap requests and their messages, all protected.
type RequestModule struct {
	Requests *handlers.RequestHandler
	Messages *handlers.MessageHandler
	Guard    *application.AccessGuard
}

func NewRequestModule(rh *handlers.RequestHandler, mh *handlers.MessageHandler, guard *application.AccessGuard) *RequestModule {
	return &RequestModule{Requests: rh, Messages: mh, Guard: guard}
}

func (m *RequestModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/requests")
	g.Use(middleware.Auth(m.Guard))
	{
		g.POST("", m.Requests.Create)
		g.GET("", m.Requests.List)
		g.POST("/:requestId/status", m.Requests.SetStatus)
		g.POST("/:requestId/messages", m.Messages.Create)
		g.GET("/:requestId/messages", m.Messages.List)
	}
}
