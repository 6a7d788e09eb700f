package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

// SystemModule serves GET /healthz and, when metrics are on, GET /metrics.
type SystemModule struct {
	Metrics *metrics.Metrics
}

func NewSystemModule(m *metrics.Metrics) *SystemModule { return &SystemModule{Metrics: m} }

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m.Metrics != nil {
		rg.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
	}
}
