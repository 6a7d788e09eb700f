package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type statusPayload struct {
	Status string `json:"status" binding:"required,swapstatus"`
	Note   string `json:"note" binding:"max=5"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var p statusPayload
	return c.ShouldBindJSON(&p)
}

func TestToDetails(t *testing.T) {
	Init()

	require.Nil(t, ToDetails(nil))
	require.NoError(t, bind(t, `{"status":"accepted"}`))

	require.Equal(t, map[string]string{"status": "is required"}, ToDetails(bind(t, `{}`)))
	require.Equal(t,
		map[string]string{"status": "must be one of: pending, accepted, rejected, completed"},
		ToDetails(bind(t, `{"status":"done"}`)))
	require.Equal(t,
		map[string]string{"note": "must be at most 5 characters long"},
		ToDetails(bind(t, `{"status":"pending","note":"too long"}`)))
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(bind(t, `{"status":`)))
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(bind(t, `{"status": 5}`)))
}
