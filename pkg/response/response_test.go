package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess_WritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("request_id", "rid-1")

	Success(c, http.StatusCreated, gin.H{"user": "alice"}, "created", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["success"])
	require.Equal(t, "rid-1", body["request_id"])
	require.Equal(t, "created", body["message"])
	require.Equal(t, map[string]any{"user": "alice"}, body["data"])
	require.NotContains(t, body, "error")
}

func TestError_WritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, 0, "bad", ErrorBody{Code: "validation_error"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, "bad", body["message"])
	require.Equal(t, map[string]any{"code": "validation_error"}, body["error"])
	require.NotContains(t, body, "data")
}

func TestAbort_StopsChain(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Abort(c, http.StatusUnauthorized, "nope", nil)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
