package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/internal/infrastructure/memory"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

func init() { gin.SetMode(gin.TestMode) }

func newGuard(t *testing.T) (*application.AccessGuard, *helpers.JWTManager, *application.PublicUser) {
	t.Helper()
	store := memory.New().Repositories()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("mw-secret", time.Hour)
	users := application.NewUserService(store.Users, jwt, application.NewDirectory(store.Users, nil, logger), logger, nil)
	u, err := users.Register(context.Background(), "alice@example.com", "pw", "Alice")
	require.NoError(t, err)
	return application.NewAccessGuard(store.Users, jwt, logger), jwt, u
}

func TestAuth(t *testing.T) {
	guard, jwt, alice := newGuard(t)
	token, _, err := jwt.Issue(alice.ID)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/me", Auth(guard), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "userID": c.GetString(CtxUserIDKey)})
	})

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer garbage", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			require.Equal(t, tc.code, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tc.code == http.StatusOK {
				require.Equal(t, alice.ID, body["id"])
				require.Equal(t, alice.ID, body["userID"])
				return
			}
			require.Equal(t, false, body["success"])
			require.Equal(t, "invalid or expired token", body["message"])
			require.Equal(t, map[string]any{"code": "authentication_error"}, body["error"])
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Body.String()
	require.Len(t, generated, 36)
	require.Equal(t, generated, rec.Header().Get(RequestIDHeader))

	incoming := "6f1c1b7e-4a55-4b8e-9a43-0d1f5d0f8b11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, incoming, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NotEqual(t, "<script>", rec.Body.String())
}

func TestAccessLog(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLog(logger))
	r.GET("/ok/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/ok/42", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "/ok/:id", entry.Data["route"])
	require.Equal(t, "/ok/42", entry.Data["path"])
	require.Equal(t, 200, entry.Data["status"])
	require.Equal(t, "203.0.113.7", entry.Data["ip"])

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/requests/:requestId/messages", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/requests/abc/messages", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	count, err := testutil.GatherAndCount(m.Gatherer(), "skillswap_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `route="/api/requests/:requestId/messages"`))
	require.True(t, strings.Contains(body, `route="unmatched"`))
}
