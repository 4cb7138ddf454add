package middleware

import (
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/service"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	token string
	err   error
}

func (f *fakeGate) Mount(_ context.Context, token string) (*service.Dashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token != f.token {
		return nil, service.ErrSession
	}
	return &service.Dashboard{Session: &service.Session{Token: token, UserID: "author-1", Email: "admin@example.com"}}, nil
}

func (f *fakeGate) Watch(context.Context, string, func(*service.Dashboard, error)) (func(), error) {
	return func() {}, nil
}

func gatedRouter(gate service.SessionGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	page := func(c *gin.Context) { c.String(http.StatusOK, CurrentDashboard(c).Session.Email) }
	r.GET("/admin/dashboard", PageSessionGate(gate), page)
	r.GET("/api/admin/posts", APISessionGate(gate), page)
	return r
}

func TestPageSessionGate(t *testing.T) {
	r := gatedRouter(&fakeGate{token: "good"})

	t.Run("no session redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, consts.LoginPath, w.Header().Get("Location"))
		assert.NotContains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("cookie session mounts dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: consts.SessionCookie, Value: "good"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin@example.com", w.Body.String())
	})

	t.Run("backend failure is not a redirect", func(t *testing.T) {
		r := gatedRouter(&fakeGate{err: errors.New("db down")})
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: consts.SessionCookie, Value: "good"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAPISessionGate(t *testing.T) {
	r := gatedRouter(&fakeGate{token: "good"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Code int
		Data map[string]string
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Code)
	assert.Equal(t, consts.LoginPath, body.Data["redirect"])

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "admin@example.com", w.Body.String())
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://example.com"}))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_EmptyListIsSameOriginOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
