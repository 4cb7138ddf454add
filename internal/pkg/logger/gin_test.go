package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupGin_OmitsQuery(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := LogWriter
	LogWriter = buf
	t.Cleanup(func() { LogWriter = prev })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupGin(r)
	r.GET("/api/admin/session/watch", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/session/watch?token=eyJSECRETJWT.sig", nil))

	assert.Contains(t, buf.String(), `"path":"/api/admin/session/watch"`)
	assert.NotContains(t, buf.String(), "eyJSECRETJWT")
}
