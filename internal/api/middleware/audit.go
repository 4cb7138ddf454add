package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxAuditBody = 16384

// sensitiveQueryKeys 这些查询参数的值不落日志，websocket 的 token 只能走 query
var sensitiveQueryKeys = []string{"token", "access_token", "password"}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应，multipart 请求体、密码表单与 HTML 响应体不落日志
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBody := "[omitted]"
		if c.Request.Body != nil && captureRequestBody(c) {
			raw, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			reqBody = truncate(string(raw))
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", RedactQuery(c.Request.URL.RawQuery)),
			log.String("req_body", reqBody),
		)

		if c.IsWebsocket() {
			c.Next()
			return
		}

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		resBody := "[html]"
		if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
			resBody = w.body.String()
		}
		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", resBody),
		)
	}
}

func captureRequestBody(c *gin.Context) bool {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		return false
	}
	if strings.HasSuffix(c.Request.URL.Path, "/login") {
		return false
	}
	return true
}

func truncate(s string) string {
	if len(s) > maxAuditBody {
		return s[:maxAuditBody] + "..."
	}
	return s
}

// RedactQuery 解码查询串并把敏感参数的值替换为 [REDACTED]
func RedactQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "[unparsable]"
	}
	for _, key := range sensitiveQueryKeys {
		if _, ok := values[key]; ok {
			values.Set(key, "[REDACTED]")
		}
	}
	decoded, err := url.QueryUnescape(values.Encode())
	if err != nil {
		return values.Encode()
	}
	return decoded
}
