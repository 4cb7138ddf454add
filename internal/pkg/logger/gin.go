package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 挂载访问日志与 panic 恢复
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			var traceID string
			if p.Keys != nil {
				if id, ok := p.Keys[TraceIDKey].(string); ok {
					traceID = id
				}
			}

			if traceID == "" && p.Request != nil {
				traceID = TraceID(p.Request.Context())
			}

			return fmt.Sprintf(
				`{"time":"%s","level":"INFO","msg":"GIN_ACCESS","trace_id":"%s","method":"%s","path":"%s","status":%d,"latency":"%v","client_ip":"%s"}`+"\n",
				p.TimeStamp.Format(time.RFC3339),
				traceID,
				p.Method,
				requestPath(p),
				p.StatusCode,
				p.Latency,
				p.ClientIP,
			)
		},
	}))

	r.Use(gin.Recovery())
}

// requestPath 只记录路径，查询串里可能带有 token
func requestPath(p gin.LogFormatterParams) string {
	if p.Request != nil && p.Request.URL != nil {
		return p.Request.URL.Path
	}
	if i := strings.IndexByte(p.Path, '?'); i >= 0 {
		return p.Path[:i]
	}
	return p.Path
}
