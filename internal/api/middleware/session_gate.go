package middleware

import (
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// PageSessionGate 页面版：没有会话时在任何内容输出前 302 到登录页
func PageSessionGate(gate service.SessionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := gate.Mount(c.Request.Context(), Token(c))
		if errors.Is(err, service.ErrSession) {
			c.Redirect(http.StatusFound, consts.LoginPath)
			c.Abort()
			return
		}
		if err != nil {
			log.ErrorContext(c.Request.Context(), "mount dashboard failed", "err", err)
			c.String(http.StatusInternalServerError, "Failed to load dashboard.")
			c.Abort()
			return
		}
		c.Set(consts.SessionCtxKey, dash)
		c.Next()
	}
}

// APISessionGate 接口版：没有会话时返回 401 与登录页地址
func APISessionGate(gate service.SessionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		dash, err := gate.Mount(c.Request.Context(), Token(c))
		if errors.Is(err, service.ErrSession) {
			response.FailWithData(c, response.Unauthorized, err.Error(), gin.H{"redirect": consts.LoginPath})
			c.Abort()
			return
		}
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(consts.SessionCtxKey, dash)
		c.Next()
	}
}

// Token 依次从 Authorization 头、会话 Cookie 读取 token
func Token(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie(consts.SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentDashboard 取出 Session Gate 挂载的数据
func CurrentDashboard(c *gin.Context) *service.Dashboard {
	v, ok := c.Get(consts.SessionCtxKey)
	if !ok {
		return nil
	}
	dash, _ := v.(*service.Dashboard)
	return dash
}
