package api

import (
	"Portfolio/internal/api/handler"
	"Portfolio/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PageHandler    *handler.PageHandler
	AuthHandler    *handler.AuthHandler
	ContentHandler *handler.ContentHandler
	SessionHandler *handler.SessionHandler
	SessionGate    service.SessionGate
}
