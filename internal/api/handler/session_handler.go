package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/api/middleware"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type watchResult struct {
	dash *service.Dashboard
	err  error
}

// SessionHandler 推送会话变化：重新挂载成功时发送最新列表，会话失效时发送跳转
type SessionHandler struct {
	gate      service.SessionGate
	workflows Workflows
}

func NewSessionHandler(gate service.SessionGate, workflows Workflows) *SessionHandler {
	return &SessionHandler{gate: gate, workflows: workflows}
}

func (s *SessionHandler) Watch(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.Query("token")
	if token == "" {
		token = middleware.Token(c)
	}

	// 鉴权
	dash, err := s.gate.Mount(ctx, token)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID := dash.Session.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.ErrorContext(ctx, "websocket upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	stopChan := make(chan struct{})
	quit := make(chan struct{})
	updates := make(chan watchResult, 1)

	unsubscribe, err := s.gate.Watch(ctx, token, func(d *service.Dashboard, err error) {
		select {
		case updates <- watchResult{dash: d, err: err}:
		case <-stopChan:
		case <-quit:
		}
	})
	if err != nil {
		log.ErrorContext(ctx, "subscribe session change failed", "user_id", userID, "err", err)
		return
	}
	defer unsubscribe()
	defer close(quit)

	log.InfoContext(ctx, "session watch connected", "user_id", userID)

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	if err = s.push(conn, s.snapshot(dash)); err != nil {
		log.WarnContext(ctx, "session watch push failed", "user_id", userID, "err", err)
		return
	}

	// 写循环：会话变化时推送
	for {
		select {
		case r := <-updates:
			if r.err != nil {
				msg := &dto.SessionWatchDTO{Type: consts.SessionSignedOut, Redirect: consts.LoginPath}
				if !errors.Is(r.err, service.ErrSession) {
					log.ErrorContext(ctx, "remount dashboard failed", "user_id", userID, "err", r.err)
					msg = &dto.SessionWatchDTO{Type: "error"}
				}
				if err = s.push(conn, msg); err != nil || msg.Redirect != "" {
					return
				}
				continue
			}
			if err = s.push(conn, s.snapshot(r.dash)); err != nil {
				log.WarnContext(ctx, "session watch push failed", "user_id", userID, "err", err)
				return
			}
		case <-stopChan:
			log.InfoContext(ctx, "session watch disconnected", "user_id", userID)
			return
		}
	}
}

func (s *SessionHandler) snapshot(dash *service.Dashboard) *dto.SessionWatchDTO {
	return &dto.SessionWatchDTO{
		Type:     "dashboard",
		Email:    dash.Session.Email,
		Posts:    s.workflows[model.PostKind.Collection].view(dash),
		Projects: s.workflows[model.ProjectKind.Collection].view(dash),
	}
}

func (s *SessionHandler) push(conn *websocket.Conn, msg *dto.SessionWatchDTO) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, payload)
}
