package service

import (
	"Portfolio/internal/model"
	"context"
	log "log/slog"
)

// Dashboard 管理端一次挂载得到的数据
type Dashboard struct {
	Session  *Session
	Posts    *Board[model.Post, *model.Post]
	Projects *Board[model.Project, *model.Project]
}

type SessionGate interface {
	Mount(ctx context.Context, token string) (*Dashboard, error)
	Watch(ctx context.Context, token string, fn func(*Dashboard, error)) (func(), error)
}

type SessionGateImpl struct {
	auth     AuthService
	posts    PostService
	projects ProjectService
}

func NewSessionGate(auth AuthService, posts PostService, projects ProjectService) SessionGate {
	return &SessionGateImpl{auth: auth, posts: posts, projects: projects}
}

// Mount 没有有效会话时返回 ErrSession，否则加载该作者的帖子与项目
func (s *SessionGateImpl) Mount(ctx context.Context, token string) (*Dashboard, error) {
	session, err := s.auth.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Session: session, Posts: posts, Projects: projects}, nil
}

// Watch 会话每次变化都重新执行 Mount，并把结果交给 fn
func (s *SessionGateImpl) Watch(ctx context.Context, token string, fn func(*Dashboard, error)) (func(), error) {
	session, err := s.auth.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.auth.OnSessionChange(ctx, session.UserID, func(event SessionEvent) {
		log.InfoContext(ctx, "session changed", "type", event.Type, "user_id", event.UserID)
		fn(s.Mount(ctx, token))
	})
}
