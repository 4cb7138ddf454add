package service

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/redis"
	"Portfolio/internal/pkg/security"
	"Portfolio/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"
)

// Session 已登录管理员的会话，由 Session Gate 取得后显式传给需要的地方
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// SessionEvent 会话变化通知
type SessionEvent = redis.SessionEvent

type AuthService interface {
	SignInWithPassword(ctx context.Context, dto *dto.LoginDTO) (*Session, error)
	GetSession(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	OnSessionChange(ctx context.Context, userID string, fn func(SessionEvent)) (func(), error)
}

type AuthServiceImpl struct {
	adminRepo repository.AdminRepo
	signer    *security.Signer
	sessions  *redis.SessionStore
}

func NewAuthService(adminRepo repository.AdminRepo, signer *security.Signer, sessions *redis.SessionStore) AuthService {
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		signer:    signer,
		sessions:  sessions,
	}
}

func (s *AuthServiceImpl) SignInWithPassword(ctx context.Context, dto *dto.LoginDTO) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" || dto.Password == "" {
		return nil, ErrPasswordIncorrect
	}
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(dto.Password, admin.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, claims, err := s.signer.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, err
	}
	session := &Session{
		Token:     token,
		UserID:    admin.ID,
		Email:     admin.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	s.publish(ctx, consts.SessionSignedIn, admin.ID)
	log.InfoContext(ctx, "admin signed in", "user_id", admin.ID)
	return session, nil
}

// GetSession token 缺失、无效、过期或已注销时返回 ErrSession
func (s *AuthServiceImpl) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSession
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrSession
	}
	claims, err := s.signer.ValidateToken(token)
	if err != nil {
		return nil, ErrSession
	}
	revoked, err := s.sessions.IsRevoked(ctx, signature)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSession
	}
	return &Session{
		Token:     token,
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignOut 把 token 签名加入黑名单直到过期，并通知该用户的其他页面
func (s *AuthServiceImpl) SignOut(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	signature, err := security.ExtractSignature(session.Token)
	if err != nil {
		return ErrSession
	}
	if err = s.sessions.Revoke(ctx, signature, time.Until(session.ExpiresAt)); err != nil {
		return err
	}
	s.publish(ctx, consts.SessionSignedOut, session.UserID)
	log.InfoContext(ctx, "admin signed out", "user_id", session.UserID)
	return nil
}

// OnSessionChange 订阅用户的会话变化，返回的函数用于取消订阅
func (s *AuthServiceImpl) OnSessionChange(ctx context.Context, userID string, fn func(SessionEvent)) (func(), error) {
	pubsub, err := s.sessions.Subscribe(ctx, userID)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			event, err := redis.DecodeEvent(msg.Payload)
			if err != nil {
				log.Warn("malformed session event", "payload", msg.Payload, "err", err)
				continue
			}
			fn(event)
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("close session subscription failed", "err", err)
		}
		<-done
	}, nil
}

func (s *AuthServiceImpl) publish(ctx context.Context, eventType, userID string) {
	err := s.sessions.Publish(ctx, SessionEvent{
		Type:   eventType,
		UserID: userID,
		At:     time.Now().Unix(),
	})
	if err != nil {
		log.WarnContext(ctx, "publish session event failed", "type", eventType, "err", err)
	}
}
