package redis

import (
	"Portfolio/internal/pkg/consts"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// SessionEvent 会话变化通知
type SessionEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	At     int64  `json:"at"`
}

// SessionStore 保存已注销的 token 签名，并通过频道广播会话变化
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Revoke 把 token 签名加入黑名单，直到其自然过期
func (s *SessionStore) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, consts.SessionRevokedKey+signature, 1, ttl).Err()
}

// IsRevoked 判断 token 签名是否已注销
func (s *SessionStore) IsRevoked(ctx context.Context, signature string) (bool, error) {
	n, err := s.rdb.Exists(ctx, consts.SessionRevokedKey+signature).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Publish 向用户的会话频道广播事件
func (s *SessionStore) Publish(ctx context.Context, event SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, consts.SessionChangeKey+event.UserID, payload).Err()
}

// Subscribe 订阅用户的会话频道，返回的 PubSub 由调用方关闭
func (s *SessionStore) Subscribe(ctx context.Context, userID string) (*redis.PubSub, error) {
	pubsub := s.rdb.Subscribe(ctx, consts.SessionChangeKey+userID)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return pubsub, nil
}

// DecodeEvent 解析频道消息
func DecodeEvent(payload string) (SessionEvent, error) {
	var event SessionEvent
	err := json.Unmarshal([]byte(payload), &event)
	return event, err
}
