package account

import (
	"context"
	"time"
)

// TxManager 事务端口,由database.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionStore 会话端口,由redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, accountID uint, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, accountID uint) error
	AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
}
