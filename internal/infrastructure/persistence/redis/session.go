package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// SessionStore 会话存储
// 设计说明：
// 1. 使用Redis记录账号登录会话(登录时间、IP、角色)
// 2. 支持JWT黑名单(登出后Token立即失效)
// 3. Key设计：session:{account_id}、blacklist:{token_id}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(accountID uint) string {
	return fmt.Sprintf("session:%d", accountID)
}

func blacklistKey(tokenID string) string {
	return "blacklist:" + tokenID
}

// SaveSession 保存账号会话
// 过期时间与Token有效期一致
func (s *SessionStore) SaveSession(ctx context.Context, accountID uint, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(accountID)

	// Pipeline合并HSet和Expire,减少网络往返
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, data)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "保存会话失败")
	}
	return nil
}

// DeleteSession 删除账号会话(用于登出)
func (s *SessionStore) DeleteSession(ctx context.Context, accountID uint) error {
	if err := s.client.Del(ctx, sessionKey(accountID)).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
// ttl取Token剩余有效期,过期后自动删除
func (s *SessionStore) AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(tokenID), "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "检查黑名单失败")
	}
	return exists > 0, nil
}
