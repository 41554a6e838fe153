package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

const statisticsKey = "book:stats"

// BookCache 图书详情与统计缓存(cache-aside)
// 设计说明:
// 1. Key设计:book:{id}、book:stats,值为JSON
// 2. 写操作后由应用层调用InvalidateBook,统计缓存一并删除
// 3. Redis错误只记录日志并视为未命中,不影响主流程
type BookCache struct {
	client   *redis.Client
	bookTTL  time.Duration
	statsTTL time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, bookTTL, statsTTL time.Duration) *BookCache {
	return &BookCache{client: client, bookTTL: bookTTL, statsTTL: statsTTL}
}

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// GetBook 读取图书缓存
func (c *BookCache) GetBook(ctx context.Context, id uint) (*book.Book, bool) {
	var b book.Book
	if !c.get(ctx, "book", bookKey(id), &b) {
		return nil, false
	}
	return &b, true
}

// SetBook 写入图书缓存
func (c *BookCache) SetBook(ctx context.Context, b *book.Book) {
	c.set(ctx, bookKey(b.ID), b, c.bookTTL)
}

// GetStatistics 读取统计缓存
func (c *BookCache) GetStatistics(ctx context.Context) (*book.Statistics, bool) {
	var s book.Statistics
	if !c.get(ctx, "statistics", statisticsKey, &s) {
		return nil, false
	}
	return &s, true
}

// SetStatistics 写入统计缓存
func (c *BookCache) SetStatistics(ctx context.Context, s *book.Statistics) {
	c.set(ctx, statisticsKey, s, c.statsTTL)
}

// InvalidateBook 删除图书缓存和统计缓存
func (c *BookCache) InvalidateBook(ctx context.Context, id uint) {
	if err := c.client.Del(ctx, bookKey(id), statisticsKey).Err(); err != nil {
		logger.FromContext(ctx).Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

func (c *BookCache) get(ctx context.Context, name, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": name, "result": "miss"})
		return false
	}
	if err == nil {
		err = json.Unmarshal(data, dest)
	}
	if err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": name, "result": "error"})
		logger.FromContext(ctx).Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": name, "result": "hit"})
	return true
}

func (c *BookCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err == nil {
		err = c.client.Set(ctx, key, data, ttl).Err()
	}
	if err != nil {
		logger.FromContext(ctx).Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}
