package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// Cache 图书读缓存端口(cache-aside)
// 实现方负责吞掉缓存错误:缓存不可用时退化为直接查库
type Cache interface {
	GetBook(ctx context.Context, id uint) (*book.Book, bool)
	SetBook(ctx context.Context, b *book.Book)
	GetStatistics(ctx context.Context) (*book.Statistics, bool)
	SetStatistics(ctx context.Context, s *book.Statistics)
	// InvalidateBook 删除图书缓存,同时使统计缓存失效
	InvalidateBook(ctx context.Context, id uint)
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) GetBook(context.Context, uint) (*book.Book, bool)       { return nil, false }
func (NopCache) SetBook(context.Context, *book.Book)                    {}
func (NopCache) GetStatistics(context.Context) (*book.Statistics, bool) { return nil, false }
func (NopCache) SetStatistics(context.Context, *book.Statistics)        {}
func (NopCache) InvalidateBook(context.Context, uint)                   {}
