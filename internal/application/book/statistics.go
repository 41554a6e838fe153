package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// StatisticsUseCase 图书统计用例
// 统计需要扫描全部图书,结果短期缓存,任何图书写操作都会使其失效
type StatisticsUseCase struct {
	bookService book.Service
	cache       Cache
}

// NewStatisticsUseCase 创建统计用例
func NewStatisticsUseCase(bookService book.Service, cache Cache) *StatisticsUseCase {
	return &StatisticsUseCase{bookService: bookService, cache: cache}
}

// Execute 汇总统计
func (uc *StatisticsUseCase) Execute(ctx context.Context) (*book.Statistics, error) {
	if s, ok := uc.cache.GetStatistics(ctx); ok {
		return s, nil
	}

	s, err := uc.bookService.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.SetStatistics(ctx, s)
	return s, nil
}

// TotalAmountByType 某类型图书的金额合计
func (uc *StatisticsUseCase) TotalAmountByType(ctx context.Context, rawType string) (int64, error) {
	t, err := book.ValidateType(rawType)
	if err != nil {
		return 0, err
	}
	return uc.bookService.TotalAmountByType(ctx, t)
}

// AveragePriceReference 参考书平均单价
func (uc *StatisticsUseCase) AveragePriceReference(ctx context.Context) (int64, error) {
	return uc.bookService.AveragePriceReference(ctx)
}
