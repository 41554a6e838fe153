package invoice

import (
	"context"
)

// Repository 发票仓储接口
type Repository interface {
	// Create 创建发票(含明细)
	// 需要在事务中调用,保证表头与明细一起提交
	Create(ctx context.Context, invoice *Invoice) error

	// FindByID 根据ID查找发票(含明细)
	FindByID(ctx context.Context, id uint) (*Invoice, error)

	// List 全部发票(含明细,按ID倒序)
	List(ctx context.Context) ([]*Invoice, error)

	// ListByUserID 某读者的发票
	ListByUserID(ctx context.Context, userID uint) ([]*Invoice, error)
}
