package borrow

import (
	"context"
)

// Repository 借阅记录仓储接口
type Repository interface {
	// Create 登记借阅
	Create(ctx context.Context, record *Record) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Record, error)

	// List 全部借阅记录(按借阅日期倒序)
	List(ctx context.Context) ([]*Record, error)

	// ListByUserID 某读者的借阅记录
	ListByUserID(ctx context.Context, userID uint) ([]*Record, error)
}
