package account

import (
	"context"
)

// Repository 账号仓储接口
type Repository interface {
	// Create 创建账号
	// 用户名已存在时返回ErrUsernameDuplicate
	Create(ctx context.Context, account *Account) error

	// FindByID 根据ID查找账号
	FindByID(ctx context.Context, id uint) (*Account, error)

	// FindByUsername 根据用户名查找账号
	FindByUsername(ctx context.Context, username string) (*Account, error)
}
