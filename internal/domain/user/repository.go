package user

import (
	"context"
)

// Repository 读者仓储接口
// DDD设计说明:
// 1. 接口定义在domain层(依赖倒置原则)
// 2. 具体实现在infrastructure/persistence/database
type Repository interface {
	// Create 创建读者
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找读者
	// 如果不存在,返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByAccountID 查找账号关联的读者
	FindByAccountID(ctx context.Context, accountID uint) (*User, error)

	// List 全部读者(按ID升序)
	List(ctx context.Context) ([]*User, error)

	// Update 更新读者资料
	Update(ctx context.Context, user *User) error

	// Delete 删除读者(不级联)
	Delete(ctx context.Context, id uint) error
}
