package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/account"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// accountRepository 账号仓储实现
// 用户名唯一性由数据库UNIQUE索引保证(而非应用层SELECT再INSERT)
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewAccountRepository(db *gorm.DB) account.Repository {
	return &accountRepository{db: db}
}

// Create 创建账号
func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	model := &AccountModel{
		Username: a.Username,
		Password: a.Password,
		Role:     string(a.Role),
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return account.ErrUsernameDuplicate
		}
		return apperrors.Wrap(err, "创建账号失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找账号
func (r *accountRepository) FindByID(ctx context.Context, id uint) (*account.Account, error) {
	var model AccountModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, account.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "查询账号失败")
	}
	return toAccountEntity(&model), nil
}

// FindByUsername 根据用户名查找账号
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	var model AccountModel
	if err := conn(ctx, r.db).Where("username = ?", username).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, account.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "查询账号失败")
	}
	return toAccountEntity(&model), nil
}

// toAccountEntity GORM模型 → 领域实体
func toAccountEntity(model *AccountModel) *account.Account {
	return &account.Account{
		ID:        model.ID,
		Username:  model.Username,
		Password:  model.Password,
		Role:      account.Role(model.Role),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
