package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// userRepository 读者仓储实现
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. AccountID为0时存NULL,唯一索引只约束已关联账号的资料
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建读者仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建读者
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrAccountLinked
		}
		return apperrors.Wrap(err, "创建读者失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找读者
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}
	return toUserEntity(&model), nil
}

// FindByAccountID 查找账号关联的读者
func (r *userRepository) FindByAccountID(ctx context.Context, accountID uint) (*user.User, error) {
	var model UserModel
	if err := conn(ctx, r.db).Where("account_id = ?", accountID).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}
	return toUserEntity(&model), nil
}

// List 全部读者
func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := conn(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询读者列表失败")
	}
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

// Update 更新读者资料
// 关联账号不随资料修改,存在性由调用方先行查询保证(同图书Update)
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := conn(ctx, r.db).Model(&UserModel{ID: u.ID}).
		Select("*").
		Omit("id", "account_id", "created_at").
		Updates(model).Error; err != nil {
		return apperrors.Wrap(err, "更新读者失败")
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除读者
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&UserModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除读者失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toUserModel(u *user.User) *UserModel {
	model := &UserModel{
		ID:        u.ID,
		FullName:  u.FullName,
		Age:       u.Age,
		Email:     u.Email,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.AccountID != 0 {
		id := u.AccountID
		model.AccountID = &id
	}
	return model
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	u := &user.User{
		ID:        model.ID,
		FullName:  model.FullName,
		Age:       model.Age,
		Email:     model.Email,
		Phone:     model.Phone,
		Gender:    model.Gender,
		Address:   model.Address,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.AccountID != nil {
		u.AccountID = *model.AccountID
	}
	return u
}
