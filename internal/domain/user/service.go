package user

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 .\-]{6,20}$`)
)

// Service 读者领域服务
type Service interface {
	// ListUsers 全部读者
	ListUsers(ctx context.Context) ([]*User, error)

	// GetUser 根据ID获取读者
	GetUser(ctx context.Context, id uint) (*User, error)

	// GetByAccount 获取账号关联的读者
	GetByAccount(ctx context.Context, accountID uint) (*User, error)

	// CreateUser 新增读者
	CreateUser(ctx context.Context, p Profile) (*User, error)

	// UpdateUser 更新读者资料
	UpdateUser(ctx context.Context, id uint, p Profile) (*User, error)

	// DeleteUser 删除读者
	DeleteUser(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService 创建读者服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListUsers 全部读者
func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// GetUser 根据ID获取读者
func (s *service) GetUser(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByAccount 获取账号关联的读者
func (s *service) GetByAccount(ctx context.Context, accountID uint) (*User, error) {
	return s.repo.FindByAccountID(ctx, accountID)
}

// CreateUser 新增读者
// 业务规则:一个账号只能关联一份资料
func (s *service) CreateUser(ctx context.Context, p Profile) (*User, error) {
	// 1. 校验资料
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}

	// 2. 检查账号是否已关联
	if p.AccountID != 0 {
		if existing, err := s.repo.FindByAccountID(ctx, p.AccountID); err == nil && existing != nil {
			return nil, ErrAccountLinked
		}
	}

	// 3. 持久化
	u := NewUser(p)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser 更新读者资料
func (s *service) UpdateUser(ctx context.Context, id uint, p Profile) (*User, error) {
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.UpdateProfile(p)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser 删除读者
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// ValidateProfile 校验读者资料
// 邮箱和电话只在填写时校验格式
func ValidateProfile(p Profile) error {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		return ErrFullNameRequired
	}
	if utf8.RuneCountInString(name) > 100 {
		return ErrFullNameTooLong
	}
	if p.Age < 0 || p.Age > 150 {
		return ErrInvalidAge
	}
	if email := strings.TrimSpace(p.Email); email != "" && !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if phone := strings.TrimSpace(p.Phone); phone != "" && !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}
