package account

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// hashCost bcrypt计算成本
var hashCost = 12

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,50}$`)

// Service 账号领域服务
// 设计说明:
// 1. 负责用户名/密码规则校验与bcrypt加密
// 2. 只依赖Repository接口
type Service interface {
	// Register 注册账号
	Register(ctx context.Context, username, password string, role Role) (*Account, error)

	// Authenticate 校验用户名密码
	Authenticate(ctx context.Context, username, password string) (*Account, error)

	// GetAccount 根据ID获取账号
	GetAccount(ctx context.Context, id uint) (*Account, error)

	// ValidatePassword 验证明文密码与哈希值
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建账号服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 注册账号
// 业务规则:
// 1. 用户名3-50位,只允许字母、数字和 _ . -
// 2. 密码6-64位
// 3. 用户名唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, username, password string, role Role) (*Account, error) {
	// 1. 用户名校验
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	// 2. 密码校验
	if len(password) < 6 || len(password) > 64 {
		return nil, ErrWeakPassword
	}

	// 3. 角色校验
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// 4. 密码加密
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 5. 持久化
	acc := NewAccount(username, string(hashed), role)
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Authenticate 校验用户名密码
// 用户名不存在与密码错误返回同一个错误,避免用户名枚举
func (s *service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	acc, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(acc.Password, password); err != nil {
		return nil, err
	}
	return acc, nil
}

// GetAccount 根据ID获取账号
func (s *service) GetAccount(ctx context.Context, id uint) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}

// ValidatePassword 验证密码
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}
