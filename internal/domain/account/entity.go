package account

import (
	"time"
)

// Role 账号角色
type Role string

const (
	RoleUser  Role = "user"  // 普通馆员
	RoleAdmin Role = "admin" // 管理员(可管理读者资料)
)

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account 登录账号实体(聚合根)
// DDD设计说明:
// 1. Account只保存登录凭证,个人资料在user.User中
// 2. 密码为bcrypt哈希值,不暴露明文
// 3. 领域实体不依赖GORM tag
type Account struct {
	ID        uint
	Username  string
	Password  string // bcrypt哈希值
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount 创建账号(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewAccount(username, hashedPassword string, role Role) *Account {
	if role == "" {
		role = RoleUser
	}
	now := time.Now()
	return &Account{
		Username:  username,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
