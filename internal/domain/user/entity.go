package user

import (
	"strings"
	"time"
)

// User 读者资料实体
// DDD设计说明:
// 1. User保存个人资料,登录凭证在account.Account中
// 2. AccountID为0表示没有关联账号(管理员直接录入的读者)
// 3. 领域实体不依赖GORM tag
type User struct {
	ID        uint
	AccountID uint
	FullName  string
	Age       int
	Email     string
	Phone     string
	Gender    string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile 创建/更新读者资料的输入
type Profile struct {
	AccountID uint
	FullName  string
	Age       int
	Email     string
	Phone     string
	Gender    string
	Address   string
}

// NewUser 创建读者资料(工厂方法)
func NewUser(p Profile) *User {
	now := time.Now()
	u := &User{AccountID: p.AccountID, CreatedAt: now}
	u.apply(p)
	u.UpdatedAt = now
	return u
}

// UpdateProfile 更新资料(领域行为)
// 关联的账号不随资料修改
func (u *User) UpdateProfile(p Profile) {
	u.apply(p)
	u.UpdatedAt = time.Now()
}

func (u *User) apply(p Profile) {
	u.FullName = strings.TrimSpace(p.FullName)
	u.Age = p.Age
	u.Email = strings.TrimSpace(p.Email)
	u.Phone = strings.TrimSpace(p.Phone)
	u.Gender = strings.TrimSpace(p.Gender)
	u.Address = strings.TrimSpace(p.Address)
}

// HasAccount 是否关联了登录账号
func (u *User) HasAccount() bool {
	return u.AccountID != 0
}
