package user

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
)

// ProfileRequest 创建/更新读者资料请求DTO
type ProfileRequest struct {
	FullName string
	Age      int
	Email    string
	Phone    string
	Gender   string
	Address  string
}

func (r ProfileRequest) profile() user.Profile {
	return user.Profile{
		FullName: r.FullName,
		Age:      r.Age,
		Email:    r.Email,
		Phone:    r.Phone,
		Gender:   r.Gender,
		Address:  r.Address,
	}
}

// UserDTO 读者响应DTO
type UserDTO struct {
	ID        uint   `json:"id"`
	AccountID uint   `json:"account_id,omitempty"`
	FullName  string `json:"full_name"`
	Age       int    `json:"age"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ToDTO 领域实体 → 响应DTO
func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		AccountID: u.AccountID,
		FullName:  u.FullName,
		Age:       u.Age,
		Email:     u.Email,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Address:   u.Address,
		CreatedAt: u.CreatedAt.Format(time.DateTime),
	}
}

// ManageUserUseCase 读者管理用例(仅管理员)
// 管理员录入的读者不关联账号,删除读者不删除账号
type ManageUserUseCase struct {
	userService user.Service
}

// NewManageUserUseCase 创建读者管理用例
func NewManageUserUseCase(userService user.Service) *ManageUserUseCase {
	return &ManageUserUseCase{userService: userService}
}

// List 全部读者
func (uc *ManageUserUseCase) List(ctx context.Context) ([]*UserDTO, error) {
	users, err := uc.userService.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*UserDTO, len(users))
	for i, u := range users {
		list[i] = ToDTO(u)
	}
	return list, nil
}

// Get 读者详情
func (uc *ManageUserUseCase) Get(ctx context.Context, id uint) (*UserDTO, error) {
	u, err := uc.userService.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(u), nil
}

// Create 新增读者
func (uc *ManageUserUseCase) Create(ctx context.Context, req ProfileRequest) (*UserDTO, error) {
	u, err := uc.userService.CreateUser(ctx, req.profile())
	if err != nil {
		return nil, err
	}
	return ToDTO(u), nil
}

// Update 更新读者资料
func (uc *ManageUserUseCase) Update(ctx context.Context, id uint, req ProfileRequest) (*UserDTO, error) {
	u, err := uc.userService.UpdateUser(ctx, id, req.profile())
	if err != nil {
		return nil, err
	}
	return ToDTO(u), nil
}

// Delete 删除读者
func (uc *ManageUserUseCase) Delete(ctx context.Context, id uint) error {
	return uc.userService.DeleteUser(ctx, id)
}
