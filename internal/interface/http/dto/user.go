package dto

import (
	appuser "github.com/xiebiao/library/internal/application/user"
)

// RegisterRequest HTTP层注册请求
// 说明:账号和读者资料一起提交,资料字段可选
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"lan.nguyen"`
	Password string `json:"password" binding:"required,min=6,max=64" example:"matkhau123"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin" example:"user"` // 仅管理员注册时生效
	FullName string `json:"full_name" binding:"max=100" example:"Nguyễn Thị Lan"`
	Email    string `json:"email" binding:"omitempty,email" example:"lan@example.com"`
	Phone    string `json:"phone" binding:"max=20" example:"0901234567"`
	Age      int    `json:"age" binding:"min=0,max=150" example:"20"`
	Gender   string `json:"gender" binding:"max=10" example:"Nữ"`
	Address  string `json:"address" binding:"max=255" example:"Hà Nội"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"lan.nguyen"`
	Password string `json:"password" binding:"required" example:"matkhau123"`
}

// RefreshTokenRequest 刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新Token响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// UserRequest 新增/更新读者请求
type UserRequest struct {
	FullName string `json:"full_name" form:"full_name" binding:"required,max=100" example:"Trần Văn An"`
	Age      int    `json:"age" form:"age" binding:"min=0,max=150" example:"21"`
	Email    string `json:"email" form:"email" binding:"omitempty,email" example:"an@example.com"`
	Phone    string `json:"phone" form:"phone" binding:"max=20" example:"0912345678"`
	Gender   string `json:"gender" form:"gender" binding:"max=10" example:"Nam"`
	Address  string `json:"address" form:"address" binding:"max=255" example:"Đà Nẵng"`
}

// ToProfileRequest 转换为应用层请求
func (r *UserRequest) ToProfileRequest() appuser.ProfileRequest {
	return appuser.ProfileRequest{
		FullName: r.FullName,
		Age:      r.Age,
		Email:    r.Email,
		Phone:    r.Phone,
		Gender:   r.Gender,
		Address:  r.Address,
	}
}
