package account

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 账号领域错误定义
var (
	// ErrAccountNotFound 账号不存在
	ErrAccountNotFound = apperrors.New(apperrors.ErrCodeAccountNotFound, "账号不存在")

	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户名已被注册")

	// ErrInvalidUsername 用户名不合法
	ErrInvalidUsername = apperrors.New(apperrors.ErrCodeInvalidParams, "用户名需为3-50位字母、数字、下划线、点或短横线")

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword, "密码长度需为6-64位")

	// ErrInvalidRole 角色不合法
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "角色必须是 user 或 admin")
)
