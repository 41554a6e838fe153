package user

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 读者领域错误定义
var (
	// ErrUserNotFound 读者不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "读者不存在")

	// ErrFullNameRequired 缺少姓名
	ErrFullNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")

	// ErrFullNameTooLong 姓名过长
	ErrFullNameTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能超过100个字符")

	// ErrInvalidAge 年龄不合法
	ErrInvalidAge = apperrors.New(apperrors.ErrCodeInvalidParams, "年龄必须在0-150之间")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	// ErrInvalidPhone 电话格式不正确
	ErrInvalidPhone = apperrors.New(apperrors.ErrCodeInvalidParams, "电话号码格式不正确")

	// ErrAccountLinked 账号已关联其他读者
	ErrAccountLinked = apperrors.New(apperrors.ErrCodeDuplicateEntry, "该账号已关联读者资料")
)
