package borrow

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrRecordNotFound 借阅记录不存在
	ErrRecordNotFound = apperrors.New(apperrors.ErrCodeBorrowNotFound, "借阅记录不存在")

	// ErrUserRequired 缺少读者
	ErrUserRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "必须指定借阅读者")

	// ErrBookRequired 缺少图书
	ErrBookRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "必须指定借阅图书")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅数量必须大于0")

	// ErrInvalidFee 费用不合法
	ErrInvalidFee = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅费用不能为负数")

	// ErrInvalidReturnDate 归还日期不合法
	ErrInvalidReturnDate = apperrors.New(apperrors.ErrCodeInvalidParams, "归还日期不能早于借阅日期")
)
