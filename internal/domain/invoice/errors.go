package invoice

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 发票领域错误定义
var (
	// ErrInvoiceNotFound 发票不存在
	ErrInvoiceNotFound = apperrors.New(apperrors.ErrCodeInvoiceNotFound, "发票不存在")

	// ErrCodeDuplicate 发票编号已存在
	ErrCodeDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "发票编号已存在")

	// ErrEmptyDetails 明细为空
	ErrEmptyDetails = apperrors.New(apperrors.ErrCodeInvalidParams, "发票明细不能为空")

	// ErrInvalidBook 明细缺少图书
	ErrInvalidBook = apperrors.New(apperrors.ErrCodeInvalidParams, "发票明细必须指定图书")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrQuantityTooLarge 数量超过上限
	ErrQuantityTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量不能超过1.000.000")

	// ErrUnitPriceTooLarge 单价超过上限
	ErrUnitPriceTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能超过1.000.000.000.000")

	// ErrTotalTooLarge 合计超过上限
	ErrTotalTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "发票合计金额超过上限")

	// ErrInvalidUnitPrice 单价不合法
	ErrInvalidUnitPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能为负数")
)
