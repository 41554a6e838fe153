package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrCodeDuplicate 图书编码已存在
	ErrCodeDuplicate = apperrors.New(apperrors.ErrCodeBookCodeDuplicate, "图书编码已存在")

	// ErrInvalidType 图书类型不合法
	ErrInvalidType = apperrors.New(apperrors.ErrCodeInvalidParams, "图书类型不合法,必须是 textbook(Sách giáo khoa) 或 reference(Sách tham khảo)")

	// ErrCodeRequired 缺少图书编码
	ErrCodeRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "图书编码不能为空")

	// ErrCodeTooLong 图书编码过长
	ErrCodeTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "图书编码不能超过50个字符")

	// ErrNameRequired 缺少书名
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrNameTooLong 书名过长
	ErrNameTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能超过255个字符")

	// ErrPublisherRequired 缺少出版社
	ErrPublisherRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社不能为空")

	// ErrInvalidPrice 单价不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能为负数")

	// ErrPriceTooLarge 单价超过上限
	ErrPriceTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能超过1.000.000.000.000")

	// ErrQuantityTooLarge 数量超过上限
	ErrQuantityTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不能超过1.000.000")

	// ErrTaxTooLarge 税额超过上限
	ErrTaxTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "税额不能超过1.000.000.000.000")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不能为负数")

	// ErrInvalidCondition 品相不合法
	ErrInvalidCondition = apperrors.New(apperrors.ErrCodeInvalidParams, "教科书品相必须是 new(mới) 或 used(cũ)")

	// ErrInvalidImportDate 入库日期格式错误
	ErrInvalidImportDate = apperrors.New(apperrors.ErrCodeInvalidParams, "入库日期格式必须是yyyy-mm-dd")

	// ErrInvalidTax 税额不合法
	ErrInvalidTax = apperrors.New(apperrors.ErrCodeInvalidParams, "税额不能为负数")
)
