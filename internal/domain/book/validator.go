package book

import (
	"strings"
	"unicode/utf8"
)

const (
	maxCodeLen = 50
	maxNameLen = 255
)

// 金额与数量上限
// 上限保证 数量 × 单价 + 税额 不会溢出int64
const (
	MaxPrice    int64 = 1_000_000_000_000 // 单价上限(1万亿đồng)
	MaxTax      int64 = 1_000_000_000_000 // 税额上限
	MaxQuantity       = 1_000_000         // 数量上限
)

// ValidateType 校验图书类型
func ValidateType(raw string) (Type, error) {
	t, ok := ParseType(raw)
	if !ok {
		return "", ErrInvalidType
	}
	return t, nil
}

// ValidateCommon 校验两种图书共有的字段
// 返回第一个不满足的规则
func ValidateCommon(in Input) error {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return ErrCodeRequired
	}
	if utf8.RuneCountInString(code) > maxCodeLen {
		return ErrCodeTooLong
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return ErrNameTooLong
	}

	if strings.TrimSpace(in.Publisher) == "" {
		return ErrPublisherRequired
	}
	if in.Price < 0 {
		return ErrInvalidPrice
	}
	if in.Price > MaxPrice {
		return ErrPriceTooLarge
	}
	if in.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if in.Quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// ValidateTextbook 校验教科书: 共有字段 + 品相
func ValidateTextbook(in Input) error {
	if err := ValidateCommon(in); err != nil {
		return err
	}
	if _, ok := ParseCondition(in.Condition); !ok {
		return ErrInvalidCondition
	}
	return nil
}

// ValidateReference 校验参考书: 共有字段 + 税额
func ValidateReference(in Input) error {
	if err := ValidateCommon(in); err != nil {
		return err
	}
	if in.Tax < 0 {
		return ErrInvalidTax
	}
	if in.Tax > MaxTax {
		return ErrTaxTooLarge
	}
	return nil
}

// Validate 按类型分派校验
func Validate(t Type, in Input) error {
	switch t {
	case TypeTextbook:
		return ValidateTextbook(in)
	case TypeReference:
		return ValidateReference(in)
	default:
		return ErrInvalidType
	}
}
