package invoice

import (
	"strings"
	"time"
)

// 明细上限
// 单行金额最大为 MaxQuantity × MaxUnitPrice = 1e18,合计另行限制,二者都在int64范围内
const (
	MaxQuantity        = 1_000_000
	MaxUnitPrice int64 = 1_000_000_000_000
	MaxTotal     int64 = 1_000_000_000_000_000_000
)

// Invoice 发票实体(聚合根)
// 设计说明:
// 1. Details是聚合内的子实体,与表头一起持久化
// 2. TotalAmount由明细计算得出,不接受外部传入
// 3. 金额使用int64存储最小货币单位
type Invoice struct {
	ID          uint
	UserID      uint   // 读者ID
	InvoiceCode string // 发票编号(业务主键,全局唯一)
	TotalAmount int64  // 合计金额
	Details     []Detail
	CreatedAt   time.Time
}

// Detail 发票明细
// UnitPrice是开票时的单价快照,图书改价后历史发票金额不变
type Detail struct {
	ID        uint
	InvoiceID uint
	BookID    uint
	Quantity  int
	UnitPrice int64
}

// Amount 明细金额 = 数量 × 单价
func (d Detail) Amount() int64 {
	return int64(d.Quantity) * d.UnitPrice
}

// NewInvoice 创建发票(工厂方法)
// code为空时自动生成
func NewInvoice(userID uint, code string, details []Detail) *Invoice {
	code = strings.TrimSpace(code)
	if code == "" {
		code = GenerateInvoiceCode()
	}
	inv := &Invoice{
		UserID:      userID,
		InvoiceCode: code,
		Details:     details,
		CreatedAt:   time.Now(),
	}
	inv.TotalAmount = inv.CalculateTotal()
	return inv
}

// CalculateTotal 合计 = Σ 数量 × 单价
func (i *Invoice) CalculateTotal() int64 {
	var total int64
	for _, d := range i.Details {
		total += d.Amount()
	}
	return total
}

// ValidateDetails 校验明细
// 业务规则:明细不能为空,0<数量<=MaxQuantity,0<=单价<=MaxUnitPrice,合计不超过MaxTotal
func ValidateDetails(details []Detail) error {
	if len(details) == 0 {
		return ErrEmptyDetails
	}
	var total int64
	for _, d := range details {
		if d.BookID == 0 {
			return ErrInvalidBook
		}
		if d.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if d.Quantity > MaxQuantity {
			return ErrQuantityTooLarge
		}
		if d.UnitPrice < 0 {
			return ErrInvalidUnitPrice
		}
		if d.UnitPrice > MaxUnitPrice {
			return ErrUnitPriceTooLarge
		}
		amount := d.Amount()
		if amount > MaxTotal-total {
			return ErrTotalTooLarge
		}
		total += amount
	}
	return nil
}
