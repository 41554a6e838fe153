package invoice

import (
	"time"

	"github.com/xiebiao/library/internal/domain/invoice"
)

// CreateInvoiceRequest 开票请求DTO
type CreateInvoiceRequest struct {
	AccountID uint // 当前登录账号(从JWT中提取)
	IsAdmin   bool
	UserID    uint   // 为0时使用当前账号关联的读者
	Code      string // 为空时自动生成
	Details   []DetailRequest
}

// DetailRequest 开票明细
// UnitPrice为nil或0时使用图书当前单价
type DetailRequest struct {
	BookID    uint
	Quantity  int
	UnitPrice *int64
}

// InvoiceDTO 发票响应DTO
type InvoiceDTO struct {
	ID          uint         `json:"id"`
	InvoiceCode string       `json:"invoice_code"`
	UserID      uint         `json:"user_id"`
	TotalAmount int64        `json:"total_amount"`
	Details     []*DetailDTO `json:"details"`
	CreatedAt   string       `json:"created_at"`
}

// DetailDTO 发票明细响应DTO
type DetailDTO struct {
	ID        uint  `json:"id"`
	BookID    uint  `json:"book_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Amount    int64 `json:"amount"`
}

// ToDTO 领域实体 → 响应DTO
func ToDTO(inv *invoice.Invoice) *InvoiceDTO {
	dto := &InvoiceDTO{
		ID:          inv.ID,
		InvoiceCode: inv.InvoiceCode,
		UserID:      inv.UserID,
		TotalAmount: inv.TotalAmount,
		Details:     make([]*DetailDTO, len(inv.Details)),
		CreatedAt:   inv.CreatedAt.Format(time.DateTime),
	}
	for i, d := range inv.Details {
		dto.Details[i] = &DetailDTO{
			ID:        d.ID,
			BookID:    d.BookID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Amount:    d.Amount(),
		}
	}
	return dto
}

// ToDTOs 批量转换
func ToDTOs(invoices []*invoice.Invoice) []*InvoiceDTO {
	list := make([]*InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		list[i] = ToDTO(inv)
	}
	return list
}
