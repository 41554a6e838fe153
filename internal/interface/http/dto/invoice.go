package dto

import (
	appborrow "github.com/xiebiao/library/internal/application/borrow"
	appinvoice "github.com/xiebiao/library/internal/application/invoice"
)

// CreateInvoiceRequest HTTP开票请求
type CreateInvoiceRequest struct {
	UserID      uint                   `json:"user_id" example:"3"` // 为空时使用当前账号的读者资料
	InvoiceCode string                 `json:"invoice_code" binding:"max=50" example:""`
	Details     []InvoiceDetailRequest `json:"details" binding:"required,min=1,dive"`
}

// InvoiceDetailRequest 开票明细
type InvoiceDetailRequest struct {
	BookID    uint   `json:"book_id" binding:"required" example:"1"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
	UnitPrice *int64 `json:"unit_price" binding:"omitempty,min=0" example:"25000"` // 为空时使用图书当前单价
}

// ToDetails 转换为应用层明细
func (r *CreateInvoiceRequest) ToDetails() []appinvoice.DetailRequest {
	details := make([]appinvoice.DetailRequest, len(r.Details))
	for i, d := range r.Details {
		details[i] = appinvoice.DetailRequest{BookID: d.BookID, Quantity: d.Quantity, UnitPrice: d.UnitPrice}
	}
	return details
}

// BorrowRequest HTTP借阅登记请求
type BorrowRequest struct {
	UserID     uint   `json:"user_id" example:"3"` // 为空时使用当前账号的读者资料
	BookID     uint   `json:"book_id" binding:"required" example:"1"`
	Quantity   int    `json:"quantity" binding:"required,min=1" example:"1"`
	BorrowDate string `json:"borrow_date" binding:"omitempty,datetime=2006-01-02" example:"2024-09-01"` // 为空时取当天
	ReturnDate string `json:"return_date" binding:"omitempty,datetime=2006-01-02" example:"2024-09-15"`
	Fee        int64  `json:"fee" binding:"min=0" example:"5000"`
}

// ToBorrowRequest 转换为应用层请求(不含当前账号信息)
func (r *BorrowRequest) ToBorrowRequest() appborrow.BorrowRequest {
	req := appborrow.BorrowRequest{
		UserID:     r.UserID,
		BookID:     r.BookID,
		Quantity:   r.Quantity,
		BorrowDate: parseDate(r.BorrowDate),
		Fee:        r.Fee,
	}
	if r.ReturnDate != "" {
		if t := parseDate(r.ReturnDate); !t.IsZero() {
			req.ReturnDate = &t
		}
	}
	return req
}
