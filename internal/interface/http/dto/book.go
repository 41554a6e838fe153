package dto

import (
	"time"

	appbook "github.com/xiebiao/library/internal/application/book"
)

// DateLayout 请求中的日期格式
const DateLayout = "2006-01-02"

// CreateBookRequest HTTP新增图书请求
// validator tag说明:
// - book_type/book_condition: 自定义校验(router.BindingRules通过pkg/validator注册),同时接受越南语展示名称
// - price/quantity使用指针,区分"未填写"和"填写了0"
// - 数值范围和长度由领域校验负责,返回统一的业务错误
// 金额单位均为đồng
type CreateBookRequest struct {
	Type        string `json:"type" binding:"required,book_type" example:"textbook"`
	Code        string `json:"code" binding:"required" example:"GK-TOAN-10"`
	Name        string `json:"name" binding:"required" example:"Toán 10"`
	ImportDate  string `json:"import_date" binding:"omitempty,datetime=2006-01-02" example:"2024-08-15"`
	Price       *int64 `json:"price" binding:"required" example:"25000"`
	Quantity    *int   `json:"quantity" binding:"required" example:"40"`
	Publisher   string `json:"publisher" binding:"required" example:"NXB Giáo dục"`
	Image       string `json:"image" binding:"omitempty,max=500" example:"https://example.com/toan10.jpg"`
	Description string `json:"description" binding:"max=5000"`
	// 教科书: new | used
	Condition string `json:"condition" binding:"omitempty,book_condition" example:"new"`
	// 参考书税额(đồng)
	Tax int64 `json:"tax" example:"0"`
}

// ToBookRequest 转换为应用层请求
func (r *CreateBookRequest) ToBookRequest() appbook.BookRequest {
	return appbook.BookRequest{
		Type:        r.Type,
		Code:        r.Code,
		Name:        r.Name,
		ImportDate:  parseDate(r.ImportDate),
		Price:       deref64(r.Price),
		Quantity:    derefInt(r.Quantity),
		Publisher:   r.Publisher,
		Image:       r.Image,
		Description: r.Description,
		Condition:   r.Condition,
		Tax:         r.Tax,
	}
}

// UpdateBookRequest HTTP更新图书请求
// 编码和类型不可修改,因此不在请求中出现
type UpdateBookRequest struct {
	Name        string `json:"name" binding:"required" example:"Toán 10 (tái bản)"`
	ImportDate  string `json:"import_date" binding:"omitempty,datetime=2006-01-02"`
	Price       *int64 `json:"price" binding:"required" example:"27000"`
	Quantity    *int   `json:"quantity" binding:"required" example:"35"`
	Publisher   string `json:"publisher" binding:"required"`
	Image       string `json:"image" binding:"omitempty,max=500"`
	Description string `json:"description" binding:"max=5000"`
	Condition   string `json:"condition" binding:"omitempty,book_condition"`
	Tax         int64  `json:"tax"`
}

// ToBookRequest 转换为应用层请求
func (r *UpdateBookRequest) ToBookRequest() appbook.BookRequest {
	return appbook.BookRequest{
		Name:        r.Name,
		ImportDate:  parseDate(r.ImportDate),
		Price:       deref64(r.Price),
		Quantity:    derefInt(r.Quantity),
		Publisher:   r.Publisher,
		Image:       r.Image,
		Description: r.Description,
		Condition:   r.Condition,
		Tax:         r.Tax,
	}
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword   string `form:"q" binding:"omitempty,max=100" example:"Toán"`
	Type      string `form:"type" binding:"omitempty,book_type" example:"textbook"`
	Publisher string `form:"publisher" binding:"omitempty,max=255"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc name_asc created_at_desc id_desc" example:"name_asc"`
}

// BookStatisticsResponse 统计响应
// 金额字段同时返回格式化字符串,方便前端直接展示
type BookStatisticsResponse struct {
	TotalBooks                     int    `json:"total_books" example:"12"`
	TotalTextbooks                 int    `json:"total_textbooks" example:"7"`
	TotalReferenceBooks            int    `json:"total_reference_books" example:"5"`
	TotalAmountTextbooks           int64  `json:"total_amount_textbooks" example:"1250000"`
	TotalAmountReferenceBooks      int64  `json:"total_amount_reference_books" example:"3400000"`
	AveragePriceReferenceBooks     int64  `json:"average_price_reference_books" example:"150000"`
	TotalAmountAll                 int64  `json:"total_amount_all" example:"4650000"`
	TotalAmountAllFormatted        string `json:"total_amount_all_formatted" example:"4.650.000 VND"`
	AveragePriceReferenceFormatted string `json:"average_price_reference_formatted" example:"150.000 VND"`
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func deref64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
