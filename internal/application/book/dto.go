package book

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// BookRequest 新增/更新图书请求DTO
// Type只在新增时生效;Condition只对教科书生效,Tax只对参考书生效
type BookRequest struct {
	Type        string
	Code        string
	Name        string
	ImportDate  time.Time
	Price       int64
	Quantity    int
	Publisher   string
	Image       string
	Description string
	Condition   string
	Tax         int64
}

func (r BookRequest) input() book.Input {
	return book.Input{
		Code:        r.Code,
		Name:        r.Name,
		ImportDate:  r.ImportDate,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Publisher:   r.Publisher,
		Image:       r.Image,
		Description: r.Description,
		Condition:   r.Condition,
		Tax:         r.Tax,
	}
}

// BookDTO 图书响应DTO
type BookDTO struct {
	ID            uint   `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	TypeName      string `json:"type_name"`
	ImportDate    string `json:"import_date,omitempty"`
	Price         int64  `json:"price"` // 单价(đồng)
	Quantity      int    `json:"quantity"`
	Publisher     string `json:"publisher"`
	Image         string `json:"image,omitempty"`
	Description   string `json:"description,omitempty"`
	Condition     string `json:"condition,omitempty"`
	ConditionName string `json:"condition_name,omitempty"`
	Tax           *int64 `json:"tax,omitempty"`
	TotalAmount   int64  `json:"total_amount"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ToDTO 领域实体 → 响应DTO
func ToDTO(b *book.Book) *BookDTO {
	dto := &BookDTO{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		Type:        string(b.Type),
		TypeName:    b.Type.DisplayName(),
		Price:       b.Price,
		Quantity:    b.Quantity,
		Publisher:   b.Publisher,
		Image:       b.Image,
		Description: b.Description,
		TotalAmount: b.TotalAmount(),
		CreatedAt:   b.CreatedAt.Format(dateTimeLayout),
		UpdatedAt:   b.UpdatedAt.Format(dateTimeLayout),
	}
	if !b.ImportDate.IsZero() {
		dto.ImportDate = b.ImportDate.Format(dateLayout)
	}
	switch b.Type {
	case book.TypeTextbook:
		dto.Condition = string(b.Condition)
		dto.ConditionName = b.Condition.DisplayName()
	case book.TypeReference:
		tax := b.Tax
		dto.Tax = &tax
	}
	return dto
}

// ToDTOs 批量转换
func ToDTOs(books []*book.Book) []*BookDTO {
	list := make([]*BookDTO, len(books))
	for i, b := range books {
		list[i] = ToDTO(b)
	}
	return list
}
