package book

import (
	"strings"
	"time"
)

// Type 图书类型(鉴别字段)
type Type string

const (
	TypeTextbook  Type = "textbook"  // 教科书(Sách giáo khoa)
	TypeReference Type = "reference" // 参考书(Sách tham khảo)
)

// Types 全部图书类型,按展示顺序
var Types = []Type{TypeTextbook, TypeReference}

// DisplayName 图书类型的展示名称
func (t Type) DisplayName() string {
	switch t {
	case TypeTextbook:
		return "Sách giáo khoa"
	case TypeReference:
		return "Sách tham khảo"
	default:
		return string(t)
	}
}

// Valid 是否为合法类型
func (t Type) Valid() bool {
	return t == TypeTextbook || t == TypeReference
}

// ParseType 解析图书类型
// 同时接受API标识(textbook/reference)和表单提交的展示名称
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "textbook", "sách giáo khoa":
		return TypeTextbook, true
	case "reference", "sách tham khảo":
		return TypeReference, true
	default:
		return "", false
	}
}

// Condition 教科书品相
type Condition string

const (
	ConditionNew  Condition = "new"  // 新书(mới)
	ConditionUsed Condition = "used" // 旧书(cũ),金额减半
)

// DisplayName 品相的展示名称
func (c Condition) DisplayName() string {
	switch c {
	case ConditionNew:
		return "mới"
	case ConditionUsed:
		return "cũ"
	default:
		return string(c)
	}
}

// ParseCondition 解析品相,接受new/used以及mới/cũ
func ParseCondition(s string) (Condition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new", "mới":
		return ConditionNew, true
	case "used", "cũ":
		return ConditionUsed, true
	default:
		return "", false
	}
}

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 教科书和参考书共用一个实体,由Type区分
// 2. Condition只对教科书有意义,Tax只对参考书有意义
// 3. 金额使用int64存储最小货币单位(避免浮点数精度问题)
// 4. Code作为业务唯一标识(数据库层保证唯一性)
type Book struct {
	ID          uint
	Code        string    // 图书编码
	Name        string    // 书名
	ImportDate  time.Time // 入库日期(零值表示未填写)
	Price       int64     // 单价
	Quantity    int       // 数量
	Publisher   string    // 出版社
	Image       string    // 封面图片
	Description string    // 图书描述
	Type        Type      // 图书类型,创建后不可修改
	Condition   Condition // 品相(仅教科书)
	Tax         int64     // 税额(仅参考书)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input 创建/更新图书的输入数据
// Condition保留原始字符串,由validator校验
type Input struct {
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

// NewBook 创建新图书(工厂方法)
// 调用方需先通过Validate校验输入
func NewBook(t Type, in Input) *Book {
	now := time.Now()
	b := &Book{
		Code:      strings.TrimSpace(in.Code),
		Type:      t,
		CreatedAt: now,
	}
	b.apply(in)
	b.UpdatedAt = now
	return b
}

// UpdateFrom 用输入数据更新图书
// 业务规则:
// 1. 编码和类型不可修改
// 2. 另一类型的专属字段被忽略
func (b *Book) UpdateFrom(in Input) {
	b.apply(in)
	b.UpdatedAt = time.Now()
}

func (b *Book) apply(in Input) {
	b.Name = strings.TrimSpace(in.Name)
	b.ImportDate = in.ImportDate
	b.Price = in.Price
	b.Quantity = in.Quantity
	b.Publisher = strings.TrimSpace(in.Publisher)
	b.Image = in.Image
	b.Description = in.Description

	switch b.Type {
	case TypeTextbook:
		b.Condition = ConditionNew
		if c, ok := ParseCondition(in.Condition); ok {
			b.Condition = c
		}
		b.Tax = 0
	case TypeReference:
		b.Condition = ""
		b.Tax = in.Tax
	}
}

// BaseAmount 数量 × 单价
func (b *Book) BaseAmount() int64 {
	return int64(b.Quantity) * b.Price
}

// TotalAmount 计算金额(领域行为)
// 业务规则:
// - 教科书: 数量 × 单价,旧书减半(奇数金额向上取整)
// - 参考书: 数量 × 单价 + 税额
func (b *Book) TotalAmount() int64 {
	base := b.BaseAmount()
	switch b.Type {
	case TypeTextbook:
		if b.Condition == ConditionUsed {
			return (base + 1) / 2
		}
		return base
	case TypeReference:
		return base + b.Tax
	default:
		return base
	}
}
