package database

import (
	"time"
)

// AccountModel GORM账号模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/account/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type AccountModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role      string    `gorm:"size:10;not null;default:user;comment:角色(user/admin)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AccountModel) TableName() string {
	return "accounts"
}

// UserModel GORM读者资料模型
// AccountID可为NULL,唯一索引保证一个账号只关联一份资料
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	AccountID *uint     `gorm:"uniqueIndex;comment:关联账号ID"`
	FullName  string    `gorm:"size:100;not null;comment:姓名"`
	Age       int       `gorm:"default:0;comment:年龄"`
	Email     string    `gorm:"size:100;comment:邮箱"`
	Phone     string    `gorm:"size:20;comment:电话"`
	Gender    string    `gorm:"size:10;comment:性别"`
	Address   string    `gorm:"size:255;comment:地址"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 两种图书共用一张表,book_type为鉴别列
// 2. condition_status只对教科书有值,tax只对参考书有值(其余为NULL)
// 3. 金额使用int64存储最小货币单位
// 4. 图书为物理删除,没有DeletedAt
type BookModel struct {
	ID              uint       `gorm:"primaryKey"`
	Code            string     `gorm:"uniqueIndex;size:50;not null;comment:图书编码"`
	Name            string     `gorm:"index;size:255;not null;comment:书名"`
	BookType        string     `gorm:"index;size:20;not null;comment:图书类型(textbook/reference)"`
	ImportDate      *time.Time `gorm:"type:date;comment:入库日期"`
	Price           int64      `gorm:"not null;default:0;comment:单价"`
	Quantity        int        `gorm:"not null;default:0;comment:数量"`
	Publisher       string     `gorm:"index;size:255;not null;comment:出版社"`
	Image           string     `gorm:"size:500;comment:封面图片"`
	Description     string     `gorm:"type:text;comment:图书描述"`
	ConditionStatus *string    `gorm:"size:10;comment:品相(new/used,仅教科书)"`
	Tax             *int64     `gorm:"comment:税额(仅参考书)"`
	CreatedAt       time.Time  `gorm:"comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// InvoiceModel GORM发票模型
// 与InvoiceDetailModel是一对多关系
type InvoiceModel struct {
	ID          uint                 `gorm:"primaryKey"`
	UserID      uint                 `gorm:"index;not null;comment:读者ID"`
	InvoiceCode string               `gorm:"uniqueIndex;size:32;not null;comment:发票编号"`
	TotalAmount int64                `gorm:"not null;comment:合计金额"`
	Details     []InvoiceDetailModel `gorm:"foreignKey:InvoiceID"`
	CreatedAt   time.Time            `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceDetailModel GORM发票明细模型
// UnitPrice为开票时的单价快照
type InvoiceDetailModel struct {
	ID        uint  `gorm:"primaryKey"`
	InvoiceID uint  `gorm:"index;not null;comment:发票ID"`
	BookID    uint  `gorm:"index;not null;comment:图书ID"`
	Quantity  int   `gorm:"not null;comment:数量"`
	UnitPrice int64 `gorm:"not null;comment:单价"`
}

// TableName 指定表名
func (InvoiceDetailModel) TableName() string {
	return "invoice_details"
}

// BorrowModel GORM借阅记录模型
type BorrowModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index;not null;comment:读者ID"`
	BookID     uint       `gorm:"index;not null;comment:图书ID"`
	Quantity   int        `gorm:"not null;comment:数量"`
	BorrowDate time.Time  `gorm:"type:date;not null;comment:借阅日期"`
	ReturnDate *time.Time `gorm:"type:date;comment:归还日期"`
	Fee        int64      `gorm:"not null;default:0;comment:借阅费用"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BorrowModel) TableName() string {
	return "borrow_books"
}
