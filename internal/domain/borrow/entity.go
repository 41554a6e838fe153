package borrow

import (
	"time"
)

// Record 借阅记录实体
// 设计说明:
// 1. 借阅不改动图书数量,只做登记
// 2. ReturnDate为nil表示未填写归还日期
// 3. Fee为借阅费用(最小货币单位)
type Record struct {
	ID         uint
	UserID     uint
	BookID     uint
	Quantity   int
	BorrowDate time.Time
	ReturnDate *time.Time
	Fee        int64
	CreatedAt  time.Time
}

// NewRecord 创建借阅记录(工厂方法)
// borrowDate为零值时取当天
func NewRecord(userID, bookID uint, quantity int, borrowDate time.Time, returnDate *time.Time, fee int64) *Record {
	now := time.Now()
	if borrowDate.IsZero() {
		borrowDate = truncateDay(now)
	}
	return &Record{
		UserID:     userID,
		BookID:     bookID,
		Quantity:   quantity,
		BorrowDate: borrowDate,
		ReturnDate: returnDate,
		Fee:        fee,
		CreatedAt:  now,
	}
}

// Validate 校验借阅记录
// 业务规则:
// - 必须指定读者和图书
// - 数量>0,费用>=0
// - 归还日期不能早于借阅日期
func (r *Record) Validate() error {
	if r.UserID == 0 {
		return ErrUserRequired
	}
	if r.BookID == 0 {
		return ErrBookRequired
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if r.Fee < 0 {
		return ErrInvalidFee
	}
	if r.ReturnDate != nil && r.ReturnDate.Before(r.BorrowDate) {
		return ErrInvalidReturnDate
	}
	return nil
}

// IsReturned 是否已填写归还日期
func (r *Record) IsReturned() bool {
	return r.ReturnDate != nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
