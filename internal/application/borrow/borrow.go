package borrow

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

const (
	tracerName = "application.borrow"
	dateLayout = "2006-01-02"
)

// BorrowRequest 借阅登记请求DTO
type BorrowRequest struct {
	AccountID  uint // 当前登录账号
	IsAdmin    bool
	UserID     uint // 为0时使用当前账号关联的读者
	BookID     uint
	Quantity   int
	BorrowDate time.Time  // 零值表示当天
	ReturnDate *time.Time // 可选
	Fee        int64
}

// RecordDTO 借阅记录响应DTO
type RecordDTO struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"`
	BorrowDate string `json:"borrow_date"`
	ReturnDate string `json:"return_date,omitempty"`
	Fee        int64  `json:"fee"`
	Returned   bool   `json:"returned"`
}

// ToDTO 领域实体 → 响应DTO
func ToDTO(r *borrow.Record) *RecordDTO {
	dto := &RecordDTO{
		ID:         r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		Quantity:   r.Quantity,
		BorrowDate: r.BorrowDate.Format(dateLayout),
		Fee:        r.Fee,
		Returned:   r.IsReturned(),
	}
	if r.ReturnDate != nil {
		dto.ReturnDate = r.ReturnDate.Format(dateLayout)
	}
	return dto
}

func toDTOs(records []*borrow.Record) []*RecordDTO {
	list := make([]*RecordDTO, len(records))
	for i, r := range records {
		list[i] = ToDTO(r)
	}
	return list
}

// BorrowUseCase 借阅用例
// 借阅只做登记,不改动图书数量
type BorrowUseCase struct {
	borrowRepo  borrow.Repository
	bookService book.Service
	userService user.Service
	events      event.Publisher
}

// NewBorrowUseCase 创建借阅用例
func NewBorrowUseCase(
	borrowRepo borrow.Repository,
	bookService book.Service,
	userService user.Service,
	events event.Publisher,
) *BorrowUseCase {
	return &BorrowUseCase{
		borrowRepo:  borrowRepo,
		bookService: bookService,
		userService: userService,
		events:      events,
	}
}

// Record 登记借阅
// 流程: 确定读者 → 校验记录 → 检查图书存在 → 持久化 → 发布事件
func (uc *BorrowUseCase) Record(ctx context.Context, req BorrowRequest) (*RecordDTO, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "RecordBorrow")
	defer span.End()

	userID, err := user.ResolveOwner(ctx, uc.userService, req.AccountID, req.IsAdmin, req.UserID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	r := borrow.NewRecord(userID, req.BookID, req.Quantity, req.BorrowDate, req.ReturnDate, req.Fee)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.bookService.GetBook(ctx, r.BookID); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	if err := uc.borrowRepo.Create(ctx, r); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("borrow.id", int64(r.ID)), attribute.Int64("book.id", int64(r.BookID)))

	metrics.IncCounter(metrics.BorrowsRecordedTotal)
	event.Notify(ctx, uc.events, event.BorrowRecorded, event.BorrowPayload{
		RecordID:   r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		Quantity:   r.Quantity,
		BorrowDate: r.BorrowDate,
	})
	return ToDTO(r), nil
}

// List 借阅记录
// 管理员查看全部记录,普通账号只能查看自己的记录
func (uc *BorrowUseCase) List(ctx context.Context, accountID uint, isAdmin bool) ([]*RecordDTO, error) {
	if isAdmin {
		records, err := uc.borrowRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		return toDTOs(records), nil
	}

	profile, err := uc.userService.GetByAccount(ctx, accountID)
	if errors.Is(err, user.ErrUserNotFound) {
		return []*RecordDTO{}, nil
	}
	if err != nil {
		return nil, err
	}
	records, err := uc.borrowRepo.ListByUserID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}
