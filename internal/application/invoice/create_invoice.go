package invoice

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/invoice"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "application.invoice"

// TxManager 事务端口,由database.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateInvoiceUseCase 开票用例
// 设计说明:
// 1. 开票不扣减库存,只登记金额
// 2. 单价是开票时的快照,未指定时取图书当前单价
// 3. 合计金额由服务端计算,表头与明细在同一事务中写入
type CreateInvoiceUseCase struct {
	invoiceRepo invoice.Repository
	bookService book.Service
	userService user.Service
	txManager   TxManager
	events      event.Publisher
}

// NewCreateInvoiceUseCase 创建开票用例
func NewCreateInvoiceUseCase(
	invoiceRepo invoice.Repository,
	bookService book.Service,
	userService user.Service,
	txManager TxManager,
	events event.Publisher,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		bookService: bookService,
		userService: userService,
		txManager:   txManager,
		events:      events,
	}
}

// Execute 执行开票
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, req CreateInvoiceRequest) (result *InvoiceDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateInvoice")
	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.InvoiceCreationDuration, time.Since(start).Seconds())
		if err != nil {
			metrics.IncCounter(metrics.InvoicesFailedTotal)
			tracing.RecordError(span, err)
		}
		span.End()
	}()

	// 1. 确定开票读者
	userID, err := user.ResolveOwner(ctx, uc.userService, req.AccountID, req.IsAdmin, req.UserID)
	if err != nil {
		return nil, err
	}

	// 2. 校验明细(未指定单价的先按0校验,事务内再回填)
	details := make([]invoice.Detail, len(req.Details))
	for i, d := range req.Details {
		details[i] = invoice.Detail{BookID: d.BookID, Quantity: d.Quantity}
		if d.UnitPrice != nil {
			details[i].UnitPrice = *d.UnitPrice
		}
	}
	if err := invoice.ValidateDetails(details); err != nil {
		return nil, err
	}

	// 3. 事务内校验图书、回填单价并写入
	var inv *invoice.Invoice
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		for i := range details {
			b, err := uc.bookService.GetBook(txCtx, details[i].BookID)
			if err != nil {
				return err
			}
			if details[i].UnitPrice == 0 {
				details[i].UnitPrice = b.Price
			}
		}
		// 回填单价后重新校验合计
		if err := invoice.ValidateDetails(details); err != nil {
			return err
		}

		inv = invoice.NewInvoice(userID, req.Code, details)
		return uc.invoiceRepo.Create(txCtx, inv)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("invoice.id", int64(inv.ID)),
		attribute.Int64("invoice.total", inv.TotalAmount),
	)
	metrics.IncCounter(metrics.InvoicesCreatedTotal)
	metrics.AddCounter(metrics.InvoiceAmountTotal, float64(inv.TotalAmount))
	logger.FromContext(ctx).Info("发票已开具",
		zap.String("invoice_code", inv.InvoiceCode),
		zap.Uint("user_id", inv.UserID),
		zap.Int64("total_amount", inv.TotalAmount),
	)
	event.Notify(ctx, uc.events, event.InvoiceCreated, event.InvoicePayload{
		InvoiceID:   inv.ID,
		InvoiceCode: inv.InvoiceCode,
		UserID:      inv.UserID,
		TotalAmount: inv.TotalAmount,
		Lines:       len(inv.Details),
		CreatedAt:   inv.CreatedAt,
	})
	return ToDTO(inv), nil
}

// ListInvoicesUseCase 发票查询用例
// 管理员查看全部发票,普通账号只能查看自己读者资料下的发票
type ListInvoicesUseCase struct {
	invoiceRepo invoice.Repository
	userService user.Service
}

// NewListInvoicesUseCase 创建发票查询用例
func NewListInvoicesUseCase(invoiceRepo invoice.Repository, userService user.Service) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{invoiceRepo: invoiceRepo, userService: userService}
}

// Execute 发票列表
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, accountID uint, isAdmin bool) ([]*InvoiceDTO, error) {
	if isAdmin {
		list, err := uc.invoiceRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		return ToDTOs(list), nil
	}

	profile, err := uc.userService.GetByAccount(ctx, accountID)
	if errors.Is(err, user.ErrUserNotFound) {
		return []*InvoiceDTO{}, nil
	}
	if err != nil {
		return nil, err
	}
	list, err := uc.invoiceRepo.ListByUserID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(list), nil
}

// Get 发票详情
func (uc *ListInvoicesUseCase) Get(ctx context.Context, id, accountID uint, isAdmin bool) (*InvoiceDTO, error) {
	inv, err := uc.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		profile, err := uc.userService.GetByAccount(ctx, accountID)
		if err != nil || profile.ID != inv.UserID {
			return nil, invoice.ErrInvoiceNotFound
		}
	}
	return ToDTO(inv), nil
}
