package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "application.book"

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 校验与查重由领域服务负责,应用层只做流程编排
// 2. 写入成功后使统计缓存失效,并发布book.created事件
type CreateBookUseCase struct {
	bookService book.Service
	cache       Cache
	events      event.Publisher
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service, cache Cache, events event.Publisher) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, cache: cache, events: events}
}

// Execute 执行新增
func (uc *CreateBookUseCase) Execute(ctx context.Context, req BookRequest) (*BookDTO, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer span.End()

	b, err := uc.bookService.CreateBook(ctx, req.Type, req.input())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("book.id", int64(b.ID)), attribute.String("book.type", string(b.Type)))

	uc.cache.InvalidateBook(ctx, b.ID)
	metrics.IncCounterVec(metrics.BooksCreatedTotal, map[string]string{"type": string(b.Type)})
	event.Notify(ctx, uc.events, event.BookCreated, event.BookPayload{
		BookID: b.ID, Code: b.Code, Name: b.Name, Type: string(b.Type),
	})
	return ToDTO(b), nil
}

// UpdateBookUseCase 更新图书用例
// 编码和类型不可修改,请求中的Type被忽略
type UpdateBookUseCase struct {
	bookService book.Service
	cache       Cache
	events      event.Publisher
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, cache Cache, events event.Publisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, cache: cache, events: events}
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req BookRequest) (*BookDTO, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	defer span.End()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	b, err := uc.bookService.UpdateBook(ctx, id, req.input())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	uc.cache.InvalidateBook(ctx, id)
	event.Notify(ctx, uc.events, event.BookUpdated, event.BookPayload{
		BookID: b.ID, Code: b.Code, Name: b.Name, Type: string(b.Type),
	})
	return ToDTO(b), nil
}

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
	cache       Cache
	events      event.Publisher
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service, cache Cache, events event.Publisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, cache: cache, events: events}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer span.End()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		tracing.RecordError(span, err)
		return err
	}

	uc.cache.InvalidateBook(ctx, id)
	metrics.IncCounter(metrics.BooksDeletedTotal)
	event.Notify(ctx, uc.events, event.BookDeleted, event.BookPayload{BookID: id})
	return nil
}

// ValidateBookUseCase 校验图书数据(不落库)
// 表单页面在提交前用它回显错误
type ValidateBookUseCase struct {
	bookService book.Service
}

// NewValidateBookUseCase 创建校验用例
func NewValidateBookUseCase(bookService book.Service) *ValidateBookUseCase {
	return &ValidateBookUseCase{bookService: bookService}
}

// Execute 执行校验
func (uc *ValidateBookUseCase) Execute(req BookRequest) error {
	return uc.bookService.ValidateBookData(req.Type, req.input())
}
