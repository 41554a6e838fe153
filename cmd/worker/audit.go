package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/pkg/mq"
)

// auditRoutingKeys 审计队列绑定的事件
var auditRoutingKeys = []string{"book.*", "invoice.*", "borrow.*", "account.*"}

// auditHandler 把领域事件写成结构化审计日志
// 负载无法解析时只记录错误并确认,避免毒消息反复入队
type auditHandler struct {
	log *zap.Logger
}

func newAuditHandler(log *zap.Logger) *auditHandler {
	return &auditHandler{log: log.Named("audit")}
}

// Handle 满足mq.Handler
func (h *auditHandler) Handle(ctx context.Context, e mq.Event) error {
	base := []zap.Field{
		zap.String("event_id", e.ID),
		zap.String("type", e.Type),
		zap.Time("occurred_at", e.OccurredAt),
	}

	fields, err := h.payloadFields(e)
	if err != nil {
		h.log.Error("审计事件负载解析失败", append(base, zap.ByteString("payload", e.Payload), zap.Error(err))...)
		return nil
	}
	h.log.Info("审计事件", append(base, fields...)...)
	return nil
}

func (h *auditHandler) payloadFields(e mq.Event) ([]zap.Field, error) {
	switch e.Type {
	case event.BookCreated, event.BookUpdated, event.BookDeleted:
		var p event.BookPayload
		if err := e.Decode(&p); err != nil {
			return nil, err
		}
		return []zap.Field{
			zap.Uint("book_id", p.BookID),
			zap.String("code", p.Code),
			zap.String("name", p.Name),
			zap.String("book_type", p.Type),
		}, nil
	case event.InvoiceCreated:
		var p event.InvoicePayload
		if err := e.Decode(&p); err != nil {
			return nil, err
		}
		return []zap.Field{
			zap.Uint("invoice_id", p.InvoiceID),
			zap.String("invoice_code", p.InvoiceCode),
			zap.Uint("user_id", p.UserID),
			zap.Int64("total_amount", p.TotalAmount),
			zap.Int("lines", p.Lines),
		}, nil
	case event.BorrowRecorded:
		var p event.BorrowPayload
		if err := e.Decode(&p); err != nil {
			return nil, err
		}
		return []zap.Field{
			zap.Uint("record_id", p.RecordID),
			zap.Uint("user_id", p.UserID),
			zap.Uint("book_id", p.BookID),
			zap.Int("quantity", p.Quantity),
			zap.Time("borrow_date", p.BorrowDate),
		}, nil
	case event.AccountCreated:
		var p event.AccountPayload
		if err := e.Decode(&p); err != nil {
			return nil, err
		}
		return []zap.Field{
			zap.Uint("account_id", p.AccountID),
			zap.String("username", p.Username),
			zap.String("role", p.Role),
		}, nil
	default:
		// 未知类型原样记录
		return []zap.Field{zap.ByteString("payload", e.Payload)}, nil
	}
}
