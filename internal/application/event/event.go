package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/pkg/logger"
)

// 领域事件routing key
const (
	BookCreated    = "book.created"
	BookUpdated    = "book.updated"
	BookDeleted    = "book.deleted"
	InvoiceCreated = "invoice.created"
	BorrowRecorded = "borrow.recorded"
	AccountCreated = "account.registered"
)

// Publisher 领域事件发布端口
// 由infrastructure/messaging实现(RabbitMQ),未启用MQ时使用NopPublisher
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// NopPublisher 空实现
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Notify 发布事件,失败只记录日志
// 事件是写操作提交后的通知,发布失败不回滚业务数据
func Notify(ctx context.Context, p Publisher, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		logger.FromContext(ctx).Warn("领域事件发布失败",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}

// BookPayload 图书事件负载
type BookPayload struct {
	BookID uint   `json:"book_id"`
	Code   string `json:"code"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
}

// InvoicePayload 发票事件负载
type InvoicePayload struct {
	InvoiceID   uint      `json:"invoice_id"`
	InvoiceCode string    `json:"invoice_code"`
	UserID      uint      `json:"user_id"`
	TotalAmount int64     `json:"total_amount"`
	Lines       int       `json:"lines"`
	CreatedAt   time.Time `json:"created_at"`
}

// BorrowPayload 借阅事件负载
type BorrowPayload struct {
	RecordID   uint      `json:"record_id"`
	UserID     uint      `json:"user_id"`
	BookID     uint      `json:"book_id"`
	Quantity   int       `json:"quantity"`
	BorrowDate time.Time `json:"borrow_date"`
}

// AccountPayload 账号事件负载
type AccountPayload struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}
