package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

const publishTimeout = 3 * time.Second

// sender 底层发布能力,由*mq.Publisher实现
type sender interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Exchange() string
}

// EventPublisher 领域事件发布者
// 设计说明:
// 1. RabbitMQ异常时由熔断器快速失败,避免每个写请求都等待超时
// 2. 发布结果计入Prometheus指标
type EventPublisher struct {
	sender  sender
	breaker *circuitbreaker.CircuitBreaker
}

// NewEventPublisher 包装mq发布者
func NewEventPublisher(s sender) *EventPublisher {
	breaker := circuitbreaker.NewCircuitBreaker("rabbitmq-publisher", circuitbreaker.Config{
		Timeout: 30 * time.Second,
		// 连续3次失败,或至少10次请求中失败过半
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3 ||
				(counts.Requests >= 10 && counts.FailureRate() >= 0.5)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
			zap.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &EventPublisher{sender: s, breaker: breaker}
}

// Publish 发布事件
func (p *EventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	err := p.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		return p.sender.Publish(ctx, routingKey, payload)
	})

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": p.breaker.Name(), "result": result})

	if err != nil {
		metrics.IncCounterVec(metrics.MessagesFailedTotal, map[string]string{"routing_key": routingKey})
		return err
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.sender.Exchange(),
		"routing_key": routingKey,
	})
	return nil
}

// NewFromConfig 按配置创建事件发布者
// 未启用MQ或连接失败时返回NopPublisher,事件发布不影响服务启动
func NewFromConfig(cfg *config.Config) (event.Publisher, func()) {
	if !cfg.MQ.Enabled {
		return event.NopPublisher{}, func() {}
	}

	pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		zap.L().Warn("RabbitMQ不可用,领域事件将被丢弃", zap.Error(err))
		return event.NopPublisher{}, func() {}
	}

	cleanup := func() {
		if err := pub.Close(); err != nil {
			zap.L().Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	return NewEventPublisher(pub), cleanup
}
