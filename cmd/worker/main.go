package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

const reconnectDelay = 5 * time.Second

// main 审计Worker入口
// 消费API发布的领域事件并写入审计日志,连接断开后按固定间隔重连
func main() {
	if err := run(); err != nil {
		log.Fatalf("Worker启动失败: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	zl, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if !cfg.MQ.Enabled {
		return errors.New("mq.enabled为false,Worker无事可做")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := newAuditHandler(zl)
	for {
		err := consumeOnce(ctx, cfg.MQ, handler)
		if ctx.Err() != nil {
			zl.Info("Worker已停止")
			return nil
		}
		zl.Warn("消费中断,稍后重连", zap.Error(err), zap.Duration("delay", reconnectDelay))

		select {
		case <-ctx.Done():
			zl.Info("Worker已停止")
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

// consumeOnce 建立一次连接并消费到断开为止
func consumeOnce(ctx context.Context, cfg config.MQConfig, handler *auditHandler) error {
	consumer, err := mq.NewConsumer(cfg.URL, cfg.Exchange, cfg.ExchangeType, cfg.AuditQueue, auditRoutingKeys)
	if err != nil {
		return err
	}
	defer func() { _ = consumer.Close() }()

	return consumer.Consume(ctx, handler.Handle)
}
