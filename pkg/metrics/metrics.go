// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类:
//   - HTTP指标: 请求总数、耗时、处理中的请求数(由middleware.Metrics记录)
//   - 业务指标: 图书新增、发票开具、借阅登记、缓存命中
//   - 基础设施指标: 熔断器状态、事件发布数
//
// 命名规范:
//  1. Counter以_total结尾
//  2. Histogram以单位结尾(_seconds)
//  3. 避免高基数标签,路径使用gin的路由模板(/api/v1/books/:id)而非真实URL
//
// 使用示例:
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.BooksCreatedTotal, map[string]string{"type": "textbook"})
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path(路由模板)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BooksCreatedTotal 新增图书总数,标签：type(textbook/reference)
	BooksCreatedTotal *prometheus.CounterVec

	// BooksDeletedTotal 删除图书总数
	BooksDeletedTotal prometheus.Counter

	// InvoicesCreatedTotal 发票开具总数
	InvoicesCreatedTotal prometheus.Counter

	// InvoicesFailedTotal 发票开具失败总数
	InvoicesFailedTotal prometheus.Counter

	// InvoiceAmountTotal 开票金额累计(最小货币单位)
	InvoiceAmountTotal prometheus.Counter

	// InvoiceCreationDuration 发票开具耗时
	InvoiceCreationDuration prometheus.Histogram

	// BorrowsRecordedTotal 借阅登记总数
	BorrowsRecordedTotal prometheus.Counter

	// AccountsRegisteredTotal 账号注册总数,标签：role
	AccountsRegisteredTotal *prometheus.CounterVec

	// LoginsTotal 登录次数,标签：result(success/failure)
	LoginsTotal *prometheus.CounterVec

	// CacheRequestsTotal 缓存访问次数
	// 标签：cache(book/stats)、result(hit/miss)
	CacheRequestsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 事件发布总数
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesFailedTotal 事件发布失败总数,标签：routing_key
	MessagesFailedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 使用promauto注册到默认Registry,重复调用只生效一次
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 图书业务指标
	BooksCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_books_created_total",
			Help: "新增图书总数",
		},
		[]string{"type"},
	)

	BooksDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_books_deleted_total",
			Help: "删除图书总数",
		},
	)

	// 发票业务指标
	InvoicesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_invoices_created_total",
			Help: "发票开具总数",
		},
	)

	InvoicesFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_invoices_failed_total",
			Help: "发票开具失败总数",
		},
	)

	InvoiceAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_invoice_amount_total",
			Help: "开票金额累计（đồng）",
		},
	)

	InvoiceCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "library_invoice_creation_duration_seconds",
			Help: "发票开具耗时（秒）",
			// 开票需要逐行查询图书并在事务中写入
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	BorrowsRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_borrows_recorded_total",
			Help: "借阅登记总数",
		},
	)

	AccountsRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_accounts_registered_total",
			Help: "账号注册总数",
		},
		[]string{"role"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_logins_total",
			Help: "登录次数",
		},
		[]string{"result"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_cache_requests_total",
			Help: "缓存访问次数",
		},
		[]string{"cache", "result"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_failed_total",
			Help: "事件发布失败总数",
		},
		[]string{"routing_key"},
	)
}

// IncCounter 递增Counter
// 指标未初始化时忽略,便于单元测试中不调用InitMetrics
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// AddCounter Counter增加指定值(负数会panic,调用方保证非负)
func AddCounter(counter prometheus.Counter, value float64) {
	if counter == nil {
		return
	}
	counter.Add(value)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
