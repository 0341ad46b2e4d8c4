package xkafka

import (
	"github.com/omeyang/kafkamq/internal/mqcore"
	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
	"github.com/omeyang/kafkamq/pkg/resilience/xbreaker"
)

// Tracer 消息头链路传播
type Tracer = mqcore.Tracer

// NoopTracer 空实现
type NoopTracer = mqcore.NoopTracer

// NewOTelTracer 默认 W3C TraceContext + Baggage
var NewOTelTracer = mqcore.NewOTelTracer

type clientOptions struct {
	name          string
	factory       Factory
	logger        xlog.Logger
	observer      xmetrics.Observer
	tracer        Tracer
	breaker       *xbreaker.Breaker
	onStateChange func(name string, from, to xconn.Phase)
	rdlogs        *rdLogs // Config.ClientLogs 开启时由 newLifecycle 创建
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		factory:  DefaultFactory{},
		logger:   xlog.Discard(),
		observer: xmetrics.NoopObserver{},
		tracer:   mqcore.NewOTelTracer(nil),
	}
}

// Option 客户端配置项
type Option func(*clientOptions)

// WithName 客户端名称，出现在日志、span 与连接错误中。
func WithName(name string) Option {
	return func(o *clientOptions) {
		o.name = name
	}
}

// WithFactory 替换句柄工厂
func WithFactory(f Factory) Option {
	return func(o *clientOptions) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithLogger 注入日志
func WithLogger(l xlog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver 注入观测器
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *clientOptions) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithTracer 设置消息头链路传播，默认 OTel。
func WithTracer(t Tracer) Option {
	return func(o *clientOptions) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithBreaker 以熔断器保护建连
func WithBreaker(b *xbreaker.Breaker) Option {
	return func(o *clientOptions) {
		o.breaker = b
	}
}

// WithOnStateChange 连接阶段变化回调，持锁同步执行。
func WithOnStateChange(f func(name string, from, to xconn.Phase)) Option {
	return func(o *clientOptions) {
		o.onStateChange = f
	}
}

func applyOptions(kind string, opts []Option) *clientOptions {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.name == "" {
		o.name = kind
	}
	return o
}
