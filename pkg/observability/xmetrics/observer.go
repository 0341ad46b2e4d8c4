package xmetrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Kind span 类型
type Kind int

const (
	KindInternal Kind = iota
	KindClient
	KindProducer
	KindConsumer
)

// Status 操作结果
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Attr 观测属性
type Attr = attribute.KeyValue

// String 字符串属性
func String(key, value string) Attr { return attribute.String(key, value) }

// Int 整数属性
func Int(key string, value int) Attr { return attribute.Int(key, value) }

// Int64 64 位整数属性
func Int64(key string, value int64) Attr { return attribute.Int64(key, value) }

// Bool 布尔属性
func Bool(key string, value bool) Attr { return attribute.Bool(key, value) }

// Duration 以毫秒记录的耗时属性
func Duration(key string, value time.Duration) Attr {
	return attribute.Int64(key, value.Milliseconds())
}

// SpanOptions 启动 span 的参数
type SpanOptions struct {
	Component string
	Operation string
	Kind      Kind
	Attrs     []Attr
}

// Result span 结束时的结果。Status 为空时由 Err 推断。
type Result struct {
	Status Status
	Err    error
	Attrs  []Attr
}

func (r Result) status() Status {
	if r.Status != "" {
		return r.Status
	}
	if r.Err != nil {
		return StatusError
	}
	return StatusOK
}

// Span 一次操作的观测句柄，End 可重复调用，只有第一次生效。
type Span interface {
	End(result Result)
}

// Observer 观测器
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 空实现
type NoopObserver struct{}

func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	return ctx, NoopSpan{}
}

// NoopSpan 空实现
type NoopSpan struct{}

func (NoopSpan) End(Result) {}

// Start 对 nil observer、nil ctx 及实现返回 nil 的情况做兜底。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}
