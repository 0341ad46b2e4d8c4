package mqcore

import (
	"context"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracer 在消息头上注入、提取链路信息。
type Tracer interface {
	Inject(ctx context.Context, headers map[string]string)
	Extract(headers map[string]string) context.Context
}

// NoopTracer 空实现
type NoopTracer struct{}

func (NoopTracer) Inject(context.Context, map[string]string) {}

func (NoopTracer) Extract(map[string]string) context.Context { return context.Background() }

// OTelTracer 基于 OTel propagator 的实现，默认 W3C TraceContext + Baggage。
type OTelTracer struct {
	propagator propagation.TextMapPropagator
}

// NewOTelTracer propagator 为 nil 时使用默认组合。
func NewOTelTracer(propagator propagation.TextMapPropagator) OTelTracer {
	if propagator == nil {
		propagator = propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		)
	}
	return OTelTracer{propagator: propagator}
}

func (t OTelTracer) Inject(ctx context.Context, headers map[string]string) {
	if headers == nil || ctx == nil {
		return
	}
	t.prop().Inject(ctx, propagation.MapCarrier(headers))
}

func (t OTelTracer) Extract(headers map[string]string) context.Context {
	if headers == nil {
		return context.Background()
	}
	return t.prop().Extract(context.Background(), propagation.MapCarrier(headers))
}

// 零值 OTelTracer 也可用
func (t OTelTracer) prop() propagation.TextMapPropagator {
	if t.propagator == nil {
		return NewOTelTracer(nil).propagator
	}
	return t.propagator
}

// MergeTraceContext 把 extracted 中的远端 span 挂到 base 上，保留 base 的取消与值。
// base 已有有效 span 时不覆盖。
func MergeTraceContext(base, extracted context.Context) context.Context {
	if base == nil {
		base = context.Background()
	}
	if extracted == nil || trace.SpanContextFromContext(base).IsValid() {
		return base
	}
	sc := trace.SpanContextFromContext(extracted)
	if !sc.IsValid() {
		return base
	}
	return trace.ContextWithRemoteSpanContext(base, sc)
}

var (
	_ Tracer = NoopTracer{}
	_ Tracer = OTelTracer{}
)
