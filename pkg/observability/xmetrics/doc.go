// Package xmetrics 统一的操作观测接口：一次 Start/End 同时产出
// 一个 span 和两项指标（操作计数、操作耗时）。
//
// 未注入 Observer 时使用 NoopObserver，调用方无需判空：
//
//	ctx, span := xmetrics.Start(ctx, observer, xmetrics.SpanOptions{
//	    Component: "xconn",
//	    Operation: "connect",
//	    Kind:      xmetrics.KindClient,
//	})
//	h, err := open(ctx)
//	span.End(xmetrics.Result{Err: err})
package xmetrics
