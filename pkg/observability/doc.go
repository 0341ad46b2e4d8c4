// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持文件轮转
//   - xmetrics: 统一的 span + 指标观测接口，OTel 实现
//
// 日志自动从 context 中的 OTel span 提取 trace_id/span_id。
package observability
