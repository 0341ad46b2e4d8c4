// Package xbreaker 基于 sony/gobreaker 的熔断器，用于保护建连等易雪崩的操作。
//
// 熔断器拦截时返回 *BreakerError，它实现 Retryable() == false，
// 与 xretry 组合时熔断错误会立即结束重试，不消耗重连预算。
package xbreaker
