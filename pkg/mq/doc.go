// Package mq 提供消息队列相关的子包。
//
// 子包列表：
//   - xkafka: 带连接生命周期管理的 Kafka 客户端（生产、消费、消费组、offset、admin、流式）
//
// 内部包：
//   - internal/mqcore: 消费循环与追踪上下文传播（W3C Trace Context）
package mq
