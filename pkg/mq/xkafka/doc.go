// Package xkafka 在 confluent-kafka-go 之上提供带连接生命周期管理的 Kafka 客户端。
//
// 每个客户端以字段组合一个 xconn.Controller，负责句柄的打开、重连与关闭；
// 业务方法遵循“先确保连接，再委托给句柄”的约定：
//
//   - 参数校验在任何 I/O 之前完成，失败返回 ErrInvalidArgument
//   - 建连失败返回 *xconn.ConnectError，可用 xconn.IsConnectError 与业务错误区分
//   - 句柄返回的业务错误原样包装返回，不会被重试
//
// 客户端类型：
//
//	ProducerClient        发送、建 topic、Flush
//	ConsumerClient        按分区分配消费，支持增删 topic 与 Seek
//	ConsumerGroupClient   消费组订阅消费
//	OffsetClient          查询与提交 offset
//	AdminClient           消费组与 topic 管理
//	ProducerStream        把消息通道接到生产者
//	ConsumerStream        消费到通道，CommitStream 提交
//	ConsumerGroupStream   消费组消费到通道
//
// Client 按名称管理以上客户端，同一类别内名称唯一。
//
// # 连接
//
// 客户端创建后处于 Idle，首次调用业务方法或 Connect 时建立连接。
// 建连时先创建句柄，再以元数据请求确认 broker 可达。
// 失败按 Config 中的 reconnect_retries 与退避参数重试，预算在整个生命周期内不恢复。
//
// Close(ctx, force) 中 force 表示不做收尾：生产者跳过 Flush 并丢弃队列，
// 消费者跳过最后一次提交。显式关闭后再调用业务方法会重新建立连接；
// 关闭时正在运行的 Consume 返回 ErrClosed，不会把连接重新打开。
// ConsumerGroupClient.ScheduleReconnect 只替换连接，运行中的 Consume 继续。
//
// # 链路
//
// 默认使用 OTel propagator 在消息头上注入、提取链路信息，可通过 WithTracer 替换。
package xkafka
