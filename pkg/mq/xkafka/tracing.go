package xkafka

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/internal/mqcore"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

func headersToMap(headers []kafka.Header) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Key] = string(h.Value)
	}
	return m
}

// setHeader 覆盖同名 header，不存在时追加。
func setHeader(msg *kafka.Message, key, value string) {
	for i := range msg.Headers {
		if msg.Headers[i].Key == key {
			msg.Headers[i].Value = []byte(value)
			return
		}
	}
	msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

// injectTrace 把 ctx 中的链路信息写入消息头
func injectTrace(ctx context.Context, tracer Tracer, msg *kafka.Message) {
	if tracer == nil || msg == nil {
		return
	}
	carrier := headersToMap(msg.Headers)
	tracer.Inject(ctx, carrier)
	for k, v := range carrier {
		setHeader(msg, k, v)
	}
}

// extractTrace 从消息头恢复链路，挂到 ctx 上
func extractTrace(ctx context.Context, tracer Tracer, msg *kafka.Message) context.Context {
	if tracer == nil || msg == nil || len(msg.Headers) == 0 {
		return ctx
	}
	return mqcore.MergeTraceContext(ctx, tracer.Extract(headersToMap(msg.Headers)))
}

func topicOf(msg *kafka.Message) string {
	if msg == nil || msg.TopicPartition.Topic == nil {
		return ""
	}
	return *msg.TopicPartition.Topic
}

func messageAttrs(msg *kafka.Message) []xmetrics.Attr {
	return []xmetrics.Attr{
		xmetrics.String("messaging.destination", topicOf(msg)),
		xmetrics.Int("messaging.kafka.partition", int(msg.TopicPartition.Partition)),
		xmetrics.Int64("messaging.kafka.offset", int64(msg.TopicPartition.Offset)),
	}
}
