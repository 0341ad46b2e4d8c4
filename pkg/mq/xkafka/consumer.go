package xkafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

// ConsumerClient 按分区显式分配的消费者，不参与消费组再均衡。
// 持有的分区在重连后会重新分配。
type ConsumerClient struct {
	lifecycle[ConsumerHandle]
	assign *assignment
}

// NewConsumerClient 以初始分区创建消费者，partitions 可为空。
func NewConsumerClient(cfg *Config, partitions []TopicPartition, opts ...Option) (*ConsumerClient, error) {
	if err := validatePartitions(partitions); err != nil {
		return nil, err
	}
	a := newAssignment(partitions)
	lc, err := newLifecycle("consumer", cfg, func(c Config, o *clientOptions) xconn.Strategy[ConsumerHandle] {
		return consumerStrategy{cfg: c, factory: o.factory, logs: o.rdlogs, assign: a}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &ConsumerClient{lifecycle: lc, assign: a}, nil
}

// Pause 暂停全部已分配分区
func (c *ConsumerClient) Pause(ctx context.Context) error {
	h, err := c.handle(ctx)
	if err != nil {
		return err
	}
	parts, err := h.Assignment()
	if err != nil {
		return fmt.Errorf("xkafka: assignment: %w", err)
	}
	if err := h.Pause(parts); err != nil {
		return fmt.Errorf("xkafka: pause: %w", err)
	}
	return nil
}

// Resume 恢复全部已分配分区
func (c *ConsumerClient) Resume(ctx context.Context) error {
	h, err := c.handle(ctx)
	if err != nil {
		return err
	}
	parts, err := h.Assignment()
	if err != nil {
		return fmt.Errorf("xkafka: assignment: %w", err)
	}
	if err := h.Resume(parts); err != nil {
		return fmt.Errorf("xkafka: resume: %w", err)
	}
	return nil
}

// PauseTopics 暂停指定 topic 的已分配分区
func (c *ConsumerClient) PauseTopics(ctx context.Context, topics []string) error {
	parts := c.partitionsFor(topics)
	if len(parts) == 0 {
		return nil
	}
	h, err := c.handle(ctx)
	if err != nil {
		return err
	}
	if err := h.Pause(toKafka(parts)); err != nil {
		return fmt.Errorf("xkafka: pause topics: %w", err)
	}
	return nil
}

// ResumeTopics 恢复指定 topic 的已分配分区
func (c *ConsumerClient) ResumeTopics(ctx context.Context, topics []string) error {
	parts := c.partitionsFor(topics)
	if len(parts) == 0 {
		return nil
	}
	h, err := c.handle(ctx)
	if err != nil {
		return err
	}
	if err := h.Resume(toKafka(parts)); err != nil {
		return fmt.Errorf("xkafka: resume topics: %w", err)
	}
	return nil
}

func (c *ConsumerClient) partitionsFor(topics []string) []TopicPartition {
	topics, _ = trimTopics(topics, false)
	return c.assign.ofTopics(topics)
}

// Commit force 为 true 时同步提交已存储的 offset；
// 否则只存储各分区当前消费位置，等待自动提交。
func (c *ConsumerClient) Commit(ctx context.Context, force bool) ([]TopicPartition, error) {
	return commit(ctx, &c.lifecycle, force)
}

// AddTopics 把 topic 的全部分区加入分配。
// fromBeginning 为 true 时从最早位置消费，否则从已提交位置继续。
// 去掉空白项后为空时直接返回 nil, nil，不会建立连接。
func (c *ConsumerClient) AddTopics(ctx context.Context, topics []string, fromBeginning bool) (_ []string, err error) {
	topics, _ = trimTopics(topics, false)
	if len(topics) == 0 {
		return nil, nil
	}

	ctx, span := c.span(ctx, "add_topics", xmetrics.KindConsumer, xmetrics.Int("topics", len(topics)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}

	offset := kafka.OffsetStored
	if fromBeginning {
		offset = kafka.OffsetBeginning
	}
	var parts []TopicPartition
	for _, t := range topics {
		ids, err := partitionsOf(h, t, c.timeoutMs())
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			parts = append(parts, TopicPartition{Topic: t, Partition: id, Offset: offset})
		}
	}

	added := c.assign.add(parts)
	if len(added) > 0 {
		if err := h.IncrementalAssign(toKafka(added)); err != nil {
			c.assign.drop(added)
			return nil, fmt.Errorf("xkafka: assign: %w", err)
		}
	}
	return topics, nil
}

// RemoveTopics 从分配中移除 topic。未连接或参数为空时返回 nil, nil。
func (c *ConsumerClient) RemoveTopics(ctx context.Context, topics []string) ([]string, error) {
	h, ok := c.ctrl.Handle()
	if !ok {
		c.log.Debug(ctx, "remove topics skipped, not connected")
		return nil, nil
	}
	topics, _ = trimTopics(topics, false)
	if len(topics) == 0 {
		return nil, nil
	}

	removed := c.assign.remove(topics)
	if len(removed) == 0 {
		return nil, nil
	}
	if err := h.IncrementalUnassign(toKafka(removed)); err != nil {
		c.assign.add(removed)
		return nil, fmt.Errorf("xkafka: unassign: %w", err)
	}
	return topics, nil
}

// SetOffset 把已分配分区的读取位置移到 offset。空白 topic 返回 ErrInvalidArgument。
func (c *ConsumerClient) SetOffset(ctx context.Context, topic string, partition int32, offset kafka.Offset) error {
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("%w: topic must not be blank", ErrInvalidArgument)
	}
	h, err := c.handle(ctx)
	if err != nil {
		return err
	}
	tp := TopicPartition{Topic: topic, Partition: partition, Offset: offset}
	if err := h.Seek(tp.raw(), 0); err != nil {
		return fmt.Errorf("xkafka: seek %s[%d]: %w", topic, partition, err)
	}
	c.assign.setOffset(topic, partition, offset)
	return nil
}

// TopicPayloads 当前实际分配的分区
func (c *ConsumerClient) TopicPayloads(ctx context.Context) ([]TopicPartition, error) {
	h, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}
	parts, err := h.Assignment()
	if err != nil {
		return nil, fmt.Errorf("xkafka: assignment: %w", err)
	}
	return fromKafkaList(parts), nil
}

// Consume 阻塞消费，见 MessageHandler 与 ConsumeOption。
func (c *ConsumerClient) Consume(ctx context.Context, handler MessageHandler, opts ...ConsumeOption) error {
	return consume(ctx, &c.lifecycle, handler, opts)
}

// Consumer 返回底层句柄，必要时先连接。
func (c *ConsumerClient) Consumer(ctx context.Context) (ConsumerHandle, error) {
	return c.handle(ctx)
}
