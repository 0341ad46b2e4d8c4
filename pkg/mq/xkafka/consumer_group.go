package xkafka

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

// ConsumerGroupClient 订阅模式的消费组客户端，分区由 broker 再均衡分配。
type ConsumerGroupClient struct {
	lifecycle[ConsumerHandle]
	sub *subscription
}

// NewConsumerGroupClient 创建消费组客户端。cfg.GroupID 与 topics 都不能为空。
func NewConsumerGroupClient(cfg *Config, topics []string, opts ...Option) (*ConsumerGroupClient, error) {
	if cfg != nil && strings.TrimSpace(cfg.GroupID) == "" {
		return nil, fmt.Errorf("%w: group_id required", ErrInvalidArgument)
	}
	topics, err := trimTopics(topics, true)
	if err != nil {
		return nil, err
	}
	sub := newSubscription(topics)
	lc, err := newLifecycle("consumer_group", cfg, func(c Config, o *clientOptions) xconn.Strategy[ConsumerHandle] {
		return consumerStrategy{cfg: c, factory: o.factory, logs: o.rdlogs, sub: sub}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &ConsumerGroupClient{lifecycle: lc, sub: sub}, nil
}

// SendOffsetCommitRequest 同步提交给定 offset
func (g *ConsumerGroupClient) SendOffsetCommitRequest(ctx context.Context, offsets []TopicPartition) (_ []TopicPartition, err error) {
	if len(offsets) == 0 {
		return nil, nil
	}
	if err := validatePartitions(offsets); err != nil {
		return nil, err
	}

	ctx, span := g.span(ctx, "commit_offsets", xmetrics.KindConsumer, xmetrics.Int("partitions", len(offsets)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := g.handle(ctx)
	if err != nil {
		return nil, err
	}
	committed, err := h.CommitOffsets(toKafka(offsets))
	if err != nil {
		return nil, fmt.Errorf("xkafka: commit offsets: %w", err)
	}
	return fromKafkaList(committed), nil
}

// AddTopics 扩大订阅。去掉空白项后为空时返回 nil, nil，不会建立连接。
func (g *ConsumerGroupClient) AddTopics(ctx context.Context, topics []string) ([]string, error) {
	topics, _ = trimTopics(topics, false)
	if len(topics) == 0 {
		return nil, nil
	}
	h, err := g.handle(ctx)
	if err != nil {
		return nil, err
	}
	prev := g.sub.snapshot()
	all := g.sub.update(func(cur []string) []string {
		for _, t := range topics {
			if !slices.Contains(cur, t) {
				cur = append(cur, t)
			}
		}
		return cur
	})
	if err := h.SubscribeTopics(all, nil); err != nil {
		g.sub.update(func([]string) []string { return prev })
		return nil, fmt.Errorf("xkafka: subscribe: %w", err)
	}
	return topics, nil
}

// RemoveTopics 缩小订阅，全部移除时取消订阅。未连接或参数为空时返回 nil, nil。
func (g *ConsumerGroupClient) RemoveTopics(ctx context.Context, topics []string) ([]string, error) {
	h, ok := g.ctrl.Handle()
	if !ok {
		g.log.Debug(ctx, "remove topics skipped, not connected")
		return nil, nil
	}
	topics, _ = trimTopics(topics, false)
	if len(topics) == 0 {
		return nil, nil
	}
	prev := g.sub.snapshot()
	rest := g.sub.update(func(cur []string) []string {
		return slices.DeleteFunc(cur, func(t string) bool { return slices.Contains(topics, t) })
	})

	var err error
	if len(rest) == 0 {
		err = h.Unsubscribe()
	} else {
		err = h.SubscribeTopics(rest, nil)
	}
	if err != nil {
		g.sub.update(func([]string) []string { return prev })
		return nil, fmt.Errorf("xkafka: resubscribe: %w", err)
	}
	return topics, nil
}

// Topics 当前订阅
func (g *ConsumerGroupClient) Topics() []string {
	return g.sub.snapshot()
}

// PauseTopics 消费组由 broker 分配分区，按 topic 暂停没有意义，空操作。
func (g *ConsumerGroupClient) PauseTopics(context.Context, []string) error { return nil }

// ResumeTopics 空操作，见 PauseTopics。
func (g *ConsumerGroupClient) ResumeTopics(context.Context, []string) error { return nil }

// Commit force 为 true 时同步提交已存储的 offset；
// 否则只存储各分区当前消费位置，等待自动提交。
func (g *ConsumerGroupClient) Commit(ctx context.Context, force bool) ([]TopicPartition, error) {
	return commit(ctx, &g.lifecycle, force)
}

// Consume 阻塞消费
func (g *ConsumerGroupClient) Consume(ctx context.Context, handler MessageHandler, opts ...ConsumeOption) error {
	return consume(ctx, &g.lifecycle, handler, opts)
}

// ScheduleReconnect 释放当前连接，等待 delay 后重新连接并订阅。
// 运行中的 Consume 不退出，期间等待新连接；未连接时返回 xconn.ErrNotConnected。
// ctx 只约束本次等待。
func (g *ConsumerGroupClient) ScheduleReconnect(ctx context.Context, delay time.Duration) error {
	_, err := g.ctrl.Reconnect(ctx, delay)
	return err
}
