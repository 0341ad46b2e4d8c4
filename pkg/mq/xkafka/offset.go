package xkafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

// 按时间查询 offset 时的特殊时间戳
const (
	TimestampLatest   int64 = -1
	TimestampEarliest int64 = -2
)

// OffsetRequest 查询分区在某一时刻的 offset。
// Timestamp 为毫秒时间戳，或 TimestampLatest、TimestampEarliest。
type OffsetRequest struct {
	Topic     string
	Partition int32
	Timestamp int64
}

// Offsets topic -> partition -> offset
type Offsets map[string]map[int32]int64

func (o Offsets) set(topic string, partition int32, offset int64) {
	if o[topic] == nil {
		o[topic] = make(map[int32]int64)
	}
	o[topic][partition] = offset
}

// OffsetClient offset 查询与提交，基于 admin 协议，不加入消费组。
type OffsetClient struct {
	lifecycle[AdminHandle]
}

// NewOffsetClient cfg 为 nil 时返回 ErrNilConfig。
func NewOffsetClient(cfg *Config, opts ...Option) (*OffsetClient, error) {
	lc, err := newAdminLifecycle("offset", cfg, opts)
	if err != nil {
		return nil, err
	}
	return &OffsetClient{lifecycle: lc}, nil
}

// Fetch 按时间戳查询 offset
func (c *OffsetClient) Fetch(ctx context.Context, reqs []OffsetRequest) (_ []TopicPartition, err error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: empty offset requests", ErrInvalidArgument)
	}
	specs := make(map[kafka.TopicPartition]kafka.OffsetSpec, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r.Topic) == "" || r.Partition < 0 {
			return nil, fmt.Errorf("%w: bad offset request %+v", ErrInvalidArgument, r)
		}
		specs[TopicPartition{Topic: r.Topic, Partition: r.Partition}.raw()] = offsetSpec(r.Timestamp)
	}

	ctx, span := c.span(ctx, "fetch_offsets", xmetrics.KindClient, xmetrics.Int("partitions", len(reqs)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}
	return c.listOffsets(ctx, h, specs)
}

func offsetSpec(ts int64) kafka.OffsetSpec {
	switch ts {
	case TimestampLatest:
		return kafka.LatestOffsetSpec
	case TimestampEarliest:
		return kafka.EarliestOffsetSpec
	default:
		return kafka.NewOffsetSpecForTimestamp(ts)
	}
}

// Commit 以 group 身份提交 offset。该消费组不能有活跃成员。
func (c *OffsetClient) Commit(ctx context.Context, group string, offsets []TopicPartition) (_ []TopicPartition, err error) {
	if strings.TrimSpace(group) == "" {
		return nil, fmt.Errorf("%w: blank group", ErrInvalidArgument)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: empty offsets", ErrInvalidArgument)
	}
	if err := validatePartitions(offsets); err != nil {
		return nil, err
	}

	ctx, span := c.span(ctx, "commit_offsets", xmetrics.KindClient, xmetrics.String("group", group))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.requestCtx(ctx)
	defer cancel()

	res, err := h.AlterConsumerGroupOffsets(ctx, []kafka.ConsumerGroupTopicPartitions{{Group: group, Partitions: toKafka(offsets)}})
	if err != nil {
		return nil, fmt.Errorf("xkafka: commit offsets for %s: %w", group, err)
	}
	return collectGroupPartitions(res.ConsumerGroupsTopicPartitions)
}

// FetchCommits 查询 group 已提交的 offset。partitions 为空时返回该组全部分区。
func (c *OffsetClient) FetchCommits(ctx context.Context, group string, partitions []TopicPartition) (_ []TopicPartition, err error) {
	if strings.TrimSpace(group) == "" {
		return nil, fmt.Errorf("%w: blank group", ErrInvalidArgument)
	}
	if err := validatePartitions(partitions); err != nil {
		return nil, err
	}

	ctx, span := c.span(ctx, "fetch_commits", xmetrics.KindClient, xmetrics.String("group", group))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.requestCtx(ctx)
	defer cancel()

	req := kafka.ConsumerGroupTopicPartitions{Group: group}
	if len(partitions) > 0 {
		req.Partitions = toKafka(partitions)
	}
	res, err := h.ListConsumerGroupOffsets(ctx, []kafka.ConsumerGroupTopicPartitions{req})
	if err != nil {
		return nil, fmt.Errorf("xkafka: fetch commits for %s: %w", group, err)
	}
	return collectGroupPartitions(res.ConsumerGroupsTopicPartitions)
}

// FetchLatestOffsets 查询各分区的最新 offset（下一条消息的位置）。
// topics 为空、全部空白或含空白项时返回 ErrInvalidArgument。
func (c *OffsetClient) FetchLatestOffsets(ctx context.Context, topics ...string) (Offsets, error) {
	return c.fetchEdge(ctx, "fetch_latest_offsets", kafka.LatestOffsetSpec, topics)
}

// FetchEarliestOffsets 查询各分区的最早 offset
func (c *OffsetClient) FetchEarliestOffsets(ctx context.Context, topics ...string) (Offsets, error) {
	return c.fetchEdge(ctx, "fetch_earliest_offsets", kafka.EarliestOffsetSpec, topics)
}

func (c *OffsetClient) fetchEdge(ctx context.Context, op string, spec kafka.OffsetSpec, topics []string) (_ Offsets, err error) {
	topics, err = trimTopics(topics, true)
	if err != nil {
		return nil, err
	}

	ctx, span := c.span(ctx, op, xmetrics.KindClient, xmetrics.Int("topics", len(topics)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}
	specs := make(map[kafka.TopicPartition]kafka.OffsetSpec)
	for _, t := range topics {
		ids, err := partitionsOf(h, t, c.timeoutMs())
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			specs[TopicPartition{Topic: t, Partition: id}.raw()] = spec
		}
	}

	parts, err := c.listOffsets(ctx, h, specs)
	out := make(Offsets, len(topics))
	for _, tp := range parts {
		out.set(tp.Topic, tp.Partition, int64(tp.Offset))
	}
	return out, err
}

func (c *OffsetClient) listOffsets(ctx context.Context, h AdminHandle, specs map[kafka.TopicPartition]kafka.OffsetSpec) ([]TopicPartition, error) {
	ctx, cancel := c.requestCtx(ctx)
	defer cancel()

	res, err := h.ListOffsets(ctx, specs)
	if err != nil {
		return nil, fmt.Errorf("xkafka: list offsets: %w", err)
	}
	out := make([]TopicPartition, 0, len(res.ResultInfos))
	var errs []error
	for tp, info := range res.ResultInfos {
		p := fromKafka(tp)
		if info.Error.Code() != kafka.ErrNoError {
			errs = append(errs, fmt.Errorf("xkafka: offset of %s[%d]: %w", p.Topic, p.Partition, info.Error))
			continue
		}
		p.Offset = info.Offset
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}

func collectGroupPartitions(groups []kafka.ConsumerGroupTopicPartitions) ([]TopicPartition, error) {
	var (
		out  []TopicPartition
		errs []error
	)
	for _, g := range groups {
		for _, tp := range g.Partitions {
			p := fromKafka(tp)
			if tp.Error != nil {
				errs = append(errs, fmt.Errorf("xkafka: %s %s[%d]: %w", g.Group, p.Topic, p.Partition, tp.Error))
				continue
			}
			out = append(out, p)
		}
	}
	return out, errors.Join(errs...)
}
