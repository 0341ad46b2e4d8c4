package xkafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"golang.org/x/sync/singleflight"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

// AdminClient 集群管理客户端
type AdminClient struct {
	lifecycle[AdminHandle]
	lookups singleflight.Group // 同一 topic 的并发查询共用一次元数据请求
}

// NewAdminClient 创建 admin 客户端，不会立即连接。
func NewAdminClient(cfg *Config, opts ...Option) (*AdminClient, error) {
	lc, err := newAdminLifecycle("admin", cfg, opts)
	if err != nil {
		return nil, err
	}
	return &AdminClient{lifecycle: lc}, nil
}

func newAdminLifecycle(kind string, cfg *Config, opts []Option) (lifecycle[AdminHandle], error) {
	return newLifecycle(kind, cfg, func(c Config, o *clientOptions) xconn.Strategy[AdminHandle] {
		return adminStrategy{cfg: c, factory: o.factory, logs: o.rdlogs}
	}, opts)
}

// TopicSpec 创建 topic 的参数，Partitions 与 ReplicationFactor 为 0 时使用 broker 默认值。
type TopicSpec struct {
	Name              string
	Partitions        int
	ReplicationFactor int
	Config            map[string]string
}

// ListGroups 列出消费组。部分 broker 失败时同时返回已获取的结果与错误。
func (a *AdminClient) ListGroups(ctx context.Context) (_ []kafka.ConsumerGroupListing, err error) {
	ctx, span := a.span(ctx, "list_groups", xmetrics.KindClient)
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := a.handle(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	res, err := h.ListConsumerGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("xkafka: list groups: %w", err)
	}
	return res.Valid, errors.Join(res.Errors...)
}

// DescribeGroups 查询消费组详情
func (a *AdminClient) DescribeGroups(ctx context.Context, groups ...string) (_ []kafka.ConsumerGroupDescription, err error) {
	groups, err = trimTopics(groups, true)
	if err != nil {
		return nil, fmt.Errorf("groups: %w", err)
	}

	ctx, span := a.span(ctx, "describe_groups", xmetrics.KindClient, xmetrics.Int("groups", len(groups)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := a.handle(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := a.requestCtx(ctx)
	defer cancel()

	res, err := h.DescribeConsumerGroups(ctx, groups)
	if err != nil {
		return nil, fmt.Errorf("xkafka: describe groups: %w", err)
	}
	var errs []error
	for _, d := range res.ConsumerGroupDescriptions {
		if d.Error.Code() != kafka.ErrNoError {
			errs = append(errs, fmt.Errorf("xkafka: describe group %s: %w", d.GroupID, d.Error))
		}
	}
	return res.ConsumerGroupDescriptions, errors.Join(errs...)
}

// CreateTopics 创建 topic，已存在的视为成功。
func (a *AdminClient) CreateTopics(ctx context.Context, specs ...TopicSpec) (_ []string, err error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyTopics)
	}
	ks := make([]kafka.TopicSpecification, 0, len(specs))
	for _, s := range specs {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: blank topic name", ErrInvalidArgument)
		}
		ks = append(ks, kafka.TopicSpecification{
			Topic:             name,
			NumPartitions:     orDefault(s.Partitions),
			ReplicationFactor: orDefault(s.ReplicationFactor),
			Config:            s.Config,
		})
	}

	ctx, span := a.span(ctx, "create_topics", xmetrics.KindClient, xmetrics.Int("topics", len(ks)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := a.handle(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := a.requestCtx(ctx)
	defer cancel()
	return createTopics(ctx, h, ks)
}

// TopicExists 判断 topic 是否存在
func (a *AdminClient) TopicExists(ctx context.Context, topic string) (bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return false, fmt.Errorf("%w: blank topic", ErrInvalidArgument)
	}
	h, err := a.handle(ctx)
	if err != nil {
		return false, err
	}
	v, err, _ := a.lookups.Do(topic, func() (any, error) {
		md, err := h.GetMetadata(nil, true, a.timeoutMs())
		if err != nil {
			return false, fmt.Errorf("xkafka: metadata: %w", err)
		}
		tm, ok := md.Topics[topic]
		return ok && tm.Error.Code() == kafka.ErrNoError, nil
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// orDefault 0 表示使用 broker 默认值
func orDefault(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}
