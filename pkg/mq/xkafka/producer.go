package xkafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

// ProducerClient 带连接生命周期管理的生产者。
// 首次发送时自动连接，也可提前调用 Connect。
type ProducerClient struct {
	lifecycle[ProducerHandle]
}

// NewProducerClient 创建生产者客户端，不会立即连接。
func NewProducerClient(cfg *Config, opts ...Option) (*ProducerClient, error) {
	lc, err := newLifecycle("producer", cfg, func(c Config, o *clientOptions) xconn.Strategy[ProducerHandle] {
		return producerStrategy{cfg: c, factory: o.factory, logs: o.rdlogs}
	}, opts)
	if err != nil {
		return nil, err
	}
	return &ProducerClient{lifecycle: lc}, nil
}

// Send 发送消息并等待全部投递报告。
// 返回的分区信息按投递报告到达的顺序排列；任一消息投递失败时返回合并后的错误。
func (p *ProducerClient) Send(ctx context.Context, msgs ...*kafka.Message) (_ []TopicPartition, err error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	for _, m := range msgs {
		if m == nil {
			return nil, ErrNilMessage
		}
		if topicOf(m) == "" {
			return nil, fmt.Errorf("%w: message without topic", ErrInvalidArgument)
		}
	}

	ctx, span := p.span(ctx, "send", xmetrics.KindProducer,
		xmetrics.String("messaging.destination", topicOf(msgs[0])),
		xmetrics.Int("messaging.batch.message_count", len(msgs)),
	)
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := p.handle(ctx)
	if err != nil {
		return nil, err
	}

	// 缓冲足够大，调用方提前返回后迟到的报告也不会阻塞 librdkafka
	reports := make(chan kafka.Event, len(msgs))
	sent := 0
	var produceErr error
	for _, m := range msgs {
		injectTrace(ctx, p.opts.tracer, m)
		if perr := h.Produce(m, reports); perr != nil {
			produceErr = fmt.Errorf("xkafka: produce to %s: %w", topicOf(m), perr)
			break
		}
		sent++
	}

	delivered, deliveryErr := awaitDelivery(ctx, reports, sent)
	err = errors.Join(produceErr, deliveryErr)
	if err != nil {
		p.log.Warn(ctx, "send failed", xlog.Count(int64(len(msgs))), xlog.Err(err))
	}
	return delivered, err
}

func awaitDelivery(ctx context.Context, reports <-chan kafka.Event, n int) ([]TopicPartition, error) {
	out := make([]TopicPartition, 0, n)
	var errs []error
	for range n {
		select {
		case <-ctx.Done():
			return out, errors.Join(append(errs, fmt.Errorf("xkafka: await delivery: %w", ctx.Err()))...)
		case ev := <-reports:
			m, ok := ev.(*kafka.Message)
			if !ok {
				continue
			}
			if m.TopicPartition.Error != nil {
				errs = append(errs, fmt.Errorf("xkafka: deliver to %s: %w", topicOf(m), m.TopicPartition.Error))
				continue
			}
			out = append(out, fromKafka(m.TopicPartition))
		}
	}
	return out, errors.Join(errs...)
}

// CreateTopics 通过生产者的连接创建 topic，分区数与副本数使用 broker 默认值。
// 已存在的 topic 视为成功，返回成功（含已存在）的 topic。
func (p *ProducerClient) CreateTopics(ctx context.Context, topics []string) (_ []string, err error) {
	topics, err = trimTopics(topics, true)
	if err != nil {
		return nil, err
	}

	ctx, span := p.span(ctx, "create_topics", xmetrics.KindClient, xmetrics.Int("topics", len(topics)))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := p.handle(ctx)
	if err != nil {
		return nil, err
	}
	admin, err := p.opts.factory.NewAdminFromProducer(h)
	if err != nil {
		return nil, fmt.Errorf("xkafka: admin from producer: %w", err)
	}
	defer admin.Close()

	ctx, cancel := p.requestCtx(ctx)
	defer cancel()
	return createTopics(ctx, admin, defaultSpecs(topics))
}

// Flush 等待队列中的消息发送完成，超时时间取 ctx 截止时间或 flush_timeout。
// 未连接时没有待发送的消息，直接返回。
func (p *ProducerClient) Flush(ctx context.Context) error {
	h, ok := p.ctrl.Handle()
	if !ok {
		return nil
	}
	timeout := p.cfg.FlushTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	if remaining := h.Flush(int(timeout.Milliseconds())); remaining > 0 {
		return fmt.Errorf("%w: %d message(s) still queued", ErrFlushTimeout, remaining)
	}
	return nil
}

// Pending 尚未完成投递的消息数，未连接时为 0。
func (p *ProducerClient) Pending() int {
	h, ok := p.ctrl.Handle()
	if !ok {
		return 0
	}
	return h.Len()
}

func defaultSpecs(topics []string) []kafka.TopicSpecification {
	specs := make([]kafka.TopicSpecification, 0, len(topics))
	for _, t := range topics {
		specs = append(specs, kafka.TopicSpecification{Topic: t, NumPartitions: -1, ReplicationFactor: -1})
	}
	return specs
}

func createTopics(ctx context.Context, admin AdminHandle, specs []kafka.TopicSpecification) ([]string, error) {
	results, err := admin.CreateTopics(ctx, specs)
	if err != nil {
		return nil, fmt.Errorf("xkafka: create topics: %w", err)
	}
	var (
		ok   []string
		errs []error
	)
	for _, r := range results {
		switch r.Error.Code() {
		case kafka.ErrNoError, kafka.ErrTopicAlreadyExists:
			ok = append(ok, r.Topic)
		default:
			errs = append(errs, fmt.Errorf("xkafka: create topic %s: %w", r.Topic, r.Error))
		}
	}
	return ok, errors.Join(errs...)
}
