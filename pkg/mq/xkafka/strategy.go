package xkafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
)

// producerStrategy 打开生产者并等待 broker 可达。
// 关闭时非 force 先 Flush，force 丢弃队列中未发送的消息。
type producerStrategy struct {
	cfg     Config
	factory Factory
	logs    *rdLogs
}

func (s producerStrategy) Open(ctx context.Context) (ProducerHandle, error) {
	p, err := s.factory.NewProducer(s.logs.configure(s.cfg.producerConfigMap()))
	if err != nil {
		return nil, fmt.Errorf("xkafka: new producer: %w", err)
	}
	s.logs.start()
	release := func() {
		p.Close()
		s.logs.halt()
	}
	if err := checkReady(ctx, p, s.cfg.ConnectTimeout, release); err != nil {
		return nil, err
	}
	return p, nil
}

func (s producerStrategy) Close(_ context.Context, p ProducerHandle, force bool) error {
	defer s.logs.halt()
	defer p.Close()
	if force {
		if err := p.Purge(kafka.PurgeQueue | kafka.PurgeInFlight); err != nil {
			return fmt.Errorf("xkafka: purge: %w", err)
		}
		return nil
	}
	if remaining := p.Flush(int(s.cfg.FlushTimeout.Milliseconds())); remaining > 0 {
		return fmt.Errorf("%w: %d message(s) still queued", ErrFlushTimeout, remaining)
	}
	return nil
}

// consumerStrategy 打开消费者。assign 非空时按分区分配，否则按 sub 订阅消费组。
// 关闭时非 force 先提交已存储的 offset。
type consumerStrategy struct {
	cfg     Config
	factory Factory
	logs    *rdLogs
	assign  *assignment
	sub     *subscription
}

func (s consumerStrategy) Open(ctx context.Context) (ConsumerHandle, error) {
	c, err := s.factory.NewConsumer(s.logs.configure(s.cfg.consumerConfigMap(s.assign != nil)))
	if err != nil {
		return nil, fmt.Errorf("xkafka: new consumer: %w", err)
	}
	s.logs.start()
	release := func() {
		_ = c.Close()
		s.logs.halt()
	}
	if err := checkReady(ctx, c, s.cfg.ConnectTimeout, release); err != nil {
		return nil, err
	}

	switch {
	case s.assign != nil:
		if parts := s.assign.snapshot(); len(parts) > 0 {
			err = c.Assign(toKafka(parts))
		}
	case s.sub != nil:
		if topics := s.sub.snapshot(); len(topics) > 0 {
			err = c.SubscribeTopics(topics, nil)
		}
	}
	if err != nil {
		release()
		return nil, fmt.Errorf("xkafka: attach topics: %w", err)
	}
	return c, nil
}

func (s consumerStrategy) Close(_ context.Context, c ConsumerHandle, force bool) error {
	var commitErr error
	if !force {
		if _, err := c.Commit(); err != nil && !isNoOffset(err) {
			commitErr = fmt.Errorf("xkafka: commit on close: %w", err)
		}
	}
	closeErr := c.Close()
	s.logs.halt()
	return errors.Join(commitErr, closeErr)
}

// adminStrategy 打开 admin 客户端
type adminStrategy struct {
	cfg     Config
	factory Factory
	logs    *rdLogs
}

func (s adminStrategy) Open(ctx context.Context) (AdminHandle, error) {
	a, err := s.factory.NewAdminClient(s.logs.configure(s.cfg.adminConfigMap()))
	if err != nil {
		return nil, fmt.Errorf("xkafka: new admin client: %w", err)
	}
	s.logs.start()
	release := func() {
		a.Close()
		s.logs.halt()
	}
	if err := checkReady(ctx, a, s.cfg.ConnectTimeout, release); err != nil {
		return nil, err
	}
	return a, nil
}

func (s adminStrategy) Close(_ context.Context, a AdminHandle, _ bool) error {
	a.Close()
	s.logs.halt()
	return nil
}

var (
	_ xconn.Strategy[ProducerHandle] = producerStrategy{}
	_ xconn.Strategy[ConsumerHandle] = consumerStrategy{}
	_ xconn.Strategy[AdminHandle]    = adminStrategy{}
)
