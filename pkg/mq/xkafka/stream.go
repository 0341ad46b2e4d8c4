package xkafka

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

const (
	defaultStreamBuffer  = 256
	commitStreamInterval = time.Second
	queueFullBackoff     = 100 // ms
	drainCheckInterval   = 100 * time.Millisecond
)

// ProducerStream 把消息通道接到生产者上
type ProducerStream struct {
	*ProducerClient
	topic string
}

// NewProducerStream topic 为消息未指定 topic 时的默认值，可为空。
func NewProducerStream(cfg *Config, topic string, opts ...Option) (*ProducerStream, error) {
	p, err := NewProducerClient(cfg, append([]Option{WithName("producer_stream")}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &ProducerStream{ProducerClient: p, topic: topic}, nil
}

// Pipe 持续发送 in 中的消息直到 in 关闭或 ctx 结束，然后等待已发送消息的投递报告。
// 队列满时等待后重试。返回所有投递失败合并后的错误。
// ctx 结束时尚未到达的报告在后台继续读取，直到全部到达或生产者被关闭。
func (s *ProducerStream) Pipe(ctx context.Context, in <-chan *kafka.Message) (err error) {
	ctx, span := s.span(ctx, "pipe", xmetrics.KindProducer, xmetrics.String("messaging.destination", s.topic))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := s.handle(ctx)
	if err != nil {
		return err
	}
	session := s.ctrl.Session()

	var (
		sent        atomic.Int64
		doneSending = make(chan struct{})
		reports     = make(chan kafka.Event, defaultStreamBuffer)
		collected   = make(chan reportSummary, 1)
	)
	go func() {
		collected <- collectReports(ctx, reports, doneSending, &sent)
	}()

	produceErr := s.pump(ctx, h, in, reports, &sent)
	close(doneSending)
	sum := <-collected
	errs := sum.errs
	if sum.pending > 0 {
		s.log.Warn(ctx, "pipe stopped before all deliveries reported", xlog.Count(sum.pending))
		go s.drainReports(reports, sum.pending, session)
	}

	if produceErr != nil {
		errs = append(errs, produceErr)
	}
	err = errors.Join(errs...)
	s.log.Info(ctx, "pipe finished", xlog.Count(sent.Load()), xlog.Err(err))
	return err
}

func (s *ProducerStream) pump(ctx context.Context, h ProducerHandle, in <-chan *kafka.Message, reports chan kafka.Event, sent *atomic.Int64) error {
	for {
		var (
			m  *kafka.Message
			ok bool
		)
		select {
		case <-ctx.Done():
			return nil
		case m, ok = <-in:
			if !ok {
				return nil
			}
		}
		if m == nil {
			continue
		}
		if m.TopicPartition.Topic == nil {
			if s.topic == "" {
				return fmt.Errorf("%w: message without topic", ErrInvalidArgument)
			}
			topic := s.topic
			m.TopicPartition = kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny}
		}
		injectTrace(ctx, s.opts.tracer, m)

		for {
			err := h.Produce(m, reports)
			if err == nil {
				sent.Add(1)
				break
			}
			if kafkaCode(err) != kafka.ErrQueueFull {
				return fmt.Errorf("xkafka: produce to %s: %w", topicOf(m), err)
			}
			if ctx.Err() != nil {
				return nil
			}
			h.Flush(queueFullBackoff)
		}
	}
}

type reportSummary struct {
	errs    []error
	pending int64 // ctx 结束时仍未到达的报告数
}

// collectReports 收集投递报告直到发送结束且报告数与发送数一致。
func collectReports(ctx context.Context, reports <-chan kafka.Event, doneSending <-chan struct{}, sent *atomic.Int64) reportSummary {
	var (
		acked int64
		errs  []error
	)
	record := func(ev kafka.Event) {
		acked++
		if m, ok := ev.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			errs = append(errs, fmt.Errorf("xkafka: deliver to %s: %w", topicOf(m), m.TopicPartition.Error))
		}
	}
	for {
		select {
		case ev := <-reports:
			record(ev)
		case <-doneSending:
			for acked < sent.Load() {
				select {
				case ev := <-reports:
					record(ev)
				case <-ctx.Done():
					return reportSummary{
						errs:    append(errs, fmt.Errorf("xkafka: await delivery: %w", ctx.Err())),
						pending: sent.Load() - acked,
					}
				}
			}
			return reportSummary{errs: errs}
		}
	}
}

// drainReports 读完剩余的投递报告。句柄按消息阻塞写入 reports，
// 无人读取会卡住它的投递协程。生产者关闭后不再有报告写入，随之退出。
func (s *ProducerStream) drainReports(reports <-chan kafka.Event, pending int64, session uint64) {
	ticker := time.NewTicker(drainCheckInterval)
	defer ticker.Stop()
	for pending > 0 {
		select {
		case <-reports:
			pending--
		case <-ticker.C:
			if s.ctrl.Session() != session {
				return
			}
		}
	}
}

// streamState 后台消费的终止错误
type streamState struct {
	mu      sync.Mutex
	running bool
	err     error
}

func (s *streamState) start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running, s.err = true, nil
	return true
}

func (s *streamState) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running, s.err = false, err
}

func (s *streamState) result() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// messages 后台消费并把消息写入返回的通道，消费结束后关闭通道。
func messages(ctx context.Context, l *lifecycle[ConsumerHandle], st *streamState, opts []ConsumeOption) (<-chan *kafka.Message, error) {
	if _, err := l.handle(ctx); err != nil {
		return nil, err
	}
	if !st.start() {
		return nil, fmt.Errorf("xkafka: %s: stream already running", l.opts.name)
	}

	out := make(chan *kafka.Message, defaultStreamBuffer)
	// ctx 结束时丢弃当前消息，offset 未存储，重启后会再次读到
	forward := func(ctx context.Context, msg *kafka.Message) error {
		select {
		case out <- msg:
		case <-ctx.Done():
		}
		return nil
	}
	go func() {
		defer close(out)
		err := consume(ctx, l, forward, append(slices.Clip(opts), func(o *consumeOptions) { o.manualStore = true }))
		st.finish(err)
	}()
	return out, nil
}

// ConsumerStream 按分区分配的流式消费者，offset 通过 CommitStream 提交。
type ConsumerStream struct {
	*ConsumerClient
	topics []string
	state  streamState
}

// NewConsumerStream topics 不能为空或含空白项。
func NewConsumerStream(cfg *Config, topics []string, opts ...Option) (*ConsumerStream, error) {
	topics, err := trimTopics(topics, true)
	if err != nil {
		return nil, err
	}
	c, err := NewConsumerClient(cfg, nil, append([]Option{WithName("consumer_stream")}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &ConsumerStream{ConsumerClient: c, topics: topics}, nil
}

// Messages 分配全部 topic 后开始后台消费。同一时刻只能有一个消费过程。
// 通道关闭后可通过 Err 获取终止原因。
func (s *ConsumerStream) Messages(ctx context.Context, opts ...ConsumeOption) (<-chan *kafka.Message, error) {
	if _, err := s.AddTopics(ctx, s.topics, false); err != nil {
		return nil, err
	}
	return messages(ctx, &s.lifecycle, &s.state, opts)
}

// Err 最近一次消费过程的终止错误，ctx 正常结束时为 nil。
func (s *ConsumerStream) Err() error {
	return s.state.result()
}

// CommitStream 存储 in 中每条消息的 offset 并定期提交，in 关闭或 ctx 结束时做最后一次提交。
func (s *ConsumerStream) CommitStream(ctx context.Context, in <-chan *kafka.Message) error {
	h, err := s.handle(ctx)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(commitStreamInterval)
	defer ticker.Stop()

	flush := func() error {
		_, err := commit(ctx, &s.lifecycle, true)
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return flush()
		case <-ticker.C:
			if err := flush(); err != nil {
				return err
			}
		case m, ok := <-in:
			if !ok {
				return flush()
			}
			if m == nil {
				continue
			}
			if _, err := h.StoreMessage(m); err != nil {
				return fmt.Errorf("xkafka: store offset: %w", err)
			}
		}
	}
}

// ConsumerGroupStream 消费组的流式消费者
type ConsumerGroupStream struct {
	*ConsumerGroupClient
	state streamState
}

// NewConsumerGroupStream 同 NewConsumerGroupClient
func NewConsumerGroupStream(cfg *Config, topics []string, opts ...Option) (*ConsumerGroupStream, error) {
	g, err := NewConsumerGroupClient(cfg, topics, append([]Option{WithName("consumer_group_stream")}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &ConsumerGroupStream{ConsumerGroupClient: g}, nil
}

// Messages 开始后台消费，见 ConsumerStream.Messages。
func (s *ConsumerGroupStream) Messages(ctx context.Context, opts ...ConsumeOption) (<-chan *kafka.Message, error) {
	return messages(ctx, &s.lifecycle, &s.state, opts)
}

// Err 最近一次消费过程的终止错误
func (s *ConsumerGroupStream) Err() error {
	return s.state.result()
}

// CommitMessage 确认消息。force 为 true 时同步提交，否则只存储 offset 等待自动提交。
func (s *ConsumerGroupStream) CommitMessage(ctx context.Context, msg *kafka.Message, force bool) error {
	if msg == nil {
		return ErrNilMessage
	}
	h, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if force {
		_, err = h.CommitMessage(msg)
	} else {
		_, err = h.StoreMessage(msg)
	}
	if err != nil {
		return fmt.Errorf("xkafka: commit message: %w", err)
	}
	return nil
}
