package xkafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/internal/mqcore"
	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
	"github.com/omeyang/kafkamq/pkg/resilience/xretry"
)

// MessageHandler 处理单条消息。ctx 已挂上消息头中的链路信息。
// 返回错误时该消息的 offset 不会被存储。
type MessageHandler func(ctx context.Context, msg *kafka.Message) error

type consumeOptions struct {
	onError            func(error)
	onOffsetOutOfRange func(error)
	backoff            xretry.BackoffPolicy
	// manualStore 由调用方自行存储 offset，流式消费使用
	manualStore bool
}

// ConsumeOption Consume 的配置项
type ConsumeOption func(*consumeOptions)

// WithOnError 读取失败或处理失败时回调
func WithOnError(f func(error)) ConsumeOption {
	return func(o *consumeOptions) {
		o.onError = f
	}
}

// WithOnOffsetOutOfRange offset 越界时回调，未设置时按普通错误处理。
func WithOnOffsetOutOfRange(f func(error)) ConsumeOption {
	return func(o *consumeOptions) {
		o.onOffsetOutOfRange = f
	}
}

// WithConsumeBackoff 连续读取失败时的退避策略
func WithConsumeBackoff(b xretry.BackoffPolicy) ConsumeOption {
	return func(o *consumeOptions) {
		o.backoff = b
	}
}

// consume 阻塞消费直到 ctx 结束（返回 nil）或客户端被显式关闭（返回 ErrClosed）。
// 重连期间的连接错误按普通读取失败退避重试。
func consume(ctx context.Context, l *lifecycle[ConsumerHandle], handler MessageHandler, opts []ConsumeOption) error {
	if handler == nil {
		return ErrNilHandler
	}
	o := &consumeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	session := l.ctrl.Session()
	var stopErr error
	once := func(ctx context.Context) error {
		err := consumeOne(ctx, l, session, handler, o)
		if errors.Is(err, xconn.ErrClosed) || (errors.Is(err, xconn.ErrClosing) && l.ctrl.Session() != session) {
			stopErr = ErrClosed
			return mqcore.ErrStopLoop
		}
		return err
	}

	loopOpts := []mqcore.ConsumeLoopOption{
		mqcore.WithBackoff(o.backoff),
		mqcore.WithOnError(func(err error) {
			l.log.Warn(ctx, "consume failed", xlog.Err(err))
			if o.onError != nil {
				o.onError(err)
			}
		}),
	}
	err := mqcore.RunConsumeLoop(ctx, once, loopOpts...)
	switch {
	case stopErr != nil:
		return stopErr
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil
	}
	return err
}

// consumeOne 读取并处理一条消息。读取超时与处理失败都不算循环错误。
func consumeOne(ctx context.Context, l *lifecycle[ConsumerHandle], session uint64, handler MessageHandler, o *consumeOptions) error {
	h, err := l.sessionHandle(ctx, session)
	if err != nil {
		return err
	}

	msg, err := h.ReadMessage(l.cfg.PollTimeout)
	switch {
	case err == nil:
	case isTimeout(err):
		return nil
	case IsOffsetOutOfRange(err) && o.onOffsetOutOfRange != nil:
		o.onOffsetOutOfRange(err)
		return nil
	default:
		return fmt.Errorf("xkafka: read message: %w", err)
	}

	msgCtx := extractTrace(ctx, l.opts.tracer, msg)
	msgCtx, span := l.span(msgCtx, "consume", xmetrics.KindConsumer, messageAttrs(msg)...)
	herr := safeHandle(msgCtx, handler, msg)
	span.End(xmetrics.Result{Err: herr})

	if herr != nil {
		l.log.Warn(msgCtx, "handle message failed",
			slog.String("topic", topicOf(msg)),
			slog.Int("partition", int(msg.TopicPartition.Partition)),
			slog.Int64("offset", int64(msg.TopicPartition.Offset)),
			xlog.Err(herr),
		)
		if o.onError != nil {
			o.onError(herr)
		}
		return nil
	}

	if o.manualStore {
		return nil
	}
	if _, err := h.StoreMessage(msg); err != nil {
		return fmt.Errorf("xkafka: store offset: %w", err)
	}
	return nil
}

func safeHandle(ctx context.Context, handler MessageHandler, msg *kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("xkafka: handler panic: %v", r)
		}
	}()
	return handler(ctx, msg)
}

// commit force 为 true 时同步提交已存储的 offset，没有可提交内容时返回 nil, nil；
// 否则只把当前消费位置存储为待提交 offset，由自动提交带走。
func commit(ctx context.Context, l *lifecycle[ConsumerHandle], force bool) (_ []TopicPartition, err error) {
	ctx, span := l.span(ctx, "commit", xmetrics.KindConsumer, xmetrics.Bool("force", force))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	h, err := l.handle(ctx)
	if err != nil {
		return nil, err
	}
	if !force {
		return storePositions(h)
	}
	parts, err := h.Commit()
	if err != nil {
		if isNoOffset(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("xkafka: commit: %w", err)
	}
	return fromKafkaList(parts), nil
}

// storePositions 存储已分配分区的当前位置。尚未消费过的分区位置无效，跳过。
func storePositions(h ConsumerHandle) ([]TopicPartition, error) {
	assigned, err := h.Assignment()
	if err != nil {
		return nil, fmt.Errorf("xkafka: assignment: %w", err)
	}
	if len(assigned) == 0 {
		return nil, nil
	}
	pos, err := h.Position(assigned)
	if err != nil {
		return nil, fmt.Errorf("xkafka: position: %w", err)
	}
	pos = slices.DeleteFunc(pos, func(tp kafka.TopicPartition) bool { return tp.Offset < 0 })
	if len(pos) == 0 {
		return nil, nil
	}
	stored, err := h.StoreOffsets(pos)
	if err != nil {
		return nil, fmt.Errorf("xkafka: store offsets: %w", err)
	}
	return fromKafkaList(stored), nil
}
