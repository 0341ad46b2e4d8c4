package mqcore

import (
	"context"
	"errors"
	"time"

	"github.com/omeyang/kafkamq/pkg/resilience/xretry"
)

// ConsumeFunc 单次消费。返回 ErrStopLoop 结束循环，其余错误触发退避后继续。
type ConsumeFunc func(ctx context.Context) error

type loopOptions struct {
	backoff xretry.BackoffPolicy
	onError func(err error)
}

// ConsumeLoopOption 消费循环配置项
type ConsumeLoopOption func(*loopOptions)

// WithBackoff 设置失败后的退避策略，默认指数退避。
func WithBackoff(b xretry.BackoffPolicy) ConsumeLoopOption {
	return func(o *loopOptions) {
		if b != nil {
			o.backoff = b
		}
	}
}

// WithOnError 设置失败回调
func WithOnError(f func(err error)) ConsumeLoopOption {
	return func(o *loopOptions) {
		o.onError = f
	}
}

// RunConsumeLoop 循环执行 consume 直到 ctx 结束或 consume 返回 ErrStopLoop。
// 连续失败按退避策略等待，任意一次成功后重置退避计数。
func RunConsumeLoop(ctx context.Context, consume ConsumeFunc, opts ...ConsumeLoopOption) error {
	if consume == nil {
		return ErrNilHandler
	}
	o := &loopOptions{backoff: xretry.NewExponentialBackoff()}
	for _, opt := range opts {
		opt(o)
	}

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := consume(ctx)
		switch {
		case err == nil:
			failures = 0
			continue
		case errors.Is(err, ErrStopLoop):
			return nil
		}

		failures++
		if o.onError != nil {
			o.onError(err)
		}
		timer := time.NewTimer(o.backoff.NextDelay(failures))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
