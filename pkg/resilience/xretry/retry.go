package xretry

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy 判断失败后是否继续重试。
type RetryPolicy interface {
	// MaxAttempts 返回最大尝试次数（包含首次），0 表示不设上限，
	// 由 ShouldRetry 决定何时停止。
	MaxAttempts() int

	// ShouldRetry 在每次失败后调用，attempt 从 1 开始。
	ShouldRetry(ctx context.Context, attempt int, err error) bool
}

// BackoffPolicy 计算下一次尝试前的等待时间，attempt 从 1 开始。
type BackoffPolicy interface {
	NextDelay(attempt int) time.Duration
}

var (
	// ErrNilRetryer Retryer 为 nil
	ErrNilRetryer = errors.New("xretry: retryer is nil")
	// ErrNilContext context 为 nil
	ErrNilContext = errors.New("xretry: context is nil")
	// ErrNilFunc 待执行函数为 nil
	ErrNilFunc = errors.New("xretry: function is nil")
)
