package xbreaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

type (
	// State 熔断器状态
	State = gobreaker.State
	// Counts 统计计数
	Counts = gobreaker.Counts
)

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

// ErrNilBreaker Breaker 为 nil
var ErrNilBreaker = errors.New("xbreaker: breaker is nil")

// Breaker 熔断器
type Breaker struct {
	name          string
	threshold     uint32
	timeout       time.Duration
	interval      time.Duration
	maxRequests   uint32
	onStateChange func(name string, from, to State)

	cb *gobreaker.CircuitBreaker[any]
}

// Option 熔断器配置项
type Option func(*Breaker)

// WithThreshold 连续失败多少次后熔断，默认 5，0 忽略。
func WithThreshold(n uint32) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.threshold = n
		}
	}
}

// WithTimeout Open 状态持续多久后进入 HalfOpen，默认 30s。
func WithTimeout(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithInterval Closed 状态下清零统计的周期，默认 0 即不清零。
func WithInterval(d time.Duration) Option {
	return func(b *Breaker) {
		if d >= 0 {
			b.interval = d
		}
	}
}

// WithMaxRequests HalfOpen 状态允许的探测请求数，默认 1。
func WithMaxRequests(n uint32) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.maxRequests = n
		}
	}
}

// WithOnStateChange 状态变化回调
func WithOnStateChange(f func(name string, from, to State)) Option {
	return func(b *Breaker) {
		b.onStateChange = f
	}
}

// New 创建熔断器
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:        name,
		threshold:   5,
		timeout:     30 * time.Second,
		maxRequests: 1,
	}
	for _, opt := range opts {
		opt(b)
	}

	st := gobreaker.Settings{
		Name:        b.name,
		MaxRequests: b.maxRequests,
		Interval:    b.interval,
		Timeout:     b.timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= b.threshold
		},
		// ctx 取消不是下游故障，不计入失败。
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	if b.onStateChange != nil {
		st.OnStateChange = b.onStateChange
	}
	b.cb = gobreaker.NewCircuitBreaker[any](st)
	return b
}

// Execute 在熔断器保护下执行 fn。泛型不能作为方法，故为包级函数。
func Execute[T any](ctx context.Context, b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	if b == nil {
		return zero, ErrNilBreaker
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	res, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, wrap(err, b.name)
	}
	typed, _ := res.(T)
	return typed, nil
}

// State 当前状态
func (b *Breaker) State() State { return b.cb.State() }

// Name 熔断器名称
func (b *Breaker) Name() string { return b.name }

// Counts 当前统计
func (b *Breaker) Counts() Counts { return b.cb.Counts() }

// BreakerError 熔断器拦截错误，不可重试。
type BreakerError struct {
	Err   error
	Name  string
	State State
}

func (e *BreakerError) Error() string {
	return fmt.Sprintf("breaker %s: %v", e.Name, e.Err)
}

func (e *BreakerError) Unwrap() error { return e.Err }

// Retryable 熔断期间重试没有意义
func (e *BreakerError) Retryable() bool { return false }

// 只包装本熔断器直接返回的哨兵错误，fn 返回的错误原样透传。
func wrap(err error, name string) error {
	switch err { //nolint:errorlint // 只匹配 gobreaker 直接返回的哨兵
	case gobreaker.ErrOpenState:
		return &BreakerError{Err: err, Name: name, State: StateOpen}
	case gobreaker.ErrTooManyRequests:
		return &BreakerError{Err: err, Name: name, State: StateHalfOpen}
	}
	return err
}

// IsOpen 错误是否为熔断打开
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState)
}

// IsBreakerError 错误是否来自熔断器拦截
func IsBreakerError(err error) bool {
	var be *BreakerError
	return errors.As(err, &be)
}
