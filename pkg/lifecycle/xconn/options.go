package xconn

import (
	"time"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
	"github.com/omeyang/kafkamq/pkg/resilience/xbreaker"
	"github.com/omeyang/kafkamq/pkg/resilience/xretry"
)

const (
	defaultRetries        = 5
	defaultConnectTimeout = 30 * time.Second
)

type options struct {
	name           string
	autoReconnect  bool
	retries        int
	backoff        xretry.BackoffPolicy
	connectTimeout time.Duration
	breaker        *xbreaker.Breaker
	logger         xlog.Logger
	observer       xmetrics.Observer
	onStateChange  func(from, to Phase)
}

func defaultOptions() *options {
	return &options{
		name:           "conn",
		autoReconnect:  true,
		retries:        defaultRetries,
		backoff:        xretry.NewExponentialBackoff(),
		connectTimeout: defaultConnectTimeout,
		logger:         xlog.Discard(),
		observer:       xmetrics.NoopObserver{},
	}
}

// Option Controller 配置项
type Option func(*options)

// WithName 名称，出现在日志、span 与错误中。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithAutoReconnect 打开失败后是否自动重试，默认开启，构造后不可更改。
func WithAutoReconnect(enabled bool) Option {
	return func(o *options) {
		o.autoReconnect = enabled
	}
}

// WithRetries 重连预算，默认 5，负数按 0 处理。
func WithRetries(n int) Option {
	return func(o *options) {
		o.retries = max(n, 0)
	}
}

// WithBackoff 两次打开之间的等待策略，默认指数退避。
func WithBackoff(b xretry.BackoffPolicy) Option {
	return func(o *options) {
		if b != nil {
			o.backoff = b
		}
	}
}

// WithConnectTimeout 单次打开的超时，默认 30s，0 表示不限。
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.connectTimeout = d
		}
	}
}

// WithBreaker 以熔断器保护打开操作，熔断期间的拒绝不消耗预算。
func WithBreaker(b *xbreaker.Breaker) Option {
	return func(o *options) {
		o.breaker = b
	}
}

// WithLogger 注入日志
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver 注入观测器
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithOnStateChange 阶段变化回调。回调在持锁状态下同步执行，不能回调 Controller。
func WithOnStateChange(f func(from, to Phase)) Option {
	return func(o *options) {
		o.onStateChange = f
	}
}
