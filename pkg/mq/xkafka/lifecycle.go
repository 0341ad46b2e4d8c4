package xkafka

import (
	"context"
	"log/slog"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

const componentName = "xkafka"

// lifecycle 所有客户端共用的连接管理，由各客户端以字段组合。
type lifecycle[H any] struct {
	ctrl *xconn.Controller[H]
	cfg  Config
	opts *clientOptions
	log  xlog.Logger
}

func newLifecycle[H any](kind string, cfg *Config, strategy func(Config, *clientOptions) xconn.Strategy[H], opts []Option) (lifecycle[H], error) {
	if cfg == nil {
		return lifecycle[H]{}, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return lifecycle[H]{}, err
	}
	c := cfg.normalized()
	o := applyOptions(kind, opts)
	log := o.logger.With(xlog.Component(componentName), slog.String("client", o.name))
	if c.ClientLogs {
		o.rdlogs = newRDLogs(o.logger.With(slog.String("client", o.name)))
	}

	copts := append(c.controllerOptions(o.name),
		xconn.WithLogger(o.logger),
		xconn.WithObserver(o.observer),
		xconn.WithBreaker(o.breaker),
	)
	if o.onStateChange != nil {
		name, hook := o.name, o.onStateChange
		copts = append(copts, xconn.WithOnStateChange(func(from, to xconn.Phase) {
			hook(name, from, to)
		}))
	}
	ctrl, err := xconn.New(strategy(c, o), copts...)
	if err != nil {
		return lifecycle[H]{}, err
	}
	return lifecycle[H]{ctrl: ctrl, cfg: c, opts: o, log: log}, nil
}

// Connect 建立连接，已连接时立即返回。
func (l *lifecycle[H]) Connect(ctx context.Context) error {
	_, err := l.ctrl.Connect(ctx)
	return err
}

// Close 关闭连接。未连接时为空操作。
func (l *lifecycle[H]) Close(ctx context.Context, force bool) error {
	_, err := l.ctrl.Close(ctx, force)
	return err
}

// IsConnected 是否已连接
func (l *lifecycle[H]) IsConnected() bool {
	return l.ctrl.IsConnected()
}

// Phase 当前连接阶段
func (l *lifecycle[H]) Phase() xconn.Phase {
	return l.ctrl.Phase()
}

// Name 客户端名称
func (l *lifecycle[H]) Name() string {
	return l.opts.name
}

// handle 操作前守卫：确保已连接后返回句柄，显式关闭之后会重新打开。
func (l *lifecycle[H]) handle(ctx context.Context) (H, error) {
	return l.ctrl.EnsureConnected(ctx)
}

// sessionHandle 长期循环使用的守卫：session 之后发生过 Close 时返回 xconn.ErrClosed。
func (l *lifecycle[H]) sessionHandle(ctx context.Context, session uint64) (H, error) {
	return l.ctrl.EnsureSession(ctx, session)
}

func (l *lifecycle[H]) span(ctx context.Context, op string, kind xmetrics.Kind, attrs ...xmetrics.Attr) (context.Context, xmetrics.Span) {
	return xmetrics.Start(ctx, l.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: op,
		Kind:      kind,
		Attrs:     append([]xmetrics.Attr{xmetrics.String("messaging.system", "kafka"), xmetrics.String("client", l.opts.name)}, attrs...),
	})
}

func (l *lifecycle[H]) timeoutMs() int {
	return int(l.cfg.RequestTimeout.Milliseconds())
}

// requestCtx 为 admin 请求附加默认超时，调用方已设置截止时间时不覆盖。
func (l *lifecycle[H]) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, l.cfg.RequestTimeout)
}
