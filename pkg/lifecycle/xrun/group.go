package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
)

// Group 管理一组命名任务：任一任务出错或 Cancel 后，其余任务的 ctx 被取消。
// Go 与 Cancel 可并发调用，Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	name     string
	log      xlog.Logger
}

type options struct {
	name    string
	logger  xlog.Logger
	signals []os.Signal
}

// Option Group 配置项
type Option func(*options)

// WithName 日志中的 group 名称
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger 任务启停日志
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		o.logger = xlog.OrDiscard(l)
	}
}

// WithSignals HandleSignals 监听的信号，默认 DefaultSignals。
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *options) {
		o.signals = copied
	}
}

// DefaultSignals SIGINT 与 SIGTERM
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// NewGroup 返回 Group 与任务共享的 ctx。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	o := &options{name: "xrun", logger: xlog.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	g := &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		name:     o.name,
		log:      o.logger.With(xlog.Component("xrun"), slog.String("group", o.name)),
	}
	if len(o.signals) > 0 {
		g.handleSignals(o.signals)
	}
	return g, egCtx
}

// Go 启动名为 name 的任务。fn 应在 ctx 结束后尽快返回。
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		log := g.log.With(slog.String("task", name))
		log.Debug(g.ctx, "task starting")
		err := fn(g.ctx)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
			log.Debug(g.ctx, "task stopped")
		default:
			log.Warn(g.ctx, "task failed", xlog.Err(err))
		}
		return err
	})
}

// HandleSignals 收到 DefaultSignals 中的信号时以 *SignalError 取消 Group。
func (g *Group) HandleSignals() {
	g.handleSignals(DefaultSignals())
}

func (g *Group) handleSignals(signals []os.Signal) {
	g.eg.Go(func() error {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, signals...)
		defer signal.Stop(ch)

		var sig os.Signal
		select {
		case sig = <-testSigChan(g.ctx):
		case sig = <-ch:
		case <-g.ctx.Done():
			return nil
		}
		g.log.Info(g.ctx, "received signal", slog.String("signal", sig.String()))
		g.cancel(&SignalError{Signal: sig})
		return nil
	})
}

// Wait 等待全部任务结束。
//
// 返回第一个任务错误；因取消结束时返回取消原因（如 *SignalError），
// 没有显式原因时返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	// 任务内部自行产生的 Canceled 不是 Group 的取消
	if err != nil && g.causeCtx.Err() == nil {
		return err
	}
	if g.causeCtx.Err() != nil {
		if cause := context.Cause(g.causeCtx); !errors.Is(cause, context.Canceled) {
			return cause
		}
	}
	return nil
}

// Cancel 以 cause 取消全部任务，Wait 会返回 cause。
// cause 不应包装 context.Canceled，否则会被视为普通取消。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 任务共享的 ctx
func (g *Group) Context() context.Context {
	return g.ctx
}

// Run 监听 DefaultSignals 并运行 tasks，tasks 的 key 为任务名。
func Run(ctx context.Context, tasks map[string]func(context.Context) error, opts ...Option) error {
	g, _ := NewGroup(ctx, append([]Option{WithSignals(DefaultSignals()...)}, opts...)...)
	for name, fn := range tasks {
		g.Go(name, fn)
	}
	return g.Wait()
}

type testSigChanKey struct{}

// testSigChan 测试通过 ctx 注入的信号通道，生产环境为 nil（永不就绪）。
func testSigChan(ctx context.Context) <-chan os.Signal {
	c, _ := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}
