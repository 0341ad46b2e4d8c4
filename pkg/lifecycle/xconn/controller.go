package xconn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
	"github.com/omeyang/kafkamq/pkg/resilience/xbreaker"
	"github.com/omeyang/kafkamq/pkg/resilience/xretry"
)

const componentName = "xconn"

// connectCall 一次进行中的连接过程，所有等待者共享。
// done 关闭后 handle/err 只读。
type connectCall[H any] struct {
	done     chan struct{}
	cancel   context.CancelFunc
	prepare  func(ctx context.Context) // 首次打开前执行，Reconnect 用于释放旧句柄并等待
	attempts int                       // 受 Controller.mu 保护
	gen      uint64                    // 发布句柄时的 Controller.gen，受 mu 保护
	handle   H
	err      error
}

// Controller 单个句柄的生命周期控制器，并发安全。
type Controller[H any] struct {
	opts     *options
	strategy Strategy[H]
	budget   *xretry.Budget
	retryer  *xretry.Retryer
	log      xlog.Logger

	mu       sync.Mutex
	phase    Phase
	handle   H
	inflight *connectCall[H]
	session  uint64 // 每次 Close 接管时加一
	gen      uint64 // 每次发布句柄时加一
}

// New 创建控制器，初始阶段为 Idle，不会主动连接。
func New[H any](strategy Strategy[H], opts ...Option) (*Controller[H], error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Controller[H]{
		opts:     o,
		strategy: strategy,
		budget:   xretry.NewBudget(o.retries),
		log:      o.logger.With(xlog.Component(componentName), slog.String("conn", o.name)),
	}

	var policy xretry.RetryPolicy = xretry.NewNeverRetry()
	if o.autoReconnect {
		policy = xretry.NewBudgetRetry(c.budget)
	}
	c.retryer = xretry.NewRetryer(
		xretry.WithRetryPolicy(policy),
		xretry.WithBackoffPolicy(o.backoff),
		xretry.WithOnRetry(func(attempt int, err error) {
			c.log.Warn(context.Background(), "reconnecting",
				slog.Int("attempt", attempt),
				slog.Int("remaining", c.budget.Remaining()),
				xlog.Err(err),
			)
		}),
	)
	return c, nil
}

// Connect 返回可用句柄。已连接时直接返回；有进行中的连接过程时加入等待；
// 否则发起新的连接过程，Closed 之后同样重新打开。
func (c *Controller[H]) Connect(ctx context.Context) (H, error) {
	return c.connect(ctx, nil)
}

// EnsureConnected 操作前的守卫，语义与 Connect 相同。
func (c *Controller[H]) EnsureConnected(ctx context.Context) (H, error) {
	return c.connect(ctx, nil)
}

// Session 当前会话号。Close 每接管一次连接加一，Reconnect 不改变会话号。
func (c *Controller[H]) Session() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// EnsureSession 与 EnsureConnected 相同，但 session 之后发生过 Close 时返回 ErrClosed，
// 不会重新打开。长期运行的循环以此在显式关闭后退出。
func (c *Controller[H]) EnsureSession(ctx context.Context, session uint64) (H, error) {
	return c.connect(ctx, &session)
}

func (c *Controller[H]) connect(ctx context.Context, session *uint64) (H, error) {
	var zero H
	c.mu.Lock()
	if session != nil && *session != c.session {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	switch c.phase {
	case PhaseConnected:
		h := c.handle
		c.mu.Unlock()
		return h, nil
	case PhaseClosing:
		c.mu.Unlock()
		return zero, &ConnectError{Name: c.opts.name, Kind: ErrClosing}
	}
	call := c.inflight
	if call != nil {
		c.mu.Unlock()
		c.log.Debug(ctx, "connect already in progress, joining")
	} else {
		call = c.startLocked(ctx, nil)
		c.mu.Unlock()
	}
	return c.wait(ctx, call)
}

// Start 后台发起连接，不等待结果。失败只体现在日志与阶段回调中。
// 已有连接过程时返回 ErrAlreadyInProgress。
func (c *Controller[H]) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.phase == PhaseConnected:
		return nil
	case c.phase == PhaseClosing:
		return &ConnectError{Name: c.opts.name, Kind: ErrClosing}
	case c.inflight != nil:
		c.log.Debug(ctx, "start ignored", xlog.Err(ErrAlreadyInProgress))
		return ErrAlreadyInProgress
	}
	c.startLocked(ctx, nil)
	return nil
}

// startLocked 调用方必须持有 mu。
// 连接过程继承 ctx 的值（trace 等），但不继承其取消；只有 Close 能中止它。
func (c *Controller[H]) startLocked(ctx context.Context, prepare func(context.Context)) *connectCall[H] {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	call := &connectCall[H]{done: make(chan struct{}), cancel: cancel, prepare: prepare}
	c.inflight = call
	go c.run(runCtx, call)
	return call
}

func (c *Controller[H]) wait(ctx context.Context, call *connectCall[H]) (H, error) {
	select {
	case <-call.done:
		return call.handle, call.err
	case <-ctx.Done():
		var zero H
		return zero, fmt.Errorf("xconn: %s: wait for connect: %w", c.opts.name, ctx.Err())
	}
}

func (c *Controller[H]) run(ctx context.Context, call *connectCall[H]) {
	defer call.cancel()

	ctx, span := xmetrics.Start(ctx, c.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "connect",
		Kind:      xmetrics.KindClient,
		Attrs:     []xmetrics.Attr{xmetrics.String("conn", c.opts.name)},
	})

	if call.prepare != nil {
		call.prepare(ctx)
	}
	h, err := xretry.DoWithResult(ctx, c.retryer, func(ctx context.Context) (H, error) {
		return c.attempt(ctx, call)
	})

	c.mu.Lock()
	attempts := call.attempts
	switch {
	case err != nil:
		err = c.classifyLocked(ctx, call, err)
		// Close 等待超时提前返回时，由这里把 Closing 收尾为 Closed。
		if ctx.Err() != nil && c.phase == PhaseClosing {
			c.setPhaseLocked(PhaseClosed)
		}
	case c.phase != PhaseConnected || c.gen != call.gen:
		// attempt 发布句柄之后 Close 已把它取走，不能再交给等待者。
		var zero H
		h, err = zero, &ConnectError{Name: c.opts.name, Kind: ErrClosing, Attempts: attempts}
	}
	call.handle, call.err = h, err
	if c.inflight == call {
		c.inflight = nil
	}
	c.mu.Unlock()

	// 日志与 span 在唤醒等待者之前完成，等待者返回后不再有本次连接的输出。
	span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Int("attempts", attempts)}})
	switch {
	case errors.Is(err, ErrClosing):
		c.log.Info(ctx, "connect aborted by close", slog.Int("attempts", attempts))
	case err != nil:
		c.log.Error(ctx, "connect failed", slog.Int("attempts", attempts), xlog.Err(err))
	}
	close(call.done)
}

// classifyLocked 把重试循环的最终错误归类为 ConnectError。
func (c *Controller[H]) classifyLocked(ctx context.Context, call *connectCall[H], err error) error {
	cause := err
	var pe *xretry.PermanentError
	if errors.As(err, &pe) && pe.Err != nil {
		cause = pe.Err
	}

	kind := ErrHandleCreation
	switch {
	case ctx.Err() != nil:
		kind = ErrClosing
		if errors.Is(cause, ErrClosing) || errors.Is(cause, context.Canceled) {
			cause = nil
		}
	case c.opts.autoReconnect && c.budget.Exhausted() && xretry.IsRetryable(err):
		kind = ErrRetriesExhausted
	}
	return &ConnectError{Name: c.opts.name, Kind: kind, Attempts: call.attempts, Err: cause}
}

// attempt 一次打开。失败回到 Idle，由重试策略决定是否再来。
func (c *Controller[H]) attempt(ctx context.Context, call *connectCall[H]) (H, error) {
	var zero H

	c.mu.Lock()
	if ctx.Err() != nil {
		c.mu.Unlock()
		return zero, xretry.NewPermanentError(ErrClosing)
	}
	call.attempts++
	n := call.attempts
	c.setPhaseLocked(PhaseConnecting)
	c.mu.Unlock()

	h, err := c.open(ctx)

	c.mu.Lock()
	if ctx.Err() != nil {
		// Close 已接管阶段，新打开的句柄无人持有，直接释放。
		c.mu.Unlock()
		if err == nil {
			c.release(h)
		}
		return zero, xretry.NewPermanentError(ErrClosing)
	}
	if err != nil {
		c.handle = zero
		c.setPhaseLocked(PhaseIdle)
		c.mu.Unlock()
		c.log.Warn(ctx, "open failed", slog.Int("attempt", n), xlog.Err(err))
		return zero, err
	}
	c.handle = h
	c.gen++
	call.gen = c.gen
	c.setPhaseLocked(PhaseConnected)
	c.mu.Unlock()

	c.log.Info(ctx, "connected", slog.Int("attempt", n))
	return h, nil
}

func (c *Controller[H]) open(ctx context.Context) (H, error) {
	ctx, span := xmetrics.Start(ctx, c.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "open",
		Kind:      xmetrics.KindClient,
	})

	openCtx, cancel := ctx, context.CancelFunc(func() {})
	if c.opts.connectTimeout > 0 {
		openCtx, cancel = context.WithTimeout(ctx, c.opts.connectTimeout)
	}
	defer cancel()

	var (
		h   H
		err error
	)
	if c.opts.breaker != nil {
		h, err = xbreaker.Execute(openCtx, c.opts.breaker, func() (H, error) {
			return c.strategy.Open(openCtx)
		})
	} else {
		h, err = c.strategy.Open(openCtx)
	}
	if err != nil && ctx.Err() == nil && errors.Is(openCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s: %w", ErrConnectTimeout, c.opts.connectTimeout, err)
	}

	span.End(xmetrics.Result{Err: err})
	return h, err
}

func (c *Controller[H]) release(h H) {
	if err := c.strategy.Close(context.Background(), h, true); err != nil {
		c.log.Warn(context.Background(), "release orphan handle failed", xlog.Err(err))
	}
}

// Close 关闭连接，结束后阶段一定为 Closed 且句柄已清空。
//
//   - Closing / Closed：空操作，返回 CloseSkipped
//   - Idle / Connecting：中止进行中的连接过程（包括 Reconnect 的等待），返回 CloseSkipped
//   - Connected：执行底层关闭，返回 CloseCompleted 与关闭错误
//
// 中止连接过程时若 ctx 先结束，返回 ctx 错误，阶段随后由连接过程收尾为 Closed。
func (c *Controller[H]) Close(ctx context.Context, force bool) (CloseOutcome, error) {
	var zero H

	c.mu.Lock()
	if c.phase == PhaseClosing || c.phase == PhaseClosed {
		c.mu.Unlock()
		return CloseSkipped, nil
	}

	if c.phase != PhaseConnected {
		call := c.inflight
		if call != nil {
			// 必须在持锁时取消，attempt 以此判断阶段是否已被接管。
			call.cancel()
		}
		c.session++
		c.setPhaseLocked(PhaseClosing)
		c.mu.Unlock()

		if call != nil {
			select {
			case <-call.done:
			case <-ctx.Done():
				return CloseSkipped, fmt.Errorf("xconn: %s: abort connect: %w", c.opts.name, ctx.Err())
			}
		}
		c.mu.Lock()
		c.handle = zero
		c.setPhaseLocked(PhaseClosed)
		c.mu.Unlock()
		c.log.Debug(ctx, "closed without handle")
		return CloseSkipped, nil
	}

	h := c.handle
	c.handle = zero
	c.session++
	c.setPhaseLocked(PhaseClosing)
	c.mu.Unlock()

	ctx, span := xmetrics.Start(ctx, c.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "close",
		Kind:      xmetrics.KindClient,
		Attrs:     []xmetrics.Attr{xmetrics.Bool("force", force)},
	})
	err := c.strategy.Close(ctx, h, force)
	span.End(xmetrics.Result{Err: err})

	c.mu.Lock()
	c.setPhaseLocked(PhaseClosed)
	c.mu.Unlock()

	if err != nil {
		c.log.Warn(ctx, "close failed", xlog.Err(err))
		return CloseCompleted, fmt.Errorf("xconn: close %s: %w", c.opts.name, err)
	}
	c.log.Info(ctx, "closed")
	return CloseCompleted, nil
}

// Reconnect 释放当前句柄，等待 delay 后重新打开，会话号不变。
// 只能在 Connected 阶段调用，否则返回 ErrNotConnected。
// 期间阶段保持 Connecting，Connect/EnsureConnected 加入同一连接过程等待新句柄；
// Close 会中止等待与后续打开。旧句柄的关闭错误只记录日志。
// ctx 只约束本次等待，不会中止重连。
func (c *Controller[H]) Reconnect(ctx context.Context, delay time.Duration) (H, error) {
	var zero H
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	if c.phase != PhaseConnected {
		c.mu.Unlock()
		return zero, fmt.Errorf("xconn: %s: reconnect: %w", c.opts.name, ErrNotConnected)
	}
	old := c.handle
	c.handle = zero
	c.setPhaseLocked(PhaseConnecting)
	call := c.startLocked(ctx, func(ctx context.Context) {
		if err := c.strategy.Close(context.WithoutCancel(ctx), old, false); err != nil {
			c.log.Warn(ctx, "close before reconnect failed", xlog.Err(err))
		}
		if delay <= 0 {
			return
		}
		c.log.Info(ctx, "reconnect scheduled", xlog.Duration(delay))
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	})
	c.mu.Unlock()
	return c.wait(ctx, call)
}

// IsConnected 纯读取
func (c *Controller[H]) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhaseConnected
}

// Phase 当前阶段
func (c *Controller[H]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Handle 已连接时返回句柄
func (c *Controller[H]) Handle() (H, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle, c.phase == PhaseConnected
}

// Current 已连接时返回句柄，否则返回 ErrNotConnected，不会触发连接。
func (c *Controller[H]) Current() (H, error) {
	h, ok := c.Handle()
	if !ok {
		return h, ErrNotConnected
	}
	return h, nil
}

// Remaining 剩余重连预算
func (c *Controller[H]) Remaining() int {
	return c.budget.Remaining()
}

// AutoReconnect 是否开启自动重连
func (c *Controller[H]) AutoReconnect() bool {
	return c.opts.autoReconnect
}

// Name 控制器名称
func (c *Controller[H]) Name() string {
	return c.opts.name
}

func (c *Controller[H]) setPhaseLocked(to Phase) {
	if c.phase == to {
		return
	}
	from := c.phase
	c.phase = to
	c.log.Debug(context.Background(), "phase changed",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)
	if c.opts.onStateChange != nil {
		c.opts.onStateChange(from, to)
	}
}
