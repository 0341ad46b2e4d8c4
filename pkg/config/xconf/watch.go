package xconf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
)

// DefaultDebounce 连续变更合并为一次重载的窗口
const DefaultDebounce = 100 * time.Millisecond

type watchOptions struct {
	debounce time.Duration
	logger   xlog.Logger
}

// WatchOption Watch 配置项
type WatchOption func(*watchOptions)

// WithDebounce 防抖窗口，<= 0 时使用 DefaultDebounce
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithWatchLogger 记录重载结果
func WithWatchLogger(l xlog.Logger) WatchOption {
	return func(o *watchOptions) {
		o.logger = xlog.OrDiscard(l)
	}
}

// Watch 监视配置文件，变更时 Reload 并以重载结果调用 onReload。
// 阻塞直到 ctx 结束，返回 nil；onReload 只在调用 Watch 的 goroutine 中执行，
// Watch 返回后不会再被调用。
//
// 监视的是文件所在目录，编辑器以 rename 方式原子写入时也能收到事件。
func Watch(ctx context.Context, l *Loader, onReload func(error), opts ...WatchOption) error {
	if l == nil || l.path == "" {
		return ErrNotReloadable
	}
	o := &watchOptions{debounce: DefaultDebounce, logger: xlog.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("xconf: new watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(l.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("xconf: watch %s: %w", dir, err)
	}

	log := o.logger.With(xlog.Component("xconf"), slog.String("path", l.path))
	name := filepath.Base(l.path)

	// 未触发时 pending 为 nil，select 永远不会选中它
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	reload := func(err error) {
		if err != nil {
			log.Warn(ctx, "config reload failed", xlog.Err(err))
		} else {
			log.Info(ctx, "config reloaded")
		}
		if onReload != nil {
			onReload(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(o.debounce)
			} else {
				timer.Reset(o.debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			reload(l.Reload())
		case werr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(werr, fsnotify.ErrEventOverflow) {
				// 事件可能丢失，直接重读一次
				reload(l.Reload())
				continue
			}
			reload(fmt.Errorf("xconf: watch: %w", werr))
		}
	}
}

func relevant(ev fsnotify.Event, name string) bool {
	if filepath.Base(ev.Name) != name {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
