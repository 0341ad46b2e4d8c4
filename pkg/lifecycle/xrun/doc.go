// Package xrun 基于 errgroup 运行一组命名任务，并把系统信号转换为带原因的取消。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithSignals(xrun.DefaultSignals()...))
//	g.Go("consume", func(ctx context.Context) error { return client.Consume(ctx, handle) })
//	g.Go("config-watch", func(ctx context.Context) error { return xconf.Watch(ctx, loader, nil) })
//	err := g.Wait() // 收到 SIGTERM 时 errors.Is(err, xrun.ErrSignal)
//
// 任务因 Group 取消而返回 context.Canceled 时不算失败。
package xrun
