package xconn

import "context"

//go:generate mockgen -source=strategy.go -destination=mock_strategy_test.go -package=xconn

// Strategy 负责打开与关闭具体的句柄。
//
// Open 需在 ctx 结束时尽快返回；返回成功即表示句柄已就绪。
// 打开过程中若已分配资源但最终失败，由 Open 自行释放。
type Strategy[H any] interface {
	Open(ctx context.Context) (H, error)
	Close(ctx context.Context, h H, force bool) error
}

// StrategyFuncs 以函数实现 Strategy。CloseFunc 为 nil 时关闭为空操作。
type StrategyFuncs[H any] struct {
	OpenFunc  func(ctx context.Context) (H, error)
	CloseFunc func(ctx context.Context, h H, force bool) error
}

func (s StrategyFuncs[H]) Open(ctx context.Context) (H, error) {
	return s.OpenFunc(ctx)
}

func (s StrategyFuncs[H]) Close(ctx context.Context, h H, force bool) error {
	if s.CloseFunc == nil {
		return nil
	}
	return s.CloseFunc(ctx, h, force)
}
