package xretry

import (
	"context"
	"sync/atomic"
)

// FixedRetryPolicy 固定次数重试
type FixedRetryPolicy struct {
	maxAttempts int
}

// NewFixedRetry 创建固定次数重试，maxAttempts 包含首次，最小为 1。
func NewFixedRetry(maxAttempts int) *FixedRetryPolicy {
	return &FixedRetryPolicy{maxAttempts: max(maxAttempts, 1)}
}

func (p *FixedRetryPolicy) MaxAttempts() int { return p.maxAttempts }

func (p *FixedRetryPolicy) ShouldRetry(ctx context.Context, attempt int, err error) bool {
	if ctx.Err() != nil || attempt >= p.maxAttempts {
		return false
	}
	return IsRetryable(err)
}

// NeverRetryPolicy 只尝试一次
type NeverRetryPolicy struct{}

// NewNeverRetry 创建永不重试策略
func NewNeverRetry() *NeverRetryPolicy { return &NeverRetryPolicy{} }

func (*NeverRetryPolicy) MaxAttempts() int { return 1 }

func (*NeverRetryPolicy) ShouldRetry(context.Context, int, error) bool { return false }

// Budget 跨调用共享的重试预算，只减不增。
// 零值表示预算为 0。
type Budget struct {
	remaining atomic.Int64
}

// NewBudget 创建初始额度为 n 的预算，负数按 0 处理。
func NewBudget(n int) *Budget {
	b := &Budget{}
	b.remaining.Store(int64(max(n, 0)))
	return b
}

// Take 额度大于 0 时扣减一次并返回 true，否则返回 false。
func (b *Budget) Take() bool {
	for {
		cur := b.remaining.Load()
		if cur <= 0 {
			return false
		}
		if b.remaining.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// Remaining 返回剩余额度
func (b *Budget) Remaining() int {
	return int(b.remaining.Load())
}

// Exhausted 额度是否已用完
func (b *Budget) Exhausted() bool {
	return b.remaining.Load() <= 0
}

// BudgetRetryPolicy 以 Budget 为上限的重试策略。
// 永久性错误与已取消的 ctx 不消耗预算。
type BudgetRetryPolicy struct {
	budget *Budget
}

// NewBudgetRetry 创建预算重试策略，budget 为 nil 时等价于不重试。
func NewBudgetRetry(budget *Budget) *BudgetRetryPolicy {
	if budget == nil {
		budget = &Budget{}
	}
	return &BudgetRetryPolicy{budget: budget}
}

// MaxAttempts 返回 0，停止时机完全由预算决定。
func (*BudgetRetryPolicy) MaxAttempts() int { return 0 }

func (p *BudgetRetryPolicy) ShouldRetry(ctx context.Context, _ int, err error) bool {
	if ctx.Err() != nil || !IsRetryable(err) {
		return false
	}
	return p.budget.Take()
}

// Budget 返回底层预算
func (p *BudgetRetryPolicy) Budget() *Budget { return p.budget }

var (
	_ RetryPolicy = (*FixedRetryPolicy)(nil)
	_ RetryPolicy = (*NeverRetryPolicy)(nil)
	_ RetryPolicy = (*BudgetRetryPolicy)(nil)
)
