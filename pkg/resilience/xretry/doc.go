// Package xretry 提供连接重连所用的重试策略与退避策略。
//
// 策略拆分为两个接口：
//   - RetryPolicy：失败后是否继续
//   - BackoffPolicy：两次尝试之间等待多久
//
// Retryer 把两者组合起来，底层交给 [avast/retry-go/v5] 执行。
//
// # 重连预算
//
// Budget 是跨多次 Do 调用共享的递减计数器，只扣减不回补。
// BudgetPolicy 在每次可重试的失败后从 Budget 扣减一次，预算耗尽即停止：
//
//	budget := xretry.NewBudget(3)
//	r := xretry.NewRetryer(
//	    xretry.WithRetryPolicy(xretry.NewBudgetRetry(budget)),
//	    xretry.WithBackoffPolicy(xretry.NewExponentialBackoff()),
//	)
//	h, err := xretry.DoWithResult(ctx, r, open)
//
// 3 的预算意味着最多 4 次尝试（首次 + 3 次重试）。
//
// # 错误分类
//
//   - NewPermanentError(err)：不重试，也不消耗预算
//   - NewTemporaryError(err)：可重试
//   - 其他错误默认可重试
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry
