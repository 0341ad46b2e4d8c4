// Package xconn 管理单个底层连接句柄的生命周期。
//
// Controller[H] 是一个由互斥锁保护的状态机：
//
//	Idle ──Connect──▶ Connecting ──ok──▶ Connected ──Close──▶ Closing ──▶ Closed
//	  ▲                   │                                               │
//	  └──────fail─────────┘◀─────────────────Connect───────────────────────┘
//
// 句柄只在 Connected 时存在。打开失败回到 Idle；若开启自动重连且预算未耗尽，
// 扣减一次预算、按退避等待后再次打开。预算在构造时设定，成功连接不会回补，
// 因此 N 次预算意味着一次连接过程最多 N+1 次打开。
//
// 并发的 Connect / EnsureConnected 共享同一个进行中的连接过程，不会重复打开。
// 调用方等待到连接过程最终落定（成功、预算耗尽、未开启重连、或被 Close 中止）；
// 取消自己的 ctx 只会停止自己的等待，不会中止共享过程。
//
// Reconnect 在 Connected 阶段释放旧句柄、按延迟重新打开，期间阶段为 Connecting，
// 并发调用者加入同一过程。每次 Close 结束一个会话（Session 加一）；
// 需要在显式关闭后停止的长期循环用 EnsureSession 代替 EnsureConnected。
//
// 连接失败以 *ConnectError 返回，可用 errors.Is 匹配 ErrHandleCreation、
// ErrRetriesExhausted、ErrConnectTimeout、ErrClosing，也可继续匹配底层原因；
// 句柄上的业务错误不经过 Controller，两者用 IsConnectError 区分。
package xconn
