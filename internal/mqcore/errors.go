package mqcore

import "errors"

var (
	// ErrNilClient 底层客户端为 nil
	ErrNilClient = errors.New("mq: nil client")
	// ErrNilMessage 消息为 nil
	ErrNilMessage = errors.New("mq: nil message")
	// ErrNilHandler 处理函数为 nil
	ErrNilHandler = errors.New("mq: nil handler")
	// ErrClosed 客户端已关闭
	ErrClosed = errors.New("mq: client closed")
	// ErrStopLoop 由 ConsumeFunc 返回，正常结束消费循环。
	ErrStopLoop = errors.New("mq: stop consume loop")
)
