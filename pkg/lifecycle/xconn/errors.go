package xconn

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInProgress 已有连接过程在进行。只由 Start 返回，Connect 会直接加入等待。
	ErrAlreadyInProgress = errors.New("xconn: connect already in progress")

	// ErrHandleCreation 打开句柄失败且不再重试（未开启重连或错误不可重试）。
	ErrHandleCreation = errors.New("xconn: handle creation failed")

	// ErrRetriesExhausted 重连预算已耗尽。
	ErrRetriesExhausted = errors.New("xconn: reconnect retries exhausted")

	// ErrConnectTimeout 单次打开超过 connect timeout。
	ErrConnectTimeout = errors.New("xconn: connect timeout")

	// ErrClosing 连接过程被 Close 中止，或在关闭期间请求连接。
	ErrClosing = errors.New("xconn: controller is closing")

	// ErrClosed 会话已被 Close 结束，EnsureSession 不会重新打开。
	ErrClosed = errors.New("xconn: controller is closed")

	// ErrNotConnected 当前没有可用句柄。
	ErrNotConnected = errors.New("xconn: not connected")

	// ErrNilStrategy 构造时未提供 Strategy。
	ErrNilStrategy = errors.New("xconn: nil strategy")
)

// ConnectError 一次连接过程的最终失败。
//
// Kind 为上面的分类哨兵之一，Err 为最后一次打开的原因；
// errors.Is 对两者都成立。
type ConnectError struct {
	Name     string
	Kind     error
	Attempts int
	Err      error
}

func (e *ConnectError) Error() string {
	msg := fmt.Sprintf("%v (%s, %d attempt(s))", e.Kind, e.Name, e.Attempts)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnectError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsConnectError 判断 err 是否为连接失败，用于与句柄返回的业务错误区分。
func IsConnectError(err error) bool {
	var ce *ConnectError
	return errors.As(err, &ce)
}
