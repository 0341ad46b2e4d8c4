package xretry

import "errors"

// RetryableError 由错误自身声明是否可重试。
type RetryableError interface {
	error
	Retryable() bool
}

// PermanentError 永久性错误，不重试。
type PermanentError struct {
	Err error
}

// NewPermanentError 包装为永久性错误
func NewPermanentError(err error) *PermanentError {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error { return e.Err }

func (e *PermanentError) Retryable() bool { return false }

// TemporaryError 临时性错误，应当重试。
type TemporaryError struct {
	Err error
}

// NewTemporaryError 包装为临时性错误
func NewTemporaryError(err error) *TemporaryError {
	return &TemporaryError{Err: err}
}

func (e *TemporaryError) Error() string {
	if e.Err == nil {
		return "temporary error"
	}
	return e.Err.Error()
}

func (e *TemporaryError) Unwrap() error { return e.Err }

func (e *TemporaryError) Retryable() bool { return true }

// IsRetryable 判断错误是否可重试。
// nil 不需要重试；实现 RetryableError 的按其声明；其余一律视为可重试。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var re RetryableError
	if errors.As(err, &re) {
		return re.Retryable()
	}
	return true
}

// IsPermanent 判断错误是否为永久性错误
func IsPermanent(err error) bool {
	return err != nil && !IsRetryable(err)
}
