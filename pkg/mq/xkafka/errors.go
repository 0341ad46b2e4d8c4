package xkafka

import (
	"errors"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/internal/mqcore"
)

// 与其他 MQ 包共享的错误
var (
	ErrNilClient  = mqcore.ErrNilClient
	ErrNilMessage = mqcore.ErrNilMessage
	ErrNilHandler = mqcore.ErrNilHandler
	ErrClosed     = mqcore.ErrClosed
)

var (
	// ErrNilConfig 配置为 nil
	ErrNilConfig = errors.New("xkafka: nil config")

	// ErrInvalidArgument 参数校验失败，在任何 I/O 之前返回。
	ErrInvalidArgument = errors.New("xkafka: invalid argument")

	// ErrEmptyTopics topic 列表为空
	ErrEmptyTopics = errors.New("xkafka: empty topics")

	// ErrFlushTimeout Flush 超时后仍有消息未发送
	ErrFlushTimeout = errors.New("xkafka: flush timeout")

	// ErrUnsupportedHandle Factory 无法处理给定的句柄实现
	ErrUnsupportedHandle = errors.New("xkafka: unsupported handle")

	// ErrAlreadyExists 注册表中已存在同名客户端
	ErrAlreadyExists = errors.New("xkafka: client already exists")

	// ErrNotFound 注册表中不存在该客户端
	ErrNotFound = errors.New("xkafka: client not found")
)

// kafkaCode 提取 kafka.Error 的错误码，非 kafka 错误返回 ErrNoError。
func kafkaCode(err error) kafka.ErrorCode {
	var ke kafka.Error
	if errors.As(err, &ke) {
		return ke.Code()
	}
	return kafka.ErrNoError
}

// IsOffsetOutOfRange 判断错误是否为 offset 越界
func IsOffsetOutOfRange(err error) bool {
	return kafkaCode(err) == kafka.ErrOffsetOutOfRange
}

func isTimeout(err error) bool {
	return kafkaCode(err) == kafka.ErrTimedOut
}

// isNoOffset 没有可提交的 offset，关闭时可忽略。
func isNoOffset(err error) bool {
	return kafkaCode(err) == kafka.ErrNoOffset
}
