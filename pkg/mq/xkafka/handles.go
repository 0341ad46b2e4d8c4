package xkafka

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

//go:generate mockgen -source=handles.go -destination=mock_handles_test.go -package=xkafka

// ProducerHandle *kafka.Producer 中被本包使用的部分
type ProducerHandle interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Purge(flags int) error
	Len() int
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	Close()
}

// ConsumerHandle *kafka.Consumer 中被本包使用的部分
type ConsumerHandle interface {
	Assign(partitions []kafka.TopicPartition) error
	IncrementalAssign(partitions []kafka.TopicPartition) error
	IncrementalUnassign(partitions []kafka.TopicPartition) error
	Assignment() ([]kafka.TopicPartition, error)
	SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error
	Subscription() ([]string, error)
	Unsubscribe() error
	Pause(partitions []kafka.TopicPartition) error
	Resume(partitions []kafka.TopicPartition) error
	Seek(partition kafka.TopicPartition, ignoredTimeoutMs int) error
	Position(partitions []kafka.TopicPartition) ([]kafka.TopicPartition, error)
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	StoreMessage(m *kafka.Message) ([]kafka.TopicPartition, error)
	StoreOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error)
	Commit() ([]kafka.TopicPartition, error)
	CommitMessage(m *kafka.Message) ([]kafka.TopicPartition, error)
	CommitOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error)
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	Close() error
}

// AdminHandle *kafka.AdminClient 中被本包使用的部分
type AdminHandle interface {
	CreateTopics(ctx context.Context, topics []kafka.TopicSpecification, options ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error)
	ListConsumerGroups(ctx context.Context, options ...kafka.ListConsumerGroupsAdminOption) (kafka.ListConsumerGroupsResult, error)
	DescribeConsumerGroups(ctx context.Context, groups []string, options ...kafka.DescribeConsumerGroupsAdminOption) (kafka.DescribeConsumerGroupsResult, error)
	ListConsumerGroupOffsets(ctx context.Context, groupsPartitions []kafka.ConsumerGroupTopicPartitions, options ...kafka.ListConsumerGroupOffsetsAdminOption) (kafka.ListConsumerGroupOffsetsResult, error)
	AlterConsumerGroupOffsets(ctx context.Context, groupsPartitions []kafka.ConsumerGroupTopicPartitions, options ...kafka.AlterConsumerGroupOffsetsAdminOption) (kafka.AlterConsumerGroupOffsetsResult, error)
	ListOffsets(ctx context.Context, topicPartitionOffsets map[kafka.TopicPartition]kafka.OffsetSpec, options ...kafka.ListOffsetsAdminOption) (kafka.ListOffsetsResult, error)
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	Close()
}

var (
	_ ProducerHandle = (*kafka.Producer)(nil)
	_ ConsumerHandle = (*kafka.Consumer)(nil)
	_ AdminHandle    = (*kafka.AdminClient)(nil)
)

// Factory 创建底层句柄，测试中替换为 mock。
type Factory interface {
	NewProducer(conf *kafka.ConfigMap) (ProducerHandle, error)
	NewConsumer(conf *kafka.ConfigMap) (ConsumerHandle, error)
	NewAdminClient(conf *kafka.ConfigMap) (AdminHandle, error)
	// NewAdminFromProducer 复用生产者的连接创建 admin 客户端
	NewAdminFromProducer(p ProducerHandle) (AdminHandle, error)
}

// DefaultFactory 直接调用 confluent-kafka-go
type DefaultFactory struct{}

func (DefaultFactory) NewProducer(conf *kafka.ConfigMap) (ProducerHandle, error) {
	p, err := kafka.NewProducer(conf)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (DefaultFactory) NewConsumer(conf *kafka.ConfigMap) (ConsumerHandle, error) {
	c, err := kafka.NewConsumer(conf)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (DefaultFactory) NewAdminClient(conf *kafka.ConfigMap) (AdminHandle, error) {
	a, err := kafka.NewAdminClient(conf)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (DefaultFactory) NewAdminFromProducer(p ProducerHandle) (AdminHandle, error) {
	kp, ok := p.(*kafka.Producer)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedHandle, p)
	}
	a, err := kafka.NewAdminClientFromProducer(kp)
	if err != nil {
		return nil, err
	}
	return a, nil
}

var _ Factory = DefaultFactory{}

// metadataReader 三种句柄共有的元数据查询
type metadataReader interface {
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
}

// checkReady 以元数据请求确认 broker 可达，相当于客户端的 ready 事件。
// 失败时调用 release 释放句柄；ctx 先结束时，release 延后到进行中的请求返回之后。
// GetMetadata 不感知 ctx，以 ctx 截止时间作为其超时。
func checkReady(ctx context.Context, h metadataReader, fallback time.Duration, release func()) error {
	timeout := fallback
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	if timeout <= 0 {
		release()
		return context.DeadlineExceeded
	}

	done := make(chan error, 1)
	go func() {
		_, err := h.GetMetadata(nil, false, int(timeout.Milliseconds()))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			release()
			return fmt.Errorf("xkafka: metadata check: %w", err)
		}
		return nil
	case <-ctx.Done():
		go func() {
			<-done
			release()
		}()
		return ctx.Err()
	}
}

// partitionsOf 查询 topic 的分区号
func partitionsOf(h metadataReader, topic string, timeoutMs int) ([]int32, error) {
	md, err := h.GetMetadata(&topic, false, timeoutMs)
	if err != nil {
		return nil, fmt.Errorf("xkafka: metadata %s: %w", topic, err)
	}
	tm, ok := md.Topics[topic]
	if !ok {
		return nil, fmt.Errorf("xkafka: metadata %s: %w", topic, kafka.NewError(kafka.ErrUnknownTopicOrPart, "topic not in metadata", false))
	}
	if tm.Error.Code() != kafka.ErrNoError {
		return nil, fmt.Errorf("xkafka: metadata %s: %w", topic, tm.Error)
	}
	ids := make([]int32, 0, len(tm.Partitions))
	for _, p := range tm.Partitions {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
