package xkafka

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// TopicPartition 分区及起始 offset。
// Offset 可为具体位置或 kafka.OffsetStored、kafka.OffsetBeginning、kafka.OffsetEnd。
type TopicPartition struct {
	Topic     string
	Partition int32
	Offset    kafka.Offset
}

func (tp TopicPartition) raw() kafka.TopicPartition {
	topic := tp.Topic
	return kafka.TopicPartition{Topic: &topic, Partition: tp.Partition, Offset: tp.Offset}
}

func fromKafka(tp kafka.TopicPartition) TopicPartition {
	out := TopicPartition{Partition: tp.Partition, Offset: tp.Offset}
	if tp.Topic != nil {
		out.Topic = *tp.Topic
	}
	return out
}

func toKafka(tps []TopicPartition) []kafka.TopicPartition {
	out := make([]kafka.TopicPartition, 0, len(tps))
	for _, tp := range tps {
		out = append(out, tp.raw())
	}
	return out
}

func fromKafkaList(tps []kafka.TopicPartition) []TopicPartition {
	out := make([]TopicPartition, 0, len(tps))
	for _, tp := range tps {
		out = append(out, fromKafka(tp))
	}
	return out
}

// trimTopics 去掉空白项。strict 为 true 时任何空白项都视为非法。
func trimTopics(topics []string, strict bool) ([]string, error) {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			if strict {
				return nil, fmt.Errorf("%w: blank topic in %q", ErrInvalidArgument, topics)
			}
			continue
		}
		out = append(out, t)
	}
	if strict && len(out) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, ErrEmptyTopics)
	}
	return out, nil
}

func validatePartitions(tps []TopicPartition) error {
	for _, tp := range tps {
		if strings.TrimSpace(tp.Topic) == "" {
			return fmt.Errorf("%w: blank topic", ErrInvalidArgument)
		}
		if tp.Partition < 0 {
			return fmt.Errorf("%w: negative partition %d for %s", ErrInvalidArgument, tp.Partition, tp.Topic)
		}
	}
	return nil
}

// assignment 按分区分配的消费者当前持有的分区，重连时据此重新 Assign。
type assignment struct {
	mu    sync.Mutex
	parts []TopicPartition
}

func newAssignment(tps []TopicPartition) *assignment {
	return &assignment{parts: slices.Clone(tps)}
}

func (a *assignment) snapshot() []TopicPartition {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.parts)
}

// add 只追加尚未持有的分区，返回实际新增的部分。
func (a *assignment) add(tps []TopicPartition) []TopicPartition {
	a.mu.Lock()
	defer a.mu.Unlock()
	var added []TopicPartition
	for _, tp := range tps {
		if a.indexLocked(tp.Topic, tp.Partition) < 0 {
			a.parts = append(a.parts, tp)
			added = append(added, tp)
		}
	}
	return added
}

// remove 移除给定 topic 的全部分区并返回它们。
func (a *assignment) remove(topics []string) []TopicPartition {
	a.mu.Lock()
	defer a.mu.Unlock()
	var removed []TopicPartition
	a.parts = slices.DeleteFunc(a.parts, func(tp TopicPartition) bool {
		if slices.Contains(topics, tp.Topic) {
			removed = append(removed, tp)
			return true
		}
		return false
	})
	return removed
}

// drop 移除指定分区
func (a *assignment) drop(tps []TopicPartition) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, tp := range tps {
		if i := a.indexLocked(tp.Topic, tp.Partition); i >= 0 {
			a.parts = slices.Delete(a.parts, i, i+1)
		}
	}
}

func (a *assignment) setOffset(topic string, partition int32, offset kafka.Offset) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if i := a.indexLocked(topic, partition); i >= 0 {
		a.parts[i].Offset = offset
	}
}

func (a *assignment) ofTopics(topics []string) []TopicPartition {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []TopicPartition
	for _, tp := range a.parts {
		if slices.Contains(topics, tp.Topic) {
			out = append(out, tp)
		}
	}
	return out
}

func (a *assignment) indexLocked(topic string, partition int32) int {
	return slices.IndexFunc(a.parts, func(tp TopicPartition) bool {
		return tp.Topic == topic && tp.Partition == partition
	})
}

// subscription 消费组订阅的 topic 集合
type subscription struct {
	mu     sync.Mutex
	topics []string
}

func newSubscription(topics []string) *subscription {
	return &subscription{topics: slices.Clone(topics)}
}

func (s *subscription) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.topics)
}

// update 以 f 修改集合，返回修改后的快照。
func (s *subscription) update(f func([]string) []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = f(s.topics)
	return slices.Clone(s.topics)
}
