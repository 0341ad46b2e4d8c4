package xkafka

import (
	"context"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
)

func newTestOffset(t *testing.T) (*OffsetClient, *MockFactory, *MockAdminHandle) {
	t.Helper()
	ctrl := gomock.NewController(t)
	factory := NewMockFactory(ctrl)
	handle := NewMockAdminHandle(ctrl)
	c, err := NewOffsetClient(testConfig(), WithFactory(factory))
	require.NoError(t, err)
	return c, factory, handle
}

func connectAdmin(t *testing.T, c interface {
	Connect(context.Context) error
	Close(context.Context, bool) error
}, factory *MockFactory, handle *MockAdminHandle) {
	t.Helper()
	factory.EXPECT().NewAdminClient(gomock.Any()).Return(handle, nil)
	expectAdminReady(handle)
	require.NoError(t, c.Connect(context.Background()))
	t.Cleanup(func() {
		handle.EXPECT().Close().MaxTimes(1)
		_ = c.Close(context.Background(), false)
	})
}

func TestNewOffsetClient_NilConfig(t *testing.T) {
	c, err := NewOffsetClient(nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNilConfig)
}

// =============================================================================
// 最新/最早 offset
// =============================================================================

func TestOffsetClient_FetchEdgeValidation(t *testing.T) {
	c, _, _ := newTestOffset(t)

	for _, topics := range [][]string{nil, {" "}, {"a", " "}} {
		_, err := c.FetchLatestOffsets(context.Background(), topics...)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%q", topics)
		_, err = c.FetchEarliestOffsets(context.Background(), topics...)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%q", topics)
	}
	assert.Equal(t, xconn.PhaseIdle, c.Phase())
}

func TestOffsetClient_FetchLatestOffsets(t *testing.T) {
	c, factory, handle := newTestOffset(t)
	connectAdmin(t, c, factory, handle)

	handle.EXPECT().GetMetadata(gomock.Any(), false, gomock.Any()).Return(metadata("orders", 0, 1), nil)
	handle.EXPECT().ListOffsets(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, specs map[kafka.TopicPartition]kafka.OffsetSpec, _ ...kafka.ListOffsetsAdminOption) (kafka.ListOffsetsResult, error) {
			require.Len(t, specs, 2)
			res := kafka.ListOffsetsResult{ResultInfos: make(map[kafka.TopicPartition]kafka.ListOffsetsResultInfo)}
			for tp, spec := range specs {
				assert.Equal(t, kafka.LatestOffsetSpec, spec)
				res.ResultInfos[tp] = kafka.ListOffsetsResultInfo{Offset: kafka.Offset(100 + tp.Partition)}
			}
			return res, nil
		})

	got, err := c.FetchLatestOffsets(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, Offsets{"orders": {0: 100, 1: 101}}, got)
}

func TestOffsetClient_FetchPartialFailure(t *testing.T) {
	c, factory, handle := newTestOffset(t)
	connectAdmin(t, c, factory, handle)

	handle.EXPECT().GetMetadata(gomock.Any(), false, gomock.Any()).Return(metadata("orders", 0, 1), nil)
	handle.EXPECT().ListOffsets(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, specs map[kafka.TopicPartition]kafka.OffsetSpec, _ ...kafka.ListOffsetsAdminOption) (kafka.ListOffsetsResult, error) {
			res := kafka.ListOffsetsResult{ResultInfos: make(map[kafka.TopicPartition]kafka.ListOffsetsResultInfo)}
			for tp := range specs {
				info := kafka.ListOffsetsResultInfo{Offset: 5}
				if tp.Partition == 1 {
					info.Error = kafka.NewError(kafka.ErrNotLeaderForPartition, "not leader", false)
				}
				res.ResultInfos[tp] = info
			}
			return res, nil
		})

	got, err := c.FetchEarliestOffsets(context.Background(), "orders")
	require.Error(t, err)
	assert.Equal(t, Offsets{"orders": {0: 5}}, got)
}

// =============================================================================
// Fetch
// =============================================================================

func TestOffsetClient_Fetch(t *testing.T) {
	c, factory, handle := newTestOffset(t)

	_, err := c.Fetch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.Fetch(context.Background(), []OffsetRequest{{Topic: "orders", Partition: -1}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	connectAdmin(t, c, factory, handle)
	handle.EXPECT().ListOffsets(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, specs map[kafka.TopicPartition]kafka.OffsetSpec, _ ...kafka.ListOffsetsAdminOption) (kafka.ListOffsetsResult, error) {
			res := kafka.ListOffsetsResult{ResultInfos: make(map[kafka.TopicPartition]kafka.ListOffsetsResultInfo)}
			for tp, spec := range specs {
				assert.Equal(t, kafka.EarliestOffsetSpec, spec)
				res.ResultInfos[tp] = kafka.ListOffsetsResultInfo{Offset: 3}
			}
			return res, nil
		})

	got, err := c.Fetch(context.Background(), []OffsetRequest{{Topic: "orders", Partition: 2, Timestamp: TimestampEarliest}})
	require.NoError(t, err)
	assert.Equal(t, []TopicPartition{{Topic: "orders", Partition: 2, Offset: 3}}, got)
}

func TestOffsetSpec(t *testing.T) {
	assert.Equal(t, kafka.LatestOffsetSpec, offsetSpec(TimestampLatest))
	assert.Equal(t, kafka.EarliestOffsetSpec, offsetSpec(TimestampEarliest))
	assert.Equal(t, kafka.NewOffsetSpecForTimestamp(1700000000000), offsetSpec(1700000000000))
}

// =============================================================================
// 消费组 offset
// =============================================================================

func TestOffsetClient_CommitValidation(t *testing.T) {
	c, _, _ := newTestOffset(t)
	offsets := []TopicPartition{{Topic: "orders", Partition: 0, Offset: 1}}

	_, err := c.Commit(context.Background(), " ", offsets)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.Commit(context.Background(), "g", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.FetchCommits(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, xconn.PhaseIdle, c.Phase())
}

func TestOffsetClient_Commit(t *testing.T) {
	c, factory, handle := newTestOffset(t)
	connectAdmin(t, c, factory, handle)

	handle.EXPECT().AlterConsumerGroupOffsets(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, groups []kafka.ConsumerGroupTopicPartitions, _ ...kafka.AlterConsumerGroupOffsetsAdminOption) (kafka.AlterConsumerGroupOffsetsResult, error) {
			require.Len(t, groups, 1)
			assert.Equal(t, "billing", groups[0].Group)
			return kafka.AlterConsumerGroupOffsetsResult{ConsumerGroupsTopicPartitions: groups}, nil
		})

	offsets := []TopicPartition{{Topic: "orders", Partition: 0, Offset: 9}}
	got, err := c.Commit(context.Background(), "billing", offsets)
	require.NoError(t, err)
	assert.Equal(t, offsets, got)
}

func TestOffsetClient_FetchCommits(t *testing.T) {
	c, factory, handle := newTestOffset(t)
	connectAdmin(t, c, factory, handle)

	topic := "orders"
	handle.EXPECT().ListConsumerGroupOffsets(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, groups []kafka.ConsumerGroupTopicPartitions, _ ...kafka.ListConsumerGroupOffsetsAdminOption) (kafka.ListConsumerGroupOffsetsResult, error) {
			require.Len(t, groups, 1)
			assert.Nil(t, groups[0].Partitions)
			return kafka.ListConsumerGroupOffsetsResult{ConsumerGroupsTopicPartitions: []kafka.ConsumerGroupTopicPartitions{{
				Group: "billing",
				Partitions: []kafka.TopicPartition{
					{Topic: &topic, Partition: 0, Offset: 4},
					{Topic: &topic, Partition: 1, Error: kafka.NewError(kafka.ErrUnknownTopicOrPart, "gone", false)},
				},
			}}}, nil
		})

	got, err := c.FetchCommits(context.Background(), "billing", nil)
	require.Error(t, err)
	assert.Equal(t, []TopicPartition{{Topic: "orders", Partition: 0, Offset: 4}}, got)
}
