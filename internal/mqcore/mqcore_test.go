package mqcore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/kafkamq/pkg/resilience/xretry"
)

// =============================================================================
// RunConsumeLoop
// =============================================================================

func TestRunConsumeLoop_StopLoop(t *testing.T) {
	calls := 0
	err := RunConsumeLoop(context.Background(), func(context.Context) error {
		calls++
		if calls == 3 {
			return ErrStopLoop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunConsumeLoop_BackoffResetsOnSuccess(t *testing.T) {
	var seen []int
	rec := backoffRecorder(func(attempt int) { seen = append(seen, attempt) })

	results := []error{errors.New("a"), errors.New("b"), nil, errors.New("c"), ErrStopLoop}
	i := 0
	var errs []error
	err := RunConsumeLoop(context.Background(), func(context.Context) error {
		e := results[i]
		i++
		return e
	}, WithBackoff(rec), WithOnError(func(err error) { errs = append(errs, err) }))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 1}, seen)
	assert.Len(t, errs, 3)
}

func TestRunConsumeLoop_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunConsumeLoop(ctx, func(context.Context) error {
			return errors.New("broker down")
		}, WithBackoff(xretry.NewFixedBackoff(time.Hour)))
	}()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestRunConsumeLoop_NilConsume(t *testing.T) {
	assert.ErrorIs(t, RunConsumeLoop(context.Background(), nil), ErrNilHandler)
}

type backoffRecorder func(attempt int)

func (f backoffRecorder) NextDelay(attempt int) time.Duration {
	f(attempt)
	return 0
}

// =============================================================================
// Tracer
// =============================================================================

func testSpanContext() trace.SpanContext {
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0xaa, 0x01},
		SpanID:     trace.SpanID{0xbb, 0x02},
		TraceFlags: trace.FlagsSampled,
	})
}

func TestOTelTracer_RoundTrip(t *testing.T) {
	tracer := NewOTelTracer(nil)
	sc := testSpanContext()
	headers := map[string]string{}

	tracer.Inject(trace.ContextWithSpanContext(context.Background(), sc), headers)
	require.Contains(t, headers, "traceparent")

	got := trace.SpanContextFromContext(tracer.Extract(headers))
	assert.Equal(t, sc.TraceID(), got.TraceID())
	assert.Equal(t, sc.SpanID(), got.SpanID())
	assert.True(t, got.IsRemote())
}

func TestOTelTracer_ZeroValueAndNil(t *testing.T) {
	var tracer OTelTracer
	assert.NotPanics(t, func() {
		tracer.Inject(context.Background(), nil)
		tracer.Inject(context.Background(), map[string]string{})
	})
	assert.NotNil(t, tracer.Extract(nil))
	assert.False(t, trace.SpanContextFromContext(tracer.Extract(map[string]string{})).IsValid())

	var noop NoopTracer
	h := map[string]string{}
	noop.Inject(context.Background(), h)
	assert.Empty(t, h)
	assert.NotNil(t, noop.Extract(h))
}

func TestMergeTraceContext(t *testing.T) {
	type key struct{}
	base := context.WithValue(context.Background(), key{}, "v")
	extracted := trace.ContextWithRemoteSpanContext(context.Background(), testSpanContext())

	merged := MergeTraceContext(base, extracted)
	assert.Equal(t, "v", merged.Value(key{}))
	assert.Equal(t, testSpanContext().TraceID(), trace.SpanContextFromContext(merged).TraceID())

	assert.Equal(t, base, MergeTraceContext(base, nil))
	assert.Equal(t, base, MergeTraceContext(base, context.Background()))

	//nolint:staticcheck // nil base 兜底
	assert.NotNil(t, MergeTraceContext(nil, extracted))

	own := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x01},
	}))
	assert.Equal(t, trace.TraceID{0x01}, trace.SpanContextFromContext(MergeTraceContext(own, extracted)).TraceID())
}
