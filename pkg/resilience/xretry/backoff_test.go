package xretry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff(t *testing.T) {
	b := NewExponentialBackoff(
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithJitter(0),
	)
	assert.Equal(t, 100*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 200*time.Millisecond, b.NextDelay(2))
	assert.Equal(t, 400*time.Millisecond, b.NextDelay(3))
	assert.Equal(t, time.Second, b.NextDelay(10))
	assert.Equal(t, time.Second, b.NextDelay(100000), "溢出后仍受上限约束")
	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	b := NewExponentialBackoff(
		WithInitialDelay(time.Second),
		WithMaxDelay(time.Minute),
		WithJitter(0.2),
	)
	for range 50 {
		d := b.NextDelay(1)
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}

func TestExponentialBackoff_InvalidOptionsIgnored(t *testing.T) {
	b := NewExponentialBackoff(
		WithInitialDelay(-1),
		WithMaxDelay(0),
		WithMultiplier(0.5),
		WithJitter(3),
	)
	assert.Equal(t, 200*time.Millisecond, b.initialDelay)
	assert.Equal(t, 30*time.Second, b.maxDelay)
	assert.InDelta(t, 2.0, b.multiplier, 1e-9)
	assert.InDelta(t, 1.0, b.jitter, 1e-9)
}

func TestFixedAndNoBackoff(t *testing.T) {
	assert.Equal(t, 3*time.Second, NewFixedBackoff(3*time.Second).NextDelay(7))
	assert.Equal(t, time.Duration(0), NewFixedBackoff(-time.Second).NextDelay(1))
	assert.Equal(t, time.Duration(0), NewNoBackoff().NextDelay(1))
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("x"), true},
		{"permanent", NewPermanentError(errors.New("x")), false},
		{"temporary", NewTemporaryError(errors.New("x")), true},
		{"wrapped permanent", errors.Join(errors.New("ctx"), NewPermanentError(errors.New("x"))), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			if tt.err != nil {
				assert.Equal(t, !tt.retryable, IsPermanent(tt.err))
			}
		})
	}
}
