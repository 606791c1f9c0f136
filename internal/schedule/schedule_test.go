package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func at(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }

func TestEveryHoursMatchesCronSteps(t *testing.T) {
	six := EveryHours{N: 6}
	assert.Equal(t, at(6, 0), six.Next(at(0, 0)))
	assert.Equal(t, at(6, 0), six.Next(at(5, 59)))
	assert.Equal(t, at(12, 0), six.Next(at(6, 0)))
	assert.Equal(t, at(0, 0).Add(24*time.Hour), six.Next(at(18, 30)))

	five := EveryHours{N: 5}
	assert.Equal(t, at(0, 0).Add(24*time.Hour), five.Next(at(20, 1)), "*/5 restarts at midnight")
	assert.Equal(t, at(1, 0), EveryHours{}.Next(at(0, 15)))
}

func TestEveryInterval(t *testing.T) {
	assert.Equal(t, at(0, 5), Every{Interval: 5 * time.Minute}.Next(at(0, 0)))
}

func TestSkipQuietHours(t *testing.T) {
	trig := SkipQuietHours(EveryHours{N: 1}, []int{0, 1, 2, 3, 4, 5})
	assert.Equal(t, at(6, 0), trig.Next(at(23, 10).Add(-24*time.Hour)))
	assert.Equal(t, at(7, 0), trig.Next(at(6, 0)))
	assert.Equal(t, EveryHours{N: 2}, SkipQuietHours(EveryHours{N: 2}, nil))
}

func TestUpcoming(t *testing.T) {
	got := Upcoming(EveryHours{N: 8}, at(1, 0), 3)
	assert.Equal(t, []time.Time{at(8, 0), at(16, 0), at(0, 0).Add(24 * time.Hour)}, got)
}

func TestSchedulerRunsJobsUntilCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	var fast, failing atomic.Int32
	s := New(
		Job{Name: "fast", Trigger: Every{Interval: 5 * time.Millisecond}, RunOnStart: true, Run: func(ctx context.Context) error {
			fast.Add(1)
			return nil
		}},
		Job{Name: "failing", Trigger: Every{Interval: 5 * time.Millisecond}, Run: func(ctx context.Context) error {
			failing.Add(1)
			if failing.Load()%2 == 0 {
				panic("boom")
			}
			return errors.New("transient")
		}},
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return fast.Load() >= 3 && failing.Load() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerGraceCancelsStuckRuns(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	s := New(Job{Name: "stuck", Trigger: Every{Interval: time.Hour}, RunOnStart: true, Run: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}})
	s.Grace = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	<-started
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("grace period did not cancel in-flight run")
	}
}
