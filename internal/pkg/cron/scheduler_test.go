package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "job ran after Stop")
}

func TestScheduler_StopIsIdempotentAndBlocksRestart(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Stop()
	s.Stop()
	s.Start()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}

func TestScheduler_ParentCancelStopsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx)
	var runs atomic.Int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("failing jobs keep their schedule")
	})
	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
	stopped := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_JobAddedAfterStartRuns(t *testing.T) {
	s := NewScheduler(context.Background())
	s.Start()
	defer s.Stop()

	done := make(chan struct{})
	s.AddJob("late", time.Hour, func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("late job did not run")
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())
	var a, b atomic.Int32
	s.AddJob("a", time.Hour, func(ctx context.Context) error { a.Add(1); return nil })
	s.AddJob("b", time.Hour, func(ctx context.Context) error { b.Add(1); return errors.New("boom") })

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), a.Load())
	assert.Equal(t, int32(1), b.Load())
}
