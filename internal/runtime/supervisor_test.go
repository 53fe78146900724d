package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_AllWorkersStart(t *testing.T) {
	s := NewSupervisor()

	var started [3]atomic.Bool
	for i := 0; i < 3; i++ {
		idx := i
		s.Add("worker", func(ctx context.Context) error {
			started[idx].Store(true)
			<-ctx.Done()
			return nil
		}, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		assert.True(t, started[i].Load(), "worker %d should have started", i)
	}

	cancel()
	_ = s.Wait(ctx)
}

func TestSupervisor_ShutdownReverseOrder(t *testing.T) {
	s := NewSupervisor()

	var mu sync.Mutex
	var shutdownOrder []int

	for i := 0; i < 3; i++ {
		idx := i
		s.Add("worker", func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}, func() error {
			mu.Lock()
			shutdownOrder = append(shutdownOrder, idx)
			mu.Unlock()
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(50 * time.Millisecond)
	cancel()
	_ = s.Wait(ctx)

	assert.Equal(t, []int{2, 1, 0}, shutdownOrder)
}

func TestSupervisor_ErrorPropagation(t *testing.T) {
	s := NewSupervisor()
	expectedErr := errors.New("worker failed")

	s.Add("failing-worker", func(ctx context.Context) error {
		return expectedErr
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.Equal(t, expectedErr, s.Wait(ctx))
}

func TestSupervisor_OnlyFirstErrorReturned(t *testing.T) {
	s := NewSupervisor()

	firstErr := errors.New("first error")
	secondErr := errors.New("second error")

	var barrier sync.WaitGroup
	barrier.Add(1)

	s.Add("first-worker", func(ctx context.Context) error {
		barrier.Done()
		return firstErr
	}, nil)
	s.Add("second-worker", func(ctx context.Context) error {
		barrier.Wait()
		time.Sleep(10 * time.Millisecond)
		return secondErr
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(100 * time.Millisecond)
	cancel()

	assert.Equal(t, firstErr, s.Wait(ctx))
}

func TestSupervisor_CloseErrorNotReturned(t *testing.T) {
	s := NewSupervisor()

	s.Add("worker", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}, func() error {
		return errors.New("close error")
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.NoError(t, s.Wait(ctx))
}

func TestSupervisor_NilCloseFunc(t *testing.T) {
	s := NewSupervisor()

	s.Add("worker", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(50 * time.Millisecond)
	cancel()

	require.NotPanics(t, func() {
		_ = s.Wait(ctx)
	})
}

func TestSupervisor_Empty(t *testing.T) {
	s := NewSupervisor()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.NoError(t, s.Wait(ctx))
}

func TestSupervisor_WorkersRunConcurrently(t *testing.T) {
	s := NewSupervisor()

	var runningCount atomic.Int32
	var maxConcurrent atomic.Int32

	for i := 0; i < 5; i++ {
		s.Add("worker", func(ctx context.Context) error {
			count := runningCount.Add(1)
			for {
				current := maxConcurrent.Load()
				if count <= current || maxConcurrent.CompareAndSwap(current, count) {
					break
				}
			}
			time.Sleep(100 * time.Millisecond)
			runningCount.Add(-1)
			<-ctx.Done()
			return nil
		}, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	time.Sleep(150 * time.Millisecond)
	cancel()
	_ = s.Wait(ctx)

	assert.Equal(t, int32(5), maxConcurrent.Load())
}
