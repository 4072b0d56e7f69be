package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingExpirer struct {
	calls atomic.Int64
	err   error
}

func (e *countingExpirer) ExpireStalePending(_ context.Context) (int64, error) {
	e.calls.Add(1)
	if e.err != nil {
		return 0, e.err
	}
	return 1, nil
}

func TestSweeper_StartStop(t *testing.T) {
	t.Parallel()

	expirer := &countingExpirer{}
	sweeper := NewSweeper(expirer, 10*time.Millisecond, nopLogger{})

	sweeper.Start()
	time.Sleep(60 * time.Millisecond)
	sweeper.Stop()

	calls := expirer.calls.Load()
	assert.Greater(t, calls, int64(0), "sweeper must have swept at least once")

	// После Stop новые циклы не запускаются
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, expirer.calls.Load())
}

func TestSweeper_KeepsRunningAfterError(t *testing.T) {
	t.Parallel()

	expirer := &countingExpirer{err: errors.New("db down")}
	sweeper := NewSweeper(expirer, 10*time.Millisecond, nopLogger{})

	sweeper.Start()
	time.Sleep(60 * time.Millisecond)
	sweeper.Stop()

	assert.Greater(t, expirer.calls.Load(), int64(1), "errors must not stop the loop")
}
