package pipeline

import (
	"github.com/alitto/pond/v2"
)

// Task is a background unit of work producing a T. The value is written by
// the worker before the pond task completes and read only after Done is
// closed.
type Task[T any] struct {
	handle pond.Task
	value  T
}

// Submit schedules fn on pool.
func Submit[T any](pool pond.Pool, fn func() (T, error)) *Task[T] {
	t := &Task[T]{}
	t.handle = pool.SubmitErr(func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		t.value = v
		return nil
	})
	return t
}

// Poll reports the result without blocking. done is false while the task is
// still running.
func (t *Task[T]) Poll() (value T, done bool, err error) {
	select {
	case <-t.handle.Done():
		if err := t.handle.Wait(); err != nil {
			return value, true, err
		}
		return t.value, true, nil
	default:
		return value, false, nil
	}
}

// Wait blocks until the task finishes.
func (t *Task[T]) Wait() (T, error) {
	if err := t.handle.Wait(); err != nil {
		var zero T
		return zero, err
	}
	return t.value, nil
}
