package ppu

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrPoisoned is returned by every acquisition after a holder of the store
// panicked. The frame contents can no longer be trusted and there is no way
// to clear the condition.
var ErrPoisoned = errors.New("frame store poisoned")

// ErrAcquireTimeout is returned when the context ends before the store could
// be acquired. The context error is wrapped alongside it.
var ErrAcquireTimeout = errors.New("frame store acquire timed out")

// FrameStore is the LCD frame shared between the emulation core, which is
// the only writer, and the display adapter. The frame is only reachable from
// inside With() or WithContext() and only one caller is inside at a time.
//
// The lock is a weighted semaphore of size one rather than a sync.Mutex so
// that waiting for it can be abandoned when a context ends.
type FrameStore struct {
	sem      *semaphore.Weighted
	frame    Frame
	poisoned atomic.Bool
}

// NewFrameStore allocates a zeroed (all black) frame.
func NewFrameStore() *FrameStore {
	return &FrameStore{sem: semaphore.NewWeighted(1)}
}

// With waits for exclusive access to the frame and calls fn with it. The
// frame pointer must not be retained after fn returns.
func (store *FrameStore) With(fn func(frame *Frame) error) error {
	return store.WithContext(context.Background(), fn)
}

// WithContext is like With but gives up waiting when ctx is done.
//
// If fn panics the panic is recovered, the store is marked as poisoned and
// the error returned to the panicking caller wraps ErrPoisoned.
func (store *FrameStore) WithContext(ctx context.Context, fn func(frame *Frame) error) (err error) {
	// take the lock without looking at ctx if it is free
	if !store.sem.TryAcquire(1) {
		if err := store.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("%w: %w", ErrAcquireTimeout, err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			store.poisoned.Store(true)
			err = fmt.Errorf("%w: holder panicked: %v", ErrPoisoned, r)
		}
		store.sem.Release(1)
	}()

	if store.poisoned.Load() {
		return ErrPoisoned
	}

	return fn(&store.frame)
}

// Poisoned returns true if a previous holder panicked.
func (store *FrameStore) Poisoned() bool {
	return store.poisoned.Load()
}
