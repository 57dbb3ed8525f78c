package ppu_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vsasakiv/gbadisplay/ppu"
	"vsasakiv/gbadisplay/rgb555"
	"vsasakiv/gbadisplay/test"
)

func TestFrameStoreInitiallyBlack(t *testing.T) {
	store := ppu.NewFrameStore()
	err := store.With(func(frame *ppu.Frame) error {
		for y := range uint(ppu.LCD_HEIGHT) {
			for x := range uint(ppu.LCD_WIDTH) {
				if frame.At(x, y) != rgb555.Black {
					t.Fatalf("pixel %d,%d is not black", x, y)
				}
			}
		}
		return nil
	})
	test.ExpectSuccess(t, err)
}

func TestFrameStoreKeepsWrites(t *testing.T) {
	store := ppu.NewFrameStore()
	test.ExpectSuccess(t, store.With(func(frame *ppu.Frame) error {
		frame.Fill(rgb555.White)
		return nil
	}))
	test.ExpectSuccess(t, store.With(func(frame *ppu.Frame) error {
		test.ExpectEquality(t, frame.At(ppu.LCD_WIDTH-1, ppu.LCD_HEIGHT-1), rgb555.White)
		return nil
	}))
}

func TestFrameStoreReturnsHolderError(t *testing.T) {
	store := ppu.NewFrameStore()
	holderErr := errors.New("holder error")
	err := store.With(func(_ *ppu.Frame) error { return holderErr })
	test.ExpectEquality(t, err, holderErr)

	// an ordinary error does not poison the store and the lock was released
	test.ExpectEquality(t, store.Poisoned(), false)
	test.ExpectSuccess(t, store.With(func(_ *ppu.Frame) error { return nil }))
}

func TestFrameStoreExclusive(t *testing.T) {
	store := ppu.NewFrameStore()

	var inside atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				store.With(func(_ *ppu.Frame) error {
					if inside.Add(1) != 1 {
						t.Error("more than one holder inside the store")
					}
					inside.Add(-1)
					return nil
				})
			}
		}()
	}
	wg.Wait()
}

func TestFrameStorePoisoning(t *testing.T) {
	store := ppu.NewFrameStore()

	err := store.With(func(_ *ppu.Frame) error {
		panic("emulation core failure")
	})
	test.DemandFailure(t, err)
	test.ExpectEquality(t, errors.Is(err, ppu.ErrPoisoned), true)
	test.ExpectEquality(t, store.Poisoned(), true)

	// the lock was released but every later acquisition fails without
	// calling the function
	called := false
	err = store.With(func(_ *ppu.Frame) error {
		called = true
		return nil
	})
	test.ExpectEquality(t, errors.Is(err, ppu.ErrPoisoned), true)
	test.ExpectEquality(t, called, false)
}

func TestFrameStoreTimeout(t *testing.T) {
	store := ppu.NewFrameStore()

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		store.With(func(_ *ppu.Frame) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := store.WithContext(ctx, func(_ *ppu.Frame) error {
		t.Error("function called without the lock")
		return nil
	})
	test.ExpectEquality(t, errors.Is(err, ppu.ErrAcquireTimeout), true)
	test.ExpectEquality(t, errors.Is(err, context.DeadlineExceeded), true)

	close(release)
	<-done

	// a timeout does not poison the store
	test.ExpectSuccess(t, store.With(func(_ *ppu.Frame) error { return nil }))
}

func TestFrameStoreWaiterAcquiresOnRelease(t *testing.T) {
	store := ppu.NewFrameStore()

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		store.With(func(_ *ppu.Frame) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()

	called := false
	err := store.WithContext(ctx, func(_ *ppu.Frame) error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, called, true)
}

func TestFrameStoreDoneContextStillAcquiresFreeLock(t *testing.T) {
	store := ppu.NewFrameStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.WithContext(ctx, func(_ *ppu.Frame) error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, called, true)
}
