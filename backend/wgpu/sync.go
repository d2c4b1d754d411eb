package wgpu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/internal/track"
)

// Polling intervals while waiting for the HAL to report completion.
const (
	pollMin = 50 * time.Microsecond
	pollMax = 5 * time.Millisecond
)

// poll calls done with exponential backoff until it returns true, ctx is
// done or timeout elapsed. A zero timeout polls once and a negative one
// waits without limit.
func poll(ctx context.Context, timeout time.Duration, done func() bool) error {
	if done() {
		return nil
	}
	if timeout == 0 {
		return gal.ErrTimeout
	}
	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}
	wait := pollMin
	tick := time.NewTimer(wait)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return gal.ErrTimeout
		case <-tick.C:
		}
		if done() {
			return nil
		}
		wait = min(wait*2, pollMax)
		tick.Reset(wait)
	}
}

// Fence is signaled when the queue retires the submission it was passed
// to.
type Fence struct {
	object

	mu       sync.Mutex
	signaled bool
	pending  bool
}

// CreateFence creates a fence, optionally in the signaled state.
func (d *Device) CreateFence(signaled bool) (gal.Fence, error) {
	if err := d.check("create fence"); err != nil {
		return nil, err
	}
	f := &Fence{signaled: signaled}
	f.init(d, d.name("fence"))
	f.track(track.KindFence, f.Destroy)
	return f, nil
}

// Status retires completed submissions and reports whether the fence is
// signaled.
func (f *Fence) Status() (bool, error) {
	if err := f.usable("fence status"); err != nil {
		return false, err
	}
	f.dev.queue.retire(false)
	return f.isSignaled(), nil
}

func (f *Fence) isSignaled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled
}

// Wait polls the queue until the fence is signaled. A zero timeout polls
// once and a negative one waits without limit.
func (f *Fence) Wait(ctx context.Context, timeout time.Duration) error {
	if err := f.usable("wait fence"); err != nil {
		return err
	}
	err := poll(ctx, timeout, func() bool {
		if f.isSignaled() {
			return true
		}
		f.dev.queue.retire(false)
		return f.isSignaled() || f.dev.Lost()
	})
	switch {
	case err != nil && timeout == 0:
		return fmt.Errorf("gal: fence %q: poll: %w", f.label, err)
	case err != nil:
		return fmt.Errorf("gal: fence %q: wait: %w", f.label, err)
	case !f.isSignaled():
		return fmt.Errorf("gal: fence %q: wait: %w", f.label, gal.ErrDeviceLost)
	}
	return nil
}

// Reset unsignals the fence. A fence used by a pending submission cannot
// be reset.
func (f *Fence) Reset() error {
	if err := f.usable("reset fence"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending {
		return f.dev.errorf(gal.ErrInvalidState, "reset fence %q: submission in flight", f.label)
	}
	f.signaled = false
	return nil
}

// Destroy marks the fence destroyed.
func (f *Fence) Destroy() { f.release(nil) }

func (f *Fence) usable(op string) error {
	if err := f.dev.check(op); err != nil {
		return err
	}
	if f.Destroyed() {
		return f.dev.errorf(gal.ErrInvalidState, "%s: fence %q is destroyed", op, f.label)
	}
	return nil
}

func (f *Fence) submit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending || f.signaled {
		return f.dev.errorf(gal.ErrInvalidState, "submit: fence %q is in use", f.label)
	}
	f.pending = true
	return nil
}

func (f *Fence) cancel() {
	f.mu.Lock()
	f.pending = false
	f.mu.Unlock()
}

func (f *Fence) signal() {
	f.mu.Lock()
	f.pending, f.signaled = false, true
	f.mu.Unlock()
}

// Semaphore orders batches on the single queue. Only its signal state is
// tracked; signaled is guarded by the queue lock.
type Semaphore struct {
	object
	signaled bool
}

// CreateSemaphore creates an unsignaled semaphore.
func (d *Device) CreateSemaphore() (gal.Semaphore, error) {
	if err := d.check("create semaphore"); err != nil {
		return nil, err
	}
	s := &Semaphore{}
	s.init(d, d.name("semaphore"))
	s.track(track.KindSemaphore, s.Destroy)
	return s, nil
}

// Destroy marks the semaphore destroyed.
func (s *Semaphore) Destroy() { s.release(nil) }
