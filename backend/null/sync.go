// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/internal/track"
)

// Fence is signaled by a queue worker after a submission completed.
type Fence struct {
	object

	mu       sync.Mutex
	signaled bool
	pending  bool
	ch       chan struct{} // closed once signaled
}

// CreateFence creates a fence, optionally in the signaled state.
func (d *Device) CreateFence(signaled bool) (gal.Fence, error) {
	if err := d.check("create fence"); err != nil {
		return nil, err
	}
	f := &Fence{ch: make(chan struct{}), signaled: signaled}
	if signaled {
		close(f.ch)
	}
	f.init(d, d.name("fence"))
	f.track(track.KindFence, f.Destroy)
	return f, nil
}

// Status reports whether the fence is signaled.
func (f *Fence) Status() (bool, error) {
	if err := f.usable("fence status"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled, nil
}

// Wait blocks until the fence is signaled. A zero timeout polls and a
// negative one waits without limit.
func (f *Fence) Wait(ctx context.Context, timeout time.Duration) error {
	if err := f.usable("wait fence"); err != nil {
		return err
	}
	f.mu.Lock()
	ch, signaled := f.ch, f.signaled
	f.mu.Unlock()
	if signaled {
		return nil
	}
	if timeout == 0 {
		return fmt.Errorf("gal: fence %q: poll: %w", f.label, gal.ErrTimeout)
	}
	var expired <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		expired = t.C
	}
	select {
	case <-ch:
		return nil
	case <-f.dev.lostCh:
		return fmt.Errorf("gal: fence %q: wait: %w", f.label, gal.ErrDeviceLost)
	case <-ctx.Done():
		return fmt.Errorf("gal: fence %q: wait: %w", f.label, ctx.Err())
	case <-expired:
		return fmt.Errorf("gal: fence %q: not signaled after %v: %w", f.label, timeout, gal.ErrTimeout)
	}
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
	if f.signaled {
		f.signaled = false
		f.ch = make(chan struct{})
	}
	return nil
}

// Destroy marks the fence destroyed.
func (f *Fence) Destroy() { f.release() }

func (f *Fence) usable(op string) error {
	if err := f.dev.check(op); err != nil {
		return err
	}
	if f.Destroyed() {
		return f.dev.errorf(gal.ErrInvalidState, "%s: fence %q is destroyed", op, f.label)
	}
	return nil
}

// submit marks the fence as used by a submission.
func (f *Fence) submit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending || f.signaled {
		return f.dev.errorf(gal.ErrInvalidState, "submit: fence %q is in use", f.label)
	}
	f.pending = true
	return nil
}

// cancel undoes submit.
func (f *Fence) cancel() {
	f.mu.Lock()
	f.pending = false
	f.mu.Unlock()
}

func (f *Fence) signal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if !f.signaled {
		f.signaled = true
		close(f.ch)
	}
}

// Semaphore is a binary semaphore between queue batches.
type Semaphore struct {
	object
	ch chan struct{}
}

// CreateSemaphore creates an unsignaled semaphore.
func (d *Device) CreateSemaphore() (gal.Semaphore, error) {
	if err := d.check("create semaphore"); err != nil {
		return nil, err
	}
	s := &Semaphore{ch: make(chan struct{}, 1)}
	s.init(d, d.name("semaphore"))
	s.track(track.KindSemaphore, s.Destroy)
	return s, nil
}

// Destroy marks the semaphore destroyed.
func (s *Semaphore) Destroy() { s.release() }

func (s *Semaphore) signal() {
	select {
	case s.ch <- struct{}{}:
	default:
		s.dev.log.Warn("gal: semaphore signaled twice", slog.String("label", s.label))
	}
}

// wait consumes the signal. It returns false if the device was lost or
// destroyed first.
func (s *Semaphore) wait() bool {
	select {
	case <-s.ch:
		return true
	case <-s.dev.lostCh:
		return false
	case <-s.dev.done:
		return false
	}
}
