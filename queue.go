package gal

import (
	"context"
	"time"
)

// QueueFamilyProperties describes one family of queues.
type QueueFamilyProperties struct {
	Flags QueueFlags
	Count uint32
}

// SubmitInfo is one batch of a submission. Execution of the batch starts
// after every wait semaphore is signaled; signal semaphores are signaled
// once all its command buffers completed.
type SubmitInfo struct {
	WaitSemaphores []Semaphore
	// WaitStages holds one stage mask per wait semaphore.
	WaitStages       []PipelineStageFlags
	CommandBuffers   []CommandBuffer
	SignalSemaphores []Semaphore
}

// Queue executes submitted command buffers asynchronously.
type Queue interface {
	Family() uint32
	Index() uint32
	Flags() QueueFlags

	// Submit enqueues batches for execution and returns without waiting
	// for them. fence, if not nil, is signaled after every batch
	// completed.
	Submit(ctx context.Context, batches []SubmitInfo, fence Fence) error

	// WaitIdle blocks until all work submitted to the queue completed.
	WaitIdle(ctx context.Context) error
}

// Fence is a CPU-observable completion signal. Wait and Status may be
// called from any goroutine.
type Fence interface {
	Object
	// Wait blocks until the fence is signaled, ctx is done or timeout
	// elapsed. A zero timeout only polls. On expiry it returns ErrTimeout;
	// the work may still complete later.
	Wait(ctx context.Context, timeout time.Duration) error
	Status() (bool, error)
	Reset() error
}

// Semaphore orders queue operations. It has no host-visible state.
type Semaphore interface {
	Object
}

// ValidateSubmit checks the structural rules of a submission that do not
// depend on backend state.
func ValidateSubmit(batches []SubmitInfo, fence Fence) error {
	if fence != nil {
		if fence.Destroyed() {
			return errorf(ErrInvalidState, "submit: fence %q is destroyed", fence.Label())
		}
		signaled, err := fence.Status()
		if err != nil {
			return err
		}
		if signaled {
			return errorf(ErrInvalidState, "submit: fence %q is already signaled", fence.Label())
		}
	}
	for i, b := range batches {
		if len(b.WaitStages) != len(b.WaitSemaphores) {
			return errorf(ErrInvalidArgument, "submit batch %d: %d wait stages for %d semaphores", i, len(b.WaitStages), len(b.WaitSemaphores))
		}
		for _, s := range b.WaitSemaphores {
			if s == nil || s.Destroyed() {
				return errorf(ErrInvalidArgument, "submit batch %d: missing or destroyed wait semaphore", i)
			}
		}
		for _, s := range b.SignalSemaphores {
			if s == nil || s.Destroyed() {
				return errorf(ErrInvalidArgument, "submit batch %d: missing or destroyed signal semaphore", i)
			}
		}
		for j, cb := range b.CommandBuffers {
			if cb == nil {
				return errorf(ErrInvalidArgument, "submit batch %d: command buffer %d is nil", i, j)
			}
		}
	}
	return nil
}
