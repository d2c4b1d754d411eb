package wgpu

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gal"
)

// Queue submits HAL command buffers and retires them by polling the HAL
// submission index.
type Queue struct {
	dev *Device
	raw hal.Queue

	// submitted and completed are HAL submission indices.
	submitted atomic.Uint64
	completed atomic.Uint64

	// mu guards inflight, image usages and semaphore states.
	mu       sync.Mutex
	inflight []*submission

	dmu      sync.Mutex
	deferred []deferred
}

// deferred runs fn once submission index completed.
type deferred struct {
	index uint64
	fn    func()
}

type submission struct {
	index    uint64
	cbs      []*CommandBuffer
	raw      []hal.CommandBuffer
	encoders []hal.CommandEncoder
	staging  []hal.Buffer
	fence    *Fence
}

func newQueue(d *Device, raw hal.Queue) *Queue {
	return &Queue{dev: d, raw: raw}
}

func (q *Queue) Family() uint32 { return FamilyUniversal }
func (q *Queue) Index() uint32  { return 0 }
func (q *Queue) Flags() gal.QueueFlags {
	return gal.QueueGraphics | gal.QueueCompute | gal.QueueTransfer
}

// Submit encodes the batches into HAL command buffers and submits them in
// one HAL submission. Semaphores order batches on the single queue, so a
// wait only checks that an earlier batch or submission signals it.
func (q *Queue) Submit(ctx context.Context, batches []gal.SubmitInfo, fence gal.Fence) error {
	if err := q.dev.check("submit"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := gal.ValidateSubmit(batches, fence); err != nil {
		return err
	}
	var f *Fence
	if fence != nil {
		var ok bool
		if f, ok = fence.(*Fence); !ok || f.dev != q.dev {
			return q.errorf(gal.ErrInvalidArgument, "fence %q belongs to another device", fence.Label())
		}
	}
	err := q.submit(batches, f)
	q.retire(false)
	return err
}

func (q *Queue) submit(batches []gal.SubmitInfo, f *Fence) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := &submission{fence: f}
	enc := newEncoder(q.dev)
	fail := func(err error) error {
		q.free(s)
		for _, b := range enc.staging {
			q.dev.raw.DestroyBuffer(b)
		}
		return err
	}

	sems := make(map[*Semaphore]bool)
	state := func(sem *Semaphore) bool {
		if v, ok := sems[sem]; ok {
			return v
		}
		return sem.signaled
	}
	for i, b := range batches {
		for _, w := range b.WaitSemaphores {
			sem, err := q.semaphore(w)
			if err != nil {
				return fail(err)
			}
			if !state(sem) {
				return fail(q.errorf(gal.ErrInvalidState, "batch %d: semaphore %q is never signaled", i, sem.label))
			}
			sems[sem] = false
		}
		for j, c := range b.CommandBuffers {
			cb, ok := c.(*CommandBuffer)
			if !ok || cb.dev != q.dev {
				return fail(q.errorf(gal.ErrInvalidArgument, "batch %d: command buffer %d belongs to another device", i, j))
			}
			if cb.Family() != FamilyUniversal {
				return fail(q.errorf(gal.ErrInvalidArgument, "batch %d: command buffer %q was created for family %d", i, cb.Label(), cb.Family()))
			}
			if err := cb.Acquire(); err != nil {
				return fail(err)
			}
			s.cbs = append(s.cbs, cb)
			e, raw, err := enc.encode(cb.Label(), cb.Commands())
			if err != nil {
				return fail(err)
			}
			s.encoders = append(s.encoders, e)
			s.raw = append(s.raw, raw)
		}
		for _, sig := range b.SignalSemaphores {
			sem, err := q.semaphore(sig)
			if err != nil {
				return fail(err)
			}
			if state(sem) {
				return fail(q.errorf(gal.ErrInvalidState, "batch %d: semaphore %q is already signaled", i, sem.label))
			}
			sems[sem] = true
		}
	}
	if f != nil {
		if err := f.submit(); err != nil {
			return fail(err)
		}
	}
	index, err := q.raw.Submit(s.raw)
	if err != nil {
		if f != nil {
			f.cancel()
		}
		return fail(q.dev.halFailed(err, "submit"))
	}
	s.index = index
	s.staging = enc.staging
	enc.commit()
	for sem, v := range sems {
		sem.signaled = v
	}
	q.submitted.Store(index)
	q.inflight = append(q.inflight, s)
	q.dev.log.Debug("gal: submitted",
		slog.String("device", q.dev.label),
		slog.Uint64("index", index),
		slog.Int("command_buffers", len(s.raw)))
	return nil
}

func (q *Queue) semaphore(s gal.Semaphore) (*Semaphore, error) {
	sem, ok := s.(*Semaphore)
	if !ok || sem.dev != q.dev {
		return nil, q.errorf(gal.ErrInvalidArgument, "semaphore %q belongs to another device", s.Label())
	}
	return sem, nil
}

// free releases what a submission holds, in either order of failure or
// completion.
func (q *Queue) free(s *submission) {
	for _, cb := range s.cbs {
		cb.Release()
	}
	for _, raw := range s.raw {
		q.dev.raw.FreeCommandBuffer(raw)
	}
	for _, e := range s.encoders {
		e.Destroy()
	}
	for _, b := range s.staging {
		q.dev.raw.DestroyBuffer(b)
	}
}

// later runs fn once every submission made so far completed. With nothing
// in flight fn runs immediately.
func (q *Queue) later(fn func()) {
	q.dmu.Lock()
	index := q.submitted.Load()
	if index <= q.completed.Load() {
		q.dmu.Unlock()
		fn()
		return
	}
	q.deferred = append(q.deferred, deferred{index: index, fn: fn})
	q.dmu.Unlock()
}

// retire releases completed submissions, signals their fences and runs the
// deferred destructions they unblocked. With force every submission is
// treated as complete and fences stay unsignaled.
func (q *Queue) retire(force bool) {
	q.mu.Lock()
	done := q.submitted.Load()
	if !force {
		done = q.raw.PollCompleted()
	}
	var finished []*submission
	n := 0
	for _, s := range q.inflight {
		if s.index <= done {
			finished = append(finished, s)
			continue
		}
		q.inflight[n] = s
		n++
	}
	clear(q.inflight[n:])
	q.inflight = q.inflight[:n]
	if done > q.completed.Load() {
		q.completed.Store(done)
	}
	q.mu.Unlock()

	for _, s := range finished {
		q.free(s)
		if s.fence == nil {
			continue
		}
		if force {
			s.fence.cancel()
		} else {
			s.fence.signal()
		}
	}

	q.dmu.Lock()
	var run []func()
	keep := q.deferred[:0]
	for _, d := range q.deferred {
		if d.index <= done {
			run = append(run, d.fn)
		} else {
			keep = append(keep, d)
		}
	}
	clear(q.deferred[len(keep):])
	q.deferred = keep
	q.dmu.Unlock()
	for _, fn := range run {
		fn()
	}
}

// idle reports whether every submission completed.
func (q *Queue) idle() bool {
	q.retire(false)
	return q.completed.Load() >= q.submitted.Load()
}

// WaitIdle polls until every submission so far completed.
func (q *Queue) WaitIdle(ctx context.Context) error {
	if q.dev.Lost() {
		return q.errorf(gal.ErrDeviceLost, "wait idle")
	}
	if err := poll(ctx, -1, func() bool { return q.idle() || q.dev.Lost() }); err != nil {
		return fmt.Errorf("gal: queue 0.0: wait idle: %w", err)
	}
	if q.dev.Lost() {
		return q.errorf(gal.ErrDeviceLost, "wait idle")
	}
	return nil
}

func (q *Queue) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("gal: queue 0.0: %s: %w", fmt.Sprintf(format, args...), sentinel)
}
