// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/internal/record"
)

// queueDepth is the number of submissions a queue buffers before Submit
// blocks.
const queueDepth = 64

// Queue executes submissions in order on its own goroutine.
type Queue struct {
	dev    *Device
	family uint32
	index  uint32
	flags  gal.QueueFlags
	name   string

	work chan *submission
	wg   sync.WaitGroup
	seq  atomic.Uint64

	mu   sync.Mutex
	busy int
	idle chan struct{} // closed while busy is zero
	hold chan struct{}
}

type batch struct {
	waits   []*Semaphore
	cbs     []*CommandBuffer
	cmds    [][]record.Command
	signals []*Semaphore
}

type submission struct {
	id      uint64
	batches []batch
	fence   *Fence
}

func newQueue(d *Device, family, index uint32, flags gal.QueueFlags) *Queue {
	q := &Queue{
		dev:    d,
		family: family,
		index:  index,
		flags:  flags,
		name:   fmt.Sprintf("%d.%d", family, index),
		work:   make(chan *submission, queueDepth),
		idle:   make(chan struct{}),
	}
	close(q.idle)
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *Queue) Family() uint32        { return q.family }
func (q *Queue) Index() uint32         { return q.index }
func (q *Queue) Flags() gal.QueueFlags { return q.flags }

// Submit validates the batches, moves their command buffers to Pending
// and hands them to the worker. It does not wait for execution.
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
	s := &submission{id: q.seq.Add(1)}
	if fence != nil {
		f, ok := fence.(*Fence)
		if !ok || f.dev != q.dev {
			return q.errorf(gal.ErrInvalidArgument, "fence %q belongs to another device", fence.Label())
		}
		s.fence = f
	}

	var acquired []*CommandBuffer
	fail := func(err error) error {
		for _, cb := range acquired {
			cb.Release()
		}
		return err
	}
	for i, b := range batches {
		var sb batch
		var err error
		if sb.waits, err = q.semaphores(b.WaitSemaphores); err != nil {
			return fail(err)
		}
		if sb.signals, err = q.semaphores(b.SignalSemaphores); err != nil {
			return fail(err)
		}
		for j, c := range b.CommandBuffers {
			cb, ok := c.(*CommandBuffer)
			if !ok || cb.dev != q.dev {
				return fail(q.errorf(gal.ErrInvalidArgument, "batch %d: command buffer %d belongs to another device", i, j))
			}
			if cb.Family() != q.family {
				return fail(q.errorf(gal.ErrInvalidArgument, "batch %d: command buffer %q was created for family %d", i, cb.Label(), cb.Family()))
			}
			if err := cb.Acquire(); err != nil {
				return fail(err)
			}
			acquired = append(acquired, cb)
			cmds := cb.Commands()
			if need := requiredFlags(cmds); !q.flags.Has(need) {
				return fail(q.errorf(gal.ErrInvalidArgument, "command buffer %q needs %s", cb.Label(), need))
			}
			if err := q.checkOwnership(cb.Label(), cmds); err != nil {
				return fail(err)
			}
			sb.cbs = append(sb.cbs, cb)
			sb.cmds = append(sb.cmds, cmds)
		}
		s.batches = append(s.batches, sb)
	}
	if s.fence != nil {
		if err := s.fence.submit(); err != nil {
			return fail(err)
		}
	}

	q.begin()
	select {
	case q.work <- s:
		return nil
	case <-ctx.Done():
		err := ctx.Err()
		q.cancel(s, acquired)
		return err
	case <-q.dev.done:
		q.cancel(s, acquired)
		return q.errorf(gal.ErrInvalidState, "device destroyed")
	}
}

func (q *Queue) cancel(s *submission, acquired []*CommandBuffer) {
	for _, cb := range acquired {
		cb.Release()
	}
	if s.fence != nil {
		s.fence.cancel()
	}
	q.end()
}

func (q *Queue) semaphores(in []gal.Semaphore) ([]*Semaphore, error) {
	out := make([]*Semaphore, len(in))
	for i, s := range in {
		sem, ok := s.(*Semaphore)
		if !ok || sem.dev != q.dev {
			return nil, q.errorf(gal.ErrInvalidArgument, "semaphore %q belongs to another device", s.Label())
		}
		out[i] = sem
	}
	return out, nil
}

// checkOwnership rejects commands that reference resources of another
// device or backend.
func (q *Queue) checkOwnership(label string, cmds []record.Command) error {
	var objs []gal.Object
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case record.BeginRenderPass:
			for _, v := range c.Info.FrameBuffer.Attachments() {
				objs = append(objs, v.Image())
			}
		case record.CopyBuffer:
			objs = append(objs, c.Src, c.Dst)
		case record.CopyBufferToImage:
			objs = append(objs, c.Src, c.Dst)
		case record.CopyImageToBuffer:
			objs = append(objs, c.Src, c.Dst)
		case record.FillBuffer:
			objs = append(objs, c.Dst)
		case record.UpdateBuffer:
			objs = append(objs, c.Dst)
		}
	}
	for _, o := range objs {
		if !q.dev.owns(o) {
			return q.errorf(gal.ErrInvalidArgument, "command buffer %q references %q of another device", label, o.Label())
		}
	}
	return nil
}

// WaitIdle blocks until every submission so far completed.
func (q *Queue) WaitIdle(ctx context.Context) error {
	if q.dev.Lost() {
		return q.errorf(gal.ErrDeviceLost, "wait idle")
	}
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-q.dev.lostCh:
		return q.errorf(gal.ErrDeviceLost, "wait idle")
	case <-ctx.Done():
		return fmt.Errorf("gal: queue %s: wait idle: %w", q.name, ctx.Err())
	}
}

// Hold stops the worker before its next submission until release is
// called. Submissions queued meanwhile stay Pending.
func (q *Queue) Hold() (release func()) {
	ch := make(chan struct{})
	q.mu.Lock()
	q.hold = ch
	q.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			if q.hold == ch {
				q.hold = nil
			}
			q.mu.Unlock()
			close(ch)
		})
	}
}

func (q *Queue) begin() {
	q.mu.Lock()
	if q.busy == 0 {
		q.idle = make(chan struct{})
	}
	q.busy++
	q.mu.Unlock()
}

func (q *Queue) end() {
	q.mu.Lock()
	q.busy--
	if q.busy == 0 {
		close(q.idle)
	}
	q.mu.Unlock()
}

func (q *Queue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.dev.done:
			for {
				select {
				case s := <-q.work:
					q.abort(s, 0, 0)
				default:
					return
				}
			}
		case s := <-q.work:
			q.process(s)
		}
	}
}

func (q *Queue) waitHold() bool {
	q.mu.Lock()
	h := q.hold
	q.mu.Unlock()
	if h == nil {
		return true
	}
	select {
	case <-h:
		return true
	case <-q.dev.lostCh:
		return false
	case <-q.dev.done:
		return false
	}
}

func (q *Queue) process(s *submission) {
	if !q.waitHold() {
		q.abort(s, 0, 0)
		return
	}
	log := q.dev.exec
	for bi, b := range s.batches {
		for _, sem := range b.waits {
			if !sem.wait() {
				q.abort(s, bi, 0)
				return
			}
			log.add(Event{Queue: q.name, Submission: s.id, Kind: EventWait, Label: sem.label})
		}
		for ci, cb := range b.cbs {
			if q.dev.Lost() {
				q.abort(s, bi, ci)
				return
			}
			n := execute(b.cmds[ci])
			log.add(Event{
				Queue:      q.name,
				Submission: s.id,
				Kind:       EventExecute,
				Label:      cb.Label(),
				Draws:      n.draws,
				Dispatches: n.dispatches,
			})
			cb.Release()
		}
		for _, sem := range b.signals {
			log.add(Event{Queue: q.name, Submission: s.id, Kind: EventSignal, Label: sem.label})
			sem.signal()
		}
	}
	if s.fence != nil {
		log.add(Event{Queue: q.name, Submission: s.id, Kind: EventFence, Label: s.fence.label})
		s.fence.signal()
	}
	q.end()
}

// abort releases the command buffers from batch bi, buffer ci on without
// executing them. The fence is left unsignaled.
func (q *Queue) abort(s *submission, bi, ci int) {
	q.dev.exec.add(Event{Queue: q.name, Submission: s.id, Kind: EventAbort})
	for ; bi < len(s.batches); bi++ {
		for _, cb := range s.batches[bi].cbs[ci:] {
			cb.Release()
		}
		ci = 0
	}
	if s.fence != nil {
		s.fence.cancel()
	}
	q.end()
}

func (q *Queue) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("gal: queue %s: %s: %w", q.name, fmt.Sprintf(format, args...), sentinel)
}
