// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/alloc"
	"github.com/gogpu/gal/internal/track"
)

// Device is a logical host device.
type Device struct {
	pd    *PhysicalDevice
	label string
	log   *slog.Logger

	tracker *track.Tracker
	heaps   []*alloc.Heap // indexed by memory type
	queues  map[[2]uint32]*Queue

	lost     atomic.Bool
	lostOnce sync.Once
	lostCh   chan struct{}

	// done is closed by Destroy and stops the queue workers.
	done      chan struct{}
	destroyed atomic.Bool

	exec  *ExecutionLog
	names atomic.Uint64
}

func newDevice(pd *PhysicalDevice, info gal.DeviceCreateInfo) (*Device, error) {
	families := pd.QueueFamilies()
	if len(info.Queues) == 0 {
		info.Queues = []gal.QueueCreateInfo{{Family: FamilyUniversal, Count: 1}}
	}
	label := info.Label
	if label == "" {
		label = "null device"
	}
	d := &Device{
		pd:      pd,
		label:   label,
		log:     pd.r.log,
		tracker: track.New(),
		queues:  make(map[[2]uint32]*Queue),
		lostCh:  make(chan struct{}),
		done:    make(chan struct{}),
		exec:    &ExecutionLog{},
	}
	cfg := pd.r.cfg
	for range pd.MemoryProperties().Types {
		d.heaps = append(d.heaps, alloc.NewHeap(cfg.HeapSize, cfg.HeapGranularity))
	}
	for _, q := range info.Queues {
		if int(q.Family) >= len(families) || q.Count == 0 || q.Count > families[q.Family].Count {
			d.stopQueues()
			return nil, fmt.Errorf("gal: device %q: %d queues of family %d: %w", label, q.Count, q.Family, gal.ErrInvalidArgument)
		}
		for i := uint32(0); i < q.Count; i++ {
			key := [2]uint32{q.Family, i}
			if _, dup := d.queues[key]; dup {
				d.stopQueues()
				return nil, fmt.Errorf("gal: device %q: family %d requested twice: %w", label, q.Family, gal.ErrInvalidArgument)
			}
			d.queues[key] = newQueue(d, q.Family, i, families[q.Family].Flags)
		}
	}
	d.log.Info("gal: device created", slog.String("backend", ID), slog.String("device", label), slog.Int("queues", len(d.queues)))
	return d, nil
}

// PhysicalDevice returns the device's adapter.
func (d *Device) PhysicalDevice() gal.PhysicalDevice { return d.pd }

// Queue returns queue index of family.
func (d *Device) Queue(family, index uint32) (gal.Queue, error) {
	if err := d.check("queue"); err != nil {
		return nil, err
	}
	q, ok := d.queues[[2]uint32{family, index}]
	if !ok {
		return nil, d.errorf(gal.ErrInvalidArgument, "queue %d of family %d was not requested", index, family)
	}
	return q, nil
}

// Lost reports whether the device was lost.
func (d *Device) Lost() bool { return d.lost.Load() }

// Lose simulates a device loss. Every later call on the device and its
// objects fails with ErrDeviceLost, and pending waits return.
func (d *Device) Lose() {
	d.lostOnce.Do(func() {
		d.lost.Store(true)
		close(d.lostCh)
		d.log.Warn("gal: device lost", slog.String("device", d.label))
	})
}

// ExecutionLog returns the log of executed queue operations.
func (d *Device) ExecutionLog() *ExecutionLog { return d.exec }

// HeapStats returns the allocator usage of memory type i.
func (d *Device) HeapStats(i uint32) (alloc.Stats, error) {
	if int(i) >= len(d.heaps) {
		return alloc.Stats{}, d.errorf(gal.ErrInvalidArgument, "heap stats: memory type %d of %d", i, len(d.heaps))
	}
	return d.heaps[i].Stats(), nil
}

// Tracked returns the objects currently alive on the device.
func (d *Device) Tracked() []track.Entry { return d.tracker.Live() }

// WaitIdle waits for every queue to drain.
func (d *Device) WaitIdle(ctx context.Context) error {
	if err := d.check("wait idle"); err != nil {
		return err
	}
	for _, q := range d.queues {
		if err := q.WaitIdle(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Destroy drains the queues, stops their workers and releases leaked
// objects. A second call is a no-op.
func (d *Device) Destroy() error {
	if !d.destroyed.CompareAndSwap(false, true) {
		return nil
	}
	if !d.Lost() {
		ctx, cancel := context.WithTimeout(context.Background(), d.pd.r.cfg.FenceTimeout)
		for _, q := range d.queues {
			if err := q.WaitIdle(ctx); err != nil {
				d.log.Warn("gal: queue did not drain", slog.String("device", d.label), slog.String("err", err.Error()))
			}
		}
		cancel()
	}
	d.stopQueues()
	leaks := d.tracker.ReleaseAll(d.log, d.label)
	d.log.Info("gal: device destroyed", slog.String("device", d.label), slog.Int("leaked", len(leaks)))
	if len(leaks) > 0 {
		return d.errorf(gal.ErrInvalidState, "destroyed with %d live objects", len(leaks))
	}
	return nil
}

func (d *Device) stopQueues() {
	close(d.done)
	for _, q := range d.queues {
		q.wg.Wait()
	}
}

// check fails once the device is lost or destroyed.
func (d *Device) check(op string) error {
	if d.Lost() {
		return fmt.Errorf("gal: device %q: %s: %w", d.label, op, gal.ErrDeviceLost)
	}
	if d.destroyed.Load() {
		return d.errorf(gal.ErrInvalidState, "%s: device is destroyed", op)
	}
	return nil
}

func (d *Device) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("gal: device %q: %s: %w", d.label, fmt.Sprintf(format, args...), sentinel)
}

// name returns a unique label for objects created without one.
func (d *Device) name(kind string) string {
	return fmt.Sprintf("%s-%d", kind, d.names.Add(1))
}

// owns reports whether o was created by d.
func (d *Device) owns(o gal.Object) bool {
	type owned interface{ device() *Device }
	x, ok := o.(owned)
	return ok && x.device() == d
}
