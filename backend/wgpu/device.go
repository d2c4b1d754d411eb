package wgpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/alloc"
	"github.com/gogpu/gal/internal/cache"
	"github.com/gogpu/gal/internal/track"
)

// Device wraps a HAL device and its queue.
type Device struct {
	pd    *PhysicalDevice
	label string
	log   *slog.Logger

	raw   hal.Device
	owned bool
	queue *Queue

	tracker *track.Tracker
	// heaps account buffer and image sizes against the configured budget.
	heaps []*alloc.Heap

	samplerMu sync.Mutex
	samplers  *cache.Cache[samplerKey, *sharedSampler]

	lost      atomic.Bool
	destroyed atomic.Bool
	names     atomic.Uint64
}

func newDevice(pd *PhysicalDevice, info gal.DeviceCreateInfo) (*Device, error) {
	label := info.Label
	if label == "" {
		label = "wgpu device"
	}
	for _, q := range info.Queues {
		if q.Family != FamilyUniversal || q.Count != 1 {
			return nil, fmt.Errorf("gal: device %q: %d queues of family %d: %w", label, q.Count, q.Family, gal.ErrInvalidArgument)
		}
	}
	if len(info.Queues) > 1 {
		return nil, fmt.Errorf("gal: device %q: family %d requested twice: %w", label, FamilyUniversal, gal.ErrInvalidArgument)
	}

	open, owned := pd.shared, false
	if open == nil {
		caps := pd.adapter.Capabilities
		od, err := pd.adapter.Adapter.Open(gputypes.Features(0), caps.Limits)
		if err != nil {
			return nil, fmt.Errorf("gal: device %q: open %s: %w", label, pd.adapter.Info.Name, halError(err))
		}
		open, owned = &od, true
	}
	d := &Device{
		pd:      pd,
		label:   label,
		log:     pd.r.log,
		raw:     open.Device,
		owned:   owned,
		tracker: track.New(),
	}
	d.samplers = cache.New(0, func(_ samplerKey, s *sharedSampler) {
		d.raw.DestroySampler(s.raw)
	})
	cfg := pd.r.cfg
	for range pd.MemoryProperties().Types {
		d.heaps = append(d.heaps, alloc.NewHeap(cfg.HeapSize, cfg.HeapGranularity))
	}
	d.queue = newQueue(d, open.Queue)
	d.log.Info("gal: device created",
		slog.String("backend", ID),
		slog.String("device", label),
		slog.String("adapter", pd.adapter.Info.Name),
		slog.Bool("shared", !owned))
	return d, nil
}

// PhysicalDevice returns the device's adapter.
func (d *Device) PhysicalDevice() gal.PhysicalDevice { return d.pd }

// Queue returns the single queue.
func (d *Device) Queue(family, index uint32) (gal.Queue, error) {
	if err := d.check("queue"); err != nil {
		return nil, err
	}
	if family != FamilyUniversal || index != 0 {
		return nil, d.errorf(gal.ErrInvalidArgument, "queue %d of family %d was not requested", index, family)
	}
	return d.queue, nil
}

// Lost reports whether the HAL reported device loss.
func (d *Device) Lost() bool { return d.lost.Load() }

func (d *Device) lose(cause error) {
	if d.lost.CompareAndSwap(false, true) {
		d.log.Warn("gal: device lost", slog.String("device", d.label), slog.String("err", cause.Error()))
	}
}

// HeapStats returns the budget usage of memory type i.
func (d *Device) HeapStats(i uint32) (alloc.Stats, error) {
	if int(i) >= len(d.heaps) {
		return alloc.Stats{}, d.errorf(gal.ErrInvalidArgument, "heap stats: memory type %d of %d", i, len(d.heaps))
	}
	return d.heaps[i].Stats(), nil
}

// Tracked returns the objects currently alive on the device.
func (d *Device) Tracked() []track.Entry { return d.tracker.Live() }

// HAL returns the underlying HAL device.
func (d *Device) HAL() hal.Device { return d.raw }

// WaitIdle waits until every submission completed.
func (d *Device) WaitIdle(ctx context.Context) error {
	if err := d.check("wait idle"); err != nil {
		return err
	}
	return d.queue.WaitIdle(ctx)
}

// Destroy waits for the queue, releases leaked objects and closes the HAL
// device if this device opened it. A second call is a no-op.
func (d *Device) Destroy() error {
	if !d.destroyed.CompareAndSwap(false, true) {
		return nil
	}
	if !d.Lost() {
		ctx, cancel := context.WithTimeout(context.Background(), d.pd.r.cfg.FenceTimeout)
		if err := d.queue.WaitIdle(ctx); err != nil {
			d.log.Warn("gal: queue did not drain", slog.String("device", d.label), slog.String("err", err.Error()))
		}
		cancel()
	}
	d.queue.retire(true)
	leaks := d.tracker.ReleaseAll(d.log, d.label)
	d.samplers.Clear()
	if d.owned {
		d.raw.Destroy()
	}
	d.log.Info("gal: device destroyed", slog.String("device", d.label), slog.Int("leaked", len(leaks)))
	if len(leaks) > 0 {
		return d.errorf(gal.ErrInvalidState, "destroyed with %d live objects", len(leaks))
	}
	return nil
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

// halFailed wraps an error returned by the HAL. Device loss is sticky.
func (d *Device) halFailed(err error, format string, args ...any) error {
	if errors.Is(err, hal.ErrDeviceLost) {
		d.lose(err)
	}
	return fmt.Errorf("gal: device %q: %s: %w", d.label, fmt.Sprintf(format, args...), halError(err))
}

// halError maps HAL sentinels onto gal sentinels while keeping the HAL
// error in the chain.
func halError(err error) error {
	switch {
	case errors.Is(err, hal.ErrDeviceLost):
		return fmt.Errorf("%w: %w", gal.ErrDeviceLost, err)
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		return fmt.Errorf("%w: %w", gal.ErrOutOfDeviceMemory, err)
	case errors.Is(err, hal.ErrTimeout):
		return fmt.Errorf("%w: %w", gal.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", gal.ErrInvalidArgument, err)
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
