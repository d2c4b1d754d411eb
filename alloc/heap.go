// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package alloc

import (
	"sync"

	"github.com/gogpu/gal"
)

// Allocation is a range reserved in a Heap.
type Allocation struct {
	Offset uint64
	Size   uint64
	linear bool
}

// Heap is the arena of one memory type. Requests that fit a linear slot
// are served from a LinearAllocator occupying the first part of the heap;
// larger ones go to a BuddyAllocator over the rest.
type Heap struct {
	mu     sync.Mutex
	linear *LinearAllocator
	buddy  *BuddyAllocator
	base   uint64 // offset of the buddy region
}

// NewHeap returns a heap of size bytes. The lower half holds slots of
// granularity bytes. size and granularity must be powers of two.
func NewHeap(size, granularity uint64) *Heap {
	if !isPow2(size) || !isPow2(granularity) || size < 2*granularity {
		gal.PanicInvalid("alloc: heap of %d bytes with granularity %d", size, granularity)
	}
	half := size / 2
	return &Heap{
		linear: NewLinearAllocator(half, granularity),
		buddy:  NewBuddyAllocator(half, granularity),
		base:   half,
	}
}

// Allocate reserves size bytes aligned to align. align must be a power of
// two; zero means the granularity.
func (h *Heap) Allocate(size, align uint64) (Allocation, error) {
	if size == 0 {
		return Allocation{}, gal.ErrInvalidArgument
	}
	if align != 0 && !isPow2(align) {
		return Allocation{}, gal.ErrInvalidArgument
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	g := h.linear.Granularity()
	if size <= g && align <= g {
		if off, err := h.linear.Allocate(size); err == nil {
			return Allocation{Offset: off, Size: size, linear: true}, nil
		}
		// a full slot region falls back to the buddy region
	}
	// buddy blocks are aligned to their own size
	req := max(size, align)
	off, err := h.buddy.Allocate(req)
	if err != nil {
		return Allocation{}, err
	}
	return Allocation{Offset: h.base + off, Size: size}, nil
}

// Free releases an allocation.
func (h *Heap) Free(a Allocation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if a.linear {
		h.linear.Deallocate(a.Offset)
		return
	}
	h.buddy.Deallocate(a.Offset - h.base)
}

// Size returns the addressable size of the heap.
func (h *Heap) Size() uint64 { return h.base + h.buddy.size }

// Stats returns the combined usage of both regions.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, b := h.linear.Stats(), h.buddy.Stats()
	high := l.HighWater
	if b.Live > 0 {
		high = h.base + b.HighWater
	}
	return Stats{
		Capacity:  l.Capacity + b.Capacity,
		InUse:     l.InUse + b.InUse,
		Live:      l.Live + b.Live,
		FreeSlots: l.FreeSlots + b.FreeSlots,
		HighWater: high,
	}
}
