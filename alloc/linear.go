// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package alloc sub-allocates device memory blocks.
//
// A LinearAllocator hands out fixed-size slots of one block and reuses
// freed slots in LIFO order. A BuddyAllocator serves variable sizes by
// power-of-two splitting. A Heap combines both for one memory type.
//
// LinearAllocator and BuddyAllocator are not safe for concurrent use;
// Heap serializes access with a mutex.
package alloc

import (
	"fmt"

	"github.com/gogpu/gal"
)

// LinearAllocator divides a block into slots of Granularity bytes.
type LinearAllocator struct {
	blockSize   uint64
	granularity uint64
	top         uint64   // high-water mark, in bytes
	free        []uint64 // LIFO stack of freed offsets
	live        map[uint64]struct{}
}

// NewLinearAllocator returns an allocator over blockSize bytes with slots
// of granularity bytes. granularity must be non-zero and not exceed
// blockSize.
func NewLinearAllocator(blockSize, granularity uint64) *LinearAllocator {
	if granularity == 0 || granularity > blockSize {
		gal.PanicInvalid("alloc: granularity %d for block of %d bytes", granularity, blockSize)
	}
	return &LinearAllocator{
		blockSize:   blockSize,
		granularity: granularity,
		live:        make(map[uint64]struct{}),
	}
}

// Granularity returns the slot size.
func (a *LinearAllocator) Granularity() uint64 { return a.granularity }

// BlockSize returns the size of the managed block.
func (a *LinearAllocator) BlockSize() uint64 { return a.blockSize }

// Allocate returns the offset of a slot able to hold size bytes. The most
// recently freed slot is reused first; otherwise the high-water mark
// grows. A size of zero or above the granularity is a programming error
// and panics.
func (a *LinearAllocator) Allocate(size uint64) (uint64, error) {
	if size == 0 || size > a.granularity {
		gal.PanicInvalid("alloc: size %d outside (0, %d]", size, a.granularity)
	}
	if n := len(a.free); n > 0 {
		off := a.free[n-1]
		a.free = a.free[:n-1]
		a.live[off] = struct{}{}
		return off, nil
	}
	if a.top+a.granularity > a.blockSize {
		return 0, fmt.Errorf("%w: linear block of %d bytes exhausted", gal.ErrOutOfDeviceMemory, a.blockSize)
	}
	off := a.top
	a.top += a.granularity
	a.live[off] = struct{}{}
	return off, nil
}

// Deallocate returns the slot at offset to the free list. Freeing an
// offset that is not allocated panics.
func (a *LinearAllocator) Deallocate(offset uint64) {
	if _, ok := a.live[offset]; !ok {
		gal.PanicInvalid("alloc: offset %d is not allocated", offset)
	}
	delete(a.live, offset)
	a.free = append(a.free, offset)
}

// Stats reports the allocator usage.
func (a *LinearAllocator) Stats() Stats {
	return Stats{
		Capacity:  a.blockSize,
		InUse:     uint64(len(a.live)) * a.granularity,
		Live:      len(a.live),
		FreeSlots: len(a.free),
		HighWater: a.top,
	}
}

// Stats describes the state of an allocator.
type Stats struct {
	Capacity  uint64
	InUse     uint64
	Live      int
	FreeSlots int
	HighWater uint64
}
