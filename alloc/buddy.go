// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package alloc

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gal"
)

// BuddyAllocator serves power-of-two sized ranges of one block. Freed
// ranges merge with their buddy when it is free too.
type BuddyAllocator struct {
	size     uint64
	minBlock uint64
	levels   int
	// free[k] holds free offsets of blocks of size minBlock<<k.
	free  []map[uint64]struct{}
	owned map[uint64]int // offset -> level of live allocations
	inUse uint64
}

// NewBuddyAllocator returns an allocator over size bytes with a smallest
// block of minBlock bytes. Both must be powers of two.
func NewBuddyAllocator(size, minBlock uint64) *BuddyAllocator {
	if !isPow2(size) || !isPow2(minBlock) || minBlock > size {
		gal.PanicInvalid("alloc: buddy sizes %d/%d must be powers of two", size, minBlock)
	}
	levels := bits.TrailingZeros64(size) - bits.TrailingZeros64(minBlock) + 1
	b := &BuddyAllocator{
		size:     size,
		minBlock: minBlock,
		levels:   levels,
		free:     make([]map[uint64]struct{}, levels),
		owned:    make(map[uint64]int),
	}
	for i := range b.free {
		b.free[i] = make(map[uint64]struct{})
	}
	b.free[levels-1][0] = struct{}{}
	return b
}

// Allocate returns the offset of a block holding size bytes. Offsets are
// aligned to the block size.
func (b *BuddyAllocator) Allocate(size uint64) (uint64, error) {
	if size == 0 {
		gal.PanicInvalid("alloc: zero-sized buddy allocation")
	}
	if size > b.size {
		return 0, fmt.Errorf("%w: %d bytes exceed buddy block of %d", gal.ErrOutOfDeviceMemory, size, b.size)
	}
	want := b.level(size)
	k := want
	for k < b.levels && len(b.free[k]) == 0 {
		k++
	}
	if k == b.levels {
		return 0, fmt.Errorf("%w: no free buddy block of %d bytes", gal.ErrOutOfDeviceMemory, b.blockSize(want))
	}
	off := lowest(b.free[k])
	delete(b.free[k], off)
	for k > want {
		k--
		b.free[k][off+b.blockSize(k)] = struct{}{}
	}
	b.owned[off] = want
	b.inUse += b.blockSize(want)
	return off, nil
}

// Deallocate frees the block at offset. Unknown offsets panic.
func (b *BuddyAllocator) Deallocate(offset uint64) {
	k, ok := b.owned[offset]
	if !ok {
		gal.PanicInvalid("alloc: buddy offset %d is not allocated", offset)
	}
	delete(b.owned, offset)
	b.inUse -= b.blockSize(k)
	for k < b.levels-1 {
		buddy := offset ^ b.blockSize(k)
		if _, free := b.free[k][buddy]; !free {
			break
		}
		delete(b.free[k], buddy)
		offset = min(offset, buddy)
		k++
	}
	b.free[k][offset] = struct{}{}
}

// BlockSizeFor returns the size actually reserved for a request of size
// bytes.
func (b *BuddyAllocator) BlockSizeFor(size uint64) uint64 { return b.blockSize(b.level(size)) }

// Stats reports the allocator usage. FreeSlots counts free blocks of any
// size.
func (b *BuddyAllocator) Stats() Stats {
	var free int
	var high uint64
	for _, m := range b.free {
		free += len(m)
	}
	for off, k := range b.owned {
		high = max(high, off+b.blockSize(k))
	}
	return Stats{
		Capacity:  b.size,
		InUse:     b.inUse,
		Live:      len(b.owned),
		FreeSlots: free,
		HighWater: high,
	}
}

func (b *BuddyAllocator) blockSize(level int) uint64 { return b.minBlock << level }

func (b *BuddyAllocator) level(size uint64) int {
	if size <= b.minBlock {
		return 0
	}
	return bits.Len64(size-1) - bits.TrailingZeros64(b.minBlock)
}

func lowest(m map[uint64]struct{}) uint64 {
	first := true
	var lo uint64
	for off := range m {
		if first || off < lo {
			lo, first = off, false
		}
	}
	return lo
}

func isPow2(v uint64) bool { return v != 0 && v&(v-1) == 0 }
