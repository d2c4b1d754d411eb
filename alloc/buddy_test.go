// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package alloc

import (
	"errors"
	"testing"

	"github.com/gogpu/gal"
)

func TestBuddyAllocatorSplitAndMerge(t *testing.T) {
	b := NewBuddyAllocator(1024, 64)

	a1, err := b.Allocate(100) // 128 block
	if err != nil {
		t.Fatal(err)
	}
	a2, err := b.Allocate(64)
	if err != nil {
		t.Fatal(err)
	}
	a3, err := b.Allocate(512)
	if err != nil {
		t.Fatal(err)
	}
	if a1%128 != 0 || a2%64 != 0 || a3%512 != 0 {
		t.Errorf("offsets %d %d %d not aligned to their block sizes", a1, a2, a3)
	}
	if got, want := b.Stats().InUse, uint64(128+64+512); got != want {
		t.Errorf("InUse = %d, want %d", got, want)
	}

	b.Deallocate(a1)
	b.Deallocate(a2)
	b.Deallocate(a3)
	s := b.Stats()
	if s.InUse != 0 || s.Live != 0 {
		t.Fatalf("stats after free = %+v", s)
	}
	if s.FreeSlots != 1 {
		t.Errorf("FreeSlots = %d, want 1 after full merge", s.FreeSlots)
	}
	if _, err := b.Allocate(1024); err != nil {
		t.Errorf("whole block after merge: %v", err)
	}
}

func TestBuddyAllocatorExhaustion(t *testing.T) {
	b := NewBuddyAllocator(256, 64)
	if _, err := b.Allocate(200); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Allocate(1); !errors.Is(err, gal.ErrOutOfDeviceMemory) {
		t.Errorf("err = %v, want ErrOutOfDeviceMemory", err)
	}
	if _, err := b.Allocate(512); !errors.Is(err, gal.ErrOutOfDeviceMemory) {
		t.Errorf("oversize err = %v, want ErrOutOfDeviceMemory", err)
	}
}

func TestBuddyBlockSizeFor(t *testing.T) {
	b := NewBuddyAllocator(4096, 64)
	tests := []struct {
		size, want uint64
	}{
		{1, 64},
		{64, 64},
		{65, 128},
		{1000, 1024},
		{4096, 4096},
	}
	for _, tt := range tests {
		if got := b.BlockSizeFor(tt.size); got != tt.want {
			t.Errorf("BlockSizeFor(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestBuddyAllocatorPreconditions(t *testing.T) {
	expectInvalidPanic(t, "non power of two", func() { NewBuddyAllocator(1000, 64) })
	b := NewBuddyAllocator(1024, 64)
	expectInvalidPanic(t, "unknown offset", func() { b.Deallocate(64) })
}
