// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package table implements the data tables behind the convert packages.
//
// An Enum maps a dense abstract enumeration onto native values and back.
// A Flags maps single abstract bits onto native bits; conversion of a
// mask is the OR of the conversions of its bits. Looking up a value
// without an entry is a programming error and panics with an error
// wrapping gal.ErrInvalidArgument.
package table

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gal"
)

// Enum is a bidirectional table between an abstract enum A and a native
// value N.
type Enum[A ~uint32, N comparable] struct {
	name  string
	to    []N
	has   []bool
	from  map[N]A
	count int
}

// NewEnum builds a table from entries. Two abstract values mapping to the
// same native value make the table ambiguous in the native direction;
// FromNative then returns the lowest of them.
func NewEnum[A ~uint32, N comparable](name string, entries map[A]N) *Enum[A, N] {
	var size A
	for a := range entries {
		size = max(size, a+1)
	}
	t := &Enum[A, N]{
		name:  name,
		to:    make([]N, size),
		has:   make([]bool, size),
		from:  make(map[N]A, len(entries)),
		count: len(entries),
	}
	for a, n := range entries {
		t.to[a] = n
		t.has[a] = true
		if prev, dup := t.from[n]; !dup || a < prev {
			t.from[n] = a
		}
	}
	return t
}

// Name returns the table name used in panic messages.
func (t *Enum[A, N]) Name() string { return t.name }

// Len returns the number of entries.
func (t *Enum[A, N]) Len() int { return t.count }

// Has reports whether a has a native equivalent.
func (t *Enum[A, N]) Has(a A) bool { return int(a) < len(t.has) && t.has[a] }

// HasNative reports whether n has an abstract equivalent.
func (t *Enum[A, N]) HasNative(n N) bool {
	_, ok := t.from[n]
	return ok
}

// To converts a to its native value.
func (t *Enum[A, N]) To(a A) N {
	if !t.Has(a) {
		gal.PanicInvalid("%s: no native value for %d", t.name, uint32(a))
	}
	return t.to[a]
}

// From converts a native value back.
func (t *Enum[A, N]) From(n N) A {
	a, ok := t.from[n]
	if !ok {
		gal.PanicInvalid("%s: unknown native value %v", t.name, n)
	}
	return a
}

// Keys returns the abstract values present in the table in ascending
// order.
func (t *Enum[A, N]) Keys() []A {
	keys := make([]A, 0, t.count)
	for a, ok := range t.has {
		if ok {
			keys = append(keys, A(a))
		}
	}
	return keys
}

// Native is the set of integer types native flag masks use.
type Native interface {
	~int32 | ~uint32 | ~uint64
}

// Flags converts bitmasks one bit at a time.
type Flags[A ~uint32, N Native] struct {
	name string
	to   [32]N
	has  uint32
	from map[N]A
}

// NewFlags builds a table from single-bit entries. Native values may have
// several bits set; abstract keys must be single bits.
func NewFlags[A ~uint32, N Native](name string, entries map[A]N) *Flags[A, N] {
	t := &Flags[A, N]{name: name, from: make(map[N]A, len(entries))}
	for a, n := range entries {
		if bits.OnesCount32(uint32(a)) != 1 {
			panic(fmt.Sprintf("table %s: key %#x is not a single bit", name, uint32(a)))
		}
		i := bits.TrailingZeros32(uint32(a))
		t.to[i] = n
		t.has |= uint32(a)
		t.from[n] |= a
	}
	return t
}

// Name returns the table name used in panic messages.
func (t *Flags[A, N]) Name() string { return t.name }

// Mask returns the union of the abstract bits with a native equivalent.
func (t *Flags[A, N]) Mask() A { return A(t.has) }

// Has reports whether every bit of a has a native equivalent.
func (t *Flags[A, N]) Has(a A) bool { return uint32(a)&^t.has == 0 }

// To converts a mask; the result is the OR of the per-bit conversions.
func (t *Flags[A, N]) To(a A) N {
	if !t.Has(a) {
		gal.PanicInvalid("%s: no native value for bits %#x", t.name, uint32(a)&^t.has)
	}
	var n N
	for v := uint32(a); v != 0; v &= v - 1 {
		n |= t.to[bits.TrailingZeros32(v)]
	}
	return n
}

// From converts a native mask back. Every native entry contained in n
// contributes its abstract bit; native bits not covered by any entry
// panic.
func (t *Flags[A, N]) From(n N) A {
	var a A
	var covered N
	for native, abstract := range t.from {
		if native != 0 && n&native == native {
			a |= abstract
			covered |= native
		}
	}
	if n&^covered != 0 {
		gal.PanicInvalid("%s: unknown native bits %#x", t.name, uint64(n&^covered))
	}
	return a
}
