// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gal"
)

// encodable reports whether clears can encode texels of color format f.
func encodable(f gal.Format) bool {
	info := f.Info()
	if !f.IsColor() || f.IsCompressed() || info.Type == gal.ComponentUfloat || f == gal.FormatRGB10A2Unorm {
		return false
	}
	return info.BlockSize%info.Components == 0
}

// encodeColor returns one texel of color format f holding c.
func encodeColor(f gal.Format, c [4]float32) []byte {
	info := f.Info()
	if f == gal.FormatBGRA8Unorm || f == gal.FormatBGRA8Srgb {
		c[0], c[2] = c[2], c[0]
	}
	width := info.BlockSize / info.Components
	out := make([]byte, info.BlockSize)
	for i := uint32(0); i < info.Components; i++ {
		putComponent(out[i*width:(i+1)*width], info.Type, c[i])
	}
	return out
}

func putComponent(dst []byte, t gal.ComponentType, v float32) {
	var bits uint32
	switch t {
	case gal.ComponentUnorm, gal.ComponentSrgb:
		// sRGB clear values are stored as given, without encoding
		bits = uint32(math.Round(float64(clamp(v, 0, 1)) * float64(maxUnsigned(len(dst)))))
	case gal.ComponentSnorm:
		m := float64(maxUnsigned(len(dst)) >> 1)
		bits = uint32(int32(math.Round(float64(clamp(v, -1, 1)) * m)))
	case gal.ComponentUint:
		bits = uint32(v)
	case gal.ComponentSint:
		bits = uint32(int32(v))
	case gal.ComponentFloat:
		if len(dst) == 2 {
			bits = uint32(float16(v))
		} else {
			bits = math.Float32bits(v)
		}
	}
	switch len(dst) {
	case 1:
		dst[0] = byte(bits)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(bits))
	case 4:
		binary.LittleEndian.PutUint32(dst, bits)
	}
}

func maxUnsigned(size int) uint32 {
	return uint32(1)<<(8*size) - 1
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

// encodeDepth returns the depth plane texel of f holding d.
func encodeDepth(f gal.Format, d float32) []byte {
	d = clamp(d, 0, 1)
	switch f {
	case gal.FormatD16Unorm:
		return binary.LittleEndian.AppendUint16(nil, uint16(math.Round(float64(d)*0xffff)))
	case gal.FormatD24UnormS8Uint:
		return binary.LittleEndian.AppendUint32(nil, uint32(math.Round(float64(d)*0xffffff)))
	}
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(d))
}

// float16 converts v to IEEE 754 binary16, rounding to nearest even.
func float16(v float32) uint16 {
	b := math.Float32bits(v)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23&0xff) - 127 + 15
	mant := b & 0x7fffff

	switch {
	case b&0x7fffffff == 0:
		return sign
	case b>>23&0xff == 0xff:
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case exp >= 0x1f:
		return sign | 0x7c00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint32(14 - exp)
		half := mant >> shift
		rem := mant & (1<<shift - 1)
		mid := uint32(1) << (shift - 1)
		if rem > mid || rem == mid && half&1 == 1 {
			half++
		}
		return sign | uint16(half)
	}
	half := uint32(exp)<<10 | mant>>13
	rem := mant & 0x1fff
	if rem > 0x1000 || rem == 0x1000 && half&1 == 1 {
		half++
	}
	return sign | uint16(half)
}
