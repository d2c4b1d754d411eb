// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"github.com/gogpu/gal"
	"github.com/gogpu/gal/internal/record"
)

// plane holds every subresource of one aspect, level major then layer,
// each tightly packed in blocks.
type plane struct {
	aspect  gal.ImageAspectFlags
	texel   uint64
	block   uint32
	extent  gal.Extent3D
	layers  uint32
	offsets []uint64 // index level*layers + layer
	data    []byte
}

func newPlanes(info gal.ImageCreateInfo) []*plane {
	aspects := info.Format.Info().Aspects
	var out []*plane
	for _, a := range []gal.ImageAspectFlags{gal.ImageAspectColor, gal.ImageAspectDepth, gal.ImageAspectStencil} {
		if !aspects.Has(a) {
			continue
		}
		p := &plane{
			aspect: a,
			texel:  uint64(record.TexelSize(info.Format, a)),
			block:  max(info.Format.Info().BlockExtent, 1),
			extent: info.Extent,
			layers: info.ArrayLayers,
		}
		var size uint64
		for level := uint32(0); level < info.MipLevels; level++ {
			for layer := uint32(0); layer < info.ArrayLayers; layer++ {
				p.offsets = append(p.offsets, size)
				size += p.subresourceSize(level)
			}
		}
		p.data = make([]byte, size)
		out = append(out, p)
	}
	return out
}

func (p *plane) blocks(v uint32) uint64 { return uint64((v + p.block - 1) / p.block) }

// pitches returns the row and slice pitch of a level in bytes.
func (p *plane) pitches(level uint32) (row, slice uint64) {
	e := p.extent.Mip(level)
	row = p.blocks(e.Width) * p.texel
	return row, row * p.blocks(e.Height)
}

func (p *plane) subresourceSize(level uint32) uint64 {
	_, slice := p.pitches(level)
	return slice * uint64(max(p.extent.Mip(level).Depth, 1))
}

// texelOffset returns the byte offset of texel (x, y, z) of a
// subresource. Coordinates are in texels and must be block aligned.
func (p *plane) texelOffset(level, layer uint32, x, y, z uint32) uint64 {
	row, slice := p.pitches(level)
	return p.offsets[level*p.layers+layer] +
		uint64(z)*slice + uint64(y/p.block)*row + uint64(x/p.block)*p.texel
}

// copyRegion moves one buffer image copy region between buf and the
// plane. toImage selects the direction.
func (p *plane) copyRegion(f gal.Format, buf []byte, c gal.BufferImageCopy, toImage bool) {
	l := record.RegionLayout(f, c)
	s := c.ImageSubresource
	depth := max(c.ImageExtent.Depth, 1)
	o := c.ImageOffset
	for layer := uint32(0); layer < max(s.LayerCount, 1); layer++ {
		for z := uint32(0); z < depth; z++ {
			slice := uint64(layer)*uint64(depth) + uint64(z)
			for row := uint64(0); row < l.Rows; row++ {
				b := c.BufferOffset + slice*l.SlicePitch + row*l.RowPitch
				y := uint32(o.Y) + uint32(row)*p.block
				i := p.texelOffset(s.MipLevel, s.BaseArrayLayer+layer, uint32(o.X), y, uint32(o.Z)+z)
				if toImage {
					copy(p.data[i:i+l.RowBytes], buf[b:b+l.RowBytes])
				} else {
					copy(buf[b:b+l.RowBytes], p.data[i:i+l.RowBytes])
				}
			}
		}
	}
}

// fill writes texel into a rectangle of the given levels and layers.
func (p *plane) fill(texel []byte, levels, layers [2]uint32, area gal.Rect2D) {
	for level := levels[0]; level < levels[1]; level++ {
		e := p.extent.Mip(level)
		x0 := min(uint32(area.Offset.X), e.Width)
		y0 := min(uint32(area.Offset.Y), e.Height)
		x1 := min(x0+area.Extent.Width, e.Width)
		y1 := min(y0+area.Extent.Height, e.Height)
		for layer := layers[0]; layer < layers[1]; layer++ {
			for z := uint32(0); z < max(e.Depth, 1); z++ {
				for y := y0; y < y1; y++ {
					for x := x0; x < x1; x++ {
						i := p.texelOffset(level, layer, x, y, z)
						copy(p.data[i:i+p.texel], texel)
					}
				}
			}
		}
	}
}
