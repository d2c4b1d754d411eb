package record

import (
	"errors"
	"fmt"

	"github.com/gogpu/gal"
)

func isNil(o gal.Object) bool { return o == nil }

// TexelSize returns the size in bytes of one texel, or one compressed
// block, of the given aspect of f as laid out in a buffer.
func TexelSize(f gal.Format, aspect gal.ImageAspectFlags) uint32 {
	switch {
	case aspect == gal.ImageAspectStencil:
		return 1
	case aspect == gal.ImageAspectDepth && f == gal.FormatD16Unorm:
		return 2
	case aspect == gal.ImageAspectDepth:
		return 4
	}
	return f.Info().BlockSize
}

// Layout describes how a copy region is laid out in a buffer, in bytes.
type Layout struct {
	TexelSize  uint64
	RowPitch   uint64
	SlicePitch uint64
	Rows       uint64
	RowBytes   uint64
	Slices     uint64
}

// RegionLayout computes the buffer layout of a region of an image with
// format f.
func RegionLayout(f gal.Format, c gal.BufferImageCopy) Layout {
	be := f.Info().BlockExtent
	if be == 0 {
		be = 1
	}
	blocks := func(v uint32) uint64 { return uint64((v + be - 1) / be) }

	rowLength, imageHeight := c.BufferRowLength, c.BufferImageHeight
	if rowLength == 0 {
		rowLength = c.ImageExtent.Width
	}
	if imageHeight == 0 {
		imageHeight = c.ImageExtent.Height
	}
	ts := uint64(TexelSize(f, c.ImageSubresource.Aspect))
	depth := uint64(max(c.ImageExtent.Depth, 1))
	layers := uint64(max(c.ImageSubresource.LayerCount, 1))
	l := Layout{
		TexelSize: ts,
		RowPitch:  blocks(rowLength) * ts,
		Rows:      blocks(c.ImageExtent.Height),
		RowBytes:  blocks(c.ImageExtent.Width) * ts,
		Slices:    depth * layers,
	}
	l.SlicePitch = blocks(imageHeight) * l.RowPitch
	return l
}

// Footprint returns the number of buffer bytes a region touches, measured
// from its BufferOffset.
func Footprint(f gal.Format, c gal.BufferImageCopy) uint64 {
	l := RegionLayout(f, c)
	if l.Rows == 0 || l.Slices == 0 || l.RowBytes == 0 {
		return 0
	}
	return (l.Slices-1)*l.SlicePitch + (l.Rows-1)*l.RowPitch + l.RowBytes
}

var errRegion = errors.New("bad region")

// CheckImageRegion checks the image side of a copy region.
func CheckImageRegion(info gal.ImageCreateInfo, c gal.BufferImageCopy) error {
	s := c.ImageSubresource
	aspects := info.Format.Info().Aspects
	if s.Aspect == 0 || s.Aspect&(s.Aspect-1) != 0 || !aspects.Has(s.Aspect) {
		return fmt.Errorf("%w: aspect %s of %s", errRegion, s.Aspect, info.Format)
	}
	if s.MipLevel >= info.MipLevels {
		return fmt.Errorf("%w: mip level %d of %d", errRegion, s.MipLevel, info.MipLevels)
	}
	layers := max(s.LayerCount, 1)
	if uint64(s.BaseArrayLayer)+uint64(layers) > uint64(info.ArrayLayers) {
		return fmt.Errorf("%w: layers %d+%d of %d", errRegion, s.BaseArrayLayer, layers, info.ArrayLayers)
	}
	if c.BufferRowLength != 0 && c.BufferRowLength < c.ImageExtent.Width ||
		c.BufferImageHeight != 0 && c.BufferImageHeight < c.ImageExtent.Height {
		return fmt.Errorf("%w: buffer row length or image height below extent", errRegion)
	}
	o, e := c.ImageOffset, c.ImageExtent
	e.Depth = max(e.Depth, 1)
	mip := info.Extent.Mip(s.MipLevel)
	if o.X < 0 || o.Y < 0 || o.Z < 0 || e.Width == 0 || e.Height == 0 {
		return fmt.Errorf("%w: offset %+v extent %+v", errRegion, o, e)
	}
	if uint64(o.X)+uint64(e.Width) > uint64(mip.Width) ||
		uint64(o.Y)+uint64(e.Height) > uint64(mip.Height) ||
		uint64(o.Z)+uint64(e.Depth) > uint64(mip.Depth) {
		return fmt.Errorf("%w: %+v at %+v exceeds mip extent %+v", errRegion, e, o, mip)
	}
	if be := info.Format.Info().BlockExtent; be > 1 {
		aligned := func(off int32, ext, full uint32) bool {
			return uint32(off)%be == 0 && (ext%be == 0 || uint32(off)+ext == full)
		}
		if !aligned(o.X, e.Width, mip.Width) || !aligned(o.Y, e.Height, mip.Height) {
			return fmt.Errorf("%w: region not aligned to %dx%d blocks", errRegion, be, be)
		}
	}
	if c.BufferOffset%uint64(TexelSize(info.Format, s.Aspect)) != 0 ||
		info.Format.IsDepthStencil() && c.BufferOffset%4 != 0 {
		return fmt.Errorf("%w: buffer offset %d misaligned", errRegion, c.BufferOffset)
	}
	return nil
}
