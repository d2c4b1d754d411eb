package gal

// WholeSize selects the remainder of a buffer from an offset.
const WholeSize = ^uint64(0)

// RangeFits reports whether [offset, offset+size) lies within [0, limit)
// without wrapping.
func RangeFits(offset, size, limit uint64) bool {
	return size <= limit && offset <= limit-size
}

// Extent2D is a width and height in texels or pixels.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Extent3D is a width, height and depth in texels.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Extent2D drops the depth component.
func (e Extent3D) Extent2D() Extent2D { return Extent2D{Width: e.Width, Height: e.Height} }

// Mip returns the extent of the given mip level, clamped to 1.
func (e Extent3D) Mip(level uint32) Extent3D {
	shrink := func(v uint32) uint32 {
		v >>= level
		if v == 0 {
			return 1
		}
		return v
	}
	return Extent3D{Width: shrink(e.Width), Height: shrink(e.Height), Depth: shrink(e.Depth)}
}

// Offset2D is a signed texel offset.
type Offset2D struct {
	X int32
	Y int32
}

// Offset3D is a signed texel offset in three dimensions.
type Offset3D struct {
	X int32
	Y int32
	Z int32
}

// Rect2D is an axis aligned rectangle.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// Within reports whether r lies entirely inside an area of the given size
// anchored at the origin.
func (r Rect2D) Within(area Extent2D) bool {
	if r.Offset.X < 0 || r.Offset.Y < 0 {
		return false
	}
	return uint64(r.Offset.X)+uint64(r.Extent.Width) <= uint64(area.Width) &&
		uint64(r.Offset.Y)+uint64(r.Extent.Height) <= uint64(area.Height)
}

// Viewport maps normalized device coordinates to frame buffer coordinates.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// ClearValue holds the clear color or depth/stencil value of an attachment.
// Color is interpreted as float, signed or unsigned integer data depending
// on the attachment format.
type ClearValue struct {
	Color   [4]float32
	Depth   float32
	Stencil uint32
}

// ClearColor returns a color clear value.
func ClearColor(r, g, b, a float32) ClearValue {
	return ClearValue{Color: [4]float32{r, g, b, a}}
}

// ClearDepthStencil returns a depth/stencil clear value.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil}
}
