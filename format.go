package gal

import "fmt"

// Format describes the texel layout of images, frame buffer attachments and
// vertex attributes.
type Format uint32

// Supported formats. The numeric values are stable and dense so translation
// tables can be plain arrays.
const (
	FormatUndefined Format = iota
	FormatR8Unorm
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint
	FormatRG8Unorm
	FormatRG8Uint
	FormatRGBA8Unorm
	FormatRGBA8Srgb
	FormatRGBA8Snorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatBGRA8Unorm
	FormatBGRA8Srgb
	FormatR16Uint
	FormatR16Sint
	FormatR16Float
	FormatRG16Float
	FormatRGBA16Uint
	FormatRGBA16Float
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float
	FormatRGB32Uint
	FormatRGB32Sint
	FormatRGB32Float
	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float
	FormatRGB10A2Unorm
	FormatRG11B10Float
	FormatD16Unorm
	FormatD32Float
	FormatD24UnormS8Uint
	FormatD32FloatS8Uint
	FormatS8Uint
	FormatBC1RGBAUnorm
	FormatBC3RGBAUnorm
	FormatBC7RGBAUnorm

	formatCount
)

// ComponentType is the numeric interpretation of a format's components.
type ComponentType uint8

const (
	ComponentNone ComponentType = iota
	ComponentUnorm
	ComponentSnorm
	ComponentUint
	ComponentSint
	ComponentFloat
	ComponentSrgb
	ComponentUfloat
)

// NumericClass groups component types by the shader type that reads them.
type NumericClass uint8

const (
	NumericFloat NumericClass = iota
	NumericUint
	NumericSint
)

// FormatInfo describes the memory layout of a format.
type FormatInfo struct {
	Name string
	// BlockSize is the size in bytes of one texel, or of one compressed block.
	BlockSize uint32
	// BlockExtent is the width and height of a compressed block, 1 otherwise.
	BlockExtent uint32
	Components  uint32
	Type        ComponentType
	Aspects     ImageAspectFlags
}

var formatInfos = [formatCount]FormatInfo{
	FormatUndefined:      {Name: "Undefined"},
	FormatR8Unorm:        {"R8Unorm", 1, 1, 1, ComponentUnorm, ImageAspectColor},
	FormatR8Snorm:        {"R8Snorm", 1, 1, 1, ComponentSnorm, ImageAspectColor},
	FormatR8Uint:         {"R8Uint", 1, 1, 1, ComponentUint, ImageAspectColor},
	FormatR8Sint:         {"R8Sint", 1, 1, 1, ComponentSint, ImageAspectColor},
	FormatRG8Unorm:       {"RG8Unorm", 2, 1, 2, ComponentUnorm, ImageAspectColor},
	FormatRG8Uint:        {"RG8Uint", 2, 1, 2, ComponentUint, ImageAspectColor},
	FormatRGBA8Unorm:     {"RGBA8Unorm", 4, 1, 4, ComponentUnorm, ImageAspectColor},
	FormatRGBA8Srgb:      {"RGBA8Srgb", 4, 1, 4, ComponentSrgb, ImageAspectColor},
	FormatRGBA8Snorm:     {"RGBA8Snorm", 4, 1, 4, ComponentSnorm, ImageAspectColor},
	FormatRGBA8Uint:      {"RGBA8Uint", 4, 1, 4, ComponentUint, ImageAspectColor},
	FormatRGBA8Sint:      {"RGBA8Sint", 4, 1, 4, ComponentSint, ImageAspectColor},
	FormatBGRA8Unorm:     {"BGRA8Unorm", 4, 1, 4, ComponentUnorm, ImageAspectColor},
	FormatBGRA8Srgb:      {"BGRA8Srgb", 4, 1, 4, ComponentSrgb, ImageAspectColor},
	FormatR16Uint:        {"R16Uint", 2, 1, 1, ComponentUint, ImageAspectColor},
	FormatR16Sint:        {"R16Sint", 2, 1, 1, ComponentSint, ImageAspectColor},
	FormatR16Float:       {"R16Float", 2, 1, 1, ComponentFloat, ImageAspectColor},
	FormatRG16Float:      {"RG16Float", 4, 1, 2, ComponentFloat, ImageAspectColor},
	FormatRGBA16Uint:     {"RGBA16Uint", 8, 1, 4, ComponentUint, ImageAspectColor},
	FormatRGBA16Float:    {"RGBA16Float", 8, 1, 4, ComponentFloat, ImageAspectColor},
	FormatR32Uint:        {"R32Uint", 4, 1, 1, ComponentUint, ImageAspectColor},
	FormatR32Sint:        {"R32Sint", 4, 1, 1, ComponentSint, ImageAspectColor},
	FormatR32Float:       {"R32Float", 4, 1, 1, ComponentFloat, ImageAspectColor},
	FormatRG32Uint:       {"RG32Uint", 8, 1, 2, ComponentUint, ImageAspectColor},
	FormatRG32Sint:       {"RG32Sint", 8, 1, 2, ComponentSint, ImageAspectColor},
	FormatRG32Float:      {"RG32Float", 8, 1, 2, ComponentFloat, ImageAspectColor},
	FormatRGB32Uint:      {"RGB32Uint", 12, 1, 3, ComponentUint, ImageAspectColor},
	FormatRGB32Sint:      {"RGB32Sint", 12, 1, 3, ComponentSint, ImageAspectColor},
	FormatRGB32Float:     {"RGB32Float", 12, 1, 3, ComponentFloat, ImageAspectColor},
	FormatRGBA32Uint:     {"RGBA32Uint", 16, 1, 4, ComponentUint, ImageAspectColor},
	FormatRGBA32Sint:     {"RGBA32Sint", 16, 1, 4, ComponentSint, ImageAspectColor},
	FormatRGBA32Float:    {"RGBA32Float", 16, 1, 4, ComponentFloat, ImageAspectColor},
	FormatRGB10A2Unorm:   {"RGB10A2Unorm", 4, 1, 4, ComponentUnorm, ImageAspectColor},
	FormatRG11B10Float:   {"RG11B10Float", 4, 1, 3, ComponentUfloat, ImageAspectColor},
	FormatD16Unorm:       {"D16Unorm", 2, 1, 1, ComponentUnorm, ImageAspectDepth},
	FormatD32Float:       {"D32Float", 4, 1, 1, ComponentFloat, ImageAspectDepth},
	FormatD24UnormS8Uint: {"D24UnormS8Uint", 4, 1, 2, ComponentUnorm, ImageAspectDepth | ImageAspectStencil},
	FormatD32FloatS8Uint: {"D32FloatS8Uint", 8, 1, 2, ComponentFloat, ImageAspectDepth | ImageAspectStencil},
	FormatS8Uint:         {"S8Uint", 1, 1, 1, ComponentUint, ImageAspectStencil},
	FormatBC1RGBAUnorm:   {"BC1RGBAUnorm", 8, 4, 4, ComponentUnorm, ImageAspectColor},
	FormatBC3RGBAUnorm:   {"BC3RGBAUnorm", 16, 4, 4, ComponentUnorm, ImageAspectColor},
	FormatBC7RGBAUnorm:   {"BC7RGBAUnorm", 16, 4, 4, ComponentUnorm, ImageAspectColor},
}

// Formats returns every defined format except FormatUndefined.
func Formats() []Format {
	out := make([]Format, 0, formatCount-1)
	for f := FormatUndefined + 1; f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}

// Valid reports whether f is a defined format value (FormatUndefined included).
func (f Format) Valid() bool { return f < formatCount }

// Info returns the layout description of f. Unknown values yield a zero Info.
func (f Format) Info() FormatInfo {
	if !f.Valid() {
		return FormatInfo{}
	}
	return formatInfos[f]
}

func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", uint32(f))
	}
	return formatInfos[f].Name
}

// HasDepth reports whether f has a depth aspect.
func (f Format) HasDepth() bool { return f.Info().Aspects.Has(ImageAspectDepth) }

// HasStencil reports whether f has a stencil aspect.
func (f Format) HasStencil() bool { return f.Info().Aspects.Has(ImageAspectStencil) }

// IsDepthStencil reports whether f has a depth or stencil aspect.
func (f Format) IsDepthStencil() bool { return f.HasDepth() || f.HasStencil() }

// IsColor reports whether f is a color format.
func (f Format) IsColor() bool { return f.Info().Aspects == ImageAspectColor }

// IsCompressed reports whether f is block compressed.
func (f Format) IsCompressed() bool { return f.Info().BlockExtent > 1 }

// IsSRGB reports whether f stores sRGB encoded color.
func (f Format) IsSRGB() bool { return f.Info().Type == ComponentSrgb }

// Class returns the shader-visible numeric class of f.
func (f Format) Class() NumericClass {
	switch f.Info().Type {
	case ComponentUint:
		return NumericUint
	case ComponentSint:
		return NumericSint
	default:
		return NumericFloat
	}
}

// Compatible reports whether data of format f can be read by a shader
// variable declared with format other. Component counts may differ.
func (f Format) Compatible(other Format) bool {
	if f == FormatUndefined || other == FormatUndefined {
		return false
	}
	return f.Class() == other.Class()
}

// Size returns the number of bytes occupied by a tightly packed region of
// the given extent.
func (f Format) Size(e Extent3D) uint64 {
	info := f.Info()
	if info.BlockSize == 0 {
		return 0
	}
	bw := uint64((e.Width + info.BlockExtent - 1) / info.BlockExtent)
	bh := uint64((e.Height + info.BlockExtent - 1) / info.BlockExtent)
	d := uint64(e.Depth)
	if d == 0 {
		d = 1
	}
	return bw * bh * d * uint64(info.BlockSize)
}
