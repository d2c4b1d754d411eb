// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl translates gal enums to OpenGL ES 3 enumerants.
//
// GL state is set through separate calls rather than descriptor structs,
// so several conversions here return more than one value: a format is an
// internal format, a pixel format and a pixel type, and a sampler filter
// folds the mipmap mode into the minification filter.
package gl

import (
	gles "github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/internal/table"
)

// Enum is a GLenum.
type Enum = uint32

var compareOps = table.NewEnum("gl.CompareOp", map[gal.CompareOp]Enum{
	gal.CompareOpNever:          gles.NEVER,
	gal.CompareOpLess:           gles.LESS,
	gal.CompareOpEqual:          gles.EQUAL,
	gal.CompareOpLessOrEqual:    gles.LEQUAL,
	gal.CompareOpGreater:        gles.GREATER,
	gal.CompareOpNotEqual:       gles.NOTEQUAL,
	gal.CompareOpGreaterOrEqual: gles.GEQUAL,
	gal.CompareOpAlways:         gles.ALWAYS,
})

// CompareOp returns the depth, stencil or sampler comparison function.
func CompareOp(v gal.CompareOp) Enum { return compareOps.To(v) }

// CompareOpBack converts a comparison function back.
func CompareOpBack(v Enum) gal.CompareOp { return compareOps.From(v) }

var blendFactors = table.NewEnum("gl.BlendFactor", map[gal.BlendFactor]Enum{
	gal.BlendFactorZero:                  gles.ZERO,
	gal.BlendFactorOne:                   gles.ONE,
	gal.BlendFactorSrcColor:              gles.SRC_COLOR,
	gal.BlendFactorOneMinusSrcColor:      gles.ONE_MINUS_SRC_COLOR,
	gal.BlendFactorDstColor:              gles.DST_COLOR,
	gal.BlendFactorOneMinusDstColor:      gles.ONE_MINUS_DST_COLOR,
	gal.BlendFactorSrcAlpha:              gles.SRC_ALPHA,
	gal.BlendFactorOneMinusSrcAlpha:      gles.ONE_MINUS_SRC_ALPHA,
	gal.BlendFactorDstAlpha:              gles.DST_ALPHA,
	gal.BlendFactorOneMinusDstAlpha:      gles.ONE_MINUS_DST_ALPHA,
	gal.BlendFactorConstantColor:         gles.CONSTANT_COLOR,
	gal.BlendFactorOneMinusConstantColor: gles.ONE_MINUS_CONSTANT_COLOR,
	gal.BlendFactorConstantAlpha:         gles.CONSTANT_ALPHA,
	gal.BlendFactorOneMinusConstantAlpha: gles.ONE_MINUS_CONSTANT_ALPHA,
	gal.BlendFactorSrcAlphaSaturate:      gles.SRC_ALPHA_SATURATE,
})

// BlendFactor converts a blend factor.
func BlendFactor(v gal.BlendFactor) Enum { return blendFactors.To(v) }

// BlendFactorBack converts a blend factor back.
func BlendFactorBack(v Enum) gal.BlendFactor { return blendFactors.From(v) }

var blendOps = table.NewEnum("gl.BlendOp", map[gal.BlendOp]Enum{
	gal.BlendOpAdd:             gles.FUNC_ADD,
	gal.BlendOpSubtract:        gles.FUNC_SUBTRACT,
	gal.BlendOpReverseSubtract: gles.FUNC_REVERSE_SUBTRACT,
	gal.BlendOpMin:             gles.MIN,
	gal.BlendOpMax:             gles.MAX,
})

// BlendOp returns the blend equation.
func BlendOp(v gal.BlendOp) Enum { return blendOps.To(v) }

// BlendOpBack converts a blend equation back.
func BlendOpBack(v Enum) gal.BlendOp { return blendOps.From(v) }

var stencilOps = table.NewEnum("gl.StencilOp", map[gal.StencilOp]Enum{
	gal.StencilOpKeep:              gles.KEEP,
	gal.StencilOpZero:              gles.ZERO,
	gal.StencilOpReplace:           gles.REPLACE,
	gal.StencilOpIncrementAndClamp: gles.INCR,
	gal.StencilOpDecrementAndClamp: gles.DECR,
	gal.StencilOpInvert:            gles.INVERT,
	gal.StencilOpIncrementAndWrap:  gles.INCR_WRAP,
	gal.StencilOpDecrementAndWrap:  gles.DECR_WRAP,
})

// StencilOp converts a stencil op.
func StencilOp(v gal.StencilOp) Enum { return stencilOps.To(v) }

// StencilOpBack converts a stencil op back.
func StencilOpBack(v Enum) gal.StencilOp { return stencilOps.From(v) }

var topologies = table.NewEnum("gl.PrimitiveTopology", map[gal.PrimitiveTopology]Enum{
	gal.PrimitiveTopologyPointList:     gles.POINTS,
	gal.PrimitiveTopologyLineList:      gles.LINES,
	gal.PrimitiveTopologyLineStrip:     gles.LINE_STRIP,
	gal.PrimitiveTopologyTriangleList:  gles.TRIANGLES,
	gal.PrimitiveTopologyTriangleStrip: gles.TRIANGLE_STRIP,
	gal.PrimitiveTopologyTriangleFan:   gles.TRIANGLE_FAN,
})

// SupportsPrimitiveTopology reports whether t can be drawn. Adjacency and
// patch topologies cannot.
func SupportsPrimitiveTopology(t gal.PrimitiveTopology) bool { return topologies.Has(t) }

// PrimitiveTopology returns the draw mode.
func PrimitiveTopology(v gal.PrimitiveTopology) Enum { return topologies.To(v) }

// PrimitiveTopologyBack converts a draw mode back.
func PrimitiveTopologyBack(v Enum) gal.PrimitiveTopology { return topologies.From(v) }

var frontFaces = table.NewEnum("gl.FrontFace", map[gal.FrontFace]Enum{
	gal.FrontFaceCounterClockwise: gles.CCW,
	gal.FrontFaceClockwise:        gles.CW,
})

// FrontFace converts a winding order.
func FrontFace(v gal.FrontFace) Enum { return frontFaces.To(v) }

// FrontFaceBack converts a winding order back.
func FrontFaceBack(v Enum) gal.FrontFace { return frontFaces.From(v) }

var cullFaces = table.NewEnum("gl.CullMode", map[gal.CullModeFlags]Enum{
	gal.CullModeFront:        gles.FRONT,
	gal.CullModeBack:         gles.BACK,
	gal.CullModeFrontAndBack: gles.FRONT_AND_BACK,
})

// CullMode returns the face passed to glCullFace and whether CULL_FACE
// is enabled at all.
func CullMode(m gal.CullModeFlags) (face Enum, enabled bool) {
	if m == gal.CullModeNone {
		return gles.BACK, false
	}
	return cullFaces.To(m), true
}

// CullModeBack converts a glCullFace face and enable bit back.
func CullModeBack(face Enum, enabled bool) gal.CullModeFlags {
	if !enabled {
		return gal.CullModeNone
	}
	return cullFaces.From(face)
}

var addressModes = table.NewEnum("gl.AddressMode", map[gal.AddressMode]Enum{
	gal.AddressModeRepeat:         gles.REPEAT,
	gal.AddressModeMirroredRepeat: gles.MIRRORED_REPEAT,
	gal.AddressModeClampToEdge:    gles.CLAMP_TO_EDGE,
})

// SupportsAddressMode reports whether m exists in OpenGL ES 3.0.
func SupportsAddressMode(m gal.AddressMode) bool { return addressModes.Has(m) }

// AddressMode returns the texture wrap mode.
func AddressMode(v gal.AddressMode) Enum { return addressModes.To(v) }

// AddressModeBack converts a wrap mode back.
func AddressModeBack(v Enum) gal.AddressMode { return addressModes.From(v) }

var magFilters = table.NewEnum("gl.Filter", map[gal.Filter]Enum{
	gal.FilterNearest: gles.NEAREST,
	gal.FilterLinear:  gles.LINEAR,
})

// MagFilter returns TEXTURE_MAG_FILTER for f.
func MagFilter(f gal.Filter) Enum { return magFilters.To(f) }

// MinFilter returns TEXTURE_MIN_FILTER for a filter and mipmap mode.
// Without mipmaps the mipmap mode is ignored.
func MinFilter(f gal.Filter, m gal.MipmapMode, mipmapped bool) Enum {
	if !mipmapped {
		return magFilters.To(f)
	}
	switch {
	case f == gal.FilterNearest && m == gal.MipmapModeNearest:
		return gles.NEAREST_MIPMAP_NEAREST
	case f == gal.FilterLinear && m == gal.MipmapModeNearest:
		return gles.LINEAR_MIPMAP_NEAREST
	case f == gal.FilterNearest && m == gal.MipmapModeLinear:
		return gles.NEAREST_MIPMAP_LINEAR
	case f == gal.FilterLinear && m == gal.MipmapModeLinear:
		return gles.LINEAR_MIPMAP_LINEAR
	}
	gal.PanicInvalid("gl.MinFilter: %s/%s", f, m)
	return 0
}

// MinFilterBack splits a minification filter into its filter and mipmap
// mode. Non-mipmapped filters report MipmapModeNearest.
func MinFilterBack(v Enum) (gal.Filter, gal.MipmapMode) {
	switch v {
	case gles.NEAREST, gles.NEAREST_MIPMAP_NEAREST:
		return gal.FilterNearest, gal.MipmapModeNearest
	case gles.LINEAR, gles.LINEAR_MIPMAP_NEAREST:
		return gal.FilterLinear, gal.MipmapModeNearest
	case gles.NEAREST_MIPMAP_LINEAR:
		return gal.FilterNearest, gal.MipmapModeLinear
	case gles.LINEAR_MIPMAP_LINEAR:
		return gal.FilterLinear, gal.MipmapModeLinear
	}
	gal.PanicInvalid("gl.MinFilterBack: %#x", v)
	return 0, 0
}

var indexTypes = table.NewEnum("gl.IndexType", map[gal.IndexType]Enum{
	gal.IndexTypeUint16: gles.UNSIGNED_SHORT,
	gal.IndexTypeUint32: gles.UNSIGNED_INT,
})

// IndexType returns the element type passed to glDrawElements.
func IndexType(v gal.IndexType) Enum { return indexTypes.To(v) }

// IndexTypeBack converts an element type back.
func IndexTypeBack(v Enum) gal.IndexType { return indexTypes.From(v) }

var targets = table.NewEnum("gl.ImageViewType", map[gal.ImageViewType]Enum{
	gal.ImageViewType2D:      gles.TEXTURE_2D,
	gal.ImageViewType3D:      gles.TEXTURE_3D,
	gal.ImageViewTypeCube:    gles.TEXTURE_CUBE_MAP,
	gal.ImageViewType2DArray: gles.TEXTURE_2D_ARRAY,
})

// SupportsImageViewType reports whether t has a texture target. 1D and
// cube array textures have none in OpenGL ES 3.0.
func SupportsImageViewType(t gal.ImageViewType) bool { return targets.Has(t) }

// Target returns the texture target a view binds to. Multisampled 2D
// views use TEXTURE_2D_MULTISAMPLE.
func Target(t gal.ImageViewType, samples gal.SampleCount) Enum {
	if t == gal.ImageViewType2D && samples > gal.SampleCount1 {
		return gles.TEXTURE_2D_MULTISAMPLE
	}
	return targets.To(t)
}

var shaderTypes = table.NewEnum("gl.ShaderStage", map[gal.ShaderStageFlags]Enum{
	gal.ShaderStageVertex:   gles.VERTEX_SHADER,
	gal.ShaderStageFragment: gles.FRAGMENT_SHADER,
	gal.ShaderStageCompute:  gles.COMPUTE_SHADER,
})

// SupportsShaderStage reports whether s is a single stage GL can compile.
func SupportsShaderStage(s gal.ShaderStageFlags) bool { return shaderTypes.Has(s) }

// ShaderType returns the glCreateShader type for a single stage.
func ShaderType(s gal.ShaderStageFlags) Enum { return shaderTypes.To(s) }

// ShaderTypeBack converts a shader type back.
func ShaderTypeBack(v Enum) gal.ShaderStageFlags { return shaderTypes.From(v) }

// ClearMask returns the glClear mask for an aspect mask.
func ClearMask(a gal.ImageAspectFlags) Enum {
	var m Enum
	if a&gal.ImageAspectColor != 0 {
		m |= gles.COLOR_BUFFER_BIT
	}
	if a&gal.ImageAspectDepth != 0 {
		m |= gles.DEPTH_BUFFER_BIT
	}
	if a&gal.ImageAspectStencil != 0 {
		m |= gles.STENCIL_BUFFER_BIT
	}
	return m
}

// PixelFormat is how a gal.Format is named to glTexImage and
// glReadPixels.
type PixelFormat struct {
	Internal Enum
	Format   Enum
	Type     Enum
}

var formats = table.NewEnum("gl.Format", map[gal.Format]PixelFormat{
	gal.FormatR8Unorm:        {gles.R8, gles.RED, gles.UNSIGNED_BYTE},
	gal.FormatR8Uint:         {gles.R8UI, gles.RED_INTEGER, gles.UNSIGNED_BYTE},
	gal.FormatR8Sint:         {gles.R8I, gles.RED_INTEGER, gles.BYTE},
	gal.FormatRG8Unorm:       {gles.RG8, gles.RG, gles.UNSIGNED_BYTE},
	gal.FormatRG8Uint:        {gles.RG8UI, gles.RG_INTEGER, gles.UNSIGNED_BYTE},
	gal.FormatRGBA8Unorm:     {gles.RGBA8, gles.RGBA, gles.UNSIGNED_BYTE},
	gal.FormatRGBA8Srgb:      {gles.SRGB8_ALPHA8, gles.RGBA, gles.UNSIGNED_BYTE},
	gal.FormatRGBA8Uint:      {gles.RGBA8UI, gles.RGBA_INTEGER, gles.UNSIGNED_BYTE},
	gal.FormatRGBA8Sint:      {gles.RGBA8I, gles.RGBA_INTEGER, gles.BYTE},
	gal.FormatBGRA8Unorm:     {gles.RGBA8, gles.BGRA, gles.UNSIGNED_BYTE},
	gal.FormatBGRA8Srgb:      {gles.SRGB8_ALPHA8, gles.BGRA, gles.UNSIGNED_BYTE},
	gal.FormatR16Uint:        {gles.R16UI, gles.RED_INTEGER, gles.UNSIGNED_SHORT},
	gal.FormatR16Sint:        {gles.R16I, gles.RED_INTEGER, gles.SHORT},
	gal.FormatR16Float:       {gles.R16F, gles.RED, gles.HALF_FLOAT},
	gal.FormatRG16Float:      {gles.RG16F, gles.RG, gles.HALF_FLOAT},
	gal.FormatRGBA16Uint:     {gles.RGBA16UI, gles.RGBA_INTEGER, gles.UNSIGNED_SHORT},
	gal.FormatRGBA16Float:    {gles.RGBA16F, gles.RGBA, gles.HALF_FLOAT},
	gal.FormatR32Uint:        {gles.R32UI, gles.RED_INTEGER, gles.UNSIGNED_INT},
	gal.FormatR32Sint:        {gles.R32I, gles.RED_INTEGER, gles.INT},
	gal.FormatR32Float:       {gles.R32F, gles.RED, gles.FLOAT},
	gal.FormatRG32Uint:       {gles.RG32UI, gles.RG_INTEGER, gles.UNSIGNED_INT},
	gal.FormatRG32Sint:       {gles.RG32I, gles.RG_INTEGER, gles.INT},
	gal.FormatRG32Float:      {gles.RG32F, gles.RG, gles.FLOAT},
	gal.FormatRGB32Float:     {gles.RGB32F, gles.RGB, gles.FLOAT},
	gal.FormatRGBA32Uint:     {gles.RGBA32UI, gles.RGBA_INTEGER, gles.UNSIGNED_INT},
	gal.FormatRGBA32Sint:     {gles.RGBA32I, gles.RGBA_INTEGER, gles.INT},
	gal.FormatRGBA32Float:    {gles.RGBA32F, gles.RGBA, gles.FLOAT},
	gal.FormatD16Unorm:       {gles.DEPTH_COMPONENT16, gles.DEPTH_COMPONENT, gles.UNSIGNED_SHORT},
	gal.FormatD32Float:       {gles.DEPTH_COMPONENT32, gles.DEPTH_COMPONENT, gles.FLOAT},
	gal.FormatD24UnormS8Uint: {gles.DEPTH24_STENCIL8, gles.DEPTH_STENCIL, gles.UNSIGNED_INT_24_8},
	gal.FormatD32FloatS8Uint: {gles.DEPTH32F_STENCIL8, gles.DEPTH_STENCIL, gles.FLOAT},
})

// SupportsFormat reports whether f is a color-renderable or depth
// format with a pixel transfer triple.
func SupportsFormat(f gal.Format) bool { return formats.Has(f) }

// Format returns the pixel format triple for f.
func Format(f gal.Format) PixelFormat { return formats.To(f) }

// FormatBack converts a pixel format triple back.
func FormatBack(p PixelFormat) gal.Format { return formats.From(p) }

// VertexAttrib describes a vertex format to glVertexAttribPointer.
type VertexAttrib struct {
	Size       int32
	Type       Enum
	Normalized bool
	Integer    bool
}

var vertexAttribs = table.NewEnum("gl.VertexFormat", map[gal.Format]VertexAttrib{
	gal.FormatRG8Unorm:    {2, gles.UNSIGNED_BYTE, true, false},
	gal.FormatRG8Uint:     {2, gles.UNSIGNED_BYTE, false, true},
	gal.FormatRGBA8Unorm:  {4, gles.UNSIGNED_BYTE, true, false},
	gal.FormatRGBA8Snorm:  {4, gles.BYTE, true, false},
	gal.FormatRGBA8Uint:   {4, gles.UNSIGNED_BYTE, false, true},
	gal.FormatRGBA8Sint:   {4, gles.BYTE, false, true},
	gal.FormatRG16Float:   {2, gles.HALF_FLOAT, false, false},
	gal.FormatRGBA16Uint:  {4, gles.UNSIGNED_SHORT, false, true},
	gal.FormatRGBA16Float: {4, gles.HALF_FLOAT, false, false},
	gal.FormatR32Uint:     {1, gles.UNSIGNED_INT, false, true},
	gal.FormatR32Sint:     {1, gles.INT, false, true},
	gal.FormatR32Float:    {1, gles.FLOAT, false, false},
	gal.FormatRG32Uint:    {2, gles.UNSIGNED_INT, false, true},
	gal.FormatRG32Sint:    {2, gles.INT, false, true},
	gal.FormatRG32Float:   {2, gles.FLOAT, false, false},
	gal.FormatRGB32Uint:   {3, gles.UNSIGNED_INT, false, true},
	gal.FormatRGB32Sint:   {3, gles.INT, false, true},
	gal.FormatRGB32Float:  {3, gles.FLOAT, false, false},
	gal.FormatRGBA32Uint:  {4, gles.UNSIGNED_INT, false, true},
	gal.FormatRGBA32Sint:  {4, gles.INT, false, true},
	gal.FormatRGBA32Float: {4, gles.FLOAT, false, false},
})

// SupportsVertexFormat reports whether f can be a vertex attribute.
func SupportsVertexFormat(f gal.Format) bool { return vertexAttribs.Has(f) }

// VertexFormat returns the attribute pointer parameters for f. Integer
// attributes must use glVertexAttribIPointer.
func VertexFormat(f gal.Format) VertexAttrib { return vertexAttribs.To(f) }

// VertexFormatBack converts attribute pointer parameters back.
func VertexFormatBack(a VertexAttrib) gal.Format { return vertexAttribs.From(a) }

// BufferTarget returns the bind target a buffer with usage u is
// created against. Index buffers bind to ELEMENT_ARRAY_BUFFER; everything
// else is bound by its most specific use.
func BufferTarget(u gal.BufferUsageFlags) Enum {
	switch {
	case u&gal.BufferUsageIndex != 0:
		return gles.ELEMENT_ARRAY_BUFFER
	case u&gal.BufferUsageVertex != 0:
		return gles.ARRAY_BUFFER
	case u&gal.BufferUsageUniform != 0:
		return gles.UNIFORM_BUFFER
	case u&gal.BufferUsageStorage != 0:
		return gles.SHADER_STORAGE_BUFFER
	case u&gal.BufferUsageIndirect != 0:
		return gles.DISPATCH_INDIRECT_BUFFER
	case u&gal.BufferUsageTransferSrc != 0:
		return gles.COPY_READ_BUFFER
	}
	return gles.COPY_WRITE_BUFFER
}

// BufferHint returns the glBufferData usage hint for memory properties.
func BufferHint(p gal.MemoryPropertyFlags) Enum {
	switch {
	case p&gal.MemoryPropertyHostCached != 0:
		return gles.DYNAMIC_READ
	case p&gal.MemoryPropertyHostVisible != 0:
		return gles.DYNAMIC_DRAW
	}
	return gles.STATIC_DRAW
}
