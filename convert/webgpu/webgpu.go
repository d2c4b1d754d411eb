// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgpu translates gal enums and flags to the WebGPU values of
// github.com/gogpu/gputypes.
//
// WebGPU is less expressive than the abstract model: it has no image
// layouts, logic ops, polygon modes or border colors, and several tables
// are partial. Each partial table has a Supports function; converting an
// unsupported value panics.
package webgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/internal/table"
)

var compareOps = table.NewEnum("webgpu.CompareOp", map[gal.CompareOp]gputypes.CompareFunction{
	gal.CompareOpNever:          gputypes.CompareFunctionNever,
	gal.CompareOpLess:           gputypes.CompareFunctionLess,
	gal.CompareOpEqual:          gputypes.CompareFunctionEqual,
	gal.CompareOpLessOrEqual:    gputypes.CompareFunctionLessEqual,
	gal.CompareOpGreater:        gputypes.CompareFunctionGreater,
	gal.CompareOpNotEqual:       gputypes.CompareFunctionNotEqual,
	gal.CompareOpGreaterOrEqual: gputypes.CompareFunctionGreaterEqual,
	gal.CompareOpAlways:         gputypes.CompareFunctionAlways,
})

// CompareOp converts a compare op.
func CompareOp(v gal.CompareOp) gputypes.CompareFunction { return compareOps.To(v) }

// CompareOpBack converts a compare function back.
func CompareOpBack(v gputypes.CompareFunction) gal.CompareOp { return compareOps.From(v) }

var blendFactors = table.NewEnum("webgpu.BlendFactor", map[gal.BlendFactor]gputypes.BlendFactor{
	gal.BlendFactorZero:                  gputypes.BlendFactorZero,
	gal.BlendFactorOne:                   gputypes.BlendFactorOne,
	gal.BlendFactorSrcColor:              gputypes.BlendFactorSrc,
	gal.BlendFactorOneMinusSrcColor:      gputypes.BlendFactorOneMinusSrc,
	gal.BlendFactorDstColor:              gputypes.BlendFactorDst,
	gal.BlendFactorOneMinusDstColor:      gputypes.BlendFactorOneMinusDst,
	gal.BlendFactorSrcAlpha:              gputypes.BlendFactorSrcAlpha,
	gal.BlendFactorOneMinusSrcAlpha:      gputypes.BlendFactorOneMinusSrcAlpha,
	gal.BlendFactorDstAlpha:              gputypes.BlendFactorDstAlpha,
	gal.BlendFactorOneMinusDstAlpha:      gputypes.BlendFactorOneMinusDstAlpha,
	gal.BlendFactorConstantColor:         gputypes.BlendFactorConstant,
	gal.BlendFactorOneMinusConstantColor: gputypes.BlendFactorOneMinusConstant,
	gal.BlendFactorSrcAlphaSaturate:      gputypes.BlendFactorSrcAlphaSaturated,
})

// SupportsBlendFactor reports whether f exists in WebGPU. The separate
// constant alpha factors do not.
func SupportsBlendFactor(f gal.BlendFactor) bool { return blendFactors.Has(f) }

// BlendFactor converts a blend factor.
func BlendFactor(v gal.BlendFactor) gputypes.BlendFactor { return blendFactors.To(v) }

// BlendFactorBack converts a blend factor back.
func BlendFactorBack(v gputypes.BlendFactor) gal.BlendFactor { return blendFactors.From(v) }

var blendOps = table.NewEnum("webgpu.BlendOp", map[gal.BlendOp]gputypes.BlendOperation{
	gal.BlendOpAdd:             gputypes.BlendOperationAdd,
	gal.BlendOpSubtract:        gputypes.BlendOperationSubtract,
	gal.BlendOpReverseSubtract: gputypes.BlendOperationReverseSubtract,
	gal.BlendOpMin:             gputypes.BlendOperationMin,
	gal.BlendOpMax:             gputypes.BlendOperationMax,
})

// BlendOp converts a blend op.
func BlendOp(v gal.BlendOp) gputypes.BlendOperation { return blendOps.To(v) }

// BlendOpBack converts a blend operation back.
func BlendOpBack(v gputypes.BlendOperation) gal.BlendOp { return blendOps.From(v) }

var stencilOps = table.NewEnum("webgpu.StencilOp", map[gal.StencilOp]gputypes.StencilOperation{
	gal.StencilOpKeep:              gputypes.StencilOperationKeep,
	gal.StencilOpZero:              gputypes.StencilOperationZero,
	gal.StencilOpReplace:           gputypes.StencilOperationReplace,
	gal.StencilOpIncrementAndClamp: gputypes.StencilOperationIncrementClamp,
	gal.StencilOpDecrementAndClamp: gputypes.StencilOperationDecrementClamp,
	gal.StencilOpInvert:            gputypes.StencilOperationInvert,
	gal.StencilOpIncrementAndWrap:  gputypes.StencilOperationIncrementWrap,
	gal.StencilOpDecrementAndWrap:  gputypes.StencilOperationDecrementWrap,
})

// StencilOp converts a stencil op.
func StencilOp(v gal.StencilOp) gputypes.StencilOperation { return stencilOps.To(v) }

// StencilOpBack converts a stencil operation back.
func StencilOpBack(v gputypes.StencilOperation) gal.StencilOp { return stencilOps.From(v) }

var loadOps = table.NewEnum("webgpu.AttachmentLoadOp", map[gal.AttachmentLoadOp]gputypes.LoadOp{
	gal.AttachmentLoadOpLoad:  gputypes.LoadOpLoad,
	gal.AttachmentLoadOpClear: gputypes.LoadOpClear,
})

// LoadOp converts a load op. WebGPU cannot leave contents undefined, so
// DontCare clears.
func LoadOp(v gal.AttachmentLoadOp) gputypes.LoadOp {
	if v == gal.AttachmentLoadOpDontCare {
		return gputypes.LoadOpClear
	}
	return loadOps.To(v)
}

// LoadOpBack converts a load op back.
func LoadOpBack(v gputypes.LoadOp) gal.AttachmentLoadOp { return loadOps.From(v) }

var storeOps = table.NewEnum("webgpu.AttachmentStoreOp", map[gal.AttachmentStoreOp]gputypes.StoreOp{
	gal.AttachmentStoreOpStore:    gputypes.StoreOpStore,
	gal.AttachmentStoreOpDontCare: gputypes.StoreOpDiscard,
})

// StoreOp converts a store op.
func StoreOp(v gal.AttachmentStoreOp) gputypes.StoreOp { return storeOps.To(v) }

// StoreOpBack converts a store op back.
func StoreOpBack(v gputypes.StoreOp) gal.AttachmentStoreOp { return storeOps.From(v) }

var topologies = table.NewEnum("webgpu.PrimitiveTopology", map[gal.PrimitiveTopology]gputypes.PrimitiveTopology{
	gal.PrimitiveTopologyPointList:     gputypes.PrimitiveTopologyPointList,
	gal.PrimitiveTopologyLineList:      gputypes.PrimitiveTopologyLineList,
	gal.PrimitiveTopologyLineStrip:     gputypes.PrimitiveTopologyLineStrip,
	gal.PrimitiveTopologyTriangleList:  gputypes.PrimitiveTopologyTriangleList,
	gal.PrimitiveTopologyTriangleStrip: gputypes.PrimitiveTopologyTriangleStrip,
})

// SupportsPrimitiveTopology reports whether t exists in WebGPU. Fans,
// adjacency and patches do not.
func SupportsPrimitiveTopology(t gal.PrimitiveTopology) bool { return topologies.Has(t) }

// PrimitiveTopology converts a topology.
func PrimitiveTopology(v gal.PrimitiveTopology) gputypes.PrimitiveTopology { return topologies.To(v) }

// PrimitiveTopologyBack converts a topology back.
func PrimitiveTopologyBack(v gputypes.PrimitiveTopology) gal.PrimitiveTopology {
	return topologies.From(v)
}

var frontFaces = table.NewEnum("webgpu.FrontFace", map[gal.FrontFace]gputypes.FrontFace{
	gal.FrontFaceCounterClockwise: gputypes.FrontFaceCCW,
	gal.FrontFaceClockwise:        gputypes.FrontFaceCW,
})

// FrontFace converts a winding order.
func FrontFace(v gal.FrontFace) gputypes.FrontFace { return frontFaces.To(v) }

// FrontFaceBack converts a winding order back.
func FrontFaceBack(v gputypes.FrontFace) gal.FrontFace { return frontFaces.From(v) }

var cullModes = table.NewEnum("webgpu.CullMode", map[gal.CullModeFlags]gputypes.CullMode{
	gal.CullModeNone:  gputypes.CullModeNone,
	gal.CullModeFront: gputypes.CullModeFront,
	gal.CullModeBack:  gputypes.CullModeBack,
})

// SupportsCullMode reports whether m can be expressed. WebGPU cannot cull
// both faces.
func SupportsCullMode(m gal.CullModeFlags) bool { return cullModes.Has(m) }

// CullMode converts a cull mode mask to the WebGPU enum.
func CullMode(v gal.CullModeFlags) gputypes.CullMode { return cullModes.To(v) }

// CullModeBack converts a cull mode back.
func CullModeBack(v gputypes.CullMode) gal.CullModeFlags { return cullModes.From(v) }

var filters = table.NewEnum("webgpu.Filter", map[gal.Filter]gputypes.FilterMode{
	gal.FilterNearest: gputypes.FilterModeNearest,
	gal.FilterLinear:  gputypes.FilterModeLinear,
})

// Filter converts a filter.
func Filter(v gal.Filter) gputypes.FilterMode { return filters.To(v) }

// FilterBack converts a filter mode back.
func FilterBack(v gputypes.FilterMode) gal.Filter { return filters.From(v) }

var mipmapModes = table.NewEnum("webgpu.MipmapMode", map[gal.MipmapMode]gputypes.MipmapFilterMode{
	gal.MipmapModeNearest: gputypes.MipmapFilterModeNearest,
	gal.MipmapModeLinear:  gputypes.MipmapFilterModeLinear,
})

// MipmapMode converts a mipmap mode.
func MipmapMode(v gal.MipmapMode) gputypes.MipmapFilterMode { return mipmapModes.To(v) }

// MipmapModeBack converts a mipmap filter mode back.
func MipmapModeBack(v gputypes.MipmapFilterMode) gal.MipmapMode { return mipmapModes.From(v) }

var addressModes = table.NewEnum("webgpu.AddressMode", map[gal.AddressMode]gputypes.AddressMode{
	gal.AddressModeRepeat:         gputypes.AddressModeRepeat,
	gal.AddressModeMirroredRepeat: gputypes.AddressModeMirrorRepeat,
	gal.AddressModeClampToEdge:    gputypes.AddressModeClampToEdge,
})

// SupportsAddressMode reports whether m exists in WebGPU. Border and
// mirror-once clamping do not.
func SupportsAddressMode(m gal.AddressMode) bool { return addressModes.Has(m) }

// AddressMode converts an address mode.
func AddressMode(v gal.AddressMode) gputypes.AddressMode { return addressModes.To(v) }

// AddressModeBack converts an address mode back.
func AddressModeBack(v gputypes.AddressMode) gal.AddressMode { return addressModes.From(v) }

var indexTypes = table.NewEnum("webgpu.IndexType", map[gal.IndexType]gputypes.IndexFormat{
	gal.IndexTypeUint16: gputypes.IndexFormatUint16,
	gal.IndexTypeUint32: gputypes.IndexFormatUint32,
})

// IndexType converts an index type.
func IndexType(v gal.IndexType) gputypes.IndexFormat { return indexTypes.To(v) }

// IndexTypeBack converts an index format back.
func IndexTypeBack(v gputypes.IndexFormat) gal.IndexType { return indexTypes.From(v) }

var inputRates = table.NewEnum("webgpu.VertexInputRate", map[gal.VertexInputRate]gputypes.VertexStepMode{
	gal.VertexInputRateVertex:   gputypes.VertexStepModeVertex,
	gal.VertexInputRateInstance: gputypes.VertexStepModeInstance,
})

// VertexInputRate converts an input rate.
func VertexInputRate(v gal.VertexInputRate) gputypes.VertexStepMode { return inputRates.To(v) }

// VertexInputRateBack converts a step mode back.
func VertexInputRateBack(v gputypes.VertexStepMode) gal.VertexInputRate { return inputRates.From(v) }

var imageTypes = table.NewEnum("webgpu.ImageType", map[gal.ImageType]gputypes.TextureDimension{
	gal.ImageType1D: gputypes.TextureDimension1D,
	gal.ImageType2D: gputypes.TextureDimension2D,
	gal.ImageType3D: gputypes.TextureDimension3D,
})

// ImageType converts an image type.
func ImageType(v gal.ImageType) gputypes.TextureDimension { return imageTypes.To(v) }

// ImageTypeBack converts a texture dimension back.
func ImageTypeBack(v gputypes.TextureDimension) gal.ImageType { return imageTypes.From(v) }

var viewTypes = table.NewEnum("webgpu.ImageViewType", map[gal.ImageViewType]gputypes.TextureViewDimension{
	gal.ImageViewType1D:        gputypes.TextureViewDimension1D,
	gal.ImageViewType2D:        gputypes.TextureViewDimension2D,
	gal.ImageViewType3D:        gputypes.TextureViewDimension3D,
	gal.ImageViewTypeCube:      gputypes.TextureViewDimensionCube,
	gal.ImageViewType2DArray:   gputypes.TextureViewDimension2DArray,
	gal.ImageViewTypeCubeArray: gputypes.TextureViewDimensionCubeArray,
})

// SupportsImageViewType reports whether t exists in WebGPU. 1D arrays do
// not.
func SupportsImageViewType(t gal.ImageViewType) bool { return viewTypes.Has(t) }

// ImageViewType converts a view type.
func ImageViewType(v gal.ImageViewType) gputypes.TextureViewDimension { return viewTypes.To(v) }

// ImageViewTypeBack converts a view dimension back.
func ImageViewTypeBack(v gputypes.TextureViewDimension) gal.ImageViewType { return viewTypes.From(v) }

var aspects = table.NewEnum("webgpu.ImageAspect", map[gal.ImageAspectFlags]gputypes.TextureAspect{
	gal.ImageAspectColor:   gputypes.TextureAspectAll,
	gal.ImageAspectDepth:   gputypes.TextureAspectDepthOnly,
	gal.ImageAspectStencil: gputypes.TextureAspectStencilOnly,
})

// ImageAspect converts an aspect mask. Depth and stencil together select
// every aspect of the texture.
func ImageAspect(v gal.ImageAspectFlags) gputypes.TextureAspect {
	if v == gal.ImageAspectDepth|gal.ImageAspectStencil {
		return gputypes.TextureAspectAll
	}
	return aspects.To(v)
}

var deviceTypes = table.NewEnum("webgpu.PhysicalDeviceType", map[gal.PhysicalDeviceType]gputypes.DeviceType{
	gal.PhysicalDeviceTypeOther:         gputypes.DeviceTypeOther,
	gal.PhysicalDeviceTypeIntegratedGPU: gputypes.DeviceTypeIntegratedGPU,
	gal.PhysicalDeviceTypeDiscreteGPU:   gputypes.DeviceTypeDiscreteGPU,
	gal.PhysicalDeviceTypeVirtualGPU:    gputypes.DeviceTypeVirtualGPU,
	gal.PhysicalDeviceTypeCPU:           gputypes.DeviceTypeCPU,
})

// PhysicalDeviceType converts a device type.
func PhysicalDeviceType(v gal.PhysicalDeviceType) gputypes.DeviceType { return deviceTypes.To(v) }

// PhysicalDeviceTypeBack converts an adapter device type back.
func PhysicalDeviceTypeBack(v gputypes.DeviceType) gal.PhysicalDeviceType {
	return deviceTypes.From(v)
}

var colorComponents = table.NewFlags("webgpu.ColorComponent", map[gal.ColorComponentFlags]gputypes.ColorWriteMask{
	gal.ColorComponentR: gputypes.ColorWriteMaskRed,
	gal.ColorComponentG: gputypes.ColorWriteMaskGreen,
	gal.ColorComponentB: gputypes.ColorWriteMaskBlue,
	gal.ColorComponentA: gputypes.ColorWriteMaskAlpha,
})

// ColorComponent converts a color write mask.
func ColorComponent(f gal.ColorComponentFlags) gputypes.ColorWriteMask { return colorComponents.To(f) }

// ColorComponentBack converts a color write mask back.
func ColorComponentBack(f gputypes.ColorWriteMask) gal.ColorComponentFlags {
	return colorComponents.From(f)
}

var shaderStages = table.NewFlags("webgpu.ShaderStage", map[gal.ShaderStageFlags]gputypes.ShaderStage{
	gal.ShaderStageVertex:   gputypes.ShaderStageVertex,
	gal.ShaderStageFragment: gputypes.ShaderStageFragment,
	gal.ShaderStageCompute:  gputypes.ShaderStageCompute,
})

// SupportsShaderStage reports whether every stage of s exists in WebGPU.
func SupportsShaderStage(s gal.ShaderStageFlags) bool { return shaderStages.Has(s) }

// ShaderStage converts a stage mask.
func ShaderStage(f gal.ShaderStageFlags) gputypes.ShaderStage { return shaderStages.To(f) }

// ShaderStageBack converts a stage mask back.
func ShaderStageBack(f gputypes.ShaderStage) gal.ShaderStageFlags { return shaderStages.From(f) }

var bufferUsages = table.NewFlags("webgpu.BufferUsage", map[gal.BufferUsageFlags]gputypes.BufferUsage{
	gal.BufferUsageTransferSrc: gputypes.BufferUsageCopySrc,
	gal.BufferUsageTransferDst: gputypes.BufferUsageCopyDst,
	gal.BufferUsageUniform:     gputypes.BufferUsageUniform,
	gal.BufferUsageStorage:     gputypes.BufferUsageStorage,
	gal.BufferUsageIndex:       gputypes.BufferUsageIndex,
	gal.BufferUsageVertex:      gputypes.BufferUsageVertex,
	gal.BufferUsageIndirect:    gputypes.BufferUsageIndirect,
})

// SupportsBufferUsage reports whether every bit of u exists in WebGPU.
// Texel buffers do not.
func SupportsBufferUsage(u gal.BufferUsageFlags) bool { return bufferUsages.Has(u) }

// BufferUsage converts a buffer usage mask.
func BufferUsage(f gal.BufferUsageFlags) gputypes.BufferUsage { return bufferUsages.To(f) }

// BufferUsageBack converts a buffer usage mask back. Map usages have no
// abstract equivalent and are ignored.
func BufferUsageBack(f gputypes.BufferUsage) gal.BufferUsageFlags {
	return bufferUsages.From(f &^ (gputypes.BufferUsageMapRead | gputypes.BufferUsageMapWrite))
}

// Input attachments are read as sampled textures, and both attachment
// kinds share RenderAttachment, so this table is not injective.
var imageUsages = table.NewFlags("webgpu.ImageUsage", map[gal.ImageUsageFlags]gputypes.TextureUsage{
	gal.ImageUsageTransferSrc:            gputypes.TextureUsageCopySrc,
	gal.ImageUsageTransferDst:            gputypes.TextureUsageCopyDst,
	gal.ImageUsageSampled:                gputypes.TextureUsageTextureBinding,
	gal.ImageUsageStorage:                gputypes.TextureUsageStorageBinding,
	gal.ImageUsageColorAttachment:        gputypes.TextureUsageRenderAttachment,
	gal.ImageUsageDepthStencilAttachment: gputypes.TextureUsageRenderAttachment,
	gal.ImageUsageInputAttachment:        gputypes.TextureUsageTextureBinding,
})

// ImageUsage converts an image usage mask. Transient attachments are
// ordinary render attachments in WebGPU.
func ImageUsage(f gal.ImageUsageFlags) gputypes.TextureUsage {
	return imageUsages.To(f &^ gal.ImageUsageTransientAttachment)
}

var formats = table.NewEnum("webgpu.Format", map[gal.Format]gputypes.TextureFormat{
	gal.FormatUndefined:      gputypes.TextureFormatUndefined,
	gal.FormatR8Unorm:        gputypes.TextureFormatR8Unorm,
	gal.FormatR8Snorm:        gputypes.TextureFormatR8Snorm,
	gal.FormatR8Uint:         gputypes.TextureFormatR8Uint,
	gal.FormatR8Sint:         gputypes.TextureFormatR8Sint,
	gal.FormatRG8Unorm:       gputypes.TextureFormatRG8Unorm,
	gal.FormatRG8Uint:        gputypes.TextureFormatRG8Uint,
	gal.FormatRGBA8Unorm:     gputypes.TextureFormatRGBA8Unorm,
	gal.FormatRGBA8Srgb:      gputypes.TextureFormatRGBA8UnormSrgb,
	gal.FormatRGBA8Snorm:     gputypes.TextureFormatRGBA8Snorm,
	gal.FormatRGBA8Uint:      gputypes.TextureFormatRGBA8Uint,
	gal.FormatRGBA8Sint:      gputypes.TextureFormatRGBA8Sint,
	gal.FormatBGRA8Unorm:     gputypes.TextureFormatBGRA8Unorm,
	gal.FormatBGRA8Srgb:      gputypes.TextureFormatBGRA8UnormSrgb,
	gal.FormatR16Uint:        gputypes.TextureFormatR16Uint,
	gal.FormatR16Sint:        gputypes.TextureFormatR16Sint,
	gal.FormatR16Float:       gputypes.TextureFormatR16Float,
	gal.FormatRG16Float:      gputypes.TextureFormatRG16Float,
	gal.FormatRGBA16Uint:     gputypes.TextureFormatRGBA16Uint,
	gal.FormatRGBA16Float:    gputypes.TextureFormatRGBA16Float,
	gal.FormatR32Uint:        gputypes.TextureFormatR32Uint,
	gal.FormatR32Sint:        gputypes.TextureFormatR32Sint,
	gal.FormatR32Float:       gputypes.TextureFormatR32Float,
	gal.FormatRG32Uint:       gputypes.TextureFormatRG32Uint,
	gal.FormatRG32Sint:       gputypes.TextureFormatRG32Sint,
	gal.FormatRG32Float:      gputypes.TextureFormatRG32Float,
	gal.FormatRGBA32Uint:     gputypes.TextureFormatRGBA32Uint,
	gal.FormatRGBA32Sint:     gputypes.TextureFormatRGBA32Sint,
	gal.FormatRGBA32Float:    gputypes.TextureFormatRGBA32Float,
	gal.FormatRGB10A2Unorm:   gputypes.TextureFormatRGB10A2Unorm,
	gal.FormatRG11B10Float:   gputypes.TextureFormatRG11B10Ufloat,
	gal.FormatD16Unorm:       gputypes.TextureFormatDepth16Unorm,
	gal.FormatD32Float:       gputypes.TextureFormatDepth32Float,
	gal.FormatD24UnormS8Uint: gputypes.TextureFormatDepth24PlusStencil8,
	gal.FormatD32FloatS8Uint: gputypes.TextureFormatDepth32FloatStencil8,
	gal.FormatS8Uint:         gputypes.TextureFormatStencil8,
	gal.FormatBC1RGBAUnorm:   gputypes.TextureFormatBC1RGBAUnorm,
	gal.FormatBC3RGBAUnorm:   gputypes.TextureFormatBC3RGBAUnorm,
	gal.FormatBC7RGBAUnorm:   gputypes.TextureFormatBC7RGBAUnorm,
})

// SupportsFormat reports whether f is a WebGPU texture format. Three
// component 32-bit formats are vertex formats only.
func SupportsFormat(f gal.Format) bool { return formats.Has(f) }

// Format converts a texture format.
func Format(f gal.Format) gputypes.TextureFormat { return formats.To(f) }

// FormatBack converts a texture format back.
func FormatBack(f gputypes.TextureFormat) gal.Format { return formats.From(f) }

var vertexFormats = table.NewEnum("webgpu.VertexFormat", map[gal.Format]gputypes.VertexFormat{
	gal.FormatRG8Unorm:     gputypes.VertexFormatUnorm8x2,
	gal.FormatRG8Uint:      gputypes.VertexFormatUint8x2,
	gal.FormatRGBA8Unorm:   gputypes.VertexFormatUnorm8x4,
	gal.FormatRGBA8Snorm:   gputypes.VertexFormatSnorm8x4,
	gal.FormatRGBA8Uint:    gputypes.VertexFormatUint8x4,
	gal.FormatRGBA8Sint:    gputypes.VertexFormatSint8x4,
	gal.FormatRG16Float:    gputypes.VertexFormatFloat16x2,
	gal.FormatRGBA16Uint:   gputypes.VertexFormatUint16x4,
	gal.FormatRGBA16Float:  gputypes.VertexFormatFloat16x4,
	gal.FormatR32Uint:      gputypes.VertexFormatUint32,
	gal.FormatR32Sint:      gputypes.VertexFormatSint32,
	gal.FormatR32Float:     gputypes.VertexFormatFloat32,
	gal.FormatRG32Uint:     gputypes.VertexFormatUint32x2,
	gal.FormatRG32Sint:     gputypes.VertexFormatSint32x2,
	gal.FormatRG32Float:    gputypes.VertexFormatFloat32x2,
	gal.FormatRGB32Uint:    gputypes.VertexFormatUint32x3,
	gal.FormatRGB32Sint:    gputypes.VertexFormatSint32x3,
	gal.FormatRGB32Float:   gputypes.VertexFormatFloat32x3,
	gal.FormatRGBA32Uint:   gputypes.VertexFormatUint32x4,
	gal.FormatRGBA32Sint:   gputypes.VertexFormatSint32x4,
	gal.FormatRGBA32Float:  gputypes.VertexFormatFloat32x4,
	gal.FormatRGB10A2Unorm: gputypes.VertexFormatUnorm1010102,
})

// SupportsVertexFormat reports whether f can be fetched as a vertex
// attribute.
func SupportsVertexFormat(f gal.Format) bool { return vertexFormats.Has(f) }

// VertexFormat converts a format used by a vertex attribute.
func VertexFormat(f gal.Format) gputypes.VertexFormat { return vertexFormats.To(f) }

// VertexFormatBack converts a vertex format back.
func VertexFormatBack(f gputypes.VertexFormat) gal.Format { return vertexFormats.From(f) }
