// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/internal/table"
)

var compareOps = table.NewEnum("vulkan.CompareOp", map[gal.CompareOp]vk.CompareOp{
	gal.CompareOpNever:          vk.CompareOpNever,
	gal.CompareOpLess:           vk.CompareOpLess,
	gal.CompareOpEqual:          vk.CompareOpEqual,
	gal.CompareOpLessOrEqual:    vk.CompareOpLessOrEqual,
	gal.CompareOpGreater:        vk.CompareOpGreater,
	gal.CompareOpNotEqual:       vk.CompareOpNotEqual,
	gal.CompareOpGreaterOrEqual: vk.CompareOpGreaterOrEqual,
	gal.CompareOpAlways:         vk.CompareOpAlways,
})

// CompareOp converts a CompareOp to Vulkan.
func CompareOp(v gal.CompareOp) vk.CompareOp { return compareOps.To(v) }

// CompareOpBack converts a Vulkan CompareOp back.
func CompareOpBack(v vk.CompareOp) gal.CompareOp { return compareOps.From(v) }

var blendFactors = table.NewEnum("vulkan.BlendFactor", map[gal.BlendFactor]vk.BlendFactor{
	gal.BlendFactorZero:                  vk.BlendFactorZero,
	gal.BlendFactorOne:                   vk.BlendFactorOne,
	gal.BlendFactorSrcColor:              vk.BlendFactorSrcColor,
	gal.BlendFactorOneMinusSrcColor:      vk.BlendFactorOneMinusSrcColor,
	gal.BlendFactorDstColor:              vk.BlendFactorDstColor,
	gal.BlendFactorOneMinusDstColor:      vk.BlendFactorOneMinusDstColor,
	gal.BlendFactorSrcAlpha:              vk.BlendFactorSrcAlpha,
	gal.BlendFactorOneMinusSrcAlpha:      vk.BlendFactorOneMinusSrcAlpha,
	gal.BlendFactorDstAlpha:              vk.BlendFactorDstAlpha,
	gal.BlendFactorOneMinusDstAlpha:      vk.BlendFactorOneMinusDstAlpha,
	gal.BlendFactorConstantColor:         vk.BlendFactorConstantColor,
	gal.BlendFactorOneMinusConstantColor: vk.BlendFactorOneMinusConstantColor,
	gal.BlendFactorConstantAlpha:         vk.BlendFactorConstantAlpha,
	gal.BlendFactorOneMinusConstantAlpha: vk.BlendFactorOneMinusConstantAlpha,
	gal.BlendFactorSrcAlphaSaturate:      vk.BlendFactorSrcAlphaSaturate,
})

// BlendFactor converts a BlendFactor to Vulkan.
func BlendFactor(v gal.BlendFactor) vk.BlendFactor { return blendFactors.To(v) }

// BlendFactorBack converts a Vulkan BlendFactor back.
func BlendFactorBack(v vk.BlendFactor) gal.BlendFactor { return blendFactors.From(v) }

var blendOps = table.NewEnum("vulkan.BlendOp", map[gal.BlendOp]vk.BlendOp{
	gal.BlendOpAdd:             vk.BlendOpAdd,
	gal.BlendOpSubtract:        vk.BlendOpSubtract,
	gal.BlendOpReverseSubtract: vk.BlendOpReverseSubtract,
	gal.BlendOpMin:             vk.BlendOpMin,
	gal.BlendOpMax:             vk.BlendOpMax,
})

// BlendOp converts a BlendOp to Vulkan.
func BlendOp(v gal.BlendOp) vk.BlendOp { return blendOps.To(v) }

// BlendOpBack converts a Vulkan BlendOp back.
func BlendOpBack(v vk.BlendOp) gal.BlendOp { return blendOps.From(v) }

var logicOps = table.NewEnum("vulkan.LogicOp", map[gal.LogicOp]vk.LogicOp{
	gal.LogicOpClear:        vk.LogicOpClear,
	gal.LogicOpAnd:          vk.LogicOpAnd,
	gal.LogicOpAndReverse:   vk.LogicOpAndReverse,
	gal.LogicOpCopy:         vk.LogicOpCopy,
	gal.LogicOpAndInverted:  vk.LogicOpAndInverted,
	gal.LogicOpNoOp:         vk.LogicOpNoOp,
	gal.LogicOpXor:          vk.LogicOpXor,
	gal.LogicOpOr:           vk.LogicOpOr,
	gal.LogicOpNor:          vk.LogicOpNor,
	gal.LogicOpEquivalent:   vk.LogicOpEquivalent,
	gal.LogicOpInvert:       vk.LogicOpInvert,
	gal.LogicOpOrReverse:    vk.LogicOpOrReverse,
	gal.LogicOpCopyInverted: vk.LogicOpCopyInverted,
	gal.LogicOpOrInverted:   vk.LogicOpOrInverted,
	gal.LogicOpNand:         vk.LogicOpNand,
	gal.LogicOpSet:          vk.LogicOpSet,
})

// LogicOp converts a LogicOp to Vulkan.
func LogicOp(v gal.LogicOp) vk.LogicOp { return logicOps.To(v) }

// LogicOpBack converts a Vulkan LogicOp back.
func LogicOpBack(v vk.LogicOp) gal.LogicOp { return logicOps.From(v) }

var stencilOps = table.NewEnum("vulkan.StencilOp", map[gal.StencilOp]vk.StencilOp{
	gal.StencilOpKeep:              vk.StencilOpKeep,
	gal.StencilOpZero:              vk.StencilOpZero,
	gal.StencilOpReplace:           vk.StencilOpReplace,
	gal.StencilOpIncrementAndClamp: vk.StencilOpIncrementAndClamp,
	gal.StencilOpDecrementAndClamp: vk.StencilOpDecrementAndClamp,
	gal.StencilOpInvert:            vk.StencilOpInvert,
	gal.StencilOpIncrementAndWrap:  vk.StencilOpIncrementAndWrap,
	gal.StencilOpDecrementAndWrap:  vk.StencilOpDecrementAndWrap,
})

// StencilOp converts a StencilOp to Vulkan.
func StencilOp(v gal.StencilOp) vk.StencilOp { return stencilOps.To(v) }

// StencilOpBack converts a Vulkan StencilOp back.
func StencilOpBack(v vk.StencilOp) gal.StencilOp { return stencilOps.From(v) }

var imageLayouts = table.NewEnum("vulkan.ImageLayout", map[gal.ImageLayout]vk.ImageLayout{
	gal.ImageLayoutUndefined:                     vk.ImageLayoutUndefined,
	gal.ImageLayoutGeneral:                       vk.ImageLayoutGeneral,
	gal.ImageLayoutColorAttachmentOptimal:        vk.ImageLayoutColorAttachmentOptimal,
	gal.ImageLayoutDepthStencilAttachmentOptimal: vk.ImageLayoutDepthStencilAttachmentOptimal,
	gal.ImageLayoutDepthStencilReadOnlyOptimal:   vk.ImageLayoutDepthStencilReadOnlyOptimal,
	gal.ImageLayoutShaderReadOnlyOptimal:         vk.ImageLayoutShaderReadOnlyOptimal,
	gal.ImageLayoutTransferSrcOptimal:            vk.ImageLayoutTransferSrcOptimal,
	gal.ImageLayoutTransferDstOptimal:            vk.ImageLayoutTransferDstOptimal,
	gal.ImageLayoutPreinitialized:                vk.ImageLayoutPreinitialized,
	gal.ImageLayoutPresentSrc:                    vk.ImageLayoutPresentSrc,
})

// ImageLayout converts a ImageLayout to Vulkan.
func ImageLayout(v gal.ImageLayout) vk.ImageLayout { return imageLayouts.To(v) }

// ImageLayoutBack converts a Vulkan ImageLayout back.
func ImageLayoutBack(v vk.ImageLayout) gal.ImageLayout { return imageLayouts.From(v) }

var attachmentLoadOps = table.NewEnum("vulkan.AttachmentLoadOp", map[gal.AttachmentLoadOp]vk.AttachmentLoadOp{
	gal.AttachmentLoadOpLoad:     vk.AttachmentLoadOpLoad,
	gal.AttachmentLoadOpClear:    vk.AttachmentLoadOpClear,
	gal.AttachmentLoadOpDontCare: vk.AttachmentLoadOpDontCare,
})

// AttachmentLoadOp converts a AttachmentLoadOp to Vulkan.
func AttachmentLoadOp(v gal.AttachmentLoadOp) vk.AttachmentLoadOp { return attachmentLoadOps.To(v) }

// AttachmentLoadOpBack converts a Vulkan AttachmentLoadOp back.
func AttachmentLoadOpBack(v vk.AttachmentLoadOp) gal.AttachmentLoadOp {
	return attachmentLoadOps.From(v)
}

var attachmentStoreOps = table.NewEnum("vulkan.AttachmentStoreOp", map[gal.AttachmentStoreOp]vk.AttachmentStoreOp{
	gal.AttachmentStoreOpStore:    vk.AttachmentStoreOpStore,
	gal.AttachmentStoreOpDontCare: vk.AttachmentStoreOpDontCare,
})

// AttachmentStoreOp converts a AttachmentStoreOp to Vulkan.
func AttachmentStoreOp(v gal.AttachmentStoreOp) vk.AttachmentStoreOp { return attachmentStoreOps.To(v) }

// AttachmentStoreOpBack converts a Vulkan AttachmentStoreOp back.
func AttachmentStoreOpBack(v vk.AttachmentStoreOp) gal.AttachmentStoreOp {
	return attachmentStoreOps.From(v)
}

var primitiveTopologys = table.NewEnum("vulkan.PrimitiveTopology", map[gal.PrimitiveTopology]vk.PrimitiveTopology{
	gal.PrimitiveTopologyPointList:                  vk.PrimitiveTopologyPointList,
	gal.PrimitiveTopologyLineList:                   vk.PrimitiveTopologyLineList,
	gal.PrimitiveTopologyLineStrip:                  vk.PrimitiveTopologyLineStrip,
	gal.PrimitiveTopologyTriangleList:               vk.PrimitiveTopologyTriangleList,
	gal.PrimitiveTopologyTriangleStrip:              vk.PrimitiveTopologyTriangleStrip,
	gal.PrimitiveTopologyTriangleFan:                vk.PrimitiveTopologyTriangleFan,
	gal.PrimitiveTopologyLineListWithAdjacency:      vk.PrimitiveTopologyLineListWithAdjacency,
	gal.PrimitiveTopologyLineStripWithAdjacency:     vk.PrimitiveTopologyLineStripWithAdjacency,
	gal.PrimitiveTopologyTriangleListWithAdjacency:  vk.PrimitiveTopologyTriangleListWithAdjacency,
	gal.PrimitiveTopologyTriangleStripWithAdjacency: vk.PrimitiveTopologyTriangleStripWithAdjacency,
	gal.PrimitiveTopologyPatchList:                  vk.PrimitiveTopologyPatchList,
})

// PrimitiveTopology converts a PrimitiveTopology to Vulkan.
func PrimitiveTopology(v gal.PrimitiveTopology) vk.PrimitiveTopology { return primitiveTopologys.To(v) }

// PrimitiveTopologyBack converts a Vulkan PrimitiveTopology back.
func PrimitiveTopologyBack(v vk.PrimitiveTopology) gal.PrimitiveTopology {
	return primitiveTopologys.From(v)
}

var polygonModes = table.NewEnum("vulkan.PolygonMode", map[gal.PolygonMode]vk.PolygonMode{
	gal.PolygonModeFill:  vk.PolygonModeFill,
	gal.PolygonModeLine:  vk.PolygonModeLine,
	gal.PolygonModePoint: vk.PolygonModePoint,
})

// PolygonMode converts a PolygonMode to Vulkan.
func PolygonMode(v gal.PolygonMode) vk.PolygonMode { return polygonModes.To(v) }

// PolygonModeBack converts a Vulkan PolygonMode back.
func PolygonModeBack(v vk.PolygonMode) gal.PolygonMode { return polygonModes.From(v) }

var frontFaces = table.NewEnum("vulkan.FrontFace", map[gal.FrontFace]vk.FrontFace{
	gal.FrontFaceCounterClockwise: vk.FrontFaceCounterClockwise,
	gal.FrontFaceClockwise:        vk.FrontFaceClockwise,
})

// FrontFace converts a FrontFace to Vulkan.
func FrontFace(v gal.FrontFace) vk.FrontFace { return frontFaces.To(v) }

// FrontFaceBack converts a Vulkan FrontFace back.
func FrontFaceBack(v vk.FrontFace) gal.FrontFace { return frontFaces.From(v) }

var filters = table.NewEnum("vulkan.Filter", map[gal.Filter]vk.Filter{
	gal.FilterNearest: vk.FilterNearest,
	gal.FilterLinear:  vk.FilterLinear,
})

// Filter converts a Filter to Vulkan.
func Filter(v gal.Filter) vk.Filter { return filters.To(v) }

// FilterBack converts a Vulkan Filter back.
func FilterBack(v vk.Filter) gal.Filter { return filters.From(v) }

var mipmapModes = table.NewEnum("vulkan.MipmapMode", map[gal.MipmapMode]vk.SamplerMipmapMode{
	gal.MipmapModeNearest: vk.SamplerMipmapModeNearest,
	gal.MipmapModeLinear:  vk.SamplerMipmapModeLinear,
})

// MipmapMode converts a MipmapMode to Vulkan.
func MipmapMode(v gal.MipmapMode) vk.SamplerMipmapMode { return mipmapModes.To(v) }

// MipmapModeBack converts a Vulkan SamplerMipmapMode back.
func MipmapModeBack(v vk.SamplerMipmapMode) gal.MipmapMode { return mipmapModes.From(v) }

var addressModes = table.NewEnum("vulkan.AddressMode", map[gal.AddressMode]vk.SamplerAddressMode{
	gal.AddressModeRepeat:            vk.SamplerAddressModeRepeat,
	gal.AddressModeMirroredRepeat:    vk.SamplerAddressModeMirroredRepeat,
	gal.AddressModeClampToEdge:       vk.SamplerAddressModeClampToEdge,
	gal.AddressModeClampToBorder:     vk.SamplerAddressModeClampToBorder,
	gal.AddressModeMirrorClampToEdge: vk.SamplerAddressModeMirrorClampToEdge,
})

// AddressMode converts a AddressMode to Vulkan.
func AddressMode(v gal.AddressMode) vk.SamplerAddressMode { return addressModes.To(v) }

// AddressModeBack converts a Vulkan SamplerAddressMode back.
func AddressModeBack(v vk.SamplerAddressMode) gal.AddressMode { return addressModes.From(v) }

var borderColors = table.NewEnum("vulkan.BorderColor", map[gal.BorderColor]vk.BorderColor{
	gal.BorderColorFloatTransparentBlack: vk.BorderColorFloatTransparentBlack,
	gal.BorderColorIntTransparentBlack:   vk.BorderColorIntTransparentBlack,
	gal.BorderColorFloatOpaqueBlack:      vk.BorderColorFloatOpaqueBlack,
	gal.BorderColorIntOpaqueBlack:        vk.BorderColorIntOpaqueBlack,
	gal.BorderColorFloatOpaqueWhite:      vk.BorderColorFloatOpaqueWhite,
	gal.BorderColorIntOpaqueWhite:        vk.BorderColorIntOpaqueWhite,
})

// BorderColor converts a BorderColor to Vulkan.
func BorderColor(v gal.BorderColor) vk.BorderColor { return borderColors.To(v) }

// BorderColorBack converts a Vulkan BorderColor back.
func BorderColorBack(v vk.BorderColor) gal.BorderColor { return borderColors.From(v) }

var indexTypes = table.NewEnum("vulkan.IndexType", map[gal.IndexType]vk.IndexType{
	gal.IndexTypeUint16: vk.IndexTypeUint16,
	gal.IndexTypeUint32: vk.IndexTypeUint32,
})

// IndexType converts a IndexType to Vulkan.
func IndexType(v gal.IndexType) vk.IndexType { return indexTypes.To(v) }

// IndexTypeBack converts a Vulkan IndexType back.
func IndexTypeBack(v vk.IndexType) gal.IndexType { return indexTypes.From(v) }

var vertexInputRates = table.NewEnum("vulkan.VertexInputRate", map[gal.VertexInputRate]vk.VertexInputRate{
	gal.VertexInputRateVertex:   vk.VertexInputRateVertex,
	gal.VertexInputRateInstance: vk.VertexInputRateInstance,
})

// VertexInputRate converts a VertexInputRate to Vulkan.
func VertexInputRate(v gal.VertexInputRate) vk.VertexInputRate { return vertexInputRates.To(v) }

// VertexInputRateBack converts a Vulkan VertexInputRate back.
func VertexInputRateBack(v vk.VertexInputRate) gal.VertexInputRate { return vertexInputRates.From(v) }

var descriptorTypes = table.NewEnum("vulkan.DescriptorType", map[gal.DescriptorType]vk.DescriptorType{
	gal.DescriptorTypeSampler:              vk.DescriptorTypeSampler,
	gal.DescriptorTypeCombinedImageSampler: vk.DescriptorTypeCombinedImageSampler,
	gal.DescriptorTypeSampledImage:         vk.DescriptorTypeSampledImage,
	gal.DescriptorTypeStorageImage:         vk.DescriptorTypeStorageImage,
	gal.DescriptorTypeUniformTexelBuffer:   vk.DescriptorTypeUniformTexelBuffer,
	gal.DescriptorTypeStorageTexelBuffer:   vk.DescriptorTypeStorageTexelBuffer,
	gal.DescriptorTypeUniformBuffer:        vk.DescriptorTypeUniformBuffer,
	gal.DescriptorTypeStorageBuffer:        vk.DescriptorTypeStorageBuffer,
	gal.DescriptorTypeUniformBufferDynamic: vk.DescriptorTypeUniformBufferDynamic,
	gal.DescriptorTypeStorageBufferDynamic: vk.DescriptorTypeStorageBufferDynamic,
	gal.DescriptorTypeInputAttachment:      vk.DescriptorTypeInputAttachment,
})

// DescriptorType converts a DescriptorType to Vulkan.
func DescriptorType(v gal.DescriptorType) vk.DescriptorType { return descriptorTypes.To(v) }

// DescriptorTypeBack converts a Vulkan DescriptorType back.
func DescriptorTypeBack(v vk.DescriptorType) gal.DescriptorType { return descriptorTypes.From(v) }

var imageTypes = table.NewEnum("vulkan.ImageType", map[gal.ImageType]vk.ImageType{
	gal.ImageType1D: vk.ImageType1d,
	gal.ImageType2D: vk.ImageType2d,
	gal.ImageType3D: vk.ImageType3d,
})

// ImageType converts a ImageType to Vulkan.
func ImageType(v gal.ImageType) vk.ImageType { return imageTypes.To(v) }

// ImageTypeBack converts a Vulkan ImageType back.
func ImageTypeBack(v vk.ImageType) gal.ImageType { return imageTypes.From(v) }

var imageViewTypes = table.NewEnum("vulkan.ImageViewType", map[gal.ImageViewType]vk.ImageViewType{
	gal.ImageViewType1D:        vk.ImageViewType1d,
	gal.ImageViewType2D:        vk.ImageViewType2d,
	gal.ImageViewType3D:        vk.ImageViewType3d,
	gal.ImageViewTypeCube:      vk.ImageViewTypeCube,
	gal.ImageViewType1DArray:   vk.ImageViewType1dArray,
	gal.ImageViewType2DArray:   vk.ImageViewType2dArray,
	gal.ImageViewTypeCubeArray: vk.ImageViewTypeCubeArray,
})

// ImageViewType converts a ImageViewType to Vulkan.
func ImageViewType(v gal.ImageViewType) vk.ImageViewType { return imageViewTypes.To(v) }

// ImageViewTypeBack converts a Vulkan ImageViewType back.
func ImageViewTypeBack(v vk.ImageViewType) gal.ImageViewType { return imageViewTypes.From(v) }

var imageTilings = table.NewEnum("vulkan.ImageTiling", map[gal.ImageTiling]vk.ImageTiling{
	gal.ImageTilingOptimal: vk.ImageTilingOptimal,
	gal.ImageTilingLinear:  vk.ImageTilingLinear,
})

// ImageTiling converts a ImageTiling to Vulkan.
func ImageTiling(v gal.ImageTiling) vk.ImageTiling { return imageTilings.To(v) }

// ImageTilingBack converts a Vulkan ImageTiling back.
func ImageTilingBack(v vk.ImageTiling) gal.ImageTiling { return imageTilings.From(v) }

var dynamicStates = table.NewEnum("vulkan.DynamicState", map[gal.DynamicState]vk.DynamicState{
	gal.DynamicStateViewport:           vk.DynamicStateViewport,
	gal.DynamicStateScissor:            vk.DynamicStateScissor,
	gal.DynamicStateLineWidth:          vk.DynamicStateLineWidth,
	gal.DynamicStateDepthBias:          vk.DynamicStateDepthBias,
	gal.DynamicStateBlendConstants:     vk.DynamicStateBlendConstants,
	gal.DynamicStateDepthBounds:        vk.DynamicStateDepthBounds,
	gal.DynamicStateStencilCompareMask: vk.DynamicStateStencilCompareMask,
	gal.DynamicStateStencilWriteMask:   vk.DynamicStateStencilWriteMask,
	gal.DynamicStateStencilReference:   vk.DynamicStateStencilReference,
})

// DynamicState converts a DynamicState to Vulkan.
func DynamicState(v gal.DynamicState) vk.DynamicState { return dynamicStates.To(v) }

// DynamicStateBack converts a Vulkan DynamicState back.
func DynamicStateBack(v vk.DynamicState) gal.DynamicState { return dynamicStates.From(v) }

var pipelineBindPoints = table.NewEnum("vulkan.PipelineBindPoint", map[gal.PipelineBindPoint]vk.PipelineBindPoint{
	gal.PipelineBindPointGraphics: vk.PipelineBindPointGraphics,
	gal.PipelineBindPointCompute:  vk.PipelineBindPointCompute,
})

// PipelineBindPoint converts a PipelineBindPoint to Vulkan.
func PipelineBindPoint(v gal.PipelineBindPoint) vk.PipelineBindPoint { return pipelineBindPoints.To(v) }

// PipelineBindPointBack converts a Vulkan PipelineBindPoint back.
func PipelineBindPointBack(v vk.PipelineBindPoint) gal.PipelineBindPoint {
	return pipelineBindPoints.From(v)
}

var physicalDeviceTypes = table.NewEnum("vulkan.PhysicalDeviceType", map[gal.PhysicalDeviceType]vk.PhysicalDeviceType{
	gal.PhysicalDeviceTypeOther:         vk.PhysicalDeviceTypeOther,
	gal.PhysicalDeviceTypeIntegratedGPU: vk.PhysicalDeviceTypeIntegratedGpu,
	gal.PhysicalDeviceTypeDiscreteGPU:   vk.PhysicalDeviceTypeDiscreteGpu,
	gal.PhysicalDeviceTypeVirtualGPU:    vk.PhysicalDeviceTypeVirtualGpu,
	gal.PhysicalDeviceTypeCPU:           vk.PhysicalDeviceTypeCpu,
})

// PhysicalDeviceType converts a PhysicalDeviceType to Vulkan.
func PhysicalDeviceType(v gal.PhysicalDeviceType) vk.PhysicalDeviceType {
	return physicalDeviceTypes.To(v)
}

// PhysicalDeviceTypeBack converts a Vulkan PhysicalDeviceType back.
func PhysicalDeviceTypeBack(v vk.PhysicalDeviceType) gal.PhysicalDeviceType {
	return physicalDeviceTypes.From(v)
}

var formats = table.NewEnum("vulkan.Format", map[gal.Format]vk.Format{
	gal.FormatUndefined:      vk.FormatUndefined,
	gal.FormatR8Unorm:        vk.FormatR8Unorm,
	gal.FormatR8Snorm:        vk.FormatR8Snorm,
	gal.FormatR8Uint:         vk.FormatR8Uint,
	gal.FormatR8Sint:         vk.FormatR8Sint,
	gal.FormatRG8Unorm:       vk.FormatR8g8Unorm,
	gal.FormatRG8Uint:        vk.FormatR8g8Uint,
	gal.FormatRGBA8Unorm:     vk.FormatR8g8b8a8Unorm,
	gal.FormatRGBA8Srgb:      vk.FormatR8g8b8a8Srgb,
	gal.FormatRGBA8Snorm:     vk.FormatR8g8b8a8Snorm,
	gal.FormatRGBA8Uint:      vk.FormatR8g8b8a8Uint,
	gal.FormatRGBA8Sint:      vk.FormatR8g8b8a8Sint,
	gal.FormatBGRA8Unorm:     vk.FormatB8g8r8a8Unorm,
	gal.FormatBGRA8Srgb:      vk.FormatB8g8r8a8Srgb,
	gal.FormatR16Uint:        vk.FormatR16Uint,
	gal.FormatR16Sint:        vk.FormatR16Sint,
	gal.FormatR16Float:       vk.FormatR16Sfloat,
	gal.FormatRG16Float:      vk.FormatR16g16Sfloat,
	gal.FormatRGBA16Uint:     vk.FormatR16g16b16a16Uint,
	gal.FormatRGBA16Float:    vk.FormatR16g16b16a16Sfloat,
	gal.FormatR32Uint:        vk.FormatR32Uint,
	gal.FormatR32Sint:        vk.FormatR32Sint,
	gal.FormatR32Float:       vk.FormatR32Sfloat,
	gal.FormatRG32Uint:       vk.FormatR32g32Uint,
	gal.FormatRG32Sint:       vk.FormatR32g32Sint,
	gal.FormatRG32Float:      vk.FormatR32g32Sfloat,
	gal.FormatRGB32Uint:      vk.FormatR32g32b32Uint,
	gal.FormatRGB32Sint:      vk.FormatR32g32b32Sint,
	gal.FormatRGB32Float:     vk.FormatR32g32b32Sfloat,
	gal.FormatRGBA32Uint:     vk.FormatR32g32b32a32Uint,
	gal.FormatRGBA32Sint:     vk.FormatR32g32b32a32Sint,
	gal.FormatRGBA32Float:    vk.FormatR32g32b32a32Sfloat,
	gal.FormatRGB10A2Unorm:   vk.FormatA2b10g10r10UnormPack32,
	gal.FormatRG11B10Float:   vk.FormatB10g11r11UfloatPack32,
	gal.FormatD16Unorm:       vk.FormatD16Unorm,
	gal.FormatD32Float:       vk.FormatD32Sfloat,
	gal.FormatD24UnormS8Uint: vk.FormatD24UnormS8Uint,
	gal.FormatD32FloatS8Uint: vk.FormatD32SfloatS8Uint,
	gal.FormatS8Uint:         vk.FormatS8Uint,
	gal.FormatBC1RGBAUnorm:   vk.FormatBc1RgbaUnormBlock,
	gal.FormatBC3RGBAUnorm:   vk.FormatBc3UnormBlock,
	gal.FormatBC7RGBAUnorm:   vk.FormatBc7UnormBlock,
})

// Format converts a Format to Vulkan.
func Format(f gal.Format) vk.Format { return formats.To(f) }

// FormatBack converts a Vulkan format back. Formats without an
// abstract equivalent panic; use HasFormat to test first.
func FormatBack(f vk.Format) gal.Format { return formats.From(f) }

// HasFormat reports whether a Vulkan format has an abstract equivalent.
func HasFormat(f vk.Format) bool { return formats.HasNative(f) }

var bufferUsageFlags = table.NewFlags("vulkan.BufferUsageFlags", map[gal.BufferUsageFlags]vk.BufferUsageFlags{
	gal.BufferUsageTransferSrc:  vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
	gal.BufferUsageTransferDst:  vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
	gal.BufferUsageUniformTexel: vk.BufferUsageFlags(vk.BufferUsageUniformTexelBufferBit),
	gal.BufferUsageStorageTexel: vk.BufferUsageFlags(vk.BufferUsageStorageTexelBufferBit),
	gal.BufferUsageUniform:      vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
	gal.BufferUsageStorage:      vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit),
	gal.BufferUsageIndex:        vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit),
	gal.BufferUsageVertex:       vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
	gal.BufferUsageIndirect:     vk.BufferUsageFlags(vk.BufferUsageIndirectBufferBit),
})

// BufferUsage converts BufferUsageFlags to Vulkan.
func BufferUsage(f gal.BufferUsageFlags) vk.BufferUsageFlags { return bufferUsageFlags.To(f) }

// BufferUsageBack converts Vulkan BufferUsageFlags back.
func BufferUsageBack(f vk.BufferUsageFlags) gal.BufferUsageFlags { return bufferUsageFlags.From(f) }

var imageUsageFlags = table.NewFlags("vulkan.ImageUsageFlags", map[gal.ImageUsageFlags]vk.ImageUsageFlags{
	gal.ImageUsageTransferSrc:            vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit),
	gal.ImageUsageTransferDst:            vk.ImageUsageFlags(vk.ImageUsageTransferDstBit),
	gal.ImageUsageSampled:                vk.ImageUsageFlags(vk.ImageUsageSampledBit),
	gal.ImageUsageStorage:                vk.ImageUsageFlags(vk.ImageUsageStorageBit),
	gal.ImageUsageColorAttachment:        vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
	gal.ImageUsageDepthStencilAttachment: vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
	gal.ImageUsageTransientAttachment:    vk.ImageUsageFlags(vk.ImageUsageTransientAttachmentBit),
	gal.ImageUsageInputAttachment:        vk.ImageUsageFlags(vk.ImageUsageInputAttachmentBit),
})

// ImageUsage converts ImageUsageFlags to Vulkan.
func ImageUsage(f gal.ImageUsageFlags) vk.ImageUsageFlags { return imageUsageFlags.To(f) }

// ImageUsageBack converts Vulkan ImageUsageFlags back.
func ImageUsageBack(f vk.ImageUsageFlags) gal.ImageUsageFlags { return imageUsageFlags.From(f) }

var memoryPropertyFlags = table.NewFlags("vulkan.MemoryPropertyFlags", map[gal.MemoryPropertyFlags]vk.MemoryPropertyFlags{
	gal.MemoryPropertyDeviceLocal:     vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	gal.MemoryPropertyHostVisible:     vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit),
	gal.MemoryPropertyHostCoherent:    vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit),
	gal.MemoryPropertyHostCached:      vk.MemoryPropertyFlags(vk.MemoryPropertyHostCachedBit),
	gal.MemoryPropertyLazilyAllocated: vk.MemoryPropertyFlags(vk.MemoryPropertyLazilyAllocatedBit),
})

// MemoryProperty converts MemoryPropertyFlags to Vulkan.
func MemoryProperty(f gal.MemoryPropertyFlags) vk.MemoryPropertyFlags {
	return memoryPropertyFlags.To(f)
}

// MemoryPropertyBack converts Vulkan MemoryPropertyFlags back.
func MemoryPropertyBack(f vk.MemoryPropertyFlags) gal.MemoryPropertyFlags {
	return memoryPropertyFlags.From(f)
}

var shaderStageFlags = table.NewFlags("vulkan.ShaderStageFlags", map[gal.ShaderStageFlags]vk.ShaderStageFlags{
	gal.ShaderStageVertex:                 vk.ShaderStageFlags(vk.ShaderStageVertexBit),
	gal.ShaderStageTessellationControl:    vk.ShaderStageFlags(vk.ShaderStageTessellationControlBit),
	gal.ShaderStageTessellationEvaluation: vk.ShaderStageFlags(vk.ShaderStageTessellationEvaluationBit),
	gal.ShaderStageGeometry:               vk.ShaderStageFlags(vk.ShaderStageGeometryBit),
	gal.ShaderStageFragment:               vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
	gal.ShaderStageCompute:                vk.ShaderStageFlags(vk.ShaderStageComputeBit),
})

// ShaderStage converts ShaderStageFlags to Vulkan.
func ShaderStage(f gal.ShaderStageFlags) vk.ShaderStageFlags { return shaderStageFlags.To(f) }

// ShaderStageBack converts Vulkan ShaderStageFlags back.
func ShaderStageBack(f vk.ShaderStageFlags) gal.ShaderStageFlags { return shaderStageFlags.From(f) }

var pipelineStageFlags = table.NewFlags("vulkan.PipelineStageFlags", map[gal.PipelineStageFlags]vk.PipelineStageFlags{
	gal.PipelineStageTopOfPipe:                    vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
	gal.PipelineStageDrawIndirect:                 vk.PipelineStageFlags(vk.PipelineStageDrawIndirectBit),
	gal.PipelineStageVertexInput:                  vk.PipelineStageFlags(vk.PipelineStageVertexInputBit),
	gal.PipelineStageVertexShader:                 vk.PipelineStageFlags(vk.PipelineStageVertexShaderBit),
	gal.PipelineStageTessellationControlShader:    vk.PipelineStageFlags(vk.PipelineStageTessellationControlShaderBit),
	gal.PipelineStageTessellationEvaluationShader: vk.PipelineStageFlags(vk.PipelineStageTessellationEvaluationShaderBit),
	gal.PipelineStageGeometryShader:               vk.PipelineStageFlags(vk.PipelineStageGeometryShaderBit),
	gal.PipelineStageFragmentShader:               vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
	gal.PipelineStageEarlyFragmentTests:           vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit),
	gal.PipelineStageLateFragmentTests:            vk.PipelineStageFlags(vk.PipelineStageLateFragmentTestsBit),
	gal.PipelineStageColorAttachmentOutput:        vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
	gal.PipelineStageComputeShader:                vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
	gal.PipelineStageTransfer:                     vk.PipelineStageFlags(vk.PipelineStageTransferBit),
	gal.PipelineStageBottomOfPipe:                 vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit),
	gal.PipelineStageHost:                         vk.PipelineStageFlags(vk.PipelineStageHostBit),
	gal.PipelineStageAllGraphics:                  vk.PipelineStageFlags(vk.PipelineStageAllGraphicsBit),
	gal.PipelineStageAllCommands:                  vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
})

// PipelineStage converts PipelineStageFlags to Vulkan.
func PipelineStage(f gal.PipelineStageFlags) vk.PipelineStageFlags { return pipelineStageFlags.To(f) }

// PipelineStageBack converts Vulkan PipelineStageFlags back.
func PipelineStageBack(f vk.PipelineStageFlags) gal.PipelineStageFlags {
	return pipelineStageFlags.From(f)
}

var accessFlags = table.NewFlags("vulkan.AccessFlags", map[gal.AccessFlags]vk.AccessFlags{
	gal.AccessIndirectCommandRead:         vk.AccessFlags(vk.AccessIndirectCommandReadBit),
	gal.AccessIndexRead:                   vk.AccessFlags(vk.AccessIndexReadBit),
	gal.AccessVertexAttributeRead:         vk.AccessFlags(vk.AccessVertexAttributeReadBit),
	gal.AccessUniformRead:                 vk.AccessFlags(vk.AccessUniformReadBit),
	gal.AccessInputAttachmentRead:         vk.AccessFlags(vk.AccessInputAttachmentReadBit),
	gal.AccessShaderRead:                  vk.AccessFlags(vk.AccessShaderReadBit),
	gal.AccessShaderWrite:                 vk.AccessFlags(vk.AccessShaderWriteBit),
	gal.AccessColorAttachmentRead:         vk.AccessFlags(vk.AccessColorAttachmentReadBit),
	gal.AccessColorAttachmentWrite:        vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	gal.AccessDepthStencilAttachmentRead:  vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit),
	gal.AccessDepthStencilAttachmentWrite: vk.AccessFlags(vk.AccessDepthStencilAttachmentWriteBit),
	gal.AccessTransferRead:                vk.AccessFlags(vk.AccessTransferReadBit),
	gal.AccessTransferWrite:               vk.AccessFlags(vk.AccessTransferWriteBit),
	gal.AccessHostRead:                    vk.AccessFlags(vk.AccessHostReadBit),
	gal.AccessHostWrite:                   vk.AccessFlags(vk.AccessHostWriteBit),
	gal.AccessMemoryRead:                  vk.AccessFlags(vk.AccessMemoryReadBit),
	gal.AccessMemoryWrite:                 vk.AccessFlags(vk.AccessMemoryWriteBit),
})

// Access converts AccessFlags to Vulkan.
func Access(f gal.AccessFlags) vk.AccessFlags { return accessFlags.To(f) }

// AccessBack converts Vulkan AccessFlags back.
func AccessBack(f vk.AccessFlags) gal.AccessFlags { return accessFlags.From(f) }

var colorComponentFlags = table.NewFlags("vulkan.ColorComponentFlags", map[gal.ColorComponentFlags]vk.ColorComponentFlags{
	gal.ColorComponentR: vk.ColorComponentFlags(vk.ColorComponentRBit),
	gal.ColorComponentG: vk.ColorComponentFlags(vk.ColorComponentGBit),
	gal.ColorComponentB: vk.ColorComponentFlags(vk.ColorComponentBBit),
	gal.ColorComponentA: vk.ColorComponentFlags(vk.ColorComponentABit),
})

// ColorComponent converts ColorComponentFlags to Vulkan.
func ColorComponent(f gal.ColorComponentFlags) vk.ColorComponentFlags {
	return colorComponentFlags.To(f)
}

// ColorComponentBack converts Vulkan ColorComponentFlags back.
func ColorComponentBack(f vk.ColorComponentFlags) gal.ColorComponentFlags {
	return colorComponentFlags.From(f)
}

var imageAspectFlags = table.NewFlags("vulkan.ImageAspectFlags", map[gal.ImageAspectFlags]vk.ImageAspectFlags{
	gal.ImageAspectColor:   vk.ImageAspectFlags(vk.ImageAspectColorBit),
	gal.ImageAspectDepth:   vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	gal.ImageAspectStencil: vk.ImageAspectFlags(vk.ImageAspectStencilBit),
})

// ImageAspect converts ImageAspectFlags to Vulkan.
func ImageAspect(f gal.ImageAspectFlags) vk.ImageAspectFlags { return imageAspectFlags.To(f) }

// ImageAspectBack converts Vulkan ImageAspectFlags back.
func ImageAspectBack(f vk.ImageAspectFlags) gal.ImageAspectFlags { return imageAspectFlags.From(f) }

var formatFeatureFlags = table.NewFlags("vulkan.FormatFeatureFlags", map[gal.FormatFeatureFlags]vk.FormatFeatureFlags{
	gal.FormatFeatureSampledImage:             vk.FormatFeatureFlags(vk.FormatFeatureSampledImageBit),
	gal.FormatFeatureStorageImage:             vk.FormatFeatureFlags(vk.FormatFeatureStorageImageBit),
	gal.FormatFeatureStorageImageAtomic:       vk.FormatFeatureFlags(vk.FormatFeatureStorageImageAtomicBit),
	gal.FormatFeatureUniformTexelBuffer:       vk.FormatFeatureFlags(vk.FormatFeatureUniformTexelBufferBit),
	gal.FormatFeatureStorageTexelBuffer:       vk.FormatFeatureFlags(vk.FormatFeatureStorageTexelBufferBit),
	gal.FormatFeatureStorageTexelBufferAtomic: vk.FormatFeatureFlags(vk.FormatFeatureStorageTexelBufferAtomicBit),
	gal.FormatFeatureVertexBuffer:             vk.FormatFeatureFlags(vk.FormatFeatureVertexBufferBit),
	gal.FormatFeatureColorAttachment:          vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBit),
	gal.FormatFeatureColorAttachmentBlend:     vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBlendBit),
	gal.FormatFeatureDepthStencilAttachment:   vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit),
	gal.FormatFeatureBlitSrc:                  vk.FormatFeatureFlags(vk.FormatFeatureBlitSrcBit),
	gal.FormatFeatureBlitDst:                  vk.FormatFeatureFlags(vk.FormatFeatureBlitDstBit),
	gal.FormatFeatureSampledImageFilterLinear: vk.FormatFeatureFlags(vk.FormatFeatureSampledImageFilterLinearBit),
	gal.FormatFeatureTransferSrc:              0x4000, // VK_FORMAT_FEATURE_TRANSFER_SRC_BIT, core since 1.1
	gal.FormatFeatureTransferDst:              0x8000, // VK_FORMAT_FEATURE_TRANSFER_DST_BIT, core since 1.1
})

// FormatFeature converts FormatFeatureFlags to Vulkan.
func FormatFeature(f gal.FormatFeatureFlags) vk.FormatFeatureFlags { return formatFeatureFlags.To(f) }

// FormatFeatureBack converts Vulkan FormatFeatureFlags back.
func FormatFeatureBack(f vk.FormatFeatureFlags) gal.FormatFeatureFlags {
	return formatFeatureFlags.From(f)
}

var commandBufferUsageFlags = table.NewFlags("vulkan.CommandBufferUsageFlags", map[gal.CommandBufferUsageFlags]vk.CommandBufferUsageFlags{
	gal.CommandBufferUsageOneTimeSubmit:      vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	gal.CommandBufferUsageRenderPassContinue: vk.CommandBufferUsageFlags(vk.CommandBufferUsageRenderPassContinueBit),
	gal.CommandBufferUsageSimultaneousUse:    vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit),
})

// CommandBufferUsage converts CommandBufferUsageFlags to Vulkan.
func CommandBufferUsage(f gal.CommandBufferUsageFlags) vk.CommandBufferUsageFlags {
	return commandBufferUsageFlags.To(f)
}

// CommandBufferUsageBack converts Vulkan CommandBufferUsageFlags back.
func CommandBufferUsageBack(f vk.CommandBufferUsageFlags) gal.CommandBufferUsageFlags {
	return commandBufferUsageFlags.From(f)
}

var sampleCountsFlags = table.NewFlags("vulkan.SampleCount", map[gal.SampleCount]vk.SampleCountFlags{
	gal.SampleCount1:  vk.SampleCountFlags(vk.SampleCount1Bit),
	gal.SampleCount2:  vk.SampleCountFlags(vk.SampleCount2Bit),
	gal.SampleCount4:  vk.SampleCountFlags(vk.SampleCount4Bit),
	gal.SampleCount8:  vk.SampleCountFlags(vk.SampleCount8Bit),
	gal.SampleCount16: vk.SampleCountFlags(vk.SampleCount16Bit),
	gal.SampleCount32: vk.SampleCountFlags(vk.SampleCount32Bit),
	gal.SampleCount64: vk.SampleCountFlags(vk.SampleCount64Bit),
})

// SampleCounts converts SampleCount to Vulkan.
func SampleCounts(f gal.SampleCount) vk.SampleCountFlags { return sampleCountsFlags.To(f) }

// SampleCountsBack converts Vulkan SampleCountFlags back.
func SampleCountsBack(f vk.SampleCountFlags) gal.SampleCount { return sampleCountsFlags.From(f) }

var cullModeFlags = table.NewFlags("vulkan.CullModeFlags", map[gal.CullModeFlags]vk.CullModeFlags{
	gal.CullModeFront: vk.CullModeFlags(vk.CullModeFrontBit),
	gal.CullModeBack:  vk.CullModeFlags(vk.CullModeBackBit),
})

// CullMode converts CullModeFlags to Vulkan.
func CullMode(f gal.CullModeFlags) vk.CullModeFlags { return cullModeFlags.To(f) }

// CullModeBack converts Vulkan CullModeFlags back.
func CullModeBack(f vk.CullModeFlags) gal.CullModeFlags { return cullModeFlags.From(f) }

var queueFlags = table.NewFlags("vulkan.QueueFlags", map[gal.QueueFlags]vk.QueueFlags{
	gal.QueueGraphics:      vk.QueueFlags(vk.QueueGraphicsBit),
	gal.QueueCompute:       vk.QueueFlags(vk.QueueComputeBit),
	gal.QueueTransfer:      vk.QueueFlags(vk.QueueTransferBit),
	gal.QueueSparseBinding: vk.QueueFlags(vk.QueueSparseBindingBit),
})

// Queue converts QueueFlags to Vulkan.
func Queue(f gal.QueueFlags) vk.QueueFlags { return queueFlags.To(f) }

// QueueBack converts Vulkan QueueFlags back.
func QueueBack(f vk.QueueFlags) gal.QueueFlags { return queueFlags.From(f) }

var dependencyFlags = table.NewFlags("vulkan.DependencyFlags", map[gal.DependencyFlags]vk.DependencyFlags{
	gal.DependencyByRegion: vk.DependencyFlags(vk.DependencyByRegionBit),
})

// Dependency converts DependencyFlags to Vulkan.
func Dependency(f gal.DependencyFlags) vk.DependencyFlags { return dependencyFlags.To(f) }

// DependencyBack converts Vulkan DependencyFlags back.
func DependencyBack(f vk.DependencyFlags) gal.DependencyFlags { return dependencyFlags.From(f) }

// SampleCount converts a single sample count, as used by attachments and
// images.
func SampleCount(s gal.SampleCount) vk.SampleCountFlagBits {
	if !s.Single() {
		gal.PanicInvalid("vulkan.SampleCount: %s is not a single count", s)
	}
	return vk.SampleCountFlagBits(SampleCounts(s))
}
