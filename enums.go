package gal

import "fmt"

func enumString(names []string, v uint32, typ string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

// CompareOp selects the comparison used by depth, stencil and sampler compare tests.
type CompareOp uint32

const (
	CompareOpNever CompareOp = iota
	CompareOpLess
	CompareOpEqual
	CompareOpLessOrEqual
	CompareOpGreater
	CompareOpNotEqual
	CompareOpGreaterOrEqual
	CompareOpAlways

	compareOpCount
)

var compareOpNames = []string{"Never", "Less", "Equal", "LessOrEqual", "Greater", "NotEqual", "GreaterOrEqual", "Always"}

func (v CompareOp) String() string { return enumString(compareOpNames, uint32(v), "CompareOp") }

// Valid reports whether v is a defined CompareOp.
func (v CompareOp) Valid() bool { return v < compareOpCount }

// BlendFactor is a source or destination weight in the blend equation.
type BlendFactor uint32

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorConstantColor
	BlendFactorOneMinusConstantColor
	BlendFactorConstantAlpha
	BlendFactorOneMinusConstantAlpha
	BlendFactorSrcAlphaSaturate

	blendFactorCount
)

var blendFactorNames = []string{"Zero", "One", "SrcColor", "OneMinusSrcColor", "DstColor", "OneMinusDstColor", "SrcAlpha", "OneMinusSrcAlpha", "DstAlpha", "OneMinusDstAlpha", "ConstantColor", "OneMinusConstantColor", "ConstantAlpha", "OneMinusConstantAlpha", "SrcAlphaSaturate"}

func (v BlendFactor) String() string { return enumString(blendFactorNames, uint32(v), "BlendFactor") }

// Valid reports whether v is a defined BlendFactor.
func (v BlendFactor) Valid() bool { return v < blendFactorCount }

// BlendOp combines weighted source and destination values.
type BlendOp uint32

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax

	blendOpCount
)

var blendOpNames = []string{"Add", "Subtract", "ReverseSubtract", "Min", "Max"}

func (v BlendOp) String() string { return enumString(blendOpNames, uint32(v), "BlendOp") }

// Valid reports whether v is a defined BlendOp.
func (v BlendOp) Valid() bool { return v < blendOpCount }

// LogicOp is a bitwise frame buffer operation.
type LogicOp uint32

const (
	LogicOpClear LogicOp = iota
	LogicOpAnd
	LogicOpAndReverse
	LogicOpCopy
	LogicOpAndInverted
	LogicOpNoOp
	LogicOpXor
	LogicOpOr
	LogicOpNor
	LogicOpEquivalent
	LogicOpInvert
	LogicOpOrReverse
	LogicOpCopyInverted
	LogicOpOrInverted
	LogicOpNand
	LogicOpSet

	logicOpCount
)

var logicOpNames = []string{"Clear", "And", "AndReverse", "Copy", "AndInverted", "NoOp", "Xor", "Or", "Nor", "Equivalent", "Invert", "OrReverse", "CopyInverted", "OrInverted", "Nand", "Set"}

func (v LogicOp) String() string { return enumString(logicOpNames, uint32(v), "LogicOp") }

// Valid reports whether v is a defined LogicOp.
func (v LogicOp) Valid() bool { return v < logicOpCount }

// StencilOp updates the stencil value after a stencil or depth test.
type StencilOp uint32

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementAndClamp
	StencilOpDecrementAndClamp
	StencilOpInvert
	StencilOpIncrementAndWrap
	StencilOpDecrementAndWrap

	stencilOpCount
)

var stencilOpNames = []string{"Keep", "Zero", "Replace", "IncrementAndClamp", "DecrementAndClamp", "Invert", "IncrementAndWrap", "DecrementAndWrap"}

func (v StencilOp) String() string { return enumString(stencilOpNames, uint32(v), "StencilOp") }

// Valid reports whether v is a defined StencilOp.
func (v StencilOp) Valid() bool { return v < stencilOpCount }

// ImageLayout is the memory layout an image subresource is kept in.
type ImageLayout uint32

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutGeneral
	ImageLayoutColorAttachmentOptimal
	ImageLayoutDepthStencilAttachmentOptimal
	ImageLayoutDepthStencilReadOnlyOptimal
	ImageLayoutShaderReadOnlyOptimal
	ImageLayoutTransferSrcOptimal
	ImageLayoutTransferDstOptimal
	ImageLayoutPreinitialized
	ImageLayoutPresentSrc

	imageLayoutCount
)

var imageLayoutNames = []string{"Undefined", "General", "ColorAttachmentOptimal", "DepthStencilAttachmentOptimal", "DepthStencilReadOnlyOptimal", "ShaderReadOnlyOptimal", "TransferSrcOptimal", "TransferDstOptimal", "Preinitialized", "PresentSrc"}

func (v ImageLayout) String() string { return enumString(imageLayoutNames, uint32(v), "ImageLayout") }

// Valid reports whether v is a defined ImageLayout.
func (v ImageLayout) Valid() bool { return v < imageLayoutCount }

// AttachmentLoadOp selects what happens to attachment contents when a render pass begins.
type AttachmentLoadOp uint32

const (
	AttachmentLoadOpLoad AttachmentLoadOp = iota
	AttachmentLoadOpClear
	AttachmentLoadOpDontCare

	attachmentLoadOpCount
)

var attachmentLoadOpNames = []string{"Load", "Clear", "DontCare"}

func (v AttachmentLoadOp) String() string {
	return enumString(attachmentLoadOpNames, uint32(v), "AttachmentLoadOp")
}

// Valid reports whether v is a defined AttachmentLoadOp.
func (v AttachmentLoadOp) Valid() bool { return v < attachmentLoadOpCount }

// AttachmentStoreOp selects what happens to attachment contents when a render pass ends.
type AttachmentStoreOp uint32

const (
	AttachmentStoreOpStore AttachmentStoreOp = iota
	AttachmentStoreOpDontCare

	attachmentStoreOpCount
)

var attachmentStoreOpNames = []string{"Store", "DontCare"}

func (v AttachmentStoreOp) String() string {
	return enumString(attachmentStoreOpNames, uint32(v), "AttachmentStoreOp")
}

// Valid reports whether v is a defined AttachmentStoreOp.
func (v AttachmentStoreOp) Valid() bool { return v < attachmentStoreOpCount }

// PrimitiveTopology selects how vertices are assembled into primitives.
type PrimitiveTopology uint32

const (
	PrimitiveTopologyPointList PrimitiveTopology = iota
	PrimitiveTopologyLineList
	PrimitiveTopologyLineStrip
	PrimitiveTopologyTriangleList
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyTriangleFan
	PrimitiveTopologyLineListWithAdjacency
	PrimitiveTopologyLineStripWithAdjacency
	PrimitiveTopologyTriangleListWithAdjacency
	PrimitiveTopologyTriangleStripWithAdjacency
	PrimitiveTopologyPatchList

	primitiveTopologyCount
)

var primitiveTopologyNames = []string{"PointList", "LineList", "LineStrip", "TriangleList", "TriangleStrip", "TriangleFan", "LineListWithAdjacency", "LineStripWithAdjacency", "TriangleListWithAdjacency", "TriangleStripWithAdjacency", "PatchList"}

func (v PrimitiveTopology) String() string {
	return enumString(primitiveTopologyNames, uint32(v), "PrimitiveTopology")
}

// Valid reports whether v is a defined PrimitiveTopology.
func (v PrimitiveTopology) Valid() bool { return v < primitiveTopologyCount }

// PolygonMode selects how polygons are rasterized.
type PolygonMode uint32

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint

	polygonModeCount
)

var polygonModeNames = []string{"Fill", "Line", "Point"}

func (v PolygonMode) String() string { return enumString(polygonModeNames, uint32(v), "PolygonMode") }

// Valid reports whether v is a defined PolygonMode.
func (v PolygonMode) Valid() bool { return v < polygonModeCount }

// FrontFace selects the winding of front facing triangles.
type FrontFace uint32

const (
	FrontFaceCounterClockwise FrontFace = iota
	FrontFaceClockwise

	frontFaceCount
)

var frontFaceNames = []string{"CounterClockwise", "Clockwise"}

func (v FrontFace) String() string { return enumString(frontFaceNames, uint32(v), "FrontFace") }

// Valid reports whether v is a defined FrontFace.
func (v FrontFace) Valid() bool { return v < frontFaceCount }

// Filter selects texel filtering for magnification and minification.
type Filter uint32

const (
	FilterNearest Filter = iota
	FilterLinear

	filterCount
)

var filterNames = []string{"Nearest", "Linear"}

func (v Filter) String() string { return enumString(filterNames, uint32(v), "Filter") }

// Valid reports whether v is a defined Filter.
func (v Filter) Valid() bool { return v < filterCount }

// MipmapMode selects filtering between mip levels.
type MipmapMode uint32

const (
	MipmapModeNearest MipmapMode = iota
	MipmapModeLinear

	mipmapModeCount
)

var mipmapModeNames = []string{"Nearest", "Linear"}

func (v MipmapMode) String() string { return enumString(mipmapModeNames, uint32(v), "MipmapMode") }

// Valid reports whether v is a defined MipmapMode.
func (v MipmapMode) Valid() bool { return v < mipmapModeCount }

// AddressMode selects how out of range texture coordinates are resolved.
type AddressMode uint32

const (
	AddressModeRepeat AddressMode = iota
	AddressModeMirroredRepeat
	AddressModeClampToEdge
	AddressModeClampToBorder
	AddressModeMirrorClampToEdge

	addressModeCount
)

var addressModeNames = []string{"Repeat", "MirroredRepeat", "ClampToEdge", "ClampToBorder", "MirrorClampToEdge"}

func (v AddressMode) String() string { return enumString(addressModeNames, uint32(v), "AddressMode") }

// Valid reports whether v is a defined AddressMode.
func (v AddressMode) Valid() bool { return v < addressModeCount }

// BorderColor is the color returned for ClampToBorder lookups.
type BorderColor uint32

const (
	BorderColorFloatTransparentBlack BorderColor = iota
	BorderColorIntTransparentBlack
	BorderColorFloatOpaqueBlack
	BorderColorIntOpaqueBlack
	BorderColorFloatOpaqueWhite
	BorderColorIntOpaqueWhite

	borderColorCount
)

var borderColorNames = []string{"FloatTransparentBlack", "IntTransparentBlack", "FloatOpaqueBlack", "IntOpaqueBlack", "FloatOpaqueWhite", "IntOpaqueWhite"}

func (v BorderColor) String() string { return enumString(borderColorNames, uint32(v), "BorderColor") }

// Valid reports whether v is a defined BorderColor.
func (v BorderColor) Valid() bool { return v < borderColorCount }

// IndexType is the element type of an index buffer.
type IndexType uint32

const (
	IndexTypeUint16 IndexType = iota
	IndexTypeUint32

	indexTypeCount
)

var indexTypeNames = []string{"Uint16", "Uint32"}

func (v IndexType) String() string { return enumString(indexTypeNames, uint32(v), "IndexType") }

// Valid reports whether v is a defined IndexType.
func (v IndexType) Valid() bool { return v < indexTypeCount }

// VertexInputRate selects whether a vertex binding advances per vertex or per instance.
type VertexInputRate uint32

const (
	VertexInputRateVertex VertexInputRate = iota
	VertexInputRateInstance

	vertexInputRateCount
)

var vertexInputRateNames = []string{"Vertex", "Instance"}

func (v VertexInputRate) String() string {
	return enumString(vertexInputRateNames, uint32(v), "VertexInputRate")
}

// Valid reports whether v is a defined VertexInputRate.
func (v VertexInputRate) Valid() bool { return v < vertexInputRateCount }

// DescriptorType is the kind of resource a descriptor binding refers to.
type DescriptorType uint32

const (
	DescriptorTypeSampler DescriptorType = iota
	DescriptorTypeCombinedImageSampler
	DescriptorTypeSampledImage
	DescriptorTypeStorageImage
	DescriptorTypeUniformTexelBuffer
	DescriptorTypeStorageTexelBuffer
	DescriptorTypeUniformBuffer
	DescriptorTypeStorageBuffer
	DescriptorTypeUniformBufferDynamic
	DescriptorTypeStorageBufferDynamic
	DescriptorTypeInputAttachment

	descriptorTypeCount
)

var descriptorTypeNames = []string{"Sampler", "CombinedImageSampler", "SampledImage", "StorageImage", "UniformTexelBuffer", "StorageTexelBuffer", "UniformBuffer", "StorageBuffer", "UniformBufferDynamic", "StorageBufferDynamic", "InputAttachment"}

func (v DescriptorType) String() string {
	return enumString(descriptorTypeNames, uint32(v), "DescriptorType")
}

// Valid reports whether v is a defined DescriptorType.
func (v DescriptorType) Valid() bool { return v < descriptorTypeCount }

// ImageType is the dimensionality of an image.
type ImageType uint32

const (
	ImageType1D ImageType = iota
	ImageType2D
	ImageType3D

	imageTypeCount
)

var imageTypeNames = []string{"1D", "2D", "3D"}

func (v ImageType) String() string { return enumString(imageTypeNames, uint32(v), "ImageType") }

// Valid reports whether v is a defined ImageType.
func (v ImageType) Valid() bool { return v < imageTypeCount }

// ImageViewType is the dimensionality of an image view.
type ImageViewType uint32

const (
	ImageViewType1D ImageViewType = iota
	ImageViewType2D
	ImageViewType3D
	ImageViewTypeCube
	ImageViewType1DArray
	ImageViewType2DArray
	ImageViewTypeCubeArray

	imageViewTypeCount
)

var imageViewTypeNames = []string{"1D", "2D", "3D", "Cube", "1DArray", "2DArray", "CubeArray"}

func (v ImageViewType) String() string {
	return enumString(imageViewTypeNames, uint32(v), "ImageViewType")
}

// Valid reports whether v is a defined ImageViewType.
func (v ImageViewType) Valid() bool { return v < imageViewTypeCount }

// ImageTiling selects the texel arrangement of an image.
type ImageTiling uint32

const (
	ImageTilingOptimal ImageTiling = iota
	ImageTilingLinear

	imageTilingCount
)

var imageTilingNames = []string{"Optimal", "Linear"}

func (v ImageTiling) String() string { return enumString(imageTilingNames, uint32(v), "ImageTiling") }

// Valid reports whether v is a defined ImageTiling.
func (v ImageTiling) Valid() bool { return v < imageTilingCount }

// DynamicState names pipeline state that is supplied while recording instead of at pipeline creation.
type DynamicState uint32

const (
	DynamicStateViewport DynamicState = iota
	DynamicStateScissor
	DynamicStateLineWidth
	DynamicStateDepthBias
	DynamicStateBlendConstants
	DynamicStateDepthBounds
	DynamicStateStencilCompareMask
	DynamicStateStencilWriteMask
	DynamicStateStencilReference

	dynamicStateCount
)

var dynamicStateNames = []string{"Viewport", "Scissor", "LineWidth", "DepthBias", "BlendConstants", "DepthBounds", "StencilCompareMask", "StencilWriteMask", "StencilReference"}

func (v DynamicState) String() string {
	return enumString(dynamicStateNames, uint32(v), "DynamicState")
}

// Valid reports whether v is a defined DynamicState.
func (v DynamicState) Valid() bool { return v < dynamicStateCount }

// PipelineBindPoint selects the graphics or compute binding slots of a command buffer.
type PipelineBindPoint uint32

const (
	PipelineBindPointGraphics PipelineBindPoint = iota
	PipelineBindPointCompute

	pipelineBindPointCount
)

var pipelineBindPointNames = []string{"Graphics", "Compute"}

func (v PipelineBindPoint) String() string {
	return enumString(pipelineBindPointNames, uint32(v), "PipelineBindPoint")
}

// Valid reports whether v is a defined PipelineBindPoint.
func (v PipelineBindPoint) Valid() bool { return v < pipelineBindPointCount }

// PhysicalDeviceType classifies a physical device.
type PhysicalDeviceType uint32

const (
	PhysicalDeviceTypeOther PhysicalDeviceType = iota
	PhysicalDeviceTypeIntegratedGPU
	PhysicalDeviceTypeDiscreteGPU
	PhysicalDeviceTypeVirtualGPU
	PhysicalDeviceTypeCPU

	physicalDeviceTypeCount
)

var physicalDeviceTypeNames = []string{"Other", "IntegratedGPU", "DiscreteGPU", "VirtualGPU", "CPU"}

func (v PhysicalDeviceType) String() string {
	return enumString(physicalDeviceTypeNames, uint32(v), "PhysicalDeviceType")
}

// Valid reports whether v is a defined PhysicalDeviceType.
func (v PhysicalDeviceType) Valid() bool { return v < physicalDeviceTypeCount }
