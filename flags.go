package gal

import (
	"fmt"
	"math/bits"
	"strings"
)

func flagString(names []string, v uint32) string {
	if v == 0 {
		return "0"
	}
	var b strings.Builder
	for v != 0 {
		i := bits.TrailingZeros32(v)
		v &^= 1 << i
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		if i < len(names) {
			b.WriteString(names[i])
		} else {
			fmt.Fprintf(&b, "0x%x", uint32(1)<<i)
		}
	}
	return b.String()
}

// BufferUsageFlags describes how a buffer will be used.
type BufferUsageFlags uint32

const (
	BufferUsageTransferSrc BufferUsageFlags = 1 << iota
	BufferUsageTransferDst
	BufferUsageUniformTexel
	BufferUsageStorageTexel
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageIndirect
)

// BufferUsageAll is the union of every defined BufferUsageFlags bit.
const BufferUsageAll BufferUsageFlags = 1<<9 - 1

var bufferUsageFlagsNames = []string{"TransferSrc", "TransferDst", "UniformTexel", "StorageTexel", "Uniform", "Storage", "Index", "Vertex", "Indirect"}

func (f BufferUsageFlags) String() string { return flagString(bufferUsageFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f BufferUsageFlags) Has(mask BufferUsageFlags) bool { return f&mask == mask }

// ImageUsageFlags describes how an image will be used.
type ImageUsageFlags uint32

const (
	ImageUsageTransferSrc ImageUsageFlags = 1 << iota
	ImageUsageTransferDst
	ImageUsageSampled
	ImageUsageStorage
	ImageUsageColorAttachment
	ImageUsageDepthStencilAttachment
	ImageUsageTransientAttachment
	ImageUsageInputAttachment
)

// ImageUsageAll is the union of every defined ImageUsageFlags bit.
const ImageUsageAll ImageUsageFlags = 1<<8 - 1

var imageUsageFlagsNames = []string{"TransferSrc", "TransferDst", "Sampled", "Storage", "ColorAttachment", "DepthStencilAttachment", "TransientAttachment", "InputAttachment"}

func (f ImageUsageFlags) String() string { return flagString(imageUsageFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f ImageUsageFlags) Has(mask ImageUsageFlags) bool { return f&mask == mask }

// MemoryPropertyFlags describes where an allocation lives and how the host may access it.
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocal MemoryPropertyFlags = 1 << iota
	MemoryPropertyHostVisible
	MemoryPropertyHostCoherent
	MemoryPropertyHostCached
	MemoryPropertyLazilyAllocated
)

// MemoryPropertyAll is the union of every defined MemoryPropertyFlags bit.
const MemoryPropertyAll MemoryPropertyFlags = 1<<5 - 1

var memoryPropertyFlagsNames = []string{"DeviceLocal", "HostVisible", "HostCoherent", "HostCached", "LazilyAllocated"}

func (f MemoryPropertyFlags) String() string { return flagString(memoryPropertyFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f MemoryPropertyFlags) Has(mask MemoryPropertyFlags) bool { return f&mask == mask }

// ShaderStageFlags selects shader stages.
type ShaderStageFlags uint32

const (
	ShaderStageVertex ShaderStageFlags = 1 << iota
	ShaderStageTessellationControl
	ShaderStageTessellationEvaluation
	ShaderStageGeometry
	ShaderStageFragment
	ShaderStageCompute
)

// ShaderStageAllGraphics selects every stage of the graphics pipeline.
const ShaderStageAllGraphics = ShaderStageVertex | ShaderStageTessellationControl |
	ShaderStageTessellationEvaluation | ShaderStageGeometry | ShaderStageFragment

// ShaderStageAll is the union of every defined ShaderStageFlags bit.
const ShaderStageAll ShaderStageFlags = 1<<6 - 1

var shaderStageFlagsNames = []string{"Vertex", "TessellationControl", "TessellationEvaluation", "Geometry", "Fragment", "Compute"}

func (f ShaderStageFlags) String() string { return flagString(shaderStageFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f ShaderStageFlags) Has(mask ShaderStageFlags) bool { return f&mask == mask }

// PipelineStageFlags selects pipeline stages for synchronization scopes.
type PipelineStageFlags uint32

const (
	PipelineStageTopOfPipe PipelineStageFlags = 1 << iota
	PipelineStageDrawIndirect
	PipelineStageVertexInput
	PipelineStageVertexShader
	PipelineStageTessellationControlShader
	PipelineStageTessellationEvaluationShader
	PipelineStageGeometryShader
	PipelineStageFragmentShader
	PipelineStageEarlyFragmentTests
	PipelineStageLateFragmentTests
	PipelineStageColorAttachmentOutput
	PipelineStageComputeShader
	PipelineStageTransfer
	PipelineStageBottomOfPipe
	PipelineStageHost
	PipelineStageAllGraphics
	PipelineStageAllCommands
)

// PipelineStageAll is the union of every defined PipelineStageFlags bit.
const PipelineStageAll PipelineStageFlags = 1<<17 - 1

var pipelineStageFlagsNames = []string{"TopOfPipe", "DrawIndirect", "VertexInput", "VertexShader", "TessellationControlShader", "TessellationEvaluationShader", "GeometryShader", "FragmentShader", "EarlyFragmentTests", "LateFragmentTests", "ColorAttachmentOutput", "ComputeShader", "Transfer", "BottomOfPipe", "Host", "AllGraphics", "AllCommands"}

func (f PipelineStageFlags) String() string { return flagString(pipelineStageFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f PipelineStageFlags) Has(mask PipelineStageFlags) bool { return f&mask == mask }

// AccessFlags selects memory access types for synchronization scopes.
type AccessFlags uint32

const (
	AccessIndirectCommandRead AccessFlags = 1 << iota
	AccessIndexRead
	AccessVertexAttributeRead
	AccessUniformRead
	AccessInputAttachmentRead
	AccessShaderRead
	AccessShaderWrite
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessTransferRead
	AccessTransferWrite
	AccessHostRead
	AccessHostWrite
	AccessMemoryRead
	AccessMemoryWrite
)

// AccessAll is the union of every defined AccessFlags bit.
const AccessAll AccessFlags = 1<<17 - 1

var accessFlagsNames = []string{"IndirectCommandRead", "IndexRead", "VertexAttributeRead", "UniformRead", "InputAttachmentRead", "ShaderRead", "ShaderWrite", "ColorAttachmentRead", "ColorAttachmentWrite", "DepthStencilAttachmentRead", "DepthStencilAttachmentWrite", "TransferRead", "TransferWrite", "HostRead", "HostWrite", "MemoryRead", "MemoryWrite"}

func (f AccessFlags) String() string { return flagString(accessFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f AccessFlags) Has(mask AccessFlags) bool { return f&mask == mask }

// ColorComponentFlags selects color channels written by blending.
type ColorComponentFlags uint32

const (
	ColorComponentR ColorComponentFlags = 1 << iota
	ColorComponentG
	ColorComponentB
	ColorComponentA
)

// ColorComponentAll is the union of every defined ColorComponentFlags bit.
const ColorComponentAll ColorComponentFlags = 1<<4 - 1

var colorComponentFlagsNames = []string{"R", "G", "B", "A"}

func (f ColorComponentFlags) String() string { return flagString(colorComponentFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f ColorComponentFlags) Has(mask ColorComponentFlags) bool { return f&mask == mask }

// ImageAspectFlags selects the color, depth or stencil planes of an image.
type ImageAspectFlags uint32

const (
	ImageAspectColor ImageAspectFlags = 1 << iota
	ImageAspectDepth
	ImageAspectStencil
)

// ImageAspectAll is the union of every defined ImageAspectFlags bit.
const ImageAspectAll ImageAspectFlags = 1<<3 - 1

var imageAspectFlagsNames = []string{"Color", "Depth", "Stencil"}

func (f ImageAspectFlags) String() string { return flagString(imageAspectFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f ImageAspectFlags) Has(mask ImageAspectFlags) bool { return f&mask == mask }

// FormatFeatureFlags reports what a physical device can do with a format.
type FormatFeatureFlags uint32

const (
	FormatFeatureSampledImage FormatFeatureFlags = 1 << iota
	FormatFeatureStorageImage
	FormatFeatureStorageImageAtomic
	FormatFeatureUniformTexelBuffer
	FormatFeatureStorageTexelBuffer
	FormatFeatureStorageTexelBufferAtomic
	FormatFeatureVertexBuffer
	FormatFeatureColorAttachment
	FormatFeatureColorAttachmentBlend
	FormatFeatureDepthStencilAttachment
	FormatFeatureBlitSrc
	FormatFeatureBlitDst
	FormatFeatureSampledImageFilterLinear
	_
	FormatFeatureTransferSrc
	FormatFeatureTransferDst
)

// FormatFeatureAll is the union of every defined FormatFeatureFlags bit.
const FormatFeatureAll FormatFeatureFlags = 1<<13 - 1 | FormatFeatureTransferSrc | FormatFeatureTransferDst

var formatFeatureFlagsNames = []string{"SampledImage", "StorageImage", "StorageImageAtomic", "UniformTexelBuffer", "StorageTexelBuffer", "StorageTexelBufferAtomic", "VertexBuffer", "ColorAttachment", "ColorAttachmentBlend", "DepthStencilAttachment", "BlitSrc", "BlitDst", "SampledImageFilterLinear", "", "TransferSrc", "TransferDst"}

func (f FormatFeatureFlags) String() string { return flagString(formatFeatureFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f FormatFeatureFlags) Has(mask FormatFeatureFlags) bool { return f&mask == mask }

// CommandBufferUsageFlags describes how a recorded command buffer will be submitted.
type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmit CommandBufferUsageFlags = 1 << iota
	CommandBufferUsageRenderPassContinue
	CommandBufferUsageSimultaneousUse
)

// CommandBufferUsageAll is the union of every defined CommandBufferUsageFlags bit.
const CommandBufferUsageAll CommandBufferUsageFlags = 1<<3 - 1

var commandBufferUsageFlagsNames = []string{"OneTimeSubmit", "RenderPassContinue", "SimultaneousUse"}

func (f CommandBufferUsageFlags) String() string {
	return flagString(commandBufferUsageFlagsNames, uint32(f))
}

// Has reports whether every bit of mask is set in f.
func (f CommandBufferUsageFlags) Has(mask CommandBufferUsageFlags) bool { return f&mask == mask }

// SampleCount is a number of samples per pixel. Values are single bits so
// a set of supported counts can be expressed as a mask.
type SampleCount uint32

const (
	SampleCount1 SampleCount = 1 << iota
	SampleCount2
	SampleCount4
	SampleCount8
	SampleCount16
	SampleCount32
	SampleCount64
)

// SampleCountAll is the union of every defined SampleCount bit.
const SampleCountAll SampleCount = 1<<7 - 1

var sampleCountNames = []string{"1", "2", "4", "8", "16", "32", "64"}

func (f SampleCount) String() string { return flagString(sampleCountNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f SampleCount) Has(mask SampleCount) bool { return f&mask == mask }

// Count returns the number of samples of a single-bit value.
func (f SampleCount) Count() uint32 { return uint32(f) }

// Single reports whether f names exactly one sample count.
func (f SampleCount) Single() bool {
	return f != 0 && f&SampleCountAll == f && bits.OnesCount32(uint32(f)) == 1
}

// CullModeFlags selects which triangle faces are discarded.
type CullModeFlags uint32

const (
	CullModeFront CullModeFlags = 1 << iota
	CullModeBack
)

// CullModeAll is the union of every defined CullModeFlags bit.
const CullModeAll CullModeFlags = 1<<2 - 1

const (
	CullModeNone         CullModeFlags = 0
	CullModeFrontAndBack               = CullModeFront | CullModeBack
)

var cullModeFlagsNames = []string{"Front", "Back"}

func (f CullModeFlags) String() string { return flagString(cullModeFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f CullModeFlags) Has(mask CullModeFlags) bool { return f&mask == mask }

// QueueFlags describes the operations a queue family supports.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

// QueueAll is the union of every defined QueueFlags bit.
const QueueAll QueueFlags = 1<<4 - 1

var queueFlagsNames = []string{"Graphics", "Compute", "Transfer", "SparseBinding"}

func (f QueueFlags) String() string { return flagString(queueFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f QueueFlags) Has(mask QueueFlags) bool { return f&mask == mask }

// DependencyFlags modifies subpass dependencies.
type DependencyFlags uint32

const (
	DependencyByRegion DependencyFlags = 1 << iota
)

// DependencyAll is the union of every defined DependencyFlags bit.
const DependencyAll DependencyFlags = 1<<1 - 1

var dependencyFlagsNames = []string{"ByRegion"}

func (f DependencyFlags) String() string { return flagString(dependencyFlagsNames, uint32(f)) }

// Has reports whether every bit of mask is set in f.
func (f DependencyFlags) Has(mask DependencyFlags) bool { return f&mask == mask }
