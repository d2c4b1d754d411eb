package wgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/webgpu"
)

// FamilyUniversal is the only queue family. WebGPU exposes one queue.
const FamilyUniversal uint32 = 0

// Memory type indices. WebGPU hides device memory; the types only select
// whether a buffer can be mapped.
const (
	MemoryDeviceLocal uint32 = iota
	MemoryHostVisible
)

// PhysicalDevice is one HAL adapter.
type PhysicalDevice struct {
	r       *Renderer
	adapter hal.ExposedAdapter
	// shared is set when the HAL device was opened by someone else.
	shared  *hal.OpenDevice
	formats map[gal.Format]gal.FormatProperties
}

func newPhysicalDevice(r *Renderer, a hal.ExposedAdapter, shared *hal.OpenDevice) *PhysicalDevice {
	pd := &PhysicalDevice{r: r, adapter: a, shared: shared, formats: make(map[gal.Format]gal.FormatProperties)}
	for _, f := range gal.Formats() {
		if !webgpu.SupportsFormat(f) {
			continue
		}
		caps := allTextureCaps
		if a.Adapter != nil {
			caps = a.Adapter.TextureFormatCapabilities(webgpu.Format(f)).Flags
		}
		pd.formats[f] = formatProperties(f, caps)
	}
	return pd
}

const allTextureCaps = hal.TextureFormatCapabilitySampled |
	hal.TextureFormatCapabilityStorage |
	hal.TextureFormatCapabilityRenderAttachment |
	hal.TextureFormatCapabilityBlendable |
	hal.TextureFormatCapabilityMultisample |
	hal.TextureFormatCapabilityMultisampleResolve

// formatProperties translates HAL texture capabilities. WebGPU has no
// linear tiling, so Linear stays empty.
func formatProperties(f gal.Format, caps hal.TextureFormatCapabilityFlags) gal.FormatProperties {
	var p gal.FormatProperties
	if webgpu.SupportsVertexFormat(f) {
		p.Buffer = gal.FormatFeatureVertexBuffer
	}
	if caps == 0 {
		return p
	}
	p.Optimal = gal.FormatFeatureTransferSrc | gal.FormatFeatureTransferDst
	p.SampleCounts = gal.SampleCount1
	if caps&hal.TextureFormatCapabilitySampled != 0 {
		p.Optimal |= gal.FormatFeatureSampledImage
		if f.Class() == gal.NumericFloat && !f.IsDepthStencil() {
			p.Optimal |= gal.FormatFeatureSampledImageFilterLinear
		}
	}
	if caps&hal.TextureFormatCapabilityStorage != 0 {
		p.Optimal |= gal.FormatFeatureStorageImage
	}
	if caps&hal.TextureFormatCapabilityRenderAttachment != 0 {
		if f.IsDepthStencil() {
			p.Optimal |= gal.FormatFeatureDepthStencilAttachment
		} else {
			p.Optimal |= gal.FormatFeatureColorAttachment
		}
	}
	if caps&hal.TextureFormatCapabilityBlendable != 0 && !f.IsDepthStencil() {
		p.Optimal |= gal.FormatFeatureColorAttachmentBlend
	}
	if caps&hal.TextureFormatCapabilityMultisample != 0 {
		p.SampleCounts |= gal.SampleCount4
	}
	return p
}

// Properties identifies the adapter.
func (pd *PhysicalDevice) Properties() gal.PhysicalDeviceProperties {
	info := pd.adapter.Info
	return gal.PhysicalDeviceProperties{
		Name:       info.Name,
		Type:       webgpu.PhysicalDeviceTypeBack(info.DeviceType),
		VendorID:   info.VendorID,
		DeviceID:   info.DeviceID,
		Driver:     info.Driver,
		Backend:    ID + "/" + info.Backend.String(),
		APIVersion: gal.APIVersion,
	}
}

// Limits translates the adapter limits. Push constants are never exposed.
func (pd *PhysicalDevice) Limits() gal.Limits {
	l := pd.adapter.Capabilities.Limits
	samples := gal.SampleCount1 | gal.SampleCount4
	return gal.Limits{
		MaxImageDimension1D:            l.MaxTextureDimension1D,
		MaxImageDimension2D:            l.MaxTextureDimension2D,
		MaxImageDimension3D:            l.MaxTextureDimension3D,
		MaxImageArrayLayers:            l.MaxTextureArrayLayers,
		MaxBufferSize:                  min(l.MaxBufferSize, pd.r.cfg.HeapSize),
		MaxBoundDescriptorSets:         l.MaxBindGroups,
		MaxDescriptorSetBindings:       l.MaxBindingsPerBindGroup,
		MaxUniformBufferRange:          l.MaxUniformBufferBindingSize,
		MinUniformBufferOffsetAlign:    uint64(l.MinUniformBufferOffsetAlignment),
		MinStorageBufferOffsetAlign:    uint64(l.MinStorageBufferOffsetAlignment),
		MaxPushConstantsSize:           0,
		MaxVertexInputBindings:         l.MaxVertexBuffers,
		MaxVertexInputAttributes:       l.MaxVertexAttributes,
		MaxColorAttachments:            l.MaxColorAttachments,
		MaxFrameBufferWidth:            l.MaxTextureDimension2D,
		MaxFrameBufferHeight:           l.MaxTextureDimension2D,
		MaxFrameBufferLayers:           1,
		MaxComputeWorkGroupCount:       [3]uint32{l.MaxComputeWorkgroupsPerDimension, l.MaxComputeWorkgroupsPerDimension, l.MaxComputeWorkgroupsPerDimension},
		MaxComputeWorkGroupSize:        [3]uint32{l.MaxComputeWorkgroupSizeX, l.MaxComputeWorkgroupSizeY, l.MaxComputeWorkgroupSizeZ},
		MaxViewports:                   1,
		FrameBufferColorSampleCounts:   samples,
		FrameBufferDepthSampleCounts:   samples,
		BufferImageGranularity:         1,
		NonCoherentAtomSize:            4,
		OptimalBufferCopyOffsetAlign:   pd.copyOffset(),
		OptimalBufferCopyRowPitchAlign: pd.copyPitch(),
	}
}

// QueueFamilies returns the single universal family with one queue.
func (pd *PhysicalDevice) QueueFamilies() []gal.QueueFamilyProperties {
	return []gal.QueueFamilyProperties{
		FamilyUniversal: {Flags: gal.QueueGraphics | gal.QueueCompute | gal.QueueTransfer, Count: 1},
	}
}

// MemoryProperties returns a device heap and a mappable heap, both sized
// by the configured heap budget.
func (pd *PhysicalDevice) MemoryProperties() gal.MemoryProperties {
	size := pd.r.cfg.HeapSize
	return gal.MemoryProperties{
		Types: []gal.MemoryType{
			MemoryDeviceLocal: {Properties: gal.MemoryPropertyDeviceLocal, Heap: 0},
			MemoryHostVisible: {Properties: gal.MemoryPropertyHostVisible | gal.MemoryPropertyHostCoherent, Heap: 1},
		},
		Heaps: []gal.MemoryHeap{
			{Size: size, DeviceLocal: true},
			{Size: size},
		},
	}
}

// FormatProperties returns the features of f. Formats WebGPU cannot
// express report no features.
func (pd *PhysicalDevice) FormatProperties(f gal.Format) gal.FormatProperties {
	return pd.formats[f]
}

// ImageFormatSupported checks info against the adapter's format table.
func (pd *PhysicalDevice) ImageFormatSupported(info gal.ImageCreateInfo) error {
	return gal.CheckFormatFeatures(pd.FormatProperties(info.Format), info)
}

// CreateDevice opens a logical device with the single queue.
func (pd *PhysicalDevice) CreateDevice(info gal.DeviceCreateInfo) (gal.Device, error) {
	return newDevice(pd, info)
}

// copyPitch returns the required alignment of BytesPerRow in image copies.
func (pd *PhysicalDevice) copyPitch() uint64 {
	if a := pd.adapter.Capabilities.AlignmentsMask.BufferCopyPitch; a > 0 {
		return a
	}
	return 256
}

// copyOffset returns the required alignment of buffer copy offsets.
func (pd *PhysicalDevice) copyOffset() uint64 {
	if a := pd.adapter.Capabilities.AlignmentsMask.BufferCopyOffset; a > 0 {
		return a
	}
	return 4
}
