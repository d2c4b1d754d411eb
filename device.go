package gal

import "context"

// PhysicalDeviceProperties identifies an adapter.
type PhysicalDeviceProperties struct {
	Name       string
	Type       PhysicalDeviceType
	VendorID   uint32
	DeviceID   uint32
	Driver     string
	Backend    string
	APIVersion string
}

// Limits are the hardware limits of a physical device.
type Limits struct {
	MaxImageDimension1D          uint32
	MaxImageDimension2D          uint32
	MaxImageDimension3D          uint32
	MaxImageArrayLayers          uint32
	MaxBufferSize                uint64
	MaxBoundDescriptorSets       uint32
	MaxDescriptorSetBindings     uint32
	MaxUniformBufferRange        uint64
	MinUniformBufferOffsetAlign  uint64
	MinStorageBufferOffsetAlign  uint64
	MaxPushConstantsSize         uint32
	MaxVertexInputBindings       uint32
	MaxVertexInputAttributes     uint32
	MaxColorAttachments          uint32
	MaxFrameBufferWidth          uint32
	MaxFrameBufferHeight         uint32
	MaxFrameBufferLayers         uint32
	MaxComputeWorkGroupCount     [3]uint32
	MaxComputeWorkGroupSize      [3]uint32
	MaxViewports                 uint32
	FrameBufferColorSampleCounts SampleCount
	FrameBufferDepthSampleCounts SampleCount
	BufferImageGranularity       uint64
	NonCoherentAtomSize          uint64
	// OptimalBufferCopyOffsetAlign and OptimalBufferCopyRowPitchAlign are
	// the alignments buffer offsets and row pitches of copies must honor.
	OptimalBufferCopyOffsetAlign   uint64
	OptimalBufferCopyRowPitchAlign uint64
}

// MemoryType is one memory type of a heap.
type MemoryType struct {
	Properties MemoryPropertyFlags
	Heap       uint32
}

// MemoryHeap is one memory heap.
type MemoryHeap struct {
	Size        uint64
	DeviceLocal bool
}

// MemoryProperties lists the memory types and heaps of a device.
type MemoryProperties struct {
	Types []MemoryType
	Heaps []MemoryHeap
}

// FindType returns the index of the first type having all of props.
func (m MemoryProperties) FindType(props MemoryPropertyFlags) (uint32, bool) {
	for i, t := range m.Types {
		if t.Properties.Has(props) {
			return uint32(i), true
		}
	}
	return 0, false
}

// FormatProperties are the features of a format for each tiling and for
// buffers.
type FormatProperties struct {
	Linear  FormatFeatureFlags
	Optimal FormatFeatureFlags
	Buffer  FormatFeatureFlags
	// SampleCounts lists the sample counts usable with optimal tiling.
	SampleCounts SampleCount
}

// Tiling returns the features of the given tiling.
func (p FormatProperties) Tiling(t ImageTiling) FormatFeatureFlags {
	if t == ImageTilingLinear {
		return p.Linear
	}
	return p.Optimal
}

// QueueCreateInfo requests Count queues of one family.
type QueueCreateInfo struct {
	Family uint32
	Count  uint32
}

// DeviceCreateInfo describes a logical device.
type DeviceCreateInfo struct {
	Label  string
	Queues []QueueCreateInfo
}

// PhysicalDevice is one adapter exposed by a renderer. All capability
// queries return abstract values.
type PhysicalDevice interface {
	Properties() PhysicalDeviceProperties
	Limits() Limits
	QueueFamilies() []QueueFamilyProperties
	MemoryProperties() MemoryProperties
	FormatProperties(f Format) FormatProperties
	// ImageFormatSupported reports ErrUnsupportedFormat when the
	// format, tiling, usage and sample count combination is not
	// supported.
	ImageFormatSupported(info ImageCreateInfo) error
	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// Renderer is the entry point of one backend.
type Renderer interface {
	Name() string
	PhysicalDeviceCount() int
	// PhysicalDevice returns device i. An out of range index fails with
	// ErrInvalidArgument.
	PhysicalDevice(i int) (PhysicalDevice, error)
	Destroy()
}

// Device creates and owns every GPU object of one adapter. Objects must be
// destroyed before the device. After device loss every method returns
// ErrDeviceLost.
type Device interface {
	PhysicalDevice() PhysicalDevice
	Queue(family, index uint32) (Queue, error)

	CreateBuffer(info BufferCreateInfo) (Buffer, error)
	CreateImage(info ImageCreateInfo) (Image, error)
	CreateImageView(info ImageViewCreateInfo) (ImageView, error)
	CreateSampler(info SamplerCreateInfo) (Sampler, error)
	CreateShaderModule(info ShaderModuleCreateInfo) (ShaderModule, error)

	CreateRenderPass(info RenderPassCreateInfo) (RenderPass, error)
	CreateFrameBuffer(info FrameBufferCreateInfo) (FrameBuffer, error)
	CreateDescriptorSetLayout(info DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, error)
	CreateDescriptorSet(layout DescriptorSetLayout) (DescriptorSet, error)
	CreatePipelineLayout(info PipelineLayoutCreateInfo) (PipelineLayout, error)
	CreateGraphicsPipeline(info GraphicsPipelineCreateInfo) (Pipeline, error)
	CreateComputePipeline(info ComputePipelineCreateInfo) (Pipeline, error)

	CreateCommandBuffer(info CommandBufferCreateInfo) (CommandBuffer, error)
	CreateFence(signaled bool) (Fence, error)
	CreateSemaphore() (Semaphore, error)

	WaitIdle(ctx context.Context) error
	Lost() bool
	// Destroy releases the device. Objects still alive are reported and
	// released, and Destroy returns ErrInvalidState.
	Destroy() error
}

// ValidateBufferCreateInfo checks the usage and memory flags of a buffer
// against the limits of a device.
func ValidateBufferCreateInfo(info BufferCreateInfo, limits Limits) error {
	if info.Size == 0 {
		return errorf(ErrInvalidArgument, "buffer %q: size is zero", info.Label)
	}
	if limits.MaxBufferSize != 0 && info.Size > limits.MaxBufferSize {
		return errorf(ErrInvalidArgument, "buffer %q: size %d exceeds limit %d", info.Label, info.Size, limits.MaxBufferSize)
	}
	if info.Usage == 0 || info.Usage&BufferUsageAll != info.Usage {
		return errorf(ErrInvalidUsageCombination, "buffer %q: invalid usage %s", info.Label, info.Usage)
	}
	return checkMemory(info.Label, info.Memory)
}

func checkMemory(label string, m MemoryPropertyFlags) error {
	if m&MemoryPropertyAll != m {
		return errorf(ErrInvalidUsageCombination, "%q: invalid memory properties %s", label, m)
	}
	if m.Has(MemoryPropertyLazilyAllocated) && m&(MemoryPropertyHostVisible|MemoryPropertyHostCoherent|MemoryPropertyHostCached) != 0 {
		return errorf(ErrInvalidUsageCombination, "%q: lazily allocated memory cannot be host visible", label)
	}
	if m&(MemoryPropertyHostCoherent|MemoryPropertyHostCached) != 0 && !m.Has(MemoryPropertyHostVisible) {
		return errorf(ErrInvalidUsageCombination, "%q: %s needs host visible memory", label, m)
	}
	return nil
}

// CheckImageSupport validates an image create-info and checks it against
// the capabilities of pd.
func CheckImageSupport(pd PhysicalDevice, info ImageCreateInfo) error {
	if !info.Type.Valid() || !info.Tiling.Valid() || !info.InitialLayout.Valid() {
		return errorf(ErrInvalidArgument, "image %q: invalid type, tiling or layout", info.Label)
	}
	if info.InitialLayout != ImageLayoutUndefined && info.InitialLayout != ImageLayoutPreinitialized {
		return errorf(ErrInvalidArgument, "image %q: initial layout must be undefined or preinitialized", info.Label)
	}
	e := info.Extent
	if e.Width == 0 || e.Height == 0 || e.Depth == 0 || info.MipLevels == 0 || info.ArrayLayers == 0 {
		return errorf(ErrInvalidArgument, "image %q: empty extent, levels or layers", info.Label)
	}
	if (info.Type == ImageType1D && (e.Height != 1 || e.Depth != 1)) || (info.Type == ImageType2D && e.Depth != 1) {
		return errorf(ErrInvalidArgument, "image %q: extent %dx%dx%d invalid for %s", info.Label, e.Width, e.Height, e.Depth, info.Type)
	}
	if info.Type == ImageType3D && info.ArrayLayers != 1 {
		return errorf(ErrInvalidArgument, "image %q: 3D images cannot have array layers", info.Label)
	}
	if info.MipLevels > mipLevelCount(e) {
		return errorf(ErrInvalidArgument, "image %q: %d mip levels exceed the full chain of %d", info.Label, info.MipLevels, mipLevelCount(e))
	}
	if !info.Samples.Single() {
		return errorf(ErrInvalidArgument, "image %q: invalid sample count %s", info.Label, info.Samples)
	}
	if info.Usage == 0 || info.Usage&ImageUsageAll != info.Usage {
		return errorf(ErrInvalidUsageCombination, "image %q: invalid usage %s", info.Label, info.Usage)
	}
	if info.Usage.Has(ImageUsageTransientAttachment) &&
		info.Usage&^(ImageUsageTransientAttachment|ImageUsageColorAttachment|ImageUsageDepthStencilAttachment|ImageUsageInputAttachment) != 0 {
		return errorf(ErrInvalidUsageCombination, "image %q: transient images only support attachment usages", info.Label)
	}
	if info.Usage.Has(ImageUsageColorAttachment) && info.Usage.Has(ImageUsageDepthStencilAttachment) {
		return errorf(ErrInvalidUsageCombination, "image %q: color and depth/stencil attachment usage", info.Label)
	}
	if info.Samples != SampleCount1 && (info.Type != ImageType2D || info.MipLevels != 1 || info.Tiling != ImageTilingOptimal) {
		return errorf(ErrInvalidUsageCombination, "image %q: multisampled images must be 2D optimal with one level", info.Label)
	}
	if err := checkMemory(info.Label, info.Memory); err != nil {
		return err
	}
	if info.Memory.Has(MemoryPropertyLazilyAllocated) && !info.Usage.Has(ImageUsageTransientAttachment) {
		return errorf(ErrInvalidUsageCombination, "image %q: lazily allocated memory needs transient usage", info.Label)
	}
	l := pd.Limits()
	maxDim := l.MaxImageDimension2D
	switch info.Type {
	case ImageType1D:
		maxDim = l.MaxImageDimension1D
	case ImageType3D:
		maxDim = l.MaxImageDimension3D
	}
	if maxDim != 0 && (e.Width > maxDim || e.Height > maxDim || e.Depth > maxDim) {
		return errorf(ErrInvalidArgument, "image %q: extent exceeds limit %d", info.Label, maxDim)
	}
	if l.MaxImageArrayLayers != 0 && info.ArrayLayers > l.MaxImageArrayLayers {
		return errorf(ErrInvalidArgument, "image %q: %d layers exceed limit %d", info.Label, info.ArrayLayers, l.MaxImageArrayLayers)
	}
	return pd.ImageFormatSupported(info)
}

// CheckFormatFeatures reports ErrUnsupportedFormat when props do not
// cover the usage, tiling and sample count of info. Backends use it to
// implement PhysicalDevice.ImageFormatSupported.
func CheckFormatFeatures(props FormatProperties, info ImageCreateInfo) error {
	if !info.Format.Valid() || info.Format == FormatUndefined {
		return errorf(ErrUnsupportedFormat, "image %q: format %s", info.Label, info.Format)
	}
	have := props.Tiling(info.Tiling)
	var need FormatFeatureFlags
	if info.Usage.Has(ImageUsageSampled) {
		need |= FormatFeatureSampledImage
	}
	if info.Usage.Has(ImageUsageStorage) {
		need |= FormatFeatureStorageImage
	}
	if info.Usage.Has(ImageUsageColorAttachment) {
		need |= FormatFeatureColorAttachment
	}
	if info.Usage.Has(ImageUsageDepthStencilAttachment) {
		need |= FormatFeatureDepthStencilAttachment
	}
	if info.Usage.Has(ImageUsageTransferSrc) {
		need |= FormatFeatureTransferSrc
	}
	if info.Usage.Has(ImageUsageTransferDst) {
		need |= FormatFeatureTransferDst
	}
	if have == 0 || !have.Has(need) {
		return errorf(ErrUnsupportedFormat, "image %q: %s %s tiling supports %s, need %s", info.Label, info.Format, info.Tiling, have, need)
	}
	if info.Samples != SampleCount1 && !props.SampleCounts.Has(info.Samples) {
		return errorf(ErrUnsupportedFormat, "image %q: %s does not support %s samples", info.Label, info.Format, info.Samples)
	}
	return nil
}

func mipLevelCount(e Extent3D) uint32 {
	m := max(e.Width, e.Height, e.Depth)
	n := uint32(1)
	for m > 1 {
		m >>= 1
		n++
	}
	return n
}
