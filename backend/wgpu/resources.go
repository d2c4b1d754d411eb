package wgpu

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/alloc"
	"github.com/gogpu/gal/convert/webgpu"
	"github.com/gogpu/gal/internal/track"
)

// memoryAlign is the alignment used for heap accounting.
const memoryAlign = 256

// object is embedded by every device child.
type object struct {
	dev       *Device
	label     string
	id        track.ID
	destroyed atomic.Bool
}

func (o *object) Label() string            { return o.label }
func (o *object) Destroyed() bool          { return o.destroyed.Load() }
func (o *object) device() *Device          { return o.dev }
func (o *object) init(d *Device, l string) { o.dev, o.label = d, l }

func (o *object) track(kind track.Kind, destroy func()) {
	o.id = o.dev.tracker.Add(kind, o.label, destroy)
	o.dev.log.Debug("gal: object created", slog.String("kind", kind.String()), slog.String("label", o.label))
}

// release marks the object destroyed and schedules free to run once the
// submissions made so far completed. It returns false if the object was
// already destroyed.
func (o *object) release(free func()) bool {
	if !o.destroyed.CompareAndSwap(false, true) {
		return false
	}
	o.dev.tracker.Remove(o.id)
	if free != nil {
		o.dev.queue.later(free)
	}
	return true
}

// Buffer is a HAL buffer accounted in one of the device heaps.
type Buffer struct {
	object
	info    gal.BufferCreateInfo
	memType uint32
	mem     alloc.Allocation
	raw     hal.Buffer
	usage   gputypes.BufferUsage
	// state is the buffer usage after the last submitted command buffer.
	// It is guarded by the queue lock.
	state gputypes.BufferUsage

	mu     sync.Mutex
	mapped bool
}

// CreateBuffer creates a buffer. Host visible buffers are mappable; texel
// buffer usages do not exist in WebGPU.
func (d *Device) CreateBuffer(info gal.BufferCreateInfo) (gal.Buffer, error) {
	if err := d.check("create buffer"); err != nil {
		return nil, err
	}
	if err := gal.ValidateBufferCreateInfo(info, d.pd.Limits()); err != nil {
		return nil, err
	}
	if !webgpu.SupportsBufferUsage(info.Usage) {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "buffer %q: usage %s", info.Label, info.Usage)
	}
	memType, mem, err := d.allocate(info.Label, info.Memory, info.Size)
	if err != nil {
		return nil, err
	}
	usage := webgpu.BufferUsage(info.Usage)
	if memType == MemoryHostVisible {
		usage |= gputypes.BufferUsageMapRead | gputypes.BufferUsageMapWrite
	}
	raw, err := d.raw.CreateBuffer(&hal.BufferDescriptor{Label: info.Label, Size: info.Size, Usage: usage})
	if err != nil {
		d.heaps[memType].Free(mem)
		return nil, d.halFailed(err, "create buffer %q", info.Label)
	}
	b := &Buffer{info: info, memType: memType, mem: mem, raw: raw, usage: usage}
	b.init(d, info.Label)
	b.track(track.KindBuffer, b.Destroy)
	return b, nil
}

func (d *Device) allocate(label string, props gal.MemoryPropertyFlags, size uint64) (uint32, alloc.Allocation, error) {
	memType, ok := d.pd.MemoryProperties().FindType(props)
	if !ok {
		return 0, alloc.Allocation{}, d.errorf(gal.ErrUnsupportedCapability, "%q: no memory type with %s", label, props)
	}
	mem, err := d.heaps[memType].Allocate(size, memoryAlign)
	if err != nil {
		return 0, alloc.Allocation{}, d.errorf(err, "%q: allocate %d bytes from memory type %d", label, size, memType)
	}
	return memType, mem, nil
}

func (b *Buffer) Size() uint64                { return b.info.Size }
func (b *Buffer) Usage() gal.BufferUsageFlags { return b.info.Usage }
func (b *Buffer) Memory() gal.MemoryPropertyFlags {
	return b.dev.pd.MemoryProperties().Types[b.memType].Properties
}

// Map maps a range of a host visible buffer. A size of WholeSize maps to
// the end of the buffer.
func (b *Buffer) Map(offset, size uint64) ([]byte, error) {
	if err := b.dev.check("map buffer"); err != nil {
		return nil, err
	}
	if b.Destroyed() {
		return nil, b.dev.errorf(gal.ErrInvalidState, "map buffer %q: destroyed", b.label)
	}
	if b.memType != MemoryHostVisible {
		return nil, b.dev.errorf(gal.ErrInvalidState, "map buffer %q: memory is not host visible", b.label)
	}
	if size == gal.WholeSize && offset < b.info.Size {
		size = b.info.Size - offset
	}
	if offset >= b.info.Size || size == 0 || !gal.RangeFits(offset, size, b.info.Size) {
		return nil, b.dev.errorf(gal.ErrInvalidArgument, "map buffer %q: range %d+%d of %d", b.label, offset, size, b.info.Size)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mapped {
		return nil, b.dev.errorf(gal.ErrInvalidState, "map buffer %q: already mapped", b.label)
	}
	m, err := b.dev.raw.MapBuffer(b.raw, offset, size)
	if err != nil {
		return nil, b.dev.halFailed(err, "map buffer %q", b.label)
	}
	b.mapped = true
	return unsafe.Slice((*byte)(m.Ptr), size), nil
}

// Unmap ends a mapping.
func (b *Buffer) Unmap() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mapped {
		return b.dev.errorf(gal.ErrInvalidState, "unmap buffer %q: not mapped", b.label)
	}
	b.mapped = false
	if err := b.dev.raw.UnmapBuffer(b.raw); err != nil {
		return b.dev.halFailed(err, "unmap buffer %q", b.label)
	}
	return nil
}

// Destroy returns the memory to its heap. The HAL buffer is released once
// the queue finished the submissions made so far.
func (b *Buffer) Destroy() {
	if b.release(func() { b.dev.raw.DestroyBuffer(b.raw) }) {
		b.dev.heaps[b.memType].Free(b.mem)
	}
}

// Image is a HAL texture. Only device local, optimally tiled images exist.
type Image struct {
	object
	info    gal.ImageCreateInfo
	memType uint32
	mem     alloc.Allocation
	raw     hal.Texture

	// usage is the texture usage after the last submitted command buffer.
	// It is guarded by the queue lock.
	usage gputypes.TextureUsage
}

// CreateImage checks info against the adapter's format table and creates
// the texture.
func (d *Device) CreateImage(info gal.ImageCreateInfo) (gal.Image, error) {
	if err := d.check("create image"); err != nil {
		return nil, err
	}
	if info.Samples == 0 {
		info.Samples = gal.SampleCount1
	}
	if info.Memory.Has(gal.MemoryPropertyHostVisible) {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "image %q: host visible images", info.Label)
	}
	if !webgpu.SupportsFormat(info.Format) {
		return nil, d.errorf(gal.ErrUnsupportedFormat, "image %q: format %s", info.Label, info.Format)
	}
	if err := gal.CheckImageSupport(d.pd, info); err != nil {
		return nil, err
	}
	memType, mem, err := d.allocate(info.Label, info.Memory, imageSize(info))
	if err != nil {
		return nil, err
	}
	size := hal.Extent3D{Width: info.Extent.Width, Height: info.Extent.Height, DepthOrArrayLayers: max(info.ArrayLayers, 1)}
	if info.Type == gal.ImageType3D {
		size.DepthOrArrayLayers = max(info.Extent.Depth, 1)
	}
	raw, err := d.raw.CreateTexture(&hal.TextureDescriptor{
		Label:         info.Label,
		Size:          size,
		MipLevelCount: max(info.MipLevels, 1),
		SampleCount:   uint32(info.Samples),
		Dimension:     webgpu.ImageType(info.Type),
		Format:        webgpu.Format(info.Format),
		Usage:         webgpu.ImageUsage(info.Usage),
	})
	if err != nil {
		d.heaps[memType].Free(mem)
		return nil, d.halFailed(err, "create image %q", info.Label)
	}
	img := &Image{info: info, memType: memType, mem: mem, raw: raw}
	img.init(d, info.Label)
	img.track(track.KindImage, img.Destroy)
	return img, nil
}

// imageSize estimates the memory of an image over all mip levels.
func imageSize(info gal.ImageCreateInfo) uint64 {
	fi := info.Format.Info()
	be := max(fi.BlockExtent, 1)
	layers := uint64(max(info.ArrayLayers, 1)) * uint64(max(info.Samples, 1))
	var size uint64
	for l := range max(info.MipLevels, 1) {
		e := info.Extent.Mip(l)
		w := uint64((e.Width + be - 1) / be)
		h := uint64((e.Height + be - 1) / be)
		size += w * h * uint64(max(e.Depth, 1)) * uint64(fi.BlockSize) * layers
	}
	return max(size, 1)
}

// Info returns the create-info.
func (img *Image) Info() gal.ImageCreateInfo { return img.info }

// Destroy returns the memory to its heap.
func (img *Image) Destroy() {
	if img.release(func() { img.dev.raw.DestroyTexture(img.raw) }) {
		img.dev.heaps[img.memType].Free(img.mem)
	}
}

// ImageView is a HAL texture view.
type ImageView struct {
	object
	info gal.ImageViewCreateInfo
	raw  hal.TextureView
}

// CreateImageView resolves the view defaults and creates the texture view.
func (d *Device) CreateImageView(info gal.ImageViewCreateInfo) (gal.ImageView, error) {
	if err := d.check("create image view"); err != nil {
		return nil, err
	}
	img, ok := info.Image.(*Image)
	if info.Image != nil && (!ok || img.dev != d) {
		return nil, d.errorf(gal.ErrInvalidArgument, "image view %q: image belongs to another device", info.Label)
	}
	info, err := gal.ResolveImageView(info)
	if err != nil {
		return nil, err
	}
	if !webgpu.SupportsImageViewType(info.ViewType) {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "image view %q: view type %s", info.Label, info.ViewType)
	}
	if !webgpu.SupportsFormat(info.Format) {
		return nil, d.errorf(gal.ErrUnsupportedFormat, "image view %q: format %s", info.Label, info.Format)
	}
	r := info.Range
	raw, err := d.raw.CreateTextureView(img.raw, &hal.TextureViewDescriptor{
		Label:           info.Label,
		Format:          webgpu.Format(info.Format),
		Dimension:       webgpu.ImageViewType(info.ViewType),
		Aspect:          webgpu.ImageAspect(r.Aspect),
		BaseMipLevel:    r.BaseMipLevel,
		MipLevelCount:   r.LevelCount,
		BaseArrayLayer:  r.BaseArrayLayer,
		ArrayLayerCount: r.LayerCount,
	})
	if err != nil {
		return nil, d.halFailed(err, "create image view %q", info.Label)
	}
	v := &ImageView{info: info, raw: raw}
	v.init(d, info.Label)
	v.track(track.KindImageView, v.Destroy)
	return v, nil
}

func (v *ImageView) Image() gal.Image                 { return v.info.Image }
func (v *ImageView) ViewType() gal.ImageViewType      { return v.info.ViewType }
func (v *ImageView) Format() gal.Format               { return v.info.Format }
func (v *ImageView) Range() gal.ImageSubresourceRange { return v.info.Range }
func (v *ImageView) Samples() gal.SampleCount         { return v.info.Image.Info().Samples }
func (v *ImageView) Extent() gal.Extent3D {
	return v.info.Image.Info().Extent.Mip(v.info.Range.BaseMipLevel)
}

func (v *ImageView) image() *Image { return v.info.Image.(*Image) }

// Destroy releases the texture view.
func (v *ImageView) Destroy() {
	v.release(func() { v.dev.raw.DestroyTextureView(v.raw) })
}

// samplerKey identifies equal sampler states.
type samplerKey gal.SamplerCreateInfo

// sharedSampler is a HAL sampler used by every Sampler with the same
// state. refs is guarded by Device.samplerMu.
type sharedSampler struct {
	raw  hal.Sampler
	refs int
}

// Sampler refers to a shared HAL sampler.
type Sampler struct {
	object
	info   gal.SamplerCreateInfo
	key    samplerKey
	shared *sharedSampler
}

// CreateSampler returns a sampler sharing the HAL sampler of every other
// live sampler with the same state.
func (d *Device) CreateSampler(info gal.SamplerCreateInfo) (gal.Sampler, error) {
	if err := d.check("create sampler"); err != nil {
		return nil, err
	}
	if err := gal.ValidateSampler(info); err != nil {
		return nil, err
	}
	for _, m := range []gal.AddressMode{info.AddressModeU, info.AddressModeV, info.AddressModeW} {
		if !webgpu.SupportsAddressMode(m) {
			return nil, d.errorf(gal.ErrUnsupportedCapability, "sampler %q: address mode %s", info.Label, m)
		}
	}
	if info.MipLodBias != 0 {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "sampler %q: mip lod bias", info.Label)
	}
	key := samplerKey(info)
	key.Label = ""

	d.samplerMu.Lock()
	defer d.samplerMu.Unlock()
	shared, err := d.samplers.GetOrCreate(key, func() (*sharedSampler, error) {
		desc := &hal.SamplerDescriptor{
			Label:        info.Label,
			AddressModeU: webgpu.AddressMode(info.AddressModeU),
			AddressModeV: webgpu.AddressMode(info.AddressModeV),
			AddressModeW: webgpu.AddressMode(info.AddressModeW),
			MagFilter:    webgpu.Filter(info.MagFilter),
			MinFilter:    webgpu.Filter(info.MinFilter),
			MipmapFilter: gputypes.FilterMode(webgpu.MipmapMode(info.MipmapMode)),
			LodMinClamp:  info.MinLod,
			LodMaxClamp:  info.MaxLod,
			Anisotropy:   uint16(max(info.MaxAnisotropy, 1)),
		}
		if info.CompareEnable {
			desc.Compare = webgpu.CompareOp(info.CompareOp)
		}
		raw, err := d.raw.CreateSampler(desc)
		if err != nil {
			return nil, d.halFailed(err, "create sampler %q", info.Label)
		}
		return &sharedSampler{raw: raw}, nil
	})
	if err != nil {
		return nil, err
	}
	shared.refs++
	s := &Sampler{info: info, key: key, shared: shared}
	s.init(d, info.Label)
	s.track(track.KindSampler, s.Destroy)
	return s, nil
}

func (s *Sampler) Info() gal.SamplerCreateInfo { return s.info }

// Destroy drops the reference to the shared HAL sampler.
func (s *Sampler) Destroy() {
	s.release(func() {
		d := s.dev
		d.samplerMu.Lock()
		defer d.samplerMu.Unlock()
		if s.shared.refs--; s.shared.refs == 0 {
			d.samplers.Delete(s.key)
		}
	})
}

// SharedSamplers returns the number of distinct HAL samplers alive.
func (d *Device) SharedSamplers() int { return d.samplers.Len() }

// ShaderModule is a HAL shader module.
type ShaderModule struct {
	object
	info gal.ShaderModuleCreateInfo
	raw  hal.ShaderModule
}

// CreateShaderModule checks the code and hands WGSL source or SPIR-V words
// to the HAL. With validation off the shader interface is dropped.
func (d *Device) CreateShaderModule(info gal.ShaderModuleCreateInfo) (gal.ShaderModule, error) {
	if err := d.check("create shader module"); err != nil {
		return nil, err
	}
	words, err := gal.CompileShader(info)
	if err != nil {
		return nil, err
	}
	src := hal.ShaderSource{SPIRV: words}
	if info.WGSL != "" {
		src = hal.ShaderSource{WGSL: info.WGSL}
	}
	raw, err := d.raw.CreateShaderModule(&hal.ShaderModuleDescriptor{Label: info.Label, Source: src})
	if err != nil {
		return nil, d.halFailed(err, "create shader module %q", info.Label)
	}
	if !d.pd.r.cfg.Validation {
		info.Interface = gal.ShaderInterface{}
	}
	info.SPIRV, info.WGSL = nil, ""
	m := &ShaderModule{info: info, raw: raw}
	m.init(d, info.Label)
	m.track(track.KindShaderModule, m.Destroy)
	return m, nil
}

func (m *ShaderModule) Stage() gal.ShaderStageFlags    { return m.info.Stage }
func (m *ShaderModule) EntryPoint() string             { return m.info.EntryPoint }
func (m *ShaderModule) Interface() gal.ShaderInterface { return m.info.Interface }

// Destroy releases the shader module.
func (m *ShaderModule) Destroy() {
	m.release(func() { m.dev.raw.DestroyShaderModule(m.raw) })
}

// RenderPass is a validated single-subpass render pass. WebGPU begins
// passes from attachment lists, so there is no HAL object.
type RenderPass struct {
	object
	info gal.RenderPassCreateInfo
}

// CreateRenderPass validates info and rejects what a WebGPU pass cannot
// express.
func (d *Device) CreateRenderPass(info gal.RenderPassCreateInfo) (gal.RenderPass, error) {
	if err := d.check("create render pass"); err != nil {
		return nil, err
	}
	info = cloneRenderPass(info)
	if err := gal.ValidateRenderPass(&info); err != nil {
		return nil, err
	}
	if len(info.Subpasses) != 1 {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "render pass %q: %d subpasses", info.Label, len(info.Subpasses))
	}
	sp := info.Subpasses[0]
	if len(sp.InputAttachments) > 0 {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "render pass %q: input attachments", info.Label)
	}
	if slices.ContainsFunc(sp.ColorAttachments, func(r gal.AttachmentReference) bool { return r.Attachment == gal.AttachmentUnused }) {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "render pass %q: unused color attachment slots", info.Label)
	}
	for _, a := range info.Attachments {
		if !webgpu.SupportsFormat(a.Format) {
			return nil, d.errorf(gal.ErrUnsupportedFormat, "render pass %q: attachment format %s", info.Label, a.Format)
		}
	}
	rp := &RenderPass{info: info}
	rp.init(d, info.Label)
	rp.track(track.KindRenderPass, rp.Destroy)
	return rp, nil
}

func cloneRenderPass(info gal.RenderPassCreateInfo) gal.RenderPassCreateInfo {
	info.Attachments = slices.Clone(info.Attachments)
	info.Dependencies = slices.Clone(info.Dependencies)
	info.Subpasses = slices.Clone(info.Subpasses)
	for i := range info.Subpasses {
		sp := &info.Subpasses[i]
		sp.InputAttachments = slices.Clone(sp.InputAttachments)
		sp.ColorAttachments = slices.Clone(sp.ColorAttachments)
		sp.ResolveAttachments = slices.Clone(sp.ResolveAttachments)
		sp.PreserveAttachments = slices.Clone(sp.PreserveAttachments)
		if sp.DepthStencilAttachment != nil {
			ds := *sp.DepthStencilAttachment
			sp.DepthStencilAttachment = &ds
		}
	}
	return info
}

func (rp *RenderPass) Info() *gal.RenderPassCreateInfo { return &rp.info }

// Destroy marks the render pass destroyed.
func (rp *RenderPass) Destroy() { rp.release(nil) }

// FrameBuffer binds views to a render pass.
type FrameBuffer struct {
	object
	info gal.FrameBufferCreateInfo
}

// CreateFrameBuffer checks the views against the render pass. Layered
// frame buffers are not supported.
func (d *Device) CreateFrameBuffer(info gal.FrameBufferCreateInfo) (gal.FrameBuffer, error) {
	if err := d.check("create frame buffer"); err != nil {
		return nil, err
	}
	if err := gal.CheckFrameBuffer(info); err != nil {
		return nil, err
	}
	if info.Layers == 0 {
		info.Layers = 1
	}
	if info.Layers > d.pd.Limits().MaxFrameBufferLayers {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "frame buffer %q: %d layers", info.Label, info.Layers)
	}
	for i, v := range info.Attachments {
		if !d.owns(v) {
			return nil, d.errorf(gal.ErrInvalidArgument, "frame buffer %q: attachment %d belongs to another device", info.Label, i)
		}
	}
	info.Attachments = slices.Clone(info.Attachments)
	fb := &FrameBuffer{info: info}
	fb.init(d, info.Label)
	fb.track(track.KindFrameBuffer, fb.Destroy)
	return fb, nil
}

func (fb *FrameBuffer) RenderPass() gal.RenderPass   { return fb.info.RenderPass }
func (fb *FrameBuffer) Attachments() []gal.ImageView { return fb.info.Attachments }
func (fb *FrameBuffer) Extent() gal.Extent2D         { return fb.info.Extent }
func (fb *FrameBuffer) Layers() uint32               { return fb.info.Layers }

// Destroy marks the frame buffer destroyed.
func (fb *FrameBuffer) Destroy() { fb.release(nil) }

// DescriptorSetLayout is a HAL bind group layout. Bindings are kept sorted
// by binding number, which is also the order of dynamic offsets.
type DescriptorSetLayout struct {
	object
	bindings []gal.DescriptorSetLayoutBinding
	index    map[uint32]int
	dynamic  int
	raw      hal.BindGroupLayout
}

// CreateDescriptorSetLayout translates the bindings into bind group layout
// entries. Combined image samplers, input attachments, texel buffers and
// descriptor arrays have no bind group equivalent.
func (d *Device) CreateDescriptorSetLayout(info gal.DescriptorSetLayoutCreateInfo) (gal.DescriptorSetLayout, error) {
	if err := d.check("create descriptor set layout"); err != nil {
		return nil, err
	}
	if err := gal.ValidateDescriptorSetLayout(info); err != nil {
		return nil, err
	}
	if limit := d.pd.Limits().MaxDescriptorSetBindings; uint32(len(info.Bindings)) > limit {
		return nil, d.errorf(gal.ErrInvalidArgument, "descriptor set layout %q: %d bindings exceed %d", info.Label, len(info.Bindings), limit)
	}
	l := &DescriptorSetLayout{bindings: slices.Clone(info.Bindings), index: make(map[uint32]int, len(info.Bindings))}
	slices.SortFunc(l.bindings, func(a, b gal.DescriptorSetLayoutBinding) int { return cmp.Compare(a.Binding, b.Binding) })
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(l.bindings))
	for i, b := range l.bindings {
		l.index[b.Binding] = i
		if b.Type.IsDynamic() {
			l.dynamic++
		}
		e, err := d.layoutEntry(info.Label, b)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	raw, err := d.raw.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{Label: info.Label, Entries: entries})
	if err != nil {
		return nil, d.halFailed(err, "create descriptor set layout %q", info.Label)
	}
	l.raw = raw
	l.init(d, info.Label)
	l.track(track.KindDescriptorSetLayout, l.Destroy)
	return l, nil
}

func (d *Device) layoutEntry(label string, b gal.DescriptorSetLayoutBinding) (gputypes.BindGroupLayoutEntry, error) {
	if b.Count > 1 {
		return gputypes.BindGroupLayoutEntry{}, d.errorf(gal.ErrUnsupportedCapability, "descriptor set layout %q: binding %d is an array", label, b.Binding)
	}
	if !webgpu.SupportsShaderStage(b.Stages) {
		return gputypes.BindGroupLayoutEntry{}, d.errorf(gal.ErrUnsupportedCapability, "descriptor set layout %q: binding %d stages %s", label, b.Binding, b.Stages)
	}
	e := gputypes.BindGroupLayoutEntry{Binding: b.Binding, Visibility: webgpu.ShaderStage(b.Stages)}
	switch b.Type {
	case gal.DescriptorTypeSampler:
		e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	case gal.DescriptorTypeSampledImage:
		e.Texture = &gputypes.TextureBindingLayout{SampleType: gputypes.TextureSampleTypeFloat, ViewDimension: gputypes.TextureViewDimension2D}
	case gal.DescriptorTypeStorageImage:
		e.StorageTexture = &gputypes.StorageTextureBindingLayout{Access: gputypes.StorageTextureAccessReadWrite, ViewDimension: gputypes.TextureViewDimension2D}
	case gal.DescriptorTypeUniformBuffer, gal.DescriptorTypeUniformBufferDynamic:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, HasDynamicOffset: b.Type.IsDynamic()}
	case gal.DescriptorTypeStorageBuffer, gal.DescriptorTypeStorageBufferDynamic:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage, HasDynamicOffset: b.Type.IsDynamic()}
	default:
		return e, d.errorf(gal.ErrUnsupportedCapability, "descriptor set layout %q: binding %d type %s", label, b.Binding, b.Type)
	}
	return e, nil
}

func (l *DescriptorSetLayout) Bindings() []gal.DescriptorSetLayoutBinding { return l.bindings }

func (l *DescriptorSetLayout) Binding(b uint32) (gal.DescriptorSetLayoutBinding, bool) {
	i, ok := l.index[b]
	if !ok {
		return gal.DescriptorSetLayoutBinding{}, false
	}
	return l.bindings[i], true
}

// Destroy releases the bind group layout.
func (l *DescriptorSetLayout) Destroy() {
	l.release(func() { l.dev.raw.DestroyBindGroupLayout(l.raw) })
}

// descriptor is the single element of a binding.
type descriptor struct {
	written bool
	buffer  gal.DescriptorBufferInfo
	image   gal.DescriptorImageInfo
}

// DescriptorSet is a bind group rebuilt on first use after an update.
type DescriptorSet struct {
	object
	layout *DescriptorSetLayout

	mu    sync.Mutex
	slots map[uint32]*descriptor
	group hal.BindGroup
	dirty bool
}

// CreateDescriptorSet allocates a set for layout.
func (d *Device) CreateDescriptorSet(layout gal.DescriptorSetLayout) (gal.DescriptorSet, error) {
	if err := d.check("create descriptor set"); err != nil {
		return nil, err
	}
	l, ok := layout.(*DescriptorSetLayout)
	if !ok || l.dev != d {
		return nil, d.errorf(gal.ErrInvalidArgument, "descriptor set: layout belongs to another device")
	}
	if l.Destroyed() {
		return nil, d.errorf(gal.ErrInvalidState, "descriptor set: layout %q is destroyed", l.label)
	}
	s := &DescriptorSet{layout: l, slots: make(map[uint32]*descriptor, len(l.bindings)), dirty: true}
	for _, b := range l.bindings {
		s.slots[b.Binding] = &descriptor{}
	}
	s.init(d, l.label)
	s.track(track.KindDescriptorSet, s.Destroy)
	return s, nil
}

func (s *DescriptorSet) Layout() gal.DescriptorSetLayout { return s.layout }

// Update validates every write, then applies them in order.
func (s *DescriptorSet) Update(writes []gal.WriteDescriptorSet) error {
	if err := s.dev.check("update descriptor set"); err != nil {
		return err
	}
	if s.Destroyed() {
		return s.dev.errorf(gal.ErrInvalidState, "update descriptor set %q: destroyed", s.label)
	}
	if err := gal.ValidateDescriptorWrites(s.layout, writes); err != nil {
		return err
	}
	for _, w := range writes {
		for _, b := range w.Buffers {
			if !s.dev.owns(b.Buffer) {
				return s.dev.errorf(gal.ErrInvalidArgument, "update descriptor set %q: binding %d buffer belongs to another device", s.label, w.Binding)
			}
		}
		for _, ii := range w.Images {
			if (ii.View != nil && !s.dev.owns(ii.View)) || (ii.Sampler != nil && !s.dev.owns(ii.Sampler)) {
				return s.dev.errorf(gal.ErrInvalidArgument, "update descriptor set %q: binding %d image belongs to another device", s.label, w.Binding)
			}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		slot := s.slots[w.Binding]
		for _, b := range w.Buffers {
			*slot = descriptor{written: true, buffer: b}
		}
		for _, img := range w.Images {
			*slot = descriptor{written: true, image: img}
		}
	}
	s.dirty = true
	return nil
}

// bindGroup returns the bind group of the current contents. A group
// replaced by a newer one is released once the submissions made so far
// completed.
func (s *DescriptorSet) bindGroup() (hal.BindGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return s.group, nil
	}
	entries := make([]gputypes.BindGroupEntry, 0, len(s.layout.bindings))
	for _, b := range s.layout.bindings {
		slot := s.slots[b.Binding]
		if !slot.written {
			return nil, s.dev.errorf(gal.ErrInvalidState, "descriptor set %q: binding %d was never written", s.label, b.Binding)
		}
		var res gputypes.BindingResource
		switch {
		case b.Type.IsBuffer():
			buf := slot.buffer.Buffer.(*Buffer)
			if buf.Destroyed() {
				return nil, s.dev.errorf(gal.ErrInvalidState, "descriptor set %q: binding %d buffer %q is destroyed", s.label, b.Binding, buf.label)
			}
			size := slot.buffer.Range
			if size == gal.WholeSize {
				size = buf.info.Size - slot.buffer.Offset
			}
			res = gputypes.BufferBinding{Buffer: buf.raw.NativeHandle(), Offset: slot.buffer.Offset, Size: size}
		case b.Type == gal.DescriptorTypeSampler:
			res = gputypes.SamplerBinding{Sampler: slot.image.Sampler.(*Sampler).shared.raw.NativeHandle()}
		default:
			v := slot.image.View.(*ImageView)
			if v.Destroyed() {
				return nil, s.dev.errorf(gal.ErrInvalidState, "descriptor set %q: binding %d view %q is destroyed", s.label, b.Binding, v.label)
			}
			res = gputypes.TextureViewBinding{TextureView: v.raw.NativeHandle()}
		}
		entries = append(entries, gputypes.BindGroupEntry{Binding: b.Binding, Resource: res})
	}
	group, err := s.dev.raw.CreateBindGroup(&hal.BindGroupDescriptor{Label: s.label, Layout: s.layout.raw, Entries: entries})
	if err != nil {
		return nil, s.dev.halFailed(err, "descriptor set %q", s.label)
	}
	if old := s.group; old != nil {
		s.dev.queue.later(func() { s.dev.raw.DestroyBindGroup(old) })
	}
	s.group, s.dirty = group, false
	return group, nil
}

// Destroy releases the current bind group.
func (s *DescriptorSet) Destroy() {
	s.mu.Lock()
	group := s.group
	s.mu.Unlock()
	s.release(func() {
		if group != nil {
			s.dev.raw.DestroyBindGroup(group)
		}
	})
}

// PipelineLayout is a HAL pipeline layout.
type PipelineLayout struct {
	object
	info gal.PipelineLayoutCreateInfo
	raw  hal.PipelineLayout
}

// CreatePipelineLayout validates the layout against the device limits.
// Push constants are never available.
func (d *Device) CreatePipelineLayout(info gal.PipelineLayoutCreateInfo) (gal.PipelineLayout, error) {
	if err := d.check("create pipeline layout"); err != nil {
		return nil, err
	}
	limits := d.pd.Limits()
	if err := gal.ValidatePipelineLayout(info, limits.MaxBoundDescriptorSets); err != nil {
		return nil, err
	}
	if len(info.PushConstants) > 0 {
		return nil, d.errorf(gal.ErrUnsupportedCapability, "pipeline layout %q: push constants", info.Label)
	}
	raws := make([]hal.BindGroupLayout, len(info.SetLayouts))
	for i, sl := range info.SetLayouts {
		l, ok := sl.(*DescriptorSetLayout)
		if !ok || l.dev != d {
			return nil, d.errorf(gal.ErrInvalidArgument, "pipeline layout %q: set layout %d belongs to another device", info.Label, i)
		}
		raws[i] = l.raw
	}
	raw, err := d.raw.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{Label: info.Label, BindGroupLayouts: raws})
	if err != nil {
		return nil, d.halFailed(err, "create pipeline layout %q", info.Label)
	}
	info.SetLayouts = slices.Clone(info.SetLayouts)
	l := &PipelineLayout{info: info, raw: raw}
	l.init(d, info.Label)
	l.track(track.KindPipelineLayout, l.Destroy)
	return l, nil
}

func (l *PipelineLayout) SetLayouts() []gal.DescriptorSetLayout  { return l.info.SetLayouts }
func (l *PipelineLayout) PushConstants() []gal.PushConstantRange { return nil }

// Destroy releases the pipeline layout.
func (l *PipelineLayout) Destroy() {
	l.release(func() { l.dev.raw.DestroyPipelineLayout(l.raw) })
}
