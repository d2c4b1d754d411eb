// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/alloc"
	"github.com/gogpu/gal/internal/track"
)

// memoryAlign is the alignment of every heap allocation.
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

// track registers the object; destroy is called if the device is destroyed
// first.
func (o *object) track(kind track.Kind, destroy func()) {
	o.id = o.dev.tracker.Add(kind, o.label, destroy)
	o.dev.log.Debug("gal: object created", slog.String("kind", kind.String()), slog.String("label", o.label))
}

// release marks the object destroyed. It returns false if it already was.
func (o *object) release() bool {
	if !o.destroyed.CompareAndSwap(false, true) {
		return false
	}
	o.dev.tracker.Remove(o.id)
	return true
}

// Buffer is host memory accounted in one of the device heaps.
type Buffer struct {
	object
	info    gal.BufferCreateInfo
	memType uint32
	mem     alloc.Allocation

	mu     sync.Mutex
	data   []byte
	mapped bool
}

// CreateBuffer allocates a buffer from the heap matching info.Memory.
func (d *Device) CreateBuffer(info gal.BufferCreateInfo) (gal.Buffer, error) {
	if err := d.check("create buffer"); err != nil {
		return nil, err
	}
	if err := gal.ValidateBufferCreateInfo(info, d.pd.Limits()); err != nil {
		return nil, err
	}
	memType, mem, err := d.allocate(info.Label, info.Memory, info.Size)
	if err != nil {
		return nil, err
	}
	b := &Buffer{info: info, memType: memType, mem: mem, data: make([]byte, info.Size)}
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
	return b.pd().MemoryProperties().Types[b.memType].Properties
}

func (b *Buffer) pd() *PhysicalDevice { return b.dev.pd }

// Map returns the host bytes of a range. A size of WholeSize maps to the
// end of the buffer.
func (b *Buffer) Map(offset, size uint64) ([]byte, error) {
	if err := b.dev.check("map buffer"); err != nil {
		return nil, err
	}
	if b.Destroyed() {
		return nil, b.dev.errorf(gal.ErrInvalidState, "map buffer %q: destroyed", b.label)
	}
	if !b.Memory().Has(gal.MemoryPropertyHostVisible) {
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
	b.mapped = true
	return b.data[offset : offset+size : offset+size], nil
}

// Unmap ends a mapping.
func (b *Buffer) Unmap() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mapped {
		return b.dev.errorf(gal.ErrInvalidState, "unmap buffer %q: not mapped", b.label)
	}
	b.mapped = false
	return nil
}

// Destroy returns the memory to its heap.
func (b *Buffer) Destroy() {
	if !b.release() {
		return
	}
	b.dev.heaps[b.memType].Free(b.mem)
	b.mu.Lock()
	b.data = nil
	b.mu.Unlock()
}

// bytes runs fn with the buffer contents locked. It returns false if the
// buffer was destroyed.
func (b *Buffer) bytes(fn func(data []byte)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return false
	}
	fn(b.data)
	return true
}

// Image stores each aspect of its format in a separate plane.
type Image struct {
	object
	info    gal.ImageCreateInfo
	memType uint32
	mem     alloc.Allocation

	mu     sync.Mutex
	planes []*plane
}

// CreateImage validates info against the format table and allocates the
// planes.
func (d *Device) CreateImage(info gal.ImageCreateInfo) (gal.Image, error) {
	if err := d.check("create image"); err != nil {
		return nil, err
	}
	if info.Samples == 0 {
		info.Samples = gal.SampleCount1
	}
	if err := gal.CheckImageSupport(d.pd, info); err != nil {
		return nil, err
	}
	planes := newPlanes(info)
	var size uint64
	for _, p := range planes {
		size += uint64(len(p.data))
	}
	memType, mem, err := d.allocate(info.Label, info.Memory, size)
	if err != nil {
		return nil, err
	}
	img := &Image{info: info, memType: memType, mem: mem, planes: planes}
	img.init(d, info.Label)
	img.track(track.KindImage, img.Destroy)
	return img, nil
}

// Info returns the create-info.
func (img *Image) Info() gal.ImageCreateInfo { return img.info }

// Destroy returns the memory to its heap.
func (img *Image) Destroy() {
	if !img.release() {
		return
	}
	img.dev.heaps[img.memType].Free(img.mem)
	img.mu.Lock()
	img.planes = nil
	img.mu.Unlock()
}

// plane returns the plane of one aspect.
func (img *Image) plane(aspect gal.ImageAspectFlags) *plane {
	for _, p := range img.planes {
		if p.aspect == aspect {
			return p
		}
	}
	return nil
}

// ImageView is a resolved view create-info.
type ImageView struct {
	object
	info gal.ImageViewCreateInfo
}

// CreateImageView resolves the view defaults and checks them against the
// image.
func (d *Device) CreateImageView(info gal.ImageViewCreateInfo) (gal.ImageView, error) {
	if err := d.check("create image view"); err != nil {
		return nil, err
	}
	if info.Image != nil && !d.owns(info.Image) {
		return nil, d.errorf(gal.ErrInvalidArgument, "image view %q: image belongs to another device", info.Label)
	}
	info, err := gal.ResolveImageView(info)
	if err != nil {
		return nil, err
	}
	v := &ImageView{info: info}
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

// Destroy marks the view destroyed.
func (v *ImageView) Destroy() { v.release() }

// Sampler holds a validated sampler create-info.
type Sampler struct {
	object
	info gal.SamplerCreateInfo
}

// CreateSampler validates info.
func (d *Device) CreateSampler(info gal.SamplerCreateInfo) (gal.Sampler, error) {
	if err := d.check("create sampler"); err != nil {
		return nil, err
	}
	if err := gal.ValidateSampler(info); err != nil {
		return nil, err
	}
	s := &Sampler{info: info}
	s.init(d, info.Label)
	s.track(track.KindSampler, s.Destroy)
	return s, nil
}

func (s *Sampler) Info() gal.SamplerCreateInfo { return s.info }

// Destroy marks the sampler destroyed.
func (s *Sampler) Destroy() { s.release() }

// ShaderModule keeps the compiled SPIR-V words.
type ShaderModule struct {
	object
	info  gal.ShaderModuleCreateInfo
	words []uint32
}

// CreateShaderModule compiles WGSL or checks SPIR-V. With validation off
// the shader interface is dropped and pipelines skip interface matching.
func (d *Device) CreateShaderModule(info gal.ShaderModuleCreateInfo) (gal.ShaderModule, error) {
	if err := d.check("create shader module"); err != nil {
		return nil, err
	}
	words, err := gal.CompileShader(info)
	if err != nil {
		return nil, err
	}
	if !d.pd.r.cfg.Validation {
		info.Interface = gal.ShaderInterface{}
	}
	m := &ShaderModule{info: info, words: words}
	m.init(d, info.Label)
	m.track(track.KindShaderModule, m.Destroy)
	return m, nil
}

func (m *ShaderModule) Stage() gal.ShaderStageFlags    { return m.info.Stage }
func (m *ShaderModule) EntryPoint() string             { return m.info.EntryPoint }
func (m *ShaderModule) Interface() gal.ShaderInterface { return m.info.Interface }

// SPIRV returns the module code.
func (m *ShaderModule) SPIRV() []uint32 { return m.words }

// Destroy marks the module destroyed.
func (m *ShaderModule) Destroy() { m.release() }

// RenderPass owns a deep copy of its create-info.
type RenderPass struct {
	object
	info gal.RenderPassCreateInfo
}

// CreateRenderPass validates the attachments, subpasses and dependencies.
func (d *Device) CreateRenderPass(info gal.RenderPassCreateInfo) (gal.RenderPass, error) {
	if err := d.check("create render pass"); err != nil {
		return nil, err
	}
	info = cloneRenderPass(info)
	if err := gal.ValidateRenderPass(&info); err != nil {
		return nil, err
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
func (rp *RenderPass) Destroy() { rp.release() }

// FrameBuffer binds views to a render pass.
type FrameBuffer struct {
	object
	info gal.FrameBufferCreateInfo
}

// CreateFrameBuffer checks the views against the render pass.
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
func (fb *FrameBuffer) Destroy() { fb.release() }

// DescriptorSetLayout indexes its bindings by number.
type DescriptorSetLayout struct {
	object
	bindings []gal.DescriptorSetLayoutBinding
	index    map[uint32]int
}

// CreateDescriptorSetLayout validates the bindings.
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
	for i, b := range l.bindings {
		l.index[b.Binding] = i
	}
	l.init(d, info.Label)
	l.track(track.KindDescriptorSetLayout, l.Destroy)
	return l, nil
}

func (l *DescriptorSetLayout) Bindings() []gal.DescriptorSetLayoutBinding { return l.bindings }

func (l *DescriptorSetLayout) Binding(b uint32) (gal.DescriptorSetLayoutBinding, bool) {
	i, ok := l.index[b]
	if !ok {
		return gal.DescriptorSetLayoutBinding{}, false
	}
	return l.bindings[i], true
}

// Destroy marks the layout destroyed.
func (l *DescriptorSetLayout) Destroy() { l.release() }

// descriptor is one array element of a binding.
type descriptor struct {
	buffer gal.DescriptorBufferInfo
	image  gal.DescriptorImageInfo
}

// DescriptorSet stores the written descriptors per binding.
type DescriptorSet struct {
	object
	layout *DescriptorSetLayout

	mu    sync.Mutex
	slots map[uint32][]descriptor
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
	s := &DescriptorSet{layout: l, slots: make(map[uint32][]descriptor, len(l.bindings))}
	for _, b := range l.bindings {
		s.slots[b.Binding] = make([]descriptor, max(b.Count, 1))
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
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		slot := s.slots[w.Binding]
		for i, b := range w.Buffers {
			slot[int(w.ArrayElement)+i] = descriptor{buffer: b}
		}
		for i, img := range w.Images {
			slot[int(w.ArrayElement)+i] = descriptor{image: img}
		}
	}
	return nil
}

// BufferInfo returns the buffer descriptor written at binding and element.
func (s *DescriptorSet) BufferInfo(binding, element uint32) (gal.DescriptorBufferInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.slots[binding]
	if int(element) >= len(slot) || slot[element].buffer.Buffer == nil {
		return gal.DescriptorBufferInfo{}, false
	}
	return slot[element].buffer, true
}

// ImageInfo returns the image descriptor written at binding and element.
func (s *DescriptorSet) ImageInfo(binding, element uint32) (gal.DescriptorImageInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.slots[binding]
	if int(element) >= len(slot) {
		return gal.DescriptorImageInfo{}, false
	}
	ii := slot[element].image
	return ii, ii.View != nil || ii.Sampler != nil
}

// Destroy marks the set destroyed.
func (s *DescriptorSet) Destroy() {
	if s.release() {
		s.mu.Lock()
		clear(s.slots)
		s.mu.Unlock()
	}
}

// PipelineLayout lists set layouts and push constant ranges.
type PipelineLayout struct {
	object
	info gal.PipelineLayoutCreateInfo
}

// CreatePipelineLayout validates the layout against the device limits.
func (d *Device) CreatePipelineLayout(info gal.PipelineLayoutCreateInfo) (gal.PipelineLayout, error) {
	if err := d.check("create pipeline layout"); err != nil {
		return nil, err
	}
	limits := d.pd.Limits()
	if err := gal.ValidatePipelineLayout(info, limits.MaxBoundDescriptorSets); err != nil {
		return nil, err
	}
	for i, r := range info.PushConstants {
		if !gal.RangeFits(uint64(r.Offset), uint64(r.Size), uint64(limits.MaxPushConstantsSize)) {
			return nil, d.errorf(gal.ErrInvalidArgument, "pipeline layout %q: push constant range %d exceeds %d bytes", info.Label, i, limits.MaxPushConstantsSize)
		}
	}
	info.SetLayouts = slices.Clone(info.SetLayouts)
	info.PushConstants = slices.Clone(info.PushConstants)
	l := &PipelineLayout{info: info}
	l.init(d, info.Label)
	l.track(track.KindPipelineLayout, l.Destroy)
	return l, nil
}

func (l *PipelineLayout) SetLayouts() []gal.DescriptorSetLayout  { return l.info.SetLayouts }
func (l *PipelineLayout) PushConstants() []gal.PushConstantRange { return l.info.PushConstants }

// Destroy marks the layout destroyed.
func (l *PipelineLayout) Destroy() { l.release() }

// Pipeline is a validated graphics or compute pipeline.
type Pipeline struct {
	object
	bindPoint gal.PipelineBindPoint
	layout    gal.PipelineLayout
	graphics  *gal.GraphicsPipelineCreateInfo
	compute   *gal.ComputePipelineCreateInfo
}

// CreateGraphicsPipeline validates the fixed-function state and the shader
// interfaces.
func (d *Device) CreateGraphicsPipeline(info gal.GraphicsPipelineCreateInfo) (gal.Pipeline, error) {
	if err := d.check("create graphics pipeline"); err != nil {
		return nil, err
	}
	info.Stages = slices.Clone(info.Stages)
	info.Viewports = slices.Clone(info.Viewports)
	info.Scissors = slices.Clone(info.Scissors)
	info.DynamicStates = slices.Clone(info.DynamicStates)
	info.VertexInput.Bindings = slices.Clone(info.VertexInput.Bindings)
	info.VertexInput.Attributes = slices.Clone(info.VertexInput.Attributes)
	info.ColorBlend.Attachments = slices.Clone(info.ColorBlend.Attachments)
	if info.DepthStencil != nil {
		ds := *info.DepthStencil
		info.DepthStencil = &ds
	}
	if err := gal.ValidateGraphicsPipeline(&info); err != nil {
		return nil, err
	}
	p := &Pipeline{bindPoint: gal.PipelineBindPointGraphics, layout: info.Layout, graphics: &info}
	p.init(d, info.Label)
	p.track(track.KindPipeline, p.Destroy)
	return p, nil
}

// CreateComputePipeline validates the compute stage.
func (d *Device) CreateComputePipeline(info gal.ComputePipelineCreateInfo) (gal.Pipeline, error) {
	if err := d.check("create compute pipeline"); err != nil {
		return nil, err
	}
	if err := gal.ValidateComputePipeline(info); err != nil {
		return nil, err
	}
	p := &Pipeline{bindPoint: gal.PipelineBindPointCompute, layout: info.Layout, compute: &info}
	p.init(d, info.Label)
	p.track(track.KindPipeline, p.Destroy)
	return p, nil
}

func (p *Pipeline) BindPoint() gal.PipelineBindPoint          { return p.bindPoint }
func (p *Pipeline) Layout() gal.PipelineLayout                { return p.layout }
func (p *Pipeline) Graphics() *gal.GraphicsPipelineCreateInfo { return p.graphics }

// Destroy marks the pipeline destroyed.
func (p *Pipeline) Destroy() { p.release() }
