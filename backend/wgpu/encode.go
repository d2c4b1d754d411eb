package wgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/webgpu"
	"github.com/gogpu/gal/internal/record"
)

// encoder translates recorded commands into HAL encoder calls for one
// submission. Texture and buffer usages carry over from one command
// buffer of the submission to the next; bound state does not.
type encoder struct {
	d        *Device
	textures map[*Image]gputypes.TextureUsage
	buffers  map[*Buffer]gputypes.BufferUsage
	staging  []hal.Buffer

	raw     hal.CommandEncoder
	render  hal.RenderPassEncoder
	views   []*ImageView
	pass    gal.RenderPassBeginInfo
	compute hal.ComputePassEncoder

	graphics    *Pipeline
	dispatch    *Pipeline
	sets        map[gal.PipelineBindPoint]map[uint32]boundSet
	vertex      map[uint32]vertexBuffer
	vertexDirty bool
	index       *indexBuffer
	viewport    *gal.Viewport
	scissor     *gal.Rect2D
	blend       *[4]float32
	stencilRef  *uint32
}

type boundSet struct {
	group   hal.BindGroup
	offsets []uint32
}

type vertexBuffer struct {
	buf    *Buffer
	offset uint64
}

type indexBuffer struct {
	buf    *Buffer
	offset uint64
	format gputypes.IndexFormat
}

func newEncoder(d *Device) *encoder {
	return &encoder{
		d:        d,
		textures: make(map[*Image]gputypes.TextureUsage),
		buffers:  make(map[*Buffer]gputypes.BufferUsage),
	}
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), gal.ErrUnsupportedCapability)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), gal.ErrInvalidArgument)
}

// encode records cmds into a new HAL encoder and finishes it.
func (e *encoder) encode(label string, cmds []record.Command) (hal.CommandEncoder, hal.CommandBuffer, error) {
	raw, err := e.d.raw.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, nil, e.d.halFailed(err, "command buffer %q", label)
	}
	if err := raw.BeginEncoding(label); err != nil {
		raw.Destroy()
		return nil, nil, e.d.halFailed(err, "command buffer %q: begin", label)
	}
	e.reset(raw)
	for _, cmd := range cmds {
		if err := e.command(cmd); err != nil {
			e.endPasses()
			raw.DiscardEncoding()
			raw.Destroy()
			return nil, nil, fmt.Errorf("gal: command buffer %q: %s: %w", label, cmd.Op(), err)
		}
	}
	e.endPasses()
	cb, err := raw.EndEncoding()
	if err != nil {
		raw.Destroy()
		return nil, nil, e.d.halFailed(err, "command buffer %q: end", label)
	}
	return raw, cb, nil
}

func (e *encoder) reset(raw hal.CommandEncoder) {
	e.raw = raw
	e.render, e.compute, e.views = nil, nil, nil
	e.graphics, e.dispatch = nil, nil
	e.sets = map[gal.PipelineBindPoint]map[uint32]boundSet{
		gal.PipelineBindPointGraphics: {},
		gal.PipelineBindPointCompute:  {},
	}
	e.vertex = make(map[uint32]vertexBuffer)
	e.vertexDirty = false
	e.index, e.viewport, e.scissor, e.blend, e.stencilRef = nil, nil, nil, nil, nil
}

// commit publishes the usages reached by the submission. The caller holds
// the queue lock.
func (e *encoder) commit() {
	for img, u := range e.textures {
		img.usage = u
	}
	for b, u := range e.buffers {
		b.state = u
	}
}

func (e *encoder) command(cmd record.Command) error {
	switch c := cmd.(type) {
	case record.BeginRenderPass:
		e.endCompute()
		return e.beginRenderPass(c.Info)
	case record.NextSubpass:
		return unsupported("subpass %d", c.Subpass)
	case record.EndRenderPass:
		e.endRenderPass()
	case record.BindPipeline:
		return e.bindPipeline(c.Pipeline)
	case record.BindDescriptorSets:
		return e.bindSets(c)
	case record.BindVertexBuffers:
		for i, b := range c.Buffers {
			buf, err := e.buffer(b)
			if err != nil {
				return err
			}
			e.vertex[c.FirstBinding+uint32(i)] = vertexBuffer{buf: buf, offset: c.Offsets[i]}
		}
		e.vertexDirty = true
	case record.BindIndexBuffer:
		buf, err := e.buffer(c.Buffer)
		if err != nil {
			return err
		}
		e.index = &indexBuffer{buf: buf, offset: c.Offset, format: webgpu.IndexType(c.Type)}
		e.applyIndex()
	case record.SetViewport:
		v := c.Viewport
		if v.Height < 0 {
			return unsupported("negative viewport height")
		}
		e.viewport = &v
		e.applyViewport()
	case record.SetScissor:
		r := c.Rect
		e.scissor = &r
		e.applyScissor()
	case record.SetBlendConstants:
		b := c.Constants
		e.blend = &b
		e.applyBlend()
	case record.SetStencilReference:
		ref := c.Reference
		e.stencilRef = &ref
		e.applyStencil()
	case record.PushConstants:
		return unsupported("push constants")
	case record.Draw:
		e.flushVertex()
		e.render.Draw(c.VertexCount, c.InstanceCount, c.FirstVertex, c.FirstInstance)
	case record.DrawIndexed:
		e.flushVertex()
		e.render.DrawIndexed(c.IndexCount, c.InstanceCount, c.FirstIndex, c.VertexOffset, c.FirstInstance)
	case record.Dispatch:
		e.beginCompute()
		e.compute.Dispatch(c.X, c.Y, c.Z)
	case record.CopyBuffer:
		return e.copyBuffer(c)
	case record.CopyBufferToImage:
		return e.copyBufferToImage(c)
	case record.CopyImageToBuffer:
		return e.copyImageToBuffer(c)
	case record.FillBuffer:
		return e.fillBuffer(c)
	case record.UpdateBuffer:
		return e.updateBuffer(c)
	case record.PipelineBarrier:
		return e.barrier(c.Info)
	default:
		return unsupported("command %s", cmd.Op())
	}
	return nil
}

func (e *encoder) buffer(b gal.Buffer) (*Buffer, error) {
	buf, ok := b.(*Buffer)
	if !ok || buf.dev != e.d {
		return nil, invalid("buffer %q belongs to another device", b.Label())
	}
	return buf, nil
}

func (e *encoder) image(i gal.Image) (*Image, error) {
	img, ok := i.(*Image)
	if !ok || img.dev != e.d {
		return nil, invalid("image %q belongs to another device", i.Label())
	}
	return img, nil
}

// Passes.

func (e *encoder) endPasses() {
	e.endCompute()
	if e.render != nil {
		e.render.End()
		e.render = nil
	}
}

func (e *encoder) beginCompute() {
	if e.compute != nil {
		return
	}
	e.compute = e.raw.BeginComputePass(&hal.ComputePassDescriptor{})
	if e.dispatch != nil {
		e.compute.SetPipeline(e.dispatch.compute)
	}
	for i, s := range e.sets[gal.PipelineBindPointCompute] {
		e.compute.SetBindGroup(i, s.group, s.offsets)
	}
}

func (e *encoder) endCompute() {
	if e.compute != nil {
		e.compute.End()
		e.compute = nil
	}
}

// covers reports whether area is the whole of an attachment.
func covers(area gal.Rect2D, e gal.Extent3D) bool {
	return area.Offset.X == 0 && area.Offset.Y == 0 &&
		area.Extent.Width >= e.Width && area.Extent.Height >= e.Height
}

func (e *encoder) beginRenderPass(info gal.RenderPassBeginInfo) error {
	rp := info.RenderPass.Info()
	sp := rp.Subpasses[0]
	atts := info.FrameBuffer.Attachments()
	views := make([]*ImageView, len(atts))
	for i, a := range atts {
		v, ok := a.(*ImageView)
		if !ok || v.dev != e.d {
			return invalid("attachment %d belongs to another device", i)
		}
		views[i] = v
	}
	clearValue := func(i uint32) gal.ClearValue {
		if int(i) < len(info.ClearValues) {
			return info.ClearValues[i]
		}
		return gal.ClearValue{}
	}
	// A WebGPU clear always covers the whole view.
	loadOp := func(op gal.AttachmentLoadOp, v *ImageView) (gputypes.LoadOp, error) {
		if covers(info.RenderArea, v.Extent()) {
			return webgpu.LoadOp(op), nil
		}
		switch op {
		case gal.AttachmentLoadOpClear:
			return 0, unsupported("clear of render area %v smaller than attachment %q", info.RenderArea, v.label)
		case gal.AttachmentLoadOpDontCare:
			return gputypes.LoadOpLoad, nil
		}
		return webgpu.LoadOp(op), nil
	}

	desc := &hal.RenderPassDescriptor{Label: info.RenderPass.Label()}
	for k, ref := range sp.ColorAttachments {
		a, v := rp.Attachments[ref.Attachment], views[ref.Attachment]
		load, err := loadOp(a.LoadOp, v)
		if err != nil {
			return err
		}
		c := clearValue(ref.Attachment).Color
		ca := hal.RenderPassColorAttachment{
			View:       v.raw,
			LoadOp:     load,
			StoreOp:    webgpu.StoreOp(a.StoreOp),
			ClearValue: gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])},
		}
		if k < len(sp.ResolveAttachments) {
			if r := sp.ResolveAttachments[k].Attachment; r != gal.AttachmentUnused {
				ca.ResolveTarget = views[r].raw
			}
		}
		desc.ColorAttachments = append(desc.ColorAttachments, ca)
	}
	if ref := sp.DepthStencilAttachment; ref != nil && ref.Attachment != gal.AttachmentUnused {
		a, v := rp.Attachments[ref.Attachment], views[ref.Attachment]
		cv := clearValue(ref.Attachment)
		ds := &hal.RenderPassDepthStencilAttachment{View: v.raw, DepthClearValue: cv.Depth, StencilClearValue: cv.Stencil}
		var err error
		if a.Format.HasDepth() {
			if ds.DepthLoadOp, err = loadOp(a.LoadOp, v); err != nil {
				return err
			}
			ds.DepthStoreOp = webgpu.StoreOp(a.StoreOp)
		}
		if a.Format.HasStencil() {
			if ds.StencilLoadOp, err = loadOp(a.StencilLoadOp, v); err != nil {
				return err
			}
			ds.StencilStoreOp = webgpu.StoreOp(a.StencilStoreOp)
		}
		desc.DepthStencilAttachment = ds
	}

	for _, v := range views {
		e.useTexture(v.image(), gputypes.TextureUsageRenderAttachment)
	}
	e.render = e.raw.BeginRenderPass(desc)
	e.views, e.pass = views, info

	if e.graphics != nil {
		if err := e.applyPipeline(); err != nil {
			return err
		}
	}
	for i, s := range e.sets[gal.PipelineBindPointGraphics] {
		e.render.SetBindGroup(i, s.group, s.offsets)
	}
	e.vertexDirty = true
	e.applyIndex()
	e.applyViewport()
	e.applyScissor()
	e.applyBlend()
	e.applyStencil()
	return nil
}

// endRenderPass ends the pass and moves every attachment to the usage of
// its final layout.
func (e *encoder) endRenderPass() {
	e.render.End()
	e.render = nil
	rp := e.pass.RenderPass.Info()
	for i, v := range e.views {
		if i >= len(rp.Attachments) {
			break
		}
		if u := layoutUsage(rp.Attachments[i].FinalLayout); u != 0 {
			e.useTexture(v.image(), u)
		}
	}
	e.views = nil
}

// Bound state.

func (e *encoder) bindPipeline(p gal.Pipeline) error {
	pl, ok := p.(*Pipeline)
	if !ok || pl.dev != e.d {
		return invalid("pipeline %q belongs to another device", p.Label())
	}
	if pl.bindPoint == gal.PipelineBindPointCompute {
		e.dispatch = pl
		if e.compute != nil {
			e.compute.SetPipeline(pl.compute)
		}
		return nil
	}
	e.graphics = pl
	e.vertexDirty = true
	if e.render == nil {
		return nil
	}
	return e.applyPipeline()
}

// applyPipeline sets the bound graphics pipeline and the state it does not
// leave dynamic.
func (e *encoder) applyPipeline() error {
	g := e.graphics.graphics
	e.render.SetPipeline(e.graphics.render)
	if !g.HasDynamicState(gal.DynamicStateViewport) && len(g.Viewports) > 0 {
		v := g.Viewports[0]
		if v.Height < 0 {
			return unsupported("negative viewport height")
		}
		e.viewport = &v
		e.applyViewport()
	}
	if !g.HasDynamicState(gal.DynamicStateScissor) && len(g.Scissors) > 0 {
		r := g.Scissors[0]
		e.scissor = &r
		e.applyScissor()
	}
	if !g.HasDynamicState(gal.DynamicStateBlendConstants) {
		b := g.ColorBlend.BlendConstants
		e.blend = &b
		e.applyBlend()
	}
	if ds := g.DepthStencil; ds != nil && ds.StencilTest && !g.HasDynamicState(gal.DynamicStateStencilReference) {
		ref := ds.Front.Reference
		e.stencilRef = &ref
		e.applyStencil()
	}
	return nil
}

func (e *encoder) bindSets(c record.BindDescriptorSets) error {
	offsets := c.DynamicOffsets
	for i, s := range c.Sets {
		set, ok := s.(*DescriptorSet)
		if !ok || set.dev != e.d {
			return invalid("descriptor set %q belongs to another device", s.Label())
		}
		group, err := set.bindGroup()
		if err != nil {
			return err
		}
		n := min(set.layout.dynamic, len(offsets))
		bs := boundSet{group: group, offsets: offsets[:n:n]}
		offsets = offsets[n:]
		index := c.FirstSet + uint32(i)
		e.sets[c.BindPoint][index] = bs
		switch {
		case c.BindPoint == gal.PipelineBindPointGraphics && e.render != nil:
			e.render.SetBindGroup(index, bs.group, bs.offsets)
		case c.BindPoint == gal.PipelineBindPointCompute && e.compute != nil:
			e.compute.SetBindGroup(index, bs.group, bs.offsets)
		}
	}
	return nil
}

// flushVertex binds the vertex buffers to the dense slots of the current
// pipeline.
func (e *encoder) flushVertex() {
	if !e.vertexDirty || e.graphics == nil {
		return
	}
	for binding, vb := range e.vertex {
		if slot, ok := e.graphics.slots[binding]; ok {
			e.render.SetVertexBuffer(slot, vb.buf.raw, vb.offset)
		}
	}
	e.vertexDirty = false
}

func (e *encoder) applyIndex() {
	if e.render != nil && e.index != nil {
		e.render.SetIndexBuffer(e.index.buf.raw, e.index.format, e.index.offset)
	}
}

func (e *encoder) applyViewport() {
	if v := e.viewport; e.render != nil && v != nil {
		e.render.SetViewport(v.X, v.Y, v.Width, v.Height, v.MinDepth, v.MaxDepth)
	}
}

// applyScissor clamps the scissor to the positive quadrant.
func (e *encoder) applyScissor() {
	r := e.scissor
	if e.render == nil || r == nil {
		return
	}
	x, y := int64(r.Offset.X), int64(r.Offset.Y)
	w, h := int64(r.Extent.Width), int64(r.Extent.Height)
	if x < 0 {
		w, x = max(w+x, 0), 0
	}
	if y < 0 {
		h, y = max(h+y, 0), 0
	}
	e.render.SetScissorRect(uint32(x), uint32(y), uint32(w), uint32(h))
}

func (e *encoder) applyBlend() {
	if b := e.blend; e.render != nil && b != nil {
		e.render.SetBlendConstant(&gputypes.Color{R: float64(b[0]), G: float64(b[1]), B: float64(b[2]), A: float64(b[3])})
	}
}

// applyStencil sets the reference of both faces; WebGPU has one.
func (e *encoder) applyStencil() {
	if e.render != nil && e.stencilRef != nil {
		e.render.SetStencilReference(*e.stencilRef)
	}
}

// Usage tracking.

func (e *encoder) useTexture(img *Image, usage gputypes.TextureUsage) {
	cur, ok := e.textures[img]
	if !ok {
		cur = img.usage
	}
	if cur == usage {
		return
	}
	e.raw.TransitionTextures([]hal.TextureBarrier{{
		Texture: img.raw,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
		Usage:   hal.TextureUsageTransition{OldUsage: cur, NewUsage: usage},
	}})
	e.textures[img] = usage
}

func (e *encoder) useBuffer(b *Buffer, usage gputypes.BufferUsage) {
	cur, ok := e.buffers[b]
	if !ok {
		cur = b.state
	}
	if cur == usage {
		return
	}
	e.raw.TransitionBuffers([]hal.BufferBarrier{{
		Buffer: b.raw,
		Usage:  hal.BufferUsageTransition{OldUsage: cur, NewUsage: usage},
	}})
	e.buffers[b] = usage
}

// layoutUsage returns the texture usage an image layout stands for.
func layoutUsage(l gal.ImageLayout) gputypes.TextureUsage {
	switch l {
	case gal.ImageLayoutGeneral:
		return gputypes.TextureUsageStorageBinding
	case gal.ImageLayoutColorAttachmentOptimal, gal.ImageLayoutDepthStencilAttachmentOptimal, gal.ImageLayoutPresentSrc:
		return gputypes.TextureUsageRenderAttachment
	case gal.ImageLayoutShaderReadOnlyOptimal, gal.ImageLayoutDepthStencilReadOnlyOptimal:
		return gputypes.TextureUsageTextureBinding
	case gal.ImageLayoutTransferSrcOptimal:
		return gputypes.TextureUsageCopySrc
	case gal.ImageLayoutTransferDstOptimal:
		return gputypes.TextureUsageCopyDst
	}
	return 0
}

// accessUsage returns the buffer usage matching the destination access of
// a barrier. Generic memory access keeps every usage of the buffer.
func accessUsage(a gal.AccessFlags, all gputypes.BufferUsage) gputypes.BufferUsage {
	var u gputypes.BufferUsage
	if a&gal.AccessIndirectCommandRead != 0 {
		u |= gputypes.BufferUsageIndirect
	}
	if a&gal.AccessIndexRead != 0 {
		u |= gputypes.BufferUsageIndex
	}
	if a&gal.AccessVertexAttributeRead != 0 {
		u |= gputypes.BufferUsageVertex
	}
	if a&gal.AccessUniformRead != 0 {
		u |= gputypes.BufferUsageUniform
	}
	if a&(gal.AccessShaderRead|gal.AccessShaderWrite) != 0 {
		u |= gputypes.BufferUsageStorage
	}
	if a&gal.AccessTransferRead != 0 {
		u |= gputypes.BufferUsageCopySrc
	}
	if a&gal.AccessTransferWrite != 0 {
		u |= gputypes.BufferUsageCopyDst
	}
	if a&(gal.AccessHostRead|gal.AccessHostWrite) != 0 {
		u |= gputypes.BufferUsageMapRead | gputypes.BufferUsageMapWrite
	}
	if a&(gal.AccessMemoryRead|gal.AccessMemoryWrite) != 0 {
		u |= all
	}
	return u & all
}

func (e *encoder) barrier(info gal.PipelineBarrierInfo) error {
	e.endCompute()
	for _, b := range info.Buffers {
		buf, err := e.buffer(b.Buffer)
		if err != nil {
			return err
		}
		if u := accessUsage(b.DstAccess, buf.usage); u != 0 {
			e.useBuffer(buf, u)
		}
	}
	for _, ib := range info.Images {
		img, err := e.image(ib.Image)
		if err != nil {
			return err
		}
		old, ok := e.textures[img]
		if !ok {
			old = img.usage
		}
		if ib.OldLayout == gal.ImageLayoutUndefined || ib.OldLayout == gal.ImageLayoutPreinitialized {
			old = 0
		}
		r := ib.Range
		e.raw.TransitionTextures([]hal.TextureBarrier{{
			Texture: img.raw,
			Range: hal.TextureRange{
				Aspect:          webgpu.ImageAspect(r.Aspect),
				BaseMipLevel:    r.BaseMipLevel,
				MipLevelCount:   r.LevelCount,
				BaseArrayLayer:  r.BaseArrayLayer,
				ArrayLayerCount: r.LayerCount,
			},
			Usage: hal.TextureUsageTransition{OldUsage: old, NewUsage: layoutUsage(ib.NewLayout)},
		}})
		e.textures[img] = layoutUsage(ib.NewLayout)
	}
	return nil
}

// Transfers.

func (e *encoder) checkOffset(what string, v uint64) error {
	if a := e.d.pd.copyOffset(); v%a != 0 {
		return invalid("%s %d is not a multiple of %d", what, v, a)
	}
	return nil
}

func (e *encoder) copyBuffer(c record.CopyBuffer) error {
	e.endCompute()
	src, err := e.buffer(c.Src)
	if err != nil {
		return err
	}
	dst, err := e.buffer(c.Dst)
	if err != nil {
		return err
	}
	regions := make([]hal.BufferCopy, len(c.Regions))
	for i, r := range c.Regions {
		for _, v := range []struct {
			what string
			v    uint64
		}{{"source offset", r.SrcOffset}, {"destination offset", r.DstOffset}, {"size", r.Size}} {
			if err := e.checkOffset(v.what, v.v); err != nil {
				return err
			}
		}
		regions[i] = hal.BufferCopy{SrcOffset: r.SrcOffset, DstOffset: r.DstOffset, Size: r.Size}
	}
	e.useBuffer(src, gputypes.BufferUsageCopySrc)
	e.useBuffer(dst, gputypes.BufferUsageCopyDst)
	e.raw.CopyBufferToBuffer(src.raw, dst.raw, regions)
	return nil
}

// textureCopies translates buffer-image regions. Array layers other than
// the first cannot be addressed by the HAL copy.
func (e *encoder) textureCopies(img *Image, regions []gal.BufferImageCopy) ([]hal.BufferTextureCopy, error) {
	format := img.info.Format
	pitch := e.d.pd.copyPitch()
	out := make([]hal.BufferTextureCopy, len(regions))
	for i, r := range regions {
		s := r.ImageSubresource
		if img.info.Type != gal.ImageType3D && (s.BaseArrayLayer > 0 || s.LayerCount > 1) {
			return nil, unsupported("copy of array layers %d+%d", s.BaseArrayLayer, s.LayerCount)
		}
		l := record.RegionLayout(format, r)
		if (l.Rows > 1 || l.Slices > 1) && l.RowPitch%pitch != 0 {
			return nil, invalid("region %d: row pitch %d is not a multiple of %d", i, l.RowPitch, pitch)
		}
		if l.TexelSize > 0 && r.BufferOffset%l.TexelSize != 0 {
			return nil, invalid("region %d: buffer offset %d is not a multiple of the texel size %d", i, r.BufferOffset, l.TexelSize)
		}
		var rowsPerImage uint32
		if l.RowPitch > 0 {
			rowsPerImage = uint32(l.SlicePitch / l.RowPitch)
		}
		out[i] = hal.BufferTextureCopy{
			BufferLayout: hal.ImageDataLayout{
				Offset:       r.BufferOffset,
				BytesPerRow:  uint32(l.RowPitch),
				RowsPerImage: rowsPerImage,
			},
			TextureBase: hal.ImageCopyTexture{
				Texture:  img.raw,
				MipLevel: s.MipLevel,
				Origin:   hal.Origin3D{X: uint32(r.ImageOffset.X), Y: uint32(r.ImageOffset.Y), Z: uint32(r.ImageOffset.Z)},
				Aspect:   webgpu.ImageAspect(s.Aspect),
			},
			Size: hal.Extent3D{Width: r.ImageExtent.Width, Height: r.ImageExtent.Height, DepthOrArrayLayers: max(r.ImageExtent.Depth, 1)},
		}
	}
	return out, nil
}

func (e *encoder) copyBufferToImage(c record.CopyBufferToImage) error {
	e.endCompute()
	src, err := e.buffer(c.Src)
	if err != nil {
		return err
	}
	dst, err := e.image(c.Dst)
	if err != nil {
		return err
	}
	regions, err := e.textureCopies(dst, c.Regions)
	if err != nil {
		return err
	}
	e.useBuffer(src, gputypes.BufferUsageCopySrc)
	e.useTexture(dst, gputypes.TextureUsageCopyDst)
	e.raw.CopyBufferToTexture(src.raw, dst.raw, regions)
	return nil
}

func (e *encoder) copyImageToBuffer(c record.CopyImageToBuffer) error {
	e.endCompute()
	src, err := e.image(c.Src)
	if err != nil {
		return err
	}
	dst, err := e.buffer(c.Dst)
	if err != nil {
		return err
	}
	regions, err := e.textureCopies(src, c.Regions)
	if err != nil {
		return err
	}
	e.useTexture(src, gputypes.TextureUsageCopySrc)
	e.useBuffer(dst, gputypes.BufferUsageCopyDst)
	e.raw.CopyTextureToBuffer(src.raw, dst.raw, regions)
	return nil
}

// fillBuffer clears zero fills in place and copies other patterns from a
// staging buffer.
func (e *encoder) fillBuffer(c record.FillBuffer) error {
	e.endCompute()
	dst, err := e.buffer(c.Dst)
	if err != nil {
		return err
	}
	if c.Value == 0 {
		e.useBuffer(dst, gputypes.BufferUsageCopyDst)
		e.raw.ClearBuffer(dst.raw, c.Offset, c.Size)
		return nil
	}
	data := make([]byte, c.Size)
	for off := 0; off+4 <= len(data); off += 4 {
		binary.LittleEndian.PutUint32(data[off:], c.Value)
	}
	return e.upload(dst, c.Offset, data)
}

func (e *encoder) updateBuffer(c record.UpdateBuffer) error {
	e.endCompute()
	dst, err := e.buffer(c.Dst)
	if err != nil {
		return err
	}
	return e.upload(dst, c.Offset, c.Data)
}

// upload copies data into dst through a staging buffer released with the
// submission.
func (e *encoder) upload(dst *Buffer, offset uint64, data []byte) error {
	size := uint64(len(data))
	if err := e.checkOffset("offset", offset); err != nil {
		return err
	}
	if err := e.checkOffset("size", size); err != nil {
		return err
	}
	staging, err := e.d.raw.CreateBuffer(&hal.BufferDescriptor{
		Label: dst.label + " staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return e.d.halFailed(err, "staging for %q", dst.label)
	}
	e.staging = append(e.staging, staging)
	m, err := e.d.raw.MapBuffer(staging, 0, size)
	if err != nil {
		return e.d.halFailed(err, "map staging for %q", dst.label)
	}
	copy(unsafe.Slice((*byte)(m.Ptr), size), data)
	if err := e.d.raw.UnmapBuffer(staging); err != nil {
		return e.d.halFailed(err, "unmap staging for %q", dst.label)
	}
	e.useBuffer(dst, gputypes.BufferUsageCopyDst)
	e.raw.CopyBufferToBuffer(staging, dst.raw, []hal.BufferCopy{{DstOffset: offset, Size: size}})
	return nil
}
