package record

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gal"
)

// maxUpdateBufferSize is the largest inline UpdateBuffer payload.
const maxUpdateBufferSize = 65536

// Recorder implements the recording half of gal.CommandBuffer. Backends
// embed it and add Destroy.
//
// Recording methods must be called from one goroutine. State, Acquire and
// Release may be called concurrently with each other.
type Recorder struct {
	label  string
	family uint32
	lost   func() bool

	mu        sync.Mutex
	state     gal.CommandBufferState
	usage     gal.CommandBufferUsageFlags
	pending   int
	destroyed bool

	commands []Command
	refs     map[gal.Object]struct{}

	pass        *passState
	graphics    gal.Pipeline
	compute     gal.Pipeline
	indexBound  bool
	viewportSet bool
	scissorSet  bool
}

type passState struct {
	rp      *gal.RenderPassCreateInfo
	fb      gal.FrameBuffer
	subpass uint32
}

// New returns a recorder in the Initial state. lost, if not nil, reports
// device loss; every call fails with ErrDeviceLost once it returns true.
func New(info gal.CommandBufferCreateInfo, lost func() bool) *Recorder {
	return &Recorder{
		label:  info.Label,
		family: info.Family,
		lost:   lost,
		refs:   make(map[gal.Object]struct{}),
	}
}

// Label returns the debug label.
func (r *Recorder) Label() string { return r.label }

// Family returns the queue family the buffer was created for.
func (r *Recorder) Family() uint32 { return r.family }

// Usage returns the flags given to the last Begin.
func (r *Recorder) Usage() gal.CommandBufferUsageFlags { return r.usage }

// Destroyed reports whether MarkDestroyed was called.
func (r *Recorder) Destroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}

// MarkDestroyed drops the recorded commands. It returns false when the
// recorder was already destroyed.
func (r *Recorder) MarkDestroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return false
	}
	r.destroyed = true
	r.state = gal.CommandBufferInvalid
	r.clear()
	return true
}

// State returns the current state. A recorded buffer that references a
// destroyed object reports Invalid.
func (r *Recorder) State() gal.CommandBufferState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == gal.CommandBufferExecutable || r.state == gal.CommandBufferRecording {
		if r.staleLocked() != nil {
			r.state = gal.CommandBufferInvalid
		}
	}
	return r.state
}

// Commands returns the recorded commands. The slice must not be modified.
func (r *Recorder) Commands() []Command { return r.commands }

// Begin starts recording. A buffer that is not pending is implicitly
// reset.
func (r *Recorder) Begin(usage gal.CommandBufferUsageFlags) error {
	if err := r.checkDevice("begin"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case gal.CommandBufferRecording:
		return r.errorf(gal.ErrInvalidState, "begin: already recording")
	case gal.CommandBufferPending:
		return r.errorf(gal.ErrInvalidState, "begin: buffer is pending execution")
	}
	if r.destroyed {
		return r.errorf(gal.ErrInvalidState, "begin: buffer is destroyed")
	}
	if usage&^gal.CommandBufferUsageAll != 0 {
		return r.errorf(gal.ErrInvalidArgument, "begin: invalid usage %s", usage)
	}
	r.clear()
	r.usage = usage
	r.state = gal.CommandBufferRecording
	return nil
}

// End finishes recording.
func (r *Recorder) End() error {
	if err := r.check("end"); err != nil {
		return err
	}
	if r.pass != nil {
		return r.errorf(gal.ErrInvalidState, "end: render pass still active")
	}
	r.mu.Lock()
	r.state = gal.CommandBufferExecutable
	r.mu.Unlock()
	return nil
}

// Reset returns the buffer to the Initial state.
func (r *Recorder) Reset() error {
	if err := r.checkDevice("reset"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == gal.CommandBufferPending {
		return r.errorf(gal.ErrInvalidState, "reset: buffer is pending execution")
	}
	if r.destroyed {
		return r.errorf(gal.ErrInvalidState, "reset: buffer is destroyed")
	}
	r.clear()
	r.state = gal.CommandBufferInitial
	return nil
}

// Acquire moves the buffer to Pending for a submission. A buffer that
// references a destroyed object becomes Invalid.
func (r *Recorder) Acquire() error {
	if err := r.checkDevice("submit"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case gal.CommandBufferExecutable:
	case gal.CommandBufferPending:
		if !r.usage.Has(gal.CommandBufferUsageSimultaneousUse) {
			return r.errorf(gal.ErrInvalidState, "submit: buffer is already pending")
		}
	default:
		return r.errorf(gal.ErrInvalidState, "submit: buffer is %s", r.state)
	}
	if err := r.staleLocked(); err != nil {
		r.state = gal.CommandBufferInvalid
		return err
	}
	r.state = gal.CommandBufferPending
	r.pending++
	return nil
}

// Release marks one submission of the buffer complete.
func (r *Recorder) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == 0 {
		return
	}
	r.pending--
	if r.pending > 0 || r.state != gal.CommandBufferPending {
		return
	}
	if r.usage.Has(gal.CommandBufferUsageOneTimeSubmit) {
		r.state = gal.CommandBufferInvalid
		return
	}
	r.state = gal.CommandBufferExecutable
}

// Pending reports whether a submission is still in flight.
func (r *Recorder) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending > 0
}

// BeginRenderPass starts a render pass instance.
func (r *Recorder) BeginRenderPass(info gal.RenderPassBeginInfo) error {
	if err := r.check("begin render pass"); err != nil {
		return err
	}
	if r.pass != nil {
		return r.errorf(gal.ErrInvalidState, "begin render pass: a render pass is already active")
	}
	if err := r.usable("begin render pass", "render pass", info.RenderPass); err != nil {
		return err
	}
	if err := r.usable("begin render pass", "frame buffer", info.FrameBuffer); err != nil {
		return err
	}
	fb := info.FrameBuffer
	if err := r.usable("begin render pass", "frame buffer render pass", fb.RenderPass()); err != nil {
		return err
	}
	rp := info.RenderPass.Info()
	if !gal.RenderPassesCompatible(rp, fb.RenderPass().Info()) {
		return r.errorf(gal.ErrIncompatibleRenderPass, "begin render pass: frame buffer %q was made for an incompatible render pass", fb.Label())
	}
	for _, v := range fb.Attachments() {
		if err := r.usable("begin render pass", "attachment", v); err != nil {
			return err
		}
	}
	if !info.RenderArea.Within(fb.Extent()) {
		return r.errorf(gal.ErrInvalidArgument, "begin render pass: render area %+v exceeds frame buffer extent %+v", info.RenderArea, fb.Extent())
	}
	for i, a := range rp.Attachments {
		clears := a.LoadOp == gal.AttachmentLoadOpClear || (a.Format.HasStencil() && a.StencilLoadOp == gal.AttachmentLoadOpClear)
		if clears && i >= len(info.ClearValues) {
			return r.errorf(gal.ErrInvalidArgument, "begin render pass: no clear value for attachment %d", i)
		}
	}

	info.ClearValues = slices.Clone(info.ClearValues)
	r.ref(info.RenderPass, fb)
	for _, v := range fb.Attachments() {
		r.ref(v)
	}
	r.pass = &passState{rp: rp, fb: fb}
	r.commands = append(r.commands, BeginRenderPass{Info: info})
	return nil
}

// NextSubpass advances to the next subpass.
func (r *Recorder) NextSubpass() error {
	if err := r.check("next subpass"); err != nil {
		return err
	}
	if r.pass == nil {
		return r.errorf(gal.ErrInvalidState, "next subpass: no active render pass")
	}
	if int(r.pass.subpass)+1 >= len(r.pass.rp.Subpasses) {
		return r.errorf(gal.ErrInvalidState, "next subpass: subpass %d is the last one", r.pass.subpass)
	}
	r.pass.subpass++
	r.commands = append(r.commands, NextSubpass{Subpass: r.pass.subpass})
	return nil
}

// EndRenderPass ends the render pass instance. Every subpass must have
// been visited.
func (r *Recorder) EndRenderPass() error {
	if err := r.check("end render pass"); err != nil {
		return err
	}
	if r.pass == nil {
		return r.errorf(gal.ErrInvalidState, "end render pass: no active render pass")
	}
	if int(r.pass.subpass)+1 != len(r.pass.rp.Subpasses) {
		return r.errorf(gal.ErrInvalidState, "end render pass: %d of %d subpasses recorded", r.pass.subpass+1, len(r.pass.rp.Subpasses))
	}
	r.pass = nil
	r.commands = append(r.commands, EndRenderPass{})
	return nil
}

// BindPipeline binds p to its bind point. Graphics pipelines bound inside
// a render pass must match its render pass and subpass.
func (r *Recorder) BindPipeline(p gal.Pipeline) error {
	if err := r.check("bind pipeline"); err != nil {
		return err
	}
	if err := r.usable("bind pipeline", "pipeline", p); err != nil {
		return err
	}
	switch p.BindPoint() {
	case gal.PipelineBindPointGraphics:
		g := p.Graphics()
		if r.pass != nil {
			if !gal.RenderPassesCompatible(g.RenderPass.Info(), r.pass.rp) {
				return r.errorf(gal.ErrIncompatibleRenderPass, "bind pipeline: %q was built for an incompatible render pass", p.Label())
			}
			if g.Subpass != r.pass.subpass {
				return r.errorf(gal.ErrIncompatibleRenderPass, "bind pipeline: %q targets subpass %d, current is %d", p.Label(), g.Subpass, r.pass.subpass)
			}
		}
		r.graphics = p
		r.viewportSet = r.viewportSet || !g.HasDynamicState(gal.DynamicStateViewport)
		r.scissorSet = r.scissorSet || !g.HasDynamicState(gal.DynamicStateScissor)
	case gal.PipelineBindPointCompute:
		r.compute = p
	default:
		return r.errorf(gal.ErrInvalidArgument, "bind pipeline: bind point %s", p.BindPoint())
	}
	r.ref(p)
	r.commands = append(r.commands, BindPipeline{Pipeline: p})
	return nil
}

// BindDescriptorSets binds sets whose layouts must be the layout's set
// layouts at the same indices.
func (r *Recorder) BindDescriptorSets(bindPoint gal.PipelineBindPoint, layout gal.PipelineLayout, firstSet uint32, sets []gal.DescriptorSet, dynamicOffsets []uint32) error {
	const op = "bind descriptor sets"
	if err := r.check(op); err != nil {
		return err
	}
	if !bindPoint.Valid() {
		return r.errorf(gal.ErrInvalidArgument, "%s: bind point %s", op, bindPoint)
	}
	if err := r.usable(op, "pipeline layout", layout); err != nil {
		return err
	}
	setLayouts := layout.SetLayouts()
	if uint64(firstSet)+uint64(len(sets)) > uint64(len(setLayouts)) {
		return r.errorf(gal.ErrInvalidArgument, "%s: sets %d..%d exceed layout with %d sets", op, firstSet, int(firstSet)+len(sets), len(setLayouts))
	}
	dynamic := 0
	for i, s := range sets {
		if err := r.usable(op, "descriptor set", s); err != nil {
			return err
		}
		if s.Layout() != setLayouts[int(firstSet)+i] {
			return r.errorf(gal.ErrInvalidArgument, "%s: set %q does not use the layout of set %d", op, s.Label(), int(firstSet)+i)
		}
		for _, b := range s.Layout().Bindings() {
			if b.Type.IsDynamic() {
				dynamic += int(max(b.Count, 1))
			}
		}
	}
	if len(dynamicOffsets) != dynamic {
		return r.errorf(gal.ErrInvalidArgument, "%s: %d dynamic offsets for %d dynamic descriptors", op, len(dynamicOffsets), dynamic)
	}
	r.ref(layout)
	for _, s := range sets {
		r.ref(s)
	}
	r.commands = append(r.commands, BindDescriptorSets{
		BindPoint:      bindPoint,
		Layout:         layout,
		FirstSet:       firstSet,
		Sets:           slices.Clone(sets),
		DynamicOffsets: slices.Clone(dynamicOffsets),
	})
	return nil
}

// BindVertexBuffers binds vertex buffers.
func (r *Recorder) BindVertexBuffers(firstBinding uint32, buffers []gal.Buffer, offsets []uint64) error {
	const op = "bind vertex buffers"
	if err := r.check(op); err != nil {
		return err
	}
	if len(buffers) != len(offsets) {
		return r.errorf(gal.ErrInvalidArgument, "%s: %d buffers and %d offsets", op, len(buffers), len(offsets))
	}
	for i, b := range buffers {
		if err := r.usable(op, "vertex buffer", b); err != nil {
			return err
		}
		if !b.Usage().Has(gal.BufferUsageVertex) {
			return r.errorf(gal.ErrInvalidArgument, "%s: buffer %q lacks vertex usage", op, b.Label())
		}
		if offsets[i] >= b.Size() {
			return r.errorf(gal.ErrInvalidArgument, "%s: offset %d beyond buffer %q", op, offsets[i], b.Label())
		}
	}
	for _, b := range buffers {
		r.ref(b)
	}
	r.commands = append(r.commands, BindVertexBuffers{
		FirstBinding: firstBinding,
		Buffers:      slices.Clone(buffers),
		Offsets:      slices.Clone(offsets),
	})
	return nil
}

// BindIndexBuffer binds the index buffer.
func (r *Recorder) BindIndexBuffer(buf gal.Buffer, offset uint64, indexType gal.IndexType) error {
	const op = "bind index buffer"
	if err := r.check(op); err != nil {
		return err
	}
	if err := r.usable(op, "index buffer", buf); err != nil {
		return err
	}
	if !buf.Usage().Has(gal.BufferUsageIndex) {
		return r.errorf(gal.ErrInvalidArgument, "%s: buffer %q lacks index usage", op, buf.Label())
	}
	if !indexType.Valid() {
		return r.errorf(gal.ErrInvalidArgument, "%s: index type %s", op, indexType)
	}
	if offset >= buf.Size() || offset%IndexSize(indexType) != 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: bad offset %d", op, offset)
	}
	r.ref(buf)
	r.indexBound = true
	r.commands = append(r.commands, BindIndexBuffer{Buffer: buf, Offset: offset, Type: indexType})
	return nil
}

// IndexSize returns the size in bytes of one index.
func IndexSize(t gal.IndexType) uint64 {
	if t == gal.IndexTypeUint32 {
		return 4
	}
	return 2
}

// SetViewport sets the viewport.
func (r *Recorder) SetViewport(v gal.Viewport) error {
	if err := r.check("set viewport"); err != nil {
		return err
	}
	if v.Width <= 0 || v.Height == 0 || v.MinDepth < 0 || v.MaxDepth > 1 {
		return r.errorf(gal.ErrInvalidArgument, "set viewport: %+v", v)
	}
	r.viewportSet = true
	r.commands = append(r.commands, SetViewport{Viewport: v})
	return nil
}

// SetScissor sets the scissor rectangle.
func (r *Recorder) SetScissor(rect gal.Rect2D) error {
	if err := r.check("set scissor"); err != nil {
		return err
	}
	if rect.Offset.X < 0 || rect.Offset.Y < 0 {
		return r.errorf(gal.ErrInvalidArgument, "set scissor: negative offset %+v", rect.Offset)
	}
	r.scissorSet = true
	r.commands = append(r.commands, SetScissor{Rect: rect})
	return nil
}

// SetBlendConstants sets the blend constants.
func (r *Recorder) SetBlendConstants(c [4]float32) error {
	if err := r.check("set blend constants"); err != nil {
		return err
	}
	r.commands = append(r.commands, SetBlendConstants{Constants: c})
	return nil
}

// SetStencilReference sets the stencil reference of the given faces.
func (r *Recorder) SetStencilReference(faces gal.CullModeFlags, ref uint32) error {
	if err := r.check("set stencil reference"); err != nil {
		return err
	}
	if faces == 0 || faces&^gal.CullModeFrontAndBack != 0 {
		return r.errorf(gal.ErrInvalidArgument, "set stencil reference: faces %s", faces)
	}
	r.commands = append(r.commands, SetStencilReference{Faces: faces, Reference: ref})
	return nil
}

// PushConstants updates push constants. Every stage in stages must be
// covered by a range of layout that contains the updated bytes.
func (r *Recorder) PushConstants(layout gal.PipelineLayout, stages gal.ShaderStageFlags, offset uint32, data []byte) error {
	const op = "push constants"
	if err := r.check(op); err != nil {
		return err
	}
	if err := r.usable(op, "pipeline layout", layout); err != nil {
		return err
	}
	if stages == 0 || len(data) == 0 || offset%4 != 0 || len(data)%4 != 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: stages %s, offset %d, %d bytes", op, stages, offset, len(data))
	}
	end := uint64(offset) + uint64(len(data))
	for bit := gal.ShaderStageFlags(1); bit <= stages; bit <<= 1 {
		if stages&bit == 0 {
			continue
		}
		covered := false
		for _, pc := range layout.PushConstants() {
			if pc.Stages.Has(bit) && offset >= pc.Offset && end <= uint64(pc.Offset)+uint64(pc.Size) {
				covered = true
				break
			}
		}
		if !covered {
			return r.errorf(gal.ErrInvalidArgument, "%s: bytes %d..%d not declared for stage %s", op, offset, end, bit)
		}
	}
	r.ref(layout)
	r.commands = append(r.commands, PushConstants{Layout: layout, Stages: stages, Offset: offset, Data: slices.Clone(data)})
	return nil
}

// Draw records a non-indexed draw.
func (r *Recorder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if err := r.checkDraw("draw"); err != nil {
		return err
	}
	r.commands = append(r.commands, Draw{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
	return nil
}

// DrawIndexed records an indexed draw.
func (r *Recorder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error {
	if err := r.checkDraw("draw indexed"); err != nil {
		return err
	}
	if !r.indexBound {
		return r.errorf(gal.ErrInvalidState, "draw indexed: no index buffer bound")
	}
	r.commands = append(r.commands, DrawIndexed{
		IndexCount:    indexCount,
		InstanceCount: instanceCount,
		FirstIndex:    firstIndex,
		VertexOffset:  vertexOffset,
		FirstInstance: firstInstance,
	})
	return nil
}

func (r *Recorder) checkDraw(op string) error {
	if err := r.check(op); err != nil {
		return err
	}
	if r.pass == nil {
		return r.errorf(gal.ErrInvalidState, "%s: outside a render pass", op)
	}
	if r.graphics == nil {
		return r.errorf(gal.ErrInvalidState, "%s: no graphics pipeline bound", op)
	}
	if r.graphics.Destroyed() {
		return r.errorf(gal.ErrInvalidState, "%s: pipeline %q is destroyed", op, r.graphics.Label())
	}
	g := r.graphics.Graphics()
	if !gal.RenderPassesCompatible(g.RenderPass.Info(), r.pass.rp) || g.Subpass != r.pass.subpass {
		return r.errorf(gal.ErrIncompatibleRenderPass, "%s: pipeline %q does not match the current subpass", op, r.graphics.Label())
	}
	if !r.viewportSet || !r.scissorSet {
		return r.errorf(gal.ErrInvalidState, "%s: dynamic viewport or scissor not set", op)
	}
	return nil
}

// Dispatch records a compute dispatch.
func (r *Recorder) Dispatch(x, y, z uint32) error {
	if err := r.check("dispatch"); err != nil {
		return err
	}
	if r.pass != nil {
		return r.errorf(gal.ErrInvalidState, "dispatch: inside a render pass")
	}
	if r.compute == nil {
		return r.errorf(gal.ErrInvalidState, "dispatch: no compute pipeline bound")
	}
	r.commands = append(r.commands, Dispatch{X: x, Y: y, Z: z})
	return nil
}

// CopyBuffer records buffer to buffer copies.
func (r *Recorder) CopyBuffer(src, dst gal.Buffer, regions []gal.BufferCopy) error {
	const op = "copy buffer"
	if err := r.checkTransfer(op); err != nil {
		return err
	}
	if err := r.srcBuffer(op, src); err != nil {
		return err
	}
	if err := r.dstBuffer(op, dst); err != nil {
		return err
	}
	if len(regions) == 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: no regions", op)
	}
	for i, c := range regions {
		if c.Size == 0 || !gal.RangeFits(c.SrcOffset, c.Size, src.Size()) || !gal.RangeFits(c.DstOffset, c.Size, dst.Size()) {
			return r.errorf(gal.ErrInvalidArgument, "%s: region %d out of bounds", op, i)
		}
		if src == dst && c.SrcOffset < c.DstOffset+c.Size && c.DstOffset < c.SrcOffset+c.Size {
			return r.errorf(gal.ErrInvalidArgument, "%s: region %d overlaps itself", op, i)
		}
	}
	r.ref(src, dst)
	r.commands = append(r.commands, CopyBuffer{Src: src, Dst: dst, Regions: slices.Clone(regions)})
	return nil
}

// CopyBufferToImage records buffer to image copies.
func (r *Recorder) CopyBufferToImage(src gal.Buffer, dst gal.Image, layout gal.ImageLayout, regions []gal.BufferImageCopy) error {
	const op = "copy buffer to image"
	if err := r.checkTransfer(op); err != nil {
		return err
	}
	if err := r.srcBuffer(op, src); err != nil {
		return err
	}
	if err := r.usable(op, "destination image", dst); err != nil {
		return err
	}
	if !dst.Info().Usage.Has(gal.ImageUsageTransferDst) {
		return r.errorf(gal.ErrInvalidArgument, "%s: image %q lacks transfer dst usage", op, dst.Label())
	}
	if layout != gal.ImageLayoutTransferDstOptimal && layout != gal.ImageLayoutGeneral {
		return r.errorf(gal.ErrInvalidArgument, "%s: image layout %s", op, layout)
	}
	if err := r.checkRegions(op, src, dst, regions); err != nil {
		return err
	}
	r.ref(src, dst)
	r.commands = append(r.commands, CopyBufferToImage{Src: src, Dst: dst, Layout: layout, Regions: slices.Clone(regions)})
	return nil
}

// CopyImageToBuffer records image to buffer copies.
func (r *Recorder) CopyImageToBuffer(src gal.Image, layout gal.ImageLayout, dst gal.Buffer, regions []gal.BufferImageCopy) error {
	const op = "copy image to buffer"
	if err := r.checkTransfer(op); err != nil {
		return err
	}
	if err := r.dstBuffer(op, dst); err != nil {
		return err
	}
	if err := r.usable(op, "source image", src); err != nil {
		return err
	}
	if !src.Info().Usage.Has(gal.ImageUsageTransferSrc) {
		return r.errorf(gal.ErrInvalidArgument, "%s: image %q lacks transfer src usage", op, src.Label())
	}
	if layout != gal.ImageLayoutTransferSrcOptimal && layout != gal.ImageLayoutGeneral {
		return r.errorf(gal.ErrInvalidArgument, "%s: image layout %s", op, layout)
	}
	if err := r.checkRegions(op, dst, src, regions); err != nil {
		return err
	}
	r.ref(src, dst)
	r.commands = append(r.commands, CopyImageToBuffer{Src: src, Layout: layout, Dst: dst, Regions: slices.Clone(regions)})
	return nil
}

func (r *Recorder) checkRegions(op string, buf gal.Buffer, img gal.Image, regions []gal.BufferImageCopy) error {
	if len(regions) == 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: no regions", op)
	}
	info := img.Info()
	for i, c := range regions {
		if err := CheckImageRegion(info, c); err != nil {
			return r.errorf(gal.ErrInvalidArgument, "%s: region %d: %v", op, i, err)
		}
		if !gal.RangeFits(c.BufferOffset, Footprint(info.Format, c), buf.Size()) {
			return r.errorf(gal.ErrInvalidArgument, "%s: region %d exceeds buffer %q", op, i, buf.Label())
		}
	}
	return nil
}

// FillBuffer records a fill of a buffer range with a 32-bit value.
func (r *Recorder) FillBuffer(dst gal.Buffer, offset, size uint64, value uint32) error {
	const op = "fill buffer"
	if err := r.checkTransfer(op); err != nil {
		return err
	}
	if err := r.dstBuffer(op, dst); err != nil {
		return err
	}
	if offset >= dst.Size() || offset%4 != 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: bad offset %d", op, offset)
	}
	if size == gal.WholeSize {
		size = (dst.Size() - offset) &^ 3
	}
	if size == 0 || size%4 != 0 || !gal.RangeFits(offset, size, dst.Size()) {
		return r.errorf(gal.ErrInvalidArgument, "%s: bad size %d", op, size)
	}
	r.ref(dst)
	r.commands = append(r.commands, FillBuffer{Dst: dst, Offset: offset, Size: size, Value: value})
	return nil
}

// UpdateBuffer records an inline write of at most 64 KiB.
func (r *Recorder) UpdateBuffer(dst gal.Buffer, offset uint64, data []byte) error {
	const op = "update buffer"
	if err := r.checkTransfer(op); err != nil {
		return err
	}
	if err := r.dstBuffer(op, dst); err != nil {
		return err
	}
	if len(data) == 0 || len(data) > maxUpdateBufferSize || len(data)%4 != 0 || offset%4 != 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: %d bytes at offset %d", op, len(data), offset)
	}
	if !gal.RangeFits(offset, uint64(len(data)), dst.Size()) {
		return r.errorf(gal.ErrInvalidArgument, "%s: write exceeds buffer %q", op, dst.Label())
	}
	r.ref(dst)
	r.commands = append(r.commands, UpdateBuffer{Dst: dst, Offset: offset, Data: slices.Clone(data)})
	return nil
}

// PipelineBarrier records a dependency. Buffer and image barriers are not
// allowed inside a render pass.
func (r *Recorder) PipelineBarrier(info gal.PipelineBarrierInfo) error {
	const op = "pipeline barrier"
	if err := r.check(op); err != nil {
		return err
	}
	if info.SrcStages == 0 || info.DstStages == 0 {
		return r.errorf(gal.ErrInvalidArgument, "%s: empty stage mask", op)
	}
	if r.pass != nil && (len(info.Buffers) > 0 || len(info.Images) > 0) {
		return r.errorf(gal.ErrInvalidState, "%s: resource barriers inside a render pass", op)
	}
	for _, b := range info.Buffers {
		if err := r.usable(op, "buffer", b.Buffer); err != nil {
			return err
		}
	}
	for _, im := range info.Images {
		if err := r.usable(op, "image", im.Image); err != nil {
			return err
		}
		if !im.NewLayout.Valid() || im.NewLayout == gal.ImageLayoutUndefined || im.NewLayout == gal.ImageLayoutPreinitialized {
			return r.errorf(gal.ErrInvalidArgument, "%s: cannot transition to %s", op, im.NewLayout)
		}
	}
	for _, b := range info.Buffers {
		r.ref(b.Buffer)
	}
	for _, im := range info.Images {
		r.ref(im.Image)
	}
	info.Memory = slices.Clone(info.Memory)
	info.Buffers = slices.Clone(info.Buffers)
	info.Images = slices.Clone(info.Images)
	r.commands = append(r.commands, PipelineBarrier{Info: info})
	return nil
}

func (r *Recorder) checkTransfer(op string) error {
	if err := r.check(op); err != nil {
		return err
	}
	if r.pass != nil {
		return r.errorf(gal.ErrInvalidState, "%s: inside a render pass", op)
	}
	return nil
}

func (r *Recorder) srcBuffer(op string, b gal.Buffer) error {
	if err := r.usable(op, "source buffer", b); err != nil {
		return err
	}
	if !b.Usage().Has(gal.BufferUsageTransferSrc) {
		return r.errorf(gal.ErrInvalidArgument, "%s: buffer %q lacks transfer src usage", op, b.Label())
	}
	return nil
}

func (r *Recorder) dstBuffer(op string, b gal.Buffer) error {
	if err := r.usable(op, "destination buffer", b); err != nil {
		return err
	}
	if !b.Usage().Has(gal.BufferUsageTransferDst) {
		return r.errorf(gal.ErrInvalidArgument, "%s: buffer %q lacks transfer dst usage", op, b.Label())
	}
	return nil
}

func (r *Recorder) checkDevice(op string) error {
	if r.lost != nil && r.lost() {
		return fmt.Errorf("gal: command buffer %q: %s: %w", r.label, op, gal.ErrDeviceLost)
	}
	return nil
}

// check verifies the device and the Recording state.
func (r *Recorder) check(op string) error {
	if err := r.checkDevice(op); err != nil {
		return err
	}
	r.mu.Lock()
	state := r.state
	r.mu.Unlock()
	if state != gal.CommandBufferRecording {
		return r.errorf(gal.ErrInvalidState, "%s: buffer is %s, not recording", op, state)
	}
	return nil
}

// usable reports nil objects as invalid arguments and destroyed ones as
// invalid state.
func (r *Recorder) usable(op, what string, o gal.Object) error {
	if isNil(o) {
		return r.errorf(gal.ErrInvalidArgument, "%s: %s is nil", op, what)
	}
	if o.Destroyed() {
		return r.errorf(gal.ErrInvalidState, "%s: %s %q is destroyed", op, what, o.Label())
	}
	return nil
}

func (r *Recorder) ref(objs ...gal.Object) {
	for _, o := range objs {
		if !isNil(o) {
			r.refs[o] = struct{}{}
		}
	}
}

// staleLocked returns an error if a referenced object was destroyed.
func (r *Recorder) staleLocked() error {
	for o := range r.refs {
		if o.Destroyed() {
			return r.errorf(gal.ErrInvalidState, "references destroyed object %q", o.Label())
		}
	}
	return nil
}

func (r *Recorder) clear() {
	r.commands = nil
	clear(r.refs)
	r.pass = nil
	r.graphics = nil
	r.compute = nil
	r.indexBound = false
	r.viewportSet = false
	r.scissorSet = false
}

func (r *Recorder) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("gal: command buffer %q: %s: %w", r.label, fmt.Sprintf(format, args...), sentinel)
}
