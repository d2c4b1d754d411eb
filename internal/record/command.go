// Package record implements the command buffer state machine shared by
// every backend.
//
// A Recorder validates each recording call against the current state and
// stores it as a typed command. Backends replay Commands at submission
// time: the null backend executes them on the host, the wgpu backend
// translates them into HAL encoder calls.
//
// State machine:
//
//	Initial    -> Begin   -> Recording
//	Recording  -> End     -> Executable
//	Executable -> Acquire -> Pending -> Release -> Executable
//	Pending    -> Release -> Invalid (one-time submit)
//	any        -> referenced object destroyed -> Invalid
//	not Pending -> Reset  -> Initial
package record

import "github.com/gogpu/gal"

// Op identifies the type of a command.
type Op uint8

const (
	OpBeginRenderPass Op = iota
	OpNextSubpass
	OpEndRenderPass
	OpBindPipeline
	OpBindDescriptorSets
	OpBindVertexBuffers
	OpBindIndexBuffer
	OpSetViewport
	OpSetScissor
	OpSetBlendConstants
	OpSetStencilReference
	OpPushConstants
	OpDraw
	OpDrawIndexed
	OpDispatch
	OpCopyBuffer
	OpCopyBufferToImage
	OpCopyImageToBuffer
	OpFillBuffer
	OpUpdateBuffer
	OpPipelineBarrier
	opCount
)

var opNames = [...]string{
	OpBeginRenderPass:     "BeginRenderPass",
	OpNextSubpass:         "NextSubpass",
	OpEndRenderPass:       "EndRenderPass",
	OpBindPipeline:        "BindPipeline",
	OpBindDescriptorSets:  "BindDescriptorSets",
	OpBindVertexBuffers:   "BindVertexBuffers",
	OpBindIndexBuffer:     "BindIndexBuffer",
	OpSetViewport:         "SetViewport",
	OpSetScissor:          "SetScissor",
	OpSetBlendConstants:   "SetBlendConstants",
	OpSetStencilReference: "SetStencilReference",
	OpPushConstants:       "PushConstants",
	OpDraw:                "Draw",
	OpDrawIndexed:         "DrawIndexed",
	OpDispatch:            "Dispatch",
	OpCopyBuffer:          "CopyBuffer",
	OpCopyBufferToImage:   "CopyBufferToImage",
	OpCopyImageToBuffer:   "CopyImageToBuffer",
	OpFillBuffer:          "FillBuffer",
	OpUpdateBuffer:        "UpdateBuffer",
	OpPipelineBarrier:     "PipelineBarrier",
}

func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}
	return "Unknown"
}

// Command is one recorded call. Slices held by commands are private
// copies of the caller's arguments.
type Command interface {
	Op() Op
}

// BeginRenderPass starts a render pass instance.
type BeginRenderPass struct {
	Info gal.RenderPassBeginInfo
}

// NextSubpass advances to Subpass.
type NextSubpass struct {
	Subpass uint32
}

// EndRenderPass ends the current render pass instance.
type EndRenderPass struct{}

// BindPipeline binds a graphics or compute pipeline.
type BindPipeline struct {
	Pipeline gal.Pipeline
}

// BindDescriptorSets binds sets starting at FirstSet.
type BindDescriptorSets struct {
	BindPoint      gal.PipelineBindPoint
	Layout         gal.PipelineLayout
	FirstSet       uint32
	Sets           []gal.DescriptorSet
	DynamicOffsets []uint32
}

// BindVertexBuffers binds vertex buffers starting at FirstBinding.
type BindVertexBuffers struct {
	FirstBinding uint32
	Buffers      []gal.Buffer
	Offsets      []uint64
}

// BindIndexBuffer binds the index buffer.
type BindIndexBuffer struct {
	Buffer gal.Buffer
	Offset uint64
	Type   gal.IndexType
}

// SetViewport sets the dynamic viewport.
type SetViewport struct {
	Viewport gal.Viewport
}

// SetScissor sets the dynamic scissor rectangle.
type SetScissor struct {
	Rect gal.Rect2D
}

// SetBlendConstants sets the dynamic blend constants.
type SetBlendConstants struct {
	Constants [4]float32
}

// SetStencilReference sets the dynamic stencil reference of some faces.
type SetStencilReference struct {
	Faces     gal.CullModeFlags
	Reference uint32
}

// PushConstants updates push constant bytes.
type PushConstants struct {
	Layout gal.PipelineLayout
	Stages gal.ShaderStageFlags
	Offset uint32
	Data   []byte
}

// Draw draws non-indexed primitives.
type Draw struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// DrawIndexed draws indexed primitives.
type DrawIndexed struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

// Dispatch runs compute work groups.
type Dispatch struct {
	X, Y, Z uint32
}

// CopyBuffer copies regions between buffers.
type CopyBuffer struct {
	Src, Dst gal.Buffer
	Regions  []gal.BufferCopy
}

// CopyBufferToImage copies buffer data into an image.
type CopyBufferToImage struct {
	Src     gal.Buffer
	Dst     gal.Image
	Layout  gal.ImageLayout
	Regions []gal.BufferImageCopy
}

// CopyImageToBuffer copies image texels into a buffer.
type CopyImageToBuffer struct {
	Src     gal.Image
	Layout  gal.ImageLayout
	Dst     gal.Buffer
	Regions []gal.BufferImageCopy
}

// FillBuffer fills a range with a repeated 32-bit value. Size is resolved
// and never WholeSize.
type FillBuffer struct {
	Dst    gal.Buffer
	Offset uint64
	Size   uint64
	Value  uint32
}

// UpdateBuffer writes inline data into a buffer.
type UpdateBuffer struct {
	Dst    gal.Buffer
	Offset uint64
	Data   []byte
}

// PipelineBarrier records an execution and memory dependency.
type PipelineBarrier struct {
	Info gal.PipelineBarrierInfo
}

func (BeginRenderPass) Op() Op     { return OpBeginRenderPass }
func (NextSubpass) Op() Op         { return OpNextSubpass }
func (EndRenderPass) Op() Op       { return OpEndRenderPass }
func (BindPipeline) Op() Op        { return OpBindPipeline }
func (BindDescriptorSets) Op() Op  { return OpBindDescriptorSets }
func (BindVertexBuffers) Op() Op   { return OpBindVertexBuffers }
func (BindIndexBuffer) Op() Op     { return OpBindIndexBuffer }
func (SetViewport) Op() Op         { return OpSetViewport }
func (SetScissor) Op() Op          { return OpSetScissor }
func (SetBlendConstants) Op() Op   { return OpSetBlendConstants }
func (SetStencilReference) Op() Op { return OpSetStencilReference }
func (PushConstants) Op() Op       { return OpPushConstants }
func (Draw) Op() Op                { return OpDraw }
func (DrawIndexed) Op() Op         { return OpDrawIndexed }
func (Dispatch) Op() Op            { return OpDispatch }
func (CopyBuffer) Op() Op          { return OpCopyBuffer }
func (CopyBufferToImage) Op() Op   { return OpCopyBufferToImage }
func (CopyImageToBuffer) Op() Op   { return OpCopyImageToBuffer }
func (FillBuffer) Op() Op          { return OpFillBuffer }
func (UpdateBuffer) Op() Op        { return OpUpdateBuffer }
func (PipelineBarrier) Op() Op     { return OpPipelineBarrier }
