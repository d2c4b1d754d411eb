package gal

// CommandBufferState is the lifecycle state of a command buffer.
type CommandBufferState uint32

// Command buffer states.
const (
	CommandBufferInitial CommandBufferState = iota
	CommandBufferRecording
	CommandBufferExecutable
	CommandBufferPending
	CommandBufferInvalid
)

var commandBufferStateNames = []string{"Initial", "Recording", "Executable", "Pending", "Invalid"}

func (s CommandBufferState) String() string {
	return enumString(commandBufferStateNames, uint32(s), "CommandBufferState")
}

// CommandBufferCreateInfo describes a command buffer.
type CommandBufferCreateInfo struct {
	Label string
	// Family is the queue family the command buffer will be submitted to.
	Family uint32
}

// RenderPassBeginInfo starts a render pass instance.
type RenderPassBeginInfo struct {
	RenderPass  RenderPass
	FrameBuffer FrameBuffer
	RenderArea  Rect2D
	// ClearValues is indexed by attachment. Only attachments with a Clear
	// load op read their entry.
	ClearValues []ClearValue
}

// BufferCopy is one region of a buffer to buffer copy.
type BufferCopy struct {
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// ImageSubresourceLayers selects one mip level and a layer range.
type ImageSubresourceLayers struct {
	Aspect         ImageAspectFlags
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// BufferImageCopy is one region of a buffer to image copy or the reverse.
// A zero RowLength or ImageHeight means tightly packed.
type BufferImageCopy struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

// MemoryBarrier is a global memory dependency.
type MemoryBarrier struct {
	SrcAccess AccessFlags
	DstAccess AccessFlags
}

// BufferMemoryBarrier is a memory dependency on a buffer range.
type BufferMemoryBarrier struct {
	SrcAccess AccessFlags
	DstAccess AccessFlags
	Buffer    Buffer
	Offset    uint64
	Size      uint64
}

// ImageMemoryBarrier is a memory dependency and layout transition on an
// image subresource range.
type ImageMemoryBarrier struct {
	SrcAccess AccessFlags
	DstAccess AccessFlags
	OldLayout ImageLayout
	NewLayout ImageLayout
	Image     Image
	Range     ImageSubresourceRange
}

// PipelineBarrierInfo groups the dependencies recorded by one
// PipelineBarrier call.
type PipelineBarrierInfo struct {
	SrcStages PipelineStageFlags
	DstStages PipelineStageFlags
	Flags     DependencyFlags
	Memory    []MemoryBarrier
	Buffers   []BufferMemoryBarrier
	Images    []ImageMemoryBarrier
}

// CommandBuffer records GPU work for later submission. A command buffer
// must be recorded by one goroutine at a time. It never owns the objects
// it references; destroying one invalidates the command buffer.
//
// Every recording method fails with ErrInvalidState when the buffer is not
// in the Recording state.
type CommandBuffer interface {
	Object
	State() CommandBufferState

	Begin(usage CommandBufferUsageFlags) error
	End() error
	Reset() error

	BeginRenderPass(info RenderPassBeginInfo) error
	NextSubpass() error
	EndRenderPass() error

	BindPipeline(p Pipeline) error
	BindDescriptorSets(bindPoint PipelineBindPoint, layout PipelineLayout, firstSet uint32, sets []DescriptorSet, dynamicOffsets []uint32) error
	BindVertexBuffers(firstBinding uint32, buffers []Buffer, offsets []uint64) error
	BindIndexBuffer(buf Buffer, offset uint64, indexType IndexType) error
	SetViewport(v Viewport) error
	SetScissor(r Rect2D) error
	SetBlendConstants(c [4]float32) error
	SetStencilReference(faces CullModeFlags, ref uint32) error
	PushConstants(layout PipelineLayout, stages ShaderStageFlags, offset uint32, data []byte) error

	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error
	Dispatch(x, y, z uint32) error

	CopyBuffer(src, dst Buffer, regions []BufferCopy) error
	CopyBufferToImage(src Buffer, dst Image, layout ImageLayout, regions []BufferImageCopy) error
	CopyImageToBuffer(src Image, layout ImageLayout, dst Buffer, regions []BufferImageCopy) error
	FillBuffer(dst Buffer, offset, size uint64, value uint32) error
	UpdateBuffer(dst Buffer, offset uint64, data []byte) error
	PipelineBarrier(info PipelineBarrierInfo) error
}
