package wgpu

import (
	"fmt"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
)

func TestRenderPassClearAndFinalLayout(t *testing.T) {
	d, s, _ := newSpyDevice(t)
	tg := newTarget(t, d, 8, 8, gal.AttachmentLoadOpClear)

	cb := commandBuffer(t, d, "clear")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.BeginRenderPass(tg.begin(gal.Extent2D{Width: 8, Height: 8}, [4]float32{0.25, 0.5, 0.75, 1})))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.End())
	require.NoError(t, submit(t, d, nil, cb))
	require.NoError(t, d.WaitIdle(t.Context()))

	attach, copySrc := gputypes.TextureUsageRenderAttachment, gputypes.TextureUsageCopySrc
	assert.Equal(t, []string{
		fmt.Sprintf("texture 0->%d", attach),
		"begin render pass",
		fmt.Sprintf("texture %d->%d", attach, copySrc),
	}, s.Calls())
	require.Len(t, s.passes, 1)
	ca := s.passes[0].ColorAttachments[0]
	assert.Equal(t, gputypes.LoadOpClear, ca.LoadOp)
	assert.Equal(t, gputypes.StoreOpStore, ca.StoreOp)
	assert.Equal(t, gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, ca.ClearValue)

	// The second submission starts from the committed usage.
	require.NoError(t, submit(t, d, nil, cb))
	calls := s.Calls()
	assert.Equal(t, fmt.Sprintf("texture %d->%d", copySrc, attach), calls[3])
}

func TestPartialRenderArea(t *testing.T) {
	d, s, _ := newSpyDevice(t)
	clear := newTarget(t, d, 8, 8, gal.AttachmentLoadOpClear)

	cb := commandBuffer(t, d, "partial clear")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.BeginRenderPass(clear.begin(gal.Extent2D{Width: 4, Height: 4}, [4]float32{})))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.End())
	err := submit(t, d, nil, cb)
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)
	assert.Equal(t, gal.CommandBufferExecutable, cb.State(), "a rejected submission releases its buffers")

	dontCare := newTarget(t, d, 8, 8, gal.AttachmentLoadOpDontCare)
	cb = commandBuffer(t, d, "partial dont care")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.BeginRenderPass(dontCare.begin(gal.Extent2D{Width: 4, Height: 4}, [4]float32{})))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.End())
	require.NoError(t, submit(t, d, nil, cb))
	require.Len(t, s.passes, 1)
	assert.Equal(t, gputypes.LoadOpLoad, s.passes[0].ColorAttachments[0].LoadOp, "contents outside the area are kept")
}

func TestFillAndUpdateBuffer(t *testing.T) {
	d, s, _ := newSpyDevice(t)
	buf := hostBuffer(t, d, "dst", 64)

	cb := commandBuffer(t, d, "writes")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.FillBuffer(buf, 0, 16, 0))
	require.NoError(t, cb.FillBuffer(buf, 16, 8, 0x01020304))
	require.NoError(t, cb.UpdateBuffer(buf, 32, []byte{9, 8, 7, 6}))
	require.NoError(t, cb.End())
	require.NoError(t, submit(t, d, nil, cb))

	copyDst := gputypes.BufferUsageCopyDst
	assert.Equal(t, []string{
		fmt.Sprintf("buffer 0->%d", copyDst),
		"clear 0+16",
		"copy 0->16+8",
		"copy 0->32+4",
	}, s.Calls())
	assert.Equal(t, [][]byte{
		{4, 3, 2, 1, 4, 3, 2, 1},
		{9, 8, 7, 6},
	}, s.copied)
}

func TestCopyAlignment(t *testing.T) {
	d, s, _ := newSpyDevice(t)
	src := hostBuffer(t, d, "src", 1024)
	dst := hostBuffer(t, d, "dst", 1024)

	cb := commandBuffer(t, d, "unaligned")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CopyBuffer(src, dst, []gal.BufferCopy{{SrcOffset: 2, DstOffset: 0, Size: 8}}))
	require.NoError(t, cb.End())
	assert.ErrorIs(t, submit(t, d, nil, cb), gal.ErrInvalidArgument)

	tg := newTarget(t, d, 3, 2, gal.AttachmentLoadOpClear)
	region := gal.BufferImageCopy{
		ImageSubresource: gal.ImageSubresourceLayers{Aspect: gal.ImageAspectColor, LayerCount: 1},
		ImageExtent:      gal.Extent3D{Width: 3, Height: 2, Depth: 1},
	}
	cb = commandBuffer(t, d, "tight rows")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CopyBufferToImage(src, tg.img, gal.ImageLayoutTransferDstOptimal, []gal.BufferImageCopy{region}))
	require.NoError(t, cb.End())
	assert.ErrorIs(t, submit(t, d, nil, cb), gal.ErrInvalidArgument, "rows of 12 bytes are not 256 aligned")

	region.BufferRowLength = 64
	cb = commandBuffer(t, d, "padded rows")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CopyBufferToImage(src, tg.img, gal.ImageLayoutTransferDstOptimal, []gal.BufferImageCopy{region}))
	require.NoError(t, cb.End())
	require.NoError(t, submit(t, d, nil, cb))
	assert.Contains(t, s.Calls(), "upload row 256")
}

func TestPendingUntilCompleted(t *testing.T) {
	d, s, q := newSpyDevice(t)
	buf := hostBuffer(t, d, "buf", 16)
	cb := commandBuffer(t, d, "held")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.FillBuffer(buf, 0, 16, 7))
	require.NoError(t, cb.End())
	fence, err := d.CreateFence(false)
	require.NoError(t, err)

	q.hold(true)
	require.NoError(t, submit(t, d, fence, cb))
	assert.Equal(t, gal.CommandBufferPending, cb.State())
	ok, err := fence.Status()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, fence.Wait(t.Context(), 0), gal.ErrTimeout)
	assert.ErrorIs(t, fence.Wait(t.Context(), 10*time.Millisecond), gal.ErrTimeout)
	assert.ErrorIs(t, fence.Reset(), gal.ErrInvalidState)

	destroyed := s.destroyed
	buf.Destroy()
	assert.Equal(t, destroyed, s.destroyed, "a buffer in use is released after the submission")

	q.hold(false)
	require.NoError(t, fence.Wait(t.Context(), time.Second))
	assert.Equal(t, gal.CommandBufferExecutable, cb.State())
	// staging buffer of the fill and the destroyed buffer
	assert.Equal(t, destroyed+2, s.destroyed)
	require.NoError(t, fence.Reset())
}

func TestDeviceLossIsSticky(t *testing.T) {
	d, _, q := newSpyDevice(t)
	cb := commandBuffer(t, d, "cb")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.End())

	q.lose()
	err := submit(t, d, nil, cb)
	assert.ErrorIs(t, err, gal.ErrDeviceLost)
	assert.ErrorIs(t, err, hal.ErrDeviceLost)
	assert.True(t, d.Lost())

	_, err = d.CreateBuffer(gal.BufferCreateInfo{Size: 64, Usage: gal.BufferUsageVertex})
	assert.ErrorIs(t, err, gal.ErrDeviceLost)
	assert.ErrorIs(t, d.WaitIdle(t.Context()), gal.ErrDeviceLost)
}

func TestSemaphoreSignalBeforeWait(t *testing.T) {
	d := newTestDevice(t)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	sem, err := d.CreateSemaphore()
	require.NoError(t, err)
	cb := commandBuffer(t, d, "cb")
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.End())
	stage := []gal.PipelineStageFlags{gal.PipelineStageTopOfPipe}

	err = q.Submit(t.Context(), []gal.SubmitInfo{{WaitSemaphores: []gal.Semaphore{sem}, WaitStages: stage}}, nil)
	assert.ErrorIs(t, err, gal.ErrInvalidState)

	require.NoError(t, q.Submit(t.Context(), []gal.SubmitInfo{
		{CommandBuffers: []gal.CommandBuffer{cb}, SignalSemaphores: []gal.Semaphore{sem}},
		{WaitSemaphores: []gal.Semaphore{sem}, WaitStages: stage, SignalSemaphores: []gal.Semaphore{sem}},
	}, nil))
	err = q.Submit(t.Context(), []gal.SubmitInfo{{SignalSemaphores: []gal.Semaphore{sem}}}, nil)
	assert.ErrorIs(t, err, gal.ErrInvalidState, "the semaphore is still signaled")
	require.NoError(t, q.Submit(t.Context(), []gal.SubmitInfo{{WaitSemaphores: []gal.Semaphore{sem}, WaitStages: stage}}, nil))
}

func TestDescriptorSetBindGroups(t *testing.T) {
	d, s, _ := newSpyDevice(t)
	layout, err := d.CreateDescriptorSetLayout(gal.DescriptorSetLayoutCreateInfo{
		Label: "globals",
		Bindings: []gal.DescriptorSetLayoutBinding{
			{Binding: 1, Type: gal.DescriptorTypeStorageBufferDynamic, Count: 1, Stages: gal.ShaderStageCompute},
			{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Count: 1, Stages: gal.ShaderStageCompute},
		},
	})
	require.NoError(t, err)
	pl, err := d.CreatePipelineLayout(gal.PipelineLayoutCreateInfo{Label: "pl", SetLayouts: []gal.DescriptorSetLayout{layout}})
	require.NoError(t, err)
	set, err := d.CreateDescriptorSet(layout)
	require.NoError(t, err)
	cs, err := d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "cs", Stage: gal.ShaderStageCompute, EntryPoint: "main", SPIRV: spirv()})
	require.NoError(t, err)
	cp, err := d.CreateComputePipeline(gal.ComputePipelineCreateInfo{Label: "reduce", Stage: cs, Layout: pl})
	require.NoError(t, err)

	record := func() gal.CommandBuffer {
		cb := commandBuffer(t, d, "dispatch")
		require.NoError(t, cb.Begin(0))
		require.NoError(t, cb.BindPipeline(cp))
		require.NoError(t, cb.BindDescriptorSets(gal.PipelineBindPointCompute, pl, 0, []gal.DescriptorSet{set}, []uint32{256}))
		require.NoError(t, cb.Dispatch(1, 1, 1))
		require.NoError(t, cb.End())
		return cb
	}
	assert.ErrorIs(t, submit(t, d, nil, record()), gal.ErrInvalidState, "bindings were never written")

	ubo, err := d.CreateBuffer(gal.BufferCreateInfo{Label: "ubo", Size: 256, Usage: gal.BufferUsageUniform})
	require.NoError(t, err)
	ssbo, err := d.CreateBuffer(gal.BufferCreateInfo{Label: "ssbo", Size: 1024, Usage: gal.BufferUsageStorage})
	require.NoError(t, err)
	require.NoError(t, set.Update([]gal.WriteDescriptorSet{
		{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ubo, Range: gal.WholeSize}}},
		{Binding: 1, Type: gal.DescriptorTypeStorageBufferDynamic, Buffers: []gal.DescriptorBufferInfo{{Buffer: ssbo, Range: 256}}},
	}))
	cb := record()
	require.NoError(t, submit(t, d, nil, cb))
	require.NoError(t, submit(t, d, nil, cb))
	assert.Equal(t, 1, s.groups, "an unchanged set reuses its bind group")
	assert.Contains(t, s.Calls(), "begin compute pass")

	require.NoError(t, set.Update([]gal.WriteDescriptorSet{
		{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ubo, Range: 128}}},
	}))
	require.NoError(t, submit(t, d, nil, cb))
	assert.Equal(t, 2, s.groups)
}
