// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
)

func TestUploadClearReadback(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, nil)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)

	staging := hostBuffer(t, d, "staging", 256)
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	write(t, staging, data)

	local, err := d.CreateBuffer(gal.BufferCreateInfo{
		Label:  "local",
		Size:   256,
		Usage:  gal.BufferUsageTransferSrc | gal.BufferUsageTransferDst | gal.BufferUsageStorage,
		Memory: gal.MemoryPropertyDeviceLocal,
	})
	require.NoError(t, err)
	out := hostBuffer(t, d, "out", 256)
	readback := hostBuffer(t, d, "readback", 4*4*4)
	tg := newTarget(t, d, 4, 4)

	cb := commandBuffer(t, d, "frame", FamilyUniversal)
	require.NoError(t, cb.Begin(gal.CommandBufferUsageOneTimeSubmit))
	require.NoError(t, cb.CopyBuffer(staging, local, []gal.BufferCopy{{Size: 256}}))
	require.NoError(t, cb.FillBuffer(local, 0, 8, 0x01020304))
	require.NoError(t, cb.UpdateBuffer(local, 248, []byte{9, 9, 9, 9, 9, 9, 9, 9}))
	require.NoError(t, cb.CopyBuffer(local, out, []gal.BufferCopy{{Size: 256}}))
	require.NoError(t, cb.BeginRenderPass(tg.begin([4]float32{1, 0, 0.5, 1})))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.CopyImageToBuffer(tg.img, gal.ImageLayoutTransferSrcOptimal, readback, []gal.BufferImageCopy{tg.region()}))
	require.NoError(t, cb.End())

	fence, err := d.CreateFence(false)
	require.NoError(t, err)
	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, fence))
	require.NoError(t, fence.Wait(ctx, time.Second))

	got := read(t, out)
	assert.Equal(t, []byte{4, 3, 2, 1, 4, 3, 2, 1}, got[:8])
	assert.Equal(t, data[8:248], got[8:248])
	assert.Equal(t, []byte{9, 9, 9, 9, 9, 9, 9, 9}, got[248:])

	pixels := read(t, readback)
	for i := 0; i < len(pixels); i += 4 {
		require.Equal(t, []byte{255, 0, 128, 255}, pixels[i:i+4], "texel %d", i/4)
	}

	assert.Equal(t, gal.CommandBufferInvalid, cb.State())
	ev, ok := d.ExecutionLog().Find(EventExecute, "frame")
	require.True(t, ok)
	fev, ok := d.ExecutionLog().Find(EventFence, fence.Label())
	require.True(t, ok)
	assert.Less(t, ev.Seq, fev.Seq)
	assert.Equal(t, "0.0", ev.Queue)
}

func TestImageUploadRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, nil)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	tg := newTarget(t, d, 4, 2)

	src := hostBuffer(t, d, "src", 4*2*4)
	texels := make([]byte, 4*2*4)
	for i := range texels {
		texels[i] = byte(3 * i)
	}
	write(t, src, texels)
	dst := hostBuffer(t, d, "dst", 4*2*4)

	cb := commandBuffer(t, d, "roundtrip", FamilyUniversal)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.CopyBufferToImage(src, tg.img, gal.ImageLayoutTransferDstOptimal, []gal.BufferImageCopy{tg.region()}))
	require.NoError(t, cb.CopyImageToBuffer(tg.img, gal.ImageLayoutTransferSrcOptimal, dst, []gal.BufferImageCopy{tg.region()}))
	require.NoError(t, cb.End())
	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil))
	require.NoError(t, q.WaitIdle(ctx))

	assert.Equal(t, texels, read(t, dst))
	assert.Equal(t, gal.CommandBufferExecutable, cb.State())
}

func TestSemaphoreOrdersQueues(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, []gal.QueueCreateInfo{{Family: FamilyUniversal, Count: 2}})
	q0, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	q1, err := d.Queue(FamilyUniversal, 1)
	require.NoError(t, err)

	buf := hostBuffer(t, d, "shared", 4)
	sem, err := d.CreateSemaphore()
	require.NoError(t, err)

	first := commandBuffer(t, d, "first", FamilyUniversal)
	require.NoError(t, first.Begin(0))
	require.NoError(t, first.UpdateBuffer(buf, 0, []byte{1, 2, 3, 4}))
	require.NoError(t, first.End())

	second := commandBuffer(t, d, "second", FamilyUniversal)
	require.NoError(t, second.Begin(0))
	require.NoError(t, second.FillBuffer(buf, 0, gal.WholeSize, 0x07070707))
	require.NoError(t, second.End())

	fence, err := d.CreateFence(false)
	require.NoError(t, err)
	// the waiting batch goes in first so that only the semaphore orders them
	require.NoError(t, q1.Submit(ctx, []gal.SubmitInfo{{
		WaitSemaphores: []gal.Semaphore{sem},
		WaitStages:     []gal.PipelineStageFlags{gal.PipelineStageTransfer},
		CommandBuffers: []gal.CommandBuffer{second},
	}}, fence))
	ok, err := fence.Status()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, q0.Submit(ctx, []gal.SubmitInfo{{
		CommandBuffers:   []gal.CommandBuffer{first},
		SignalSemaphores: []gal.Semaphore{sem},
	}}, nil))
	require.NoError(t, fence.Wait(ctx, time.Second))

	assert.Equal(t, []byte{7, 7, 7, 7}, read(t, buf))
	log := d.ExecutionLog()
	a, ok := log.Find(EventExecute, "first")
	require.True(t, ok)
	signal, ok := log.Find(EventSignal, sem.Label())
	require.True(t, ok)
	wait, ok := log.Find(EventWait, sem.Label())
	require.True(t, ok)
	b, ok := log.Find(EventExecute, "second")
	require.True(t, ok)
	assert.Less(t, a.Seq, signal.Seq)
	assert.Less(t, signal.Seq, wait.Seq)
	assert.Less(t, wait.Seq, b.Seq)
	assert.Equal(t, "0.1", b.Queue)
}

func TestPendingCommandBuffer(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, nil)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	buf := hostBuffer(t, d, "buf", 16)

	cb := commandBuffer(t, d, "held", FamilyUniversal)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.FillBuffer(buf, 0, 16, 0xffffffff))
	require.NoError(t, cb.End())

	fence, err := d.CreateFence(false)
	require.NoError(t, err)
	release := q.(*Queue).Hold()
	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, fence))

	assert.Equal(t, gal.CommandBufferPending, cb.State())
	err = q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil)
	assert.ErrorIs(t, err, gal.ErrInvalidState)
	assert.ErrorIs(t, cb.Reset(), gal.ErrInvalidState)
	assert.ErrorIs(t, fence.Reset(), gal.ErrInvalidState)
	assert.ErrorIs(t, fence.Wait(ctx, 20*time.Millisecond), gal.ErrTimeout)

	other, err := d.CreateFence(false)
	require.NoError(t, err)
	cb2 := commandBuffer(t, d, "next", FamilyUniversal)
	require.NoError(t, cb2.Begin(0))
	require.NoError(t, cb2.End())
	err = q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb2}}}, fence)
	assert.ErrorIs(t, err, gal.ErrInvalidState, "a fence can guard one submission at a time")
	assert.Equal(t, gal.CommandBufferExecutable, cb2.State(), "a rejected submission releases its buffers")

	release()
	require.NoError(t, fence.Wait(ctx, time.Second))
	assert.Equal(t, gal.CommandBufferExecutable, cb.State())
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, read(t, buf)[:4])

	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb, cb2}}}, other))
	require.NoError(t, other.Wait(ctx, time.Second))
}

func TestQueueCapabilities(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, []gal.QueueCreateInfo{
		{Family: FamilyUniversal, Count: 1},
		{Family: FamilyTransfer, Count: 1},
	})
	tq, err := d.Queue(FamilyTransfer, 0)
	require.NoError(t, err)
	tg := newTarget(t, d, 2, 2)

	cb := commandBuffer(t, d, "clear", FamilyTransfer)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.BeginRenderPass(tg.begin([4]float32{})))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.End())
	err = tq.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	assert.Equal(t, gal.CommandBufferExecutable, cb.State())

	gq, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	err = gq.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument, "command buffers run on the family they were created for")
}

func TestForeignObjectsRejected(t *testing.T) {
	ctx := context.Background()
	d1 := newTestDevice(t, nil)
	d2 := newTestDevice(t, nil)
	foreign := hostBuffer(t, d2, "foreign", 16)

	cb := commandBuffer(t, d1, "cb", FamilyUniversal)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.FillBuffer(foreign, 0, 16, 1))
	require.NoError(t, cb.End())

	q, err := d1.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	err = q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)

	fence, err := d2.CreateFence(false)
	require.NoError(t, err)
	err = q.Submit(ctx, nil, fence)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestDrawAndDispatchCounts(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, nil)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	tg := newTarget(t, d, 8, 8)

	vs, err := d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "vs", Stage: gal.ShaderStageVertex, EntryPoint: "main", SPIRV: spirv()})
	require.NoError(t, err)
	fs, err := d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "fs", Stage: gal.ShaderStageFragment, EntryPoint: "main", SPIRV: spirv()})
	require.NoError(t, err)
	cs, err := d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "cs", Stage: gal.ShaderStageCompute, EntryPoint: "main", SPIRV: spirv()})
	require.NoError(t, err)
	_, err = d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "bad", Stage: gal.ShaderStageVertex, EntryPoint: "main", SPIRV: []uint32{1, 2, 3, 4, 5}})
	var compileErr *gal.ShaderCompilationError
	assert.ErrorAs(t, err, &compileErr)

	layout, err := d.CreatePipelineLayout(gal.PipelineLayoutCreateInfo{Label: "empty"})
	require.NoError(t, err)
	gp, err := d.CreateGraphicsPipeline(gal.GraphicsPipelineCreateInfo{
		Label:         "triangle",
		Stages:        []gal.ShaderModule{vs, fs},
		InputAssembly: gal.InputAssemblyState{Topology: gal.PrimitiveTopologyTriangleList},
		Rasterization: gal.RasterizationState{LineWidth: 1},
		ColorBlend:    gal.ColorBlendState{Attachments: []gal.ColorBlendAttachment{{WriteMask: gal.ColorComponentAll}}},
		DynamicStates: []gal.DynamicState{gal.DynamicStateViewport, gal.DynamicStateScissor},
		Layout:        layout,
		RenderPass:    tg.rp,
	})
	require.NoError(t, err)
	assert.Equal(t, gal.PipelineBindPointGraphics, gp.BindPoint())
	cp, err := d.CreateComputePipeline(gal.ComputePipelineCreateInfo{Label: "reduce", Stage: cs, Layout: layout})
	require.NoError(t, err)
	assert.Nil(t, cp.Graphics())

	cb := commandBuffer(t, d, "work", FamilyUniversal)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.BeginRenderPass(tg.begin([4]float32{})))
	require.NoError(t, cb.BindPipeline(gp))
	require.NoError(t, cb.SetViewport(gal.Viewport{Width: 8, Height: 8, MaxDepth: 1}))
	require.NoError(t, cb.SetScissor(gal.Rect2D{Extent: gal.Extent2D{Width: 8, Height: 8}}))
	require.NoError(t, cb.Draw(3, 1, 0, 0))
	require.NoError(t, cb.Draw(6, 2, 0, 0))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.BindPipeline(cp))
	require.NoError(t, cb.Dispatch(4, 4, 1))
	require.NoError(t, cb.End())

	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil))
	require.NoError(t, d.WaitIdle(ctx))
	ev, ok := d.ExecutionLog().Find(EventExecute, "work")
	require.True(t, ok)
	assert.Equal(t, 2, ev.Draws)
	assert.Equal(t, 1, ev.Dispatches)
}

func TestDrawVertexBufferWithFence(t *testing.T) {
	ctx := context.Background()
	d := newTestDevice(t, nil)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	tg := newTarget(t, d, 16, 16)

	vb, err := d.CreateBuffer(gal.BufferCreateInfo{
		Label:  "vertices",
		Size:   256,
		Usage:  gal.BufferUsageVertex,
		Memory: gal.MemoryPropertyHostVisible | gal.MemoryPropertyHostCoherent,
	})
	require.NoError(t, err)
	vertices := make([]byte, 256)
	for i := range vertices {
		vertices[i] = byte(255 - i)
	}
	write(t, vb, vertices)

	vs, err := d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "vs", Stage: gal.ShaderStageVertex, EntryPoint: "main", SPIRV: spirv()})
	require.NoError(t, err)
	fs, err := d.CreateShaderModule(gal.ShaderModuleCreateInfo{Label: "fs", Stage: gal.ShaderStageFragment, EntryPoint: "main", SPIRV: spirv()})
	require.NoError(t, err)
	layout, err := d.CreatePipelineLayout(gal.PipelineLayoutCreateInfo{Label: "empty"})
	require.NoError(t, err)
	gp, err := d.CreateGraphicsPipeline(gal.GraphicsPipelineCreateInfo{
		Label:  "triangle",
		Stages: []gal.ShaderModule{vs, fs},
		VertexInput: gal.VertexInputState{
			Bindings:   []gal.VertexBindingDescription{{Binding: 0, Stride: 16, InputRate: gal.VertexInputRateVertex}},
			Attributes: []gal.VertexAttributeDescription{{Location: 0, Binding: 0, Format: gal.FormatRGBA32Float}},
		},
		InputAssembly: gal.InputAssemblyState{Topology: gal.PrimitiveTopologyTriangleList},
		Viewports:     []gal.Viewport{{Width: 16, Height: 16, MaxDepth: 1}},
		Scissors:      []gal.Rect2D{{Extent: gal.Extent2D{Width: 16, Height: 16}}},
		Rasterization: gal.RasterizationState{LineWidth: 1},
		ColorBlend:    gal.ColorBlendState{Attachments: []gal.ColorBlendAttachment{{WriteMask: gal.ColorComponentAll}}},
		Layout:        layout,
		RenderPass:    tg.rp,
	})
	require.NoError(t, err)

	cb := commandBuffer(t, d, "triangle", FamilyUniversal)
	require.NoError(t, cb.Begin(gal.CommandBufferUsageOneTimeSubmit))
	require.NoError(t, cb.BeginRenderPass(tg.begin([4]float32{0, 0, 0, 1})))
	require.NoError(t, cb.BindPipeline(gp))
	require.NoError(t, cb.BindVertexBuffers(0, []gal.Buffer{vb}, []uint64{0}))
	require.NoError(t, cb.Draw(3, 1, 0, 0))
	require.NoError(t, cb.EndRenderPass())
	require.NoError(t, cb.End())

	fence, err := d.CreateFence(false)
	require.NoError(t, err)
	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, fence))
	require.NoError(t, fence.Wait(ctx, time.Second))

	signaled, err := fence.Status()
	require.NoError(t, err)
	assert.True(t, signaled)
	assert.Equal(t, vertices, read(t, vb), "draws do not write vertex buffers")

	ev, ok := d.ExecutionLog().Find(EventExecute, "triangle")
	require.True(t, ok)
	assert.Equal(t, 1, ev.Draws)
}

func TestDestroyAbortsHeldWork(t *testing.T) {
	ctx := context.Background()
	r := newTestRenderer(t, gal.WithFenceTimeout(20*time.Millisecond))
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{})
	require.NoError(t, err)
	d := dev.(*Device)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)

	cb := commandBuffer(t, d, "stuck", FamilyUniversal)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.End())
	release := q.(*Queue).Hold()
	defer release()
	require.NoError(t, q.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil))

	assert.ErrorIs(t, d.Destroy(), gal.ErrInvalidState)
	_, ok := d.ExecutionLog().Find(EventExecute, "stuck")
	assert.False(t, ok)
	_, ok = d.ExecutionLog().Find(EventAbort, "")
	assert.True(t, ok)
}
