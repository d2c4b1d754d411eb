// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/alloc"
)

func TestPluginCreatesRenderer(t *testing.T) {
	reg, err := gal.NewRegistry(Plugin())
	require.NoError(t, err)

	rd, err := reg.CreateRenderer("test", gal.WithLogger(quiet))
	require.NoError(t, err)
	defer rd.Destroy()
	assert.Equal(t, Name, rd.Name())
	require.Equal(t, 1, rd.PhysicalDeviceCount())

	pd, err := rd.PhysicalDevice(0)
	require.NoError(t, err)
	assert.Equal(t, gal.PhysicalDeviceTypeCPU, pd.Properties().Type)
	assert.Equal(t, ID, pd.Properties().Backend)

	_, err = rd.PhysicalDevice(1)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestCreateDeviceQueues(t *testing.T) {
	r := newTestRenderer(t)
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)

	_, err = pd.CreateDevice(gal.DeviceCreateInfo{Queues: []gal.QueueCreateInfo{{Family: FamilyTransfer, Count: 2}}})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = pd.CreateDevice(gal.DeviceCreateInfo{Queues: []gal.QueueCreateInfo{{Family: 7, Count: 1}}})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)

	d := newTestDevice(t, []gal.QueueCreateInfo{
		{Family: FamilyUniversal, Count: 2},
		{Family: FamilyTransfer, Count: 1},
	})
	q, err := d.Queue(FamilyUniversal, 1)
	require.NoError(t, err)
	assert.True(t, q.Flags().Has(gal.QueueGraphics|gal.QueueCompute))
	q, err = d.Queue(FamilyTransfer, 0)
	require.NoError(t, err)
	assert.Equal(t, gal.QueueTransfer, q.Flags())
	_, err = d.Queue(FamilyTransfer, 1)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestFormatSupport(t *testing.T) {
	r := newTestRenderer(t)
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)

	rgba := pd.FormatProperties(gal.FormatRGBA8Unorm)
	assert.True(t, rgba.Optimal.Has(gal.FormatFeatureColorAttachment|gal.FormatFeatureSampledImage))
	depth := pd.FormatProperties(gal.FormatD32Float)
	assert.True(t, depth.Optimal.Has(gal.FormatFeatureDepthStencilAttachment))
	assert.False(t, depth.Optimal.Has(gal.FormatFeatureColorAttachment))

	info := gal.ImageCreateInfo{
		Type:        gal.ImageType2D,
		Format:      gal.FormatBC1RGBAUnorm,
		Extent:      gal.Extent3D{Width: 16, Height: 16, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     gal.SampleCount1,
		Usage:       gal.ImageUsageColorAttachment,
	}
	assert.ErrorIs(t, pd.ImageFormatSupported(info), gal.ErrUnsupportedFormat)
	info.Usage = gal.ImageUsageSampled | gal.ImageUsageTransferDst
	assert.NoError(t, pd.ImageFormatSupported(info))

	d := newTestDevice(t, nil)
	info.Usage = gal.ImageUsageColorAttachment
	_, err = d.CreateImage(info)
	assert.ErrorIs(t, err, gal.ErrUnsupportedFormat)
}

func TestBufferDestroyRestoresHeap(t *testing.T) {
	d := newTestDevice(t, nil)
	before := heapStats(t, d, MemoryHostVisible)

	b := hostBuffer(t, d, "scratch", 4096)
	assert.Equal(t, before.Live+1, heapStats(t, d, MemoryHostVisible).Live)
	assert.Len(t, d.Tracked(), 1)

	b.Destroy()
	b.Destroy()
	assert.True(t, b.Destroyed())
	assert.Equal(t, before, heapStats(t, d, MemoryHostVisible))
	assert.Empty(t, d.Tracked())

	_, err := d.HeapStats(99)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestBufferCreateErrors(t *testing.T) {
	d := newTestDevice(t, nil)
	_, err := d.CreateBuffer(gal.BufferCreateInfo{Size: 0, Usage: gal.BufferUsageVertex})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = d.CreateBuffer(gal.BufferCreateInfo{Size: 64})
	assert.ErrorIs(t, err, gal.ErrInvalidUsageCombination)
	_, err = d.CreateBuffer(gal.BufferCreateInfo{
		Size:   64,
		Usage:  gal.BufferUsageVertex,
		Memory: gal.MemoryPropertyLazilyAllocated | gal.MemoryPropertyHostVisible,
	})
	assert.ErrorIs(t, err, gal.ErrInvalidUsageCombination)
	_, err = d.CreateBuffer(gal.BufferCreateInfo{
		Size:   64,
		Usage:  gal.BufferUsageVertex,
		Memory: gal.MemoryPropertyDeviceLocal | gal.MemoryPropertyHostVisible,
	})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)
}

func TestOutOfDeviceMemory(t *testing.T) {
	d := newTestDevice(t, nil, gal.WithHeap(4096, 256))
	var err error
	for i := 0; i < 16 && err == nil; i++ {
		_, err = d.CreateBuffer(gal.BufferCreateInfo{Size: 1024, Usage: gal.BufferUsageStorage})
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, gal.ErrOutOfDeviceMemory)
	assert.LessOrEqual(t, heapStats(t, d, MemoryDeviceLocal).InUse, uint64(4096))
	assert.Zero(t, heapStats(t, d, MemoryHostVisible).Live)
}

func TestBufferMapping(t *testing.T) {
	d := newTestDevice(t, nil)
	b := hostBuffer(t, d, "host", 64)

	m, err := b.Map(16, gal.WholeSize)
	require.NoError(t, err)
	assert.Len(t, m, 48)
	_, err = b.Map(0, 4)
	assert.ErrorIs(t, err, gal.ErrInvalidState)
	require.NoError(t, b.Unmap())
	assert.ErrorIs(t, b.Unmap(), gal.ErrInvalidState)

	_, err = b.Map(60, 8)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = b.Map(8, math.MaxUint64-3)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument, "offset plus size wraps")

	local, err := d.CreateBuffer(gal.BufferCreateInfo{Size: 64, Usage: gal.BufferUsageStorage, Memory: gal.MemoryPropertyDeviceLocal})
	require.NoError(t, err)
	_, err = local.Map(0, gal.WholeSize)
	assert.ErrorIs(t, err, gal.ErrInvalidState)

	b.Destroy()
	_, err = b.Map(0, 4)
	assert.ErrorIs(t, err, gal.ErrInvalidState)
}

func TestFrameBufferAttachmentCount(t *testing.T) {
	d := newTestDevice(t, nil)
	tg := newTarget(t, d, 8, 8)
	rp := colorPass(t, d, 2)

	_, err := d.CreateFrameBuffer(gal.FrameBufferCreateInfo{
		RenderPass:  rp,
		Attachments: []gal.ImageView{tg.view},
		Extent:      gal.Extent2D{Width: 8, Height: 8},
	})
	assert.ErrorIs(t, err, gal.ErrIncompatibleRenderPass)

	_, err = d.CreateFrameBuffer(gal.FrameBufferCreateInfo{
		RenderPass:  tg.rp,
		Attachments: []gal.ImageView{tg.view},
		Extent:      gal.Extent2D{Width: 16, Height: 8},
	})
	assert.ErrorIs(t, err, gal.ErrIncompatibleRenderPass)
}

func TestRenderPassIsCopied(t *testing.T) {
	d := newTestDevice(t, nil)
	info := gal.RenderPassCreateInfo{
		Attachments: []gal.AttachmentDescription{{
			Format:      gal.FormatRGBA8Unorm,
			Samples:     gal.SampleCount1,
			FinalLayout: gal.ImageLayoutShaderReadOnlyOptimal,
		}},
		Subpasses: []gal.SubpassDescription{{
			ColorAttachments: []gal.AttachmentReference{{Attachment: 0, Layout: gal.ImageLayoutColorAttachmentOptimal}},
		}},
	}
	rp, err := d.CreateRenderPass(info)
	require.NoError(t, err)
	info.Attachments[0].Format = gal.FormatR32Float
	info.Subpasses[0].ColorAttachments[0].Attachment = 3
	assert.Equal(t, gal.FormatRGBA8Unorm, rp.Info().Attachments[0].Format)
	assert.Equal(t, uint32(0), rp.Info().Subpasses[0].ColorAttachments[0].Attachment)
}

func TestDescriptorSetUpdate(t *testing.T) {
	d := newTestDevice(t, nil)
	layout, err := d.CreateDescriptorSetLayout(gal.DescriptorSetLayoutCreateInfo{
		Label: "globals",
		Bindings: []gal.DescriptorSetLayoutBinding{
			{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Count: 1, Stages: gal.ShaderStageVertex},
			{Binding: 1, Type: gal.DescriptorTypeStorageBuffer, Count: 2, Stages: gal.ShaderStageFragment},
		},
	})
	require.NoError(t, err)
	set, err := d.CreateDescriptorSet(layout)
	require.NoError(t, err)
	ds := set.(*DescriptorSet)

	ubo, err := d.CreateBuffer(gal.BufferCreateInfo{Label: "ubo", Size: 256, Usage: gal.BufferUsageUniform})
	require.NoError(t, err)
	ssbo, err := d.CreateBuffer(gal.BufferCreateInfo{Label: "ssbo", Size: 256, Usage: gal.BufferUsageStorage})
	require.NoError(t, err)

	err = set.Update([]gal.WriteDescriptorSet{
		{Binding: 1, Type: gal.DescriptorTypeStorageBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ssbo, Range: gal.WholeSize}}},
		{Binding: 0, Type: gal.DescriptorTypeStorageBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ubo, Range: gal.WholeSize}}},
	})
	assert.ErrorIs(t, err, gal.ErrDescriptorTypeMismatch)
	_, ok := ds.BufferInfo(1, 0)
	assert.False(t, ok, "a failed update must not apply any write")

	err = set.Update([]gal.WriteDescriptorSet{
		{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ssbo, Range: gal.WholeSize}}},
	})
	assert.ErrorIs(t, err, gal.ErrDescriptorTypeMismatch)

	err = set.Update([]gal.WriteDescriptorSet{
		{Binding: 1, ArrayElement: 1, Type: gal.DescriptorTypeStorageBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ssbo, Offset: 128, Range: 64}}},
		{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Buffers: []gal.DescriptorBufferInfo{{Buffer: ubo, Range: gal.WholeSize}}},
	})
	require.NoError(t, err)
	bi, ok := ds.BufferInfo(1, 1)
	require.True(t, ok)
	assert.Equal(t, uint64(128), bi.Offset)
	assert.Same(t, ssbo, bi.Buffer)
	_, ok = ds.BufferInfo(1, 0)
	assert.False(t, ok)

	err = set.Update([]gal.WriteDescriptorSet{
		{Binding: 1, ArrayElement: 1, Type: gal.DescriptorTypeStorageBuffer, Buffers: make([]gal.DescriptorBufferInfo, 2)},
	})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestDestroyReportsLeaks(t *testing.T) {
	r := newTestRenderer(t)
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{Label: "leaky"})
	require.NoError(t, err)
	d := dev.(*Device)

	kept := hostBuffer(t, d, "kept", 64)
	gone := hostBuffer(t, d, "gone", 64)
	gone.Destroy()
	fence, err := d.CreateFence(false)
	require.NoError(t, err)

	err = d.Destroy()
	assert.ErrorIs(t, err, gal.ErrInvalidState)
	assert.True(t, kept.Destroyed())
	assert.True(t, fence.Destroyed())
	assert.Empty(t, d.Tracked())
	assert.Zero(t, heapStats(t, d, MemoryHostVisible).InUse)

	assert.NoError(t, d.Destroy())
	_, err = d.CreateBuffer(gal.BufferCreateInfo{Size: 64, Usage: gal.BufferUsageVertex})
	assert.ErrorIs(t, err, gal.ErrInvalidState)
}

func TestDeviceLost(t *testing.T) {
	d := newTestDevice(t, nil)
	fence, err := d.CreateFence(false)
	require.NoError(t, err)
	cb := commandBuffer(t, d, "cb", FamilyUniversal)
	require.NoError(t, cb.Begin(0))
	require.NoError(t, cb.End())

	waited := make(chan error, 1)
	go func() { waited <- fence.Wait(context.Background(), -1) }()
	d.Lose()
	select {
	case err := <-waited:
		assert.ErrorIs(t, err, gal.ErrDeviceLost)
	case <-time.After(5 * time.Second):
		t.Fatal("fence wait did not return after device loss")
	}

	assert.True(t, d.Lost())
	_, err = d.CreateBuffer(gal.BufferCreateInfo{Size: 64, Usage: gal.BufferUsageVertex})
	assert.ErrorIs(t, err, gal.ErrDeviceLost)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	err = q.Submit(context.Background(), []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{cb}}}, nil)
	assert.ErrorIs(t, err, gal.ErrDeviceLost)
	assert.ErrorIs(t, fence.Wait(context.Background(), time.Second), gal.ErrDeviceLost)
	assert.ErrorIs(t, cb.Reset(), gal.ErrDeviceLost)
	assert.ErrorIs(t, d.WaitIdle(context.Background()), gal.ErrDeviceLost)
}

func TestFenceStates(t *testing.T) {
	d := newTestDevice(t, nil)
	f, err := d.CreateFence(true)
	require.NoError(t, err)
	ok, err := f.Status()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, f.Wait(context.Background(), 0))

	require.NoError(t, f.Reset())
	ok, err = f.Status()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, f.Wait(context.Background(), 0), gal.ErrTimeout)
	assert.ErrorIs(t, f.Wait(context.Background(), 10*time.Millisecond), gal.ErrTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.Wait(ctx, time.Second), context.Canceled)

	f.Destroy()
	_, err = f.Status()
	assert.ErrorIs(t, err, gal.ErrInvalidState)
}

func heapStats(t *testing.T, d *Device, i uint32) alloc.Stats {
	t.Helper()
	st, err := d.HeapStats(i)
	require.NoError(t, err)
	return st
}
