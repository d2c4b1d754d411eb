// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestRenderer(t *testing.T, opts ...gal.Option) *Renderer {
	t.Helper()
	opts = append([]gal.Option{gal.WithHeap(1<<20, 256), gal.WithLogger(quiet)}, opts...)
	cfg, err := gal.NewConfig(opts...)
	require.NoError(t, err)
	r, err := NewRenderer(cfg)
	require.NoError(t, err)
	return r
}

// newTestDevice creates a device that is destroyed when the test ends.
// Leak reports from Destroy are ignored.
func newTestDevice(t *testing.T, queues []gal.QueueCreateInfo, opts ...gal.Option) *Device {
	t.Helper()
	r := newTestRenderer(t, opts...)
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{Label: t.Name(), Queues: queues})
	require.NoError(t, err)
	d := dev.(*Device)
	t.Cleanup(func() { _ = d.Destroy() })
	return d
}

func hostBuffer(t *testing.T, d *Device, label string, size uint64) gal.Buffer {
	t.Helper()
	b, err := d.CreateBuffer(gal.BufferCreateInfo{
		Label:  label,
		Size:   size,
		Usage:  gal.BufferUsageTransferSrc | gal.BufferUsageTransferDst,
		Memory: gal.MemoryPropertyHostVisible,
	})
	require.NoError(t, err)
	return b
}

func write(t *testing.T, b gal.Buffer, data []byte) {
	t.Helper()
	m, err := b.Map(0, gal.WholeSize)
	require.NoError(t, err)
	copy(m, data)
	require.NoError(t, b.Unmap())
}

func read(t *testing.T, b gal.Buffer) []byte {
	t.Helper()
	m, err := b.Map(0, gal.WholeSize)
	require.NoError(t, err)
	out := append([]byte(nil), m...)
	require.NoError(t, b.Unmap())
	return out
}

// target is a single color attachment render target.
type target struct {
	img  gal.Image
	view gal.ImageView
	rp   gal.RenderPass
	fb   gal.FrameBuffer
}

func colorPass(t *testing.T, d *Device, attachments int) gal.RenderPass {
	t.Helper()
	info := gal.RenderPassCreateInfo{Label: "color pass"}
	sp := gal.SubpassDescription{BindPoint: gal.PipelineBindPointGraphics}
	for i := range attachments {
		info.Attachments = append(info.Attachments, gal.AttachmentDescription{
			Format:      gal.FormatRGBA8Unorm,
			Samples:     gal.SampleCount1,
			LoadOp:      gal.AttachmentLoadOpClear,
			StoreOp:     gal.AttachmentStoreOpStore,
			FinalLayout: gal.ImageLayoutTransferSrcOptimal,
		})
		sp.ColorAttachments = append(sp.ColorAttachments, gal.AttachmentReference{
			Attachment: uint32(i),
			Layout:     gal.ImageLayoutColorAttachmentOptimal,
		})
	}
	info.Subpasses = []gal.SubpassDescription{sp}
	rp, err := d.CreateRenderPass(info)
	require.NoError(t, err)
	return rp
}

func newTarget(t *testing.T, d *Device, w, h uint32) *target {
	t.Helper()
	img, err := d.CreateImage(gal.ImageCreateInfo{
		Label:       "color",
		Type:        gal.ImageType2D,
		Format:      gal.FormatRGBA8Unorm,
		Extent:      gal.Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Usage:       gal.ImageUsageColorAttachment | gal.ImageUsageTransferSrc | gal.ImageUsageTransferDst,
	})
	require.NoError(t, err)
	view, err := d.CreateImageView(gal.ImageViewCreateInfo{Label: "color view", Image: img, ViewType: gal.ImageViewType2D})
	require.NoError(t, err)
	rp := colorPass(t, d, 1)
	fb, err := d.CreateFrameBuffer(gal.FrameBufferCreateInfo{
		Label:       "fb",
		RenderPass:  rp,
		Attachments: []gal.ImageView{view},
		Extent:      gal.Extent2D{Width: w, Height: h},
	})
	require.NoError(t, err)
	return &target{img: img, view: view, rp: rp, fb: fb}
}

func (tg *target) begin(color [4]float32) gal.RenderPassBeginInfo {
	return gal.RenderPassBeginInfo{
		RenderPass:  tg.rp,
		FrameBuffer: tg.fb,
		RenderArea:  gal.Rect2D{Extent: tg.fb.Extent()},
		ClearValues: []gal.ClearValue{{Color: color}},
	}
}

func (tg *target) region() gal.BufferImageCopy {
	e := tg.img.Info().Extent
	return gal.BufferImageCopy{
		ImageSubresource: gal.ImageSubresourceLayers{Aspect: gal.ImageAspectColor, LayerCount: 1},
		ImageExtent:      e,
	}
}

func commandBuffer(t *testing.T, d *Device, label string, family uint32) gal.CommandBuffer {
	t.Helper()
	cb, err := d.CreateCommandBuffer(gal.CommandBufferCreateInfo{Label: label, Family: family})
	require.NoError(t, err)
	return cb
}

func spirv() []uint32 {
	return []uint32{gal.SPIRVMagic, 0x00010000, 0, 1, 0}
}
