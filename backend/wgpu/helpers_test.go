package wgpu

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(t *testing.T, opts ...gal.Option) gal.Config {
	t.Helper()
	opts = append([]gal.Option{gal.WithHeap(1<<20, 256), gal.WithLogger(quiet)}, opts...)
	cfg, err := gal.NewConfig(opts...)
	require.NoError(t, err)
	return cfg
}

func newTestRenderer(t *testing.T, opts ...gal.Option) *Renderer {
	t.Helper()
	r, err := NewRendererWithBackend(testConfig(t, opts...), noop.API{})
	require.NoError(t, err)
	t.Cleanup(r.Destroy)
	return r
}

// newTestDevice opens a device on the noop HAL adapter. It is destroyed
// when the test ends; leak reports are ignored.
func newTestDevice(t *testing.T, opts ...gal.Option) *Device {
	t.Helper()
	pd, err := newTestRenderer(t, opts...).PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{Label: t.Name()})
	require.NoError(t, err)
	d := dev.(*Device)
	t.Cleanup(func() { _ = d.Destroy() })
	return d
}

// spy wraps a noop HAL device and records the encoder calls made on it.
type spy struct {
	hal.Device

	mu        sync.Mutex
	calls     []string
	passes    []hal.RenderPassDescriptor
	copied    [][]byte
	destroyed int
	groups    int
}

func (s *spy) add(format string, args ...any) {
	s.mu.Lock()
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
	s.mu.Unlock()
}

func (s *spy) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *spy) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	e, err := s.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &spyEncoder{CommandEncoder: e, s: s}, nil
}

func (s *spy) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	s.mu.Lock()
	s.groups++
	s.mu.Unlock()
	return s.Device.CreateBindGroup(desc)
}

func (s *spy) DestroyBuffer(b hal.Buffer) {
	s.mu.Lock()
	s.destroyed++
	s.mu.Unlock()
	s.Device.DestroyBuffer(b)
}

type spyEncoder struct {
	hal.CommandEncoder
	s *spy
}

func (e *spyEncoder) TransitionTextures(b []hal.TextureBarrier) {
	for _, t := range b {
		e.s.add("texture %d->%d", t.Usage.OldUsage, t.Usage.NewUsage)
	}
	e.CommandEncoder.TransitionTextures(b)
}

func (e *spyEncoder) TransitionBuffers(b []hal.BufferBarrier) {
	for _, t := range b {
		e.s.add("buffer %d->%d", t.Usage.OldUsage, t.Usage.NewUsage)
	}
	e.CommandEncoder.TransitionBuffers(b)
}

func (e *spyEncoder) ClearBuffer(b hal.Buffer, offset, size uint64) {
	e.s.add("clear %d+%d", offset, size)
	e.CommandEncoder.ClearBuffer(b, offset, size)
}

// CopyBufferToBuffer records the source bytes of every region.
func (e *spyEncoder) CopyBufferToBuffer(src, dst hal.Buffer, regions []hal.BufferCopy) {
	for _, r := range regions {
		e.s.add("copy %d->%d+%d", r.SrcOffset, r.DstOffset, r.Size)
		if m, err := e.s.Device.MapBuffer(src, r.SrcOffset, r.Size); err == nil {
			e.s.mu.Lock()
			e.s.copied = append(e.s.copied, append([]byte(nil), unsafe.Slice((*byte)(m.Ptr), r.Size)...))
			e.s.mu.Unlock()
		}
	}
	e.CommandEncoder.CopyBufferToBuffer(src, dst, regions)
}

func (e *spyEncoder) CopyBufferToTexture(src hal.Buffer, dst hal.Texture, regions []hal.BufferTextureCopy) {
	for _, r := range regions {
		e.s.add("upload row %d", r.BufferLayout.BytesPerRow)
	}
	e.CommandEncoder.CopyBufferToTexture(src, dst, regions)
}

func (e *spyEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.s.add("begin render pass")
	e.s.mu.Lock()
	e.s.passes = append(e.s.passes, *desc)
	e.s.mu.Unlock()
	return e.CommandEncoder.BeginRenderPass(desc)
}

func (e *spyEncoder) BeginComputePass(desc *hal.ComputePassDescriptor) hal.ComputePassEncoder {
	e.s.add("begin compute pass")
	return e.CommandEncoder.BeginComputePass(desc)
}

// heldQueue is a noop HAL queue whose completion can be held back or
// whose submissions fail with device loss.
type heldQueue struct {
	hal.Queue

	mu        sync.Mutex
	held      bool
	lost      bool
	completed uint64
}

func (q *heldQueue) Submit(cbs []hal.CommandBuffer) (uint64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.lost {
		return 0, fmt.Errorf("test queue: %w", hal.ErrDeviceLost)
	}
	return q.Queue.Submit(cbs)
}

func (q *heldQueue) PollCompleted() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.held {
		q.completed = q.Queue.PollCompleted()
	}
	return q.completed
}

func (q *heldQueue) hold(on bool) {
	q.mu.Lock()
	q.held = on
	q.mu.Unlock()
}

func (q *heldQueue) lose() {
	q.mu.Lock()
	q.lost = true
	q.mu.Unlock()
}

// provider hands a HAL device to NewRendererFromProvider the way a gogpu
// window does.
type provider struct {
	dev   hal.Device
	queue hal.Queue
}

func (p provider) Device() gpucontext.Device             { return nil }
func (p provider) Queue() gpucontext.Queue               { return nil }
func (p provider) Adapter() gpucontext.Adapter           { return nil }
func (p provider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (p provider) HalDevice() any                        { return p.dev }
func (p provider) HalQueue() any                         { return p.queue }
func (p provider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "test provider", Type: gpucontext.AdapterTypeDiscrete}
}

// newSpyDevice opens a device through a provider wrapping a noop HAL
// device in a spy and its queue in a heldQueue.
func newSpyDevice(t *testing.T, opts ...gal.Option) (*Device, *spy, *heldQueue) {
	t.Helper()
	open, err := (&noop.Adapter{}).Open(0, gputypes.DefaultLimits())
	require.NoError(t, err)
	s := &spy{Device: open.Device}
	q := &heldQueue{Queue: open.Queue}
	r, err := NewRendererFromProvider(testConfig(t, opts...), provider{dev: s, queue: q})
	require.NoError(t, err)
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{Label: t.Name()})
	require.NoError(t, err)
	d := dev.(*Device)
	t.Cleanup(func() {
		q.hold(false)
		_ = d.Destroy()
		r.Destroy()
	})
	return d, s, q
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

func commandBuffer(t *testing.T, d *Device, label string) gal.CommandBuffer {
	t.Helper()
	cb, err := d.CreateCommandBuffer(gal.CommandBufferCreateInfo{Label: label, Family: FamilyUniversal})
	require.NoError(t, err)
	return cb
}

func submit(t *testing.T, d *Device, fence gal.Fence, cbs ...gal.CommandBuffer) error {
	t.Helper()
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	return q.Submit(t.Context(), []gal.SubmitInfo{{CommandBuffers: cbs}}, fence)
}

// target is a single color attachment render target.
type target struct {
	img  gal.Image
	view gal.ImageView
	rp   gal.RenderPass
	fb   gal.FrameBuffer
}

func newTarget(t *testing.T, d *Device, w, h uint32, load gal.AttachmentLoadOp) *target {
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
	rp, err := d.CreateRenderPass(gal.RenderPassCreateInfo{
		Label: "color pass",
		Attachments: []gal.AttachmentDescription{{
			Format:      gal.FormatRGBA8Unorm,
			Samples:     gal.SampleCount1,
			LoadOp:      load,
			StoreOp:     gal.AttachmentStoreOpStore,
			FinalLayout: gal.ImageLayoutTransferSrcOptimal,
		}},
		Subpasses: []gal.SubpassDescription{{
			BindPoint:        gal.PipelineBindPointGraphics,
			ColorAttachments: []gal.AttachmentReference{{Attachment: 0, Layout: gal.ImageLayoutColorAttachmentOptimal}},
		}},
	})
	require.NoError(t, err)
	fb, err := d.CreateFrameBuffer(gal.FrameBufferCreateInfo{
		Label:       "fb",
		RenderPass:  rp,
		Attachments: []gal.ImageView{view},
		Extent:      gal.Extent2D{Width: w, Height: h},
	})
	require.NoError(t, err)
	return &target{img: img, view: view, rp: rp, fb: fb}
}

func (tg *target) begin(area gal.Extent2D, color [4]float32) gal.RenderPassBeginInfo {
	return gal.RenderPassBeginInfo{
		RenderPass:  tg.rp,
		FrameBuffer: tg.fb,
		RenderArea:  gal.Rect2D{Extent: area},
		ClearValues: []gal.ClearValue{{Color: color}},
	}
}

func spirv() []uint32 {
	return []uint32{gal.SPIRVMagic, 0x00010000, 0, 1, 0}
}
