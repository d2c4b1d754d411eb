// Package staging moves data between host memory and device-local buffers
// and images through a host-visible staging buffer.
//
// Every transfer records a one-time command buffer, submits it to the
// queue given to New and waits for its fence. A Buffer serializes its
// transfers; use one Buffer per goroutine for concurrent uploads.
//
//	st, err := staging.New(dev, queue, staging.WithSize(4<<20))
//	if err != nil {
//		return err
//	}
//	defer st.Destroy()
//	err = st.UploadBuffer(ctx, vertices, 0, data, staging.VertexInput)
package staging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gal"
)

// Errors returned by staging transfers.
var (
	// ErrTooLarge is returned when an image region does not fit in the
	// staging buffer. Buffer transfers are split instead.
	ErrTooLarge = errors.New("staging: region exceeds the staging buffer")

	// ErrClosed is returned by transfers on a destroyed Buffer.
	ErrClosed = errors.New("staging: buffer is destroyed")
)

// DefaultSize is the staging capacity used when WithSize is not given.
const DefaultSize = 8 << 20

// Use names the pipeline stages and accesses that consume a destination
// after an upload. The zero Use records no barrier.
type Use struct {
	Stages gal.PipelineStageFlags
	Access gal.AccessFlags
}

// Common destinations of buffer uploads.
var (
	VertexInput = Use{Stages: gal.PipelineStageVertexInput, Access: gal.AccessVertexAttributeRead}
	IndexInput  = Use{Stages: gal.PipelineStageVertexInput, Access: gal.AccessIndexRead}
	Uniform     = Use{Stages: gal.PipelineStageVertexShader | gal.PipelineStageFragmentShader | gal.PipelineStageComputeShader, Access: gal.AccessUniformRead}
	ShaderRead  = Use{Stages: gal.PipelineStageVertexShader | gal.PipelineStageFragmentShader | gal.PipelineStageComputeShader, Access: gal.AccessShaderRead}
)

// Region selects the part of an image a transfer touches. Host data is
// tightly packed in the image format.
type Region struct {
	Layers gal.ImageSubresourceLayers
	Offset gal.Offset3D
	Extent gal.Extent3D
}

// Whole returns the region covering mip level 0 and array layer 0 of img.
func Whole(img gal.Image) Region {
	info := img.Info()
	aspect := gal.ImageAspectColor
	switch {
	case info.Format.HasDepth():
		aspect = gal.ImageAspectDepth
	case info.Format.HasStencil():
		aspect = gal.ImageAspectStencil
	}
	return Region{
		Layers: gal.ImageSubresourceLayers{Aspect: aspect, LayerCount: 1},
		Extent: gal.Extent3D{Width: info.Extent.Width, Height: info.Extent.Height, Depth: max(info.Extent.Depth, 1)},
	}
}

type options struct {
	size   uint64
	label  string
	logger *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithSize sets the capacity of the staging buffer in bytes.
func WithSize(n uint64) Option {
	return func(o *options) { o.size = n }
}

// WithLabel sets the label of the staging objects.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithLogger sets the logger for transfer diagnostics. The default is
// gal.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Buffer is a host-visible staging buffer bound to one queue.
type Buffer struct {
	dev   gal.Device
	queue gal.Queue
	label string
	log   *slog.Logger

	offsetAlign uint64
	pitchAlign  uint64

	mu     sync.Mutex
	buf    gal.Buffer
	cb     gal.CommandBuffer
	fence  gal.Fence
	closed bool
}

// New creates a staging buffer of the configured size on dev. Transfers
// are submitted to q.
func New(dev gal.Device, q gal.Queue, opts ...Option) (*Buffer, error) {
	o := options{size: DefaultSize, label: "staging"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = gal.Logger()
	}
	if o.size == 0 {
		return nil, fmt.Errorf("staging %q: size is zero: %w", o.label, gal.ErrInvalidArgument)
	}
	limits := dev.PhysicalDevice().Limits()
	s := &Buffer{
		dev:         dev,
		queue:       q,
		label:       o.label,
		log:         o.logger,
		offsetAlign: max(limits.OptimalBufferCopyOffsetAlign, 1),
		pitchAlign:  max(limits.OptimalBufferCopyRowPitchAlign, 1),
	}
	var err error
	s.buf, err = dev.CreateBuffer(gal.BufferCreateInfo{
		Label:  o.label,
		Size:   o.size,
		Usage:  gal.BufferUsageTransferSrc | gal.BufferUsageTransferDst,
		Memory: gal.MemoryPropertyHostVisible | gal.MemoryPropertyHostCoherent,
	})
	if err != nil {
		return nil, fmt.Errorf("staging %q: %w", o.label, err)
	}
	s.cb, err = dev.CreateCommandBuffer(gal.CommandBufferCreateInfo{Label: o.label + " commands", Family: q.Family()})
	if err != nil {
		s.buf.Destroy()
		return nil, fmt.Errorf("staging %q: %w", o.label, err)
	}
	s.fence, err = dev.CreateFence(false)
	if err != nil {
		s.cb.Destroy()
		s.buf.Destroy()
		return nil, fmt.Errorf("staging %q: %w", o.label, err)
	}
	return s, nil
}

// Size returns the staging capacity in bytes.
func (s *Buffer) Size() uint64 { return s.buf.Size() }

// Destroy releases the staging objects. Transfers in flight must have
// returned.
func (s *Buffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.fence.Destroy()
	s.cb.Destroy()
	s.buf.Destroy()
}

// chunk returns the largest transfer size up to n that keeps offsets
// aligned.
func (s *Buffer) chunk(n uint64) uint64 {
	c := min(n, s.buf.Size())
	if c < n {
		c -= c % s.offsetAlign
	}
	return c
}

// UploadBuffer copies data into dst at offset. Data larger than the
// staging buffer is sent in several submissions. use, when not zero,
// makes the written range visible to its stages.
func (s *Buffer) UploadBuffer(ctx context.Context, dst gal.Buffer, offset uint64, data []byte, use Use) error {
	if err := s.checkRange("upload", dst, offset, uint64(len(data))); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for done := uint64(0); done < uint64(len(data)); {
		n := s.chunk(uint64(len(data)) - done)
		if err := s.fill(data[done : done+n]); err != nil {
			return err
		}
		at := offset + done
		err := s.run(ctx, "upload to "+dst.Label(), func(cb gal.CommandBuffer) error {
			if err := cb.CopyBuffer(s.buf, dst, []gal.BufferCopy{{DstOffset: at, Size: n}}); err != nil {
				return err
			}
			if use == (Use{}) {
				return nil
			}
			return cb.PipelineBarrier(gal.PipelineBarrierInfo{
				SrcStages: gal.PipelineStageTransfer,
				DstStages: use.Stages,
				Buffers: []gal.BufferMemoryBarrier{{
					SrcAccess: gal.AccessTransferWrite,
					DstAccess: use.Access,
					Buffer:    dst,
					Offset:    at,
					Size:      n,
				}},
			})
		})
		if err != nil {
			return err
		}
		done += n
	}
	s.log.Debug("staging: uploaded buffer", slog.String("dst", dst.Label()), slog.Int("bytes", len(data)))
	return nil
}

// DownloadBuffer copies len(out) bytes of src starting at offset into out.
func (s *Buffer) DownloadBuffer(ctx context.Context, src gal.Buffer, offset uint64, out []byte) error {
	if err := s.checkRange("download", src, offset, uint64(len(out))); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for done := uint64(0); done < uint64(len(out)); {
		n := s.chunk(uint64(len(out)) - done)
		at := offset + done
		err := s.run(ctx, "download from "+src.Label(), func(cb gal.CommandBuffer) error {
			return cb.CopyBuffer(src, s.buf, []gal.BufferCopy{{SrcOffset: at, Size: n}})
		})
		if err != nil {
			return err
		}
		if err := s.drain(out[done : done+n]); err != nil {
			return err
		}
		done += n
	}
	return nil
}

func (s *Buffer) checkRange(op string, b gal.Buffer, offset, n uint64) error {
	if n == 0 {
		return fmt.Errorf("staging: %s %q: no data: %w", op, b.Label(), gal.ErrInvalidArgument)
	}
	if offset%s.offsetAlign != 0 || n%s.offsetAlign != 0 {
		return fmt.Errorf("staging: %s %q: offset %d size %d not aligned to %d: %w", op, b.Label(), offset, n, s.offsetAlign, gal.ErrInvalidArgument)
	}
	if offset > b.Size() || n > b.Size()-offset {
		return fmt.Errorf("staging: %s %q: range %d+%d exceeds size %d: %w", op, b.Label(), offset, n, b.Size(), gal.ErrInvalidArgument)
	}
	return nil
}

// blockSize returns the bytes of one texel block of aspect in f.
func blockSize(f gal.Format, aspect gal.ImageAspectFlags) uint64 {
	switch {
	case aspect == gal.ImageAspectStencil:
		return 1
	case aspect == gal.ImageAspectDepth && f.HasStencil():
		return 4
	}
	return uint64(f.Info().BlockSize)
}

// imageCopy returns the copy region of r with rows padded to the pitch
// alignment, and the tight row size, padded pitch and row count.
func (s *Buffer) imageCopy(img gal.Image, r Region, data int) (region gal.BufferImageCopy, rowBytes, pitch, rows uint64, err error) {
	f := img.Info().Format
	be := max(f.Info().BlockExtent, 1)
	size := blockSize(f, r.Layers.Aspect)
	blocksWide := uint64((r.Extent.Width + be - 1) / be)
	rowBytes = blocksWide * size
	pitch = (rowBytes + s.pitchAlign - 1) / s.pitchAlign * s.pitchAlign
	rows = uint64((r.Extent.Height+be-1)/be) * uint64(max(r.Extent.Depth, 1)) * uint64(max(r.Layers.LayerCount, 1))
	if size == 0 || rowBytes*rows != uint64(data) {
		return region, 0, 0, 0, fmt.Errorf("staging: image %q: %d bytes for a %dx%dx%d region of %s: %w",
			img.Label(), data, r.Extent.Width, r.Extent.Height, r.Extent.Depth, f, gal.ErrInvalidArgument)
	}
	if pitch*rows > s.buf.Size() {
		return region, 0, 0, 0, fmt.Errorf("staging: image %q: %d bytes: %w", img.Label(), pitch*rows, ErrTooLarge)
	}
	region = gal.BufferImageCopy{
		BufferRowLength:  uint32(pitch/size) * be,
		ImageSubresource: r.Layers,
		ImageOffset:      r.Offset,
		ImageExtent:      r.Extent,
	}
	return region, rowBytes, pitch, rows, nil
}

// UploadImage writes tightly packed data into a region of dst. The image
// moves from layout old to TransferDstOptimal for the copy and ends in
// layout final. Pass ImageLayoutUndefined as old to discard the previous
// contents.
func (s *Buffer) UploadImage(ctx context.Context, dst gal.Image, r Region, data []byte, old, final gal.ImageLayout) error {
	region, rowBytes, pitch, rows, err := s.imageCopy(dst, r, len(data))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	m, err := s.buf.Map(0, pitch*rows)
	if err != nil {
		return fmt.Errorf("staging %q: %w", s.label, err)
	}
	for i := range rows {
		copy(m[i*pitch:i*pitch+rowBytes], data[i*rowBytes:])
	}
	if err := s.buf.Unmap(); err != nil {
		return fmt.Errorf("staging %q: %w", s.label, err)
	}
	rng := subresource(r.Layers)
	err = s.run(ctx, "upload to "+dst.Label(), func(cb gal.CommandBuffer) error {
		if err := cb.PipelineBarrier(gal.PipelineBarrierInfo{
			SrcStages: gal.PipelineStageTopOfPipe,
			DstStages: gal.PipelineStageTransfer,
			Images: []gal.ImageMemoryBarrier{{
				DstAccess: gal.AccessTransferWrite,
				OldLayout: old,
				NewLayout: gal.ImageLayoutTransferDstOptimal,
				Image:     dst,
				Range:     rng,
			}},
		}); err != nil {
			return err
		}
		if err := cb.CopyBufferToImage(s.buf, dst, gal.ImageLayoutTransferDstOptimal, []gal.BufferImageCopy{region}); err != nil {
			return err
		}
		return cb.PipelineBarrier(gal.PipelineBarrierInfo{
			SrcStages: gal.PipelineStageTransfer,
			DstStages: gal.PipelineStageAllCommands,
			Images: []gal.ImageMemoryBarrier{{
				SrcAccess: gal.AccessTransferWrite,
				DstAccess: gal.AccessMemoryRead,
				OldLayout: gal.ImageLayoutTransferDstOptimal,
				NewLayout: final,
				Image:     dst,
				Range:     rng,
			}},
		})
	})
	if err != nil {
		return err
	}
	s.log.Debug("staging: uploaded image", slog.String("dst", dst.Label()), slog.Int("bytes", len(data)))
	return nil
}

// DownloadImage reads a region of src, which is in layout current, into
// out as tightly packed rows. The image returns to layout current, or
// stays in TransferSrcOptimal when current is Undefined.
func (s *Buffer) DownloadImage(ctx context.Context, src gal.Image, r Region, current gal.ImageLayout, out []byte) error {
	region, rowBytes, pitch, rows, err := s.imageCopy(src, r, len(out))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	rng := subresource(r.Layers)
	err = s.run(ctx, "download from "+src.Label(), func(cb gal.CommandBuffer) error {
		if current != gal.ImageLayoutTransferSrcOptimal {
			if err := cb.PipelineBarrier(gal.PipelineBarrierInfo{
				SrcStages: gal.PipelineStageAllCommands,
				DstStages: gal.PipelineStageTransfer,
				Images: []gal.ImageMemoryBarrier{{
					SrcAccess: gal.AccessMemoryWrite,
					DstAccess: gal.AccessTransferRead,
					OldLayout: current,
					NewLayout: gal.ImageLayoutTransferSrcOptimal,
					Image:     src,
					Range:     rng,
				}},
			}); err != nil {
				return err
			}
		}
		if err := cb.CopyImageToBuffer(src, gal.ImageLayoutTransferSrcOptimal, s.buf, []gal.BufferImageCopy{region}); err != nil {
			return err
		}
		if current == gal.ImageLayoutTransferSrcOptimal || current == gal.ImageLayoutUndefined {
			return nil
		}
		return cb.PipelineBarrier(gal.PipelineBarrierInfo{
			SrcStages: gal.PipelineStageTransfer,
			DstStages: gal.PipelineStageAllCommands,
			Images: []gal.ImageMemoryBarrier{{
				SrcAccess: gal.AccessTransferRead,
				DstAccess: gal.AccessMemoryRead | gal.AccessMemoryWrite,
				OldLayout: gal.ImageLayoutTransferSrcOptimal,
				NewLayout: current,
				Image:     src,
				Range:     rng,
			}},
		})
	})
	if err != nil {
		return err
	}
	m, err := s.buf.Map(0, pitch*rows)
	if err != nil {
		return fmt.Errorf("staging %q: %w", s.label, err)
	}
	for i := range rows {
		copy(out[i*rowBytes:(i+1)*rowBytes], m[i*pitch:])
	}
	return s.buf.Unmap()
}

func subresource(l gal.ImageSubresourceLayers) gal.ImageSubresourceRange {
	return gal.ImageSubresourceRange{
		Aspect:         l.Aspect,
		BaseMipLevel:   l.MipLevel,
		LevelCount:     1,
		BaseArrayLayer: l.BaseArrayLayer,
		LayerCount:     max(l.LayerCount, 1),
	}
}

// fill writes data to the start of the staging buffer.
func (s *Buffer) fill(data []byte) error {
	m, err := s.buf.Map(0, uint64(len(data)))
	if err != nil {
		return fmt.Errorf("staging %q: %w", s.label, err)
	}
	copy(m, data)
	return s.buf.Unmap()
}

// drain reads len(out) bytes from the start of the staging buffer.
func (s *Buffer) drain(out []byte) error {
	m, err := s.buf.Map(0, uint64(len(out)))
	if err != nil {
		return fmt.Errorf("staging %q: %w", s.label, err)
	}
	copy(out, m)
	return s.buf.Unmap()
}

// run records one command buffer with rec, submits it and waits for it.
func (s *Buffer) run(ctx context.Context, what string, rec func(gal.CommandBuffer) error) error {
	if err := s.cb.Begin(gal.CommandBufferUsageOneTimeSubmit); err != nil {
		return fmt.Errorf("staging: %s: %w", what, err)
	}
	if err := rec(s.cb); err != nil {
		_ = s.cb.End()
		return fmt.Errorf("staging: %s: %w", what, err)
	}
	if err := s.cb.End(); err != nil {
		return fmt.Errorf("staging: %s: %w", what, err)
	}
	if err := s.queue.Submit(ctx, []gal.SubmitInfo{{CommandBuffers: []gal.CommandBuffer{s.cb}}}, s.fence); err != nil {
		return fmt.Errorf("staging: %s: %w", what, err)
	}
	if err := s.fence.Wait(ctx, -1); err != nil {
		return fmt.Errorf("staging: %s: %w", what, err)
	}
	if err := s.fence.Reset(); err != nil {
		return fmt.Errorf("staging: %s: %w", what, err)
	}
	return nil
}
