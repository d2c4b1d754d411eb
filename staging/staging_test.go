package staging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/backend/null"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newDevice(t *testing.T) gal.Device {
	t.Helper()
	cfg, err := gal.NewConfig(gal.WithHeap(1<<20, 256), gal.WithLogger(quiet))
	require.NoError(t, err)
	r, err := null.NewRenderer(cfg)
	require.NoError(t, err)
	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{
		Label: t.Name(),
		Queues: []gal.QueueCreateInfo{
			{Family: null.FamilyUniversal, Count: 1},
			{Family: null.FamilyTransfer, Count: 1},
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dev.Destroy() })
	return dev
}

func newStaging(t *testing.T, dev gal.Device, family uint32, opts ...Option) *Buffer {
	t.Helper()
	q, err := dev.Queue(family, 0)
	require.NoError(t, err)
	s, err := New(dev, q, append([]Option{WithLogger(quiet)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(s.Destroy)
	return s
}

func localBuffer(t *testing.T, dev gal.Device, size uint64) gal.Buffer {
	t.Helper()
	b, err := dev.CreateBuffer(gal.BufferCreateInfo{
		Label: "local",
		Size:  size,
		Usage: gal.BufferUsageTransferSrc | gal.BufferUsageTransferDst | gal.BufferUsageVertex,
	})
	require.NoError(t, err)
	return b
}

func pattern(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)*7 + seed
	}
	return out
}

func TestBufferRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		size   uint64
		offset uint64
		n      int
	}{
		{"single chunk", 1024, 0, 256},
		{"chunked", 64, 16, 200},
		{"exact fit", 64, 64, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newDevice(t)
			s := newStaging(t, dev, null.FamilyUniversal, WithSize(tt.size))
			dst := localBuffer(t, dev, 512)
			data := pattern(tt.n, 3)

			require.NoError(t, s.UploadBuffer(t.Context(), dst, tt.offset, data, VertexInput))
			got := make([]byte, tt.n)
			require.NoError(t, s.DownloadBuffer(t.Context(), dst, tt.offset, got))
			assert.Equal(t, data, got)
		})
	}
}

func TestTransferQueue(t *testing.T) {
	dev := newDevice(t)
	s := newStaging(t, dev, null.FamilyTransfer)
	dst := localBuffer(t, dev, 64)
	data := pattern(64, 9)
	require.NoError(t, s.UploadBuffer(t.Context(), dst, 0, data, Use{}))
	got := make([]byte, 64)
	require.NoError(t, s.DownloadBuffer(t.Context(), dst, 0, got))
	assert.Equal(t, data, got)
}

func TestBufferRangeErrors(t *testing.T) {
	dev := newDevice(t)
	s := newStaging(t, dev, null.FamilyUniversal)
	dst := localBuffer(t, dev, 64)

	assert.ErrorIs(t, s.UploadBuffer(t.Context(), dst, 2, pattern(8, 0), Use{}), gal.ErrInvalidArgument)
	assert.ErrorIs(t, s.UploadBuffer(t.Context(), dst, 0, pattern(6, 0), Use{}), gal.ErrInvalidArgument)
	assert.ErrorIs(t, s.UploadBuffer(t.Context(), dst, 60, pattern(8, 0), Use{}), gal.ErrInvalidArgument)
	assert.ErrorIs(t, s.DownloadBuffer(t.Context(), dst, 0, nil), gal.ErrInvalidArgument)

	s.Destroy()
	assert.ErrorIs(t, s.UploadBuffer(t.Context(), dst, 0, pattern(8, 0), Use{}), ErrClosed)
	s.Destroy()
}

func TestCanceledContext(t *testing.T) {
	dev := newDevice(t)
	s := newStaging(t, dev, null.FamilyUniversal)
	dst := localBuffer(t, dev, 64)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, s.UploadBuffer(ctx, dst, 0, pattern(64, 0), Use{}), context.Canceled)

	// The staging buffer stays usable.
	require.NoError(t, s.UploadBuffer(t.Context(), dst, 0, pattern(64, 0), Use{}))
}

func newImage(t *testing.T, dev gal.Device, format gal.Format, w, h uint32) gal.Image {
	t.Helper()
	img, err := dev.CreateImage(gal.ImageCreateInfo{
		Label:       "texture",
		Type:        gal.ImageType2D,
		Format:      format,
		Extent:      gal.Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Usage:       gal.ImageUsageSampled | gal.ImageUsageTransferSrc | gal.ImageUsageTransferDst,
	})
	require.NoError(t, err)
	return img
}

func TestImageRoundTrip(t *testing.T) {
	dev := newDevice(t)
	s := newStaging(t, dev, null.FamilyUniversal)
	img := newImage(t, dev, gal.FormatRGBA8Unorm, 5, 3)
	data := pattern(5*3*4, 1)

	whole := Whole(img)
	require.NoError(t, s.UploadImage(t.Context(), img, whole, data, gal.ImageLayoutUndefined, gal.ImageLayoutShaderReadOnlyOptimal))
	got := make([]byte, len(data))
	require.NoError(t, s.DownloadImage(t.Context(), img, whole, gal.ImageLayoutShaderReadOnlyOptimal, got))
	assert.Equal(t, data, got)

	// Overwrite the middle texel of the second row.
	texel := Region{
		Layers: whole.Layers,
		Offset: gal.Offset3D{X: 2, Y: 1},
		Extent: gal.Extent3D{Width: 1, Height: 1, Depth: 1},
	}
	require.NoError(t, s.UploadImage(t.Context(), img, texel, []byte{1, 2, 3, 4}, gal.ImageLayoutShaderReadOnlyOptimal, gal.ImageLayoutShaderReadOnlyOptimal))
	require.NoError(t, s.DownloadImage(t.Context(), img, whole, gal.ImageLayoutShaderReadOnlyOptimal, got))
	at := (1*5 + 2) * 4
	copy(data[at:], []byte{1, 2, 3, 4})
	assert.Equal(t, data, got)
}

func TestImageSizeErrors(t *testing.T) {
	dev := newDevice(t)
	s := newStaging(t, dev, null.FamilyUniversal, WithSize(64))
	img := newImage(t, dev, gal.FormatRGBA8Unorm, 8, 8)

	err := s.UploadImage(t.Context(), img, Whole(img), pattern(10, 0), gal.ImageLayoutUndefined, gal.ImageLayoutShaderReadOnlyOptimal)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	err = s.UploadImage(t.Context(), img, Whole(img), pattern(8*8*4, 0), gal.ImageLayoutUndefined, gal.ImageLayoutShaderReadOnlyOptimal)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestConcurrentStagingBuffers(t *testing.T) {
	dev := newDevice(t)
	dst := localBuffer(t, dev, 512)
	const workers = 4
	stagings := make([]*Buffer, workers)
	for i := range stagings {
		stagings[i] = newStaging(t, dev, null.FamilyUniversal, WithSize(32), WithLabel(fmt.Sprintf("staging %d", i)))
	}

	g, ctx := errgroup.WithContext(t.Context())
	for i, s := range stagings {
		g.Go(func() error {
			offset := uint64(i) * 128
			data := pattern(128, byte(i))
			if err := s.UploadBuffer(ctx, dst, offset, data, ShaderRead); err != nil {
				return err
			}
			got := make([]byte, len(data))
			if err := s.DownloadBuffer(ctx, dst, offset, got); err != nil {
				return err
			}
			if !bytes.Equal(data, got) {
				return fmt.Errorf("worker %d: read back %x", i, got)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
