package wgpu

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/alloc"
)

func TestRendererOnNoopBackend(t *testing.T) {
	r := newTestRenderer(t)
	assert.Equal(t, Name, r.Name())
	require.Equal(t, 1, r.PhysicalDeviceCount())

	pd, err := r.PhysicalDevice(0)
	require.NoError(t, err)
	props := pd.Properties()
	assert.Equal(t, "Noop Adapter", props.Name)
	assert.True(t, strings.HasPrefix(props.Backend, ID+"/"), props.Backend)
	assert.Zero(t, pd.Limits().MaxPushConstantsSize)
	assert.Equal(t, uint32(1), pd.Limits().MaxViewports)

	rgba := pd.FormatProperties(gal.FormatRGBA8Unorm)
	assert.True(t, rgba.Optimal.Has(gal.FormatFeatureColorAttachment|gal.FormatFeatureSampledImage))
	assert.Zero(t, rgba.Linear, "WebGPU has no linear tiling")

	_, err = r.PhysicalDevice(1)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestProviderMustExposeHAL(t *testing.T) {
	_, err := NewRendererFromProvider(testConfig(t), plainProvider{})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)

	d, _, _ := newSpyDevice(t)
	props := d.PhysicalDevice().Properties()
	assert.Equal(t, "test provider", props.Name)
	assert.Equal(t, gal.PhysicalDeviceTypeDiscreteGPU, props.Type)
}

type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return nil }
func (plainProvider) Queue() gpucontext.Queue               { return nil }
func (plainProvider) Adapter() gpucontext.Adapter           { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (plainProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestSingleQueue(t *testing.T) {
	pd, err := newTestRenderer(t).PhysicalDevice(0)
	require.NoError(t, err)
	_, err = pd.CreateDevice(gal.DeviceCreateInfo{Queues: []gal.QueueCreateInfo{{Family: FamilyUniversal, Count: 2}}})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = pd.CreateDevice(gal.DeviceCreateInfo{Queues: []gal.QueueCreateInfo{{Family: 1, Count: 1}}})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)

	d := newTestDevice(t)
	q, err := d.Queue(FamilyUniversal, 0)
	require.NoError(t, err)
	assert.True(t, q.Flags().Has(gal.QueueGraphics|gal.QueueCompute|gal.QueueTransfer))
	_, err = d.Queue(FamilyUniversal, 1)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = d.CreateCommandBuffer(gal.CommandBufferCreateInfo{Family: 1})
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestBufferMapping(t *testing.T) {
	d := newTestDevice(t)
	b := hostBuffer(t, d, "host", 64)
	m, err := b.Map(0, gal.WholeSize)
	require.NoError(t, err)
	require.Len(t, m, 64)
	copy(m, "hello")
	_, err = b.Map(0, 4)
	assert.ErrorIs(t, err, gal.ErrInvalidState)
	require.NoError(t, b.Unmap())
	assert.ErrorIs(t, b.Unmap(), gal.ErrInvalidState)

	m, err = b.Map(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(m))
	require.NoError(t, b.Unmap())
	_, err = b.Map(60, 8)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
	_, err = b.Map(8, math.MaxUint64-3)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)

	local, err := d.CreateBuffer(gal.BufferCreateInfo{Label: "local", Size: 64, Usage: gal.BufferUsageVertex})
	require.NoError(t, err)
	_, err = local.Map(0, gal.WholeSize)
	assert.ErrorIs(t, err, gal.ErrInvalidState)

	assert.NotZero(t, heapStats(t, d, MemoryHostVisible).InUse)
	b.Destroy()
	assert.Zero(t, heapStats(t, d, MemoryHostVisible).InUse)
	_, err = d.HeapStats(99)
	assert.ErrorIs(t, err, gal.ErrInvalidArgument)
}

func TestUnsupportedCapabilities(t *testing.T) {
	d := newTestDevice(t)

	_, err := d.CreateBuffer(gal.BufferCreateInfo{Size: 64, Usage: gal.BufferUsageUniformTexel})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)

	_, err = d.CreateImage(gal.ImageCreateInfo{
		Type:        gal.ImageType2D,
		Format:      gal.FormatRGBA8Unorm,
		Extent:      gal.Extent3D{Width: 4, Height: 4, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Usage:       gal.ImageUsageSampled,
		Memory:      gal.MemoryPropertyHostVisible,
	})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)

	_, err = d.CreateSampler(gal.SamplerCreateInfo{AddressModeU: gal.AddressModeClampToBorder, MaxLod: 1})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)
	_, err = d.CreateSampler(gal.SamplerCreateInfo{MipLodBias: 0.5, MaxLod: 1})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)

	_, err = d.CreateDescriptorSetLayout(gal.DescriptorSetLayoutCreateInfo{Bindings: []gal.DescriptorSetLayoutBinding{
		{Binding: 0, Type: gal.DescriptorTypeCombinedImageSampler, Count: 1, Stages: gal.ShaderStageFragment},
	}})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)
	_, err = d.CreateDescriptorSetLayout(gal.DescriptorSetLayoutCreateInfo{Bindings: []gal.DescriptorSetLayoutBinding{
		{Binding: 0, Type: gal.DescriptorTypeUniformBuffer, Count: 4, Stages: gal.ShaderStageVertex},
	}})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)

	_, err = d.CreatePipelineLayout(gal.PipelineLayoutCreateInfo{PushConstants: []gal.PushConstantRange{
		{Stages: gal.ShaderStageVertex, Offset: 0, Size: 16},
	}})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)

	color := gal.AttachmentDescription{Format: gal.FormatRGBA8Unorm, Samples: gal.SampleCount1, FinalLayout: gal.ImageLayoutColorAttachmentOptimal}
	ref := []gal.AttachmentReference{{Attachment: 0, Layout: gal.ImageLayoutColorAttachmentOptimal}}
	_, err = d.CreateRenderPass(gal.RenderPassCreateInfo{
		Attachments: []gal.AttachmentDescription{color},
		Subpasses: []gal.SubpassDescription{
			{BindPoint: gal.PipelineBindPointGraphics, ColorAttachments: ref},
			{BindPoint: gal.PipelineBindPointGraphics, ColorAttachments: ref},
		},
	})
	assert.ErrorIs(t, err, gal.ErrUnsupportedCapability)
}

func TestEqualSamplersShareHALSampler(t *testing.T) {
	d := newTestDevice(t)
	linear := gal.SamplerCreateInfo{MagFilter: gal.FilterLinear, MinFilter: gal.FilterLinear, MaxLod: 4}

	a, err := d.CreateSampler(withLabel(linear, "a"))
	require.NoError(t, err)
	b, err := d.CreateSampler(withLabel(linear, "b"))
	require.NoError(t, err)
	assert.Equal(t, 1, d.SharedSamplers())
	assert.Equal(t, "b", b.Info().Label)

	nearest, err := d.CreateSampler(gal.SamplerCreateInfo{MaxLod: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, d.SharedSamplers())

	a.Destroy()
	assert.Equal(t, 2, d.SharedSamplers())
	b.Destroy()
	assert.Equal(t, 1, d.SharedSamplers())
	nearest.Destroy()
	assert.Zero(t, d.SharedSamplers())
}

func withLabel(info gal.SamplerCreateInfo, label string) gal.SamplerCreateInfo {
	info.Label = label
	return info
}

func TestDestroyReportsLeaks(t *testing.T) {
	pd, err := newTestRenderer(t).PhysicalDevice(0)
	require.NoError(t, err)
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{Label: "leaky"})
	require.NoError(t, err)
	d := dev.(*Device)

	kept := hostBuffer(t, d, "kept", 64)
	hostBuffer(t, d, "gone", 64).Destroy()
	fence, err := d.CreateFence(false)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Destroy(), gal.ErrInvalidState)
	assert.True(t, kept.Destroyed())
	assert.True(t, fence.Destroyed())
	assert.Empty(t, d.Tracked())
	assert.Zero(t, heapStats(t, d, MemoryHostVisible).InUse)

	assert.NoError(t, d.Destroy())
	_, err = d.CreateBuffer(gal.BufferCreateInfo{Size: 64, Usage: gal.BufferUsageVertex})
	assert.ErrorIs(t, err, gal.ErrInvalidState)
}

func heapStats(t *testing.T, d *Device, i uint32) alloc.Stats {
	t.Helper()
	st, err := d.HeapStats(i)
	require.NoError(t, err)
	return st
}
