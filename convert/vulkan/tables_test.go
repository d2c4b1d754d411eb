// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"errors"
	"math/bits"
	"math/rand/v2"
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/internal/table"
)

type enum interface {
	~uint32
	Valid() bool
	String() string
}

// roundTrip checks every defined enumerator, so a value added to gal
// without a table entry fails here.
func roundTrip[A enum, N comparable](t *testing.T, to func(A) N, back func(N) A) {
	t.Helper()
	for v := A(0); v.Valid(); v++ {
		if got := back(to(v)); got != v {
			t.Errorf("back(to(%s)) = %s", v, got)
		}
	}
}

type flag interface {
	~uint32
	String() string
}

// compose checks that converting a mask equals the OR of converting its
// bits, for every bit and random combinations.
func compose[A flag, N table.Native](t *testing.T, all A, to func(A) N, back func(N) A) {
	t.Helper()
	if to(0) != 0 || back(0) != 0 {
		t.Fatalf("zero mask does not convert to zero")
	}
	rng := rand.New(rand.NewPCG(7, uint64(all)))
	for i := 0; i < 256; i++ {
		m := A(rng.Uint32()) & all
		if i < bits.Len32(uint32(all)) {
			m = A(1<<i) & all
		}
		var want N
		for v := uint32(m); v != 0; v &= v - 1 {
			want |= to(A(v & -v))
		}
		if got := to(m); got != want {
			t.Errorf("to(%s) = %#x, want OR of bits %#x", m, uint64(got), uint64(want))
		}
		if got := back(to(m)); got != m {
			t.Errorf("back(to(%s)) = %s", m, got)
		}
	}
}

func TestEnumRoundTrip(t *testing.T) {
	t.Run("CompareOp", func(t *testing.T) { roundTrip(t, CompareOp, CompareOpBack) })
	t.Run("BlendFactor", func(t *testing.T) { roundTrip(t, BlendFactor, BlendFactorBack) })
	t.Run("BlendOp", func(t *testing.T) { roundTrip(t, BlendOp, BlendOpBack) })
	t.Run("LogicOp", func(t *testing.T) { roundTrip(t, LogicOp, LogicOpBack) })
	t.Run("StencilOp", func(t *testing.T) { roundTrip(t, StencilOp, StencilOpBack) })
	t.Run("ImageLayout", func(t *testing.T) { roundTrip(t, ImageLayout, ImageLayoutBack) })
	t.Run("AttachmentLoadOp", func(t *testing.T) { roundTrip(t, AttachmentLoadOp, AttachmentLoadOpBack) })
	t.Run("AttachmentStoreOp", func(t *testing.T) { roundTrip(t, AttachmentStoreOp, AttachmentStoreOpBack) })
	t.Run("PrimitiveTopology", func(t *testing.T) { roundTrip(t, PrimitiveTopology, PrimitiveTopologyBack) })
	t.Run("PolygonMode", func(t *testing.T) { roundTrip(t, PolygonMode, PolygonModeBack) })
	t.Run("FrontFace", func(t *testing.T) { roundTrip(t, FrontFace, FrontFaceBack) })
	t.Run("Filter", func(t *testing.T) { roundTrip(t, Filter, FilterBack) })
	t.Run("MipmapMode", func(t *testing.T) { roundTrip(t, MipmapMode, MipmapModeBack) })
	t.Run("AddressMode", func(t *testing.T) { roundTrip(t, AddressMode, AddressModeBack) })
	t.Run("BorderColor", func(t *testing.T) { roundTrip(t, BorderColor, BorderColorBack) })
	t.Run("IndexType", func(t *testing.T) { roundTrip(t, IndexType, IndexTypeBack) })
	t.Run("VertexInputRate", func(t *testing.T) { roundTrip(t, VertexInputRate, VertexInputRateBack) })
	t.Run("DescriptorType", func(t *testing.T) { roundTrip(t, DescriptorType, DescriptorTypeBack) })
	t.Run("ImageType", func(t *testing.T) { roundTrip(t, ImageType, ImageTypeBack) })
	t.Run("ImageViewType", func(t *testing.T) { roundTrip(t, ImageViewType, ImageViewTypeBack) })
	t.Run("ImageTiling", func(t *testing.T) { roundTrip(t, ImageTiling, ImageTilingBack) })
	t.Run("DynamicState", func(t *testing.T) { roundTrip(t, DynamicState, DynamicStateBack) })
	t.Run("PipelineBindPoint", func(t *testing.T) { roundTrip(t, PipelineBindPoint, PipelineBindPointBack) })
	t.Run("PhysicalDeviceType", func(t *testing.T) { roundTrip(t, PhysicalDeviceType, PhysicalDeviceTypeBack) })
	t.Run("Format", func(t *testing.T) { roundTrip(t, Format, FormatBack) })
}

func TestFlagsCompose(t *testing.T) {
	t.Run("BufferUsage", func(t *testing.T) { compose(t, gal.BufferUsageAll, BufferUsage, BufferUsageBack) })
	t.Run("ImageUsage", func(t *testing.T) { compose(t, gal.ImageUsageAll, ImageUsage, ImageUsageBack) })
	t.Run("MemoryProperty", func(t *testing.T) { compose(t, gal.MemoryPropertyAll, MemoryProperty, MemoryPropertyBack) })
	t.Run("ShaderStage", func(t *testing.T) { compose(t, gal.ShaderStageAll, ShaderStage, ShaderStageBack) })
	t.Run("PipelineStage", func(t *testing.T) { compose(t, gal.PipelineStageAll, PipelineStage, PipelineStageBack) })
	t.Run("Access", func(t *testing.T) { compose(t, gal.AccessAll, Access, AccessBack) })
	t.Run("ColorComponent", func(t *testing.T) { compose(t, gal.ColorComponentAll, ColorComponent, ColorComponentBack) })
	t.Run("ImageAspect", func(t *testing.T) { compose(t, gal.ImageAspectAll, ImageAspect, ImageAspectBack) })
	t.Run("FormatFeature", func(t *testing.T) { compose(t, gal.FormatFeatureAll, FormatFeature, FormatFeatureBack) })
	t.Run("CommandBufferUsage", func(t *testing.T) {
		compose(t, gal.CommandBufferUsageAll, CommandBufferUsage, CommandBufferUsageBack)
	})
	t.Run("SampleCount", func(t *testing.T) { compose(t, gal.SampleCountAll, SampleCounts, SampleCountsBack) })
	t.Run("CullMode", func(t *testing.T) { compose(t, gal.CullModeAll, CullMode, CullModeBack) })
	t.Run("Queue", func(t *testing.T) { compose(t, gal.QueueAll, Queue, QueueBack) })
	t.Run("Dependency", func(t *testing.T) { compose(t, gal.DependencyAll, Dependency, DependencyBack) })
}

// Spot checks against the values published in vulkan_core.h.
func TestPublishedValues(t *testing.T) {
	tests := []struct {
		name      string
		got, want int64
	}{
		{"CompareOpAlways", int64(CompareOp(gal.CompareOpAlways)), 7},
		{"BlendFactorSrcAlphaSaturate", int64(BlendFactor(gal.BlendFactorSrcAlphaSaturate)), 14},
		{"StencilOpDecrementAndWrap", int64(StencilOp(gal.StencilOpDecrementAndWrap)), 7},
		{"ImageLayoutPresentSrc", int64(ImageLayout(gal.ImageLayoutPresentSrc)), 1000001002},
		{"DescriptorTypeInputAttachment", int64(DescriptorType(gal.DescriptorTypeInputAttachment)), 10},
		{"PrimitiveTopologyPatchList", int64(PrimitiveTopology(gal.PrimitiveTopologyPatchList)), 10},
		{"FormatRGBA8Unorm", int64(Format(gal.FormatRGBA8Unorm)), 37},
		{"FormatBGRA8Srgb", int64(Format(gal.FormatBGRA8Srgb)), 50},
		{"FormatD32Float", int64(Format(gal.FormatD32Float)), 126},
		{"FormatBC7RGBAUnorm", int64(Format(gal.FormatBC7RGBAUnorm)), 145},
		{"BufferUsageVertex", int64(BufferUsage(gal.BufferUsageVertex)), 0x80},
		{"AccessMemoryWrite", int64(Access(gal.AccessMemoryWrite)), 0x10000},
		{"PipelineStageAllCommands", int64(PipelineStage(gal.PipelineStageAllCommands)), 0x10000},
		{"FormatFeatureTransferDst", int64(FormatFeature(gal.FormatFeatureTransferDst)), 0x8000},
		{"SampleCount64", int64(SampleCounts(gal.SampleCount64)), 0x40},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestUnmappedValuesPanic(t *testing.T) {
	cases := map[string]func(){
		"enum":        func() { CompareOp(gal.CompareOp(100)) },
		"native enum": func() { FormatBack(vk.Format(1000)) },
		"flag bit":    func() { BufferUsage(gal.BufferUsageFlags(1 << 20)) },
		"native bit":  func() { CullModeBack(vk.CullModeFlags(0x100)) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, gal.ErrInvalidArgument) {
					t.Fatalf("recover() = %v, want ErrInvalidArgument", err)
				}
			}()
			fn()
		})
	}
}

func TestSampleCountSingle(t *testing.T) {
	if got := SampleCount(gal.SampleCount4); got != vk.SampleCount4Bit {
		t.Errorf("SampleCount(4) = %v", got)
	}
	if !HasFormat(vk.FormatR8g8b8a8Unorm) || HasFormat(vk.FormatR64Sfloat) {
		t.Error("HasFormat mismatch")
	}
}
