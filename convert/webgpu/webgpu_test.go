// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gal"
)

type enum interface {
	~uint32
	Valid() bool
	String() string
}

func all[A enum](A) bool { return true }

// roundTrip checks every defined enumerator the backend supports and
// that unsupported ones panic.
func roundTrip[A enum, N comparable](t *testing.T, supports func(A) bool, to func(A) N, back func(N) A) {
	t.Helper()
	for v := A(0); v.Valid(); v++ {
		if !supports(v) {
			if !panics(func() { to(v) }) {
				t.Errorf("to(%s) did not panic", v)
			}
			continue
		}
		if got := back(to(v)); got != v {
			t.Errorf("back(to(%s)) = %s", v, got)
		}
	}
}

func panics(f func()) (ok bool) {
	defer func() { ok = recover() != nil }()
	f()
	return false
}

func TestEnumRoundTrip(t *testing.T) {
	t.Run("CompareOp", func(t *testing.T) { roundTrip(t, all, CompareOp, CompareOpBack) })
	t.Run("BlendFactor", func(t *testing.T) { roundTrip(t, SupportsBlendFactor, BlendFactor, BlendFactorBack) })
	t.Run("BlendOp", func(t *testing.T) { roundTrip(t, all, BlendOp, BlendOpBack) })
	t.Run("StencilOp", func(t *testing.T) { roundTrip(t, all, StencilOp, StencilOpBack) })
	t.Run("StoreOp", func(t *testing.T) { roundTrip(t, all, StoreOp, StoreOpBack) })
	t.Run("PrimitiveTopology", func(t *testing.T) {
		roundTrip(t, SupportsPrimitiveTopology, PrimitiveTopology, PrimitiveTopologyBack)
	})
	t.Run("FrontFace", func(t *testing.T) { roundTrip(t, all, FrontFace, FrontFaceBack) })
	t.Run("Filter", func(t *testing.T) { roundTrip(t, all, Filter, FilterBack) })
	t.Run("MipmapMode", func(t *testing.T) { roundTrip(t, all, MipmapMode, MipmapModeBack) })
	t.Run("AddressMode", func(t *testing.T) { roundTrip(t, SupportsAddressMode, AddressMode, AddressModeBack) })
	t.Run("IndexType", func(t *testing.T) { roundTrip(t, all, IndexType, IndexTypeBack) })
	t.Run("VertexInputRate", func(t *testing.T) { roundTrip(t, all, VertexInputRate, VertexInputRateBack) })
	t.Run("ImageType", func(t *testing.T) { roundTrip(t, all, ImageType, ImageTypeBack) })
	t.Run("ImageViewType", func(t *testing.T) {
		roundTrip(t, SupportsImageViewType, ImageViewType, ImageViewTypeBack)
	})
	t.Run("PhysicalDeviceType", func(t *testing.T) {
		roundTrip(t, all, PhysicalDeviceType, PhysicalDeviceTypeBack)
	})
	t.Run("Format", func(t *testing.T) { roundTrip(t, SupportsFormat, Format, FormatBack) })
	t.Run("VertexFormat", func(t *testing.T) { roundTrip(t, SupportsVertexFormat, VertexFormat, VertexFormatBack) })
}

func TestLoadOpDontCareClears(t *testing.T) {
	if got := LoadOp(gal.AttachmentLoadOpDontCare); got != gputypes.LoadOpClear {
		t.Errorf("LoadOp(DontCare) = %v, want Clear", got)
	}
	if got := LoadOpBack(LoadOp(gal.AttachmentLoadOpLoad)); got != gal.AttachmentLoadOpLoad {
		t.Errorf("Load round trip = %s", got)
	}
}

func TestFlags(t *testing.T) {
	for m := gal.ColorComponentFlags(0); m <= gal.ColorComponentAll; m++ {
		if got := ColorComponentBack(ColorComponent(m)); got != m {
			t.Errorf("color mask %s round trip = %s", m, got)
		}
	}
	if got := ColorComponent(gal.ColorComponentAll); got != gputypes.ColorWriteMaskAll {
		t.Errorf("ColorComponent(All) = %#x", got)
	}

	stages := gal.ShaderStageVertex | gal.ShaderStageFragment
	if got := ShaderStage(stages); got != gputypes.ShaderStageVertex|gputypes.ShaderStageFragment {
		t.Errorf("ShaderStage(vertex|fragment) = %#x", got)
	}
	if SupportsShaderStage(gal.ShaderStageGeometry) {
		t.Error("geometry stage reported as supported")
	}

	usage := gal.BufferUsageVertex | gal.BufferUsageTransferDst
	if got := BufferUsage(usage); got != gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst {
		t.Errorf("BufferUsage = %#x", got)
	}
	if got := BufferUsageBack(gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst); got != gal.BufferUsageTransferDst {
		t.Errorf("BufferUsageBack ignoring map bits = %s", got)
	}
	if SupportsBufferUsage(gal.BufferUsageUniformTexel) {
		t.Error("texel buffer reported as supported")
	}
}

func TestImageUsage(t *testing.T) {
	tests := []struct {
		in   gal.ImageUsageFlags
		want gputypes.TextureUsage
	}{
		{gal.ImageUsageSampled, gputypes.TextureUsageTextureBinding},
		{gal.ImageUsageColorAttachment | gal.ImageUsageDepthStencilAttachment, gputypes.TextureUsageRenderAttachment},
		{gal.ImageUsageInputAttachment | gal.ImageUsageTransientAttachment | gal.ImageUsageColorAttachment,
			gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment},
		{gal.ImageUsageTransferSrc | gal.ImageUsageStorage, gputypes.TextureUsageCopySrc | gputypes.TextureUsageStorageBinding},
	}
	for _, tt := range tests {
		if got := ImageUsage(tt.in); got != tt.want {
			t.Errorf("ImageUsage(%s) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestAspectAndCull(t *testing.T) {
	if got := ImageAspect(gal.ImageAspectDepth | gal.ImageAspectStencil); got != gputypes.TextureAspectAll {
		t.Errorf("depth|stencil aspect = %v", got)
	}
	if got := ImageAspect(gal.ImageAspectStencil); got != gputypes.TextureAspectStencilOnly {
		t.Errorf("stencil aspect = %v", got)
	}
	if SupportsCullMode(gal.CullModeFrontAndBack) {
		t.Error("front-and-back culling reported as supported")
	}
	if got := CullModeBack(CullMode(gal.CullModeBack)); got != gal.CullModeBack {
		t.Errorf("cull round trip = %s", got)
	}
}

func TestPublishedValues(t *testing.T) {
	tests := []struct {
		name      string
		got, want uint64
	}{
		{"RGBA8Unorm", uint64(Format(gal.FormatRGBA8Unorm)), 0x16},
		{"BGRA8Srgb", uint64(Format(gal.FormatBGRA8Srgb)), 0x1C},
		{"D24UnormS8Uint", uint64(Format(gal.FormatD24UnormS8Uint)), 0x2F},
		{"BC7", uint64(Format(gal.FormatBC7RGBAUnorm)), 0x3E},
		{"Float32x3", uint64(VertexFormat(gal.FormatRGB32Float)), 0x15},
		{"CompareAlways", uint64(CompareOp(gal.CompareOpAlways)), 8},
		{"StencilDecrementWrap", uint64(StencilOp(gal.StencilOpDecrementAndWrap)), 8},
		{"TriangleList", uint64(PrimitiveTopology(gal.PrimitiveTopologyTriangleList)), 0},
		{"BufferIndirect", uint64(BufferUsage(gal.BufferUsageIndirect)), 0x100},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %#x, want %#x", tt.name, tt.got, tt.want)
		}
	}
}
