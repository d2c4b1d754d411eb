// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package null is a host-memory implementation of the gal interfaces.
//
// Resources live in Go memory, command buffers are validated by the shared
// recorder and replayed on a worker goroutine per queue. Transfers and
// attachment clears are executed; draws and dispatches are only logged.
// Every submission is recorded in the device's execution log, which tests
// use to check the ordering established by semaphores and fences.
//
// Register the backend with a registry:
//
//	reg, _ := gal.NewRegistry(null.Plugin())
//	r, _ := reg.CreateRenderer("null")
package null

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gal"
)

// ID is the plugin ID of the backend.
const ID = "null"

// Name is the human readable backend name.
const Name = "Test"

// Plugin returns the registry entry of the backend. Its priority is the
// lowest of the built-in backends so that Default prefers real devices.
func Plugin() gal.Plugin {
	return gal.Plugin{
		ID:              ID,
		Name:            Name,
		RequiredVersion: "^1.0.0",
		Priority:        -100,
		Create: func(cfg gal.Config) (gal.Renderer, error) {
			return NewRenderer(cfg)
		},
	}
}

// Renderer exposes a single host physical device.
type Renderer struct {
	cfg gal.Config
	log *slog.Logger
	pd  *PhysicalDevice
}

// NewRenderer returns a renderer using cfg for heap sizes and logging.
func NewRenderer(cfg gal.Config) (*Renderer, error) {
	if cfg.HeapSize == 0 {
		cfg.HeapSize = gal.DefaultHeapSize
	}
	if cfg.HeapGranularity == 0 {
		cfg.HeapGranularity = gal.DefaultHeapGranularity
	}
	if cfg.FenceTimeout == 0 {
		cfg.FenceTimeout = gal.DefaultFenceTimeout
	}
	r := &Renderer{cfg: cfg, log: cfg.Log()}
	r.pd = &PhysicalDevice{r: r, formats: formatTable()}
	r.log.Info("gal: renderer created", slog.String("backend", ID), slog.String("app", cfg.AppName))
	return r, nil
}

// Name returns "Test".
func (r *Renderer) Name() string { return Name }

// PhysicalDeviceCount returns 1.
func (r *Renderer) PhysicalDeviceCount() int { return 1 }

// PhysicalDevice returns the host device.
func (r *Renderer) PhysicalDevice(i int) (gal.PhysicalDevice, error) {
	if i != 0 {
		return nil, fmt.Errorf("gal: null renderer: physical device %d of 1: %w", i, gal.ErrInvalidArgument)
	}
	return r.pd, nil
}

// Destroy is a no-op; devices are destroyed individually.
func (r *Renderer) Destroy() {}

// Queue families of the host device.
const (
	FamilyUniversal uint32 = iota
	FamilyTransfer
)

// Memory type indices of the host device.
const (
	MemoryDeviceLocal uint32 = iota
	MemoryHostVisible
	MemoryHostCached
)

// PhysicalDevice describes the host device.
type PhysicalDevice struct {
	r       *Renderer
	formats map[gal.Format]gal.FormatProperties
}

// Properties identifies the device.
func (pd *PhysicalDevice) Properties() gal.PhysicalDeviceProperties {
	return gal.PhysicalDeviceProperties{
		Name:       "gal null device",
		Type:       gal.PhysicalDeviceTypeCPU,
		VendorID:   0x10005, // Mesa's CPU vendor ID
		Driver:     "gal/null",
		Backend:    ID,
		APIVersion: gal.APIVersion,
	}
}

// Limits returns fixed limits in the range of a desktop driver.
func (pd *PhysicalDevice) Limits() gal.Limits {
	return gal.Limits{
		MaxImageDimension1D:            16384,
		MaxImageDimension2D:            16384,
		MaxImageDimension3D:            2048,
		MaxImageArrayLayers:            2048,
		MaxBufferSize:                  pd.r.cfg.HeapSize / 2,
		MaxBoundDescriptorSets:         8,
		MaxDescriptorSetBindings:       64,
		MaxUniformBufferRange:          65536,
		MinUniformBufferOffsetAlign:    256,
		MinStorageBufferOffsetAlign:    32,
		MaxPushConstantsSize:           256,
		MaxVertexInputBindings:         16,
		MaxVertexInputAttributes:       32,
		MaxColorAttachments:            8,
		MaxFrameBufferWidth:            16384,
		MaxFrameBufferHeight:           16384,
		MaxFrameBufferLayers:           2048,
		MaxComputeWorkGroupCount:       [3]uint32{65535, 65535, 65535},
		MaxComputeWorkGroupSize:        [3]uint32{1024, 1024, 64},
		MaxViewports:                   16,
		FrameBufferColorSampleCounts:   gal.SampleCount1 | gal.SampleCount4,
		FrameBufferDepthSampleCounts:   gal.SampleCount1 | gal.SampleCount4,
		BufferImageGranularity:         1,
		NonCoherentAtomSize:            64,
		OptimalBufferCopyOffsetAlign:   4,
		OptimalBufferCopyRowPitchAlign: 1,
	}
}

// QueueFamilies returns a universal family of two queues and a transfer
// family of one.
func (pd *PhysicalDevice) QueueFamilies() []gal.QueueFamilyProperties {
	return []gal.QueueFamilyProperties{
		FamilyUniversal: {Flags: gal.QueueGraphics | gal.QueueCompute | gal.QueueTransfer, Count: 2},
		FamilyTransfer:  {Flags: gal.QueueTransfer, Count: 1},
	}
}

// MemoryProperties returns one device-local heap and one host heap.
func (pd *PhysicalDevice) MemoryProperties() gal.MemoryProperties {
	size := pd.r.cfg.HeapSize
	return gal.MemoryProperties{
		Types: []gal.MemoryType{
			MemoryDeviceLocal: {Properties: gal.MemoryPropertyDeviceLocal, Heap: 0},
			MemoryHostVisible: {Properties: gal.MemoryPropertyHostVisible | gal.MemoryPropertyHostCoherent, Heap: 1},
			MemoryHostCached:  {Properties: gal.MemoryPropertyHostVisible | gal.MemoryPropertyHostCoherent | gal.MemoryPropertyHostCached, Heap: 1},
		},
		Heaps: []gal.MemoryHeap{
			{Size: size, DeviceLocal: true},
			{Size: size},
		},
	}
}

// FormatProperties returns the features of f.
func (pd *PhysicalDevice) FormatProperties(f gal.Format) gal.FormatProperties {
	return pd.formats[f]
}

// ImageFormatSupported checks info against the format table.
func (pd *PhysicalDevice) ImageFormatSupported(info gal.ImageCreateInfo) error {
	return gal.CheckFormatFeatures(pd.FormatProperties(info.Format), info)
}

// CreateDevice creates a logical device with the requested queues.
func (pd *PhysicalDevice) CreateDevice(info gal.DeviceCreateInfo) (gal.Device, error) {
	return newDevice(pd, info)
}

// formatTable lists what the host device supports. Packed formats are
// sampled only because clears cannot encode them.
func formatTable() map[gal.Format]gal.FormatProperties {
	const transfer = gal.FormatFeatureTransferSrc | gal.FormatFeatureTransferDst | gal.FormatFeatureBlitSrc
	out := make(map[gal.Format]gal.FormatProperties)
	for _, f := range gal.Formats() {
		info := f.Info()
		var p gal.FormatProperties
		switch {
		case f.IsCompressed():
			p.Optimal = gal.FormatFeatureSampledImage | gal.FormatFeatureSampledImageFilterLinear | transfer
		case f.IsDepthStencil():
			p.Optimal = gal.FormatFeatureSampledImage | gal.FormatFeatureDepthStencilAttachment | transfer
			p.SampleCounts = gal.SampleCount1 | gal.SampleCount4
		case !encodable(f):
			p.Optimal = gal.FormatFeatureSampledImage | gal.FormatFeatureSampledImageFilterLinear | transfer
			p.Linear = p.Optimal
			p.Buffer = gal.FormatFeatureVertexBuffer
		default:
			p.Optimal = gal.FormatFeatureSampledImage | gal.FormatFeatureStorageImage |
				gal.FormatFeatureColorAttachment | gal.FormatFeatureBlitDst | transfer
			if f.Class() == gal.NumericFloat {
				p.Optimal |= gal.FormatFeatureColorAttachmentBlend | gal.FormatFeatureSampledImageFilterLinear
			}
			p.Linear = gal.FormatFeatureSampledImage | transfer
			p.Buffer = gal.FormatFeatureVertexBuffer | gal.FormatFeatureUniformTexelBuffer
			if info.Components != 3 {
				p.Buffer |= gal.FormatFeatureStorageTexelBuffer
			}
			p.SampleCounts = gal.SampleCount1 | gal.SampleCount4
		}
		out[f] = p
	}
	return out
}
