package wgpu

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/gal"
)

// ID is the plugin ID of the backend.
const ID = "wgpu"

// Name is the human readable backend name.
const Name = "WebGPU"

// Plugin returns the registry entry of the backend.
func Plugin() gal.Plugin {
	return gal.Plugin{
		ID:              ID,
		Name:            Name,
		RequiredVersion: "^1.0.0",
		Priority:        10,
		Create: func(cfg gal.Config) (gal.Renderer, error) {
			return NewRenderer(cfg)
		},
	}
}

// Renderer exposes the adapters of one HAL instance.
type Renderer struct {
	cfg      gal.Config
	log      *slog.Logger
	instance hal.Instance
	pds      []*PhysicalDevice
}

// NewRenderer opens the most capable registered HAL backend.
func NewRenderer(cfg gal.Config) (*Renderer, error) {
	backend, err := hal.SelectBestBackend()
	if err != nil {
		return nil, fmt.Errorf("gal: wgpu renderer: %w: %w", gal.ErrUnsupportedCapability, err)
	}
	return NewRendererWithBackend(cfg, backend)
}

// NewRendererWithBackend opens an instance of backend and exposes its
// adapters, discrete and integrated GPUs first.
func NewRendererWithBackend(cfg gal.Config, backend hal.Backend) (*Renderer, error) {
	cfg = withDefaults(cfg)
	flags := gputypes.InstanceFlagsNone
	if cfg.Validation {
		flags = gputypes.InstanceFlagsValidation
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Backends: gputypes.BackendsAll, Flags: flags})
	if err != nil {
		return nil, fmt.Errorf("gal: wgpu renderer: create %s instance: %w", backend.Variant(), err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("gal: wgpu renderer: %s has no adapters: %w", backend.Variant(), gal.ErrUnsupportedCapability)
	}
	slices.SortStableFunc(adapters, func(a, b hal.ExposedAdapter) int {
		return cmp.Compare(adapterRank(a.Info.DeviceType), adapterRank(b.Info.DeviceType))
	})
	r := &Renderer{cfg: cfg, log: cfg.Log(), instance: instance}
	for _, a := range adapters {
		r.pds = append(r.pds, newPhysicalDevice(r, a, nil))
	}
	r.log.Info("gal: renderer created",
		slog.String("backend", ID),
		slog.String("hal", backend.Variant().String()),
		slog.String("adapter", adapters[0].Info.Name),
		slog.Int("adapters", len(adapters)),
		slog.String("app", cfg.AppName))
	return r, nil
}

// NewRendererFromProvider adopts the HAL device and queue of a provider,
// such as a gogpu window. The renderer exposes one physical device whose
// devices share the provider's HAL device and never destroy it.
func NewRendererFromProvider(cfg gal.Config, provider gpucontext.DeviceProvider) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gal: wgpu renderer: provider does not expose HAL types: %w", gal.ErrInvalidArgument)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gal: wgpu renderer: provider HalDevice is not hal.Device: %w", gal.ErrInvalidArgument)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gal: wgpu renderer: provider HalQueue is not hal.Queue: %w", gal.ErrInvalidArgument)
	}
	cfg = withDefaults(cfg)
	info := provider.AdapterInfo()
	exposed := hal.ExposedAdapter{
		Info: gputypes.AdapterInfo{
			Name:       info.Name,
			DeviceType: providerDeviceType(info.Type),
			Driver:     "gpucontext",
		},
		Capabilities: hal.Capabilities{
			Limits:         gputypes.DefaultLimits(),
			AlignmentsMask: hal.Alignments{BufferCopyOffset: 4, BufferCopyPitch: 256},
		},
	}
	r := &Renderer{cfg: cfg, log: cfg.Log()}
	r.pds = []*PhysicalDevice{newPhysicalDevice(r, exposed, &hal.OpenDevice{Device: device, Queue: queue})}
	r.log.Info("gal: renderer adopted provider device", slog.String("backend", ID), slog.String("adapter", info.Name))
	return r, nil
}

func withDefaults(cfg gal.Config) gal.Config {
	if cfg.HeapSize == 0 {
		cfg.HeapSize = gal.DefaultHeapSize
	}
	if cfg.HeapGranularity == 0 {
		cfg.HeapGranularity = gal.DefaultHeapGranularity
	}
	if cfg.FenceTimeout == 0 {
		cfg.FenceTimeout = gal.DefaultFenceTimeout
	}
	return cfg
}

func adapterRank(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	case gputypes.DeviceTypeVirtualGPU:
		return 2
	case gputypes.DeviceTypeCPU:
		return 3
	}
	return 4
}

func providerDeviceType(t gpucontext.AdapterType) gputypes.DeviceType {
	switch t {
	case gpucontext.AdapterTypeDiscrete:
		return gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		return gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		return gputypes.DeviceTypeCPU
	}
	return gputypes.DeviceTypeOther
}

// Name returns "WebGPU".
func (r *Renderer) Name() string { return Name }

// PhysicalDeviceCount returns the number of adapters.
func (r *Renderer) PhysicalDeviceCount() int { return len(r.pds) }

// PhysicalDevice returns adapter i.
func (r *Renderer) PhysicalDevice(i int) (gal.PhysicalDevice, error) {
	if i < 0 || i >= len(r.pds) {
		return nil, fmt.Errorf("gal: wgpu renderer: physical device %d of %d: %w", i, len(r.pds), gal.ErrInvalidArgument)
	}
	return r.pds[i], nil
}

// Destroy releases the adapters and the instance. Devices must be
// destroyed first.
func (r *Renderer) Destroy() {
	for _, pd := range r.pds {
		if pd.adapter.Adapter != nil {
			pd.adapter.Adapter.Destroy()
		}
	}
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
}
