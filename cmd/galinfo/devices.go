package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gal"
)

// probeLimit bounds the renderers initialized at once.
const probeLimit = 4

// probe is what one backend reported.
type probe struct {
	plugin  gal.Plugin
	err     error
	devices []device
}

type device struct {
	props    gal.PhysicalDeviceProperties
	limits   gal.Limits
	families []gal.QueueFamilyProperties
	memory   gal.MemoryProperties
}

// probeAll creates a renderer per plugin concurrently. A backend that
// fails to initialize is reported, not returned as an error.
func probeAll(cmd *cobra.Command, plugins []gal.Plugin, opts []gal.Option) ([]probe, error) {
	out := make([]probe, len(plugins))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(probeLimit)
	for i, p := range plugins {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = probeOne(p, opts)
			return nil
		})
	}
	return out, g.Wait()
}

func probeOne(p gal.Plugin, opts []gal.Option) probe {
	res := probe{plugin: p}
	cfg, err := gal.NewConfig(opts...)
	if err != nil {
		res.err = err
		return res
	}
	r, err := p.Create(cfg)
	if err != nil {
		res.err = err
		return res
	}
	defer r.Destroy()
	for i := range r.PhysicalDeviceCount() {
		pd, err := r.PhysicalDevice(i)
		if err != nil {
			res.err = err
			return res
		}
		res.devices = append(res.devices, device{
			props:    pd.Properties(),
			limits:   pd.Limits(),
			families: pd.QueueFamilies(),
			memory:   pd.MemoryProperties(),
		})
	}
	return res
}

func newBackendsCmd(reg *gal.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered backends, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRIORITY\tREQUIRES")
			for _, p := range reg.Plugins() {
				req := p.RequiredVersion
				if req == "" {
					req = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Priority, req)
			}
			return w.Flush()
		},
	}
}

func newDevicesCmd(reg *gal.Registry, f *flags) *cobra.Command {
	var limits bool
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Describe the physical devices of each backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			plugins, err := f.selected(reg)
			if err != nil {
				return err
			}
			probes, err := probeAll(cmd, plugins, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range probes {
				printProbe(out, p, limits)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&limits, "limits", "l", false, "print device limits")
	return cmd
}

func printProbe(out io.Writer, p probe, limits bool) {
	fmt.Fprintf(out, "%s (%s)\n", p.plugin.Name, p.plugin.ID)
	if p.err != nil {
		fmt.Fprintf(out, "  unavailable: %v\n\n", p.err)
		return
	}
	for i, d := range p.devices {
		fmt.Fprintf(out, "  device %d: %s\n", i, d.props.Name)
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "    type\t%s\n", d.props.Type)
		fmt.Fprintf(w, "    vendor\t%#04x\n", d.props.VendorID)
		fmt.Fprintf(w, "    device id\t%#04x\n", d.props.DeviceID)
		if d.props.Driver != "" {
			fmt.Fprintf(w, "    driver\t%s\n", d.props.Driver)
		}
		fmt.Fprintf(w, "    backend\t%s\n", d.props.Backend)
		fmt.Fprintf(w, "    api\t%s\n", d.props.APIVersion)
		for fi, fam := range d.families {
			fmt.Fprintf(w, "    queue family %d\t%d x %s\n", fi, fam.Count, fam.Flags)
		}
		for mi, mt := range d.memory.Types {
			heap := d.memory.Heaps[mt.Heap]
			fmt.Fprintf(w, "    memory type %d\t%s (heap %d, %s)\n", mi, mt.Properties, mt.Heap, bytes(heap.Size))
		}
		if limits {
			printLimits(w, d.limits)
		}
		_ = w.Flush()
	}
	fmt.Fprintln(out)
}

func printLimits(w io.Writer, l gal.Limits) {
	rows := []struct {
		name  string
		value string
	}{
		{"max image 2D", strconv.FormatUint(uint64(l.MaxImageDimension2D), 10)},
		{"max image 3D", strconv.FormatUint(uint64(l.MaxImageDimension3D), 10)},
		{"max array layers", strconv.FormatUint(uint64(l.MaxImageArrayLayers), 10)},
		{"max buffer", bytes(l.MaxBufferSize)},
		{"max bound sets", strconv.FormatUint(uint64(l.MaxBoundDescriptorSets), 10)},
		{"max bindings per set", strconv.FormatUint(uint64(l.MaxDescriptorSetBindings), 10)},
		{"max uniform range", bytes(l.MaxUniformBufferRange)},
		{"uniform offset align", strconv.FormatUint(l.MinUniformBufferOffsetAlign, 10)},
		{"storage offset align", strconv.FormatUint(l.MinStorageBufferOffsetAlign, 10)},
		{"max push constants", strconv.FormatUint(uint64(l.MaxPushConstantsSize), 10)},
		{"max vertex bindings", strconv.FormatUint(uint64(l.MaxVertexInputBindings), 10)},
		{"max vertex attributes", strconv.FormatUint(uint64(l.MaxVertexInputAttributes), 10)},
		{"max color attachments", strconv.FormatUint(uint64(l.MaxColorAttachments), 10)},
		{"max viewports", strconv.FormatUint(uint64(l.MaxViewports), 10)},
		{"color samples", l.FrameBufferColorSampleCounts.String()},
		{"copy row pitch align", strconv.FormatUint(l.OptimalBufferCopyRowPitchAlign, 10)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "    %s\t%s\n", r.name, r.value)
	}
}

// bytes formats n with a binary unit.
func bytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
